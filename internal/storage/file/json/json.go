package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/drakos74/forsight/internal/storage"
)

const ext = ".json"

// Save saves the given json struct into the given path with the provided filename.
func Save(filePath string, fileName string, value interface{}) error {
	// check if filepath exists
	info, err := os.Stat(filePath)
	if err != nil {
		err := os.MkdirAll(filePath, os.ModePerm)
		if err != nil {
			return fmt.Errorf("could not make dir: %s: %w", filePath, err)
		}
	} else if !info.IsDir() {
		return fmt.Errorf("path given is not a directory: %s", filePath)
	}

	p := filepath.Join(filePath, fileName)
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not encode value for '%s': %w", p, err)
	}

	err = os.WriteFile(p, b, 0644)
	if err != nil {
		return fmt.Errorf("could not write file '%s': %w", p, err)
	}
	return nil
}

// Load loads the payload from the given filePath and fileName.
func Load(filePath string, fileName string, value interface{}) error {

	p := filepath.Join(filePath, fileName)

	data, err := os.ReadFile(p)
	if err != nil {
		return fmt.Errorf("could not read file '%s' %s: %w", p, err.Error(), storage.NotFoundErr)
	}

	err = json.Unmarshal(data, value)
	if err != nil {
		return fmt.Errorf("could not unmarshal file '%s' %s: %w", p, err.Error(), storage.CouldNotLoadErr)
	}

	return nil
}

// FileStorage stores every key as a json file under the given directory.
type FileStorage struct {
	dir string
}

// NewFileStorage creates a new file storage rooted at the given directory.
func NewFileStorage(root, dir string) *FileStorage {
	return &FileStorage{dir: filepath.Join(root, dir)}
}

func (f *FileStorage) Store(k storage.Key, value interface{}) error {
	return Save(f.dir, k.Path()+ext, value)
}

func (f *FileStorage) Load(k storage.Key, value interface{}) error {
	return Load(f.dir, k.Path()+ext, value)
}
