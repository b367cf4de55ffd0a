package json

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/drakos74/forsight/internal/model"
	"github.com/drakos74/forsight/internal/storage"
)

// RecordStore keeps the daily records of every symbol in a json file named after it.
type RecordStore struct {
	dir string
}

// NewRecordStore creates a new record store rooted at the given directory.
func NewRecordStore(root string) *RecordStore {
	return &RecordStore{dir: filepath.Join(root, storage.RecordsDir)}
}

// Records loads all records of the given symbol.
func (s *RecordStore) Records(ctx context.Context, symbol model.Symbol) ([]model.DailyRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var records []model.DailyRecord
	if err := Load(s.dir, storage.Key{Symbol: symbol}.Path()+ext, &records); err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].Symbol == model.NoSymbol {
			records[i].Symbol = symbol
		}
	}
	return records, nil
}

// Symbols lists the stored symbols in alphabetical order.
func (s *RecordStore) Symbols(ctx context.Context) ([]model.Symbol, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Symbol{}, nil
		}
		return nil, fmt.Errorf("could not list '%s': %w", s.dir, err)
	}
	symbols := make([]model.Symbol, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		symbols = append(symbols, model.Symbol(strings.TrimSuffix(e.Name(), ext)))
	}
	sort.Slice(symbols, func(i, j int) bool {
		return symbols[i] < symbols[j]
	})
	return symbols, nil
}

// Put replaces the records of the given symbol.
func (s *RecordStore) Put(symbol model.Symbol, records []model.DailyRecord) error {
	return Save(s.dir, storage.Key{Symbol: symbol}.Path()+ext, records)
}
