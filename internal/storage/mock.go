package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/drakos74/forsight/internal/model"
)

// MockStorage keeps the stored values in memory.
type MockStorage struct {
	Elements map[Key]interface{}
	mutex    *sync.Mutex
}

func NewMockStorage() *MockStorage {
	return &MockStorage{
		Elements: make(map[Key]interface{}),
		mutex:    new(sync.Mutex),
	}
}

func (m *MockStorage) Store(k Key, value interface{}) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.Elements[k] = value
	return nil
}

func (m *MockStorage) Load(k Key, value interface{}) error {
	return nil
}

// MockSource is an in-memory record source.
type MockSource struct {
	Data map[model.Symbol][]model.DailyRecord
	// Err is returned by every call if set.
	Err error
}

// NewMockSource creates a new in-memory source for the given records.
func NewMockSource(records ...model.DailyRecord) *MockSource {
	m := &MockSource{Data: make(map[model.Symbol][]model.DailyRecord)}
	for _, r := range records {
		m.Data[r.Symbol] = append(m.Data[r.Symbol], r)
	}
	return m
}

func (m *MockSource) Records(ctx context.Context, symbol model.Symbol) ([]model.DailyRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	rr, ok := m.Data[symbol]
	if !ok {
		return nil, fmt.Errorf("no records for '%s': %w", symbol, NotFoundErr)
	}
	return append([]model.DailyRecord(nil), rr...), nil
}

func (m *MockSource) Symbols(ctx context.Context) ([]model.Symbol, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	ss := make([]model.Symbol, 0, len(m.Data))
	for s := range m.Data {
		ss = append(ss, s)
	}
	sort.Slice(ss, func(i, j int) bool {
		return ss[i] < ss[j]
	})
	return ss, nil
}
