package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/drakos74/forsight/internal/model"
)

const (
	RecordsDir   = "records"
	ForecastsDir = "forecasts"
)

var (
	NotFoundErr     = errors.New("not found")
	CouldNotLoadErr = errors.New("could not load")
)

// Key is the storage key for a general implementation
type Key struct {
	Symbol model.Symbol `json:"symbol"`
	Label  string       `json:"label"`
}

func (k Key) Path() string {
	if k.Label == "" {
		return string(k.Symbol)
	}
	return fmt.Sprintf("%s_%s", k.Symbol, k.Label)
}

// Persistence stores and loads values by key.
type Persistence interface {
	Store(k Key, value interface{}) error
	Load(k Key, value interface{}) error
}

// Source provides the daily record history of instruments.
// Records are returned in any order, an unknown symbol returns a NotFoundErr.
type Source interface {
	Records(ctx context.Context, symbol model.Symbol) ([]model.DailyRecord, error)
	Symbols(ctx context.Context) ([]model.Symbol, error)
}
