package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/drakos74/forsight/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestMockSource(t *testing.T) {
	src := NewMockSource(
		model.DailyRecord{Symbol: "B", Close: 1},
		model.DailyRecord{Symbol: "A", Close: 2},
		model.DailyRecord{Symbol: "B", Close: 3},
	)

	symbols, err := src.Symbols(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []model.Symbol{"A", "B"}, symbols)

	rr, err := src.Records(context.Background(), "B")
	assert.NoError(t, err)
	assert.Equal(t, 2, len(rr))

	_, err = src.Records(context.Background(), "C")
	assert.ErrorIs(t, err, NotFoundErr)

	src.Err = errors.New("broken")
	_, err = src.Symbols(context.Background())
	assert.Error(t, err)
}

func TestKey_Path(t *testing.T) {
	assert.Equal(t, "THYAO", Key{Symbol: "THYAO"}.Path())
	assert.Equal(t, "THYAO_run", Key{Symbol: "THYAO", Label: "run"}.Path())
}

func TestVoidStorage(t *testing.T) {
	s := NewVoidStorage()
	assert.NoError(t, s.Store(Key{Symbol: "A"}, 1))
	var v int
	assert.ErrorIs(t, s.Load(Key{Symbol: "A"}, &v), NotFoundErr)
}
