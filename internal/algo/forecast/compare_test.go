package forecast

import (
	"testing"
	"time"

	"github.com/drakos74/forsight/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeStart(t *testing.T) {

	type test struct {
		name  string
		start time.Time
		err   bool
	}

	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := map[string]test{
		"day": {
			name:  "1D",
			start: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		"week": {
			name:  "1W",
			start: time.Date(2024, 2, 23, 0, 0, 0, 0, time.UTC),
		},
		"year": {
			name:  DefaultRange,
			start: time.Date(2023, 3, 2, 0, 0, 0, 0, time.UTC),
		},
		"unknown": {
			name: "2Y",
			err:  true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			start, err := RangeStart(tt.name, end)
			if tt.err {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.True(t, tt.start.Equal(start), start.String())
		})
	}
}

func TestBars(t *testing.T) {
	bars := Bars(linearRecords(3))
	require.Equal(t, 3, len(bars))
	assert.Equal(t, model.Bar{Date: "2020-01-02", Open: 100.5, High: 101.5, Low: 99.5, Close: 100.5, Volume: 1000}, bars[1])
}

func TestTrace(t *testing.T) {
	s := Trace(linearRecords(3))
	assert.Equal(t, []string{"2020-01-01", "2020-01-02", "2020-01-03"}, s.Dates)
	assert.Equal(t, []float64{100, 100.5, 101}, s.Prices)
	assert.InDeltaSlice(t, []float64{0, 0.5, 1}, s.Normalized, 1e-12)
	assert.InDeltaSlice(t, []float64{0, 0.005, 0.5 / 100.5}, s.Returns, 1e-12)
}

func TestCompare(t *testing.T) {
	noise := noisyRecords(100, 1)
	// the same path scaled has the same returns
	scaled := make([]model.DailyRecord, len(noise))
	for i, r := range noise {
		r.Symbol = "SCALED"
		r.Close *= 2
		scaled[i] = r
	}
	// the shifted path shares only part of the dates
	shifted := noisyRecords(100, 2)
	for i := range shifted {
		shifted[i].Symbol = "SHIFTED"
		shifted[i].Date = shifted[i].Date.AddDate(0, 0, 50)
	}

	c := Compare(map[model.Symbol][]model.DailyRecord{
		"NOISE":   noise,
		"SCALED":  scaled,
		"SHIFTED": shifted,
		"FLAT":    constantRecords(100),
	})

	assert.Equal(t, 4, len(c.Data))
	assert.Equal(t, 100, len(c.Data["NOISE"].Prices))
	assert.InDelta(t, 1.0, c.Correlation["NOISE"]["NOISE"], 1e-9)
	assert.InDelta(t, 1.0, c.Correlation["NOISE"]["SCALED"], 1e-9)
	assert.InDelta(t, c.Correlation["NOISE"]["SHIFTED"], c.Correlation["SHIFTED"]["NOISE"], 1e-12)
	assert.Less(t, c.Correlation["NOISE"]["SHIFTED"], 1.0)
	// a flat path has no variance to correlate
	assert.NotContains(t, c.Correlation["NOISE"], model.Symbol("FLAT"))
	assert.Empty(t, c.Correlation["FLAT"])

	single := Compare(map[model.Symbol][]model.DailyRecord{"NOISE": noise})
	assert.Equal(t, 1, len(single.Data))
	assert.Empty(t, single.Correlation)
}
