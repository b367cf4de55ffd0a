package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/drakos74/forsight/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {

	type test struct {
		records []model.DailyRecord
		stats   model.Statistics
	}

	tests := map[string]test{
		"empty": {},
		"single": {
			records: []model.DailyRecord{{Date: day0, Close: 10}},
			stats: model.Statistics{
				TotalRecords: 1,
				DateRange:    model.Range{Start: "2020-01-01", End: "2020-01-01"},
				Price:        model.PriceStats{Current: 10, Min: 10, Max: 10, Mean: 10},
			},
		},
		"double": {
			records: []model.DailyRecord{{Date: day0, Close: 10}, {Date: day0.AddDate(0, 0, 1), Close: 11}},
			stats: model.Statistics{
				TotalRecords: 2,
				DateRange:    model.Range{Start: "2020-01-01", End: "2020-01-02"},
				Price:        model.PriceStats{Current: 11, Min: 10, Max: 11, Mean: 10.5, Std: math.Sqrt(0.5), Trend: 1},
				Returns:      model.ReturnStats{TotalReturn: 10, AvgDailyReturn: 10},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := Summarize(tt.records)
			assert.Equal(t, tt.stats.TotalRecords, s.TotalRecords)
			assert.Equal(t, tt.stats.DateRange, s.DateRange)
			assert.InDelta(t, tt.stats.Price.Current, s.Price.Current, 1e-9)
			assert.InDelta(t, tt.stats.Price.Min, s.Price.Min, 1e-9)
			assert.InDelta(t, tt.stats.Price.Max, s.Price.Max, 1e-9)
			assert.InDelta(t, tt.stats.Price.Mean, s.Price.Mean, 1e-9)
			assert.InDelta(t, tt.stats.Price.Std, s.Price.Std, 1e-9)
			assert.InDelta(t, tt.stats.Price.Trend, s.Price.Trend, 1e-9)
			assert.InDelta(t, tt.stats.Returns.TotalReturn, s.Returns.TotalReturn, 1e-9)
			assert.InDelta(t, tt.stats.Returns.AvgDailyReturn, s.Returns.AvgDailyReturn, 1e-9)
			assert.InDelta(t, tt.stats.Returns.Volatility, s.Returns.Volatility, 1e-9)
			assert.InDelta(t, tt.stats.Returns.SharpeRatio, s.Returns.SharpeRatio, 1e-9)
		})
	}
}

func TestSummarize_Sharpe(t *testing.T) {
	records := []model.DailyRecord{
		{Date: day0, Close: 100},
		{Date: day0.AddDate(0, 0, 1), Close: 110},
		{Date: day0.AddDate(0, 0, 2), Close: 99},
		{Date: day0.AddDate(0, 0, 3), Close: 108.9},
	}
	s := Summarize(records)
	// returns are 0.1, -0.1, 0.1
	mean := 0.1 / 3
	std := math.Sqrt((2*math.Pow(0.1-mean, 2) + math.Pow(-0.1-mean, 2)) / 2)
	assert.InDelta(t, mean*100, s.Returns.AvgDailyReturn, 1e-9)
	assert.InDelta(t, std*100, s.Returns.Volatility, 1e-9)
	assert.InDelta(t, mean/std*math.Sqrt(252), s.Returns.SharpeRatio, 1e-9)
	assert.InDelta(t, 8.9, s.Returns.TotalReturn, 1e-9)
}

func TestWindow(t *testing.T) {
	records := linearRecords(10)
	assert.Equal(t, 10, len(Window(records, time.Time{}, time.Time{})))
	w := Window(records, day0.AddDate(0, 0, 2), day0.AddDate(0, 0, 5))
	assert.Equal(t, 4, len(w))
	assert.True(t, day0.AddDate(0, 0, 2).Equal(w[0].Date))
}

func TestAnnotate(t *testing.T) {
	records := linearRecords(250)
	points := Annotate(records)
	assert.Equal(t, 250, len(points))

	assert.Equal(t, "2020-01-01", points[0].Date)
	assert.Equal(t, 0.0, points[0].Returns)
	assert.Equal(t, 0.0, points[0].MA20)
	assert.Equal(t, 0.0, points[0].NormalizedPrice)
	assert.InDelta(t, 1.0, points[249].NormalizedPrice, 1e-12)

	// the mean of the last 20 closes of a line is its midpoint
	p := points[100]
	assert.InDelta(t, records[100].Close-0.5*9.5, p.MA20, 1e-9)
	assert.InDelta(t, records[100].Close-0.5*24.5, p.MA50, 1e-9)
	assert.Equal(t, 0.0, p.MA200)
	assert.Equal(t, 1, p.Signal)
	assert.Greater(t, p.ZScore, 0.0)
	assert.Greater(t, p.Volatility, 0.0)
	assert.InDelta(t, records[100].Close/records[0].Close-1, p.CumulativeReturns, 1e-9)
	assert.Greater(t, points[249].MA200, 0.0)
	assert.Empty(t, Annotate(nil))
}
