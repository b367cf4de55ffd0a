package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/drakos74/forsight/internal/model"
	"gonum.org/v1/gonum/stat"
)

// DefaultRange is the range used when none is requested.
const DefaultRange = "1Y"

// ranges are the preset lookbacks in days.
var ranges = map[string]int{
	"1D":  1,
	"1W":  7,
	"1M":  30,
	"3M":  90,
	"6M":  180,
	"1Y":  365,
	"5Y":  5 * 365,
	"10Y": 10 * 365,
	"ALL": 30 * 365,
}

// RangeStart returns the first date of the named range ending at the given date.
func RangeStart(name string, end time.Time) (time.Time, error) {
	days, ok := ranges[name]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown range '%s'", name)
	}
	return end.AddDate(0, 0, -days), nil
}

// Bars returns the daily bars of the records, the open is the close.
func Bars(records []model.DailyRecord) []model.Bar {
	bars := make([]model.Bar, len(records))
	for i, r := range records {
		bars[i] = model.Bar{
			Date:   r.Date.Format(model.DateLayout),
			Open:   r.Close,
			High:   r.High,
			Low:    r.Low,
			Close:  r.Close,
			Volume: r.Volume,
		}
	}
	return bars
}

// Trace returns the close series of the given records, which must be sorted by date.
// Undefined returns are 0.
func Trace(records []model.DailyRecord) model.Series {
	n := len(records)
	s := model.Series{
		Dates:      make([]string, n),
		Prices:     make([]float64, n),
		Normalized: make([]float64, n),
		Returns:    make([]float64, n),
	}
	for i, r := range records {
		s.Dates[i] = r.Date.Format(model.DateLayout)
		s.Prices[i] = r.Close
		if first := records[0].Close; first != 0 {
			s.Normalized[i] = (r.Close - first) / first * 100
		}
		if i > 0 {
			if ret := finite(r.Close/records[i-1].Close - 1); !math.IsNaN(ret) {
				s.Returns[i] = ret
			}
		}
	}
	return s
}

// Compare traces every symbol and correlates the daily returns of each pair on the dates both share.
// Pairs with fewer than 2 common returns or without variance are left out of the matrix.
func Compare(records map[model.Symbol][]model.DailyRecord) model.Comparison {
	c := model.Comparison{
		Data:        make(map[model.Symbol]model.Series, len(records)),
		Correlation: make(map[model.Symbol]map[model.Symbol]float64, len(records)),
	}
	returns := make(map[model.Symbol]map[string]float64, len(records))
	for symbol, rr := range records {
		s := Trace(rr)
		c.Data[symbol] = s
		byDate := make(map[string]float64, len(rr))
		for i := 1; i < len(s.Dates); i++ {
			byDate[s.Dates[i]] = s.Returns[i]
		}
		returns[symbol] = byDate
	}
	if len(records) < 2 {
		return c
	}
	for a, sa := range c.Data {
		row := make(map[model.Symbol]float64, len(records))
		for b := range c.Data {
			x, y := paired(sa.Dates, returns[a], returns[b])
			if len(x) < 2 {
				continue
			}
			if corr := stat.Correlation(x, y, nil); !math.IsNaN(corr) {
				row[b] = corr
			}
		}
		c.Correlation[a] = row
	}
	return c
}

// paired returns the values of both sets on their common dates, in the given date order.
func paired(dates []string, a, b map[string]float64) ([]float64, []float64) {
	x := make([]float64, 0, len(dates))
	y := make([]float64, 0, len(dates))
	for _, d := range dates {
		va, ok := a[d]
		if !ok {
			continue
		}
		vb, ok := b[d]
		if !ok {
			continue
		}
		x = append(x, va)
		y = append(y, vb)
	}
	return x, y
}
