package forecast

import (
	"math"
	"time"

	"github.com/drakos74/forsight/internal/buffer"
	fmath "github.com/drakos74/forsight/internal/math"
	"github.com/drakos74/forsight/internal/model"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const tradingDays = 252

// Window returns the records with a date within [from,to], a zero bound is open.
func Window(records []model.DailyRecord, from, to time.Time) []model.DailyRecord {
	rr := make([]model.DailyRecord, 0, len(records))
	for _, r := range records {
		if !from.IsZero() && r.Date.Before(from) {
			continue
		}
		if !to.IsZero() && r.Date.After(to) {
			continue
		}
		rr = append(rr, r)
	}
	return rr
}

// Summarize computes the descriptive statistics of the given records, which must be sorted by date.
func Summarize(records []model.DailyRecord) model.Statistics {
	n := len(records)
	s := model.Statistics{TotalRecords: n}
	if n == 0 {
		return s
	}
	s.DateRange = model.Range{
		Start: records[0].Date.Format(model.DateLayout),
		End:   records[n-1].Date.Format(model.DateLayout),
	}

	closes := make([]float64, n)
	for i, r := range records {
		closes[i] = r.Close
	}
	s.Price = model.PriceStats{
		Current: closes[n-1],
		Min:     floats.Min(closes),
		Max:     floats.Max(closes),
		Mean:    stat.Mean(closes, nil),
	}
	if n < 2 {
		return s
	}
	s.Price.Std = stat.StdDev(closes, nil)
	// slope of the close per observation
	if c, err := fmath.Fit(fmath.Series(1, n), closes, 1); err == nil {
		s.Price.Trend = c[1]
	}

	returns := buffer.NewStats()
	growth := 1.0
	for i := 1; i < n; i++ {
		r := closes[i]/closes[i-1] - 1
		if math.IsNaN(r) || math.IsInf(r, 0) {
			continue
		}
		returns.Push(r)
		growth *= 1 + r
	}
	std := returns.SampleStDev()
	s.Returns = model.ReturnStats{
		TotalReturn:    (growth - 1) * 100,
		AvgDailyReturn: returns.Avg() * 100,
		Volatility:     fmath.Clamp(std*100, 0, math.Inf(1)),
	}
	if !math.IsNaN(std) && std > 0 {
		s.Returns.SharpeRatio = returns.Avg() / std * math.Sqrt(tradingDays)
	}
	return s
}

// Annotate computes the per day analytics series of the given records, which must be sorted by date.
// Values without a full window are 0.
func Annotate(records []model.DailyRecord) []model.Point {
	n := len(records)
	points := make([]model.Point, n)
	if n == 0 {
		return points
	}
	closes := make([]float64, n)
	for i, r := range records {
		closes[i] = r.Close
	}
	lo, hi := floats.Min(closes), floats.Max(closes)

	ma20 := buffer.NewRing(20)
	ma50 := buffer.NewRing(50)
	ma200 := buffer.NewRing(200)
	vol := buffer.NewRing(20)
	cumulative := 1.0
	for i, r := range records {
		p := model.Point{
			Date:  r.Date.Format(model.DateLayout),
			Close: r.Close,
		}
		if i > 0 {
			ret := r.Close/closes[i-1] - 1
			if math.IsNaN(ret) || math.IsInf(ret, 0) {
				ret = 0
			}
			p.Returns = ret
			cumulative *= 1 + ret
			vol.Push(ret)
		}
		p.CumulativeReturns = cumulative - 1
		ma20.Push(r.Close)
		ma50.Push(r.Close)
		ma200.Push(r.Close)

		p.MA20 = mean(ma20)
		p.MA50 = mean(ma50)
		p.MA200 = mean(ma200)
		if vol.Full() {
			p.Volatility = stat.StdDev(vol.Get(), nil)
		}
		if ma20.Full() {
			if std := stat.StdDev(ma20.Get(), nil); std > 0 {
				p.ZScore = (r.Close - p.MA20) / std
			}
		}
		if hi > lo {
			p.NormalizedPrice = (r.Close - lo) / (hi - lo)
		}
		if ma20.Full() && ma50.Full() {
			switch {
			case p.MA20 > p.MA50:
				p.Signal = 1
			case p.MA20 < p.MA50:
				p.Signal = -1
			}
		}
		points[i] = p
	}
	return points
}

func mean(r *buffer.Ring) float64 {
	if !r.Full() {
		return 0
	}
	return stat.Mean(r.Get(), nil)
}
