package forecast

import (
	"math"
	"math/rand"
	"time"

	"github.com/drakos74/forsight/internal/algo/forecast/panel"
	fmath "github.com/drakos74/forsight/internal/math"
	"github.com/drakos74/forsight/internal/model"
)

var day0 = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// linearRecords generates a noiseless linear close trend.
func linearRecords(n int) []model.DailyRecord {
	closes := fmath.Line(100, 0.5, n)
	rr := make([]model.DailyRecord, n)
	for t, c := range closes {
		rr[t] = model.DailyRecord{
			Symbol: "LINE",
			Date:   day0.AddDate(0, 0, t),
			Close:  c,
			High:   c + 1,
			Low:    c - 1,
			Volume: 1000,
		}
	}
	return rr
}

// noisyRecords generates a random walk with a sine cycle and a few catalog fields.
func noisyRecords(n int, seed int64) []model.DailyRecord {
	rng := rand.New(rand.NewSource(seed))
	cycle := fmath.Sine(5, n, 0.05)
	rr := make([]model.DailyRecord, n)
	c := 100.0
	for t := 0; t < n; t++ {
		c = math.Max(1, c+rng.NormFloat64())
		v := c + cycle[t]
		fields := map[string]float64{
			"rsi_14": 30 + 40*rng.Float64(),
			"sma_50": v * (1 + 0.01*rng.NormFloat64()),
		}
		// vix is present on every other day only
		if t%2 == 0 {
			fields["vix"] = 15 + 5*rng.Float64()
		}
		rr[t] = model.DailyRecord{
			Symbol: "NOISE",
			Date:   day0.AddDate(0, 0, t),
			Close:  v,
			High:   v + rng.Float64(),
			Low:    v - rng.Float64(),
			Volume: 1000 + 100*rng.Float64(),
			Fields: fields,
		}
	}
	return rr
}

func constantRecords(n int) []model.DailyRecord {
	rr := make([]model.DailyRecord, n)
	for t := range rr {
		rr[t] = model.DailyRecord{
			Symbol: "FLAT",
			Date:   day0.AddDate(0, 0, t),
			Close:  10,
			High:   10,
			Low:    10,
			Volume: 10,
		}
	}
	return rr
}

func testPanel() *panel.Panel {
	cfg := panel.DefaultConfig()
	cfg.Forest.Trees = 20
	cfg.Boost.Stages = 30
	cfg.Histogram.Rounds = 30
	return panel.New(panel.Families(cfg)...)
}
