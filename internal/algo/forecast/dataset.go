package forecast

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/drakos74/forsight/internal/buffer"
	"github.com/drakos74/forsight/internal/model"
	"gonum.org/v1/gonum/stat"
)

const (
	Close        = "close"
	High         = "high"
	Low          = "low"
	Volume       = "volume"
	Returns      = "returns"
	LogReturns   = "log_returns"
	Volatility20 = "volatility_20"
	Volatility50 = "volatility_50"
	Momentum10   = "momentum_10"
	Momentum20   = "momentum_20"
)

const (
	shortWindow = 20
	longWindow  = 50
	shortLag    = 10
	longLag     = 20
	// lookback is the first index with every derived column available.
	lookback = longWindow
)

// derived are the columns computed from the close series, they close every row.
var derived = []string{Returns, LogReturns, Volatility20, Volatility50, Momentum10, Momentum20}

// Columns returns the candidate feature columns in table order.
func Columns() []string {
	cc := []string{Close, High, Low, Volume}
	cc = append(cc, model.Catalog...)
	return append(cc, derived...)
}

// Dataset is the feature table of an instrument.
// Missing catalog values are NaN, rows missing a derived value are dropped.
type Dataset struct {
	Symbol  model.Symbol
	Horizon int
	Columns []string
	// Rows have the full lookback and a realized target.
	Rows   [][]float64
	Target []float64
	dates  []time.Time
	// Latest is the most recent row with the full lookback, its target is still unknown.
	Latest     []float64
	LatestDate time.Time
	// Current is the last observed close.
	Current float64
}

// Size returns the number of rows with a target.
func (ds *Dataset) Size() int {
	return len(ds.Rows)
}

// Column returns the values of the given column for all rows.
func (ds *Dataset) Column(j int) []float64 {
	col := make([]float64, len(ds.Rows))
	for i, row := range ds.Rows {
		col[i] = row[j]
	}
	return col
}

// BuildDataset derives the feature table for the given records and horizon.
// The records are sorted by date, records sharing a date are rejected.
func BuildDataset(records []model.DailyRecord, horizon int) (*Dataset, error) {
	if horizon < 1 {
		return nil, fmt.Errorf("invalid horizon %d", horizon)
	}
	rr := make([]model.DailyRecord, len(records))
	copy(rr, records)
	sort.Stable(model.ByDate(rr))
	for i := 1; i < len(rr); i++ {
		if rr[i].Date.Equal(rr[i-1].Date) {
			return nil, fmt.Errorf("%s at %s: %w", rr[i].Symbol, rr[i].Date.Format(model.DateLayout), ErrDuplicateDate)
		}
	}

	columns := Columns()
	ds := &Dataset{
		Horizon: horizon,
		Columns: columns,
		Rows:    make([][]float64, 0),
		Target:  make([]float64, 0),
		dates:   make([]time.Time, 0),
	}
	n := len(rr)
	if n == 0 {
		return ds, nil
	}
	ds.Symbol = rr[0].Symbol
	ds.Current = rr[n-1].Close

	closes := buffer.NewRing(longLag + 1)
	short := buffer.NewRing(shortWindow)
	long := buffer.NewRing(longWindow)

	for t, r := range rr {
		closes.Push(r.Close)
		ret, logRet := math.NaN(), math.NaN()
		if t > 0 {
			prev := closes.Lag(1)
			ret = finite(r.Close/prev - 1)
			logRet = finite(math.Log(r.Close / prev))
			short.Push(ret)
			long.Push(ret)
		}
		if t < lookback {
			continue
		}

		row := make([]float64, 0, len(columns))
		row = append(row, r.Close, r.High, r.Low, r.Volume)
		for _, name := range model.Catalog {
			if v, ok := r.Field(name); ok {
				row = append(row, finite(v))
			} else {
				row = append(row, math.NaN())
			}
		}
		row = append(row,
			ret,
			logRet,
			rollingStd(short),
			rollingStd(long),
			finite(r.Close-closes.Lag(shortLag)),
			finite(r.Close-closes.Lag(longLag)),
		)

		if !available(row[len(row)-len(derived):]) {
			continue
		}

		if t == n-1 {
			ds.Latest = row
			ds.LatestDate = r.Date
		}
		if t+horizon < n {
			ds.Rows = append(ds.Rows, row)
			ds.Target = append(ds.Target, rr[t+horizon].Close)
			ds.dates = append(ds.dates, r.Date)
		}
	}
	return ds, nil
}

// rollingStd returns the sample standard deviation of a full window, NaN otherwise.
func rollingStd(r *buffer.Ring) float64 {
	if !r.Full() {
		return math.NaN()
	}
	vv := r.Get()
	for _, v := range vv {
		if math.IsNaN(v) {
			return math.NaN()
		}
	}
	return stat.StdDev(vv, nil)
}

func available(vv []float64) bool {
	for _, v := range vv {
		if math.IsNaN(v) {
			return false
		}
	}
	return true
}

func finite(v float64) float64 {
	if math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}
