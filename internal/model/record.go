package model

import (
	"fmt"
	"time"
)

// Symbol defines a tradeable instrument identifier.
type Symbol string

// NoSymbol is an undefined symbol
const NoSymbol Symbol = ""

// Catalog is the fixed set of precomputed indicator and macro fields a DailyRecord may carry.
// The order is the column order of the feature table.
var Catalog = []string{
	"weighted_average_try",
	"volume_try",
	"bist",
	"usd_kur_price",
	"close_usd",
	"relative_to_index",
	"volume_usd",
	"market_cap_try",
	"market_cap_usd",
	"market_cap_tl_halka_acik",
	"market_cap_usd_halka_acik",
	"min_usd",
	"max_usd",
	"weighted_average_usd",
	"pct_change",
	"rsi_14",
	"macd_12_26_9",
	"macdh_12_26_9",
	"macds_12_26_9",
	"sma_50",
	"sma_200",
	"bbl_20_2.0_2.0",
	"bbm_20_2.0_2.0",
	"bbu_20_2.0_2.0",
	"bbb_20_2.0_2.0",
	"bbp_20_2.0_2.0",
	"brent_oil",
	"sp500",
	"vix",
	"xbank_xusin_ratio",
	"atr",
	"obv",
	"mfi",
}

// DailyRecord is one observation of an instrument for a single trading day.
// Catalog values that are not present in Fields are missing.
type DailyRecord struct {
	Symbol Symbol             `json:"symbol"`
	Date   time.Time          `json:"date"`
	Close  float64            `json:"close"`
	High   float64            `json:"high"`
	Low    float64            `json:"low"`
	Volume float64            `json:"volume"`
	Fields map[string]float64 `json:"fields,omitempty"`
}

// Field returns the catalog value for the given name and whether it is present.
func (r DailyRecord) Field(name string) (float64, bool) {
	if r.Fields == nil {
		return 0, false
	}
	v, ok := r.Fields[name]
	return v, ok
}

func (r DailyRecord) String() string {
	return fmt.Sprintf("%s|%s|%.4f", r.Symbol, r.Date.Format(DateLayout), r.Close)
}

// DateLayout is the layout used for dates in payloads and logs.
const DateLayout = "2006-01-02"

// ByDate sorts records ascending by date.
type ByDate []DailyRecord

func (rr ByDate) Len() int           { return len(rr) }
func (rr ByDate) Less(i, j int) bool { return rr[i].Date.Before(rr[j].Date) }
func (rr ByDate) Swap(i, j int)      { rr[i], rr[j] = rr[j], rr[i] }
