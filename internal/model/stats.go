package model

// Range is a closed date range formatted with DateLayout.
type Range struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// PriceStats are descriptive statistics of the close price.
type PriceStats struct {
	Current float64 `json:"current"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Mean    float64 `json:"mean"`
	Std     float64 `json:"std"`
	Trend   float64 `json:"trend"`
}

// ReturnStats are descriptive statistics of the daily returns, in percent where applicable.
type ReturnStats struct {
	TotalReturn    float64 `json:"total_return"`
	AvgDailyReturn float64 `json:"avg_daily_return"`
	Volatility     float64 `json:"volatility"`
	SharpeRatio    float64 `json:"sharpe_ratio"`
}

// Statistics summarises the record history of an instrument.
type Statistics struct {
	TotalRecords int         `json:"total_records"`
	DateRange    Range       `json:"date_range"`
	Price        PriceStats  `json:"price_stats"`
	Returns      ReturnStats `json:"returns_stats"`
}

// Point is the analytics of a single day.
type Point struct {
	Date              string  `json:"date"`
	Close             float64 `json:"close"`
	Returns           float64 `json:"returns"`
	CumulativeReturns float64 `json:"cumulative_returns"`
	MA20              float64 `json:"ma_20"`
	MA50              float64 `json:"ma_50"`
	MA200             float64 `json:"ma_200"`
	Volatility        float64 `json:"volatility"`
	ZScore            float64 `json:"z_score"`
	NormalizedPrice   float64 `json:"normalized_price"`
	Signal            int     `json:"signal"`
}

// Bar is the price and volume of a single day.
type Bar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// Series is the close path of a symbol, normalized to the first close in percent.
type Series struct {
	Dates      []string  `json:"dates"`
	Prices     []float64 `json:"prices"`
	Normalized []float64 `json:"normalized"`
	Returns    []float64 `json:"returns"`
}

// Comparison holds the series of several symbols and the correlation of their daily returns.
type Comparison struct {
	Data        map[Symbol]Series             `json:"comparison_data"`
	Correlation map[Symbol]map[Symbol]float64 `json:"correlation_matrix"`
}
