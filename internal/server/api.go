package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/drakos74/forsight/internal/algo/forecast"
	"github.com/drakos74/forsight/internal/model"
	"github.com/drakos74/forsight/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// SymbolView is the history, statistics and prediction of a symbol.
type SymbolView struct {
	Symbol     model.Symbol     `json:"symbol"`
	Data       []model.Point    `json:"data"`
	Statistics model.Statistics `json:"statistics"`
	Prediction *model.Forecast  `json:"prediction"`
	// Unavailable is the reason there is no prediction.
	Unavailable string `json:"unavailable,omitempty"`
}

type forecastRequest struct {
	Symbol string `validate:"required,max=32"`
	Days   int    `validate:"gte=1,lte=365"`
}

// RangeView is the daily bars of a symbol over a preset range.
type RangeView struct {
	Symbol       model.Symbol `json:"symbol"`
	Range        string       `json:"range"`
	Data         []model.Bar  `json:"data"`
	TotalRecords int          `json:"total_records"`
	DateRange    model.Range  `json:"date_range"`
}

type rangeRequest struct {
	Symbol string `validate:"required,max=32"`
	Range  string `validate:"oneof=1D 1W 1M 3M 6M 1Y 5Y 10Y ALL"`
}

type compareRequest struct {
	Symbols []string `json:"symbols" validate:"min=2,max=20,dive,required,max=32"`
	From    string   `json:"start_date"`
	To      string   `json:"end_date"`
}

type symbolRequest struct {
	Symbol string    `validate:"required,max=32"`
	From   time.Time `validate:"-"`
	To     time.Time `validate:"-"`
}

// API serves the forecasts of the stored symbols.
type API struct {
	source     storage.Source
	forecaster *forecast.Forecaster
	validate   *validator.Validate
	now        func() time.Time
}

// NewAPI creates the forecast api.
func NewAPI(source storage.Source, forecaster *forecast.Forecaster) *API {
	return &API{
		source:     source,
		forecaster: forecaster,
		validate:   validator.New(),
		now:        time.Now,
	}
}

// Routes returns the api routes.
func (a *API) Routes() []Route {
	return []Route{
		Live(),
		{Path: "/api/symbols", Method: GET, Exec: a.symbols},
		{Path: "/api/symbol/{symbol}", Method: GET, Exec: a.symbol},
		{Path: "/api/time-range/{symbol}", Method: GET, Exec: a.timeRange},
		{Path: "/api/compare", Method: POST, Exec: a.compare},
		{Path: "/api/forecast/{symbol}", Method: GET, Exec: a.forecast},
	}
}

func (a *API) symbols(ctx context.Context, r *http.Request) ([]byte, int, error) {
	symbols, err := a.source.Symbols(ctx)
	if err != nil {
		return Fail(http.StatusInternalServerError, err)
	}
	return encode(symbols)
}

func (a *API) forecast(ctx context.Context, r *http.Request) ([]byte, int, error) {
	req := forecastRequest{
		Symbol: chi.URLParam(r, "symbol"),
		Days:   a.forecaster.Config().Horizon,
	}
	if days := r.URL.Query().Get("days"); days != "" {
		d, err := strconv.Atoi(days)
		if err != nil {
			return Fail(http.StatusBadRequest, fmt.Errorf("invalid days '%s'", days))
		}
		req.Days = d
	}
	if err := a.validate.StructCtx(ctx, req); err != nil {
		return Fail(http.StatusBadRequest, err)
	}

	f, err := a.forecaster.Forecast(ctx, model.Symbol(req.Symbol), req.Days)
	if err != nil {
		return Fail(status(err))
	}
	return encode(f)
}

func (a *API) symbol(ctx context.Context, r *http.Request) ([]byte, int, error) {
	req := symbolRequest{
		Symbol: chi.URLParam(r, "symbol"),
	}
	var err error
	if req.From, err = date(r, "start_date"); err != nil {
		return Fail(http.StatusBadRequest, err)
	}
	if req.To, err = date(r, "end_date"); err != nil {
		return Fail(http.StatusBadRequest, err)
	}
	if err := a.validate.StructCtx(ctx, req); err != nil {
		return Fail(http.StatusBadRequest, err)
	}

	symbol := model.Symbol(req.Symbol)
	records, err := a.source.Records(ctx, symbol)
	if err != nil {
		return Fail(status(err))
	}
	sort.Sort(model.ByDate(records))
	window := forecast.Window(records, req.From, req.To)
	if len(window) == 0 {
		return Fail(http.StatusNotFound, fmt.Errorf("no data for '%s' in range: %w", symbol, storage.NotFoundErr))
	}

	view := SymbolView{
		Symbol:     symbol,
		Data:       forecast.Annotate(window),
		Statistics: forecast.Summarize(window),
	}
	// the prediction always uses the full history
	f, err := a.forecaster.Run(ctx, symbol, records, 0)
	switch {
	case err == nil:
		view.Prediction = f
	case forecast.Unavailable(err):
		view.Unavailable = forecast.Cause(err)
	default:
		return Fail(status(err))
	}
	return encode(view)
}

func (a *API) timeRange(ctx context.Context, r *http.Request) ([]byte, int, error) {
	req := rangeRequest{
		Symbol: chi.URLParam(r, "symbol"),
		Range:  r.URL.Query().Get("range"),
	}
	if req.Range == "" {
		req.Range = forecast.DefaultRange
	}
	if err := a.validate.StructCtx(ctx, req); err != nil {
		return Fail(http.StatusBadRequest, err)
	}

	symbol := model.Symbol(req.Symbol)
	records, err := a.source.Records(ctx, symbol)
	if err != nil {
		return Fail(status(err))
	}
	end := a.now().UTC().Truncate(24 * time.Hour)
	start, err := forecast.RangeStart(req.Range, end)
	if err != nil {
		return Fail(http.StatusBadRequest, err)
	}
	sort.Sort(model.ByDate(records))
	window := forecast.Window(records, start, end)
	if len(window) == 0 {
		return Fail(http.StatusNotFound, fmt.Errorf("no data for '%s' in %s: %w", symbol, req.Range, storage.NotFoundErr))
	}
	return encode(RangeView{
		Symbol:       symbol,
		Range:        req.Range,
		Data:         forecast.Bars(window),
		TotalRecords: len(window),
		DateRange: model.Range{
			Start: window[0].Date.Format(model.DateLayout),
			End:   window[len(window)-1].Date.Format(model.DateLayout),
		},
	})
}

func (a *API) compare(ctx context.Context, r *http.Request) ([]byte, int, error) {
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return Fail(http.StatusBadRequest, fmt.Errorf("invalid request: %w", err))
	}
	if err := a.validate.StructCtx(ctx, req); err != nil {
		return Fail(http.StatusBadRequest, err)
	}
	from, err := parse("start_date", req.From)
	if err != nil {
		return Fail(http.StatusBadRequest, err)
	}
	to, err := parse("end_date", req.To)
	if err != nil {
		return Fail(http.StatusBadRequest, err)
	}

	series := make(map[model.Symbol][]model.DailyRecord, len(req.Symbols))
	for _, s := range req.Symbols {
		symbol := model.Symbol(s)
		records, err := a.source.Records(ctx, symbol)
		if errors.Is(err, storage.NotFoundErr) {
			continue
		}
		if err != nil {
			return Fail(status(err))
		}
		sort.Sort(model.ByDate(records))
		if window := forecast.Window(records, from, to); len(window) > 0 {
			series[symbol] = window
		}
	}
	return encode(forecast.Compare(series))
}

func status(err error) (int, error) {
	switch {
	case errors.Is(err, storage.NotFoundErr):
		return http.StatusNotFound, err
	case forecast.Unavailable(err), errors.Is(err, forecast.ErrDuplicateDate):
		return http.StatusUnprocessableEntity, errors.New(forecast.Cause(err))
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, err
	}
	return http.StatusInternalServerError, err
}

func date(r *http.Request, key string) (time.Time, error) {
	return parse(key, r.URL.Query().Get(key))
}

func parse(key, v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(model.DateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s '%s'", key, v)
	}
	return t, nil
}

func encode(v interface{}) ([]byte, int, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return Fail(http.StatusInternalServerError, fmt.Errorf("could not encode response: %w", err))
	}
	return b, http.StatusOK, nil
}
