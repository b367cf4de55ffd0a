package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/drakos74/forsight/internal/algo/forecast/panel"
	"github.com/drakos74/forsight/internal/metrics"
	"github.com/drakos74/forsight/internal/model"
	"github.com/drakos74/forsight/internal/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const Name = "forecast"

// Forecaster runs the forecast pipeline for one instrument at a time.
// It keeps no state between runs.
type Forecaster struct {
	cfg     Config
	source  storage.Source
	panel   *panel.Panel
	archive storage.Persistence
}

// NewForecaster creates a new forecaster reading from the given source.
func NewForecaster(cfg Config, source storage.Source, p *panel.Panel) *Forecaster {
	return &Forecaster{
		cfg:     cfg,
		source:  source,
		panel:   p,
		archive: storage.NewVoidStorage(),
	}
}

// WithArchive stores every produced forecast in the given storage.
func (f *Forecaster) WithArchive(archive storage.Persistence) *Forecaster {
	f.archive = archive
	return f
}

// Config returns the forecaster config.
func (f *Forecaster) Config() Config {
	return f.cfg
}

// Forecast loads the records of the symbol and runs the pipeline.
// A non positive horizon falls back to the configured one.
func (f *Forecaster) Forecast(ctx context.Context, symbol model.Symbol, horizon int) (*model.Forecast, error) {
	records, err := f.source.Records(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("could not load records for '%s': %w", symbol, err)
	}
	return f.Run(ctx, symbol, records, horizon)
}

// Run runs the pipeline on the given records.
func (f *Forecaster) Run(ctx context.Context, symbol model.Symbol, records []model.DailyRecord, horizon int) (*model.Forecast, error) {
	if horizon <= 0 {
		horizon = f.cfg.Horizon
	}
	runID := uuid.New().String()
	logger := log.With().
		Str("run", runID).
		Str("symbol", string(symbol)).
		Int("horizon", horizon).
		Logger()

	start := time.Now()
	forecast, err := f.run(ctx, runID, symbol, records, horizon)
	if err != nil {
		metrics.Observer.IncrementForecasts(Cause(err))
		if Unavailable(err) {
			logger.Warn().Err(err).Msg("forecast unavailable")
		} else {
			logger.Error().Err(err).Msg("forecast failed")
		}
		return nil, err
	}
	metrics.Observer.IncrementForecasts("ok")
	logger.Info().
		Str("model", string(forecast.BestModel)).
		Float64("r2", forecast.ModelMetrics.TestR2).
		Float64("current", forecast.CurrentPrice).
		Float64("predicted", forecast.PredictedPrice).
		Dur("duration", time.Since(start)).
		Msg("forecast")

	if err := f.archive.Store(storage.Key{Symbol: symbol, Label: runID}, forecast); err != nil {
		logger.Error().Err(err).Msg("could not archive forecast")
	}
	return forecast, nil
}

func (f *Forecaster) run(ctx context.Context, runID string, symbol model.Symbol, records []model.DailyRecord, horizon int) (*model.Forecast, error) {
	if len(records) < f.cfg.MinHistory {
		return nil, fmt.Errorf("%d records, need %d: %w", len(records), f.cfg.MinHistory, ErrInsufficientHistory)
	}

	ds, err := BuildDataset(records, horizon)
	if err != nil {
		return nil, err
	}
	if ds.Size() < f.cfg.MinRows || ds.Latest == nil {
		return nil, fmt.Errorf("%d rows, need %d: %w", ds.Size(), f.cfg.MinRows, ErrInsufficientFeatureRows)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fs, err := SelectFeatures(ds, f.cfg)
	if err != nil {
		return nil, err
	}

	part, err := Split(fs.Project(ds.Rows), ds.Target, f.cfg.TestRatio)
	if err != nil {
		return nil, fmt.Errorf("could not split: %w", err)
	}
	scaler := FitScaler(part.XTrain)
	data := panel.Data{
		XTrain: scaler.Transform(part.XTrain),
		YTrain: part.YTrain,
		XTest:  scaler.Transform(part.XTest),
		YTest:  part.YTest,
		Folds:  f.cfg.Folds(len(part.XTrain)),
	}
	log.Debug().
		Str("run", runID).
		Int("rows", ds.Size()).
		Int("features", fs.Size()).
		Int("train", len(data.XTrain)).
		Int("test", len(data.XTest)).
		Int("folds", data.Folds).
		Msg("dataset")

	outcomes := f.panel.Train(ctx, data)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	best, err := panel.Select(outcomes)
	if err != nil {
		return nil, err
	}

	predicted := best.Model.Predict(scaler.TransformRow(fs.ProjectRow(ds.Latest)))
	r2 := best.Metrics.TestR2

	all := make(map[model.Family]model.Metrics)
	failures := make(map[model.Family]string)
	for _, o := range outcomes {
		if o.OK() {
			all[o.Family] = o.Metrics
		} else {
			failures[o.Family] = o.Err.Error()
		}
	}

	names := fs.Names
	if len(names) > f.cfg.FeatureNames {
		names = names[:f.cfg.FeatureNames]
	}

	return &model.Forecast{
		RunID:                  runID,
		Symbol:                 symbol,
		CurrentPrice:           ds.Current,
		PredictedPrice:         predicted,
		PredictedChangePercent: model.ChangePercent(ds.Current, predicted),
		BestModel:              best.Family,
		ModelMetrics:           best.Metrics,
		AllModels:              all,
		Failures:               failures,
		Accuracy:               model.AccuracyOf(r2),
		Confidence:             model.ConfidenceOf(r2),
		PredictionBasis: model.Basis{
			Model:           best.Family,
			FeaturesUsed:    fs.Size(),
			FeatureNames:    append([]string(nil), names...),
			TrainingSamples: len(data.XTrain),
			TestSamples:     len(data.XTest),
			Folds:           data.Folds,
			TopFeatures:     TopImportance(best.Model, fs.Names, f.cfg.Top),
			TopCorrelations: TopCorrelations(ds, fs, f.cfg.Top),
		},
		DaysAhead: horizon,
		AsOf:      ds.LatestDate.Format(model.DateLayout),
	}, nil
}
