package ml

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned when a model is fitted without samples.
	ErrEmpty = errors.New("no samples")
	// ErrDimensions is returned for inconsistent input shapes.
	ErrDimensions = errors.New("inconsistent dimensions")
	// ErrNotFitted is returned when a model is used before fitting.
	ErrNotFitted = errors.New("model not fitted")
)

// Regressor is a model fitting a continuous target.
type Regressor interface {
	Fit(x [][]float64, y []float64) error
	Predict(x []float64) float64
}

// ContextFitter is implemented by regressors that stop fitting when the context is done.
type ContextFitter interface {
	FitContext(ctx context.Context, x [][]float64, y []float64) error
}

// Fit fits the regressor, through FitContext when it supports it.
func Fit(ctx context.Context, r Regressor, x [][]float64, y []float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if cf, ok := r.(ContextFitter); ok {
		return cf.FitContext(ctx, x, y)
	}
	return r.Fit(x, y)
}

// Importance is implemented by regressors that can rank their input features.
// The returned weights are non-negative and sum up to 1, unless the model never split.
type Importance interface {
	FeatureImportance() []float64
}

// PredictAll applies the regressor to every row.
func PredictAll(r Regressor, x [][]float64) []float64 {
	yy := make([]float64, len(x))
	for i, row := range x {
		yy[i] = r.Predict(row)
	}
	return yy
}

func check(x [][]float64, y []float64) (int, error) {
	if len(x) == 0 {
		return 0, ErrEmpty
	}
	if len(x) != len(y) {
		return 0, fmt.Errorf("%d rows vs %d targets: %w", len(x), len(y), ErrDimensions)
	}
	dim := len(x[0])
	for i, row := range x {
		if len(row) != dim {
			return 0, fmt.Errorf("row %d has %d features instead of %d: %w", i, len(row), dim, ErrDimensions)
		}
	}
	return dim, nil
}

func normalise(ff []float64) []float64 {
	sum := 0.0
	for _, f := range ff {
		sum += f
	}
	nn := make([]float64, len(ff))
	if sum <= 0 {
		return nn
	}
	for i, f := range ff {
		nn[i] = f / sum
	}
	return nn
}
