package ml

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func wave(n int) ([][]float64, []float64) {
	x := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		a := float64(i) / 10
		b := float64((i * 7) % 11)
		x[i] = []float64{a, b}
		y[i] = 5*math.Sin(a) + 0.1*b
	}
	return x, y
}

func TestEnsembles(t *testing.T) {

	type test struct {
		model func() Regressor
		r2    float64
	}

	tests := map[string]test{
		"forest": {
			model: func() Regressor {
				return NewForest(ForestConfig{Trees: 20, MaxDepth: 8, Seed: 42, Workers: 4})
			},
			r2: 0.9,
		},
		"boosting": {
			model: func() Regressor {
				return NewGradientBoosting(BoostConfig{Stages: 100, MaxDepth: 3, LearningRate: 0.1, Seed: 42})
			},
			r2: 0.95,
		},
		"boosting-subsample": {
			model: func() Regressor {
				return NewGradientBoosting(BoostConfig{Stages: 100, MaxDepth: 3, LearningRate: 0.1, Subsample: 0.8, Seed: 42})
			},
			r2: 0.9,
		},
		"histogram": {
			model: func() Regressor {
				return NewHistBoosting(HistConfig{Rounds: 100, MaxDepth: 4, LearningRate: 0.1, Lambda: 1, MinChildWeight: 1})
			},
			r2: 0.9,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			x, y := wave(200)
			model := tt.model()
			err := model.Fit(x, y)
			assert.NoError(t, err)
			pred := PredictAll(model, x)
			assert.Greater(t, R2(y, pred), tt.r2)

			importance, ok := model.(Importance)
			assert.True(t, ok)
			ff := importance.FeatureImportance()
			assert.Equal(t, 2, len(ff))
			assert.InDelta(t, 1.0, ff[0]+ff[1], 1e-9)
			assert.Greater(t, ff[0], ff[1])

			// same config, same data, same predictions
			again := tt.model()
			assert.NoError(t, again.Fit(x, y))
			assert.Equal(t, pred, PredictAll(again, x))
		})
	}
}

func TestGradientBoosting_Loss(t *testing.T) {
	x, y := wave(100)
	gb := NewGradientBoosting(BoostConfig{Stages: 20, MaxDepth: 2, LearningRate: 0.1})
	assert.NoError(t, gb.Fit(x, y))
	loss := gb.loss
	assert.Equal(t, 20, len(loss))
	for i := 1; i < len(loss); i++ {
		assert.LessOrEqual(t, loss[i], loss[i-1]+1e-12)
	}
}

func TestQuantiles(t *testing.T) {
	assert.Equal(t, []float64{1, 2, 3}, quantiles([]float64{3, 1, 2, 2, 1}, 10))
	cuts := quantiles([]float64{1, 2, 3, 4, 5, 6, 7, 8}, 4)
	assert.Equal(t, []float64{2, 4, 6, 8}, cuts)
}

func TestEnsembles_Errors(t *testing.T) {
	assert.ErrorIs(t, NewForest(ForestConfig{}).Fit(nil, nil), ErrEmpty)
	assert.ErrorIs(t, NewGradientBoosting(BoostConfig{}).Fit(nil, nil), ErrEmpty)
	assert.ErrorIs(t, NewHistBoosting(HistConfig{}).Fit([][]float64{{1}}, []float64{1, 2}), ErrDimensions)
}

func TestEnsembles_Cancelled(t *testing.T) {

	type test struct {
		model Regressor
	}

	tests := map[string]test{
		"forest": {
			model: NewForest(ForestConfig{Trees: 10, MaxDepth: 3, Workers: 2}),
		},
		"boosting": {
			model: NewGradientBoosting(BoostConfig{Stages: 10, MaxDepth: 2, LearningRate: 0.1}),
		},
		"histogram": {
			model: NewHistBoosting(HistConfig{Rounds: 10, MaxDepth: 2, LearningRate: 0.1}),
		},
		"linear": {
			model: NewLinearRegression(),
		},
	}

	x, y := wave(100)
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			assert.ErrorIs(t, Fit(ctx, tt.model, x, y), context.Canceled)
			if cf, ok := tt.model.(ContextFitter); ok {
				assert.ErrorIs(t, cf.FitContext(ctx, x, y), context.Canceled)
			}
			assert.NoError(t, Fit(context.Background(), tt.model, x, y))
		})
	}
}
