package ml

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScores(t *testing.T) {

	type test struct {
		y    []float64
		pred []float64
		r2   float64
		rmse float64
		mae  float64
	}

	tests := map[string]test{
		"exact": {
			y:    []float64{1, 2, 3},
			pred: []float64{1, 2, 3},
			r2:   1,
		},
		"mean": {
			y:    []float64{1, 2, 3},
			pred: []float64{2, 2, 2},
			r2:   0,
			rmse: math.Sqrt(2.0 / 3.0),
			mae:  2.0 / 3.0,
		},
		"constant-exact": {
			y:    []float64{5, 5},
			pred: []float64{5, 5},
			r2:   1,
		},
		"constant-miss": {
			y:    []float64{5, 5},
			pred: []float64{4, 6},
			r2:   0,
			rmse: 1,
			mae:  1,
		},
		"worse-than-mean": {
			y:    []float64{1, 2, 3},
			pred: []float64{3, 2, 1},
			r2:   -3,
			rmse: math.Sqrt(8.0 / 3.0),
			mae:  4.0 / 3.0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, tt.r2, R2(tt.y, tt.pred), 1e-9)
			assert.InDelta(t, tt.rmse, RMSE(tt.y, tt.pred), 1e-9)
			assert.InDelta(t, tt.mae, MAE(tt.y, tt.pred), 1e-9)
		})
	}

	assert.True(t, math.IsNaN(R2(nil, nil)))
	assert.True(t, math.IsNaN(RMSE([]float64{1}, nil)))
}

func TestKFold(t *testing.T) {

	type test struct {
		n, k  int
		sizes []int
	}

	tests := map[string]test{
		"even": {
			n:     10,
			k:     5,
			sizes: []int{2, 2, 2, 2, 2},
		},
		"uneven": {
			n:     11,
			k:     3,
			sizes: []int{4, 4, 3},
		},
		"holdout": {
			n:     10,
			k:     1,
			sizes: []int{2},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			folds, err := KFold(tt.n, tt.k)
			assert.NoError(t, err)
			assert.Equal(t, len(tt.sizes), len(folds))
			for i, f := range folds {
				assert.Equal(t, tt.sizes[i], len(f.Test))
				assert.Equal(t, tt.n, len(f.Test)+len(f.Train))
				// folds are contiguous
				for j := 1; j < len(f.Test); j++ {
					assert.Equal(t, f.Test[j-1]+1, f.Test[j])
				}
			}
		})
	}

	_, err := KFold(3, 5)
	assert.ErrorIs(t, err, ErrDimensions)
}

func TestCrossValidate(t *testing.T) {
	x := make([][]float64, 50)
	y := make([]float64, 50)
	for i := range x {
		x[i] = []float64{float64(i)}
		y[i] = 2*float64(i) + 1
	}
	folds, err := KFold(len(x), 5)
	assert.NoError(t, err)
	scores, err := CrossValidate(context.Background(), func() Regressor {
		return NewLinearRegression()
	}, x, y, folds)
	assert.NoError(t, err)
	assert.Equal(t, 5, len(scores))
	for _, s := range scores {
		assert.InDelta(t, 1.0, s, 1e-9)
	}
}

func TestCrossValidate_Cancelled(t *testing.T) {
	x := make([][]float64, 50)
	y := make([]float64, 50)
	for i := range x {
		x[i] = []float64{float64(i)}
		y[i] = float64(i)
	}
	folds, err := KFold(len(x), 5)
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fitted := 0
	_, err = CrossValidate(ctx, func() Regressor {
		fitted++
		return NewLinearRegression()
	}, x, y, folds)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, fitted)
}
