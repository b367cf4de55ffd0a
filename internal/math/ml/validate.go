package ml

import (
	"context"
	"fmt"
	"math"
)

// Fold holds the row indices of one cross validation split.
type Fold struct {
	Train []int
	Test  []int
}

// KFold splits n rows into k contiguous, unshuffled folds.
// The first n%k folds get one extra row.
// k == 1 holds out the last fifth of the rows.
func KFold(n, k int) ([]Fold, error) {
	if k < 1 || n < 2 || k > n {
		return nil, fmt.Errorf("cannot split %d rows into %d folds: %w", n, k, ErrDimensions)
	}
	if k == 1 {
		test := int(math.Ceil(float64(n) * 0.2))
		return []Fold{{
			Train: span(0, n-test),
			Test:  span(n-test, n),
		}}, nil
	}
	folds := make([]Fold, 0, k)
	start := 0
	for f := 0; f < k; f++ {
		size := n / k
		if f < n%k {
			size++
		}
		end := start + size
		folds = append(folds, Fold{
			Train: append(span(0, start), span(end, n)...),
			Test:  span(start, end),
		})
		start = end
	}
	return folds, nil
}

// CrossValidate refits a fresh model on every fold and returns the R2 scores on the held out rows.
// It stops with the context error once the context is done.
func CrossValidate(ctx context.Context, newModel func() Regressor, x [][]float64, y []float64, folds []Fold) ([]float64, error) {
	scores := make([]float64, 0, len(folds))
	for i, fold := range folds {
		model := newModel()
		if err := Fit(ctx, model, rows(x, fold.Train), values(y, fold.Train)); err != nil {
			return nil, fmt.Errorf("could not fit fold %d: %w", i, err)
		}
		pred := PredictAll(model, rows(x, fold.Test))
		scores = append(scores, R2(values(y, fold.Test), pred))
	}
	return scores, nil
}

func span(from, to int) []int {
	ii := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		ii = append(ii, i)
	}
	return ii
}

func rows(x [][]float64, ii []int) [][]float64 {
	xx := make([][]float64, len(ii))
	for j, i := range ii {
		xx[j] = x[i]
	}
	return xx
}

func values(y []float64, ii []int) []float64 {
	yy := make([]float64, len(ii))
	for j, i := range ii {
		yy[j] = y[i]
	}
	return yy
}
