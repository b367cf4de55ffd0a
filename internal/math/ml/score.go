package ml

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// R2 returns the coefficient of determination of the predictions.
// For a constant target it is 1 on an exact fit and 0 otherwise.
func R2(y, pred []float64) float64 {
	if len(y) == 0 || len(y) != len(pred) {
		return math.NaN()
	}
	mean := stat.Mean(y, nil)
	ss := 0.0
	for _, v := range y {
		d := v - mean
		ss += d * d
	}
	if ss == 0 {
		for i := range y {
			if y[i] != pred[i] {
				return 0
			}
		}
		return 1
	}
	return stat.RSquaredFrom(pred, y, nil)
}

// RMSE returns the root mean squared error.
func RMSE(y, pred []float64) float64 {
	if len(y) == 0 || len(y) != len(pred) {
		return math.NaN()
	}
	s := 0.0
	for i := range y {
		d := y[i] - pred[i]
		s += d * d
	}
	return math.Sqrt(s / float64(len(y)))
}

// MAE returns the mean absolute error.
func MAE(y, pred []float64) float64 {
	if len(y) == 0 || len(y) != len(pred) {
		return math.NaN()
	}
	s := 0.0
	for i := range y {
		s += math.Abs(y[i] - pred[i])
	}
	return s / float64(len(y))
}
