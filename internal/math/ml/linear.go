package ml

import (
	"fmt"

	fmath "github.com/drakos74/forsight/internal/math"
	"gonum.org/v1/gonum/mat"
)

// LinearRegression is an ordinary least squares model with intercept.
// Collinear inputs are resolved to the minimum norm coefficients.
type LinearRegression struct {
	intercept float64
	coef      []float64
}

// NewLinearRegression creates a new linear regression model.
func NewLinearRegression() *LinearRegression {
	return &LinearRegression{}
}

// Fit solves the least squares problem on the centred inputs.
func (lr *LinearRegression) Fit(x [][]float64, y []float64) error {
	dim, err := check(x, y)
	if err != nil {
		return err
	}
	n := len(x)

	xm := make([]float64, dim)
	ym := 0.0
	for i, row := range x {
		for j, v := range row {
			xm[j] += v
		}
		ym += y[i]
	}
	for j := range xm {
		xm[j] /= float64(n)
	}
	ym /= float64(n)

	coef := make([]float64, dim)
	if dim > 0 {
		a := mat.NewDense(n, dim, nil)
		b := make([]float64, n)
		for i, row := range x {
			for j, v := range row {
				a.Set(i, j, v-xm[j])
			}
			b[i] = y[i] - ym
		}
		cc, err := fmath.LeastSquares(a, b)
		if err == nil {
			coef = cc
		} else if !allZero(a) {
			return fmt.Errorf("could not solve least squares: %w", err)
		}
	}

	intercept := ym
	for j, c := range coef {
		intercept -= c * xm[j]
	}
	lr.coef = coef
	lr.intercept = intercept
	return nil
}

// Predict returns the linear combination of the inputs.
func (lr *LinearRegression) Predict(x []float64) float64 {
	v := lr.intercept
	for j, c := range lr.coef {
		if j < len(x) {
			v += c * x[j]
		}
	}
	return v
}

func allZero(a *mat.Dense) bool {
	r, c := a.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if a.At(i, j) != 0 {
				return false
			}
		}
	}
	return true
}
