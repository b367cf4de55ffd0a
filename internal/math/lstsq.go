package math

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrDegenerate is returned when the system cannot be factorised.
var ErrDegenerate = errors.New("degenerate system")

// LeastSquares solves min ||a*x - b|| and returns the minimum norm solution.
// Singular values below eps * max(rows, cols) relative to the largest one are discarded,
// so linearly dependent columns share their weight instead of failing the factorisation.
func LeastSquares(a *mat.Dense, b []float64) ([]float64, error) {
	r, c := a.Dims()
	if r != len(b) {
		return nil, fmt.Errorf("inconsistent dimensions %d vs %d: %w", r, len(b), ErrDegenerate)
	}
	if r == 0 || c == 0 {
		return nil, fmt.Errorf("empty system: %w", ErrDegenerate)
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, fmt.Errorf("could not factorise %dx%d matrix: %w", r, c, ErrDegenerate)
	}

	rcond := float64(max(r, c)) * eps
	rank := svd.Rank(rcond)
	if rank == 0 {
		return nil, fmt.Errorf("zero rank matrix: %w", ErrDegenerate)
	}

	var x mat.Dense
	svd.SolveTo(&x, mat.NewDense(r, 1, append([]float64(nil), b...)), rank)

	cc := make([]float64, c)
	for i := 0; i < c; i++ {
		cc[i] = x.At(i, 0)
	}
	return cc, nil
}

// Fit fits the given series of x and y into a polynomial function of the given degree
// out put is a vector with the coefficients of the corresponding powers of x
// c[0] + c[1]x + c[2]x^2 + c[3]x^3 + ...
func Fit(x, y []float64, degree int) ([]float64, error) {
	return LeastSquares(vandermonde(x, degree), y)
}

func vandermonde(a []float64, degree int) *mat.Dense {
	x := mat.NewDense(len(a), degree+1, nil)
	for i := range a {
		for j, p := 0, 1.; j <= degree; j, p = j+1, p*a[i] {
			x.Set(i, j, p)
		}
	}
	return x
}

var eps = math.Nextafter(1, 2) - 1
