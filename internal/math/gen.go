package math

import "math"

// Series generates a linear series starting at zero.
func Series(factor float64, limit int) []float64 {
	return Line(0, factor, limit)
}

// Line generates start + slope*i for i in [0,limit).
func Line(start, slope float64, limit int) []float64 {
	xx := make([]float64, limit)
	for i := 0; i < limit; i++ {
		xx[i] = start + slope*float64(i)
	}
	return xx
}

// Sine generates a sine wave of the given amplitude.
func Sine(factor float64, limit int, v float64) []float64 {
	xx := make([]float64, limit)
	for i := 0; i < limit; i++ {
		xx[i] = factor * SineEvolve(i, v)
	}
	return xx
}

func SineEvolve(i int, p float64) float64 {
	return math.Sin(float64(i) * p)
}
