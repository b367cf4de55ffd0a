package math

import (
	"math"
	"strconv"
)

// Format formats a float based on the given precision
func Format(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// Clamp bounds the value within [min,max].
// NaN is mapped to min.
func Clamp(f, min, max float64) float64 {
	if math.IsNaN(f) {
		return min
	}
	return math.Max(min, math.Min(max, f))
}

// Missing returns true if the value marks a missing observation.
func Missing(f float64) bool {
	return math.IsNaN(f)
}

// FillMissing replaces missing values with the given filler in place.
func FillMissing(ff []float64, filler float64) []float64 {
	for i, f := range ff {
		if Missing(f) {
			ff[i] = filler
		}
	}
	return ff
}
