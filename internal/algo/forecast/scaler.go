package forecast

import (
	"github.com/drakos74/forsight/internal/buffer"
)

// Scaler standardises columns with the mean and population standard deviation of the rows it was fitted on.
// It is read only after fitting.
type Scaler struct {
	Mean []float64
	Std  []float64
}

// FitScaler computes the column statistics of the given rows.
func FitScaler(x [][]float64) *Scaler {
	if len(x) == 0 {
		return &Scaler{}
	}
	dim := len(x[0])
	stats := buffer.NewStatsCollector(dim)
	for _, row := range x {
		stats.Push(row...)
	}
	s := &Scaler{
		Mean: make([]float64, dim),
		Std:  make([]float64, dim),
	}
	for j, st := range stats.Stats() {
		s.Mean[j] = st.Avg()
		std := st.StDev()
		if std == 0 {
			std = 1
		}
		s.Std[j] = std
	}
	return s
}

// Transform returns the standardised copy of the given rows.
func (s *Scaler) Transform(x [][]float64) [][]float64 {
	out := make([][]float64, len(x))
	for i, row := range x {
		out[i] = s.TransformRow(row)
	}
	return out
}

// TransformRow returns the standardised copy of a single row.
func (s *Scaler) TransformRow(row []float64) []float64 {
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - s.Mean[j]) / s.Std[j]
	}
	return out
}
