package forecast

import (
	"fmt"
	"math"

	"github.com/drakos74/forsight/internal/buffer"
	fmath "github.com/drakos74/forsight/internal/math"
)

// FeatureSet is the selection of dataset columns used for training.
type FeatureSet struct {
	Names []string
	Index []int
}

// Size returns the number of retained columns.
func (fs FeatureSet) Size() int {
	return len(fs.Names)
}

// Project restricts the rows to the retained columns and replaces missing values with 0.
func (fs FeatureSet) Project(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = fs.ProjectRow(row)
	}
	return out
}

// ProjectRow restricts a single row to the retained columns and replaces missing values with 0.
func (fs FeatureSet) ProjectRow(row []float64) []float64 {
	out := make([]float64, len(fs.Index))
	for k, j := range fs.Index {
		out[k] = row[j]
	}
	return fmath.FillMissing(out, 0)
}

// SelectFeatures keeps the columns whose coverage exceeds the configured minimum
// and whose non-missing values are not constant.
func SelectFeatures(ds *Dataset, cfg Config) (FeatureSet, error) {
	fs := FeatureSet{
		Names: make([]string, 0),
		Index: make([]int, 0),
	}
	n := ds.Size()
	if n == 0 {
		return fs, fmt.Errorf("no rows to select from: %w", ErrInsufficientFeatures)
	}
	stats := buffer.NewStatsCollector(len(ds.Columns))
	for _, row := range ds.Rows {
		stats.Push(row...)
	}
	for j, s := range stats.Stats() {
		coverage := float64(s.Count()) / float64(n)
		if coverage <= cfg.MinCoverage {
			continue
		}
		if std := s.SampleStDev(); math.IsNaN(std) || std <= 0 {
			continue
		}
		fs.Names = append(fs.Names, ds.Columns[j])
		fs.Index = append(fs.Index, j)
	}
	if fs.Size() < cfg.MinFeatures {
		return fs, fmt.Errorf("%d of %d columns retained, need %d: %w", fs.Size(), len(ds.Columns), cfg.MinFeatures, ErrInsufficientFeatures)
	}
	return fs, nil
}
