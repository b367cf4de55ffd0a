package forecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func syntheticDataset(n int) *Dataset {
	ds := &Dataset{
		Columns: []string{"constant", "missing_60", "missing_40", "a", "b", "c", "d", "half"},
	}
	for i := 0; i < n; i++ {
		v := float64(i)
		row := []float64{
			1,
			v,
			v * 2,
			v,
			v * v,
			math.Sin(v),
			float64(i % 7),
			v,
		}
		// 60% missing
		if i%5 < 3 {
			row[1] = math.NaN()
		}
		// 40% missing
		if i%5 < 2 {
			row[2] = math.NaN()
		}
		// exactly half missing
		if i%2 == 0 {
			row[7] = math.NaN()
		}
		ds.Rows = append(ds.Rows, row)
		ds.Target = append(ds.Target, v)
	}
	return ds
}

func TestSelectFeatures(t *testing.T) {
	ds := syntheticDataset(100)
	fs, err := SelectFeatures(ds, DefaultConfig())
	assert.NoError(t, err)
	assert.Equal(t, []string{"missing_40", "a", "b", "c", "d"}, fs.Names)
	assert.Equal(t, []int{2, 3, 4, 5, 6}, fs.Index)
}

func TestSelectFeatures_Insufficient(t *testing.T) {

	type test struct {
		min int
		err error
	}

	tests := map[string]test{
		"enough": {
			min: 5,
		},
		"too-few": {
			min: 6,
			err: ErrInsufficientFeatures,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.MinFeatures = tt.min
			_, err := SelectFeatures(syntheticDataset(100), cfg)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	_, err := SelectFeatures(&Dataset{Columns: Columns()}, DefaultConfig())
	assert.ErrorIs(t, err, ErrInsufficientFeatures)
}

func TestFeatureSet_Project(t *testing.T) {
	fs := FeatureSet{
		Names: []string{"b", "c"},
		Index: []int{1, 2},
	}
	row := []float64{1, math.NaN(), 3}
	assert.Equal(t, []float64{0, 3}, fs.ProjectRow(row))
	// the source row is not modified
	assert.True(t, math.IsNaN(row[1]))
	assert.Equal(t, [][]float64{{0, 3}, {5, 6}}, fs.Project([][]float64{row, {4, 5, 6}}))
}
