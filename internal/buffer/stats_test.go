package buffer

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStats_Push(t *testing.T) {

	l := 1001

	type test struct {
		transform func(i int) float64
		avg       float64
		count     int
		stDev     float64
		variance  float64
		sum       float64
	}

	tests := map[string]test{
		"monotonically-increasing-+": {
			transform: func(i int) float64 {
				return float64(i)
			},
			avg:      float64(l / 2),
			count:    l,
			sum:      float64(l) * 500,
			stDev:    289,
			variance: 83500,
		},
		"monotonically-increasing-0": {
			transform: func(i int) float64 {
				return float64(-1*l/2) + float64(i)
			},
			avg:   0,
			count: l,
			sum:   0,
			// NOTE : these are the same as the one above
			stDev:    289,
			variance: 83500,
		},
		"monotonically-increasing--": {
			transform: func(i int) float64 {
				return (-1*float64(l) + 1) + float64(i)
			},
			avg:   -1 * float64(l/2),
			count: l,
			sum:   -1 * float64(l) * 500,
			// NOTE : these are the same as the one above
			stDev:    289,
			variance: 83500,
		},
		"monotonically-decreasing-+": {
			transform: func(i int) float64 {
				return float64(l) - float64(i)
			},
			avg:   float64((l + 1) / 2),
			count: l,
			sum:   float64(l) * 501,
			// NOTE : these are the same as for the increasing case
			stDev:    289,
			variance: 83500,
		},
		"monotonically-decreasing-0": {
			transform: func(i int) float64 {
				return float64(l/2) - float64(i)
			},
			avg:   0,
			count: l,
			sum:   0,
			// NOTE : these are the same as for the increasing case
			stDev:    289,
			variance: 83500,
		},
		"monotonically-decreasing--": {
			transform: func(i int) float64 {
				return -1 * float64(i)
			},
			avg:   -1 * float64(l/2),
			count: l,
			sum:   -1 * float64(l) * 500,
			// NOTE : these are the same as the one above
			stDev:    289,
			variance: 83500,
		},
		"abs-+": {
			transform: func(i int) float64 {
				return math.Abs(-1*float64(l/2) + float64(i))
			},
			avg:   float64(l / 4),
			count: l,
			sum:   250500,
			// NOTE : these are half of the monotonical case
			stDev:    289 / 2,
			variance: 83500 / 4,
		},
		"abs--": {
			transform: func(i int) float64 {
				return -1 * math.Abs(-1*float64(l/2)+float64(i))
			},
			avg:   -1 * float64(l/4),
			count: l,
			sum:   -250500,
			// NOTE : these are half of the monotonical case
			stDev:    289 / 2,
			variance: 83500 / 4,
		},
		"sin": {
			transform: func(i int) float64 {
				return float64(l) * math.Sin(float64(i))
			},
			avg:      1, // very close to the expected '0' anyway
			count:    l,
			sum:      815,
			stDev:    708,    // NOTE : how much larger this is now
			variance: 500692, // NOTE : how much larger this is now
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			stats := NewStats()
			for i := 0; i < l; i++ {
				v := tt.transform(i)
				stats.Push(v)
			}
			assert.Equal(t, tt.avg, math.Round(stats.Avg()))
			assert.Equal(t, tt.count, stats.Count())
			assert.Equal(t, tt.sum, math.Round(stats.Sum()))
			assert.Equal(t, tt.stDev, math.Round(stats.StDev()))
			assert.Equal(t, tt.variance, math.Round(stats.Variance()))
		})
	}
}

func TestStats_Sample(t *testing.T) {
	stats := NewStats()
	assert.True(t, math.IsNaN(stats.SampleStDev()))
	stats.Push(1)
	assert.True(t, math.IsNaN(stats.SampleVariance()))
	for _, v := range []float64{2, 3, 4} {
		stats.Push(v)
	}
	// 1,2,3,4 : sum of squared deviations is 5
	assert.InDelta(t, 5.0/3.0, stats.SampleVariance(), 1e-12)
	assert.InDelta(t, 5.0/4.0, stats.Variance(), 1e-12)
	assert.Equal(t, 1.0, stats.Min())
	assert.Equal(t, 4.0, stats.Max())
}

func TestStatsCollector_Push(t *testing.T) {
	collector := NewStatsCollector(2)
	assert.Equal(t, 0, collector.Size())
	for i := 0; i < 10; i++ {
		collector.Push(float64(i), 5)
	}
	assert.Equal(t, 10, collector.Size())
	assert.Equal(t, 4.5, collector.Stats()[0].Avg())
	assert.Equal(t, 0.0, collector.Stats()[1].StDev())
	assert.Panics(t, func() {
		collector.Push(1)
	}, fmt.Sprintf("expecting a panic for the wrong dimensions"))
}

func TestStats_Missing(t *testing.T) {
	collector := NewStatsCollector(2)
	collector.Push(1, math.NaN())
	collector.Push(3, 2)
	collector.Push(math.NaN(), 4)
	assert.Equal(t, 3, collector.Size())
	assert.Equal(t, 2, collector.Stats()[0].Count())
	assert.Equal(t, 2.0, collector.Stats()[0].Avg())
	assert.Equal(t, 2, collector.Stats()[1].Count())
	assert.Equal(t, 3.0, collector.Stats()[1].Avg())
}
