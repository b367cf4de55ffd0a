package forecast

import (
	"math"
	"sort"

	"github.com/drakos74/forsight/internal/math/ml"
	"gonum.org/v1/gonum/stat"
)

type ranked struct {
	name  string
	value float64
}

// top keeps the highest values, the earlier entry wins on ties.
func top(rr []ranked, k int) map[string]float64 {
	sort.SliceStable(rr, func(i, j int) bool {
		return rr[i].value > rr[j].value
	})
	if len(rr) > k {
		rr = rr[:k]
	}
	m := make(map[string]float64, len(rr))
	for _, r := range rr {
		m[r.name] = r.value
	}
	return m
}

// TopImportance ranks the features by the model importance.
// Models that cannot rank their inputs return an empty map.
func TopImportance(m ml.Regressor, names []string, k int) map[string]float64 {
	im, ok := m.(ml.Importance)
	if !ok {
		return map[string]float64{}
	}
	weights := im.FeatureImportance()
	rr := make([]ranked, 0, len(weights))
	for i, w := range weights {
		if i < len(names) {
			rr = append(rr, ranked{name: names[i], value: w})
		}
	}
	return top(rr, k)
}

// TopCorrelations ranks the retained features by the absolute pearson correlation with the target.
// Each correlation uses the rows where the feature is present, undefined correlations are skipped.
func TopCorrelations(ds *Dataset, fs FeatureSet, k int) map[string]float64 {
	rr := make([]ranked, 0, fs.Size())
	for c, j := range fs.Index {
		x := make([]float64, 0, ds.Size())
		y := make([]float64, 0, ds.Size())
		for i, row := range ds.Rows {
			if math.IsNaN(row[j]) {
				continue
			}
			x = append(x, row[j])
			y = append(y, ds.Target[i])
		}
		if len(x) < 2 {
			continue
		}
		corr := stat.Correlation(x, y, nil)
		if math.IsNaN(corr) || math.IsInf(corr, 0) {
			continue
		}
		rr = append(rr, ranked{name: fs.Names[c], value: math.Abs(corr)})
	}
	return top(rr, k)
}
