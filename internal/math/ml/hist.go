package ml

import (
	"context"
	"sort"
)

// HistConfig defines the histogram boosting hyperparameters.
type HistConfig struct {
	Rounds         int
	MaxDepth       int
	Bins           int
	LearningRate   float64
	Lambda         float64
	MinChildWeight float64
}

func (cfg HistConfig) withDefaults() HistConfig {
	if cfg.Bins < 2 {
		cfg.Bins = 255
	}
	if cfg.MaxDepth < 1 {
		cfg.MaxDepth = 6
	}
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = 0.1
	}
	if cfg.Lambda < 0 {
		cfg.Lambda = 0
	}
	return cfg
}

// HistBoosting is a second order gradient boosting model
// growing its trees on quantile binned inputs with l2 regularised leaf weights.
type HistBoosting struct {
	cfg        HistConfig
	base       float64
	trees      [][]node
	importance []float64
}

// NewHistBoosting creates a new histogram boosting regressor.
func NewHistBoosting(cfg HistConfig) *HistBoosting {
	return &HistBoosting{cfg: cfg.withDefaults()}
}

// Fit fits all boosting rounds.
func (hb *HistBoosting) Fit(x [][]float64, y []float64) error {
	return hb.FitContext(context.Background(), x, y)
}

// FitContext fits all boosting rounds, checking the context between them.
func (hb *HistBoosting) FitContext(ctx context.Context, x [][]float64, y []float64) error {
	dim, err := check(x, y)
	if err != nil {
		return err
	}
	n := len(x)

	cuts := make([][]float64, dim)
	bins := make([][]int, dim)
	for f := 0; f < dim; f++ {
		col := make([]float64, n)
		for i := range x {
			col[i] = x[i][f]
		}
		cuts[f] = quantiles(col, hb.cfg.Bins)
		bb := make([]int, n)
		for i, v := range col {
			bb[i] = sort.SearchFloat64s(cuts[f], v)
		}
		bins[f] = bb
	}

	base := 0.0
	for _, v := range y {
		base += v
	}
	base /= float64(n)

	pred := make([]float64, n)
	for i := range pred {
		pred[i] = base
	}
	grad := make([]float64, n)
	all := make([]int, n)
	for i := range all {
		all[i] = i
	}

	h := &histogram{
		cfg:        hb.cfg,
		cuts:       cuts,
		bins:       bins,
		grad:       grad,
		importance: make([]float64, dim),
	}
	trees := make([][]node, 0, hb.cfg.Rounds)
	for r := 0; r < hb.cfg.Rounds; r++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		// squared loss, the hessian is 1 for every sample
		for i := range grad {
			grad[i] = pred[i] - y[i]
		}
		h.nodes = make([]node, 0)
		h.grow(all, 0)
		tree := h.nodes
		for i := range pred {
			pred[i] += walk(tree, x[i])
		}
		trees = append(trees, tree)
	}

	hb.base = base
	hb.trees = trees
	hb.importance = normalise(h.importance)
	return nil
}

// Predict returns the boosted prediction.
func (hb *HistBoosting) Predict(x []float64) float64 {
	v := hb.base
	for _, tree := range hb.trees {
		v += walk(tree, x)
	}
	return v
}

// FeatureImportance returns the total split gain per feature.
func (hb *HistBoosting) FeatureImportance() []float64 {
	return hb.importance
}

// quantiles returns at most k ascending upper bin edges, the last one is the column maximum.
func quantiles(col []float64, k int) []float64 {
	sorted := append([]float64(nil), col...)
	sort.Float64s(sorted)
	unique := sorted[:0]
	for i, v := range sorted {
		if i == 0 || v != unique[len(unique)-1] {
			unique = append(unique, v)
		}
	}
	if len(unique) <= k {
		return append([]float64(nil), unique...)
	}
	cuts := make([]float64, 0, k)
	for i := 1; i <= k; i++ {
		v := unique[i*len(unique)/k-1]
		if len(cuts) == 0 || v > cuts[len(cuts)-1] {
			cuts = append(cuts, v)
		}
	}
	return cuts
}

type histogram struct {
	cfg        HistConfig
	cuts       [][]float64
	bins       [][]int
	grad       []float64
	nodes      []node
	importance []float64
}

func (h *histogram) weight(g, n float64) float64 {
	return -h.cfg.LearningRate * g / (n + h.cfg.Lambda)
}

func (h *histogram) score(g, n float64) float64 {
	return g * g / (n + h.cfg.Lambda)
}

func (h *histogram) grow(samples []int, depth int) int {
	g := 0.0
	for _, i := range samples {
		g += h.grad[i]
	}
	n := float64(len(samples))

	idx := len(h.nodes)
	h.nodes = append(h.nodes, leaf(h.weight(g, n)))
	if depth >= h.cfg.MaxDepth || n < 2*max(h.cfg.MinChildWeight, 1) {
		return idx
	}

	parent := h.score(g, n)
	best := 1e-12
	feature := -1
	split := 0
	for f, cuts := range h.cuts {
		gg := make([]float64, len(cuts))
		nn := make([]float64, len(cuts))
		for _, i := range samples {
			b := h.bins[f][i]
			gg[b] += h.grad[i]
			nn[b]++
		}
		gl, nl := 0.0, 0.0
		for b := 0; b < len(cuts)-1; b++ {
			gl += gg[b]
			nl += nn[b]
			nr := n - nl
			if nl < h.cfg.MinChildWeight || nl == 0 {
				continue
			}
			if nr < h.cfg.MinChildWeight || nr == 0 {
				break
			}
			gain := 0.5 * (h.score(gl, nl) + h.score(g-gl, nr) - parent)
			if gain > best {
				best = gain
				feature = f
				split = b
			}
		}
	}
	if feature < 0 {
		return idx
	}
	h.importance[feature] += best

	var left, right []int
	for _, i := range samples {
		if h.bins[feature][i] <= split {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	l := h.grow(left, depth+1)
	r := h.grow(right, depth+1)
	h.nodes[idx].feature = feature
	h.nodes[idx].threshold = h.cuts[feature][split]
	h.nodes[idx].left = l
	h.nodes[idx].right = r
	return idx
}
