package ml

import (
	"context"
	"fmt"
	"math/rand"
)

// BoostConfig defines the gradient boosting hyperparameters.
// Subsample below 1 fits every stage on a random fraction of the rows drawn from Seed.
type BoostConfig struct {
	Stages       int
	MaxDepth     int
	LearningRate float64
	Subsample    float64
	Seed         int64
}

// GradientBoosting is a sequential additive ensemble of regression trees
// fitted on the residuals of the squared loss.
type GradientBoosting struct {
	cfg        BoostConfig
	init       float64
	trees      []*Tree
	importance []float64
	loss       []float64
}

// NewGradientBoosting creates a new gradient boosting regressor.
func NewGradientBoosting(cfg BoostConfig) *GradientBoosting {
	if cfg.Subsample <= 0 || cfg.Subsample > 1 {
		cfg.Subsample = 1
	}
	return &GradientBoosting{cfg: cfg}
}

// Fit fits all stages.
func (gb *GradientBoosting) Fit(x [][]float64, y []float64) error {
	return gb.FitContext(context.Background(), x, y)
}

// FitContext fits all stages, checking the context between them.
func (gb *GradientBoosting) FitContext(ctx context.Context, x [][]float64, y []float64) error {
	dim, err := check(x, y)
	if err != nil {
		return err
	}
	n := len(x)
	rng := rand.New(rand.NewSource(gb.cfg.Seed))

	init := 0.0
	for _, v := range y {
		init += v
	}
	init /= float64(n)

	pred := make([]float64, n)
	for i := range pred {
		pred[i] = init
	}
	residuals := make([]float64, n)
	trees := make([]*Tree, 0, gb.cfg.Stages)
	raw := make([]float64, dim)
	loss := make([]float64, 0, gb.cfg.Stages)

	all := make([]int, n)
	for i := range all {
		all[i] = i
	}

	for s := 0; s < gb.cfg.Stages; s++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i := range residuals {
			residuals[i] = y[i] - pred[i]
		}
		samples := all
		if gb.cfg.Subsample < 1 {
			samples = subsample(rng, n, gb.cfg.Subsample)
		}
		tree := NewTree(TreeConfig{MaxDepth: gb.cfg.MaxDepth})
		if err := tree.fit(x, residuals, samples); err != nil {
			return fmt.Errorf("could not fit stage %d: %w", s, err)
		}
		mse := 0.0
		for i := range pred {
			pred[i] += gb.cfg.LearningRate * tree.Predict(x[i])
			d := y[i] - pred[i]
			mse += d * d
		}
		loss = append(loss, mse/float64(n))
		for f, v := range tree.importance {
			raw[f] += v
		}
		trees = append(trees, tree)
	}

	gb.init = init
	gb.trees = trees
	gb.importance = normalise(raw)
	gb.loss = loss
	return nil
}

// Predict returns the boosted prediction.
func (gb *GradientBoosting) Predict(x []float64) float64 {
	v := gb.init
	for _, tree := range gb.trees {
		v += gb.cfg.LearningRate * tree.Predict(x)
	}
	return v
}

// FeatureImportance returns the squared error reduction per feature across all stages.
func (gb *GradientBoosting) FeatureImportance() []float64 {
	return gb.importance
}

func subsample(rng *rand.Rand, n int, fraction float64) []int {
	k := int(fraction * float64(n))
	if k < 1 {
		k = 1
	}
	perm := rng.Perm(n)[:k]
	return perm
}
