package ml

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ForestConfig defines the random forest hyperparameters.
type ForestConfig struct {
	Trees          int
	MaxDepth       int
	MinSamplesLeaf int
	Seed           int64
	// Workers bounds the number of trees grown concurrently, 0 means one per cpu.
	Workers int
}

// RandomForest is a bagged ensemble of regression trees.
// Each tree is grown on a bootstrap sample drawn from its own seeded source,
// so the result does not depend on the scheduling of the workers.
type RandomForest struct {
	cfg        ForestConfig
	trees      []*Tree
	importance []float64
}

// NewForest creates a new random forest with the given config.
func NewForest(cfg ForestConfig) *RandomForest {
	if cfg.Trees < 1 {
		cfg.Trees = 1
	}
	if cfg.Workers < 1 {
		cfg.Workers = runtime.NumCPU()
	}
	return &RandomForest{
		cfg: cfg,
	}
}

// Fit grows all trees of the forest.
func (rf *RandomForest) Fit(x [][]float64, y []float64) error {
	return rf.FitContext(context.Background(), x, y)
}

// FitContext grows all trees of the forest, it stops before the next tree once the context is done.
func (rf *RandomForest) FitContext(ctx context.Context, x [][]float64, y []float64) error {
	dim, err := check(x, y)
	if err != nil {
		return err
	}
	n := len(x)

	trees := make([]*Tree, rf.cfg.Trees)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(rf.cfg.Workers)
	for i := range trees {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(rf.cfg.Seed + int64(i)))
			samples := make([]int, n)
			for j := range samples {
				samples[j] = rng.Intn(n)
			}
			tree := NewTree(TreeConfig{
				MaxDepth:       rf.cfg.MaxDepth,
				MinSamplesLeaf: rf.cfg.MinSamplesLeaf,
			})
			if err := tree.fit(x, y, samples); err != nil {
				return fmt.Errorf("could not grow tree %d: %w", i, err)
			}
			trees[i] = tree
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	importance := make([]float64, dim)
	for _, tree := range trees {
		for f, v := range tree.FeatureImportance() {
			importance[f] += v
		}
	}
	rf.trees = trees
	rf.importance = normalise(importance)
	return nil
}

// Predict returns the average of the tree predictions.
func (rf *RandomForest) Predict(x []float64) float64 {
	if len(rf.trees) == 0 {
		return 0
	}
	sum := 0.0
	for _, tree := range rf.trees {
		sum += tree.Predict(x)
	}
	return sum / float64(len(rf.trees))
}

// FeatureImportance returns the mean of the normalised tree importances.
func (rf *RandomForest) FeatureImportance() []float64 {
	return rf.importance
}
