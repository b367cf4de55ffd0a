package ml

import (
	"math"
	"sort"
)

// TreeConfig bounds the growth of a regression tree.
// MaxDepth of 0 means unbounded.
type TreeConfig struct {
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
}

func (cfg TreeConfig) withDefaults() TreeConfig {
	if cfg.MinSamplesSplit < 2 {
		cfg.MinSamplesSplit = 2
	}
	if cfg.MinSamplesLeaf < 1 {
		cfg.MinSamplesLeaf = 1
	}
	return cfg
}

// node is a tree node, leaves have no children.
// samples with x[feature] <= threshold go to the left.
type node struct {
	feature   int
	threshold float64
	left      int
	right     int
	value     float64
}

func (n node) leaf() bool {
	return n.left < 0
}

func walk(nodes []node, x []float64) float64 {
	i := 0
	for !nodes[i].leaf() {
		if x[nodes[i].feature] <= nodes[i].threshold {
			i = nodes[i].left
		} else {
			i = nodes[i].right
		}
	}
	return nodes[i].value
}

func leaf(value float64) node {
	return node{left: -1, right: -1, value: value}
}

// Tree is a regression tree minimising the squared error of its leaves.
type Tree struct {
	cfg        TreeConfig
	nodes      []node
	importance []float64
}

// NewTree creates a new regression tree.
func NewTree(cfg TreeConfig) *Tree {
	return &Tree{cfg: cfg.withDefaults()}
}

// Fit grows the tree on all given samples.
func (t *Tree) Fit(x [][]float64, y []float64) error {
	samples := make([]int, len(x))
	for i := range samples {
		samples[i] = i
	}
	return t.fit(x, y, samples)
}

// Predict returns the leaf value for the given input.
func (t *Tree) Predict(x []float64) float64 {
	if len(t.nodes) == 0 {
		return math.NaN()
	}
	return walk(t.nodes, x)
}

// FeatureImportance returns the normalised squared error reduction per feature.
func (t *Tree) FeatureImportance() []float64 {
	return normalise(t.importance)
}

// depth returns the depth of the deepest leaf.
func (t *Tree) depth() int {
	if len(t.nodes) == 0 {
		return 0
	}
	var deepest func(i int) int
	deepest = func(i int) int {
		if t.nodes[i].leaf() {
			return 0
		}
		l := deepest(t.nodes[i].left)
		r := deepest(t.nodes[i].right)
		if l > r {
			return l + 1
		}
		return r + 1
	}
	return deepest(0)
}

// fit grows the tree on the given sample indices, which may contain duplicates.
func (t *Tree) fit(x [][]float64, y []float64, samples []int) error {
	dim, err := check(x, y)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return ErrEmpty
	}
	n := len(samples)
	b := &grower{
		cfg:     t.cfg,
		x:       x,
		y:       y,
		samples: samples,
		dim:     dim,
		order:   make([][]int, dim),
		left:    make([]bool, n),
		buf:     make([]int, n),
	}
	// pre-sort the positions once per feature, children inherit the order by stable partitioning
	for f := 0; f < dim; f++ {
		o := make([]int, n)
		for p := range o {
			o[p] = p
		}
		sort.SliceStable(o, func(i, j int) bool {
			return x[samples[o[i]]][f] < x[samples[o[j]]][f]
		})
		b.order[f] = o
	}
	b.importance = make([]float64, dim)
	b.nodes = make([]node, 0)
	b.grow(0, n, 0)
	t.nodes = b.nodes
	t.importance = b.importance
	return nil
}

type grower struct {
	cfg        TreeConfig
	x          [][]float64
	y          []float64
	samples    []int
	dim        int
	order      [][]int
	left       []bool
	buf        []int
	nodes      []node
	importance []float64
}

func (b *grower) target(p int) float64 {
	return b.y[b.samples[p]]
}

func (b *grower) value(p, f int) float64 {
	return b.x[b.samples[p]][f]
}

// grow builds the sub-tree for the positions order[f][lo:hi] and returns its node index.
func (b *grower) grow(lo, hi, depth int) int {
	n := hi - lo
	positions := b.order[0][lo:hi]

	sum := 0.0
	for _, p := range positions {
		sum += b.target(p)
	}
	mean := sum / float64(n)
	sse := 0.0
	for _, p := range positions {
		d := b.target(p) - mean
		sse += d * d
	}

	idx := len(b.nodes)
	b.nodes = append(b.nodes, leaf(mean))

	if (b.cfg.MaxDepth > 0 && depth >= b.cfg.MaxDepth) ||
		n < b.cfg.MinSamplesSplit ||
		n < 2*b.cfg.MinSamplesLeaf ||
		sse <= 1e-12*float64(n)*(1+mean*mean) {
		return idx
	}

	// the gain of a split is the squared error reduction,
	// for mean centred targets it reduces to dl^2 * n / (nl * nr)
	best := 1e-12 * (1 + sse)
	feature := -1
	split := 0
	threshold := 0.0
	minLeaf := b.cfg.MinSamplesLeaf
	for f := 0; f < b.dim; f++ {
		o := b.order[f][lo:hi]
		dl := 0.0
		for k := 0; k < n-1; k++ {
			dl += b.target(o[k]) - mean
			nl := k + 1
			nr := n - nl
			if nl < minLeaf {
				continue
			}
			if nr < minLeaf {
				break
			}
			xv := b.value(o[k], f)
			xn := b.value(o[k+1], f)
			if xn <= xv {
				// equal values cannot be separated
				continue
			}
			gain := dl * dl * float64(n) / (float64(nl) * float64(nr))
			if gain > best {
				best = gain
				feature = f
				split = nl
				threshold = xv + (xn-xv)/2
				if threshold >= xn {
					threshold = xv
				}
			}
		}
	}

	if feature < 0 {
		return idx
	}

	b.importance[feature] += best

	// mark the positions going left and partition every feature order accordingly
	for k, p := range b.order[feature][lo:hi] {
		b.left[p] = k < split
	}
	for f := 0; f < b.dim; f++ {
		o := b.order[f][lo:hi]
		l := 0
		r := split
		for _, p := range o {
			if b.left[p] {
				b.buf[l] = p
				l++
			} else {
				b.buf[r] = p
				r++
			}
		}
		copy(o, b.buf[:n])
	}

	left := b.grow(lo, lo+split, depth+1)
	right := b.grow(lo+split, hi, depth+1)
	b.nodes[idx].feature = feature
	b.nodes[idx].threshold = threshold
	b.nodes[idx].left = left
	b.nodes[idx].right = right
	return idx
}
