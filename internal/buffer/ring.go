package buffer

import "math"

// Ring is a ring buffer keeping the last x values
type Ring struct {
	index  int
	count  int
	values []float64
}

// NewRing creates a new ring with the given buffer size.
func NewRing(size int) *Ring {
	return &Ring{
		values: make([]float64, size),
	}
}

// Size returns the number of elements within the ring.
func (r *Ring) Size() int {
	if r.count < len(r.values) {
		return r.count
	}
	return len(r.values)
}

// Full returns true if the ring holds as many elements as its capacity.
func (r *Ring) Full() bool {
	return r.count >= len(r.values)
}

// Push adds an element to the ring.
func (r *Ring) Push(v float64) {
	r.values[r.index] = v
	r.index = r.next(r.index)
	r.count++
}

func (r *Ring) next(index int) int {
	return (index + 1) % len(r.values)
}

// Lag returns the element pushed k steps before the latest one.
// Lag(0) is the latest element. It returns NaN if the ring does not reach that far back.
func (r *Ring) Lag(k int) float64 {
	if k < 0 || k >= r.Size() {
		return math.NaN()
	}
	l := len(r.values)
	return r.values[((r.index-1-k)%l+l)%l]
}

// Get returns an ordered slice of the ring elements, oldest first.
func (r *Ring) Get() []float64 {
	l := r.Size()
	v := make([]float64, l)
	for i := 0; i < l; i++ {
		v[i] = r.Lag(l - 1 - i)
	}
	return v
}
