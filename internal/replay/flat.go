package replay

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
)

const (
	// priorityEpsilon keeps priorities strictly positive after an update so
	// no transition's sampling probability ever collapses to zero.
	priorityEpsilon = 1e-6

	// weightEpsilon guards the importance-weight normalization against a
	// zero maximum.
	weightEpsilon = 1e-8
)

// FlatPrioritySampler implements proportional prioritized replay over a flat
// priority slice parallel to a Store. The priority distribution is rebuilt by
// an O(n) scan on every sample call, and draws are without replacement: every
// index in a batch is distinct. TreePrioritySampler is the O(log n),
// with-replacement alternative; the two differ statistically and are kept as
// separate strategies.
type FlatPrioritySampler struct {
	store       *Store
	priorities  []float64
	alpha       float64
	maxPriority float64
	rng         *rand.Rand
}

// NewFlatPrioritySampler creates a sampler over the given store. alpha is the
// priority exponent, typically in [0, 1]; 0 degrades to uniform sampling.
func NewFlatPrioritySampler(store *Store, alpha float64) *FlatPrioritySampler {
	return &FlatPrioritySampler{
		store:       store,
		priorities:  make([]float64, store.Capacity()),
		alpha:       alpha,
		maxPriority: 1.0,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Push stores the transitions and seeds their slots with the running maximum
// priority, so fresh experience is eligible at full weight before its first
// TD error is known.
func (f *FlatPrioritySampler) Push(transitions ...Transition) {
	for _, idx := range f.store.Push(transitions...) {
		f.priorities[idx] = f.maxPriority
	}
}

// Len returns the current occupancy of the underlying store.
func (f *FlatPrioritySampler) Len() int { return f.store.Len() }

// Sample draws batchSize distinct slots with probability proportional to
// priority^alpha and returns them with importance-sampling weights
// (n*P)^-beta, normalized so the largest weight in the batch is 1. If the
// total priority mass is zero the draw falls back to a uniform distribution
// over occupied slots; that is documented policy, not an error.
func (f *FlatPrioritySampler) Sample(batchSize int, beta float64) (*PrioritizedBatch, error) {
	n := f.store.Len()
	if n < batchSize {
		return nil, fmt.Errorf("%w: %d occupied, %d requested", ErrInsufficientData, n, batchSize)
	}

	probs := make([]float64, n)
	for i := range probs {
		probs[i] = math.Pow(f.priorities[i], f.alpha)
	}
	if total := floats.Sum(probs); total == 0 {
		for i := range probs {
			probs[i] = 1.0 / float64(n)
		}
	} else {
		floats.Scale(1/total, probs)
	}

	indices := f.drawWithoutReplacement(probs, batchSize)

	weights := make([]float64, batchSize)
	for i, idx := range indices {
		weights[i] = math.Pow(float64(n)*probs[idx], -beta)
	}
	floats.Scale(1/(floats.Max(weights)+weightEpsilon), weights)

	batch, err := f.store.Read(indices)
	if err != nil {
		return nil, err
	}
	return &PrioritizedBatch{Batch: *batch, Weights: weights, Indices: indices}, nil
}

// drawWithoutReplacement draws k distinct indices with probability
// proportional to probs using Efraimidis-Spirakis exponential keys: index i
// gets key u^(1/p_i) for u ~ U(0,1) and the k largest keys win. One pass over
// the distribution; rejection-based draws degrade as k approaches n.
func (f *FlatPrioritySampler) drawWithoutReplacement(probs []float64, k int) []int {
	type keyed struct {
		idx int
		key float64
	}
	keys := make([]keyed, len(probs))
	for i, p := range probs {
		keys[i] = keyed{idx: i, key: math.Pow(f.rng.Float64(), 1/p)}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].key > keys[j].key })

	indices := make([]int, k)
	for i := 0; i < k; i++ {
		indices[i] = keys[i].idx
	}
	// shuffle the drawn set so batch position carries no rank information
	f.rng.Shuffle(k, func(i, j int) { indices[i], indices[j] = indices[j], indices[i] })
	return indices
}

// UpdatePriorities rewrites the priorities at the given slots from TD errors:
// new priority = min(|e| + epsilon, 1). The clamp keeps any single transition
// from dominating the distribution indefinitely. Fails with ErrIndexOutOfRange
// before touching anything if any index is outside [0, capacity).
func (f *FlatPrioritySampler) UpdatePriorities(indices []int, tdErrors []float64) error {
	if len(indices) != len(tdErrors) {
		return fmt.Errorf("replay: mismatched lengths: %d indices vs %d errors", len(indices), len(tdErrors))
	}
	for _, idx := range indices {
		if idx < 0 || idx >= len(f.priorities) {
			return fmt.Errorf("%w: slot %d with capacity %d", ErrIndexOutOfRange, idx, len(f.priorities))
		}
	}
	for i, idx := range indices {
		p := math.Min(math.Abs(tdErrors[i])+priorityEpsilon, 1.0)
		f.priorities[idx] = p
		if p > f.maxPriority {
			f.maxPriority = p
		}
	}
	return nil
}
