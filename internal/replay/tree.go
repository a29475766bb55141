package replay

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/floats"
)

// TreePrioritySampler implements proportional prioritized replay over a
// SumTree that owns both priorities and payloads. Each draw is an independent
// inverse-CDF lookup, so sampling is with replacement and a batch may contain
// duplicate leaves — a deliberate difference from FlatPrioritySampler's
// without-replacement draw. Indices returned to the caller are sum-tree leaf
// node indices, not buffer slots.
type TreePrioritySampler struct {
	tree        *SumTree
	alpha       float64
	epsilon     float64
	maxPriority float64
	rng         *rand.Rand
}

// NewTreePrioritySampler creates a tree-backed sampler with the given
// capacity and priority exponent.
func NewTreePrioritySampler(capacity int, alpha float64) (*TreePrioritySampler, error) {
	tree, err := NewSumTree(capacity)
	if err != nil {
		return nil, err
	}
	return &TreePrioritySampler{
		tree:        tree,
		alpha:       alpha,
		epsilon:     priorityEpsilon,
		maxPriority: 1.0,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// Push appends the transitions at the running maximum priority, evicting the
// oldest entries once the tree is full.
func (p *TreePrioritySampler) Push(transitions ...Transition) {
	for _, tr := range transitions {
		p.tree.Add(p.maxPriority, tr)
	}
}

// Len returns the number of transitions currently held.
func (p *TreePrioritySampler) Len() int { return p.tree.Len() }

// Total returns the tree's total priority mass.
func (p *TreePrioritySampler) Total() float64 { return p.tree.Total() }

// Sample draws batchSize entries with replacement, each by resolving a
// uniform target in [0, Total()) through the tree. Draws that land on a leaf
// whose slot has never been filled (possible only while the tree is partially
// full) are skipped and retried. Weights are (n * p/total)^-beta, normalized
// by the batch maximum.
func (p *TreePrioritySampler) Sample(batchSize int, beta float64) (*PrioritizedBatch, error) {
	n := p.tree.Len()
	if n < batchSize {
		return nil, fmt.Errorf("%w: %d occupied, %d requested", ErrInsufficientData, n, batchSize)
	}

	indices := make([]int, 0, batchSize)
	priorities := make([]float64, 0, batchSize)
	batch := newBatch(batchSize)
	for len(indices) < batchSize {
		target := p.rng.Float64() * p.tree.Total()
		leaf, priority, tr, ok := p.tree.Get(target)
		if !ok {
			continue
		}
		indices = append(indices, leaf)
		priorities = append(priorities, priority)
		batch.add(tr)
	}

	total := p.tree.Total()
	weights := make([]float64, batchSize)
	for i, pr := range priorities {
		weights[i] = math.Pow(float64(n)*(pr/total), -beta)
	}
	floats.Scale(1/floats.Max(weights), weights)

	return &PrioritizedBatch{Batch: *batch, Weights: weights, Indices: indices}, nil
}

// UpdatePriorities rewrites leaf priorities as (|e| + epsilon)^alpha and
// propagates each change through the tree. Fails with ErrIndexOutOfRange if
// any index is not a leaf node index.
func (p *TreePrioritySampler) UpdatePriorities(indices []int, tdErrors []float64) error {
	if len(indices) != len(tdErrors) {
		return fmt.Errorf("replay: mismatched lengths: %d indices vs %d errors", len(indices), len(tdErrors))
	}
	for i, leaf := range indices {
		priority := math.Pow(math.Abs(tdErrors[i])+p.epsilon, p.alpha)
		if err := p.tree.Update(leaf, priority); err != nil {
			return err
		}
		if priority > p.maxPriority {
			p.maxPriority = priority
		}
	}
	return nil
}
