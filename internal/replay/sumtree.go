package replay

import "fmt"

// SumTree is a complete binary tree over capacity leaves, stored as a flat
// array of 2*capacity-1 nodes. Leaves at [capacity-1, 2*capacity-1) hold raw
// priorities; every internal node holds the sum of its two children and
// node 0 the grand total. The sums are maintained incrementally by Update —
// never recomputed top-down — so update and cumulative lookup are both
// O(log capacity). Accumulated floating-point drift from long runs of
// incremental updates is an accepted approximation.
//
// Payloads ride alongside the leaves in ring order with the same oldest-first
// eviction as Store. Not safe for concurrent use.
type SumTree struct {
	capacity int
	nodes    []float64
	payload  []Transition
	occupied []bool
	write    int // next ring position to overwrite
	entries  int // occupied leaves, clamps at capacity
}

// NewSumTree creates an empty tree over the given number of leaves.
func NewSumTree(capacity int) (*SumTree, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("replay: capacity must be positive, got %d", capacity)
	}
	return &SumTree{
		capacity: capacity,
		nodes:    make([]float64, 2*capacity-1),
		payload:  make([]Transition, capacity),
		occupied: make([]bool, capacity),
	}, nil
}

// Total returns the total unnormalized priority mass.
func (t *SumTree) Total() float64 { return t.nodes[0] }

// Len returns the number of occupied leaves.
func (t *SumTree) Len() int { return t.entries }

// Capacity returns the number of leaves.
func (t *SumTree) Capacity() int { return t.capacity }

func (t *SumTree) leafIndex(pos int) int { return pos + t.capacity - 1 }

// Add writes a copy of the transition at the current ring position with the
// given priority, overwriting the oldest entry once the tree is full. It
// returns the leaf node index written.
func (t *SumTree) Add(priority float64, tr Transition) int {
	t.payload[t.write] = Transition{
		State:     append([]byte(nil), tr.State...),
		Action:    tr.Action,
		Reward:    tr.Reward,
		NextState: append([]byte(nil), tr.NextState...),
		Done:      tr.Done,
	}
	t.occupied[t.write] = true

	// leaf is in range by construction
	leaf := t.leafIndex(t.write)
	_ = t.Update(leaf, priority)

	t.write = (t.write + 1) % t.capacity
	t.entries = min(t.entries+1, t.capacity)
	return leaf
}

// Update sets the priority at a leaf node index and propagates the signed
// delta through every ancestor up to the root, keeping each internal node
// equal to the sum of its children.
func (t *SumTree) Update(leaf int, priority float64) error {
	if leaf < t.capacity-1 || leaf >= len(t.nodes) {
		return fmt.Errorf("%w: leaf node %d outside [%d, %d)", ErrIndexOutOfRange, leaf, t.capacity-1, len(t.nodes))
	}
	delta := priority - t.nodes[leaf]
	t.nodes[leaf] = priority
	for i := leaf; i != 0; {
		i = (i - 1) / 2
		t.nodes[i] += delta
	}
	return nil
}

// Get resolves a cumulative priority target in [0, Total()) to a leaf by
// walking from the root: descend left while the target fits under the left
// subtree sum, otherwise subtract that sum and descend right. It returns the
// leaf node index, its priority, the payload, and whether the slot has been
// filled.
func (t *SumTree) Get(target float64) (leaf int, priority float64, tr Transition, ok bool) {
	idx := 0
	for {
		left := 2*idx + 1
		if left >= len(t.nodes) {
			break
		}
		if target <= t.nodes[left] {
			idx = left
		} else {
			target -= t.nodes[left]
			idx = left + 1
		}
	}
	pos := idx - (t.capacity - 1)
	return idx, t.nodes[idx], t.payload[pos], t.occupied[pos]
}
