package replay

// Transition is one (state, action, reward, next state, terminal) tuple
// produced by stepping an environment. State and NextState are flattened
// stacks of 8-bit frame samples; their length is fixed by the caller's
// preprocessing, not by the store. The store copies both on push and owns its
// copies exclusively.
type Transition struct {
	State     []byte
	Action    int64
	Reward    float32
	NextState []byte
	Done      bool
}

// Batch holds sampled transitions as parallel field slices, ready to be
// stacked into tensors by the training loop.
type Batch struct {
	States     [][]byte
	Actions    []int64
	Rewards    []float32
	NextStates [][]byte
	Dones      []bool
}

func newBatch(n int) *Batch {
	return &Batch{
		States:     make([][]byte, 0, n),
		Actions:    make([]int64, 0, n),
		Rewards:    make([]float32, 0, n),
		NextStates: make([][]byte, 0, n),
		Dones:      make([]bool, 0, n),
	}
}

// add appends a copy of the transition so the batch never aliases buffer
// storage that a later push would overwrite.
func (b *Batch) add(t Transition) {
	b.States = append(b.States, append([]byte(nil), t.State...))
	b.Actions = append(b.Actions, t.Action)
	b.Rewards = append(b.Rewards, t.Reward)
	b.NextStates = append(b.NextStates, append([]byte(nil), t.NextState...))
	b.Dones = append(b.Dones, t.Done)
}

// Len returns the number of transitions in the batch.
func (b *Batch) Len() int { return len(b.Actions) }

// PrioritizedBatch pairs a Batch with the importance-sampling weights that
// correct for the non-uniform draw and the indices the caller must hand back
// to UpdatePriorities after the learning step. For the flat strategy the
// indices are buffer slots; for the tree strategy they are sum-tree leaf
// node indices.
type PrioritizedBatch struct {
	Batch
	Weights []float64
	Indices []int
}
