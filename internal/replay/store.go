package replay

import "fmt"

// Store is a fixed-capacity ring buffer of transitions held as parallel
// per-field slices. Pushing past capacity silently overwrites the oldest
// slots in FIFO order; that eviction is the intended policy, not an error.
//
// A Store is not safe for concurrent use. Callers feeding one buffer from
// several goroutines must serialize access (see Locked).
type Store struct {
	capacity   int
	states     [][]byte
	actions    []int64
	rewards    []float32
	nextStates [][]byte
	dones      []bool

	cursor int // next slot to overwrite, wraps mod capacity
	size   int // occupied slots, clamps at capacity
}

// NewStore creates an empty store with the given fixed capacity.
func NewStore(capacity int) (*Store, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("replay: capacity must be positive, got %d", capacity)
	}
	return &Store{
		capacity:   capacity,
		states:     make([][]byte, capacity),
		actions:    make([]int64, capacity),
		rewards:    make([]float32, capacity),
		nextStates: make([][]byte, capacity),
		dones:      make([]bool, capacity),
	}, nil
}

// Push copies the transitions into the ring, overwriting the oldest slots
// once the buffer is full, and returns the slot indices written in order.
// It never fails.
func (s *Store) Push(transitions ...Transition) []int {
	indices := make([]int, len(transitions))
	for k, t := range transitions {
		idx := (s.cursor + k) % s.capacity
		s.states[idx] = append(s.states[idx][:0], t.State...)
		s.actions[idx] = t.Action
		s.rewards[idx] = t.Reward
		s.nextStates[idx] = append(s.nextStates[idx][:0], t.NextState...)
		s.dones[idx] = t.Done
		indices[k] = idx
	}
	s.cursor = (s.cursor + len(transitions)) % s.capacity
	s.size = min(s.size+len(transitions), s.capacity)
	return indices
}

// Read returns copies of the transitions at the given slot indices. Only
// slots below the current occupancy are valid.
func (s *Store) Read(indices []int) (*Batch, error) {
	batch := newBatch(len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= s.size {
			return nil, fmt.Errorf("%w: slot %d with %d occupied", ErrIndexOutOfRange, idx, s.size)
		}
		batch.add(Transition{
			State:     s.states[idx],
			Action:    s.actions[idx],
			Reward:    s.rewards[idx],
			NextState: s.nextStates[idx],
			Done:      s.dones[idx],
		})
	}
	return batch, nil
}

// Len returns the current occupancy.
func (s *Store) Len() int { return s.size }

// Capacity returns the fixed capacity set at construction.
func (s *Store) Capacity() int { return s.capacity }

// Stats summarizes buffer occupancy and approximate storage footprint.
type Stats struct {
	Occupied     int
	Capacity     int
	StorageBytes uint64
}

// Stats reports current occupancy and the approximate bytes held.
func (s *Store) Stats() Stats {
	st := Stats{Occupied: s.size, Capacity: s.capacity}
	for i := 0; i < s.size; i++ {
		// fixed fields are ~16 bytes per slot
		st.StorageBytes += uint64(len(s.states[i]) + len(s.nextStates[i]) + 16)
	}
	return st
}
