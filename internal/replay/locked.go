package replay

import "sync"

// Locked serializes a Sampler behind a single mutex for callers feeding one
// buffer from multiple goroutines, such as parallel environment workers. One
// lock around push, sample and update is sufficient: every operation is
// CPU-bound and at worst linear in capacity, so finer-grained locking buys
// nothing.
type Locked struct {
	mu      sync.Mutex
	sampler Sampler
}

// NewLocked wraps a sampler for concurrent use.
func NewLocked(sampler Sampler) *Locked {
	return &Locked{sampler: sampler}
}

func (l *Locked) Push(transitions ...Transition) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sampler.Push(transitions...)
}

func (l *Locked) Sample(batchSize int, beta float64) (*PrioritizedBatch, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sampler.Sample(batchSize, beta)
}

func (l *Locked) UpdatePriorities(indices []int, tdErrors []float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sampler.UpdatePriorities(indices, tdErrors)
}

func (l *Locked) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sampler.Len()
}
