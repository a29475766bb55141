package replay

// Sampler is the common surface of the prioritized replay strategies.
//
// FlatPrioritySampler rebuilds its distribution with an O(n) scan and draws
// without replacement; TreePrioritySampler draws with replacement in
// O(log n) per entry. The replacement semantics differ, so the strategies
// stay separate behind this interface rather than being merged.
type Sampler interface {
	// Push stores transitions, seeding each with the running max priority.
	// Never fails; the oldest entries are evicted once capacity is reached.
	Push(transitions ...Transition)

	// Sample draws a batch with importance-sampling correction at the given
	// beta. Fails with ErrInsufficientData while occupancy < batchSize.
	Sample(batchSize int, beta float64) (*PrioritizedBatch, error)

	// UpdatePriorities rewrites priorities from TD errors for the indices of
	// a previously sampled batch.
	UpdatePriorities(indices []int, tdErrors []float64) error

	// Len returns current occupancy.
	Len() int
}

var (
	_ Sampler = (*FlatPrioritySampler)(nil)
	_ Sampler = (*TreePrioritySampler)(nil)
	_ Sampler = (*Locked)(nil)
)
