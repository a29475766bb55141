package replay

import (
	"fmt"
	"math/rand"
	"time"
)

// UniformSampler draws batches uniformly, without replacement, from the
// occupied slots of a Store. Every occupied slot is eligible, including the
// most recently written one.
type UniformSampler struct {
	store *Store
	rng   *rand.Rand
}

// NewUniformSampler creates a sampler over the given store with its own
// time-seeded generator. Tests replace rng with a fixed seed.
func NewUniformSampler(store *Store) *UniformSampler {
	return &UniformSampler{
		store: store,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Sample draws batchSize distinct slots uniformly and returns copies of their
// fields. The partial Fisher-Yates pass leaves the drawn prefix in uniformly
// random order, so batch position carries no information.
func (u *UniformSampler) Sample(batchSize int) (*Batch, error) {
	n := u.store.Len()
	if n < batchSize {
		return nil, fmt.Errorf("%w: %d occupied, %d requested", ErrInsufficientData, n, batchSize)
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	for i := 0; i < batchSize; i++ {
		j := i + u.rng.Intn(n-i)
		indices[i], indices[j] = indices[j], indices[i]
	}

	return u.store.Read(indices[:batchSize])
}
