package replay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tr builds a transition whose state bytes identify it in assertions.
func tr(marker byte) Transition {
	return Transition{
		State:     []byte{marker, marker, marker},
		Action:    int64(marker),
		Reward:    float32(marker),
		NextState: []byte{marker + 1},
		Done:      marker%2 == 0,
	}
}

func TestNewStore_InvalidCapacity(t *testing.T) {
	_, err := NewStore(0)
	require.Error(t, err)

	_, err = NewStore(-3)
	require.Error(t, err)
}

func TestStore_PushRead(t *testing.T) {
	store, err := NewStore(8)
	require.NoError(t, err)

	indices := store.Push(tr(1), tr(2), tr(3))
	assert.Equal(t, []int{0, 1, 2}, indices)
	assert.Equal(t, 3, store.Len())

	batch, err := store.Read([]int{2, 0})
	require.NoError(t, err)
	require.Equal(t, 2, batch.Len())
	assert.Equal(t, []byte{3, 3, 3}, batch.States[0])
	assert.Equal(t, int64(3), batch.Actions[0])
	assert.Equal(t, float32(3), batch.Rewards[0])
	assert.Equal(t, []byte{4}, batch.NextStates[0])
	assert.Equal(t, []byte{1, 1, 1}, batch.States[1])
	assert.True(t, batch.Dones[1])
}

func TestStore_RingEviction(t *testing.T) {
	store, err := NewStore(4)
	require.NoError(t, err)

	for k := byte(0); k < 6; k++ {
		store.Push(tr(k))
	}

	// len clamps at capacity, cursor wrapped twice
	assert.Equal(t, 4, store.Len())

	// slot s now holds the latest push congruent to s mod 4
	expected := map[int]byte{0: 4, 1: 5, 2: 2, 3: 3}
	for slot, marker := range expected {
		batch, err := store.Read([]int{slot})
		require.NoError(t, err)
		assert.Equal(t, []byte{marker, marker, marker}, batch.States[0], "slot %d", slot)
	}
}

func TestStore_BatchPushWraps(t *testing.T) {
	store, err := NewStore(4)
	require.NoError(t, err)

	indices := store.Push(tr(0), tr(1), tr(2))
	assert.Equal(t, []int{0, 1, 2}, indices)

	// second batch wraps past the end of the ring
	indices = store.Push(tr(3), tr(4), tr(5))
	assert.Equal(t, []int{3, 0, 1}, indices)
	assert.Equal(t, 4, store.Len())

	batch, err := store.Read([]int{0, 1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []byte{4, 4, 4}, batch.States[0])
	assert.Equal(t, []byte{5, 5, 5}, batch.States[1])
	assert.Equal(t, []byte{2, 2, 2}, batch.States[2])
	assert.Equal(t, []byte{3, 3, 3}, batch.States[3])
}

func TestStore_ReadOutOfRange(t *testing.T) {
	store, err := NewStore(8)
	require.NoError(t, err)
	store.Push(tr(1), tr(2))

	_, err = store.Read([]int{0, 2})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = store.Read([]int{-1})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestStore_OwnsItsStorage(t *testing.T) {
	store, err := NewStore(4)
	require.NoError(t, err)

	state := []byte{7, 7, 7}
	store.Push(Transition{State: state, NextState: []byte{8}})

	// mutating the caller's slice after push must not leak into the store
	state[0] = 99

	batch, err := store.Read([]int{0})
	require.NoError(t, err)
	assert.Equal(t, []byte{7, 7, 7}, batch.States[0])

	// and mutating a read batch must not leak back in
	batch.States[0][1] = 42
	again, err := store.Read([]int{0})
	require.NoError(t, err)
	assert.Equal(t, []byte{7, 7, 7}, again.States[0])
}

func TestStore_Stats(t *testing.T) {
	store, err := NewStore(4)
	require.NoError(t, err)
	store.Push(tr(1), tr(2))

	stats := store.Stats()
	assert.Equal(t, 2, stats.Occupied)
	assert.Equal(t, 4, stats.Capacity)
	// 3 state bytes + 1 next-state byte + 16 overhead, per slot
	assert.Equal(t, uint64(40), stats.StorageBytes)
}
