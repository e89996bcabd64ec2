package search

import (
	"github.com/wyvernchess/coldiron/pkg/board"
)

// PositionTable is an open-addressed, direct-mapped table keyed by
// ZobristHash: capacity is always a power of two, there is no chaining
// or probing, and Set always replaces whatever occupied the slot.
// Collisions are tolerated -- a stale or colliding entry just causes a
// cache miss, never a wrong answer, because the search can always
// recompute from scratch. Not safe for concurrent use; the engine
// serializes access to its tables the same way the batch search loop
// serializes access to the rest of its state.
type PositionTable[V any] struct {
	slots []entry[V]
	mask  uint64
}

type entry[V any] struct {
	hash  board.ZobristHash
	value V
	valid bool
}

// NewPositionTable allocates a table with 2^nbits slots.
func NewPositionTable[V any](nbits uint) *PositionTable[V] {
	n := uint64(1) << nbits
	return &PositionTable[V]{
		slots: make([]entry[V], n),
		mask:  n - 1,
	}
}

// Get returns the stored value for hash and whether it was a hit. A
// miss (empty slot or key collision) returns the zero value of V.
func (t *PositionTable[V]) Get(hash board.ZobristHash) (V, bool) {
	e := &t.slots[t.index(hash)]
	if e.valid && e.hash == hash {
		return e.value, true
	}
	var zero V
	return zero, false
}

// Set always replaces the slot's contents with (hash, value).
func (t *PositionTable[V]) Set(hash board.ZobristHash, value V) {
	t.slots[t.index(hash)] = entry[V]{hash: hash, value: value, valid: true}
}

// Clear reinitializes every slot to empty.
func (t *PositionTable[V]) Clear() {
	for i := range t.slots {
		t.slots[i] = entry[V]{}
	}
}

// Len returns the table's capacity in slots.
func (t *PositionTable[V]) Len() int {
	return len(t.slots)
}

func (t *PositionTable[V]) index(hash board.ZobristHash) uint64 {
	return uint64(hash) & t.mask
}
