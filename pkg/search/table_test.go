package search_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wyvernchess/coldiron/pkg/board"
	"github.com/wyvernchess/coldiron/pkg/search"
)

func TestPositionTableSetGet(t *testing.T) {
	tbl := search.NewPositionTable[int](4) // 16 slots
	require.Equal(t, 16, tbl.Len())

	_, ok := tbl.Get(board.ZobristHash(7))
	require.False(t, ok)

	tbl.Set(board.ZobristHash(7), 42)
	v, ok := tbl.Get(board.ZobristHash(7))
	require.True(t, ok)
	require.Equal(t, 42, v)
}

func TestPositionTableAlwaysReplaces(t *testing.T) {
	tbl := search.NewPositionTable[string](1) // 2 slots, guarantees a collision
	tbl.Set(board.ZobristHash(0), "first")
	tbl.Set(board.ZobristHash(2), "second") // same slot (hash & 1 == 0)

	v, ok := tbl.Get(board.ZobristHash(2))
	require.True(t, ok)
	require.Equal(t, "second", v)

	_, ok = tbl.Get(board.ZobristHash(0))
	require.False(t, ok, "the colliding Set should have evicted the first entry")
}

func TestPositionTableClear(t *testing.T) {
	tbl := search.NewPositionTable[bool](3)
	tbl.Set(board.ZobristHash(5), true)
	tbl.Clear()

	_, ok := tbl.Get(board.ZobristHash(5))
	require.False(t, ok)
}
