package board_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wyvernchess/coldiron/pkg/board"
	"github.com/wyvernchess/coldiron/pkg/board/fen"
)

// perft walks the legal-move tree to depth and returns the leaf count,
// the standard move-generation correctness benchmark (see
// https://www.chessprogramming.org/Perft_Results).
func perft(t *testing.T, fenStr string, depth int) int64 {
	t.Helper()

	pos, err := fen.Decode(fenStr)
	require.NoError(t, err)
	return perftWalk(pos, depth)
}

func perftWalk(pos *board.Position, depth int) int64 {
	if depth == 0 {
		return 1
	}
	var nodes int64
	for _, m := range pos.GetLegalMoves() {
		child := pos.Clone()
		child.MakeMove(m)
		nodes += perftWalk(child, depth-1)
	}
	return nodes
}

func TestStartingPositionHas20LegalMoves(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	require.Len(t, pos.GetLegalMoves(), 20)
}

func TestPerftShallow(t *testing.T) {
	// Well-known perft(1..4) figures from the standard starting
	// position; deeper counts (depth 5, per the six scenarios in
	// spec section 8) are exercised manually via cmd/perft instead of
	// in-process, since they run into the tens of millions of nodes.
	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}
	for _, tt := range tests {
		got := perft(t, fen.Initial, tt.depth)
		require.Equal(t, tt.expected, got, "perft(%d)", tt.depth)
	}
}

func TestPerftKiwipete(t *testing.T) {
	// The "Kiwipete" position, a standard perft stress position
	// exercising castling, en passant and promotions.
	const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	got := perft(t, kiwipete, 3)
	require.Equal(t, int64(97862), got)
}
