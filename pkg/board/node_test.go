package board_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wyvernchess/coldiron/pkg/board"
	"github.com/wyvernchess/coldiron/pkg/board/fen"
)

// TestNodeHashMatchesSlowHashAfterMoves walks a short line of moves
// from the starting position and checks, after every move, that the
// Node's incrementally-maintained hash equals a from-scratch
// recomputation: zobrist.SlowHash(pos) == node.hash (spec section 8).
func TestNodeHashMatchesSlowHashAfterMoves(t *testing.T) {
	zobrist := board.NewZobristFunc(1)

	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	node := board.NewNode(pos, zobrist)
	require.Equal(t, zobrist.SlowHash(pos), node.Hash)

	line := []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1b5", "a7a6"}
	for _, uci := range line {
		bare, err := fen.ParseUCIMove(uci)
		require.NoError(t, err)
		m, err := fen.ResolveMove(node.Position, bare)
		require.NoError(t, err)

		node.MakeMove(m)
		require.Equal(t, zobrist.SlowHash(node.Position), node.Hash, "after %v", uci)
	}
}

// TestNodeHashMatchesSlowHashAcrossCastling exercises the castling-
// rights bits of the hash, including the king-side rook move.
func TestNodeHashMatchesSlowHashAcrossCastling(t *testing.T) {
	zobrist := board.NewZobristFunc(2)

	pos, err := fen.Decode("rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 2 2")
	require.NoError(t, err)

	node := board.NewNode(pos, zobrist)
	require.Equal(t, zobrist.SlowHash(pos), node.Hash)

	line := []string{"f8c5", "f1e2", "g8f6", "e1g1"}
	for _, uci := range line {
		bare, err := fen.ParseUCIMove(uci)
		require.NoError(t, err)
		m, err := fen.ResolveMove(node.Position, bare)
		require.NoError(t, err)

		node.MakeMove(m)
		require.Equal(t, zobrist.SlowHash(node.Position), node.Hash, "after %v", uci)
	}
}
