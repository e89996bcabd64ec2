package search_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wyvernchess/coldiron/pkg/board"
	"github.com/wyvernchess/coldiron/pkg/board/fen"
	"github.com/wyvernchess/coldiron/pkg/search"
)

func TestEngineFindsMateInOne(t *testing.T) {
	// White king g1, rook a1, black king g8 boxed in by its own pawns:
	// Ra8 is back-rank mate.
	pos, err := fen.Decode("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	require.NoError(t, err)

	zobrist := board.NewZobristFunc(1)
	node := board.NewNode(pos, zobrist)

	e := search.NewEngine(node, search.WithHashBits(10), search.WithDepthLimit(2))
	e.StartSearch(context.Background())

	info := e.RootInfo()
	require.True(t, search.IsMateScore(info.Eval), "eval %v should be a mate score", info.Eval)

	bareWant, err := fen.ParseUCIMove("a1a8")
	require.NoError(t, err)
	want, err := fen.ResolveMove(pos, bareWant)
	require.NoError(t, err)
	require.Equal(t, want, info.BestMove)
}

// TestSearchTTDoesNotBiasResult is the alpha-beta correctness property
// from spec section 8: for any position and depth d >= 1, the root eval
// returned by search at depth d equals the root eval returned at depth
// d with the transposition table disabled.
func TestSearchTTDoesNotBiasResult(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	zobrist := board.NewZobristFunc(1)

	withTT := search.NewEngine(board.NewNode(pos.Clone(), zobrist), search.WithDepthLimit(2))
	withTT.StartSearch(context.Background())

	withoutTT := search.NewEngine(board.NewNode(pos.Clone(), zobrist), search.WithDepthLimit(2))
	withoutTT.UseTranspositionTable(false)
	withoutTT.StartSearch(context.Background())

	require.Equal(t, withTT.RootInfo().Eval, withoutTT.RootInfo().Eval)
}

func TestEngineMakeMoveAdvancesRoot(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	zobrist := board.NewZobristFunc(1)
	node := board.NewNode(pos, zobrist)

	e := search.NewEngine(node)
	before := e.Position().Hash

	bare, err := fen.ParseUCIMove("e2e4")
	require.NoError(t, err)
	m, err := fen.ResolveMove(e.Position().Position, bare)
	require.NoError(t, err)
	e.MakeMove(m)

	require.NotEqual(t, before, e.Position().Hash)
	require.Equal(t, board.Black, e.Position().Position.ToMove())
}
