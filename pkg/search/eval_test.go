package search_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wyvernchess/coldiron/pkg/board"
	"github.com/wyvernchess/coldiron/pkg/board/fen"
	"github.com/wyvernchess/coldiron/pkg/search"
)

func TestIsMateScore(t *testing.T) {
	require.False(t, search.IsMateScore(0))
	require.False(t, search.IsMateScore(search.HighestEval-search.LongestCheckmate-1))
	require.True(t, search.IsMateScore(search.HighestEval-search.LongestCheckmate+1))
	require.True(t, search.IsMateScore(-(search.HighestEval - search.LongestCheckmate + 1)))
}

func TestSimpleEvaluateStartingPositionIsSymmetric(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	zobrist := board.NewZobristFunc(1)
	node := board.NewNode(pos, zobrist)

	require.Equal(t, search.Eval(0), search.SimpleEvaluate(node))
}

func TestSimpleEvaluateFavorsMaterialAdvantage(t *testing.T) {
	// White is up a queen.
	pos, err := fen.Decode("4k3/8/8/8/8/8/8/4K2Q w - - 0 1")
	require.NoError(t, err)

	zobrist := board.NewZobristFunc(1)
	node := board.NewNode(pos, zobrist)

	require.Greater(t, search.SimpleEvaluate(node), search.Eval(5000))
}

func TestRandomZeroLimitIsDeterministic(t *testing.T) {
	r := search.NewRandom(0, 42)
	require.Equal(t, search.Eval(0), r.Evaluate())
}
