package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wyvernchess/coldiron/pkg/board/fen"
	"github.com/wyvernchess/coldiron/pkg/engine"
)

func TestGamePositionReplaysMoves(t *testing.T) {
	start, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	g := engine.NewGame(start)

	e2e4, err := fen.ParseUCIMove("e2e4")
	require.NoError(t, err)
	e2e4, err = fen.ResolveMove(g.Position(), e2e4)
	require.NoError(t, err)
	g.MakeMove(e2e4)

	e7e5, err := fen.ParseUCIMove("e7e5")
	require.NoError(t, err)
	e7e5, err = fen.ResolveMove(g.Position(), e7e5)
	require.NoError(t, err)
	g.MakeMove(e7e5)

	require.Len(t, g.Moves(), 2)

	pos := g.Position()
	require.Equal(t, "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2", fen.Encode(pos))
}

func TestGameUndoMove(t *testing.T) {
	start, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	g := engine.NewGame(start)

	e2e4, err := fen.ParseUCIMove("e2e4")
	require.NoError(t, err)
	g.MakeMove(e2e4)
	g.UndoMove()

	require.Empty(t, g.Moves())
	require.Equal(t, fen.Initial, fen.Encode(g.Position()))
}

func TestGameUndoMoveOnEmptyHistoryIsNoop(t *testing.T) {
	start, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	g := engine.NewGame(start)
	g.UndoMove()

	require.Empty(t, g.Moves())
}
