package fen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyvernchess/coldiron/pkg/board"
	"github.com/wyvernchess/coldiron/pkg/board/fen"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	tests := []string{
		fen.Initial,
		"4k3/2pppp2/8/4P1K1/4PP2/3P4/8/8 w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/5P2/PPPPP1PP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"8/8/8/3k4/8/8/3K4/8 b - - 12 34",
	}

	for _, tt := range tests {
		pos, err := fen.Decode(tt)
		require.NoError(t, err)
		assert.Equal(t, tt, fen.Encode(pos))
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w XQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBN w KQkq - 0 1",
	}
	for _, tt := range tests {
		_, err := fen.Decode(tt)
		assert.Error(t, err)
	}
}

func TestMoveToUCI(t *testing.T) {
	m := board.Move{
		Type: board.Promotion,
		From: board.Coordinates{File: 0, Rank: 6},
		To:   board.Coordinates{File: 0, Rank: 7},
		Piece: board.Pawn, Promotion: board.Queen,
	}
	assert.Equal(t, "a7a8q", fen.MoveToUCI(m))

	quiet := board.Move{
		Type: board.Normal,
		From: board.Coordinates{File: 4, Rank: 1},
		To:   board.Coordinates{File: 4, Rank: 3},
		Piece: board.Pawn,
	}
	assert.Equal(t, "e2e4", fen.MoveToUCI(quiet))
}

func TestParseUCIMove(t *testing.T) {
	m, err := fen.ParseUCIMove("a7a8q")
	require.NoError(t, err)
	assert.Equal(t, board.Queen, m.Promotion)
	assert.Equal(t, board.Coordinates{File: 0, Rank: 6}, m.From)
	assert.Equal(t, board.Coordinates{File: 0, Rank: 7}, m.To)

	_, err = fen.ParseUCIMove("z9z9")
	assert.Error(t, err)
}
