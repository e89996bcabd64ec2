package board_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wyvernchess/coldiron/pkg/board/fen"
)

// TestMoveIsCheckFastNoFalsePositives checks the soundness direction
// of move_is_check_fast required by spec section 8: whenever it
// reports a move as checking, making that move must actually leave
// the opponent in check. False negatives (missed discovered checks)
// are explicitly allowed by the spec and not tested here.
func TestMoveIsCheckFastNoFalsePositives(t *testing.T) {
	positions := []string{
		fen.Initial,
		"r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5Q2/PPPP1PPP/RNB1K1NR w KQkq - 4 3",
		"rnbqkb1r/pppp1ppp/5n2/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"5rk1/5p1p/5R2/p2pp3/q7/1rP5/1P4PP/1R1Q3K w - - 0 25",
	}

	for _, fenStr := range positions {
		pos, err := fen.Decode(fenStr)
		require.NoError(t, err)

		for _, m := range pos.GetLegalMoves() {
			if !pos.MoveIsCheckFast(m) {
				continue
			}

			child := pos.Clone()
			child.MakeMove(m)
			require.True(t, child.IsCheck(), "%v: move %v claimed check but didn't deliver one", fenStr, m)
		}
	}
}
