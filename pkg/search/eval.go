package search

import (
	"math/rand"

	"github.com/wyvernchess/coldiron/pkg/board"
)

// Eval is a signed position score in centipawn-like units, scaled by
// 10, from the current mover's viewpoint. Positive favors the mover.
type Eval int32

const (
	// LowestEval and HighestEval bound the evaluation range: a score
	// above HighestEval-LongestCheckmate (or below its negation) encodes
	// "mate in N" rather than a material/positional judgement; scores in
	// between are "normal" evals.
	LowestEval  Eval = -2000000000
	HighestEval Eval = 2000000000

	// LongestCheckmate bounds how many plies a reported mate score can
	// be pushed out by the mate-distance adjustment before it collides
	// with ordinary evaluation values.
	LongestCheckmate Eval = 1000
)

// IsMateScore reports whether e encodes "mate in N" rather than an
// ordinary material/positional evaluation.
func IsMateScore(e Eval) bool {
	return e > HighestEval-LongestCheckmate || e < -(HighestEval-LongestCheckmate)
}

var pieceValue = [board.NumPieceTypes]Eval{
	board.NoPieceType: 0,
	board.Pawn:        1000,
	board.Knight:      3000,
	board.Bishop:      3000,
	board.Rook:        5000,
	board.Queen:       9000,
	board.King:        0,
}

// SimpleEvaluate scores n from the viewpoint of the player to move:
// material plus board control (sum of attacks by mover minus attacks
// by opponent over all 64 squares) plus king safety (the fraction of
// squares within squared-distance 2 of each king that the other side
// does not attack, times 100, for both kings, averaged per king).
func SimpleEvaluate(n *board.Node) Eval {
	pos := n.Position
	mover := pos.ToMove()
	opponent := mover.Opponent()

	king := pos.KingSquare(mover)
	oppKing := pos.KingSquare(opponent)

	var ret Eval
	var kingFreedom, kingSquares int32
	var oppKingFreedom, oppKingSquares int32

	for file := int8(0); file < 8; file++ {
		for rank := int8(0); rank < 8; rank++ {
			sq := board.Coordinates{File: file, Rank: rank}

			if board.DistanceSquared(sq, king) <= 2 {
				kingSquares++
				if pos.GetAttacksByPlayer(sq, opponent) == 0 {
					kingFreedom += 100
				}
			}
			if board.DistanceSquared(sq, oppKing) <= 2 {
				oppKingSquares++
				if pos.GetAttacksByPlayer(sq, mover) == 0 {
					oppKingFreedom += 100
				}
			}

			ret += Eval(pos.GetAttacksByPlayer(sq, mover))
			ret -= Eval(pos.GetAttacksByPlayer(sq, opponent))

			if piece := pos.Square(sq); !piece.IsEmpty() {
				if piece.Player == mover {
					ret += pieceValue[piece.Type]
				} else {
					ret -= pieceValue[piece.Type]
				}
			}
		}
	}

	if kingSquares > 0 {
		ret += Eval(kingFreedom / kingSquares)
	}
	if oppKingSquares > 0 {
		ret -= Eval(oppKingFreedom / oppKingSquares)
	}
	return ret
}

// Random is a randomized noise generator added to evaluations to
// diversify play between otherwise-tied lines. Limit bounds how many
// evaluation units to add/remove, in the range [-limit/2; limit-limit/2)
// (integer division); a non-positive limit always returns zero.
type Random struct {
	rand  *rand.Rand
	limit int
}

func NewRandom(limit int, seed int64) Random {
	return Random{
		limit: limit,
		rand:  rand.New(rand.NewSource(seed)),
	}
}

func (n Random) Evaluate() Eval {
	if n.limit <= 0 {
		return 0
	}
	return Eval(n.rand.Intn(n.limit) - n.limit/2)
}
