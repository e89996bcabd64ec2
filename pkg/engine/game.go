package engine

import "github.com/wyvernchess/coldiron/pkg/board"

// Game tracks a game as a starting position plus the move list played
// from it: undo simply drops the last move, and the current position
// is always reconstructed by replaying the remaining moves. This
// trades a little recomputation for never having to maintain an
// explicit undo stack of incremental deltas.
type Game struct {
	startingPosition *board.Position
	moves            []board.Move
}

// NewGame starts a Game from startingPosition. The position is cloned;
// later mutation of the original does not affect the Game.
func NewGame(startingPosition *board.Position) *Game {
	return &Game{startingPosition: startingPosition.Clone()}
}

// Position replays every move from the starting position and returns
// the resulting Position.
func (g *Game) Position() *board.Position {
	pos := g.startingPosition.Clone()
	for _, m := range g.moves {
		pos.MakeMove(m)
	}
	return pos
}

// MakeMove appends move to the history.
func (g *Game) MakeMove(m board.Move) {
	g.moves = append(g.moves, m)
}

// UndoMove drops the most recent move, if any.
func (g *Game) UndoMove() {
	if len(g.moves) > 0 {
		g.moves = g.moves[:len(g.moves)-1]
	}
}

// Moves returns the move history played since the starting position.
func (g *Game) Moves() []board.Move {
	return g.moves
}
