package engine

import (
	"context"

	"github.com/wyvernchess/coldiron/pkg/board"
)

// Protocol is the capability set the Manager depends on: a way to
// drain and react to incoming commands, a way to announce the
// engine's own moves and progress, and setters for the seven command
// callbacks the Manager implements. XBoard is the one implementation
// today (see pkg/engine/xboard); a UCI or other front end would
// satisfy the same interface.
type Protocol interface {
	// ProcessCommands drains and dispatches whatever commands have
	// arrived since the last call, without blocking.
	ProcessCommands()
	// StartInputLoop begins reading commands in the background. Must
	// be called exactly once, before the first ProcessCommands.
	StartInputLoop(ctx context.Context)

	// MakeMove announces the engine's own move.
	MakeMove(move board.Move)
	// DisplayInfo announces search progress: ply depth, evaluation (in
	// centipawns, or an encoded mate score), elapsed centiseconds,
	// nodes visited and the current principal variation.
	DisplayInfo(ply int16, centipawns int32, centiseconds int32, nodes int64, pv []board.Move)

	SetNewGameCallback(f func())
	SetMoveReceivedCallback(f func(move board.Move))
	SetUndoReceivedCallback(f func())
	SetSetColorCallback(f func(player board.Player))
	SetSetModeCallback(f func(mode Mode))
	SetSetBoardCallback(f func(pos *board.Position))
	SetSetTimeCallback(f func(tc TimeControl))
}
