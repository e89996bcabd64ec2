package engine

import (
	"context"
	"time"

	"github.com/seekerror/logw"
	"github.com/wyvernchess/coldiron/pkg/board"
	"github.com/wyvernchess/coldiron/pkg/board/fen"
	"github.com/wyvernchess/coldiron/pkg/search"
)

// Manager hosts the top-level loop described in spec section 4.7:
// ProcessCommands, possibly Think, ProcessCommands again (a command
// may have arrived during thinking), then MakeBestMove if it is still
// the engine's turn in Play mode and thinking was not aborted.
//
// It owns no goroutines of its own: everything it does runs on the
// caller's goroutine inside StartMainLoop, driven entirely by the
// Protocol it wraps.
type Manager struct {
	protocol Protocol
	engine   *search.Engine
	zobrist  *board.ZobristFunc

	startingPosition *board.Position
	game             *Game

	mode        Mode
	engineColor board.Player
	timeControl TimeControl

	thought       bool
	abortThinking bool

	lastEngineStart time.Time
}

// NewManager wires protocol and engine together: every command
// callback the protocol exposes is bound to the matching Manager
// method, and the engine's batch/progress callbacks are bound back to
// the manager so that time control and command arrival can influence
// an in-progress search.
func NewManager(ctx context.Context, protocol Protocol, eng *search.Engine, zobrist *board.ZobristFunc) *Manager {
	start, err := fen.Decode(fen.Initial)
	if err != nil {
		panic("engine: invalid built-in starting FEN: " + err.Error())
	}

	m := &Manager{
		protocol:         protocol,
		engine:           eng,
		zobrist:          zobrist,
		startingPosition: start,
		game:             NewGame(start),
		mode:             Force,
		engineColor:      board.Black,
		timeControl:      DefaultTimeControl,
	}

	protocol.SetNewGameCallback(func() { m.NewGame(ctx) })
	protocol.SetMoveReceivedCallback(func(move board.Move) { m.MakeMove(ctx, move) })
	protocol.SetUndoReceivedCallback(func() { m.UndoMove(ctx) })
	protocol.SetSetColorCallback(m.SetEngineColor)
	protocol.SetSetModeCallback(func(mode Mode) { m.SetMode(ctx, mode) })
	protocol.SetSetBoardCallback(func(pos *board.Position) { m.SetPosition(ctx, pos) })
	protocol.SetSetTimeCallback(m.SetTime)

	eng.SetProceedWithBatch(func() bool { return m.proceedWithBatch(ctx) })
	eng.SetReportProgress(func(depth int16, eval search.Eval, nodes int64, pv []board.Move) {
		m.reportProgress(ctx, depth, eval, nodes, pv)
	})

	protocol.StartInputLoop(ctx)
	return m
}

// StartMainLoop runs the manager forever: process commands, think if
// it is appropriate, process whatever arrived while thinking, then
// move if thinking completed and nothing invalidated it. In Play mode
// nothing is searched or played once the position has no legal moves.
// It never returns: cmd/coldiron runs it on its own goroutine and exits
// once the protocol's input stream closes.
func (m *Manager) StartMainLoop(ctx context.Context) {
	for {
		m.protocol.ProcessCommands()

		m.abortThinking = false
		m.thought = false

		switch {
		case m.mode == Analyze:
			// Don't set thought=true: depth reached so far might be
			// too shallow to act on.
			m.Think(ctx)
		case m.mode == Play && m.engine.Position().Position.ToMove() == m.engineColor &&
			len(m.engine.Position().Position.GetLegalMoves()) > 0:
			m.Think(ctx)
			m.thought = true
		}

		m.protocol.ProcessCommands() // might've received commands while thinking

		if m.mode == Play && m.engine.Position().Position.ToMove() == m.engineColor && !m.abortThinking && m.thought {
			m.MakeBestMove(ctx)
		}
	}
}

func (m *Manager) SetEngineColor(player board.Player) {
	m.engineColor = player
}

// NewGame resets to the standard starting position in Play mode, with
// the engine playing the side opposite whichever color is to move.
func (m *Manager) NewGame(ctx context.Context) {
	m.SetPosition(ctx, m.startingPosition)
	m.SetMode(ctx, Play)
	m.SetEngineColor(m.startingPosition.ToMove().Opponent())
	m.abortThinking = true
}

// SetPosition installs pos as both the engine's and the game's current
// position, discarding history.
func (m *Manager) SetPosition(ctx context.Context, pos *board.Position) {
	m.engine.SetPosition(board.NewNode(pos, m.zobrist))
	m.game = NewGame(pos)
	m.abortThinking = true

	logw.Infof(ctx, "Position set: %v", fen.Encode(pos))
}

// SetMode switches engine mode; entering Play mode adopts whichever
// color is currently to move as the engine's color.
func (m *Manager) SetMode(ctx context.Context, mode Mode) {
	m.mode = mode
	if mode == Play {
		m.engineColor = m.engine.Position().Position.ToMove()
	}
	m.abortThinking = true

	logw.Infof(ctx, "Mode set: %v", mode)
}

func (m *Manager) SetTime(tc TimeControl) {
	m.timeControl = tc
}

// MakeMove applies an externally supplied move (typically the
// opponent's) to both the engine and the game history. move arrives
// bare (from/to/promotion only, as parsed from UCI/XBoard move text)
// and is resolved against the current position's legal moves to
// recover the Type/Piece/Capture metadata MakeMove dispatches on.
func (m *Manager) MakeMove(ctx context.Context, move board.Move) {
	resolved, err := fen.ResolveMove(m.engine.Position().Position, move)
	if err != nil {
		logw.Errorf(ctx, "Move rejected: %v", err)
		return
	}

	m.engine.MakeMove(resolved)
	m.game.MakeMove(resolved)
	m.abortThinking = true

	logw.Infof(ctx, "Move received: %v", resolved)
}

// UndoMove pops the last move from the game history and reinstalls
// the resulting position in the engine.
func (m *Manager) UndoMove(ctx context.Context) {
	m.game.UndoMove()
	m.engine.SetPosition(board.NewNode(m.game.Position(), m.zobrist))
	m.abortThinking = true

	logw.Infof(ctx, "Move undone")
}

// Think runs a batch search from the current position.
func (m *Manager) Think(ctx context.Context) {
	m.lastEngineStart = time.Now()
	m.engine.StartSearch(ctx)
}

// MakeBestMove plays the move StartSearch settled on, both internally
// and via the protocol.
func (m *Manager) MakeBestMove(ctx context.Context) {
	best := m.engine.RootInfo().BestMove
	m.engine.MakeMove(best)
	m.protocol.MakeMove(best)
	m.game.MakeMove(best)

	logw.Infof(ctx, "Engine move: %v", best)
}

// reportProgress converts a raw search.Eval into the manager's
// external convention (centipawns, or +-100000 plus a mate distance),
// then forwards to the protocol.
func (m *Manager) reportProgress(ctx context.Context, depth int16, eval search.Eval, nodes int64, pv []board.Move) {
	elapsed := time.Since(m.lastEngineStart)

	var centipawns int32
	switch {
	case eval < search.LowestEval+search.LongestCheckmate:
		matedIn := int32(eval - search.LowestEval)
		centipawns = -100000 - matedIn
	case eval > search.HighestEval-search.LongestCheckmate:
		mateIn := int32(search.HighestEval - eval)
		centipawns = 100000 + mateIn
	default:
		centipawns = int32(eval) / 10
	}

	m.protocol.DisplayInfo(depth, centipawns, int32(elapsed.Seconds()*100), nodes, pv)
}

// proceedWithBatch is the search's batch predicate: it drains whatever
// commands arrived since the last check, then decides whether to keep
// searching based on mode and, in Play mode, the time control.
func (m *Manager) proceedWithBatch(ctx context.Context) bool {
	m.protocol.ProcessCommands()
	if m.abortThinking {
		return false
	}

	switch m.mode {
	case Force:
		return false
	case Play:
		elapsed := time.Since(m.lastEngineStart)
		return elapsed < time.Duration(float64(m.timeControl.GuaranteedTimePerMove())*0.95)
	case Analyze:
		return true
	default:
		return false
	}
}
