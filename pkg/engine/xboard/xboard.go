// Package xboard implements the XBoard/WinBoard engine protocol driver
// described in spec section 6: a background goroutine turns stdin
// lines into a buffered channel of commands, and ProcessCommands
// drains whatever has arrived without blocking.
//
// See: http://hgm.nubati.net/CECP.html
package xboard

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/iox"
	"github.com/wyvernchess/coldiron/pkg/board"
	"github.com/wyvernchess/coldiron/pkg/board/fen"
	"github.com/wyvernchess/coldiron/pkg/engine"
)

const ProtocolName = "xboard"

// Driver implements engine.Protocol over the XBoard/CECP text protocol.
// It closes (see Closed) once the input stream it was started with
// ends, e.g. when the GUI closes stdin on exit.
type Driver struct {
	iox.AsyncCloser

	in  <-chan string
	out chan<- string

	pending chan string

	newGameCallback     func()
	moveReceivedCallback func(move board.Move)
	undoReceivedCallback func()
	setColorCallback     func(player board.Player)
	setModeCallback      func(mode engine.Mode)
	setBoardCallback     func(pos *board.Position)
	setTimeCallback      func(tc engine.TimeControl)
}

// NewDriver constructs a Driver. Call StartInputLoop once before the
// first ProcessCommands.
func NewDriver() *Driver {
	return &Driver{
		AsyncCloser:          iox.NewAsyncCloser(),
		pending:              make(chan string, 1000),
		newGameCallback:      func() {},
		moveReceivedCallback: func(board.Move) {},
		undoReceivedCallback: func() {},
		setColorCallback:     func(board.Player) {},
		setModeCallback:      func(engine.Mode) {},
		setBoardCallback:     func(*board.Position) {},
		setTimeCallback:      func(engine.TimeControl) {},
	}
}

func (d *Driver) SetNewGameCallback(f func())                          { d.newGameCallback = f }
func (d *Driver) SetMoveReceivedCallback(f func(move board.Move))      { d.moveReceivedCallback = f }
func (d *Driver) SetUndoReceivedCallback(f func())                     { d.undoReceivedCallback = f }
func (d *Driver) SetSetColorCallback(f func(player board.Player))      { d.setColorCallback = f }
func (d *Driver) SetSetModeCallback(f func(mode engine.Mode))          { d.setModeCallback = f }
func (d *Driver) SetSetBoardCallback(f func(pos *board.Position))      { d.setBoardCallback = f }
func (d *Driver) SetSetTimeCallback(f func(tc engine.TimeControl))     { d.setTimeCallback = f }

// StartInputLoop wires stdin into the driver's pending-command queue
// and starts an output goroutine draining Driver writes to stdout.
// Must be called exactly once.
func (d *Driver) StartInputLoop(ctx context.Context) {
	d.in = readStdinLines(ctx)
	out := make(chan string, 100)
	d.out = out
	go writeStdoutLines(ctx, out)

	go func() {
		defer d.Close()
		defer close(d.pending)
		for line := range d.in {
			d.pending <- line
		}
	}()
}

// readStdinLines reads stdin lines into a chan. Async.
func readStdinLines(ctx context.Context) <-chan string {
	ret := make(chan string, 1)
	go func() {
		defer close(ret)

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			logw.Debugf(ctx, "<< %v", scanner.Text())
			ret <- scanner.Text()
		}
	}()
	return ret
}

// writeStdoutLines writes lines from the given chan to stdout.
func writeStdoutLines(ctx context.Context, out <-chan string) {
	for line := range out {
		logw.Debugf(ctx, ">> %v", line)
		_, _ = fmt.Fprintln(os.Stdout, line)
	}
}

// ProcessCommands drains and dispatches every command currently
// queued, without blocking for more to arrive.
func (d *Driver) ProcessCommands() {
	for {
		select {
		case line, ok := <-d.pending:
			if !ok {
				return
			}
			d.dispatch(context.Background(), line)
		default:
			return
		}
	}
}

func (d *Driver) dispatch(ctx context.Context, line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "xboard":
		// No reply required.
	case "protover":
		d.sendFeatures()
	case "white":
		d.setColorCallback(board.Black) // engine now plays the opposite color
	case "black":
		d.setColorCallback(board.White)
	case "force":
		d.setModeCallback(engine.Force)
	case "go":
		d.setModeCallback(engine.Play)
	case "analyze":
		d.setModeCallback(engine.Analyze)
	case "new":
		d.newGameCallback()
	case "setboard":
		d.handleSetBoard(ctx, strings.Join(args, " "))
	case "usermove":
		d.handleUserMove(ctx, args)
	case "undo":
		d.undoReceivedCallback()
	case "level":
		d.handleLevel(ctx, args)
	case "quit":
		// Handled upstream by the process exiting; nothing to do here.
	default:
		logw.Warningf(ctx, "xboard: unrecognized command %q", line)
	}
}

func (d *Driver) sendFeatures() {
	d.out <- "feature colors=0 playother=1 setboard=1 usermove=1 done=0"
	d.out <- "feature done=1"
}

func (d *Driver) handleSetBoard(ctx context.Context, arg string) {
	pos, err := fen.Decode(arg)
	if err != nil {
		logw.Errorf(ctx, "xboard: invalid setboard FEN %q: %v", arg, err)
		return
	}
	d.setBoardCallback(pos)
}

func (d *Driver) handleUserMove(ctx context.Context, args []string) {
	if len(args) == 0 {
		logw.Errorf(ctx, "xboard: usermove with no argument")
		return
	}
	move, err := fen.ParseXBoardMove(args[0])
	if err != nil {
		logw.Errorf(ctx, "xboard: invalid move %q: %v", args[0], err)
		return
	}
	d.moveReceivedCallback(move)
}

// handleLevel parses "level <moves> <time> <increment>", where time is
// MM or MM:SS, per spec section 6.
func (d *Driver) handleLevel(ctx context.Context, args []string) {
	if len(args) != 3 {
		logw.Errorf(ctx, "xboard: malformed level command: %v", args)
		return
	}

	moves, err := strconv.Atoi(args[0])
	if err != nil {
		logw.Errorf(ctx, "xboard: invalid level moves %q: %v", args[0], err)
		return
	}

	seconds, err := parseLevelTime(args[1])
	if err != nil {
		logw.Errorf(ctx, "xboard: invalid level time %q: %v", args[1], err)
		return
	}

	increment, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		logw.Errorf(ctx, "xboard: invalid level increment %q: %v", args[2], err)
		return
	}

	d.setTimeCallback(engine.TimeControl{
		Period:           moves,
		SecondsPerPeriod: seconds,
		Increment:        increment,
	})
}

func parseLevelTime(s string) (float64, error) {
	if minutes, seconds, ok := strings.Cut(s, ":"); ok {
		m, err := strconv.Atoi(minutes)
		if err != nil {
			return 0, err
		}
		sec, err := strconv.Atoi(seconds)
		if err != nil {
			return 0, err
		}
		return float64(m*60 + sec), nil
	}
	m, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return float64(m * 60), nil
}

// MakeMove announces the engine's own move.
func (d *Driver) MakeMove(move board.Move) {
	d.out <- fmt.Sprintf("move %v", fen.MoveToXBoard(move))
}

// DisplayInfo announces search progress in XBoard's "thinking output"
// format: ply, centipawns, centiseconds, nodes, then the PV.
func (d *Driver) DisplayInfo(ply int16, centipawns int32, centiseconds int32, nodes int64, pv []board.Move) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d %d %d %d", ply, centipawns, centiseconds, nodes)
	for _, m := range pv {
		sb.WriteByte(' ')
		sb.WriteString(fen.MoveToXBoard(m))
	}
	d.out <- sb.String()
}
