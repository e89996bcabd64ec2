// coldiron is an XBoard/WinBoard chess engine: iterative-deepening
// alpha-beta search over an incrementally-maintained position, per the
// design in pkg/board, pkg/search and pkg/engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/wyvernchess/coldiron/pkg/board"
	"github.com/wyvernchess/coldiron/pkg/board/fen"
	"github.com/wyvernchess/coldiron/pkg/engine"
	"github.com/wyvernchess/coldiron/pkg/engine/xboard"
	"github.com/wyvernchess/coldiron/pkg/search"
)

var version = build.NewVersion(0, 1, 0)

var (
	hashBits  = flag.Uint("hash", 25, "Transposition table size, in bits (2^n entries)")
	noise     = flag.Int("noise", 0, "Evaluation noise in \"millipawns\" (zero if deterministic)")
	seed      = flag.Int64("seed", time.Now().UnixNano(), "Evaluation noise random seed")
	depthCap  = flag.Uint("depth", 0, "Iterative-deepening depth limit (zero if no limit)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: coldiron [options]

COLDIRON is an XBoard/WinBoard chess engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	logw.Infof(ctx, "COLDIRON %v chess engine starting", version)

	start, err := fen.Decode(fen.Initial)
	if err != nil {
		logw.Exitf(ctx, "Invalid built-in starting FEN: %v", err)
	}

	zobrist := board.NewZobristFunc(*seed)
	node := board.NewNode(start, zobrist)

	opts := []search.Option{
		search.WithHashBits(*hashBits),
		search.WithNoise(*noise, *seed),
	}
	if *depthCap > 0 {
		opts = append(opts, search.WithDepthLimit(int16(*depthCap)))
	}
	e := search.NewEngine(node, opts...)

	driver := xboard.NewDriver()
	m := engine.NewManager(ctx, driver, e, zobrist)
	go m.StartMainLoop(ctx)

	<-driver.Closed()
}
