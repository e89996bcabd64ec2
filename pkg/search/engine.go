// Package search implements the negamax/alpha-beta search engine:
// iterative deepening over a transposition- and no-return-table backed
// negamax, with a quiescence extension restricted to the last capture
// square (see Engine.search for the full algorithm).
package search

import (
	"context"

	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/mathx"
	"github.com/wyvernchess/coldiron/pkg/board"
)

// maxDepth bounds both the iterative-deepening loop and the killer-move
// table: no legitimate search (including check extensions) ever
// recurses this deep.
const maxDepth = 1000

// NodeType classifies a NodeInfo's eval relative to the window it was
// searched with.
type NodeType uint8

const (
	FailLow NodeType = iota
	PV
	FailHigh
)

func (t NodeType) String() string {
	switch t {
	case FailLow:
		return "fail-low"
	case PV:
		return "pv"
	case FailHigh:
		return "fail-high"
	default:
		return "?"
	}
}

// NodeInfo is a search result: the score is always from the viewpoint
// of the player to move in the position it was computed for. Depth -1
// is the cancellation sentinel returned when a batch callback aborts
// the search mid-recursion.
type NodeInfo struct {
	Depth     int16
	Type      NodeType
	Eval      Eval
	BestMove  board.Move
}

var cancelled = NodeInfo{Depth: -1}

type killerPair struct {
	First, Second board.Move
}

// Engine runs the search described in RunSearch/StartSearch against a
// single root Node, maintaining a transposition table, a no-return
// (repetition-avoidance) table, killer moves per ply and the current
// principal variation across iterative-deepening calls.
type Engine struct {
	root *board.Node

	tt       *PositionTable[NodeInfo]
	useTT    bool
	noReturn *PositionTable[bool]

	cutMoves           []killerPair
	principalVariation []board.Move
	rootInfo           NodeInfo

	nodesVisited     int64
	batchSize        int64
	processedInBatch int64
	proceeding       bool

	proceedWithBatch func() bool
	reportProgress   func(depth int16, eval Eval, nodes int64, pv []board.Move)

	noise Random

	depthLimit lang.Optional[int16]
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithHashBits sizes the transposition table to 2^nbits entries.
// Omitted, it defaults to 2^25 entries, matching the original engine's
// fixed-size table.
func WithHashBits(nbits uint) Option {
	return func(e *Engine) {
		e.tt = NewPositionTable[NodeInfo](nbits)
	}
}

// WithNoise adds up to limit evaluation units of randomness to leaf
// evaluations, seeded by seed.
func WithNoise(limit int, seed int64) Option {
	return func(e *Engine) {
		e.noise = NewRandom(limit, seed)
	}
}

// WithBatchSize sets how many nodes are visited between calls to the
// proceed-with-batch predicate. The default of 1 checks every node,
// matching the original engine's default (unset) batch size.
func WithBatchSize(n int64) Option {
	return func(e *Engine) {
		e.batchSize = n
	}
}

// WithProceedWithBatch installs the predicate invoked every batch_size
// nodes; returning false cancels the in-progress search.
func WithProceedWithBatch(f func() bool) Option {
	return func(e *Engine) {
		e.proceedWithBatch = f
	}
}

// WithDepthLimit caps iterative deepening at the given ply depth.
// Omitted, deepening continues until the proceed-with-batch predicate
// or the context cancels the search.
func WithDepthLimit(depth int16) Option {
	return func(e *Engine) {
		e.depthLimit = lang.Some(depth)
	}
}

// WithReportProgress installs the callback invoked whenever a new best
// line is found at the root, and once per completed iterative-deepening
// depth.
func WithReportProgress(f func(depth int16, eval Eval, nodes int64, pv []board.Move)) Option {
	return func(e *Engine) {
		e.reportProgress = f
	}
}

// NewEngine constructs an Engine rooted at node.
func NewEngine(node *board.Node, opts ...Option) *Engine {
	e := &Engine{
		root:             node,
		tt:               NewPositionTable[NodeInfo](25),
		useTT:            true,
		noReturn:         NewPositionTable[bool](16),
		cutMoves:         make([]killerPair, maxDepth),
		batchSize:        1,
		proceeding:       true,
		proceedWithBatch: func() bool { return true },
		reportProgress:   func(int16, Eval, int64, []board.Move) {},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetProceedWithBatch installs the predicate invoked every batch_size
// nodes after construction, e.g. once the manager that owns this
// engine exists and can supply a closure over its own state.
func (e *Engine) SetProceedWithBatch(f func() bool) {
	e.proceedWithBatch = f
}

// SetReportProgress installs the progress callback after construction.
func (e *Engine) SetReportProgress(f func(depth int16, eval Eval, nodes int64, pv []board.Move)) {
	e.reportProgress = f
}

// UseTranspositionTable toggles whether search results are stored in
// (and served from) the transposition table.
func (e *Engine) UseTranspositionTable(value bool) {
	e.useTT = value
}

// Position returns the engine's current root node.
func (e *Engine) Position() *board.Node {
	return e.root
}

// SetPosition installs a new root wholesale, clearing both tables: a
// changed position invalidates every stored bound.
func (e *Engine) SetPosition(node *board.Node) {
	e.root = node
	e.tt.Clear()
	e.noReturn.Clear()
	e.rootInfo = NodeInfo{}
}

// MakeMove advances the root by move, marking its prior hash as
// visited in the no-return table so deeper search treats a return to
// this position as a draw by repetition.
func (e *Engine) MakeMove(move board.Move) {
	e.noReturn.Set(e.root.Hash, true)
	e.root.MakeMove(move)
	e.rootInfo = NodeInfo{}
}

// NodesVisited returns the number of nodes visited by the most recent
// (or in-progress) search.
func (e *Engine) NodesVisited() int64 {
	return e.nodesVisited
}

// PrincipalVariation returns the best line found by the most recent
// completed iterative-deepening depth.
func (e *Engine) PrincipalVariation() []board.Move {
	return e.principalVariation
}

// RootInfo returns the result of the deepest completed iteration.
func (e *Engine) RootInfo() NodeInfo {
	return e.rootInfo
}

// StartSearch runs iterative deepening from depth 1 until the
// proceed-with-batch predicate or ctx cancels the search, the depth
// limit (if any) is reached, or maxDepth is reached, storing the
// result of each completed depth as RootInfo and invoking the
// report-progress callback after every depth.
func (e *Engine) StartSearch(ctx context.Context) {
	e.nodesVisited = 0
	e.processedInBatch = 0
	e.proceeding = true

	limit := int16(maxDepth)
	if v, ok := e.depthLimit.V(); ok {
		limit = v
	}

	for depth := int16(1); depth < maxDepth && depth <= limit; depth++ {
		info := e.search(ctx, depth, 0, e.root, &e.principalVariation, LowestEval, HighestEval, 0)
		if info.Depth == -1 {
			break
		}
		e.rootInfo = info
		e.reportProgress(depth, info.Eval, e.nodesVisited, e.principalVariation)
	}
}

// reportableEval pushes a mate score one unit further from the root,
// matching the adjustment search applies before storing a NodeInfo, so
// a score read straight from the root carries the same convention.
func reportableEval(e Eval) Eval {
	if e > HighestEval-LongestCheckmate {
		e--
	}
	return e
}

// search implements spec section 4.6.2: negamax with alpha-beta,
// transposition- and no-return-table lookups, check extensions and a
// quiescence tail restricted to the last capture square.
func (e *Engine) search(ctx context.Context, depth, checkExtraDepth int16, node *board.Node, parentVariation *[]board.Move, alpha, beta Eval, ply int16) NodeInfo {
	e.processedInBatch++
	if e.processedInBatch >= e.batchSize {
		e.proceeding = e.proceedWithBatch() && !contextx.IsCancelled(ctx)
		e.processedInBatch = 0
	}
	if !e.proceeding {
		return cancelled
	}
	e.nodesVisited++

	pos := node.Position
	if pos.IsCheckmate() {
		ret := NodeInfo{Depth: depth, Type: PV, Eval: LowestEval, BestMove: board.NullMove}
		if e.useTT {
			e.tt.Set(node.Hash, ret)
		}
		return ret
	}
	if pos.IsStalemate() {
		ret := NodeInfo{Depth: depth, Type: PV, Eval: 0, BestMove: board.NullMove}
		if e.useTT {
			e.tt.Set(node.Hash, ret)
		}
		return ret
	}

	var moves []board.Move
	if depth > 0 {
		moves = e.sortMoves(pos.GetLegalMoves(), node, ply)
	} else if capSq, ok := node.LastCapture(); ok {
		moves = append(pos.GetCapturesOnSquare(capSq, pos.ToMove()), board.NullMove)
	} else {
		return NodeInfo{Depth: 0, Type: PV, Eval: SimpleEvaluate(node) + e.noise.Evaluate(), BestMove: board.NullMove}
	}

	bestMove := moves[0]
	eval := LowestEval
	typ := FailLow
	var localPV []board.Move

	for _, move := range moves {
		childDepth := depth
		if childDepth <= 0 {
			childDepth = 1 // already inside quiescence
		} else if checkExtraDepth > 0 && (pos.IsCheck() || pos.MoveIsCheckFast(move)) {
			childDepth++
			checkExtraDepth--
		}

		newHash := node.HashAfterMove(move)

		var child NodeInfo
		if visited, ok := e.noReturn.Get(newHash); ok && visited {
			child = NodeInfo{Depth: maxDepth, Type: PV, Eval: 0, BestMove: board.NullMove}
		} else if cached, ok := e.tt.Get(newHash); ok && cached.Depth >= childDepth-1 {
			child = cached
		} else {
			child = e.search(ctx, childDepth-1, checkExtraDepth, childOf(node, move), &localPV, -beta, -alpha, ply+1)
		}

		switch child.Type {
		case FailLow:
			if -child.Eval < beta {
				newAlpha := mathx.Max(alpha, -child.Eval)
				child = e.search(ctx, childDepth-1, checkExtraDepth, childOf(node, move), &localPV, -beta, -newAlpha, ply+1)
			}
		case FailHigh:
			if alpha < -child.Eval {
				newBeta := mathx.Min(beta, -child.Eval)
				child = e.search(ctx, childDepth-1, checkExtraDepth, childOf(node, move), &localPV, -newBeta, -alpha, ply+1)
			}
		}

		if !e.proceeding {
			return cancelled
		}

		if -child.Eval > eval {
			eval = -child.Eval
			bestMove = move
		}
		if -child.Eval > alpha {
			typ = PV
			alpha = -child.Eval

			line := make([]board.Move, 0, len(localPV)+1)
			line = append(line, move)
			line = append(line, localPV...)
			*parentVariation = line

			if ply == 0 {
				e.reportProgress(depth, reportableEval(eval), e.nodesVisited, *parentVariation)
			}
		}
		if alpha >= beta {
			typ = FailHigh
			if !pos.MoveIsCheckFast(move) && pos.Square(move.To).IsEmpty() && !e.cutMoves[ply].First.Equals(move) {
				e.cutMoves[ply].Second = e.cutMoves[ply].First
				e.cutMoves[ply].First = move
			}
			break
		}
	}

	eval = reportableEval(eval)
	ret := NodeInfo{Depth: depth, Type: typ, Eval: eval, BestMove: bestMove}
	if e.useTT {
		e.tt.Set(node.Hash, ret)
	}
	return ret
}

func childOf(node *board.Node, move board.Move) *board.Node {
	child := node.Clone()
	child.MakeMove(move)
	return child
}

// sortMoves stably partitions moves to front in priority order: the
// transposition table's recorded best move, the current ply's PV move,
// the two killer moves for this ply, fast-checking moves, then
// captures. Mutates and returns the same slice.
func (e *Engine) sortMoves(moves []board.Move, node *board.Node, ply int16) []board.Move {
	idx := 0

	if info, ok := e.tt.Get(node.Hash); ok {
		idx = partitionTo(moves, idx, func(m board.Move) bool { return m.Equals(info.BestMove) })
	}
	if int(ply) < len(e.principalVariation) {
		pvMove := e.principalVariation[ply]
		idx = partitionTo(moves, idx, func(m board.Move) bool { return m.Equals(pvMove) })
	}

	cut := e.cutMoves[ply]
	idx = partitionTo(moves, idx, func(m board.Move) bool {
		return m.Equals(cut.First) || m.Equals(cut.Second)
	})

	idx = partitionTo(moves, idx, func(m board.Move) bool { return node.Position.MoveIsCheckFast(m) })

	partitionTo(moves, idx, func(m board.Move) bool { return !node.Position.Square(m.To).IsEmpty() })

	return moves
}

// partitionTo swaps every element from idx onward matching pred to the
// front of that range, returning the new boundary.
func partitionTo(moves []board.Move, idx int, pred func(board.Move) bool) int {
	for i := idx; i < len(moves); i++ {
		if pred(moves[i]) {
			moves[idx], moves[i] = moves[i], moves[idx]
			idx++
		}
	}
	return idx
}
