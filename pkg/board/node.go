package board

// Node bundles a Position with its ZobristHash and the square of the
// last capture, keeping all three consistent across mutation. There
// are no back-pointers: Node owns Position and holds a reference to a
// ZobristFunc, which is immutable after construction and may be
// shared by many Nodes.
type Node struct {
	Position *Position
	Hash     ZobristHash

	lastCapture    Coordinates
	hasLastCapture bool

	fn *ZobristFunc
}

// NewNode builds a Node from a fully-populated Position, computing its
// hash from scratch.
func NewNode(pos *Position, fn *ZobristFunc) *Node {
	return &Node{
		Position: pos,
		Hash:     fn.SlowHash(pos),
		fn:       fn,
	}
}

// Clone returns an independent copy: mutating the clone via MakeMove
// never affects the receiver. The ZobristFunc is shared (immutable).
func (n *Node) Clone() *Node {
	return &Node{
		Position:       n.Position.Clone(),
		Hash:           n.Hash,
		lastCapture:    n.lastCapture,
		hasLastCapture: n.hasLastCapture,
		fn:             n.fn,
	}
}

// LastCapture returns the square of the most recent capture, if any.
func (n *Node) LastCapture() (Coordinates, bool) {
	return n.lastCapture, n.hasLastCapture
}

// MakeMove applies m to both the hash and the position, keeping them
// consistent: hashMove is computed first (it needs the pre-move
// position to know what is being toggled), then delegated to Position.
func (n *Node) MakeMove(m Move) {
	n.Hash = n.hashMove(n.Hash, m)

	if m.IsNull() {
		n.hasLastCapture = false
		n.Position.PassTheTurn()
		return
	}

	if !n.Position.Square(m.To).IsEmpty() {
		n.lastCapture, n.hasLastCapture = m.To, true
	} else {
		n.hasLastCapture = false
	}

	n.Position.MakeMove(m)
}

// HashAfterMove returns the hash the position would have after m,
// without mutating anything. This lets the search engine probe the
// transposition and no-return tables before committing to the child
// position.
func (n *Node) HashAfterMove(m Move) ZobristHash {
	return n.hashMove(n.Hash, m)
}

// hashMove mirrors Position.MakeMove's effect on the hash: every
// toggle here corresponds exactly to a board mutation MakeMove will
// perform, in the same order, so that hash and position never diverge.
func (n *Node) hashMove(h ZobristHash, m Move) ZobristHash {
	// The null move changes only whose turn it is: board, en-passant
	// and castling rights are untouched, so nothing else toggles. This
	// departs from the original implementation, which computed the
	// same HashMove logic unconditionally and read GetSquare(-1,-1) for
	// a null move's "from" square -- undefined there, and a genuine
	// out-of-bounds panic here.
	if m.IsNull() {
		return h ^ n.fn.HashTurn()
	}

	pos := n.Position
	mover := pos.ToMove()
	piece := pos.Square(m.From)

	switch {
	case m.IsCastle():
		h ^= n.fn.HashPiece(m.From, piece)
		h ^= n.fn.HashPiece(m.To, piece)
		rookFrom, rookTo, _ := m.CastlingRookMove()
		rook := pos.Square(rookFrom)
		h ^= n.fn.HashPiece(rookFrom, rook)
		h ^= n.fn.HashPiece(rookTo, rook)

	case m.Type == EnPassant:
		capSq, _ := m.EnPassantCapture()
		captured := pos.Square(capSq)
		h ^= n.fn.HashPiece(capSq, captured)
		h ^= n.fn.HashPiece(m.From, piece)
		h ^= n.fn.HashPiece(m.To, piece)

	default:
		captured := pos.Square(m.To)
		if !captured.IsEmpty() {
			h ^= n.fn.HashPiece(m.To, captured)
		}
		h ^= n.fn.HashPiece(m.From, piece)
		if m.IsPromotion() {
			h ^= n.fn.HashPiece(m.To, Piece{Player: mover, Type: m.Promotion})
		} else {
			h ^= n.fn.HashPiece(m.To, piece)
		}
	}

	// En-passant: toggle the old target off, the new one on (if any).
	if oldEP, ok := pos.EnPassant(); ok {
		h ^= n.fn.HashEnPassant(oldEP, true)
	}
	if newEP, ok := m.EnPassantTarget(); ok {
		h ^= n.fn.HashEnPassant(newEP, true)
	}

	// Castling rights lost by this move.
	lost := m.CastlingRightsLost() & pos.Castling()
	h ^= n.fn.HashCastles(lost)

	h ^= n.fn.HashTurn()

	return h
}

// SetPosition installs pos wholesale (e.g. after "setboard"), clearing
// last-capture state and recomputing the hash from scratch, since
// incremental toggling has no prior state to work from here.
func (n *Node) SetPosition(pos *Position) {
	n.Position = pos
	n.Hash = n.fn.SlowHash(pos)
	n.hasLastCapture = false
}
