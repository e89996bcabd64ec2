package board

// Position is the central, invariant-rich board representation: the
// 8x8 board plus castling/en-passant/clock state, and three
// incrementally maintained derived tables (attacks, directedAttacks,
// checkingSquares) that together make legal move generation O(moves)
// instead of O(board x rays).
//
// Every mutation goes through SetSquare, which keeps the derived
// tables consistent with board in O(ray-length x 8) per call. Callers
// outside this package (FEN decoding, MakeMove) never touch the
// derived tables directly.
type Position struct {
	board [8][8]Piece

	toMove         Player
	castlingRights CastlingRights
	enPassant      Coordinates
	hasEnPassant   bool
	halfmoveClock  int16
	moveNumber     int16

	whiteKing Coordinates
	blackKing Coordinates

	checkSegment    Segment
	hasCheckSegment bool

	attacks         [8][8]Attacks
	directedAttacks [8][8]AttackInfo
	checkingSquares [8][8]AttackInfo

	legalMoves     []Move
	movesGenerated bool
}

// NewPosition returns an empty position: no pieces, White to move, no
// castling rights, move number 1. Callers typically populate the board
// via SetSquare then call Init to install the non-board metadata (see
// pkg/board/fen).
func NewPosition() *Position {
	return &Position{
		toMove:     White,
		moveNumber: 1,
		whiteKing:  Coordinates{File: -1, Rank: -1},
		blackKing:  Coordinates{File: -1, Rank: -1},
	}
}

// Init installs the non-board metadata after the board has been
// populated via SetSquare calls. It does not touch the derived attack
// tables: those were already brought to a consistent state by the
// SetSquare calls that placed the pieces.
func (p *Position) Init(toMove Player, castling CastlingRights, enPassant Coordinates, hasEnPassant bool, halfmoveClock, moveNumber int16) {
	p.toMove = toMove
	p.castlingRights = castling
	p.enPassant = enPassant
	p.hasEnPassant = hasEnPassant
	p.halfmoveClock = halfmoveClock
	p.moveNumber = moveNumber
	p.movesGenerated = false
	p.recomputeCheckSegment()
}

// Clone returns an independent copy: mutating the clone through
// SetSquare/MakeMove never affects the receiver. The cached legal-move
// slice is dropped rather than copied, since it is cheap to regenerate
// and sharing it across clones risks aliasing once either is mutated.
func (p *Position) Clone() *Position {
	c := *p
	c.legalMoves = nil
	c.movesGenerated = false
	return &c
}

// Square returns the piece on sq, or the zero Piece if empty.
func (p *Position) Square(sq Coordinates) Piece {
	return p.board[sq.File][sq.Rank]
}

func (p *Position) ToMove() Player          { return p.toMove }
func (p *Position) Castling() CastlingRights { return p.castlingRights }
func (p *Position) HalfmoveClock() int16     { return p.halfmoveClock }
func (p *Position) MoveNumber() int16        { return p.moveNumber }

func (p *Position) EnPassant() (Coordinates, bool) {
	return p.enPassant, p.hasEnPassant
}

func (p *Position) KingSquare(player Player) Coordinates {
	switch player {
	case White:
		return p.whiteKing
	case Black:
		return p.blackKing
	default:
		panic("board: KingSquare of NoPlayer")
	}
}

// GetAttacksByPlayer returns the number of player's pieces attacking sq.
func (p *Position) GetAttacksByPlayer(sq Coordinates, player Player) int16 {
	return p.attacks[sq.File][sq.Rank].ByPlayer(player)
}

// GetChecks returns the number of pieces currently attacking player's king.
func (p *Position) GetChecks(player Player) int16 {
	king := p.KingSquare(player)
	return p.GetAttacksByPlayer(king, player.Opponent())
}

func (p *Position) IsCheck() bool {
	return p.GetChecks(p.toMove) > 0
}

func (p *Position) IsCheckmate() bool {
	return p.IsCheck() && len(p.GetLegalMoves()) == 0
}

func (p *Position) IsStalemate() bool {
	return !p.IsCheck() && len(p.GetLegalMoves()) == 0
}

// ---------------------------------------------------------------------
// Incremental attack maintenance (spec C2 section 4.2.2)
// ---------------------------------------------------------------------

// knightDeltas are the 8 knight jump offsets.
var knightDeltas = [8]Coordinates{
	{File: 1, Rank: 2}, {File: 2, Rank: 1}, {File: 2, Rank: -1}, {File: 1, Rank: -2},
	{File: -1, Rank: -2}, {File: -2, Rank: -1}, {File: -2, Rank: 1}, {File: -1, Rank: 2},
}

// kingDeltas are the 8 king step offsets.
var kingDeltas = [8]Coordinates{
	Up.Delta(), UpRight.Delta(), Right.Delta(), DownRight.Delta(),
	Down.Delta(), DownLeft.Delta(), Left.Delta(), UpLeft.Delta(),
}

var straightDirs = [4]Direction{Up, Right, Down, Left}
var diagonalDirs = [4]Direction{UpRight, DownRight, DownLeft, UpLeft}

// SetSquare places newPiece on sq, incrementally updating all derived
// tables so they remain consistent with board.
func (p *Position) SetSquare(sq Coordinates, newPiece Piece) {
	old := p.board[sq.File][sq.Rank]

	if !old.IsEmpty() {
		p.updatePointAttacks(sq, old, -1)
	}
	if !newPiece.IsEmpty() {
		p.updatePointAttacks(sq, newPiece, +1)
	}

	// Slider contributions and ray propagation, with the "king does not
	// block its own attacker" correction, depend on how occupancy at sq
	// changed and are handled together per-direction.
	p.updateSliderDeltasAndRays(sq, old, newPiece)

	p.board[sq.File][sq.Rank] = newPiece
	if newPiece.Type == King {
		switch newPiece.Player {
		case White:
			p.whiteKing = sq
		case Black:
			p.blackKing = sq
		}
	}
	p.movesGenerated = false
}

// updatePointAttacks applies the non-sliding (knight/king/pawn) attack
// contribution of piece at sq, scaled by sign (+1 to add, -1 to remove).
func (p *Position) updatePointAttacks(sq Coordinates, piece Piece, sign int16) {
	switch piece.Type {
	case Knight:
		delta := scaledOnePiece(piece.Player, sign)
		for _, d := range knightDeltas {
			t := sq.Add(d)
			if WithinBoard(t) {
				p.attacks[t.File][t.Rank] = p.attacks[t.File][t.Rank].Add(delta)
			}
		}
	case King:
		delta := scaledOnePiece(piece.Player, sign)
		for _, d := range kingDeltas {
			t := sq.Add(d)
			if WithinBoard(t) {
				p.attacks[t.File][t.Rank] = p.attacks[t.File][t.Rank].Add(delta)
			}
		}
	case Pawn:
		delta := scaledOnePiece(piece.Player, sign)
		dir := PawnDirection(piece.Player)
		for _, df := range [2]int8{-1, 1} {
			t := Coordinates{File: sq.File + df, Rank: sq.Rank + dir}
			if WithinBoard(t) {
				p.attacks[t.File][t.Rank] = p.attacks[t.File][t.Rank].Add(delta)
			}
		}
	}
	// Bishop/Rook/Queen attack contributions are ray-shaped, handled
	// entirely by updateSliderDeltasAndRays.
}

func scaledOnePiece(player Player, sign int16) Attacks {
	d := OnePiece(player)
	d.ByWhite *= sign
	d.ByBlack *= sign
	return d
}

// sliderDirections returns the ray directions a piece type attacks along.
func sliderDirections(t PieceType) []Direction {
	switch t {
	case Rook:
		return straightDirs[:]
	case Bishop:
		return diagonalDirs[:]
	case Queen:
		return queenDirs[:]
	default:
		return nil
	}
}

var queenDirs = [8]Direction{Up, UpRight, Right, DownRight, Down, DownLeft, Left, UpLeft}

// slidesTowards reports whether a piece of type t attacks along
// direction d: a rook needs a straight ray, a bishop a diagonal one,
// and a queen either.
func slidesTowards(t PieceType, d Direction) bool {
	switch t {
	case Rook:
		return d.IsStraight()
	case Bishop:
		return d.IsDiagonal()
	case Queen:
		return true
	default:
		return false
	}
}

// updateSliderDeltasAndRays walks all 8 rays from sq, applying the
// slider-attack delta contributed by old/new occupancy and the
// checking-squares (king-visibility) delta, truncating each ray at the
// first occupied square -- except that a king never blocks the rays of
// the opposing color. Rays of other pieces that arrive at sq are cut
// off or released past sq according to how its occupant changed.
func (p *Position) updateSliderDeltasAndRays(sq Coordinates, old, newPiece Piece) {
	// pass returns the part of a ray arriving at sq that continues past pc.
	pass := func(pc Piece, a Attacks) Attacks {
		switch {
		case pc.Type == King && pc.Player == White:
			a.ByWhite = 0
		case pc.Type == King:
			a.ByBlack = 0
		case !pc.IsEmpty():
			a = Attacks{}
		}
		return a
	}
	for d := Direction(0); d < NumDirections; d++ {
		in := p.directedAttacks[sq.File][sq.Rank].Get(d)
		kin := p.checkingSquares[sq.File][sq.Rank].Get(d)
		attackDelta := pass(newPiece, in).Sub(pass(old, in))
		if !old.IsEmpty() && slidesTowards(old.Type, d) {
			attackDelta = attackDelta.Sub(OnePiece(old.Player))
		}
		if !newPiece.IsEmpty() && slidesTowards(newPiece.Type, d) {
			attackDelta = attackDelta.Add(OnePiece(newPiece.Player))
		}

		kingDelta := pass(newPiece, kin).Sub(pass(old, kin))
		if old.Type == King {
			kingDelta = kingDelta.Sub(OnePiece(old.Player))
		}
		if newPiece.Type == King {
			kingDelta = kingDelta.Add(OnePiece(newPiece.Player))
		}

		if attackDelta.IsZero() && kingDelta.IsZero() {
			continue
		}
		p.walkRay(sq, d, attackDelta, kingDelta)
	}
}

// walkRay propagates attackDelta (applied to both attacks[] and
// directedAttacks[].Get(d)) and kingDelta (applied to checkingSquares)
// outward from sq in direction d, stopping at the first occupied
// square -- except that a king at the blocking square does not block
// the ray for the opposing color: the walk continues past it, with the
// king's own color's contribution to the deltas masked out, since the
// square "behind" a checked king must remain marked unsafe for it to
// flee to.
func (p *Position) walkRay(sq Coordinates, d Direction, attackDelta, kingDelta Attacks) {
	delta := d.Delta()
	cur := sq.Add(delta)
	for WithinBoard(cur) {
		if !attackDelta.IsZero() {
			p.attacks[cur.File][cur.Rank] = p.attacks[cur.File][cur.Rank].Add(attackDelta)
			p.directedAttacks[cur.File][cur.Rank].SetByDelta(d, attackDelta)
		}
		if !kingDelta.IsZero() {
			p.checkingSquares[cur.File][cur.Rank].SetByDelta(d, kingDelta)
		}

		occupant := p.board[cur.File][cur.Rank]
		if !occupant.IsEmpty() {
			if occupant.Type != King {
				return
			}
			// King-does-not-block-itself: continue past it, masking out
			// further contributions for the king's own color.
			switch occupant.Player {
			case White:
				attackDelta.ByWhite, kingDelta.ByWhite = 0, 0
			case Black:
				attackDelta.ByBlack, kingDelta.ByBlack = 0, 0
			}
			if attackDelta.IsZero() && kingDelta.IsZero() {
				return
			}
		}
		cur = cur.Add(delta)
	}
}

// ---------------------------------------------------------------------
// Pin inference (spec 4.2.3)
// ---------------------------------------------------------------------

// pinDirection returns the ray direction along which the piece at sq
// (owned by mover) is pinned against mover's king, or false if it is
// not pinned.
func (p *Position) pinDirection(sq Coordinates, mover Player) (Direction, bool) {
	opp := mover.Opponent()
	info := p.directedAttacks[sq.File][sq.Rank]
	king := p.checkingSquares[sq.File][sq.Rank]

	for d := Direction(0); d < NumDirections; d++ {
		if info.Get(d).ByPlayer(opp) > 0 && king.Get(d.Opposite()).ByPlayer(mover) > 0 {
			return d, true
		}
	}
	return 0, false
}

// ---------------------------------------------------------------------
// move_is_check_fast (spec 4.2.5)
// ---------------------------------------------------------------------

// MoveIsCheckFast conservatively reports whether m certainly gives
// check. False negatives are allowed (castles, en-passant discoveries,
// and subtler discovered checks are not reported); false positives are
// not. A king move is never reported as a direct check, since a king
// cannot directly check; it is still subject to the discovered-check
// test below.
func (p *Position) MoveIsCheckFast(m Move) bool {
	mover := p.toMove
	opp := mover.Opponent()
	opponentKing := p.KingSquare(opp)

	piece := m.Piece
	if m.IsPromotion() {
		piece = m.Promotion
	}

	switch piece {
	case Knight:
		if IsKnightMoveAway(m.To, opponentKing) {
			return true
		}
	case Pawn:
		dir := PawnDirection(mover)
		for _, df := range [2]int8{-1, 1} {
			if m.To.Add(Coordinates{File: df, Rank: dir}).Equals(opponentKing) {
				return true
			}
		}
	case Rook, Bishop, Queen:
		for _, d := range sliderDirections(piece) {
			if p.checkingSquares[m.To.File][m.To.Rank].Get(d).ByPlayer(opp) > 0 {
				return true
			}
		}
	}

	// Discovered check: does vacating m.From reveal an attack from one
	// of mover's own sliders onto the opponent king? Only claim this
	// when m.To does not lie on the same line (otherwise the moving
	// piece would still block the discovered ray).
	info := p.directedAttacks[m.From.File][m.From.Rank]
	king := p.checkingSquares[m.From.File][m.From.Rank]
	for d := Direction(0); d < NumDirections; d++ {
		if info.Get(d).ByPlayer(mover) > 0 && king.Get(d.Opposite()).ByPlayer(opp) > 0 {
			line := Segment{Start: m.From, End: m.From.Add(d.Delta())}
			if !BelongsToLine(line, m.To) {
				return true
			}
		}
	}
	return false
}

// ---------------------------------------------------------------------
// MakeMove (spec 4.2.1)
// ---------------------------------------------------------------------

// MakeMove applies m without validating legality. Castling, en-passant
// capture, and promotion are taken from m.Type; the move's shape is not
// inspected, so a move whose Type is unset (such as a bare parsed move
// not passed through fen.ResolveMove) is applied as a plain move.
func (p *Position) MakeMove(m Move) {
	mover := p.toMove
	piece := p.Square(m.From)
	isPawnMove := piece.Type == Pawn
	isCapture := !p.Square(m.To).IsEmpty()

	switch {
	case m.IsCastle():
		p.SetSquare(m.From, NoPiece)
		p.SetSquare(m.To, piece)
		rookFrom, rookTo, _ := m.CastlingRookMove()
		rook := p.Square(rookFrom)
		p.SetSquare(rookFrom, NoPiece)
		p.SetSquare(rookTo, rook)

	case m.Type == EnPassant:
		capSq, _ := m.EnPassantCapture()
		p.SetSquare(capSq, NoPiece)
		p.SetSquare(m.From, NoPiece)
		p.SetSquare(m.To, piece)
		isCapture = true

	default:
		p.SetSquare(m.From, NoPiece)
		if m.IsPromotion() {
			p.SetSquare(m.To, Piece{Player: mover, Type: m.Promotion})
		} else {
			p.SetSquare(m.To, piece)
		}
	}

	if target, ok := m.EnPassantTarget(); ok {
		p.enPassant, p.hasEnPassant = target, true
	} else {
		p.hasEnPassant = false
	}

	p.castlingRights &^= m.CastlingRightsLost()

	if isPawnMove || isCapture {
		p.halfmoveClock = 0
	} else {
		p.halfmoveClock++
	}
	if mover == Black {
		p.moveNumber++
	}

	p.toMove = mover.Opponent()
	p.recomputeCheckSegment()
	p.movesGenerated = false
}

// PassTheTurn flips the side to move without touching the board,
// castling rights, or en-passant square. Used only for the quiescence
// search's "null move" (stand-pat) candidate.
func (p *Position) PassTheTurn() {
	if p.toMove == White {
		p.toMove = Black
	} else {
		p.moveNumber++
		p.toMove = White
	}
}

// recomputeCheckSegment locates the segment from the to-move king to
// its (single) checker, or clears it when not in single check.
func (p *Position) recomputeCheckSegment() {
	p.hasCheckSegment = false

	mover := p.toMove
	opp := mover.Opponent()
	king := p.KingSquare(mover)

	if p.GetAttacksByPlayer(king, opp) != 1 {
		return
	}
	if sq, ok := p.findSingleChecker(king, opp); ok {
		p.checkSegment = Segment{Start: king, End: sq}
		p.hasCheckSegment = true
	}
}

func (p *Position) findSingleChecker(king Coordinates, opp Player) (Coordinates, bool) {
	info := p.directedAttacks[king.File][king.Rank]
	for d := Direction(0); d < NumDirections; d++ {
		if info.Get(d).ByPlayer(opp) > 0 {
			delta := d.Opposite().Delta()
			cur := king.Add(delta)
			for WithinBoard(cur) {
				if !p.Square(cur).IsEmpty() {
					return cur, true
				}
				cur = cur.Add(delta)
			}
		}
	}
	for _, kd := range knightDeltas {
		t := king.Add(kd)
		if WithinBoard(t) {
			if pc := p.Square(t); pc.Player == opp && pc.Type == Knight {
				return t, true
			}
		}
	}
	dir := PawnDirection(opp)
	for _, df := range [2]int8{-1, 1} {
		t := king.Add(Coordinates{File: df, Rank: -dir})
		if WithinBoard(t) {
			if pc := p.Square(t); pc.Player == opp && pc.Type == Pawn {
				return t, true
			}
		}
	}
	return Coordinates{}, false
}

// ---------------------------------------------------------------------
// Legal move generation (spec 4.2.4)
// ---------------------------------------------------------------------

func (p *Position) GetLegalMoves() []Move {
	if !p.movesGenerated {
		p.legalMoves = p.generateLegalMoves()
		p.movesGenerated = true
	}
	return p.legalMoves
}

func (p *Position) generateLegalMoves() []Move {
	if p.halfmoveClock >= 100 {
		return nil
	}

	mover := p.toMove
	opp := mover.Opponent()
	king := p.KingSquare(mover)
	checkers := p.GetAttacksByPlayer(king, opp)

	moves := make([]Move, 0, 48)

	p.generateKingMoves(mover, king, &moves)

	if checkers < 2 {
		if checkers == 0 {
			p.generateCastles(mover, &moves)
		}
		for file := int8(0); file < 8; file++ {
			for rank := int8(0); rank < 8; rank++ {
				sq := Coordinates{File: file, Rank: rank}
				piece := p.board[file][rank]
				if piece.IsEmpty() || piece.Player != mover || piece.Type == King {
					continue
				}
				pinDir, pinned := p.pinDirection(sq, mover)

				switch piece.Type {
				case Pawn:
					p.generatePawnMoves(sq, mover, pinDir, pinned, &moves)
				case Knight:
					if !pinned {
						p.generateKnightMoves(sq, mover, &moves)
					}
				case Bishop, Rook, Queen:
					p.generateSliderMoves(sq, piece.Type, mover, pinDir, pinned, &moves)
				}
			}
		}
	}

	return p.filterLegal(moves, mover, checkers)
}

func (p *Position) filterLegal(candidates []Move, mover Player, checkers int16) []Move {
	out := candidates[:0]
	for _, m := range candidates {
		if p.pushLegalMove(m, mover, checkers) {
			out = append(out, m)
		}
	}
	return out
}

func (p *Position) pushLegalMove(m Move, mover Player, checkers int16) bool {
	if p.Square(m.From).Type == King {
		return p.GetAttacksByPlayer(m.To, mover.Opponent()) == 0
	}
	if checkers == 0 {
		return true
	}
	if checkers >= 2 || !p.hasCheckSegment {
		return false
	}
	return BelongsToSegment(p.checkSegment, m.To)
}

func (p *Position) generateKingMoves(mover Player, king Coordinates, out *[]Move) {
	for _, d := range kingDeltas {
		t := king.Add(d)
		if !WithinBoard(t) {
			continue
		}
		target := p.Square(t)
		if !target.IsEmpty() && target.Player == mover {
			continue
		}
		mv := Move{From: king, To: t, Piece: King}
		if !target.IsEmpty() {
			mv.Type = Capture
			mv.Capture = target.Type
		}
		*out = append(*out, mv)
	}
}

func (p *Position) generateKnightMoves(sq Coordinates, mover Player, out *[]Move) {
	for _, d := range knightDeltas {
		t := sq.Add(d)
		if !WithinBoard(t) {
			continue
		}
		target := p.Square(t)
		if !target.IsEmpty() && target.Player == mover {
			continue
		}
		mv := Move{From: sq, To: t, Piece: Knight}
		if !target.IsEmpty() {
			mv.Type = Capture
			mv.Capture = target.Type
		}
		*out = append(*out, mv)
	}
}

func (p *Position) generateSliderMoves(sq Coordinates, pt PieceType, mover Player, pinDir Direction, pinned bool, out *[]Move) {
	for _, d := range sliderDirections(pt) {
		if pinned && d != pinDir && d != pinDir.Opposite() {
			continue
		}
		delta := d.Delta()
		cur := sq.Add(delta)
		for WithinBoard(cur) {
			target := p.Square(cur)
			if target.IsEmpty() {
				*out = append(*out, Move{From: sq, To: cur, Piece: pt})
				cur = cur.Add(delta)
				continue
			}
			if target.Player != mover {
				*out = append(*out, Move{From: sq, To: cur, Piece: pt, Type: Capture, Capture: target.Type})
			}
			break
		}
	}
}

func (p *Position) generatePawnMoves(sq Coordinates, mover Player, pinDir Direction, pinned bool, out *[]Move) {
	dir := PawnDirection(mover)
	promoRank := PromotionRank(mover)
	startRank := DoubleJumpRank(mover)

	axisOK := func(d Direction) bool {
		return !pinned || d == pinDir || d == pinDir.Opposite()
	}

	one := Coordinates{File: sq.File, Rank: sq.Rank + dir}
	if WithinBoard(one) && p.Square(one).IsEmpty() && axisOK(Up) {
		p.appendPawnMove(sq, one, promoRank, Push, NoPieceType, out)

		if sq.Rank == startRank {
			two := Coordinates{File: sq.File, Rank: sq.Rank + 2*dir}
			if p.Square(two).IsEmpty() {
				*out = append(*out, Move{From: sq, To: two, Piece: Pawn, Type: Jump})
			}
		}
	}

	for _, df := range [2]int8{-1, 1} {
		t := Coordinates{File: sq.File + df, Rank: sq.Rank + dir}
		if !WithinBoard(t) {
			continue
		}
		var diagDir Direction
		switch {
		case df < 0 && dir > 0:
			diagDir = UpLeft
		case df > 0 && dir > 0:
			diagDir = UpRight
		case df < 0 && dir < 0:
			diagDir = DownLeft
		default:
			diagDir = DownRight
		}
		if !axisOK(diagDir) {
			continue
		}

		target := p.Square(t)
		if !target.IsEmpty() && target.Player != mover {
			p.appendPawnMove(sq, t, promoRank, Capture, target.Type, out)
			continue
		}
		if ep, ok := p.EnPassant(); ok && target.IsEmpty() && t.Equals(ep) {
			if p.enPassantLegal(sq, t, mover) {
				*out = append(*out, Move{From: sq, To: t, Piece: Pawn, Type: EnPassant, Capture: Pawn})
			}
		}
	}
}

func (p *Position) appendPawnMove(from, to Coordinates, promoRank int8, baseType MoveType, capture PieceType, out *[]Move) {
	if to.Rank == promoRank {
		mt := Promotion
		if baseType == Capture {
			mt = CapturePromotion
		}
		for _, pt := range [4]PieceType{Queen, Rook, Bishop, Knight} {
			*out = append(*out, Move{From: from, To: to, Piece: Pawn, Type: mt, Promotion: pt, Capture: capture})
		}
		return
	}
	*out = append(*out, Move{From: from, To: to, Piece: Pawn, Type: baseType, Capture: capture})
}

// enPassantLegal implements the horizontal-pin exception: an en-passant
// capture is illegal if it would remove two pawns from a rank that
// contains the mover's king and an opponent rook/queen with nothing
// else between them, detected by walking the rank both ways from the
// pawn pair and inspecting the first non-empty squares found.
func (p *Position) enPassantLegal(from, to Coordinates, mover Player) bool {
	king := p.KingSquare(mover)
	if king.Rank != from.Rank {
		return true
	}

	lowFile, highFile := from.File, to.File
	if lowFile > highFile {
		lowFile, highFile = highFile, lowFile
	}
	skip := []int8{lowFile, highFile}

	left := findFirstOccupant(p, from.Rank, lowFile-1, -1, skip)
	right := findFirstOccupant(p, from.Rank, highFile+1, 1, skip)

	haveKing, haveRook := false, false
	for _, sq := range [2]Coordinates{left, right} {
		if sq.File < 0 {
			continue
		}
		if sq.Equals(king) {
			haveKing = true
			continue
		}
		piece := p.Square(sq)
		if piece.Player == mover.Opponent() && (piece.Type == Rook || piece.Type == Queen) {
			haveRook = true
		}
	}
	return !(haveKing && haveRook)
}

func findFirstOccupant(p *Position, rank, startFile, step int8, skip []int8) Coordinates {
	for f := startFile; f >= 0 && f < 8; f += step {
		skipped := false
		for _, s := range skip {
			if f == s {
				skipped = true
				break
			}
		}
		if !skipped {
			sq := Coordinates{File: f, Rank: rank}
			if !p.Square(sq).IsEmpty() {
				return sq
			}
		}
	}
	return Coordinates{File: -1, Rank: -1}
}

func (p *Position) generateCastles(mover Player, out *[]Move) {
	rank := int8(0)
	kingSide, queenSide := WhiteKingSide, WhiteQueenSide
	if mover == Black {
		rank = 7
		kingSide, queenSide = BlackKingSide, BlackQueenSide
	}
	king := Coordinates{File: 4, Rank: rank}
	opp := mover.Opponent()

	if p.castlingRights&kingSide != 0 {
		f, g := Coordinates{File: 5, Rank: rank}, Coordinates{File: 6, Rank: rank}
		if p.Square(f).IsEmpty() && p.Square(g).IsEmpty() &&
			p.GetAttacksByPlayer(king, opp) == 0 &&
			p.GetAttacksByPlayer(f, opp) == 0 &&
			p.GetAttacksByPlayer(g, opp) == 0 {
			*out = append(*out, Move{From: king, To: g, Piece: King, Type: KingSideCastle})
		}
	}
	if p.castlingRights&queenSide != 0 {
		d, c, b := Coordinates{File: 3, Rank: rank}, Coordinates{File: 2, Rank: rank}, Coordinates{File: 1, Rank: rank}
		if p.Square(d).IsEmpty() && p.Square(c).IsEmpty() && p.Square(b).IsEmpty() &&
			p.GetAttacksByPlayer(king, opp) == 0 &&
			p.GetAttacksByPlayer(d, opp) == 0 &&
			p.GetAttacksByPlayer(c, opp) == 0 {
			*out = append(*out, Move{From: king, To: c, Piece: King, Type: QueenSideCastle})
		}
	}
}

// GetCapturesOnSquare returns pseudo-legal capture moves by player
// targeting sq, generated direction-by-direction. Used by quiescence
// search, which only needs candidates restricted to one square.
func (p *Position) GetCapturesOnSquare(sq Coordinates, player Player) []Move {
	target := p.Square(sq)
	if target.IsEmpty() || target.Player == player {
		return nil
	}

	var moves []Move

	for _, d := range knightDeltas {
		from := sq.Add(d)
		if WithinBoard(from) {
			if piece := p.Square(from); piece.Player == player && piece.Type == Knight {
				moves = append(moves, Move{From: from, To: sq, Piece: Knight, Type: Capture, Capture: target.Type})
			}
		}
	}
	for _, d := range kingDeltas {
		from := sq.Add(d)
		if WithinBoard(from) {
			if piece := p.Square(from); piece.Player == player && piece.Type == King {
				moves = append(moves, Move{From: from, To: sq, Piece: King, Type: Capture, Capture: target.Type})
			}
		}
	}
	dir := PawnDirection(player)
	promoRank := PromotionRank(player)
	for _, df := range [2]int8{-1, 1} {
		from := Coordinates{File: sq.File - df, Rank: sq.Rank - dir}
		if !WithinBoard(from) {
			continue
		}
		if piece := p.Square(from); piece.Player == player && piece.Type == Pawn {
			if sq.Rank == promoRank {
				for _, pt := range [4]PieceType{Queen, Rook, Bishop, Knight} {
					moves = append(moves, Move{From: from, To: sq, Piece: Pawn, Type: CapturePromotion, Promotion: pt, Capture: target.Type})
				}
			} else {
				moves = append(moves, Move{From: from, To: sq, Piece: Pawn, Type: Capture, Capture: target.Type})
			}
		}
	}
	for d := Direction(0); d < NumDirections; d++ {
		delta := d.Delta()
		cur := sq.Add(delta)
		for WithinBoard(cur) {
			piece := p.Square(cur)
			if piece.IsEmpty() {
				cur = cur.Add(delta)
				continue
			}
			if piece.Player == player && slidesTowards(piece.Type, d.Opposite()) {
				moves = append(moves, Move{From: cur, To: sq, Piece: piece.Type, Type: Capture, Capture: target.Type})
			}
			break
		}
	}
	return moves
}
