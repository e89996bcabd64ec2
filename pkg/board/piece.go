package board

// PieceType represents a chess piece kind with no owning player.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King

	NumPieceTypes = iota
)

// ParsePieceType parses a piece-type letter, case-insensitive.
func ParsePieceType(r rune) (PieceType, bool) {
	switch r {
	case 'p', 'P':
		return Pawn, true
	case 'n', 'N':
		return Knight, true
	case 'b', 'B':
		return Bishop, true
	case 'r', 'R':
		return Rook, true
	case 'q', 'Q':
		return Queen, true
	case 'k', 'K':
		return King, true
	default:
		return NoPieceType, false
	}
}

func (t PieceType) String() string {
	switch t {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "none"
	}
}

// Letter returns the uppercase FEN-style letter for the piece type.
func (t PieceType) Letter() rune {
	switch t {
	case Pawn:
		return 'P'
	case Knight:
		return 'N'
	case Bishop:
		return 'B'
	case Rook:
		return 'R'
	case Queen:
		return 'Q'
	case King:
		return 'K'
	default:
		return '?'
	}
}

// Value is the nominal material value in centipawns, matching the
// engine's evaluation scale (king excluded: it is never traded).
func (t PieceType) Value() int32 {
	switch t {
	case Pawn:
		return 1000
	case Knight, Bishop:
		return 3000
	case Rook:
		return 5000
	case Queen:
		return 9000
	default:
		return 0
	}
}

// Piece is a piece type owned by a player. The zero value is "no piece".
type Piece struct {
	Player Player
	Type   PieceType
}

// NoPiece is the empty-square sentinel: the zero value of Piece.
var NoPiece = Piece{}

func (p Piece) IsEmpty() bool {
	return p.Type == NoPieceType
}

// ParsePiece parses a FEN piece letter: uppercase is White, lowercase Black.
func ParsePiece(r rune) (Piece, bool) {
	t, ok := ParsePieceType(r)
	if !ok {
		return NoPiece, false
	}
	if r >= 'a' && r <= 'z' {
		return Piece{Player: Black, Type: t}, true
	}
	return Piece{Player: White, Type: t}, true
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "."
	}
	r := p.Type.Letter()
	if p.Player == Black {
		r = r + ('a' - 'A')
	}
	return string(r)
}
