// Package fen contains utilities for reading and writing positions in FEN
// notation, and for converting moves to and from UCI and XBoard move text.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/wyvernchess/coldiron/pkg/board"
)

const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Decode returns a new position from a FEN description, or an error if
// the description is malformed.
func Decode(fen string) (*board.Position, error) {
	parts := strings.Split(strings.TrimSpace(fen), " ")
	if len(parts) != 6 {
		return nil, fmt.Errorf("fen: invalid number of fields: %q", fen)
	}

	pos := board.NewPosition()

	rank := int8(7)
	file := int8(0)
	for _, r := range parts[0] {
		switch {
		case r == '/':
			if file != 8 {
				return nil, fmt.Errorf("fen: short rank: %q", fen)
			}
			rank--
			file = 0

		case unicode.IsDigit(r):
			file += int8(r - '0')

		default:
			piece, ok := board.ParsePiece(r)
			if !ok {
				return nil, fmt.Errorf("fen: invalid piece %q: %q", r, fen)
			}
			if file >= 8 || rank < 0 {
				return nil, fmt.Errorf("fen: too many squares: %q", fen)
			}
			pos.SetSquare(board.Coordinates{File: file, Rank: rank}, piece)
			file++
		}
	}
	if rank != 0 || file != 8 {
		return nil, fmt.Errorf("fen: invalid number of ranks/squares: %q", fen)
	}

	active, ok := board.ParsePlayer(rune(parts[1][0]))
	if !ok || len(parts[1]) != 1 {
		return nil, fmt.Errorf("fen: invalid active color: %q", fen)
	}

	castling, ok := parseCastling(parts[2])
	if !ok {
		return nil, fmt.Errorf("fen: invalid castling rights: %q", fen)
	}

	var ep board.Coordinates
	hasEP := false
	if parts[3] != "-" {
		sq, ok := board.ParseCoordinates(parts[3])
		if !ok {
			return nil, fmt.Errorf("fen: invalid en passant square: %q", fen)
		}
		ep, hasEP = sq, true
	}

	halfmove, err := strconv.Atoi(parts[4])
	if err != nil || halfmove < 0 {
		return nil, fmt.Errorf("fen: invalid halfmove clock: %q", fen)
	}

	fullmove, err := strconv.Atoi(parts[5])
	if err != nil || fullmove < 1 {
		return nil, fmt.Errorf("fen: invalid fullmove number: %q", fen)
	}

	pos.Init(active, castling, ep, hasEP, int16(halfmove), int16(fullmove))
	return pos, nil
}

// Encode serializes pos into FEN notation.
func Encode(pos *board.Position) string {
	var sb strings.Builder
	for rank := int8(7); rank >= 0; rank-- {
		blanks := 0
		for file := int8(0); file < 8; file++ {
			piece := pos.Square(board.Coordinates{File: file, Rank: rank})
			if piece.IsEmpty() {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteString(piece.String())
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if rank > 0 {
			sb.WriteString("/")
		}
	}

	ep := "-"
	if sq, ok := pos.EnPassant(); ok {
		ep = sq.String()
	}

	return fmt.Sprintf("%s %c %v %s %d %d",
		sb.String(), pos.ToMove().Letter(), pos.Castling(), ep, pos.HalfmoveClock(), pos.MoveNumber())
}

func parseCastling(str string) (board.CastlingRights, bool) {
	var ret board.CastlingRights
	if str == "-" {
		return ret, true
	}
	for _, r := range str {
		switch r {
		case 'K':
			ret |= board.WhiteKingSide
		case 'Q':
			ret |= board.WhiteQueenSide
		case 'k':
			ret |= board.BlackKingSide
		case 'q':
			ret |= board.BlackQueenSide
		default:
			return 0, false
		}
	}
	return ret, true
}

// MoveToUCI renders m in pure algebraic (UCI) notation, e.g. "e2e4" or
// "a7a8q". Unlike one revision of the original source, which appended
// a "=<piece>" suffix whenever the move carried any piece (i.e.
// unconditionally), the suffix is only emitted for an actual promotion.
func MoveToUCI(m board.Move) string {
	if m.IsPromotion() {
		return fmt.Sprintf("%v%v%c", m.From, m.To, toLower(m.Promotion.Letter()))
	}
	return fmt.Sprintf("%v%v", m.From, m.To)
}

// MoveToXBoard renders m as XBoard expects it: identical to UCI text.
func MoveToXBoard(m board.Move) string {
	return MoveToUCI(m)
}

// ParseUCIMove parses pure algebraic move text into a bare Move (from,
// to, promotion only -- no contextual Type/Capture metadata, since
// that requires the position to resolve). Use Position.GetLegalMoves
// to find the matching fully-populated Move.
func ParseUCIMove(s string) (board.Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return board.Move{}, fmt.Errorf("fen: invalid move text: %q", s)
	}
	from, ok := board.ParseCoordinates(s[0:2])
	if !ok {
		return board.Move{}, fmt.Errorf("fen: invalid from-square: %q", s)
	}
	to, ok := board.ParseCoordinates(s[2:4])
	if !ok {
		return board.Move{}, fmt.Errorf("fen: invalid to-square: %q", s)
	}
	m := board.Move{From: from, To: to}
	if len(s) == 5 {
		promo, ok := board.ParsePieceType(rune(s[4]))
		if !ok || promo == board.Pawn || promo == board.King {
			return board.Move{}, fmt.Errorf("fen: invalid promotion letter: %q", s)
		}
		m.Promotion = promo
	}
	return m, nil
}

// ParseXBoardMove parses XBoard move text, which has the same shape as
// UCI text. A promotion yields only the piece type: no player is
// inferred here, and the promoted piece takes the color of the side to
// move when the move is applied.
func ParseXBoardMove(s string) (board.Move, error) {
	return ParseUCIMove(s)
}

// ResolveMove matches a bare (from, to, promotion) move -- as produced
// by ParseUCIMove/ParseXBoardMove -- against pos's legal moves, and
// returns the fully-typed Move with Type/Piece/Capture populated.
// Position.MakeMove and Node.HashMove dispatch on those fields, so
// every parsed move must be resolved this way before being applied.
func ResolveMove(pos *board.Position, m board.Move) (board.Move, error) {
	for _, legal := range pos.GetLegalMoves() {
		if legal.Equals(m) {
			return legal, nil
		}
	}
	return board.Move{}, fmt.Errorf("fen: %v is not a legal move in this position", MoveToUCI(m))
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
