package board

import "fmt"

// CastlingRights holds the four castling flags. A flag, once cleared, is
// never set again during a game.
type CastlingRights struct {
	WhiteKingSide  bool
	WhiteQueenSide bool
	BlackKingSide  bool
	BlackQueenSide bool
}

// AllCastling grants every castling right.
var AllCastling = CastlingRights{true, true, true, true}

// NoCastling grants none.
var NoCastling = CastlingRights{}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	if c == White {
		if kingSide {
			return cr.WhiteKingSide
		}
		return cr.WhiteQueenSide
	}
	if kingSide {
		return cr.BlackKingSide
	}
	return cr.BlackQueenSide
}

// Disable clears one right.
func (cr *CastlingRights) Disable(c Color, kingSide bool) {
	switch {
	case c == White && kingSide:
		cr.WhiteKingSide = false
	case c == White:
		cr.WhiteQueenSide = false
	case kingSide:
		cr.BlackKingSide = false
	default:
		cr.BlackQueenSide = false
	}
}

// DisableAll clears both rights of color c.
func (cr *CastlingRights) DisableAll(c Color) {
	cr.Disable(c, true)
	cr.Disable(c, false)
}

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	s := ""
	if cr.WhiteKingSide {
		s += "K"
	}
	if cr.WhiteQueenSide {
		s += "Q"
	}
	if cr.BlackKingSide {
		s += "k"
	}
	if cr.BlackQueenSide {
		s += "q"
	}
	if s == "" {
		return "-"
	}
	return s
}

// ParseCastlingRights parses the castling field of a FEN string.
func ParseCastlingRights(field string) (CastlingRights, error) {
	var cr CastlingRights
	if field == "-" {
		return cr, nil
	}
	for _, c := range field {
		switch c {
		case 'K':
			cr.WhiteKingSide = true
		case 'Q':
			cr.WhiteQueenSide = true
		case 'k':
			cr.BlackKingSide = true
		case 'q':
			cr.BlackQueenSide = true
		default:
			return NoCastling, fmt.Errorf("castling character %q: %w", c, ErrInvalidFEN)
		}
	}
	return cr, nil
}

// castleSide describes one castling option of one color.
type castleSide struct {
	king, rook Square
	kingTarget Square
	rookTarget Square
	empty      []Square // between king and rook
	mustBeSafe []Square // crossed and landing squares of the king
}

var castleSides = [2][2]castleSide{
	White: {
		{king: E1, rook: H1, kingTarget: G1, rookTarget: F1, empty: []Square{F1, G1}, mustBeSafe: []Square{F1, G1}},
		{king: E1, rook: A1, kingTarget: C1, rookTarget: D1, empty: []Square{B1, C1, D1}, mustBeSafe: []Square{D1, C1}},
	},
	Black: {
		{king: E8, rook: H8, kingTarget: G8, rookTarget: F8, empty: []Square{F8, G8}, mustBeSafe: []Square{F8, G8}},
		{king: E8, rook: A8, kingTarget: C8, rookTarget: D8, empty: []Square{B8, C8, D8}, mustBeSafe: []Square{D8, C8}},
	},
}

// CastlingMoves returns the king destinations of the castling moves
// available to color. enemyControl holds the squares the opponent controls.
// Callers must not ask while the king is in check.
func CastlingMoves(b *Board, color Color, rights CastlingRights, enemyControl SquareSet) []Square {
	var out []Square
	for i, side := range castleSides[color] {
		if !rights.CanCastle(color, i == 0) {
			continue
		}
		if b.At(side.king) != NewPiece(King, color) || b.At(side.rook) != NewPiece(Rook, color) {
			continue
		}
		if !allEmpty(b, side.empty) {
			continue
		}
		if anyControlled(enemyControl, side.mustBeSafe) {
			continue
		}
		out = append(out, side.kingTarget)
	}
	return out
}

// castlingRookMove returns the rook relocation for a castling king move.
func castlingRookMove(color Color, kingTarget Square) (from, to Square, ok bool) {
	for _, side := range castleSides[color] {
		if side.kingTarget == kingTarget {
			return side.rook, side.rookTarget, true
		}
	}
	return NoSquare, NoSquare, false
}

func allEmpty(b *Board, squares []Square) bool {
	for _, sq := range squares {
		if !b.IsEmpty(sq) {
			return false
		}
	}
	return true
}

func anyControlled(set SquareSet, squares []Square) bool {
	for _, sq := range squares {
		if set.Has(sq) {
			return true
		}
	}
	return false
}
