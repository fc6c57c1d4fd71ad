package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// sign returns +1 for White and -1 for Black, the sign carried by piece codes.
func (c Color) sign() int8 {
	if c == White {
		return 1
	}
	return -1
}

// forward returns the rank step of a pawn of this color.
func (c Color) forward() int {
	if c == White {
		return 1
	}
	return -1
}

// PieceType is the magnitude of a piece code.
type PieceType int8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the upper-case letter of the piece type.
func (pt PieceType) Char() byte {
	if pt < NoPieceType || pt > King {
		return ' '
	}
	return " PNBRQK"[pt]
}

// Piece is a signed piece code: 0 is an empty square, the magnitude is the
// PieceType and the sign the color (positive for White).
type Piece int8

const (
	NoPiece Piece = 0

	WhitePawn   Piece = Piece(Pawn)
	WhiteKnight Piece = Piece(Knight)
	WhiteBishop Piece = Piece(Bishop)
	WhiteRook   Piece = Piece(Rook)
	WhiteQueen  Piece = Piece(Queen)
	WhiteKing   Piece = Piece(King)

	BlackPawn   Piece = -Piece(Pawn)
	BlackKnight Piece = -Piece(Knight)
	BlackBishop Piece = -Piece(Bishop)
	BlackRook   Piece = -Piece(Rook)
	BlackQueen  Piece = -Piece(Queen)
	BlackKing   Piece = -Piece(King)
)

// NewPiece creates a Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt <= NoPieceType || pt > King || c >= NoColor {
		return NoPiece
	}
	return Piece(int8(pt) * c.sign())
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	if p < 0 {
		return PieceType(-p)
	}
	return PieceType(p)
}

// Color returns the Color of the piece, NoColor for an empty square.
func (p Piece) Color() Color {
	switch {
	case p > 0:
		return White
	case p < 0:
		return Black
	default:
		return NoColor
	}
}

// Is reports whether p belongs to color c.
func (p Piece) Is(c Color) bool {
	return p != NoPiece && p.Color() == c
}

// Flip returns the same piece type with the opposite color.
func (p Piece) Flip() Piece {
	return -p
}

// String returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) String() string {
	if p == NoPiece || p.Type() > King {
		return " "
	}
	ch := p.Type().Char()
	if p < 0 {
		ch += 'a' - 'A'
	}
	return string(ch)
}

// PieceFromChar converts a FEN character to a Piece.
func PieceFromChar(c byte) Piece {
	switch c {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}

// PromotionTypes lists the promotion choices in search order.
var PromotionTypes = [4]PieceType{Queen, Rook, Bishop, Knight}
