package board

import (
	"fmt"
	"strings"
)

// PlacedPiece is a piece code together with the square it stands on.
type PlacedPiece struct {
	Piece  Piece
	Square Square
}

// String returns e.g. "Ne4" or "pd7".
func (pp PlacedPiece) String() string {
	return pp.Piece.String() + pp.Square.String()
}

// PinnedPiece is a friendly piece that shields its king from an enemy slider.
type PinnedPiece struct {
	Piece     PlacedPiece
	Direction Direction // from the king towards the pinner
	Pinner    Square
}

// Move is a mover, a destination and an optional promotion piece.
type Move struct {
	Mover     PlacedPiece
	To        Square
	Promotion Piece // NoPiece when the move does not promote
}

// NoMove represents an absent move.
var NoMove = Move{Mover: PlacedPiece{Square: NoSquare}, To: NoSquare}

// From returns the origin square.
func (m Move) From() Square {
	return m.Mover.Square
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m.Promotion != NoPiece
}

// IsCastling returns true if this is a king move of two files.
func (m Move) IsCastling() bool {
	return m.Mover.Piece.Type() == King && abs(m.To.File()-m.From().File()) == 2
}

// String returns the UCI format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m.To == NoSquare {
		return "0000"
	}
	s := m.From().String() + m.To.String()
	if m.IsPromotion() {
		s += strings.ToLower(string(m.Promotion.Type().Char()))
	}
	return s
}

// PieceMoves maps each movable piece to its legal destinations.
// Pieces and Targets are parallel and always of equal length.
type PieceMoves struct {
	Pieces  []PlacedPiece
	Targets [][]Square
}

// add appends a piece with its destinations, skipping pieces with none.
func (pm *PieceMoves) add(pp PlacedPiece, targets []Square) {
	if len(targets) == 0 {
		return
	}
	pm.Pieces = append(pm.Pieces, pp)
	pm.Targets = append(pm.Targets, targets)
}

// Len returns the number of movable pieces.
func (pm PieceMoves) Len() int {
	return len(pm.Pieces)
}

// IsEmpty reports whether there are no legal moves at all.
func (pm PieceMoves) IsEmpty() bool {
	return len(pm.Pieces) == 0
}

// Count returns the number of (piece, destination) pairs.
func (pm PieceMoves) Count() int {
	n := 0
	for _, t := range pm.Targets {
		n += len(t)
	}
	return n
}

// Contains reports whether the piece on from may move to to.
func (pm PieceMoves) Contains(from, to Square) bool {
	return pm.Find(from, to) != NoMove
}

// Find returns the move from -> to without promotion, or NoMove.
func (pm PieceMoves) Find(from, to Square) Move {
	for i, pp := range pm.Pieces {
		if pp.Square != from {
			continue
		}
		for _, t := range pm.Targets[i] {
			if t == to {
				return Move{Mover: pp, To: to}
			}
		}
	}
	return NoMove
}

// Moves flattens the map into moves, expanding back-rank pawn moves into
// the four promotion choices.
func (pm PieceMoves) Moves() []Move {
	moves := make([]Move, 0, pm.Count())
	for i, pp := range pm.Pieces {
		for _, to := range pm.Targets[i] {
			if IsPromotionSquare(pp.Piece, to) {
				for _, pt := range PromotionTypes {
					moves = append(moves, Move{Mover: pp, To: to, Promotion: NewPiece(pt, pp.Piece.Color())})
				}
				continue
			}
			moves = append(moves, Move{Mover: pp, To: to})
		}
	}
	return moves
}

// IsPromotionSquare reports whether p arriving on to must promote.
func IsPromotionSquare(p Piece, to Square) bool {
	if p.Type() != Pawn {
		return false
	}
	return to.RelativeRank(p.Color()) == 7
}

// ParseMove parses a UCI format move string against the legal moves of gs.
func ParseMove(s string, gs *GameState) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return NoMove, fmt.Errorf("move %q: %w", s, ErrIllegalMove)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	m := gs.LegalMoves().Find(from, to)
	if m == NoMove {
		return NoMove, fmt.Errorf("move %q: %w", s, ErrIllegalMove)
	}

	if len(s) == 5 {
		promo := PieceFromChar(s[4])
		switch promo.Type() {
		case Knight, Bishop, Rook, Queen:
		default:
			return NoMove, fmt.Errorf("invalid promotion piece %q: %w", s[4], ErrIllegalMove)
		}
		if !IsPromotionSquare(m.Mover.Piece, to) {
			return NoMove, fmt.Errorf("move %q does not promote: %w", s, ErrIllegalMove)
		}
		m.Promotion = NewPiece(promo.Type(), gs.SideToMove())
	}

	return m, nil
}
