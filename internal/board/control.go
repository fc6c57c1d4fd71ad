package board

// Controlled squares are the squares a side attacks or defends. They are
// only used to keep the enemy king off attacked squares, so they differ
// from moves: pawns control both diagonals even when empty, and sliders
// see through the enemy king.

// ControlledSquares returns every square controlled by the pieces of color.
func ControlledSquares(b *Board, color Color) SquareSet {
	var set SquareSet
	state := b.State()
	for i, sq := range state.Squares[color] {
		for _, t := range PieceControl(b, state.Pieces[color][i], sq) {
			set = set.Add(t)
		}
	}
	return set
}

// PieceControl returns the squares controlled by piece p standing on sq.
func PieceControl(b *Board, p Piece, sq Square) []Square {
	switch p.Type() {
	case Pawn:
		return PawnControl(sq, p.Color())
	case Knight:
		return KnightControl(b, sq, p.Color())
	case Bishop:
		return SlidingControl(b, sq, p.Color(), diagonalDirections[:])
	case Rook:
		return SlidingControl(b, sq, p.Color(), orthogonalDirections[:])
	case Queen:
		return SlidingControl(b, sq, p.Color(), allDirections[:])
	case King:
		return KingControl(b, sq, p.Color())
	}
	return nil
}

// PawnControl returns the two forward diagonals of a pawn regardless of
// what stands on them.
func PawnControl(sq Square, color Color) []Square {
	var out []Square
	for _, df := range [2]int{-1, 1} {
		if to, ok := sq.offset(df, color.forward()); ok {
			out = append(out, to)
		}
	}
	return out
}

// KnightControl returns the knight squares that are empty or hold a piece
// of color. Squares holding an enemy are targets, not controlled squares.
func KnightControl(b *Board, sq Square, color Color) []Square {
	var out []Square
	for _, d := range knightOffsets {
		to, ok := sq.offset(d.DFile, d.DRank)
		if !ok || b.At(to).Is(color.Other()) {
			continue
		}
		out = append(out, to)
	}
	return out
}

// SlidingControl walks the rays of a slider of color. A friendly piece is
// controlled and ends the ray. A non-king enemy piece is included and ends
// the ray. The enemy king is transparent for one more step, so the king
// cannot retreat along the line it is attacked on.
func SlidingControl(b *Board, sq Square, color Color, dirs []Direction) []Square {
	var out []Square
	for _, d := range dirs {
		to := sq
		for {
			next, ok := to.offset(d.DFile, d.DRank)
			if !ok {
				break
			}
			to = next
			out = append(out, to)

			p := b.At(to)
			if p == NoPiece {
				continue
			}
			if p.Is(color.Other()) && p.Type() == King {
				if behind, ok := to.offset(d.DFile, d.DRank); ok {
					out = append(out, behind)
				}
			}
			break
		}
	}
	return out
}

// KingControl returns the adjacent squares not held by a piece of color.
func KingControl(b *Board, sq Square, color Color) []Square {
	var out []Square
	for _, d := range allDirections {
		to, ok := sq.offset(d.DFile, d.DRank)
		if !ok || b.At(to).Is(color) {
			continue
		}
		out = append(out, to)
	}
	return out
}

// BlockingSquares returns the squares strictly between checker and king
// when they share a file, rank or diagonal.
func BlockingSquares(checker, king Square) []Square {
	d, ok := directionBetween(king, checker)
	if !ok {
		return nil
	}
	var out []Square
	sq := king
	for {
		next, ok := sq.offset(d.DFile, d.DRank)
		if !ok || next == checker {
			return out
		}
		out = append(out, next)
		sq = next
	}
}
