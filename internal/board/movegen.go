package board

// Pseudo-legal move generation. Nothing here looks at king safety: the
// assembler in legal.go filters these lists.

// PseudoLegalMoves returns the pseudo-legal destinations of the piece on sq.
// ep is the en-passant target square or NoSquare.
func PseudoLegalMoves(b *Board, sq Square, ep Square) []Square {
	switch b.At(sq).Type() {
	case Pawn:
		return PawnMoves(b, sq, ep)
	case Knight:
		return KnightMoves(b, sq)
	case Bishop:
		return BishopMoves(b, sq)
	case Rook:
		return RookMoves(b, sq)
	case Queen:
		return QueenMoves(b, sq)
	case King:
		return KingMoves(b, sq)
	}
	return nil
}

// PawnMoves returns single and double pushes and diagonal captures,
// including the capture onto the en-passant target.
func PawnMoves(b *Board, sq Square, ep Square) []Square {
	color := b.At(sq).Color()
	dir := color.forward()
	var moves []Square

	if one, ok := sq.offset(0, dir); ok && b.IsEmpty(one) {
		moves = append(moves, one)
		if sq.RelativeRank(color) == 1 {
			if two, ok := one.offset(0, dir); ok && b.IsEmpty(two) {
				moves = append(moves, two)
			}
		}
	}

	for _, df := range [2]int{-1, 1} {
		to, ok := sq.offset(df, dir)
		if !ok {
			continue
		}
		if b.At(to).Is(color.Other()) || isEnPassantTarget(to, ep, color) {
			moves = append(moves, to)
		}
	}

	return moves
}

// isEnPassantTarget reports whether to is a usable en-passant target for a
// pawn of color: the target must sit behind an enemy pawn that just moved two.
func isEnPassantTarget(to, ep Square, color Color) bool {
	return ep != NoSquare && to == ep && ep.RelativeRank(color) == 5
}

// KnightMoves returns the knight destinations that are empty or hold an enemy.
func KnightMoves(b *Board, sq Square) []Square {
	color := b.At(sq).Color()
	var moves []Square
	for _, d := range knightOffsets {
		to, ok := sq.offset(d.DFile, d.DRank)
		if !ok || b.At(to).Is(color) {
			continue
		}
		moves = append(moves, to)
	}
	return moves
}

// BishopMoves returns the diagonal slides of the piece on sq.
func BishopMoves(b *Board, sq Square) []Square {
	return slide(b, sq, diagonalDirections[:])
}

// RookMoves returns the orthogonal slides of the piece on sq.
func RookMoves(b *Board, sq Square) []Square {
	return slide(b, sq, orthogonalDirections[:])
}

// QueenMoves returns the union of rook and bishop slides.
func QueenMoves(b *Board, sq Square) []Square {
	return slide(b, sq, allDirections[:])
}

// slide walks each ray until the edge, a friendly piece (excluded) or an
// enemy piece (included).
func slide(b *Board, sq Square, dirs []Direction) []Square {
	color := b.At(sq).Color()
	var moves []Square
	for _, d := range dirs {
		to := sq
		for {
			next, ok := to.offset(d.DFile, d.DRank)
			if !ok {
				break
			}
			to = next
			p := b.At(to)
			if p == NoPiece {
				moves = append(moves, to)
				continue
			}
			if !p.Is(color) {
				moves = append(moves, to)
			}
			break
		}
	}
	return moves
}

// KingMoves returns the adjacent squares that are empty or hold an enemy.
// Castling is generated separately by CastlingMoves.
func KingMoves(b *Board, sq Square) []Square {
	color := b.At(sq).Color()
	var moves []Square
	for _, d := range allDirections {
		to, ok := sq.offset(d.DFile, d.DRank)
		if !ok || b.At(to).Is(color) {
			continue
		}
		moves = append(moves, to)
	}
	return moves
}
