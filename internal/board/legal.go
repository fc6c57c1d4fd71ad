package board

import "fmt"

// GenerateLegalMoves assembles the legal moves of color from the king-safety
// analysis of its king. The result lists pieces in board scan order and omits
// pieces without a legal move.
//
//   - two or more checkers: only the king moves.
//   - one checker: capture it, block a slider, or move the king.
//   - no checker: every piece moves, pinned pieces stay on their pin line,
//     and the king may castle.
func GenerateLegalMoves(b *Board, color Color, checking []PlacedPiece, pinned []PinnedPiece, rights CastlingRights, ep Square) (PieceMoves, error) {
	var moves PieceMoves

	king := b.State().King(color)
	if king == NoSquare {
		return moves, fmt.Errorf("legal moves for %s: no king: %w", color, ErrIllogicalState)
	}
	enemyControl := ControlledSquares(b, color.Other())
	kingPiece := PlacedPiece{Piece: b.At(king), Square: king}
	kingTargets := kingDestinations(b, king, color, enemyControl)

	switch {
	case len(checking) >= 2:
		moves.add(kingPiece, kingTargets)
		return moves, nil
	case len(checking) == 1:
		return handleSingleCheck(b, color, checking, pinned, ep, kingTargets)
	}

	for _, pp := range b.State().Placed(color) {
		if pp.Square == king {
			targets := append(kingTargets, CastlingMoves(b, color, rights, enemyControl)...)
			moves.add(pp, targets)
			continue
		}
		targets := PseudoLegalMoves(b, pp.Square, ep)
		if pin, ok := findPin(pinned, pp.Square); ok {
			targets = FilterPinnedPieceMoves(pin, targets)
		}
		moves.add(pp, verifyEnPassant(b, pp, targets, ep, king))
	}
	return moves, nil
}

// handleSingleCheck answers a check by exactly one piece.
func handleSingleCheck(b *Board, color Color, checking []PlacedPiece, pinned []PinnedPiece, ep Square, kingTargets []Square) (PieceMoves, error) {
	var moves PieceMoves
	if len(checking) != 1 {
		return moves, fmt.Errorf("single check with %d checkers: %w", len(checking), ErrIllogicalState)
	}
	checker := checking[0]
	king := b.State().King(color)

	allowed := SetOf(checker.Square)
	if pt := checker.Piece.Type(); pt != Knight && pt != Pawn {
		allowed |= SetOf(BlockingSquares(checker.Square, king)...)
	}

	for _, pp := range b.State().Placed(color) {
		if pp.Square == king {
			moves.add(pp, kingTargets)
			continue
		}
		targets := PseudoLegalMoves(b, pp.Square, ep)
		if pin, ok := findPin(pinned, pp.Square); ok {
			targets = FilterPinnedPieceMoves(pin, targets)
		}

		var kept []Square
		for _, t := range targets {
			if allowed.Has(t) || capturesCheckerEnPassant(pp, t, ep, checker) {
				kept = append(kept, t)
			}
		}
		moves.add(pp, verifyEnPassant(b, pp, kept, ep, king))
	}
	return moves, nil
}

// FilterPinnedPieceMoves keeps the destinations a pinned piece can reach
// without leaving the line between its king and the pinner. Knights never
// move; rooks on a diagonal pin and bishops on an orthogonal pin neither.
func FilterPinnedPieceMoves(pin PinnedPiece, targets []Square) []Square {
	switch pin.Piece.Piece.Type() {
	case Knight:
		return nil
	case Rook:
		if pin.Direction.IsDiagonal() {
			return nil
		}
	case Bishop:
		if pin.Direction.IsOrthogonal() {
			return nil
		}
	}

	var out []Square
	for _, t := range targets {
		if onLine(pin.Pinner, pin.Direction, t) {
			out = append(out, t)
		}
	}
	return out
}

// onLine reports whether sq lies on the line through origin along d.
func onLine(origin Square, d Direction, sq Square) bool {
	df := sq.File() - origin.File()
	dr := sq.Rank() - origin.Rank()
	return df*d.DRank == dr*d.DFile
}

func findPin(pinned []PinnedPiece, sq Square) (PinnedPiece, bool) {
	for _, pin := range pinned {
		if pin.Piece.Square == sq {
			return pin, true
		}
	}
	return PinnedPiece{}, false
}

// kingDestinations returns the king's moves onto squares the enemy does not
// control. Squares next to the enemy king are also refused: the enemy king
// does not control squares held by its own side, so it would otherwise
// leave its defended pieces open to capture by our king.
func kingDestinations(b *Board, king Square, color Color, enemyControl SquareSet) []Square {
	enemyKing := b.State().King(color.Other())
	var out []Square
	for _, t := range enemyControl.Exclude(KingMoves(b, king)) {
		if enemyKing != NoSquare && chebyshev(t, enemyKing) <= 1 {
			continue
		}
		out = append(out, t)
	}
	return out
}

func chebyshev(a, b Square) int {
	return max(abs(a.File()-b.File()), abs(a.Rank()-b.Rank()))
}

// enPassantVictim returns the square of the pawn taken by an en-passant
// capture onto ep.
func enPassantVictim(from, ep Square) Square {
	return NewSquare(ep.File(), from.Rank())
}

func isEnPassantCapture(pp PlacedPiece, to, ep Square) bool {
	return ep != NoSquare && to == ep && pp.Piece.Type() == Pawn && pp.Square.File() != to.File()
}

// capturesCheckerEnPassant reports whether a pawn move onto ep removes the
// pawn that gives check.
func capturesCheckerEnPassant(pp PlacedPiece, to, ep Square, checker PlacedPiece) bool {
	return isEnPassantCapture(pp, to, ep) && enPassantVictim(pp.Square, ep) == checker.Square
}

// verifyEnPassant drops an en-passant capture that would expose the king.
// Two pawns leave the same rank at once, which the pin scan cannot see, so
// the capture is replayed on a copy and the king re-examined.
func verifyEnPassant(b *Board, pp PlacedPiece, targets []Square, ep Square, king Square) []Square {
	if ep == NoSquare || pp.Piece.Type() != Pawn {
		return targets
	}
	out := targets[:0:0]
	for _, t := range targets {
		if isEnPassantCapture(pp, t, ep) && exposesKing(b, pp, t, king) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func exposesKing(b *Board, pp PlacedPiece, ep Square, king Square) bool {
	nb := b.Copy()
	nb.squares[enPassantVictim(pp.Square, ep)] = NoPiece
	nb.squares[ep] = pp.Piece
	nb.squares[pp.Square] = NoPiece
	nb.refresh()
	checking, _, err := AnalyzeKingSafety(nb, king, pp.Piece.Color())
	return err != nil || len(checking) > 0
}
