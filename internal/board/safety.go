package board

import "fmt"

// RayKind tags the outcome of scanning one ray from the king.
type RayKind uint8

const (
	RayNone RayKind = iota
	RayCheck
	RayPin
)

// RayResult is the outcome of scanning one ray from the king.
// Checker is set for RayCheck, Pin for RayPin.
type RayResult struct {
	Kind    RayKind
	Checker PlacedPiece
	Pin     PinnedPiece
}

// AnalyzeKingSafety finds the pieces checking the king on king and the
// friendly pieces pinned against it. color is the king's side.
//
// Once two or more checkers are known the scan stops and no pins are
// returned: only king moves can answer a double check.
func AnalyzeKingSafety(b *Board, king Square, color Color) ([]PlacedPiece, []PinnedPiece, error) {
	if !king.IsValid() || b.At(king).Type() != King {
		return nil, nil, fmt.Errorf("king safety on %s: no king there: %w", king, ErrIllogicalState)
	}

	var checking []PlacedPiece
	var pinned []PinnedPiece

	enemyKnight := NewPiece(Knight, color.Other())
	for _, d := range knightOffsets {
		if sq, ok := king.offset(d.DFile, d.DRank); ok && b.At(sq) == enemyKnight {
			checking = append(checking, PlacedPiece{Piece: enemyKnight, Square: sq})
		}
	}

	enemyPawn := NewPiece(Pawn, color.Other())
	for _, df := range [2]int{-1, 1} {
		if sq, ok := king.offset(df, color.forward()); ok && b.At(sq) == enemyPawn {
			checking = append(checking, PlacedPiece{Piece: enemyPawn, Square: sq})
		}
	}

	if len(checking) >= 2 {
		return checking, nil, nil
	}

	for _, d := range allDirections {
		r := scanRay(b, king, color, d)
		switch r.Kind {
		case RayCheck:
			checking = append(checking, r.Checker)
		case RayPin:
			pinned = append(pinned, r.Pin)
		}
		if len(checking) > 1 {
			return checking, nil, nil
		}
	}

	return checking, pinned, nil
}

// scanRay walks from the king along d looking for a checking or pinning slider.
func scanRay(b *Board, king Square, color Color, d Direction) RayResult {
	threats := [2]PieceType{Rook, Queen}
	if d.IsDiagonal() {
		threats = [2]PieceType{Bishop, Queen}
	}

	friendly := PlacedPiece{Square: NoSquare}
	sq := king
	for {
		next, ok := sq.offset(d.DFile, d.DRank)
		if !ok {
			return RayResult{}
		}
		sq = next

		p := b.At(sq)
		if p == NoPiece {
			continue
		}

		if p.Is(color) {
			if friendly.Square != NoSquare {
				return RayResult{}
			}
			friendly = PlacedPiece{Piece: p, Square: sq}
			continue
		}

		if pt := p.Type(); pt != threats[0] && pt != threats[1] {
			return RayResult{}
		}
		if friendly.Square == NoSquare {
			return RayResult{Kind: RayCheck, Checker: PlacedPiece{Piece: p, Square: sq}}
		}
		return RayResult{Kind: RayPin, Pin: PinnedPiece{Piece: friendly, Direction: d, Pinner: sq}}
	}
}
