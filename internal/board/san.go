package board

import (
	"fmt"
	"strings"
)

// FormatSAN converts a legal move of gs to Standard Algebraic Notation.
func FormatSAN(gs *GameState, m Move) string {
	if m == NoMove {
		return "-"
	}

	from, to := m.From(), m.To
	piece := gs.board.At(from)
	if piece == NoPiece {
		return m.String()
	}

	var sb strings.Builder

	if m.IsCastling() {
		if to > from {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	} else {
		pt := piece.Type()
		if pt != Pawn {
			sb.WriteByte(pt.Char())
			sb.WriteString(disambiguation(gs, m, pt))
		}

		if isCapture(gs, m) {
			if pt == Pawn {
				sb.WriteByte('a' + byte(from.File()))
			}
			sb.WriteByte('x')
		}

		sb.WriteString(to.String())

		if IsPromotionSquare(piece, to) {
			promo := m.Promotion
			if promo == NoPiece {
				promo = NewPiece(Queen, piece.Color())
			}
			sb.WriteByte('=')
			sb.WriteByte(promo.Type().Char())
		}
	}

	if next, err := gs.Child(m); err == nil {
		if next.IsCheckmate() {
			sb.WriteByte('#')
		} else if next.InCheck() {
			sb.WriteByte('+')
		}
	}

	return sb.String()
}

func isCapture(gs *GameState, m Move) bool {
	return gs.board.At(m.To) != NoPiece || isEnPassantCapture(m.Mover, m.To, gs.enPassant)
}

// disambiguation returns the origin file, rank or square needed when
// another piece of the same type can reach the destination.
func disambiguation(gs *GameState, m Move, pt PieceType) string {
	from := m.From()
	var candidates []Square
	for i, pp := range gs.legal.Pieces {
		if pp.Square == from || pp.Piece.Type() != pt {
			continue
		}
		for _, t := range gs.legal.Targets[i] {
			if t == m.To {
				candidates = append(candidates, pp.Square)
			}
		}
	}
	if len(candidates) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range candidates {
		if sq.File() == from.File() {
			sameFile = true
		}
		if sq.Rank() == from.Rank() {
			sameRank = true
		}
	}

	if !sameFile {
		return string(rune('a' + from.File()))
	}
	if !sameRank {
		return string(rune('1' + from.Rank()))
	}
	return from.String()
}

// ParseSAN finds the legal move of gs written as s in Standard Algebraic Notation.
func ParseSAN(s string, gs *GameState) (Move, error) {
	orig := s
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "+#!?")

	if s == "O-O" || s == "0-0" || s == "O-O-O" || s == "0-0-0" {
		king := gs.board.State().King(gs.sideToMove)
		to := king + 2
		if len(s) == 5 {
			to = king - 2
		}
		if m := gs.legal.Find(king, to); m != NoMove {
			return m, nil
		}
		return NoMove, fmt.Errorf("castling %q: %w", orig, ErrIllegalMove)
	}

	promo := NoPieceType
	if idx := strings.IndexByte(s, '='); idx >= 0 && idx+1 < len(s) {
		promo = PieceFromChar(s[idx+1]).Type()
		s = s[:idx]
	}

	wantCapture := strings.Contains(s, "x")
	s = strings.ReplaceAll(s, "x", "")

	pt := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		pt = PieceFromChar(s[0]).Type()
		s = s[1:]
	}

	if len(s) < 2 {
		return NoMove, fmt.Errorf("move %q: %w", orig, ErrIllegalMove)
	}
	dest, err := ParseSquare(s[len(s)-2:])
	if err != nil {
		return NoMove, err
	}
	s = s[:len(s)-2]

	file, rank := -1, -1
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'h':
			file = int(c - 'a')
		case c >= '1' && c <= '8':
			rank = int(c - '1')
		}
	}

	for i, pp := range gs.legal.Pieces {
		if pp.Piece.Type() != pt {
			continue
		}
		if file >= 0 && pp.Square.File() != file {
			continue
		}
		if rank >= 0 && pp.Square.Rank() != rank {
			continue
		}
		for _, t := range gs.legal.Targets[i] {
			if t != dest {
				continue
			}
			m := Move{Mover: pp, To: t}
			if wantCapture && !isCapture(gs, m) {
				continue
			}
			if promo != NoPieceType {
				if !IsPromotionSquare(pp.Piece, t) {
					continue
				}
				m.Promotion = NewPiece(promo, gs.sideToMove)
			}
			return m, nil
		}
	}

	return NoMove, fmt.Errorf("move %q: %w", orig, ErrIllegalMove)
}

// MovesToSAN converts a sequence of moves played from gs to SAN.
func MovesToSAN(gs *GameState, moves []Move) []string {
	result := make([]string, 0, len(moves))
	cur := gs
	for _, m := range moves {
		result = append(result, FormatSAN(cur, m))
		next, err := cur.Child(m)
		if err != nil {
			break
		}
		cur = next
	}
	return result
}
