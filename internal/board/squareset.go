package board

import (
	"fmt"
	"math/bits"
	"strings"
)

// SquareSet is a set of squares, one bit per square.
// Bit 0 = A1, Bit 7 = H1, Bit 56 = A8, Bit 63 = H8.
type SquareSet uint64

// SetOf returns a set holding the given squares.
func SetOf(squares ...Square) SquareSet {
	var s SquareSet
	for _, sq := range squares {
		s = s.Add(sq)
	}
	return s
}

// Add returns the set with sq included.
func (s SquareSet) Add(sq Square) SquareSet {
	return s | 1<<uint(sq)
}

// Remove returns the set without sq.
func (s SquareSet) Remove(sq Square) SquareSet {
	return s &^ (1 << uint(sq))
}

// Has reports whether sq is in the set.
func (s SquareSet) Has(sq Square) bool {
	if !sq.IsValid() {
		return false
	}
	return s&(1<<uint(sq)) != 0
}

// Len returns the number of squares in the set.
func (s SquareSet) Len() int {
	return bits.OnesCount64(uint64(s))
}

// LSB returns the lowest square in the set.
func (s SquareSet) LSB() Square {
	if s == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(s)))
}

// PopLSB removes and returns the lowest square.
func (s *SquareSet) PopLSB() Square {
	sq := s.LSB()
	*s &= *s - 1
	return sq
}

// Squares returns the members in ascending order.
func (s SquareSet) Squares() []Square {
	squares := make([]Square, 0, s.Len())
	for s != 0 {
		squares = append(squares, s.PopLSB())
	}
	return squares
}

// Filter keeps only the squares of targets that are in the set, preserving order.
func (s SquareSet) Filter(targets []Square) []Square {
	var out []Square
	for _, t := range targets {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

// Exclude keeps only the squares of targets that are not in the set.
func (s SquareSet) Exclude(targets []Square) []Square {
	var out []Square
	for _, t := range targets {
		if !s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

// String returns a visual representation of the set.
func (s SquareSet) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d ", rank+1)
		for file := 0; file < 8; file++ {
			if s.Has(NewSquare(file, rank)) {
				sb.WriteString("1 ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
