// Package board implements the chess board, the rules of movement and the
// legal-move generator.
package board

import "fmt"

// Square represents a square on the chess board (0-63).
// Uses Little-Endian Rank-File Mapping: A1=0, H1=7, A8=56, H8=63.
type Square int8

// Square constants for all 64 squares.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	NoSquare Square = -1
)

// File returns the file (column) of the square (0-7, where 0=a, 7=h).
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the rank (row) of the square (0-7, where 0=1, 7=8).
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// Coords returns the 1-based (file, rank) pair of the square.
func (sq Square) Coords() (file, rank int) {
	return sq.File() + 1, sq.Rank() + 1
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '1'+sq.Rank())
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq >= 0 && sq < 64
}

// NewSquare creates a square from file and rank (0-indexed).
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// offset returns the square reached by stepping df files and dr ranks,
// and false when the step leaves the board.
func (sq Square) offset(df, dr int) (Square, bool) {
	f := sq.File() + df
	r := sq.Rank() + dr
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return NoSquare, false
	}
	return NewSquare(f, r), true
}

// SquareFromCoords converts 1-based (file, rank) coordinates to a Square.
func SquareFromCoords(file, rank int) (Square, error) {
	if file < 1 || file > 8 || rank < 1 || rank > 8 {
		return NoSquare, fmt.Errorf("coordinates (%d, %d): %w", file, rank, ErrInvalidSquare)
	}
	return NewSquare(file-1, rank-1), nil
}

// SquareFromIndex converts a 0-63 index to a Square.
func SquareFromIndex(index int) (Square, error) {
	if index < 0 || index > 63 {
		return NoSquare, fmt.Errorf("index %d: %w", index, ErrInvalidSquare)
	}
	return Square(index), nil
}

// SquareName returns the algebraic name of a 0-63 index.
func SquareName(index int) (string, error) {
	sq, err := SquareFromIndex(index)
	if err != nil {
		return "", err
	}
	return sq.String(), nil
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%q: %w", s, ErrInvalidSquare)
	}

	file := int(s[0]) - 'a'
	rank := int(s[1]) - '1'

	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("%q: %w", s, ErrInvalidSquare)
	}

	return NewSquare(file, rank), nil
}

// RelativeRank returns the rank from a given color's perspective.
// For White, rank 0 is the 1st rank; for Black, rank 0 is the 8th rank.
func (sq Square) RelativeRank(c Color) int {
	if c == White {
		return sq.Rank()
	}
	return 7 - sq.Rank()
}

// Direction is a unit step on the board, each component in {-1, 0, 1}.
type Direction struct {
	DFile int
	DRank int
}

// IsDiagonal reports whether the direction is a diagonal step.
func (d Direction) IsDiagonal() bool {
	return d.DFile != 0 && d.DRank != 0
}

// IsOrthogonal reports whether the direction runs along a file or rank.
func (d Direction) IsOrthogonal() bool {
	return (d.DFile == 0) != (d.DRank == 0)
}

// Ray directions, orthogonal first.
var (
	orthogonalDirections = [4]Direction{{0, 1}, {1, 0}, {-1, 0}, {0, -1}}
	diagonalDirections   = [4]Direction{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
	allDirections        = [8]Direction{{0, 1}, {1, 0}, {-1, 0}, {0, -1}, {1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
)

var knightOffsets = [8]Direction{
	{1, 2}, {-1, 2}, {1, -2}, {-1, -2},
	{2, 1}, {-2, 1}, {2, -1}, {-2, -1},
}

// directionBetween returns the unit step leading from one square to the
// other when they share a file, rank or diagonal.
func directionBetween(from, to Square) (Direction, bool) {
	df := to.File() - from.File()
	dr := to.Rank() - from.Rank()
	if from == to {
		return Direction{}, false
	}
	if df != 0 && dr != 0 && abs(df) != abs(dr) {
		return Direction{}, false
	}
	return Direction{sign(df), sign(dr)}, true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
