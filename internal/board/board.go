package board

import (
	"fmt"
	"strings"
)

// BoardState is the piece-location index derived from a board.
// Lists are in board scan order (a1 to h8); Pieces[c][i] stands on Squares[c][i].
type BoardState struct {
	Pieces  [2][]Piece
	Squares [2][]Square

	// King squares, NoSquare when the king is missing.
	KingSquare [2]Square
}

// King returns the king square of color c.
func (s *BoardState) King(c Color) Square {
	return s.KingSquare[c]
}

// Placed returns the pieces of color c with their squares.
func (s *BoardState) Placed(c Color) []PlacedPiece {
	placed := make([]PlacedPiece, len(s.Pieces[c]))
	for i, p := range s.Pieces[c] {
		placed[i] = PlacedPiece{Piece: p, Square: s.Squares[c][i]}
	}
	return placed
}

// computeBoardState scans the squares and builds the location index.
func computeBoardState(squares *[64]Piece) BoardState {
	s := BoardState{KingSquare: [2]Square{NoSquare, NoSquare}}
	for c := White; c <= Black; c++ {
		s.Pieces[c] = make([]Piece, 0, 16)
		s.Squares[c] = make([]Square, 0, 16)
	}
	for sq := A1; sq <= H8; sq++ {
		p := squares[sq]
		if p == NoPiece {
			continue
		}
		c := p.Color()
		s.Pieces[c] = append(s.Pieces[c], p)
		s.Squares[c] = append(s.Squares[c], sq)
		if p.Type() == King {
			s.KingSquare[c] = sq
		}
	}
	return s
}

// Board is a 64-square mailbox with its derived BoardState.
// Every write goes through Set or Relocate so the index never goes stale.
type Board struct {
	squares [64]Piece
	state   BoardState
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	b := &Board{}
	b.refresh()
	return b
}

// StartingBoard returns a board with the standard starting placement.
func StartingBoard() *Board {
	b := &Board{}
	backRank := [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file := 0; file < 8; file++ {
		b.squares[NewSquare(file, 0)] = NewPiece(backRank[file], White)
		b.squares[NewSquare(file, 1)] = WhitePawn
		b.squares[NewSquare(file, 6)] = BlackPawn
		b.squares[NewSquare(file, 7)] = NewPiece(backRank[file], Black)
	}
	b.refresh()
	return b
}

// FromSquares builds a board from a raw 64-entry array.
func FromSquares(squares [64]Piece) *Board {
	b := &Board{squares: squares}
	b.refresh()
	return b
}

// refresh recomputes the derived BoardState.
func (b *Board) refresh() {
	b.state = computeBoardState(&b.squares)
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	nb := &Board{squares: b.squares}
	nb.state = b.state.clone()
	return nb
}

func (s BoardState) clone() BoardState {
	out := BoardState{KingSquare: s.KingSquare}
	for c := White; c <= Black; c++ {
		out.Pieces[c] = append([]Piece(nil), s.Pieces[c]...)
		out.Squares[c] = append([]Square(nil), s.Squares[c]...)
	}
	return out
}

// Squares returns a copy of the raw square array.
func (b *Board) Squares() [64]Piece {
	return b.squares
}

// State returns the derived piece-location index.
func (b *Board) State() *BoardState {
	return &b.state
}

// At returns the piece on sq, or NoPiece if empty.
func (b *Board) At(sq Square) Piece {
	return b.squares[sq]
}

// IsEmpty returns true if the square is empty.
func (b *Board) IsEmpty(sq Square) bool {
	return b.squares[sq] == NoPiece
}

// Set places p on sq (NoPiece clears it) and recomputes the BoardState.
func (b *Board) Set(sq Square, p Piece) {
	b.squares[sq] = p
	b.refresh()
}

// AtName returns the piece on the square named in algebraic notation.
func (b *Board) AtName(name string) (Piece, error) {
	sq, err := ParseSquare(name)
	if err != nil {
		return NoPiece, err
	}
	return b.squares[sq], nil
}

// SetName places p on the square named in algebraic notation.
func (b *Board) SetName(name string, p Piece) error {
	sq, err := ParseSquare(name)
	if err != nil {
		return err
	}
	b.Set(sq, p)
	return nil
}

// Relocate moves whatever stands on from to to, clearing from.
// It knows nothing about legality.
func (b *Board) Relocate(from, to Square) {
	b.squares[to] = b.squares[from]
	b.squares[from] = NoPiece
	b.refresh()
}

// Validate checks that each side has exactly one king.
func (b *Board) Validate() error {
	var kings [2]int
	for _, p := range b.squares {
		if p.Type() == King {
			kings[p.Color()]++
		}
	}
	if kings[White] != 1 {
		return fmt.Errorf("white has %d kings: %w", kings[White], ErrMissingKing)
	}
	if kings[Black] != 1 {
		return fmt.Errorf("black has %d kings: %w", kings[Black], ErrMissingKing)
	}
	return nil
}

// String returns a visual representation of the board, rank 8 on top.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			p := b.squares[NewSquare(file, rank)]
			if p == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(p.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n")
	return sb.String()
}
