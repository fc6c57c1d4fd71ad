package board

import (
	"errors"
	"testing"
)

func TestSquareRoundTrip(t *testing.T) {
	for i := 0; i < 64; i++ {
		name, err := SquareName(i)
		if err != nil {
			t.Fatalf("SquareName(%d): %v", i, err)
		}
		sq, err := ParseSquare(name)
		if err != nil {
			t.Fatalf("ParseSquare(%q): %v", name, err)
		}
		if int(sq) != i {
			t.Errorf("ParseSquare(SquareName(%d)) = %d", i, sq)
		}
	}
}

func TestSquareCoordsRoundTrip(t *testing.T) {
	for file := 1; file <= 8; file++ {
		for rank := 1; rank <= 8; rank++ {
			sq, err := SquareFromCoords(file, rank)
			if err != nil {
				t.Fatalf("SquareFromCoords(%d, %d): %v", file, rank, err)
			}
			if int(sq) != (rank-1)*8+(file-1) {
				t.Errorf("SquareFromCoords(%d, %d) = %d", file, rank, sq)
			}
			f, r := sq.Coords()
			if f != file || r != rank {
				t.Errorf("%s.Coords() = (%d, %d), want (%d, %d)", sq, f, r, file, rank)
			}
			back, err := ParseSquare(sq.String())
			if err != nil || back != sq {
				t.Errorf("ParseSquare(%q) = %v, %v", sq.String(), back, err)
			}
		}
	}
}

func TestSquareNames(t *testing.T) {
	tests := []struct {
		name string
		sq   Square
	}{
		{"a1", A1},
		{"h1", H1},
		{"e4", E4},
		{"d5", D5},
		{"a8", A8},
		{"h8", H8},
	}
	for _, tt := range tests {
		sq, err := ParseSquare(tt.name)
		if err != nil {
			t.Errorf("ParseSquare(%q): %v", tt.name, err)
			continue
		}
		if sq != tt.sq {
			t.Errorf("ParseSquare(%q) = %d, want %d", tt.name, sq, tt.sq)
		}
		if sq.String() != tt.name {
			t.Errorf("%d.String() = %q, want %q", sq, sq.String(), tt.name)
		}
	}
}

func TestInvalidSquares(t *testing.T) {
	for _, s := range []string{"", "a", "e44", "i1", "a0", "a9", "E4", "4e"} {
		if _, err := ParseSquare(s); !errors.Is(err, ErrInvalidSquare) {
			t.Errorf("ParseSquare(%q) error = %v, want ErrInvalidSquare", s, err)
		}
	}
	for _, i := range []int{-1, 64, 100} {
		if _, err := SquareName(i); !errors.Is(err, ErrInvalidSquare) {
			t.Errorf("SquareName(%d) error = %v, want ErrInvalidSquare", i, err)
		}
		if _, err := SquareFromIndex(i); !errors.Is(err, ErrInvalidSquare) {
			t.Errorf("SquareFromIndex(%d) error = %v, want ErrInvalidSquare", i, err)
		}
	}
	for _, c := range [][2]int{{0, 1}, {1, 0}, {9, 1}, {1, 9}} {
		if _, err := SquareFromCoords(c[0], c[1]); !errors.Is(err, ErrInvalidSquare) {
			t.Errorf("SquareFromCoords(%d, %d) error = %v, want ErrInvalidSquare", c[0], c[1], err)
		}
	}
	if NoSquare.String() != "-" {
		t.Errorf("NoSquare.String() = %q", NoSquare.String())
	}
}

func TestDirectionBetween(t *testing.T) {
	tests := []struct {
		from, to Square
		want     Direction
		ok       bool
	}{
		{E1, E8, Direction{0, 1}, true},
		{E1, A1, Direction{-1, 0}, true},
		{D5, A2, Direction{-1, -1}, true},
		{A1, H8, Direction{1, 1}, true},
		{E1, F3, Direction{}, false},
		{E4, E4, Direction{}, false},
	}
	for _, tt := range tests {
		got, ok := directionBetween(tt.from, tt.to)
		if ok != tt.ok || got != tt.want {
			t.Errorf("directionBetween(%s, %s) = %v, %v; want %v, %v", tt.from, tt.to, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSquareSet(t *testing.T) {
	s := SetOf(E4, A1, H8)
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if !s.Has(E4) || s.Has(E5) || s.Has(NoSquare) {
		t.Error("Has() mismatch")
	}
	got := s.Squares()
	want := []Square{A1, E4, H8}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Squares() = %v, want %v", got, want)
		}
	}
	s = s.Remove(E4)
	if s.Has(E4) || s.Len() != 2 {
		t.Error("Remove() did not remove e4")
	}
	if f := SetOf(B1, C1).Exclude([]Square{A1, B1, C1, D1}); len(f) != 2 || f[0] != A1 || f[1] != D1 {
		t.Errorf("Exclude() = %v", f)
	}
}
