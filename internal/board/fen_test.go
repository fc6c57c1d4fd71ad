package board

import (
	"errors"
	"testing"
)

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"2r2kr1/R4p1p/4p3/1pqnPp2/5P2/Q7/P3N1PP/1R5K w - - 1 2",
		"4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 2",
	}
	for _, fen := range fens {
		gs, err := FromFEN(fen)
		if err != nil {
			t.Errorf("FromFEN(%q): %v", fen, err)
			continue
		}
		if got := gs.ToFEN(); got != fen {
			t.Errorf("ToFEN() = %q, want %q", got, fen)
		}
	}
}

func TestFENRankOrder(t *testing.T) {
	gs, err := FromFEN(StartFEN)
	if err != nil {
		t.Fatal(err)
	}
	if gs.Board().At(A8) != BlackRook || gs.Board().At(A1) != WhiteRook {
		t.Error("first FEN rank must be rank 8")
	}
	if PlacementFEN(gs.Board())[:8] != "rnbqkbnr" {
		t.Errorf("PlacementFEN starts with %q", PlacementFEN(gs.Board())[:8])
	}
}

func TestFENErrors(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want error
	}{
		{"empty", "", ErrInvalidFEN},
		{"missing fields", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -", ErrInvalidFEN},
		{"bad color", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", ErrInvalidFEN},
		{"bad piece", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1", ErrInvalidFEN},
		{"seven ranks", "rnbqkbnr/pppppppp/8/8/8/8/RNBQKBNR w KQkq - 0 1", ErrInvalidFEN},
		{"long rank", "rnbqkbnr/ppppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", ErrInvalidFEN},
		{"short rank", "rnbqkbnr/ppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", ErrInvalidFEN},
		{"bad en passant", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e9 0 1", ErrInvalidFEN},
		{"no white king", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQ1BNR w kq - 0 1", ErrMissingKing},
		{"black king capturable", "4k3/8/8/8/8/8/8/4RK2 w - - 0 1", ErrIllogicalState},
		{"white king capturable", "4k3/8/8/8/8/8/3n4/5K2 b - - 0 1", ErrIllogicalState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromFEN(tt.fen); !errors.Is(err, tt.want) {
				t.Errorf("FromFEN error = %v, want %v", err, tt.want)
			}
		})
	}
}
