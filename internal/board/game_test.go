package board

import (
	"errors"
	"strings"
	"testing"
)

func TestMakeMoveUpdatesState(t *testing.T) {
	gs := StartingPosition()

	if err := gs.MakeMove(PlacedPiece{WhitePawn, E2}, E4, NoPiece); err != nil {
		t.Fatal(err)
	}
	if gs.SideToMove() != Black || gs.EnPassant() != E3 || gs.HalfMoveClock() != 0 || gs.FullMoveNumber() != 1 {
		t.Errorf("after e4: %s", gs.ToFEN())
	}

	if err := gs.MakeMove(PlacedPiece{BlackKnight, G8}, F6, NoPiece); err != nil {
		t.Fatal(err)
	}
	if gs.EnPassant() != NoSquare {
		t.Error("en-passant target not cleared")
	}
	if gs.HalfMoveClock() != 1 || gs.FullMoveNumber() != 2 {
		t.Errorf("clocks = %d/%d, want 1/2", gs.HalfMoveClock(), gs.FullMoveNumber())
	}
	want := "rnbqkb1r/pppppppp/5n2/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 1 2"
	if got := gs.ToFEN(); got != want {
		t.Errorf("ToFEN() = %q, want %q", got, want)
	}
}

func TestMakeMoveRejectsIllegal(t *testing.T) {
	gs := StartingPosition()
	tests := []struct {
		name  string
		piece PlacedPiece
		to    Square
		promo Piece
	}{
		{"pawn three squares", PlacedPiece{WhitePawn, E2}, E5, NoPiece},
		{"wrong piece on square", PlacedPiece{WhiteKnight, E2}, E4, NoPiece},
		{"black to move out of turn", PlacedPiece{BlackPawn, E7}, E5, NoPiece},
		{"promotion off the last rank", PlacedPiece{WhitePawn, E2}, E4, WhiteQueen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gs.MakeMove(tt.piece, tt.to, tt.promo)
			if !errors.Is(err, ErrIllegalMove) {
				t.Errorf("error = %v, want ErrIllegalMove", err)
			}
		})
	}
	if gs.ToFEN() != StartFEN {
		t.Error("rejected moves changed the position")
	}
}

func TestEnPassantRemovesCapturedPawn(t *testing.T) {
	gs := mustFEN(t, "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 2")
	if err := gs.MakeMove(PlacedPiece{WhitePawn, E5}, D6, NoPiece); err != nil {
		t.Fatal(err)
	}
	want := "4k3/8/3P4/8/8/8/8/4K3 b - - 0 2"
	if got := gs.ToFEN(); got != want {
		t.Errorf("ToFEN() = %q, want %q", got, want)
	}
}

func TestEnPassantHorizontalPin(t *testing.T) {
	gs := mustFEN(t, "8/8/8/K2pP2r/8/8/8/4k3 w - d6 0 1")
	if gs.LegalMoves().Contains(E5, D6) {
		t.Error("en-passant capture exposes the king along the fifth rank")
	}
	if !gs.LegalMoves().Contains(E5, E6) {
		t.Error("pawn push e6 should stay legal")
	}
}

func TestEnPassantCapturesChecker(t *testing.T) {
	gs := mustFEN(t, "8/8/8/2k5/3Pp3/8/8/4K3 b - d3 0 1")
	if !gs.InCheck() {
		t.Fatal("expected the d4 pawn to give check")
	}
	if !gs.LegalMoves().Contains(E4, D3) {
		t.Error("en-passant capture of the checking pawn missing")
	}
	if err := gs.MakeMove(PlacedPiece{BlackPawn, E4}, D3, NoPiece); err != nil {
		t.Fatal(err)
	}
	if gs.Board().At(D4) != NoPiece {
		t.Error("captured pawn still on d4")
	}
}

func TestPromotion(t *testing.T) {
	gs := mustFEN(t, "8/4P3/8/8/8/8/k7/4K3 w - - 0 1")
	moves := gs.LegalMoves().Moves()
	promos := 0
	for _, m := range moves {
		if m.IsPromotion() {
			promos++
		}
	}
	if promos != 4 {
		t.Errorf("promotion moves = %d, want 4", promos)
	}

	under := gs.Clone()
	if err := under.MakeMove(PlacedPiece{WhitePawn, E7}, E8, BlackKnight); err != nil {
		t.Fatal(err)
	}
	if under.Board().At(E8) != WhiteKnight {
		t.Errorf("e8 = %s, want N", under.Board().At(E8))
	}

	if err := gs.MakeMove(PlacedPiece{WhitePawn, E7}, E8, NoPiece); err != nil {
		t.Fatal(err)
	}
	if gs.Board().At(E8) != WhiteQueen {
		t.Errorf("default promotion = %s, want Q", gs.Board().At(E8))
	}

	gs = mustFEN(t, "8/4P3/8/8/8/8/k7/4K3 w - - 0 1")
	if err := gs.MakeMove(PlacedPiece{WhitePawn, E7}, E8, WhiteKing); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("promotion to king error = %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	gs := StartingPosition()
	c := gs.Clone()
	if err := c.MakeMove(PlacedPiece{WhiteKnight, G1}, F3, NoPiece); err != nil {
		t.Fatal(err)
	}
	if gs.ToFEN() != StartFEN || gs.SideToMove() != White || gs.LegalMoves().Count() != 20 {
		t.Error("moving the clone changed the original")
	}
	if c.SideToMove() != Black {
		t.Error("clone did not advance")
	}
}

func TestDraws(t *testing.T) {
	stalemate := mustFEN(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if !stalemate.IsDraw() || stalemate.IsCheckmate() {
		t.Error("stalemate not recognised as a draw")
	}
	if stalemate.Evaluate() != 0 {
		t.Errorf("stalemate evaluation = %d", stalemate.Evaluate())
	}

	fifty := mustFEN(t, "4k3/8/8/8/8/8/8/4K2R w K - 100 80")
	if !fifty.IsDraw() {
		t.Error("half-move clock 100 is not a draw")
	}
	if fifty.LegalMoves().IsEmpty() {
		t.Error("legal moves still exist at the fifty-move draw")
	}
}

func TestNewGameStateRejectsCapturableKing(t *testing.T) {
	b := NewBoard()
	b.Set(E1, WhiteKing)
	b.Set(E8, BlackKing)
	b.Set(E4, WhiteRook)

	if _, err := NewGameState(b.Copy(), White, NoCastling, NoSquare, 0, 1); !errors.Is(err, ErrIllogicalState) {
		t.Errorf("White to move with Black in check: error = %v, want ErrIllogicalState", err)
	}

	gs, err := NewGameState(b, Black, NoCastling, NoSquare, 0, 1)
	if err != nil {
		t.Fatalf("Black to move in check: %v", err)
	}
	if !gs.InCheck() {
		t.Error("Black should be in check")
	}
	// Every reply leaves both kings on the board.
	for _, m := range gs.LegalMoves().Moves() {
		child, err := gs.Child(m)
		if err != nil {
			t.Fatal(err)
		}
		if child.LegalMoves().IsEmpty() && !child.IsGameOver() {
			t.Errorf("%s leads to an unanalysed position", m)
		}
	}
}

func TestEmptyGameState(t *testing.T) {
	gs := EmptyGameState()
	if !gs.LegalMoves().IsEmpty() || gs.IsCheckmate() || gs.IsDraw() {
		t.Error("empty game state should have no moves and no result")
	}
	if gs.ToFEN() != "8/8/8/8/8/8/8/8 w - - 0 1" {
		t.Errorf("ToFEN() = %q", gs.ToFEN())
	}
}

func TestGameStateString(t *testing.T) {
	s := StartingPosition().String()
	for _, want := range []string{"r n b q k b n r", StartFEN, "White to move"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q:\n%s", want, s)
		}
	}
}
