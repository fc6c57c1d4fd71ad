package board

import (
	"errors"
	"reflect"
	"testing"
)

func mustFEN(t testing.TB, fen string) *GameState {
	t.Helper()
	gs, err := FromFEN(fen)
	if err != nil {
		t.Fatalf("FromFEN(%q): %v", fen, err)
	}
	return gs
}

func TestStartingPositionLegalMoves(t *testing.T) {
	gs := StartingPosition()
	legal := gs.LegalMoves()

	if legal.Count() != 20 {
		t.Errorf("legal moves = %d, want 20", legal.Count())
	}
	var pawns, knights int
	for i, pp := range legal.Pieces {
		switch pp.Piece.Type() {
		case Pawn:
			pawns += len(legal.Targets[i])
		case Knight:
			knights += len(legal.Targets[i])
		default:
			t.Errorf("unexpected mover %v", pp)
		}
	}
	if pawns != 16 || knights != 4 {
		t.Errorf("pawn moves = %d, knight moves = %d", pawns, knights)
	}
	if gs.IsCheckmate() || gs.IsDraw() {
		t.Error("starting position is terminal")
	}
}

func TestSingleCheckRestrictsMoves(t *testing.T) {
	gs := mustFEN(t, "4k3/8/5B2/8/8/8/3N4/r3K3 w - - 0 1")

	if len(gs.Checking()) != 1 {
		t.Fatalf("checking = %v", gs.Checking())
	}
	want := PieceMoves{
		Pieces: []PlacedPiece{{WhiteKing, E1}, {WhiteKnight, D2}, {WhiteBishop, F6}},
		Targets: [][]Square{
			{E2, F2},
			{B1},
			{A1},
		},
	}
	if got := gs.LegalMoves(); !reflect.DeepEqual(got, want) {
		t.Errorf("legal moves = %+v, want %+v", got, want)
	}

	allowed := SetOf(A1, B1, C1, D1)
	legal := gs.LegalMoves()
	for i, pp := range legal.Pieces {
		if pp.Piece.Type() == King {
			continue
		}
		for _, to := range legal.Targets[i] {
			if !allowed.Has(to) {
				t.Errorf("%v may move to %s while in check", pp, to)
			}
		}
	}
}

func TestDoubleCheckOnlyKingMoves(t *testing.T) {
	gs := mustFEN(t, "4k3/8/8/8/3Q4/5n2/8/r3K3 w - - 0 1")

	if len(gs.Checking()) != 2 {
		t.Fatalf("checking = %v, want 2", gs.Checking())
	}
	legal := gs.LegalMoves()
	if legal.Len() != 1 || legal.Pieces[0].Square != E1 {
		t.Fatalf("movers = %v, want only the king", legal.Pieces)
	}
	if !reflect.DeepEqual(legal.Targets[0], []Square{E2, F2}) {
		t.Errorf("king targets = %v, want [e2 f2]", legal.Targets[0])
	}
}

func TestPinnedPieces(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		from Square
		want []Square
	}{
		{"queen pinned on a file", "4r2k/8/8/8/4Q3/8/8/4K3 w - - 0 1", E4, []Square{E5, E6, E7, E8, E3, E2}},
		{"queen pinned on a diagonal", "k7/8/8/8/8/2b5/3Q4/4K3 w - - 0 1", D2, []Square{C3}},
		{"rook pinned on a diagonal", "k7/8/8/8/8/2b5/3R4/4K3 w - - 0 1", D2, nil},
		{"bishop pinned on a file", "4r2k/8/8/8/4B3/8/8/4K3 w - - 0 1", E4, nil},
		{"knight pinned", "4r2k/8/8/8/4N3/8/8/4K3 w - - 0 1", E4, nil},
		{"pawn pinned on a file pushes", "k3r3/8/8/8/8/8/4P3/4K3 w - - 0 1", E2, []Square{E3, E4}},
		{"pawn pinned on a diagonal takes the pinner", "k7/8/8/8/8/2b5/3P4/4K3 w - - 0 1", D2, []Square{C3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := mustFEN(t, tt.fen)
			if len(gs.Pinned()) != 1 || gs.Pinned()[0].Piece.Square != tt.from {
				t.Fatalf("pinned = %v, want piece on %s", gs.Pinned(), tt.from)
			}
			var got []Square
			legal := gs.LegalMoves()
			for i, pp := range legal.Pieces {
				if pp.Square == tt.from {
					got = legal.Targets[i]
				}
			}
			if !sameSquares(got, tt.want) {
				t.Errorf("targets = %v, want %v", got, tt.want)
			}
		})
	}
}

func sameSquares(a, b []Square) bool {
	return SetOf(a...) == SetOf(b...) && len(a) == len(b)
}

func TestFilterPinnedPieceMoves(t *testing.T) {
	pin := PinnedPiece{Piece: PlacedPiece{WhiteQueen, B3}, Direction: Direction{-1, -1}, Pinner: A2}
	got := FilterPinnedPieceMoves(pin, []Square{A2, C4, A3, B4, C3, A4})
	if !reflect.DeepEqual(got, []Square{A2, C4}) {
		t.Errorf("queen targets = %v, want [a2 c4]", got)
	}

	pin.Piece.Piece = WhiteKnight
	if got := FilterPinnedPieceMoves(pin, []Square{A1, C1, D2, D4}); got != nil {
		t.Errorf("knight targets = %v, want none", got)
	}

	pin = PinnedPiece{Piece: PlacedPiece{WhiteRook, E4}, Direction: Direction{0, 1}, Pinner: E8}
	got = FilterPinnedPieceMoves(pin, []Square{E5, E8, D4, A4, E2})
	if !reflect.DeepEqual(got, []Square{E5, E8, E2}) {
		t.Errorf("rook targets = %v, want [e5 e8 e2]", got)
	}
}

func TestHandleSingleCheckNeedsOneChecker(t *testing.T) {
	b := StartingBoard()
	_, err := handleSingleCheck(b, White, nil, nil, NoSquare, nil)
	if !errors.Is(err, ErrIllogicalState) {
		t.Errorf("error = %v, want ErrIllogicalState", err)
	}
}

func TestKingCannotTakeDefendedPiece(t *testing.T) {
	// The rook on e2 is defended only by the black king.
	gs := mustFEN(t, "8/8/8/8/8/4k3/4r3/4K3 w - - 0 1")
	if gs.LegalMoves().Contains(E1, E2) {
		t.Error("king may capture a rook defended by the enemy king")
	}
}

func TestKingCannotRetreatAlongCheckRay(t *testing.T) {
	gs := mustFEN(t, "k7/8/8/8/4r3/8/4K3/8 w - - 0 1")
	if gs.LegalMoves().Contains(E2, E1) {
		t.Error("king may step back along the rook's file")
	}
	if !gs.LegalMoves().Contains(E2, D1) {
		t.Error("king should be able to leave the file")
	}
}

func TestLegalMovesIdempotent(t *testing.T) {
	gs := mustFEN(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	b := gs.Board()
	first, err := GenerateLegalMoves(b, White, gs.Checking(), gs.Pinned(), gs.Castling(), gs.EnPassant())
	if err != nil {
		t.Fatal(err)
	}
	second, err := GenerateLegalMoves(b, White, gs.Checking(), gs.Pinned(), gs.Castling(), gs.EnPassant())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) || !reflect.DeepEqual(first, gs.LegalMoves()) {
		t.Error("repeated generation differs")
	}
}

func TestLegalMovesRequireKing(t *testing.T) {
	b := boardWith(map[Square]Piece{E8: BlackKing})
	if _, err := GenerateLegalMoves(b, White, nil, nil, NoCastling, NoSquare); !errors.Is(err, ErrIllogicalState) {
		t.Errorf("error = %v, want ErrIllogicalState", err)
	}
}
