package board

import (
	"fmt"
	"strings"
)

// DrawHalfMoves is the half-move clock value at which the game is drawn.
const DrawHalfMoves = 100

// GameState is a board plus everything needed to continue the game from it.
// The king-safety analysis and the legal moves of the side to move are
// cached and recomputed after every mutation.
type GameState struct {
	board          *Board
	sideToMove     Color
	castling       CastlingRights
	enPassant      Square
	halfMoveClock  int
	fullMoveNumber int

	checking  []PlacedPiece
	pinned    []PinnedPiece
	legal     PieceMoves
	checkmate bool
	draw      bool
}

// NewGameState validates b and builds a game state around it.
// The board is owned by the game state from now on.
func NewGameState(b *Board, side Color, rights CastlingRights, ep Square, halfMove, fullMove int) (*GameState, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if side != White && side != Black {
		return nil, fmt.Errorf("side to move %d: %w", side, ErrIllogicalState)
	}
	// The side that just moved may not have left its king attacked.
	idle := side.Other()
	checking, _, err := AnalyzeKingSafety(b, b.State().King(idle), idle)
	if err != nil {
		return nil, err
	}
	if len(checking) > 0 {
		return nil, fmt.Errorf("%s king in check with %s to move: %w", idle, side, ErrIllogicalState)
	}
	gs := &GameState{
		board:          b,
		sideToMove:     side,
		castling:       rights,
		enPassant:      ep,
		halfMoveClock:  halfMove,
		fullMoveNumber: fullMove,
	}
	if err := gs.update(); err != nil {
		return nil, err
	}
	return gs, nil
}

// StartingPosition returns the standard initial position, White to move.
func StartingPosition() *GameState {
	gs, err := NewGameState(StartingBoard(), White, AllCastling, NoSquare, 0, 1)
	if err != nil {
		panic(err)
	}
	return gs
}

// EmptyGameState returns a game state on an empty board. Nothing is
// analysed until both kings are present, so it has no legal moves and is
// neither mate nor draw.
func EmptyGameState() *GameState {
	return &GameState{
		board:          NewBoard(),
		sideToMove:     White,
		enPassant:      NoSquare,
		fullMoveNumber: 1,
	}
}

// update recomputes the cached analysis for the side to move.
func (gs *GameState) update() error {
	gs.checking, gs.pinned, gs.legal = nil, nil, PieceMoves{}
	gs.checkmate, gs.draw = false, false

	state := gs.board.State()
	king := state.King(gs.sideToMove)
	if king == NoSquare || state.King(gs.sideToMove.Other()) == NoSquare {
		return nil
	}

	checking, pinned, err := AnalyzeKingSafety(gs.board, king, gs.sideToMove)
	if err != nil {
		return err
	}
	legal, err := GenerateLegalMoves(gs.board, gs.sideToMove, checking, pinned, gs.castling, gs.enPassant)
	if err != nil {
		return err
	}

	gs.checking, gs.pinned, gs.legal = checking, pinned, legal
	gs.checkmate = legal.IsEmpty() && len(checking) > 0
	gs.draw = !gs.checkmate && (legal.IsEmpty() || gs.halfMoveClock >= DrawHalfMoves)
	return nil
}

// Board returns the board. Callers must not modify it.
func (gs *GameState) Board() *Board { return gs.board }

// SideToMove returns the color whose turn it is.
func (gs *GameState) SideToMove() Color { return gs.sideToMove }

// Castling returns the current castling rights.
func (gs *GameState) Castling() CastlingRights { return gs.castling }

// EnPassant returns the en-passant target square, NoSquare if none.
func (gs *GameState) EnPassant() Square { return gs.enPassant }

// HalfMoveClock returns the number of half moves since the last pawn move or capture.
func (gs *GameState) HalfMoveClock() int { return gs.halfMoveClock }

// FullMoveNumber returns the move number, incremented after Black moves.
func (gs *GameState) FullMoveNumber() int { return gs.fullMoveNumber }

// LegalMoves returns the legal moves of the side to move.
func (gs *GameState) LegalMoves() PieceMoves { return gs.legal }

// Checking returns the pieces giving check to the side to move.
func (gs *GameState) Checking() []PlacedPiece { return gs.checking }

// Pinned returns the pieces of the side to move pinned against their king.
func (gs *GameState) Pinned() []PinnedPiece { return gs.pinned }

// InCheck reports whether the side to move is in check.
func (gs *GameState) InCheck() bool { return len(gs.checking) > 0 }

// IsCheckmate reports whether the side to move is mated.
func (gs *GameState) IsCheckmate() bool { return gs.checkmate }

// IsDraw reports stalemate or the fifty-move rule.
func (gs *GameState) IsDraw() bool { return gs.draw }

// IsGameOver reports mate or draw.
func (gs *GameState) IsGameOver() bool { return gs.checkmate || gs.draw }

// Evaluate returns the static evaluation from White's point of view.
func (gs *GameState) Evaluate() int {
	state := gs.board.State()
	return Evaluate(gs.sideToMove, state.Pieces[White], state.Pieces[Black], gs.checkmate, gs.draw)
}

// Clone returns an independent copy. The cached analysis is shared: it is
// never modified in place, only replaced.
func (gs *GameState) Clone() *GameState {
	c := *gs
	c.board = gs.board.Copy()
	return &c
}

// MakeMove plays the piece standing on piece.Square to to. promotion may be
// NoPiece, in which case a pawn reaching the last rank becomes a queen.
func (gs *GameState) MakeMove(piece PlacedPiece, to Square, promotion Piece) error {
	if gs.board.At(piece.Square) != piece.Piece || !piece.Piece.Is(gs.sideToMove) {
		return fmt.Errorf("no %s piece %s: %w", gs.sideToMove, piece, ErrIllegalMove)
	}
	m := gs.legal.Find(piece.Square, to)
	if m == NoMove {
		return fmt.Errorf("%s to %s: %w", piece, to, ErrIllegalMove)
	}

	if promotion != NoPiece {
		if !IsPromotionSquare(piece.Piece, to) {
			return fmt.Errorf("%s to %s does not promote: %w", piece, to, ErrIllegalMove)
		}
		switch promotion.Type() {
		case Knight, Bishop, Rook, Queen:
		default:
			return fmt.Errorf("promotion to %s: %w", promotion.Type(), ErrIllegalMove)
		}
		m.Promotion = NewPiece(promotion.Type(), gs.sideToMove)
	}
	return gs.apply(m)
}

// Play validates and plays m.
func (gs *GameState) Play(m Move) error {
	return gs.MakeMove(m.Mover, m.To, m.Promotion)
}

// Child returns a copy of gs with m applied. m must come from LegalMoves;
// it is not validated again.
func (gs *GameState) Child(m Move) (*GameState, error) {
	c := gs.Clone()
	if err := c.apply(m); err != nil {
		return nil, err
	}
	return c, nil
}

// apply executes m on the board and refreshes the analysis.
func (gs *GameState) apply(m Move) error {
	b := gs.board
	from, to := m.From(), m.To
	mover := b.squares[from]
	captured := b.squares[to]
	us := gs.sideToMove

	if mover.Type() == Pawn && isEnPassantCapture(PlacedPiece{Piece: mover, Square: from}, to, gs.enPassant) && captured == NoPiece {
		victim := enPassantVictim(from, to)
		captured = b.squares[victim]
		b.squares[victim] = NoPiece
	}

	b.squares[to] = mover
	b.squares[from] = NoPiece
	if IsPromotionSquare(mover, to) {
		promo := m.Promotion
		if promo == NoPiece {
			promo = NewPiece(Queen, us)
		}
		b.squares[to] = promo
	}

	if mover.Type() == King {
		if rookFrom, rookTo, ok := castlingRookMove(us, to); ok && abs(to.File()-from.File()) == 2 {
			b.squares[rookTo] = b.squares[rookFrom]
			b.squares[rookFrom] = NoPiece
		}
		gs.castling.DisableAll(us)
	}
	gs.revokeRookRights(from)
	gs.revokeRookRights(to)

	gs.enPassant = NoSquare
	if mover.Type() == Pawn && abs(to.Rank()-from.Rank()) == 2 {
		gs.enPassant = NewSquare(from.File(), (from.Rank()+to.Rank())/2)
	}

	if mover.Type() == Pawn || captured != NoPiece {
		gs.halfMoveClock = 0
	} else {
		gs.halfMoveClock++
	}
	if us == Black {
		gs.fullMoveNumber++
	}
	gs.sideToMove = us.Other()

	b.refresh()
	return gs.update()
}

// revokeRookRights clears the right tied to a rook home square once anything
// leaves or lands on it.
func (gs *GameState) revokeRookRights(sq Square) {
	switch sq {
	case H1:
		gs.castling.Disable(White, true)
	case A1:
		gs.castling.Disable(White, false)
	case H8:
		gs.castling.Disable(Black, true)
	case A8:
		gs.castling.Disable(Black, false)
	}
}

// String returns the board followed by the FEN and the game status.
func (gs *GameState) String() string {
	var sb strings.Builder
	sb.WriteString(gs.board.String())
	fmt.Fprintf(&sb, "\nFen: %s\n", gs.ToFEN())
	switch {
	case gs.checkmate:
		fmt.Fprintf(&sb, "%s is checkmated\n", gs.sideToMove)
	case gs.draw:
		sb.WriteString("Draw\n")
	case gs.InCheck():
		fmt.Fprintf(&sb, "%s to move, in check\n", gs.sideToMove)
	default:
		fmt.Fprintf(&sb, "%s to move\n", gs.sideToMove)
	}
	return sb.String()
}
