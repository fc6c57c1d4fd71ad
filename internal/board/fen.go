package board

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var fenPattern = regexp.MustCompile(`^([1-8RrNnBbQqKkPp/]+) ([wb]) ([KkQq-]+) ([a-h][1-8]|-) (\d+) (\d+)$`)

// FromFEN parses a FEN string into a validated game state.
func FromFEN(fen string) (*GameState, error) {
	fields := fenPattern.FindStringSubmatch(strings.TrimSpace(fen))
	if fields == nil {
		return nil, fmt.Errorf("%q: %w", fen, ErrInvalidFEN)
	}

	b, err := parsePlacement(fields[1])
	if err != nil {
		return nil, err
	}

	side := White
	if fields[2] == "b" {
		side = Black
	}

	rights, err := ParseCastlingRights(fields[3])
	if err != nil {
		return nil, err
	}

	ep := NoSquare
	if fields[4] != "-" {
		if ep, err = ParseSquare(fields[4]); err != nil {
			return nil, fmt.Errorf("en passant square: %w", ErrInvalidFEN)
		}
	}

	halfMove, err := strconv.Atoi(fields[5])
	if err != nil {
		return nil, fmt.Errorf("half-move clock %q: %w", fields[5], ErrInvalidFEN)
	}
	fullMove, err := strconv.Atoi(fields[6])
	if err != nil {
		return nil, fmt.Errorf("full-move number %q: %w", fields[6], ErrInvalidFEN)
	}

	return NewGameState(b, side, rights, ep, halfMove, fullMove)
}

// parsePlacement parses the piece placement field, rank 8 first.
func parsePlacement(placement string) (*Board, error) {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("need 8 ranks, got %d: %w", len(ranks), ErrInvalidFEN)
	}

	var squares [64]Piece
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			if file > 7 {
				return nil, fmt.Errorf("too many squares in rank %d: %w", rank+1, ErrInvalidFEN)
			}
			c := rankStr[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			squares[NewSquare(file, rank)] = PieceFromChar(c)
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("rank %d has %d squares: %w", rank+1, file, ErrInvalidFEN)
		}
	}
	return FromSquares(squares), nil
}

// PlacementFEN returns the piece placement field for b.
func PlacementFEN(b *Board) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.At(NewSquare(file, rank))
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// ToFEN returns the FEN representation of the game state.
func (gs *GameState) ToFEN() string {
	var sb strings.Builder

	sb.WriteString(PlacementFEN(gs.board))

	sb.WriteByte(' ')
	if gs.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(gs.castling.String())

	sb.WriteByte(' ')
	sb.WriteString(gs.enPassant.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(gs.halfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(gs.fullMoveNumber))

	return sb.String()
}
