package engine

import (
	"errors"
	"fmt"

	"github.com/hailam/chessrules/internal/board"
)

// ErrNoLegalMoves is returned when a search is started on a finished game.
var ErrNoLegalMoves = errors.New("no legal moves")

// Searcher performs the alpha-beta search. Every explored move is applied to
// a clone of its parent, so sibling branches never share a board.
type Searcher struct {
	nodes uint64
	err   error
}

// NewSearcher creates a new searcher.
func NewSearcher() *Searcher {
	return &Searcher{}
}

// Reset clears the node count and any recorded error.
func (s *Searcher) Reset() {
	s.nodes = 0
	s.err = nil
}

// Nodes returns the number of nodes searched.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// Minimax returns the alpha-beta value of gs searched depth plies deep.
// White maximises. Mate, draw and depth 0 are scored statically.
func (s *Searcher) Minimax(gs *board.GameState, depth int, maximizing bool, alpha, beta int) int {
	s.nodes++
	if depth == 0 || gs.IsDraw() || gs.IsCheckmate() {
		return gs.Evaluate()
	}

	best := Infinity
	if maximizing {
		best = -Infinity
	}

	for _, m := range gs.LegalMoves().Moves() {
		child, err := gs.Child(m)
		if err != nil {
			s.fail(fmt.Errorf("apply %s: %w", m, err))
			continue
		}
		score := s.Minimax(child, depth-1, !maximizing, alpha, beta)

		if maximizing {
			best = max(best, score)
			alpha = max(alpha, score)
		} else {
			best = min(best, score)
			beta = min(beta, score)
		}
		if beta <= alpha {
			break
		}
	}
	return best
}

// SelectBestMove searches every root move depth plies deep and returns the
// best one with its score. The root never prunes; on equal scores the
// first move in generation order wins.
func (s *Searcher) SelectBestMove(gs *board.GameState, depth int) (board.Move, int, error) {
	moves := gs.LegalMoves().Moves()
	if len(moves) == 0 {
		return board.NoMove, gs.Evaluate(), ErrNoLegalMoves
	}
	if depth < 1 {
		depth = 1
	}

	maximizing := gs.SideToMove() == board.White
	alpha, beta := -Infinity, Infinity
	bestMove := board.NoMove
	bestScore := Infinity
	if maximizing {
		bestScore = -Infinity
	}

	for _, m := range moves {
		child, err := gs.Child(m)
		if err != nil {
			return board.NoMove, 0, fmt.Errorf("apply %s: %w", m, err)
		}
		score := s.Minimax(child, depth-1, !maximizing, alpha, beta)

		if maximizing && score > bestScore || !maximizing && score < bestScore || bestMove == board.NoMove {
			bestMove, bestScore = m, score
		}
		if maximizing {
			alpha = max(alpha, score)
		} else {
			beta = min(beta, score)
		}
	}

	if s.err != nil {
		return board.NoMove, 0, s.err
	}
	return bestMove, bestScore, nil
}

func (s *Searcher) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Minimax runs a fresh Searcher; see Searcher.Minimax.
func Minimax(gs *board.GameState, depth int, maximizing bool, alpha, beta int) int {
	return NewSearcher().Minimax(gs, depth, maximizing, alpha, beta)
}

// SelectBestMove runs a fresh Searcher; see Searcher.SelectBestMove.
func SelectBestMove(gs *board.GameState, depth int) (board.Move, int, error) {
	return NewSearcher().SelectBestMove(gs, depth)
}
