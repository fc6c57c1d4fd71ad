package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/hailam/chessrules/internal/board"
)

// SearchInfo contains information about a finished search.
type SearchInfo struct {
	Depth int
	Score int
	Nodes uint64
	Time  time.Duration
	Move  board.Move
}

// SearchLimits specifies constraints on the search.
type SearchLimits struct {
	Depth int // plies searched from the root
}

// Difficulty represents the engine strength.
type Difficulty int

const (
	Easy   Difficulty = iota // 2 ply
	Medium                   // 3 ply
	Hard                     // 4 ply
)

// DifficultySettings maps difficulty to search limits.
var DifficultySettings = map[Difficulty]SearchLimits{
	Easy:   {Depth: 2},
	Medium: {Depth: 3},
	Hard:   {Depth: 4},
}

// String returns the lower-case difficulty name.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return fmt.Sprintf("difficulty(%d)", int(d))
}

// ParseDifficulty parses "easy", "medium" or "hard".
func ParseDifficulty(s string) (Difficulty, error) {
	for d := range DifficultySettings {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return Medium, fmt.Errorf("unknown difficulty %q", s)
}

// Engine selects moves for a game state.
type Engine struct {
	searcher   *Searcher
	difficulty Difficulty
	depth      int // overrides the difficulty when > 0

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates an engine at Medium difficulty.
func NewEngine() *Engine {
	return &Engine{
		searcher:   NewSearcher(),
		difficulty: Medium,
	}
}

// SetDifficulty sets the engine difficulty and drops any explicit depth.
func (e *Engine) SetDifficulty(d Difficulty) {
	e.difficulty = d
	e.depth = 0
}

// Difficulty returns the configured difficulty.
func (e *Engine) Difficulty() Difficulty {
	return e.difficulty
}

// SetDepth fixes the search depth, overriding the difficulty.
func (e *Engine) SetDepth(depth int) {
	e.depth = depth
}

// Limits returns the limits Search will use.
func (e *Engine) Limits() SearchLimits {
	if e.depth > 0 {
		return SearchLimits{Depth: e.depth}
	}
	return DifficultySettings[e.difficulty]
}

// Search finds the best move for the given game state.
func (e *Engine) Search(gs *board.GameState) (board.Move, error) {
	return e.SearchWithLimits(gs, e.Limits())
}

// SearchWithLimits finds the best move with specific search limits.
func (e *Engine) SearchWithLimits(gs *board.GameState, limits SearchLimits) (board.Move, error) {
	e.searcher.Reset()
	startTime := time.Now()

	move, score, err := e.searcher.SelectBestMove(gs, limits.Depth)
	if err != nil {
		return board.NoMove, err
	}

	if e.OnInfo != nil {
		e.OnInfo(SearchInfo{
			Depth: limits.Depth,
			Score: score,
			Nodes: e.searcher.Nodes(),
			Time:  time.Since(startTime),
			Move:  move,
		})
	}
	return move, nil
}

// Perft counts the leaf nodes depth plies below gs.
func (e *Engine) Perft(gs *board.GameState, depth int) (uint64, error) {
	if depth == 0 {
		return 1, nil
	}

	moves := gs.LegalMoves().Moves()
	if depth == 1 {
		return uint64(len(moves)), nil
	}

	var nodes uint64
	for _, m := range moves {
		child, err := gs.Child(m)
		if err != nil {
			return nodes, fmt.Errorf("apply %s: %w", m, err)
		}
		n, err := e.Perft(child, depth-1)
		nodes += n
		if err != nil {
			return nodes, err
		}
	}
	return nodes, nil
}

// DivideEntry is the perft count below one root move.
type DivideEntry struct {
	Move  board.Move
	Nodes uint64
}

// Divide returns the perft count below each root move in generation order.
func (e *Engine) Divide(gs *board.GameState, depth int) ([]DivideEntry, error) {
	var out []DivideEntry
	for _, m := range gs.LegalMoves().Moves() {
		child, err := gs.Child(m)
		if err != nil {
			return out, fmt.Errorf("apply %s: %w", m, err)
		}
		nodes := uint64(1)
		if depth > 1 {
			if nodes, err = e.Perft(child, depth-1); err != nil {
				return out, err
			}
		}
		out = append(out, DivideEntry{Move: m, Nodes: nodes})
	}
	return out, nil
}

// Evaluate returns the static evaluation of a game state.
func (e *Engine) Evaluate(gs *board.GameState) int {
	return Evaluate(gs)
}
