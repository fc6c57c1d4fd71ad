// Package engine implements move selection: the static evaluation, the
// minimax search and the Engine wrapper used by the console.
package engine

import (
	"fmt"

	"github.com/hailam/chessrules/internal/board"
)

// Evaluation constants
const (
	MateScore = board.MateScore
	Infinity  = MateScore + 1
)

// Evaluate returns the static evaluation of gs from White's point of view.
// Material only: pawn 1, knight 3, bishop 3, rook 5, queen 9.
func Evaluate(gs *board.GameState) int {
	return gs.Evaluate()
}

// IsMateScore reports whether score marks a mated side.
func IsMateScore(score int) bool {
	return score >= MateScore || score <= -MateScore
}

// ScoreToString converts a score to a human-readable string.
func ScoreToString(score int) string {
	switch {
	case !IsMateScore(score):
		return fmt.Sprintf("%+d", score)
	case score > 0:
		return "White mates"
	}
	return "Black mates"
}
