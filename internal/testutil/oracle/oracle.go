// Package oracle cross-checks the rules engine against independent move
// generators: dragontoothmg for move sets and perft counts, notnil/chess for
// move sets and algebraic notation.
package oracle

import (
	"fmt"
	"sort"

	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"

	"github.com/hailam/chessrules/internal/board"
)

// Moves returns the legal moves of gs as sorted UCI strings.
func Moves(gs *board.GameState) []string {
	var out []string
	for _, m := range gs.LegalMoves().Moves() {
		out = append(out, m.String())
	}
	sort.Strings(out)
	return out
}

// DragontoothMoves returns the legal moves of fen according to dragontoothmg.
func DragontoothMoves(fen string) []string {
	b := dragontoothmg.ParseFen(fen)
	var out []string
	for _, m := range b.GenerateLegalMoves() {
		out = append(out, m.String())
	}
	sort.Strings(out)
	return out
}

// DragontoothPerft counts the leaf nodes at depth from fen with dragontoothmg.
func DragontoothPerft(fen string, depth int) int64 {
	b := dragontoothmg.ParseFen(fen)
	return dragontoothPerft(&b, depth)
}

func dragontoothPerft(b *dragontoothmg.Board, depth int) int64 {
	moves := b.GenerateLegalMoves()
	if depth <= 1 {
		if depth == 0 {
			return 1
		}
		return int64(len(moves))
	}
	var nodes int64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += dragontoothPerft(b, depth-1)
		unapply()
	}
	return nodes
}

// NotnilMoves returns the legal moves of fen according to notnil/chess.
func NotnilMoves(fen string) ([]string, error) {
	game, err := notnilGame(fen)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, m := range game.ValidMoves() {
		out = append(out, m.String())
	}
	sort.Strings(out)
	return out, nil
}

// NotnilSAN writes the UCI move uci, played from fen, in algebraic notation.
func NotnilSAN(fen, uci string) (string, error) {
	game, err := notnilGame(fen)
	if err != nil {
		return "", err
	}
	// Only moves from ValidMoves carry the check and mate tags the encoder
	// needs for "+" and "#".
	for _, m := range game.ValidMoves() {
		if m.String() == uci {
			return chess.AlgebraicNotation{}.Encode(game.Position(), m), nil
		}
	}
	return "", fmt.Errorf("move %s is not legal in %q", uci, fen)
}

// IsLegal reports whether notnil/chess accepts the UCI move uci from fen.
func IsLegal(fen, uci string) (bool, error) {
	moves, err := NotnilMoves(fen)
	if err != nil {
		return false, err
	}
	i := sort.SearchStrings(moves, uci)
	return i < len(moves) && moves[i] == uci, nil
}

func notnilGame(fen string) (*chess.Game, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("fen %q: %w", fen, err)
	}
	return chess.NewGame(opt), nil
}
