// Package console implements a line-oriented text protocol for driving the
// rules engine: setting up positions, listing and playing moves, searching,
// perft, and games against the engine.
package console

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/engine"
	"github.com/hailam/chessrules/internal/storage"
)

// Console reads commands from an io.Reader and writes replies to an io.Writer.
type Console struct {
	engine  *engine.Engine
	game    *board.GameState
	root    *board.GameState // game before the first move of history
	history []board.Move
	store   *storage.Storage // nil when running without a database
	prefs   *storage.Preferences

	in  io.Reader
	out io.Writer

	// Game against the engine
	playing bool
	human   board.Color
	started time.Time
}

// New creates a console. store may be nil.
func New(eng *engine.Engine, store *storage.Storage, in io.Reader, out io.Writer) *Console {
	c := &Console{
		engine: eng,
		store:  store,
		prefs:  storage.DefaultPreferences(),
		in:     in,
		out:    out,
	}
	if store != nil {
		prefs, err := store.LoadPreferences()
		if err != nil {
			log.Printf("load preferences: %v", err)
		} else {
			c.prefs = prefs
		}
	}
	c.applyPreferences()
	c.SetGame(board.StartingPosition())
	return c
}

// applyPreferences configures the engine from the loaded preferences.
func (c *Console) applyPreferences() {
	if d, err := engine.ParseDifficulty(c.prefs.Difficulty); err == nil {
		c.engine.SetDifficulty(d)
	}
	if c.prefs.Depth > 0 {
		c.engine.SetDepth(c.prefs.Depth)
	}
}

func (c *Console) savePreferences() {
	if c.store == nil {
		return
	}
	if err := c.store.SavePreferences(c.prefs); err != nil {
		log.Printf("save preferences: %v", err)
	}
}

// Game returns the current game state.
func (c *Console) Game() *board.GameState {
	return c.game
}

// SetGame replaces the current game state and leaves any game in progress.
func (c *Console) SetGame(gs *board.GameState) {
	c.game = gs
	c.root = gs.Clone()
	c.history = nil
	c.playing = false
}

// play applies m to the current game and appends it to the history.
func (c *Console) play(m board.Move) error {
	if err := c.game.Play(m); err != nil {
		return err
	}
	c.history = append(c.history, m)
	return nil
}

// Run processes commands until "quit" or end of input.
func (c *Console) Run() error {
	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		if !c.Execute(scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

// Execute runs a single command line. It returns false after "quit".
func (c *Console) Execute(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "new":
		c.SetGame(board.StartingPosition())
		c.showBoard()
	case "position":
		c.handlePosition(args)
	case "d":
		fmt.Fprint(c.out, c.game.String())
	case "fen":
		fmt.Fprintln(c.out, c.game.ToFEN())
	case "moves":
		c.handleMoves()
	case "move":
		c.handleMove(args)
	case "history":
		c.handleHistory()
	case "go":
		c.handleGo(args)
	case "eval":
		fmt.Fprintf(c.out, "eval %s\n", engine.ScoreToString(c.engine.Evaluate(c.game)))
	case "perft":
		c.handlePerft(args)
	case "divide":
		c.handleDivide(args)
	case "depth":
		c.handleDepth(args)
	case "difficulty":
		c.handleDifficulty(args)
	case "play":
		c.handlePlay(args)
	case "stats":
		c.handleStats()
	case "help":
		fmt.Fprint(c.out, helpText)
	case "quit", "exit":
		return false
	default:
		c.errorf("unknown command %q (try help)", cmd)
	}
	return true
}

const helpText = `commands:
  new                               start a new game
  position startpos|fen <fen> [moves <uci>...]
  d                                 show the board
  fen                               print the FEN
  moves                             list legal moves
  move <uci|san>                    play a move
  history                           moves played in SAN
  go [depth N]                      search for the best move
  eval                              static evaluation
  perft N / divide N                count leaf nodes
  depth N                           set the search depth
  difficulty easy|medium|hard       set the engine strength
  play white|black                  play a game against the engine
  stats                             show game statistics
  quit
`

func (c *Console) errorf(format string, args ...any) {
	fmt.Fprintf(c.out, "error: "+format+"\n", args...)
}

func (c *Console) showBoard() {
	if c.prefs.ShowBoard {
		fmt.Fprint(c.out, c.game.String())
	}
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
func (c *Console) handlePosition(args []string) {
	if len(args) == 0 {
		c.errorf("position needs startpos or fen")
		return
	}

	movesAt := len(args)
	for i, arg := range args {
		if arg == "moves" {
			movesAt = i
			break
		}
	}

	var gs *board.GameState
	switch args[0] {
	case "startpos":
		gs = board.StartingPosition()
	case "fen":
		var err error
		gs, err = board.FromFEN(strings.Join(args[1:movesAt], " "))
		if err != nil {
			c.errorf("%v", err)
			return
		}
	default:
		c.errorf("position needs startpos or fen")
		return
	}

	root := gs.Clone()
	var history []board.Move
	if movesAt < len(args) {
		for _, s := range args[movesAt+1:] {
			m, err := board.ParseMove(s, gs)
			if err == nil {
				err = gs.Play(m)
			}
			if err != nil {
				c.errorf("%v", err)
				return
			}
			history = append(history, m)
		}
	}
	c.SetGame(gs)
	c.root, c.history = root, history
}

func (c *Console) handleHistory() {
	var sb strings.Builder
	for i, san := range board.MovesToSAN(c.root, c.history) {
		ply := i
		if c.root.SideToMove() == board.Black {
			ply++
		}
		switch {
		case ply%2 == 0:
			fmt.Fprintf(&sb, "%d. ", c.root.FullMoveNumber()+ply/2)
		case i == 0:
			fmt.Fprintf(&sb, "%d... ", c.root.FullMoveNumber())
		}
		sb.WriteString(san)
		sb.WriteByte(' ')
	}
	fmt.Fprintln(c.out, strings.TrimSpace(sb.String()))
}

func (c *Console) handleMoves() {
	moves := c.game.LegalMoves().Moves()
	var sb strings.Builder
	for i, m := range moves {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s(%s)", m, board.FormatSAN(c.game, m))
	}
	fmt.Fprintf(c.out, "%d moves: %s\n", len(moves), sb.String())
}

// parseMove accepts UCI or SAN.
func (c *Console) parseMove(s string) (board.Move, error) {
	m, err := board.ParseMove(s, c.game)
	if err == nil {
		return m, nil
	}
	if m, sanErr := board.ParseSAN(s, c.game); sanErr == nil {
		return m, nil
	}
	return board.NoMove, err
}

func (c *Console) handleMove(args []string) {
	if len(args) != 1 {
		c.errorf("usage: move <uci|san>")
		return
	}
	if c.game.IsGameOver() {
		c.errorf("the game is over")
		return
	}
	if c.playing && c.game.SideToMove() != c.human {
		c.errorf("not your move")
		return
	}

	m, err := c.parseMove(args[0])
	if err != nil {
		c.errorf("%v", err)
		return
	}
	san := board.FormatSAN(c.game, m)
	if err := c.play(m); err != nil {
		c.errorf("%v", err)
		return
	}
	fmt.Fprintf(c.out, "played %s (%s)\n", m, san)

	if c.playing && !c.game.IsGameOver() {
		c.engineReply()
	}
	c.showBoard()
	c.checkGameOver()
}

// engineReply lets the engine play one move for the side to move.
func (c *Console) engineReply() {
	m, err := c.engine.Search(c.game)
	if err != nil {
		c.errorf("search: %v", err)
		return
	}
	san := board.FormatSAN(c.game, m)
	if err := c.play(m); err != nil {
		c.errorf("engine move %s: %v", m, err)
		return
	}
	fmt.Fprintf(c.out, "engine plays %s (%s)\n", m, san)
}

func (c *Console) handleGo(args []string) {
	limits := c.engine.Limits()
	for i := 0; i+1 < len(args); i++ {
		if args[i] == "depth" {
			d, err := strconv.Atoi(args[i+1])
			if err != nil || d < 1 {
				c.errorf("invalid depth %q", args[i+1])
				return
			}
			limits.Depth = d
		}
	}

	c.engine.OnInfo = c.sendInfo
	defer func() { c.engine.OnInfo = nil }()

	m, err := c.engine.SearchWithLimits(c.game, limits)
	if err != nil {
		fmt.Fprintln(c.out, "bestmove (none)")
		return
	}
	fmt.Fprintf(c.out, "bestmove %s\n", m)
}

func (c *Console) sendInfo(info engine.SearchInfo) {
	parts := []string{
		fmt.Sprintf("depth %d", info.Depth),
		"score " + engine.ScoreToString(info.Score),
		fmt.Sprintf("nodes %d", info.Nodes),
		fmt.Sprintf("time %d", info.Time.Milliseconds()),
	}
	if info.Time > 0 {
		nps := uint64(float64(info.Nodes) / info.Time.Seconds())
		parts = append(parts, fmt.Sprintf("nps %d", nps))
	}
	parts = append(parts, "pv "+info.Move.String())
	fmt.Fprintf(c.out, "info %s\n", strings.Join(parts, " "))
}

func (c *Console) depthArg(args []string) (int, bool) {
	if len(args) != 1 {
		c.errorf("expected a depth")
		return 0, false
	}
	d, err := strconv.Atoi(args[0])
	if err != nil || d < 0 {
		c.errorf("invalid depth %q", args[0])
		return 0, false
	}
	return d, true
}

func (c *Console) handlePerft(args []string) {
	depth, ok := c.depthArg(args)
	if !ok {
		return
	}

	start := time.Now()
	nodes, err := c.engine.Perft(c.game, depth)
	elapsed := time.Since(start)
	if err != nil {
		c.errorf("perft: %v", err)
		return
	}

	fmt.Fprintf(c.out, "Nodes: %d\n", nodes)
	fmt.Fprintf(c.out, "Time: %v\n", elapsed)
	if elapsed > 0 {
		fmt.Fprintf(c.out, "NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
}

func (c *Console) handleDivide(args []string) {
	depth, ok := c.depthArg(args)
	if !ok {
		return
	}
	if depth < 1 {
		c.errorf("divide needs a depth of at least 1")
		return
	}

	entries, err := c.engine.Divide(c.game, depth)
	if err != nil {
		c.errorf("divide: %v", err)
		return
	}
	var total uint64
	for _, e := range entries {
		fmt.Fprintf(c.out, "%s: %d\n", e.Move, e.Nodes)
		total += e.Nodes
	}
	fmt.Fprintf(c.out, "\nNodes: %d\n", total)
}

func (c *Console) handleDepth(args []string) {
	depth, ok := c.depthArg(args)
	if !ok {
		return
	}
	if depth < 1 {
		c.errorf("depth must be at least 1")
		return
	}
	c.engine.SetDepth(depth)
	c.prefs.Depth = depth
	c.savePreferences()
	fmt.Fprintf(c.out, "depth %d\n", depth)
}

func (c *Console) handleDifficulty(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(c.out, "difficulty %s\n", c.engine.Difficulty())
		return
	}
	d, err := engine.ParseDifficulty(args[0])
	if err != nil {
		c.errorf("%v", err)
		return
	}
	c.engine.SetDifficulty(d)
	c.prefs.Difficulty = d.String()
	c.prefs.Depth = 0
	c.savePreferences()
	fmt.Fprintf(c.out, "difficulty %s (depth %d)\n", d, c.engine.Limits().Depth)
}

func (c *Console) handlePlay(args []string) {
	color := c.prefs.PlayerColor
	if len(args) > 0 {
		color = strings.ToLower(args[0])
	}
	switch color {
	case "white":
		c.human = board.White
	case "black":
		c.human = board.Black
	default:
		c.errorf("usage: play white|black")
		return
	}
	c.prefs.PlayerColor = color
	c.savePreferences()

	c.SetGame(board.StartingPosition())
	c.playing = true
	c.started = time.Now()
	fmt.Fprintf(c.out, "new game: you play %s at %s\n", c.human, c.engine.Difficulty())

	if c.human == board.Black {
		c.engineReply()
	}
	c.showBoard()
}

// checkGameOver reports a finished game and records it when it was played
// against the engine.
func (c *Console) checkGameOver() {
	if !c.game.IsGameOver() {
		return
	}

	var result storage.Result
	if c.game.IsCheckmate() {
		winner := c.game.SideToMove().Other()
		fmt.Fprintf(c.out, "checkmate, %s wins\n", winner)
		result = storage.Loss
		if winner == c.human {
			result = storage.Win
		}
	} else {
		fmt.Fprintln(c.out, "draw")
		result = storage.Draw
	}

	if !c.playing {
		return
	}
	c.playing = false
	if c.store == nil {
		return
	}
	_, err := c.store.RecordGame(storage.GameResult{
		Result:     result,
		Difficulty: c.engine.Difficulty().String(),
		Duration:   time.Since(c.started),
	})
	if err != nil {
		log.Printf("record game: %v", err)
	}
}

func (c *Console) handleStats() {
	if c.store == nil {
		c.errorf("statistics need a database")
		return
	}
	stats, err := c.store.LoadStats()
	if err != nil {
		c.errorf("%v", err)
		return
	}
	fmt.Fprintf(c.out, "%s: %d games, %d wins, %d losses, %d draws (%.0f%%), best streak %d\n",
		c.prefs.Username, stats.GamesPlayed, stats.Wins, stats.Losses, stats.Draws,
		stats.WinRate(), stats.LongestWinStrk)
}
