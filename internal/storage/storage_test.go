package storage

import (
	"os"
	"testing"
	"time"

	"github.com/hailam/chessrules/internal/testutil"
)

func openMemory(t *testing.T) *Storage {
	t.Helper()
	s, err := Open(Options{InMemory: true})
	testutil.RequireNoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPreferences(t *testing.T) {
	s := openMemory(t)

	prefs, err := s.LoadPreferences()
	testutil.RequireNoError(t, err)
	testutil.AssertEqual(t, prefs.Username, "Player")
	testutil.AssertEqual(t, prefs.Difficulty, "medium")
	testutil.AssertTrue(t, prefs.ShowBoard, "board shown by default")

	prefs.Username = "alice"
	prefs.Depth = 5
	prefs.PlayerColor = "black"
	testutil.RequireNoError(t, s.SavePreferences(prefs))
	testutil.AssertFalse(t, prefs.LastPlayed.IsZero(), "LastPlayed not stamped")

	got, err := s.LoadPreferences()
	testutil.RequireNoError(t, err)
	testutil.AssertEqual(t, got.Username, "alice")
	testutil.AssertEqual(t, got.Depth, 5)
	testutil.AssertEqual(t, got.PlayerColor, "black")
}

func TestRecordGame(t *testing.T) {
	s := openMemory(t)

	stats, err := s.LoadStats()
	testutil.RequireNoError(t, err)
	testutil.AssertEqual(t, stats.GamesPlayed, 0)
	testutil.AssertEqual(t, stats.WinRate(), 0.0)

	results := []Result{Win, Win, Draw, Win, Loss}
	for _, r := range results {
		_, err := s.RecordGame(GameResult{Result: r, Difficulty: "hard", Duration: time.Minute})
		testutil.RequireNoError(t, err)
	}

	stats, err = s.LoadStats()
	testutil.RequireNoError(t, err)
	testutil.AssertEqual(t, stats.GamesPlayed, 5)
	testutil.AssertEqual(t, stats.Wins, 3)
	testutil.AssertEqual(t, stats.Draws, 1)
	testutil.AssertEqual(t, stats.Losses, 1)
	testutil.AssertEqual(t, stats.LongestWinStrk, 2)
	testutil.AssertEqual(t, stats.CurrentStreak, 0)
	testutil.AssertEqual(t, stats.WinsByDiff["hard"], 3)
	testutil.AssertEqual(t, stats.TotalPlayTime, 5*time.Minute)
	testutil.AssertEqual(t, stats.WinRate(), 60.0)
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewStorage(dir)
	testutil.RequireNoError(t, err)
	_, err = s.RecordGame(GameResult{Result: Win, Difficulty: "easy"})
	testutil.RequireNoError(t, err)
	testutil.RequireNoError(t, s.Close())

	s, err = NewStorage(dir)
	testutil.RequireNoError(t, err)
	defer s.Close()
	stats, err := s.LoadStats()
	testutil.RequireNoError(t, err)
	testutil.AssertEqual(t, stats.Wins, 1)
}

func TestOpenRequiresDir(t *testing.T) {
	_, err := Open(Options{})
	testutil.AssertTrue(t, err != nil, "expected an error for an empty directory")
}

func TestDataPaths(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	dataDir, err := GetDataDir()
	testutil.RequireNoError(t, err)
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		t.Errorf("data directory was not created: %s", dataDir)
	}

	dbDir, err := DatabaseDir("")
	testutil.RequireNoError(t, err)
	if _, err := os.Stat(dbDir); err != nil {
		t.Errorf("database directory was not created: %v", err)
	}
}

func TestResultString(t *testing.T) {
	testutil.AssertEqual(t, Win.String(), "win")
	testutil.AssertEqual(t, Draw.String(), "draw")
	testutil.AssertEqual(t, Loss.String(), "loss")
}
