// Command chessrules is an interactive console for the chess rules engine.
package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/console"
	"github.com/hailam/chessrules/internal/engine"
	"github.com/hailam/chessrules/internal/storage"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	depth      = flag.Int("depth", 0, "search depth in plies (0 uses the saved difficulty)")
	fen        = flag.String("fen", "", "start from this FEN instead of the initial position")
	dataDir    = flag.String("data", "", "data directory (default: platform data dir)")
	noDB       = flag.Bool("nodb", false, "run without persistent preferences and statistics")
)

func main() {
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("chessrules: ")

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	var store *storage.Storage
	if !*noDB {
		var err error
		store, err = storage.NewStorage(*dataDir)
		if err != nil {
			log.Printf("Warning: storage not available: %v (preferences will not be saved)", err)
		} else {
			defer store.Close()
		}
	}

	eng := engine.NewEngine()
	c := console.New(eng, store, os.Stdin, os.Stdout)
	if *depth > 0 {
		eng.SetDepth(*depth)
	}
	if *fen != "" {
		gs, err := board.FromFEN(*fen)
		if err != nil {
			log.Fatal(err)
		}
		c.SetGame(gs)
	}

	if err := c.Run(); err != nil {
		log.Printf("read input: %v", err)
	}
}
