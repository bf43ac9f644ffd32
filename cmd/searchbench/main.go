package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/rs/zerolog/log"

	"github.com/kz4killua/chess-ai/config"
	"github.com/kz4killua/chess-ai/engine"
	"github.com/kz4killua/chess-ai/position"
)

func main() {
	depthFlag := flag.Int("depth", 4, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	fenFlag := flag.String("fen", position.StartFEN, "FEN to search")
	exhaustive := flag.Bool("exhaustive", false, "disable alpha-beta pruning")
	profMode := flag.String("profile", "", "profile the run: cpu or mem")
	profDir := flag.String("profile-dir", ".", "directory for profile output")
	flag.Parse()

	config.SetupLogging(config.LogConfig{Style: "console", Level: os.Getenv("LOG_LEVEL")}, os.Stderr)

	if *depthFlag < 0 {
		log.Fatal().Int("depth", *depthFlag).Msg("depth-must-not-be-negative")
	}

	switch *profMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*profDir), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(*profDir), profile.Quiet).Stop()
	default:
		log.Fatal().Str("profile", *profMode).Msg("unknown-profile-mode")
	}

	var opts []engine.Option
	if *exhaustive {
		opts = append(opts, engine.WithoutPruning())
	}

	fmt.Printf("searchbench: fen=%q depth=%d repeat=%d exhaustive=%v\n", *fenFlag, *depthFlag, *repeatFlag, *exhaustive)

	var totalNodes uint64
	startAll := time.Now()
	for i := 0; i < *repeatFlag; i++ {
		// Fresh position and engine for each run
		board, err := position.FromFEN(*fenFlag)
		if err != nil {
			log.Fatal().Err(err).Msg("bad-fen")
		}
		eng := engine.New(opts...)

		iterStart := time.Now()
		move, score, err := eng.RecommendMove(board, *depthFlag)
		if err != nil {
			log.Fatal().Err(err).Msg("search-failed")
		}
		iterElapsed := time.Since(iterStart)
		stats := eng.Stats()
		totalNodes += stats.Nodes

		fmt.Printf("iteration %d: bestmove %s score %d %s time=%v\n", i+1, move.String(), score, stats, iterElapsed)
	}
	totalElapsed := time.Since(startAll)
	nps := float64(totalNodes) / totalElapsed.Seconds()
	fmt.Printf("total time: %v nodes: %d nps: %.0f\n", totalElapsed, totalNodes, nps)
}
