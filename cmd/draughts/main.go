// draughts replays recorded checkers games and plays checkers matches
// against a peer over TCP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/lgbarn/draughts-go/internal/config"
	"github.com/lgbarn/draughts-go/internal/hashing"
	"github.com/lgbarn/draughts-go/internal/matching"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("draughts-go version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	if err := applyFlags(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Set up logging and output files
	setupLogFile(cfg)
	setupOutputFile(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	var err error
	if cfg.Network.Address != "" {
		err = runOnline(ctx, cfg, os.Stdin)
	} else {
		var matcher matching.GameMatcher
		matcher, err = setupGameMatcher()
		if err == nil {
			rc := &replayContext{
				cfg:      cfg,
				detector: hashing.NewThreadSafeDuplicateDetector(false, *duplicateCapacity),
				matcher:  matcher,
			}
			err = runReplay(rc, flag.Args())
		}
	}
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile == "" {
		return
	}
	file, err := os.Create(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.SetLog(file)
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if *outputFile == "" {
		return
	}
	file, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.SetOutput(file)
}

// setupGameMatcher builds the selection criteria from the flags. It returns
// nil when no criterion is set.
func setupGameMatcher() (matching.GameMatcher, error) {
	outcome, err := matching.ParseOutcome(*resultFilter)
	if err != nil {
		return nil, err
	}
	filter := matching.NewGameFilter()
	filter.Outcome = outcome
	filter.MinTurns = *minPly
	filter.MaxTurns = *maxPly
	filter.MinChain = *minChain
	filter.Repetition = *repetitionFilter
	filter.Promotion = *promotionFilter
	filter.Blocked = *blockedFilter

	all := matching.NewCompositeMatcher(matching.MatchAll)
	if filter.HasCriteria() {
		all.Add(filter)
	}
	for _, m := range []struct {
		pattern string
		exact   bool
	}{{*materialMatch, false}, {*materialMatchExact, true}} {
		if m.pattern == "" {
			continue
		}
		mm, err := matching.NewMaterialMatcher(m.pattern, m.exact)
		if err != nil {
			return nil, err
		}
		all.Add(mm)
	}

	if all.Len() == 0 {
		return nil, nil
	}
	if *negateMatch {
		return matching.Invert{Inner: all}, nil
	}
	return all, nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: draughts [options] [game-files...]\n")
	fmt.Fprintf(os.Stderr, "       draughts -listen addr [options]\n")
	fmt.Fprintf(os.Stderr, "       draughts -connect addr [options]\n\n")
	fmt.Fprintf(os.Stderr, "Replays checkers games written one per line (9-13 22-18 15x22 ...),\n")
	fmt.Fprintf(os.Stderr, "or plays a match against a peer over TCP.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nOnline commands:\n")
	fmt.Fprintf(os.Stderr, "  9-13      move a piece\n")
	fmt.Fprintf(os.Stderr, "  15x22x31  capture, one or more jumps\n")
	fmt.Fprintf(os.Stderr, "  board     show the position\n")
	fmt.Fprintf(os.Stderr, "  json      print the position as JSON\n")
	fmt.Fprintf(os.Stderr, "  quit      leave the match\n")
}
