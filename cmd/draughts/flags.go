// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lgbarn/draughts-go/internal/config"
	"github.com/lgbarn/draughts-go/internal/draughts"
	"github.com/lgbarn/draughts-go/internal/errors"
)

var (
	// Match rules
	noKings        = flag.Bool("nokings", false, "Men are never crowned")
	crownContinues = flag.Bool("crowncontinues", false, "A man crowned during a capture chain keeps capturing")
	firstMover     = flag.String("first", "red", "Side that moves first in replays: red or black (online play opens with red)")

	// Online play (env fallbacks DRAUGHTS_ADDR, DRAUGHTS_TEAM)
	listenAddr  = flag.String("listen", "", "Host a match on this address")
	connectAddr = flag.String("connect", getenv("DRAUGHTS_ADDR", ""), "Join the match hosted at this address")
	team        = flag.String("team", getenv("DRAUGHTS_TEAM", "red"), "Side the host plays; a joiner is told its side")
	inboxSize   = flag.Int("inbox", config.DefaultInboxCapacity, "Inbound records buffered before the oldest is dropped")
	dialTimeout = flag.Duration("dialtimeout", 5*time.Second, "How long a joiner waits for the host")

	// Replay
	workers            = flag.Int("workers", 0, "Number of worker threads (0 = auto-detect based on CPU cores)")
	bufferSize         = flag.Int("buffer", 0, "Work queue size (0 = twice the worker count)")
	jsonOutput         = flag.Bool("J", false, "Output in JSON format")
	jsonLines          = flag.Bool("jl", false, "Output one JSON document per game as it finishes")
	stopOnError        = flag.Bool("stop", false, "Stop at the first game with an illegal move")
	showBoard          = flag.Bool("board", false, "Print the final position of every game")
	suppressDuplicates = flag.Bool("D", false, "Suppress games ending in an already seen position")
	duplicateCapacity  = flag.Int("duplicate-capacity", 0, "Maximum duplicate hash table entries (0 = unlimited)")

	// Game selection
	materialMatch      = flag.String("z", "", "Material reached at some turn, at least (e.g. 'rrR:bb')")
	materialMatchExact = flag.String("y", "", "Material reached at some turn, exactly")
	resultFilter       = flag.String("Tr", "", "Filter by result: red, black or none")
	minPly             = flag.Int("minply", 0, "Minimum number of moves played")
	maxPly             = flag.Int("maxply", 0, "Maximum number of moves played (0 = no limit)")
	minChain           = flag.Int("minchain", 0, "Longest capture chain at least this many jumps")
	repetitionFilter   = flag.Bool("repetition", false, "Games with a position repeated three times")
	promotionFilter    = flag.Bool("promotion", false, "Games in which a man was crowned")
	blockedFilter      = flag.Bool("blocked", false, "Games ending with the side to move unable to move")
	negateMatch        = flag.Bool("n", false, "Output games that DON'T match criteria")

	// Output and logging
	outputFile = flag.String("o", "", "Output file (default: stdout)")
	logFile    = flag.String("l", "", "Write diagnostics to log file")
	verbose    = flag.Bool("v", false, "Log every record exchanged and every replayed ply")

	// Other options
	quiet   = flag.Bool("s", false, "Silent mode (no summary)")
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration and validates
// the result.
func applyFlags(cfg *config.Config) error {
	if err := applyMatchFlags(cfg); err != nil {
		return err
	}
	if err := applyNetworkFlags(cfg); err != nil {
		return err
	}
	applyReplayFlags(cfg)

	switch {
	case *quiet:
		cfg.Verbosity = config.Silent
	case *verbose:
		cfg.Verbosity = config.Commentary
	}
	return cfg.Validate()
}

// applyMatchFlags configures the rule variants.
func applyMatchFlags(cfg *config.Config) error {
	side, ok := draughts.ParseSide(*firstMover)
	if !ok {
		return fmt.Errorf("-first %q is not red or black: %w", *firstMover, errors.ErrInvalidConfig)
	}
	cfg.Match.FirstMover = side
	cfg.Match.PromoteKings = !*noKings
	cfg.Match.PromotionEndsChain = cfg.Match.PromoteKings && !*crownContinues
	return nil
}

// applyNetworkFlags configures online play. -listen wins over -connect so
// that DRAUGHTS_ADDR does not get in the way of hosting.
func applyNetworkFlags(cfg *config.Config) error {
	side, ok := draughts.ParseSide(*team)
	if !ok {
		return fmt.Errorf("-team %q is not red or black: %w", *team, errors.ErrInvalidConfig)
	}
	cfg.Network.Team = side
	cfg.Network.InboxCapacity = *inboxSize
	cfg.Network.DialTimeout = *dialTimeout

	switch {
	case *listenAddr != "":
		cfg.Network.Address = *listenAddr
		cfg.Network.Host = true
	case *connectAddr != "":
		cfg.Network.Address = *connectAddr
		cfg.Network.Host = false
	}
	return nil
}

// applyReplayFlags configures the replay worker pool and output format.
func applyReplayFlags(cfg *config.Config) {
	if *workers > 0 {
		cfg.Replay.Workers = *workers
	}
	cfg.Replay.BufferSize = *bufferSize
	cfg.Replay.JSONFormat = *jsonOutput || *jsonLines
	cfg.Replay.JSONLines = *jsonLines
	cfg.Replay.StopOnError = *stopOnError
	cfg.Replay.ShowBoard = *showBoard
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
