// Package processing replays recorded games through the rule engine and
// analyzes them.
package processing

import (
	"fmt"

	"github.com/lgbarn/draughts-go/internal/config"
	"github.com/lgbarn/draughts-go/internal/draughts"
	"github.com/lgbarn/draughts-go/internal/engine"
	"github.com/lgbarn/draughts-go/internal/errors"
	"github.com/lgbarn/draughts-go/internal/hashing"
	"github.com/lgbarn/draughts-go/internal/notation"
)

// RepetitionLimit is the number of occurrences of one position that marks a
// game as repeating.
const RepetitionLimit = 3

// Options controls how games are replayed.
type Options struct {
	Rules      engine.Rules
	FirstMover draughts.Side
	Setup      draughts.SetupProvider // nil means the standard opening
	File       string                 // source name for error context
}

// OptionsFromConfig builds replay options from the program configuration.
func OptionsFromConfig(cfg *config.Config, file string) Options {
	return Options{
		Rules: engine.Rules{
			PromoteKings:       cfg.Match.PromoteKings,
			PromotionEndsChain: cfg.Match.PromotionEndsChain,
		},
		FirstMover: cfg.Match.FirstMover,
		File:       file,
	}
}

// GameAnalysis holds analysis results from replaying a game.
type GameAnalysis struct {
	Snapshot     engine.Snapshot
	Turns        int // move tokens applied
	Captures     int
	Promotions   int
	LongestChain int // most jumps in a single turn
	MaxRepeats   int
	Blocked      bool // side to move has nothing legal at the end
	FinalHash    uint64
	Material     hashing.Material

	// MaterialTrail holds the material at every turn boundary, starting
	// with the initial position.
	MaterialTrail []hashing.Material

	// Err is a *errors.GameError describing the first move that could not
	// be played, or nil.
	Err error
}

// HasRepetition reports whether some position occurred RepetitionLimit
// times at a turn boundary.
func (ga *GameAnalysis) HasRepetition() bool {
	return ga.MaxRepeats >= RepetitionLimit
}

// Signature returns the duplicate-detection signature of the final position.
func (ga *GameAnalysis) Signature() hashing.GameSignature {
	return hashing.GameSignature{Hash: ga.FinalHash, Plies: ga.Snapshot.Plies, Weak: ga.Material}
}

// AnalyzeGame replays a game on a fresh match and analyzes it. Replay stops
// at the first move the match rejects.
func AnalyzeGame(game notation.Game, opts Options) *GameAnalysis {
	analysis := &GameAnalysis{}

	setup := opts.Setup
	if setup == nil {
		setup = draughts.NewStandardSetup()
	}
	m, err := engine.NewMatch(setup,
		engine.WithRules(opts.Rules),
		engine.WithFirstMover(opts.FirstMover),
		engine.WithID(fmt.Sprintf("%s#%d", opts.File, game.Index)),
	)
	if err != nil {
		analysis.Err = &errors.GameError{Err: err, GameNum: game.Index, File: opts.File, Line: game.Line}
		return analysis
	}
	m.DrainEvents()

	repeats := hashing.NewRepetitionTracker()
	start := m.BoardCopy()
	repeats.Add(hashing.GenerateZobristHash(start, m.SideToMove()))
	analysis.MaterialTrail = append(analysis.MaterialTrail, hashing.WeakHash(start))

	for i, mv := range game.Moves {
		if err := notation.Apply(m, engine.Local, mv); err != nil {
			analysis.Err = &errors.GameError{
				Err:      err,
				GameNum:  game.Index,
				PlyNum:   i + 1,
				MoveText: moveText(game, i),
				File:     opts.File,
				Line:     game.Line,
			}
			break
		}
		analysis.Turns++

		jumps := 0
		for _, e := range m.DrainEvents() {
			switch e.Kind {
			case engine.EventCaptured:
				jumps++
			case engine.EventPromoted:
				analysis.Promotions++
			}
		}
		analysis.Captures += jumps
		if jumps > analysis.LongestChain {
			analysis.LongestChain = jumps
		}

		if m.State() == engine.AwaitingSelection || m.IsGameOver() {
			b := m.BoardCopy()
			repeats.Add(hashing.GenerateZobristHash(b, m.SideToMove()))
			analysis.MaterialTrail = append(analysis.MaterialTrail, hashing.WeakHash(b))
		}
	}

	board := m.BoardCopy()
	analysis.Snapshot = m.Snapshot()
	analysis.MaxRepeats = repeats.MaxRepeats()
	analysis.Blocked = m.Blocked()
	analysis.FinalHash = hashing.GenerateZobristHash(board, m.SideToMove())
	analysis.Material = hashing.WeakHash(board)
	return analysis
}

func moveText(game notation.Game, i int) string {
	if i < len(game.Text) {
		return game.Text[i]
	}
	return game.Moves[i].String()
}
