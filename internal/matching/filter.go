package matching

import (
	"fmt"
	"strings"

	"github.com/lgbarn/draughts-go/internal/draughts"
	"github.com/lgbarn/draughts-go/internal/errors"
	"github.com/lgbarn/draughts-go/internal/processing"
)

// Outcome names how a replayed game ended.
type Outcome int

const (
	AnyOutcome Outcome = iota
	RedWin
	BlackWin
	Unfinished
)

// ParseOutcome parses "red", "black" or "none".
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return AnyOutcome, nil
	case "red", "r":
		return RedWin, nil
	case "black", "b":
		return BlackWin, nil
	case "none", "unfinished", "*":
		return Unfinished, nil
	}
	return AnyOutcome, fmt.Errorf("unknown result %q: %w", s, errors.ErrInvalidConfig)
}

// GameFilter holds the per-game criteria. A zero field places no limit.
type GameFilter struct {
	Outcome    Outcome
	MinTurns   int
	MaxTurns   int // 0 = no limit
	MinChain   int // longest capture chain at least this long
	Repetition bool
	Blocked    bool
	Promotion  bool
}

// NewGameFilter creates a filter that matches every game.
func NewGameFilter() *GameFilter {
	return &GameFilter{}
}

// HasCriteria returns true if any filter criteria are set.
func (gf *GameFilter) HasCriteria() bool {
	return *gf != GameFilter{}
}

// Match implements GameMatcher.
func (gf *GameFilter) Match(a *processing.GameAnalysis) bool {
	if !gf.matchOutcome(a) {
		return false
	}
	if a.Turns < gf.MinTurns || (gf.MaxTurns > 0 && a.Turns > gf.MaxTurns) {
		return false
	}
	if a.LongestChain < gf.MinChain {
		return false
	}
	if gf.Repetition && !a.HasRepetition() {
		return false
	}
	if gf.Blocked && !a.Blocked {
		return false
	}
	if gf.Promotion && a.Promotions == 0 {
		return false
	}
	return true
}

func (gf *GameFilter) matchOutcome(a *processing.GameAnalysis) bool {
	s := a.Snapshot
	switch gf.Outcome {
	case RedWin:
		return s.GameOver && s.Winner == draughts.Red.String()
	case BlackWin:
		return s.GameOver && s.Winner == draughts.Black.String()
	case Unfinished:
		return !s.GameOver
	}
	return true
}

// Name implements GameMatcher.
func (gf *GameFilter) Name() string {
	return "GameFilter"
}
