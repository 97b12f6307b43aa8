package matching

import (
	"fmt"
	"strings"

	"github.com/lgbarn/draughts-go/internal/draughts"
	"github.com/lgbarn/draughts-go/internal/errors"
	"github.com/lgbarn/draughts-go/internal/hashing"
	"github.com/lgbarn/draughts-go/internal/processing"
)

// MaterialMatcher matches games that reach a material balance.
type MaterialMatcher struct {
	// Pattern like "rrR:bb" means Red has two men and a king, Black two men
	pattern    string
	exactMatch bool
	counts     [draughts.NumSides][2]int
}

// NewMaterialMatcher creates a new material matcher.
// Pattern format: "rrR:bbB" (Red pieces : Black pieces)
// r/b = man, R/B = king, using the letters of the board diagram.
func NewMaterialMatcher(pattern string, exact bool) (*MaterialMatcher, error) {
	mm := &MaterialMatcher{pattern: pattern, exactMatch: exact}
	if err := mm.parsePattern(pattern); err != nil {
		return nil, err
	}
	return mm, nil
}

// parsePattern parses a material pattern like "rrR:bb".
func (mm *MaterialMatcher) parsePattern(pattern string) error {
	red, black, ok := strings.Cut(pattern, ":")
	if !ok {
		return fmt.Errorf("material pattern %q has no ':': %w", pattern, errors.ErrInvalidConfig)
	}
	if err := mm.parseSide(draughts.Red, red, 'r'); err != nil {
		return err
	}
	return mm.parseSide(draughts.Black, black, 'b')
}

// parseSide counts the man and king letters of one side.
func (mm *MaterialMatcher) parseSide(side draughts.Side, s string, man rune) error {
	king := man - ('a' - 'A')
	for _, c := range s {
		switch c {
		case man:
			mm.counts[side][draughts.Man]++
		case king:
			mm.counts[side][draughts.King]++
		default:
			return fmt.Errorf("material pattern %q: %q is not a %s piece: %w",
				mm.pattern, c, side, errors.ErrInvalidConfig)
		}
	}
	return nil
}

// Match checks if any turn boundary of the game matches the material
// pattern.
func (mm *MaterialMatcher) Match(a *processing.GameAnalysis) bool {
	for _, m := range a.MaterialTrail {
		if mm.matchMaterial(m) {
			return true
		}
	}
	return false
}

// matchMaterial checks one position's material.
func (mm *MaterialMatcher) matchMaterial(m hashing.Material) bool {
	for _, side := range []draughts.Side{draughts.Red, draughts.Black} {
		for _, rank := range []draughts.Rank{draughts.Man, draughts.King} {
			want, got := mm.counts[side][rank], m.Count(side, rank)
			if mm.exactMatch && got != want {
				return false
			}
			if got < want {
				return false
			}
		}
	}
	return true
}

// Name implements GameMatcher.
func (mm *MaterialMatcher) Name() string {
	if mm.exactMatch {
		return "Material(=" + mm.pattern + ")"
	}
	return "Material(" + mm.pattern + ")"
}
