package config

import (
	"fmt"

	"github.com/lgbarn/draughts-go/internal/draughts"
	"github.com/lgbarn/draughts-go/internal/errors"
)

// MatchConfig holds the rule switches a match is played with.
type MatchConfig struct {
	// PromoteKings crowns a man that ends a move on the far row
	PromoteKings bool

	// PromotionEndsChain stops a capture chain when the hunter is crowned
	PromotionEndsChain bool

	// FirstMover is the side that moves first
	FirstMover draughts.Side
}

// NewMatchConfig creates a MatchConfig with English draughts defaults.
func NewMatchConfig() *MatchConfig {
	return &MatchConfig{
		PromoteKings:       true,
		PromotionEndsChain: true,
		FirstMover:         draughts.Red,
	}
}

// Validate checks that the match configuration is valid.
func (m *MatchConfig) Validate() error {
	if m.FirstMover != draughts.Red && m.FirstMover != draughts.Black {
		return fmt.Errorf("first mover %d is not a side: %w", m.FirstMover, errors.ErrInvalidConfig)
	}
	if m.PromotionEndsChain && !m.PromoteKings {
		return fmt.Errorf("promotion cannot end a chain when promotion is off: %w", errors.ErrInvalidConfig)
	}
	return nil
}
