package config

import (
	"fmt"
	"runtime"

	"github.com/lgbarn/draughts-go/internal/errors"
)

// ReplayConfig holds settings for replaying game files.
type ReplayConfig struct {
	// Workers is the number of games replayed in parallel
	Workers int

	// BufferSize is the work queue size (0 = twice the worker count)
	BufferSize int

	// JSONFormat prints results as JSON instead of text
	JSONFormat bool

	// JSONLines writes one JSON document per game as it finishes
	JSONLines bool

	// StopOnError stops after the first game that fails to replay
	StopOnError bool

	// ShowBoard prints the final position of each game
	ShowBoard bool
}

// NewReplayConfig creates a ReplayConfig with default values.
func NewReplayConfig() *ReplayConfig {
	return &ReplayConfig{
		Workers: runtime.NumCPU(),
	}
}

// Validate checks that the replay configuration is valid.
func (r *ReplayConfig) Validate() error {
	if r.Workers < 1 {
		return fmt.Errorf("workers %d must be positive: %w", r.Workers, errors.ErrInvalidConfig)
	}
	if r.BufferSize < 0 {
		return fmt.Errorf("buffer size %d is negative: %w", r.BufferSize, errors.ErrInvalidConfig)
	}
	return nil
}

// QueueSize returns the work queue size to use.
func (r *ReplayConfig) QueueSize() int {
	if r.BufferSize > 0 {
		return r.BufferSize
	}
	return r.Workers * 2
}
