// Package config provides configuration for the draughts engine and CLI.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/draughts-go/internal/draughts"
	"github.com/lgbarn/draughts-go/internal/errors"
)

// Verbosity levels understood by the CLI and the transport layer.
const (
	Silent     = 0 // nothing but results
	Summary    = 1 // connection lifecycle and per-file summaries
	Commentary = 2 // every translated record and replayed ply
)

// Config holds all program configuration.
type Config struct {
	// Verbosity gates what is written to LogFile.
	Verbosity int

	// Grouped settings
	Match   *MatchConfig
	Network *NetworkConfig
	Replay  *ReplayConfig

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  Summary,
		Match:      NewMatchConfig(),
		Network:    NewNetworkConfig(),
		Replay:     NewReplayConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the writer results are printed to.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// SetLog sets the writer diagnostics are printed to.
func (c *Config) SetLog(w io.Writer) {
	c.LogFile = w
}

// Logf writes a diagnostic line when the configured verbosity is at least
// level.
func (c *Config) Logf(level int, format string, args ...interface{}) {
	if c.LogFile == nil || c.Verbosity < level {
		return
	}
	fmt.Fprintf(c.LogFile, format, args...)
}

// Validate checks every group and the top-level fields.
func (c *Config) Validate() error {
	if c.Verbosity < Silent || c.Verbosity > Commentary {
		return fmt.Errorf("verbosity %d out of range [%d, %d]: %w",
			c.Verbosity, Silent, Commentary, errors.ErrInvalidConfig)
	}
	if c.Match != nil {
		if err := c.Match.Validate(); err != nil {
			return err
		}
	}
	if c.Network != nil {
		if err := c.Network.Validate(); err != nil {
			return err
		}
	}
	if c.Replay != nil {
		if err := c.Replay.Validate(); err != nil {
			return err
		}
	}
	// WELCOME does not carry the first mover, so both ends must assume Red.
	if c.Match != nil && c.Network != nil && c.Network.Address != "" && c.Match.FirstMover != draughts.Red {
		return fmt.Errorf("online matches open with %s, not %s: %w",
			draughts.Red, c.Match.FirstMover, errors.ErrInvalidConfig)
	}
	return nil
}
