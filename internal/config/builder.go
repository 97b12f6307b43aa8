package config

import (
	"io"
	"time"

	"github.com/lgbarn/draughts-go/internal/draughts"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithPromotion sets the promotion rule switches.
func (b *ConfigBuilder) WithPromotion(promote, endsChain bool) *ConfigBuilder {
	b.cfg.Match.PromoteKings = promote
	b.cfg.Match.PromotionEndsChain = endsChain
	return b
}

// WithFirstMover sets the side that moves first.
func (b *ConfigBuilder) WithFirstMover(side draughts.Side) *ConfigBuilder {
	b.cfg.Match.FirstMover = side
	return b
}

// WithListen configures this process to host a match on addr.
func (b *ConfigBuilder) WithListen(addr string) *ConfigBuilder {
	b.cfg.Network.Address = addr
	b.cfg.Network.Host = true
	return b
}

// WithConnect configures this process to join a match at addr.
func (b *ConfigBuilder) WithConnect(addr string) *ConfigBuilder {
	b.cfg.Network.Address = addr
	b.cfg.Network.Host = false
	return b
}

// WithTeam sets the side the host plays.
func (b *ConfigBuilder) WithTeam(side draughts.Side) *ConfigBuilder {
	b.cfg.Network.Team = side
	return b
}

// WithInboxCapacity sets the inbound record queue bound.
func (b *ConfigBuilder) WithInboxCapacity(n int) *ConfigBuilder {
	b.cfg.Network.InboxCapacity = n
	return b
}

// WithDialTimeout sets how long a joiner waits for the host.
func (b *ConfigBuilder) WithDialTimeout(d time.Duration) *ConfigBuilder {
	b.cfg.Network.DialTimeout = d
	return b
}

// WithWorkers sets the number of replay workers and the queue size.
func (b *ConfigBuilder) WithWorkers(workers, bufferSize int) *ConfigBuilder {
	b.cfg.Replay.Workers = workers
	b.cfg.Replay.BufferSize = bufferSize
	return b
}

// WithJSONOutput enables JSON output.
func (b *ConfigBuilder) WithJSONOutput(enabled bool) *ConfigBuilder {
	b.cfg.Replay.JSONFormat = enabled
	return b
}

// WithJSONLines enables JSON output with one document per game.
func (b *ConfigBuilder) WithJSONLines(enabled bool) *ConfigBuilder {
	b.cfg.Replay.JSONFormat = b.cfg.Replay.JSONFormat || enabled
	b.cfg.Replay.JSONLines = enabled
	return b
}

// WithStopOnError stops replay at the first failing game.
func (b *ConfigBuilder) WithStopOnError(enabled bool) *ConfigBuilder {
	b.cfg.Replay.StopOnError = enabled
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLog sets the log writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
