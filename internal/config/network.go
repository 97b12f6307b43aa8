package config

import (
	"fmt"
	"time"

	"github.com/lgbarn/draughts-go/internal/draughts"
	"github.com/lgbarn/draughts-go/internal/errors"
)

// DefaultInboxCapacity is the number of inbound records buffered before the
// oldest is dropped.
const DefaultInboxCapacity = 64

// NetworkConfig holds settings for online play.
type NetworkConfig struct {
	// Address is the host:port to listen on or dial
	Address string

	// Host is true when this process accepts the connection and sends WELCOME
	Host bool

	// Team is the side the host plays; the joiner learns its own from WELCOME
	Team draughts.Side

	// InboxCapacity bounds the inbound record queue
	InboxCapacity int

	// DialTimeout limits how long a joiner waits for the host
	DialTimeout time.Duration
}

// NewNetworkConfig creates a NetworkConfig with default values.
func NewNetworkConfig() *NetworkConfig {
	return &NetworkConfig{
		Team:          draughts.Red,
		InboxCapacity: DefaultInboxCapacity,
		DialTimeout:   5 * time.Second,
	}
}

// Validate checks that the network configuration is valid.
func (n *NetworkConfig) Validate() error {
	if n.InboxCapacity < 1 {
		return fmt.Errorf("inbox capacity %d must be positive: %w", n.InboxCapacity, errors.ErrInvalidConfig)
	}
	if n.Team != draughts.Red && n.Team != draughts.Black {
		return fmt.Errorf("team %d is not a side: %w", n.Team, errors.ErrInvalidConfig)
	}
	if n.DialTimeout < 0 {
		return fmt.Errorf("dial timeout %v is negative: %w", n.DialTimeout, errors.ErrInvalidConfig)
	}
	return nil
}
