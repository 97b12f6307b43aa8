package transport

import (
	"context"
	"sync/atomic"

	"github.com/lgbarn/draughts-go/internal/config"
	"github.com/lgbarn/draughts-go/internal/draughts"
	"github.com/lgbarn/draughts-go/internal/engine"
	"github.com/lgbarn/draughts-go/internal/errors"
)

// Dispatcher translates inbound records into match calls with the Remote
// origin. It only ever moves the remote side's pieces.
type Dispatcher struct {
	match    *engine.Match
	remote   draughts.Side
	cfg      *config.Config
	rejected atomic.Int64
}

// NewDispatcher creates a dispatcher for the side the peer plays.
func NewDispatcher(m *engine.Match, remote draughts.Side, cfg *config.Config) *Dispatcher {
	return &Dispatcher{match: m, remote: remote, cfg: cfg}
}

// Dispatch applies one record.
func (d *Dispatcher) Dispatch(r Record) error {
	var capture bool
	switch r.Kind {
	case KindMove:
	case KindCapture:
		capture = true
	default:
		return errors.Wrapf(errors.ErrPrecondition, "%s record cannot be dispatched", r.Kind)
	}

	if side := d.match.SideToMove(); side != d.remote {
		return &errors.MoveError{
			Err:    errors.ErrInvalidMove,
			Side:   d.remote.String(),
			Piece:  int(r.Piece),
			To:     int(r.Dest),
			Reason: "not the remote side's turn",
		}
	}
	return d.match.Play(engine.Remote, r.Piece, r.Dest, capture)
}

// Run pops records in arrival order and dispatches them until the inbox is
// closed and drained or ctx is done. Rejected records are logged and
// counted; they never stop the loop.
func (d *Dispatcher) Run(ctx context.Context, inbox *Inbox) error {
	for {
		r, err := inbox.Pop(ctx)
		if err != nil {
			return err
		}
		if err := d.Dispatch(r); err != nil {
			d.rejected.Add(1)
			d.cfg.Logf(config.Summary, "rejected remote %s: %v\n", r, err)
		}
	}
}

// Rejected returns how many records were refused.
func (d *Dispatcher) Rejected() int {
	return int(d.rejected.Load())
}
