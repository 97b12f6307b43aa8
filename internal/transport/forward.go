package transport

import (
	"context"

	"github.com/lgbarn/draughts-go/internal/config"
	"github.com/lgbarn/draughts-go/internal/engine"
	"github.com/lgbarn/draughts-go/internal/errors"
)

// Sender delivers records to the peer.
type Sender interface {
	Send(Record) error
}

// EventSink receives every drained event, local or remote.
type EventSink func(engine.Event)

// Forwarder drains the match event queue. Locally originated moves and
// captures are sent to the peer; every event is passed to the sink.
type Forwarder struct {
	match *engine.Match
	peer  Sender
	sink  EventSink
	cfg   *config.Config
}

// NewForwarder creates a forwarder. sink may be nil.
func NewForwarder(m *engine.Match, peer Sender, cfg *config.Config, sink EventSink) *Forwarder {
	return &Forwarder{match: m, peer: peer, sink: sink, cfg: cfg}
}

// EventRecord converts a forwardable event to its outbound record.
func EventRecord(e engine.Event) (Record, bool) {
	if !e.Forwardable() {
		return Record{}, false
	}
	if e.Kind == engine.EventCaptured {
		return Capture(e.Piece, e.To), true
	}
	return Move(e.Piece, e.To), true
}

// Flush drains the queued events once.
func (f *Forwarder) Flush() error {
	for _, e := range f.match.DrainEvents() {
		if f.sink != nil {
			f.sink(e)
		}
		r, ok := EventRecord(e)
		if !ok {
			continue
		}
		if err := f.peer.Send(r); err != nil {
			return err
		}
	}
	return nil
}

// Run flushes whenever the match signals new events. When the match is over
// it tells the peer and returns ErrGameOver.
func (f *Forwarder) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-f.match.Notify():
		}
		if err := f.Flush(); err != nil {
			return err
		}
		if f.match.IsGameOver() {
			status := f.match.StatusMessage()
			if err := f.peer.Send(Exit(status)); err != nil {
				f.cfg.Logf(config.Commentary, "exit not delivered: %v\n", err)
			}
			return errors.Wrap(errors.ErrGameOver, status)
		}
	}
}
