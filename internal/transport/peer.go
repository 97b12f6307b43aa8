package transport

import (
	"context"
	stderrors "errors"
	"io"
	"sync"

	"github.com/lgbarn/draughts-go/internal/config"
	"github.com/lgbarn/draughts-go/internal/errors"
)

// Peer is one end of a connection. Inbound records are decoded by Receive
// and queued in the peer's inbox; outbound records go through Send. Once a
// peer is dead it stays dead.
type Peer struct {
	conn  io.ReadWriteCloser
	name  string
	cfg   *config.Config
	enc   *Encoder
	dec   *Decoder
	inbox *Inbox

	mu        sync.Mutex
	dead      bool
	reason    string
	closeOnce sync.Once
}

// NewPeer wraps conn. name identifies the remote end in logs and errors.
func NewPeer(conn io.ReadWriteCloser, name string, cfg *config.Config) *Peer {
	return &Peer{
		conn:  conn,
		name:  name,
		cfg:   cfg,
		enc:   NewEncoder(conn),
		dec:   NewDecoder(conn, name),
		inbox: NewInbox(cfg.Network.InboxCapacity),
	}
}

// Name returns the remote end's name.
func (p *Peer) Name() string {
	return p.name
}

// Inbox returns the queue Receive fills.
func (p *Peer) Inbox() *Inbox {
	return p.inbox
}

// Dead reports whether the connection is no longer usable.
func (p *Peer) Dead() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dead
}

// Reason returns why the connection died.
func (p *Peer) Reason() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reason
}

// markDead records the first reason the connection died.
func (p *Peer) markDead(reason string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dead {
		return
	}
	p.dead = true
	p.reason = reason
	p.cfg.Logf(config.Summary, "%s: connection dead: %s\n", p.name, reason)
}

// Send writes one record to the peer.
func (p *Peer) Send(r Record) error {
	if p.Dead() {
		return errors.Wrapf(errors.ErrConnectionDead, "send %s to %s", r.Kind, p.name)
	}
	if err := p.enc.Encode(r); err != nil {
		p.markDead(err.Error())
		return errors.Wrapf(errors.ErrConnectionDead, "send %s to %s: %v", r.Kind, p.name, err)
	}
	p.cfg.Logf(config.Commentary, "%s <- %s\n", p.name, r)
	return nil
}

// Next reads a single record outside the receive loop. It is used for the
// opening handshake.
func (p *Peer) Next() (Record, error) {
	r, err := p.dec.Decode()
	if err != nil {
		p.fail(err)
		return Record{}, err
	}
	p.cfg.Logf(config.Commentary, "%s -> %s\n", p.name, r)
	return r, nil
}

func (p *Peer) fail(err error) {
	if stderrors.Is(err, io.EOF) {
		p.markDead("connection closed")
		return
	}
	p.markDead(err.Error())
}

// Receive decodes records until the stream ends, the peer sends EXIT, a
// record fails to parse, or ctx is done. MOVE and CAPTURE records are queued
// in the inbox; the inbox is closed on return so its reader can drain what
// arrived before the end. A parse failure is returned; an orderly end is not.
func (p *Peer) Receive(ctx context.Context) error {
	defer p.inbox.Close()
	for {
		r, err := p.dec.Decode()
		if err != nil {
			if ctx.Err() != nil {
				p.markDead("cancelled")
				return ctx.Err()
			}
			p.fail(err)
			if stderrors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		p.cfg.Logf(config.Commentary, "%s -> %s\n", p.name, r)

		switch r.Kind {
		case KindExit:
			p.markDead("peer exited: " + r.Reason)
			return nil
		case KindWelcome:
			p.cfg.Logf(config.Summary, "%s: ignoring repeated WELCOME\n", p.name)
		default:
			if p.inbox.Push(r) {
				p.cfg.Logf(config.Summary, "%s: inbox full, oldest record dropped\n", p.name)
			}
		}
	}
}

// Close shuts the connection down. It is safe to call more than once.
func (p *Peer) Close() error {
	var err error
	p.closeOnce.Do(func() {
		p.markDead("closed")
		err = p.conn.Close()
	})
	return err
}
