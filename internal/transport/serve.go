package transport

import (
	"context"
	stderrors "errors"

	"golang.org/x/sync/errgroup"

	"github.com/lgbarn/draughts-go/internal/errors"
)

// Serve runs the receive loop, the dispatcher and the forwarder for one
// match until the match ends, the connection dies or ctx is cancelled. It
// returns nil when the match finished, and an error wrapping
// ErrConnectionDead when the peer went away first.
func Serve(ctx context.Context, p *Peer, d *Dispatcher, f *Forwarder) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return p.Receive(gctx) })
	g.Go(func() error { return d.Run(gctx, p.Inbox()) })
	g.Go(func() error { return f.Run(gctx) })
	g.Go(func() error {
		<-gctx.Done()
		p.Close()
		return nil
	})

	err := g.Wait()
	// Events the loops did not get to, such as the final capture of a peer
	// that exited right after making it.
	_ = f.Flush()

	switch {
	case d.match.IsGameOver():
		return nil
	case stderrors.Is(err, errors.ErrConnectionDead):
		return errors.Wrap(errors.ErrConnectionDead, p.Reason())
	case ctx.Err() != nil:
		return ctx.Err()
	}
	return err
}
