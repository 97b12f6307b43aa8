package main

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/lgbarn/draughts-go/internal/config"
	"github.com/lgbarn/draughts-go/internal/draughts"
	"github.com/lgbarn/draughts-go/internal/engine"
	"github.com/lgbarn/draughts-go/internal/errors"
	"github.com/lgbarn/draughts-go/internal/notation"
	"github.com/lgbarn/draughts-go/internal/output"
	"github.com/lgbarn/draughts-go/internal/transport"
)

// errQuit ends the local input loop when the player leaves.
var errQuit = stderrors.New("player left the match")

// runOnline hosts or joins a match and plays it with moves read from in.
func runOnline(ctx context.Context, cfg *config.Config, in io.Reader) error {
	conn, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	peer := transport.NewPeer(conn, conn.RemoteAddr().String(), cfg)
	defer peer.Close()

	var m *engine.Match
	var local draughts.Side
	if cfg.Network.Host {
		m, local, err = hostMatch(peer, cfg)
	} else {
		m, local, err = joinMatch(peer, cfg)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cfg.OutputFile, "You play %s in match %s\n", local, m.ID())
	return playMatch(ctx, cfg, peer, m, local, in)
}

// connect accepts one player when hosting, or dials the host.
func connect(ctx context.Context, cfg *config.Config) (net.Conn, error) {
	addr := cfg.Network.Address
	if !cfg.Network.Host {
		d := net.Dialer{Timeout: cfg.Network.DialTimeout}
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrConnectionDead, "dial %s: %v", addr, err)
		}
		return conn, nil
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrConnectionDead, "listen %s: %v", addr, err)
	}
	defer ln.Close()
	cfg.Logf(config.Summary, "waiting for a player on %s\n", ln.Addr())

	// Accept has no context; closing the listener unblocks it.
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	conn, err := ln.Accept()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrapf(errors.ErrConnectionDead, "accept on %s: %v", addr, err)
	}
	return conn, nil
}

func matchOptions(cfg *config.Config) []engine.Option {
	return []engine.Option{
		engine.WithRules(engine.Rules{
			PromoteKings:       cfg.Match.PromoteKings,
			PromotionEndsChain: cfg.Match.PromotionEndsChain,
		}),
		engine.WithFirstMover(cfg.Match.FirstMover),
	}
}

// hostMatch creates the match from the standard opening and tells the
// joiner its team and the piece ids.
func hostMatch(peer *transport.Peer, cfg *config.Config) (*engine.Match, draughts.Side, error) {
	local := cfg.Network.Team
	setup := draughts.NewStandardSetup()
	m, err := engine.NewMatch(setup, matchOptions(cfg)...)
	if err != nil {
		return nil, local, err
	}
	if err := peer.Send(transport.Welcome(local.Opposite(), setup)); err != nil {
		return nil, local, err
	}
	return m, local, nil
}

// joinMatch waits for WELCOME and builds the same match the host built.
func joinMatch(peer *transport.Peer, cfg *config.Config) (*engine.Match, draughts.Side, error) {
	r, err := peer.Next()
	if err != nil {
		return nil, draughts.Red, err
	}
	if r.Kind != transport.KindWelcome {
		return nil, draughts.Red, errors.Wrapf(errors.ErrTransportParse, "expected %s from %s, got %s",
			transport.KindWelcome, peer.Name(), r.Kind)
	}
	local, ok := draughts.ParseSide(r.Team)
	if !ok {
		return nil, draughts.Red, errors.Wrapf(errors.ErrTransportParse, "unknown team %q", r.Team)
	}
	setup, err := r.Setup()
	if err != nil {
		return nil, local, err
	}
	m, err := engine.NewMatch(setup, matchOptions(cfg)...)
	if err != nil {
		return nil, local, err
	}
	cfg.Logf(config.Summary, "joined session %s\n", r.Session)
	return m, local, nil
}

// playMatch runs the transport loops and the local input loop until the
// match ends, either side leaves, or ctx is cancelled.
func playMatch(ctx context.Context, cfg *config.Config, peer *transport.Peer, m *engine.Match, local draughts.Side, in io.Reader) error {
	out := &syncWriter{w: cfg.OutputFile}
	sink := func(e engine.Event) {
		out.print(func(w io.Writer) {
			writeEvent(w, local, e)
			if e.Kind == engine.EventTurnChanged || e.Kind == engine.EventGameOver {
				output.WriteStatus(w, m.Snapshot())
			}
		})
	}

	d := transport.NewDispatcher(m, local.Opposite(), cfg)
	f := transport.NewForwarder(m, peer, cfg, sink)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Serve returns nil when the match ends, which would not cancel
		// the input loop on its own.
		defer cancel()
		return transport.Serve(gctx, peer, d, f)
	})
	g.Go(func() error {
		return readLocalMoves(gctx, m, local, peer, scanLines(gctx, in), out)
	})

	err := g.Wait()
	if d.Rejected() > 0 {
		cfg.Logf(config.Summary, "%d move(s) from %s rejected\n", d.Rejected(), peer.Name())
	}
	if n := peer.Inbox().Dropped(); n > 0 {
		cfg.Logf(config.Summary, "%d record(s) from %s dropped on a full inbox\n", n, peer.Name())
	}
	switch {
	case err == nil, stderrors.Is(err, errQuit):
		out.print(func(w io.Writer) { fmt.Fprintln(w, m.StatusMessage()) })
		return nil
	case stderrors.Is(err, errors.ErrConnectionDead):
		out.print(func(w io.Writer) { fmt.Fprintf(w, "connection lost: %s\n", peer.Reason()) })
	}
	return err
}

// scanLines feeds the lines of r to the returned channel until r ends or ctx
// is done.
func scanLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

// readLocalMoves plays the moves typed by the local player. Rejected moves
// are reported and the loop goes on.
func readLocalMoves(ctx context.Context, m *engine.Match, local draughts.Side, peer *transport.Peer, lines <-chan string, out *syncWriter) error {
	for {
		var line string
		select {
		case <-ctx.Done():
			return nil
		case l, ok := <-lines:
			if !ok {
				return leave(peer, "input closed")
			}
			line = strings.TrimSpace(l)
		}

		switch line {
		case "":
			continue
		case "quit", "exit":
			return leave(peer, "quit")
		case "board":
			out.print(func(w io.Writer) { output.WriteStatus(w, m.Snapshot()) })
			continue
		case "json":
			var err error
			out.print(func(w io.Writer) { err = output.OutputSnapshotJSON(m.Snapshot(), w) })
			if err != nil {
				return err
			}
			continue
		}
		if err := playLocal(m, local, line); err != nil {
			out.print(func(w io.Writer) { fmt.Fprintf(w, "%v\n", err) })
		}
	}
}

// playLocal applies one move typed by the local player.
func playLocal(m *engine.Match, local draughts.Side, text string) error {
	if m.IsGameOver() {
		return errors.Wrap(errors.ErrGameOver, m.StatusMessage())
	}
	if toMove := m.SideToMove(); toMove != local {
		return &errors.MoveError{
			Err:    errors.ErrInvalidMove,
			Side:   local.String(),
			Reason: fmt.Sprintf("it is %s's turn", toMove),
		}
	}
	mv, err := notation.ParseMove(text)
	if err != nil {
		return err
	}
	return notation.Apply(m, engine.Local, mv)
}

// leave tells the peer the local player is gone.
func leave(peer *transport.Peer, reason string) error {
	if err := peer.Send(transport.Exit(reason)); err != nil && !stderrors.Is(err, errors.ErrConnectionDead) {
		return err
	}
	return errQuit
}

// writeEvent prints one line per event worth showing to the player.
func writeEvent(w io.Writer, local draughts.Side, e engine.Event) {
	who := "you"
	if e.Side != local {
		who = "opponent"
	}
	switch e.Kind {
	case engine.EventMoved, engine.EventCaptured:
		mv, _ := notation.FromEvent(e)
		fmt.Fprintf(w, "%s (%s): %s\n", e.Side, who, mv)
	case engine.EventPromoted:
		fmt.Fprintf(w, "%s piece %d crowned on %s\n", e.Side, e.Piece, e.To)
	}
}

// syncWriter serializes output from the event sink and the input loop.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) print(fn func(io.Writer)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.w)
}
