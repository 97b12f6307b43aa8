package main

import (
	"bytes"
	"context"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/lgbarn/draughts-go/internal/config"
	"github.com/lgbarn/draughts-go/internal/draughts"
	"github.com/lgbarn/draughts-go/internal/engine"
	derrors "github.com/lgbarn/draughts-go/internal/errors"
	"github.com/lgbarn/draughts-go/internal/testutil"
	"github.com/lgbarn/draughts-go/internal/transport"
)

func playConfig(out io.Writer) *config.Config {
	return config.NewConfigBuilder().
		WithTeam(draughts.Red).
		WithOutput(out).
		WithLog(io.Discard).
		Build()
}

type joined struct {
	m    *engine.Match
	side draughts.Side
	err  error
}

func TestHandshake(t *testing.T) {
	hostConn, joinConn := net.Pipe()
	defer hostConn.Close()
	defer joinConn.Close()

	cfg := playConfig(io.Discard)
	done := make(chan joined, 1)
	go func() {
		m, side, err := joinMatch(transport.NewPeer(joinConn, "host", cfg), cfg)
		done <- joined{m, side, err}
	}()

	hm, hostSide, err := hostMatch(transport.NewPeer(hostConn, "joiner", cfg), cfg)
	testutil.AssertNoError(t, err)
	j := <-done
	testutil.AssertNoError(t, j.err)

	if hostSide != draughts.Red || j.side != draughts.Black {
		t.Errorf("sides = %v, %v; want Red, Black", hostSide, j.side)
	}
	testutil.AssertEqual(t, j.m.PieceIDs(draughts.Red), hm.PieceIDs(draughts.Red))
	testutil.AssertEqual(t, j.m.PieceIDs(draughts.Black), hm.PieceIDs(draughts.Black))
	if hm.ID() == j.m.ID() {
		t.Error("host and joiner share a match id")
	}
}

func TestJoinRejectsMissingWelcome(t *testing.T) {
	hostConn, joinConn := net.Pipe()
	defer hostConn.Close()
	defer joinConn.Close()

	cfg := playConfig(io.Discard)
	go func() {
		_ = transport.NewPeer(hostConn, "joiner", cfg).Send(transport.Move(9, 13))
	}()
	_, _, err := joinMatch(transport.NewPeer(joinConn, "host", cfg), cfg)
	testutil.AssertErrorIs(t, err, derrors.ErrTransportParse)
}

func TestPlayMatchOverPipe(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	hostConn, joinConn := net.Pipe()
	var hostOut, joinOut bytes.Buffer
	hostCfg := playConfig(&hostOut)
	joinCfg := playConfig(&joinOut)
	hostPeer := transport.NewPeer(hostConn, "joiner", hostCfg)
	joinPeer := transport.NewPeer(joinConn, "host", joinCfg)

	done := make(chan joined, 1)
	go func() {
		m, side, err := joinMatch(joinPeer, joinCfg)
		done <- joined{m, side, err}
	}()
	hm, hostSide, err := hostMatch(hostPeer, hostCfg)
	testutil.AssertNoError(t, err)
	j := <-done
	testutil.AssertNoError(t, j.err)

	hostIn, hostTyping := io.Pipe()
	joinIn, joinTyping := io.Pipe()
	defer hostTyping.Close()
	defer joinTyping.Close()

	hostDone := make(chan error, 1)
	joinDone := make(chan error, 1)
	go func() { hostDone <- playMatch(ctx, hostCfg, hostPeer, hm, hostSide, hostIn) }()
	go func() { joinDone <- playMatch(ctx, joinCfg, joinPeer, j.m, j.side, joinIn) }()

	if _, err := io.WriteString(hostTyping, "9-13\n"); err != nil {
		t.Fatalf("typing move: %v", err)
	}
	for {
		if p, ok := j.m.PieceAt(13); ok && p.ID == 9 {
			break
		}
		if ctx.Err() != nil {
			t.Fatal("joiner never saw the move")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if got := j.m.SideToMove(); got != draughts.Black {
		t.Errorf("joiner SideToMove = %v; want Black", got)
	}

	if _, err := io.WriteString(hostTyping, "quit\n"); err != nil {
		t.Fatalf("typing quit: %v", err)
	}
	testutil.AssertNoError(t, <-hostDone)

	err = <-joinDone
	testutil.AssertErrorIs(t, err, derrors.ErrConnectionDead)
	if !strings.Contains(err.Error(), "quit") {
		t.Errorf("joiner error = %v; want the exit reason", err)
	}

	if !strings.Contains(hostOut.String(), "Red (you): 9-13") {
		t.Errorf("host output missing own move:\n%s", hostOut.String())
	}
	if !strings.Contains(joinOut.String(), "Red (opponent): 9-13") {
		t.Errorf("joiner output missing remote move:\n%s", joinOut.String())
	}
	if !strings.Contains(joinOut.String(), "connection lost: peer exited: quit") {
		t.Errorf("joiner output missing the disconnect:\n%s", joinOut.String())
	}
}

func TestPlayLocal(t *testing.T) {
	m, err := engine.NewStandardMatch()
	testutil.AssertNoError(t, err)

	testutil.AssertErrorIs(t, playLocal(m, draughts.Black, "22-18"), derrors.ErrInvalidMove)
	testutil.AssertErrorIs(t, playLocal(m, draughts.Red, "nine"), derrors.ErrNotation)
	testutil.AssertNoError(t, playLocal(m, draughts.Red, "9-13"))
	if got := m.SideToMove(); got != draughts.Black {
		t.Errorf("SideToMove = %v; want Black", got)
	}

	over, err := engine.NewMatch(testutil.MustPosition(t, "r1@11 b20@15"))
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, playLocal(over, draughts.Red, "11x18"))
	testutil.AssertErrorIs(t, playLocal(over, draughts.Red, "18-22"), derrors.ErrGameOver)
}

func TestReadLocalMovesCommands(t *testing.T) {
	conn, far := net.Pipe()
	defer conn.Close()
	go func() { _, _ = io.Copy(io.Discard, far) }()
	defer far.Close()

	m, err := engine.NewStandardMatch()
	testutil.AssertNoError(t, err)
	peer := transport.NewPeer(conn, "opponent", playConfig(io.Discard))

	lines := make(chan string, 4)
	for _, l := range []string{"json", "board", "9-17", ""} {
		lines <- l
	}
	close(lines)

	var buf bytes.Buffer
	err = readLocalMoves(context.Background(), m, draughts.Red, peer, lines, &syncWriter{w: &buf})
	if err != errQuit {
		t.Fatalf("readLocalMoves() = %v; want errQuit once input closes", err)
	}

	out := buf.String()
	for _, want := range []string{`"sideToMove": "Red"`, `"redAlive": 12`, "Red to move (Red 12, Black 12)", "9->17"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if got := m.Locate(9); got != 9 {
		t.Errorf("piece 9 on %d after a rejected move; want 9", got)
	}
}

func TestWriteEvent(t *testing.T) {
	tests := []struct {
		name string
		e    engine.Event
		want string
	}{
		{"own move", engine.Event{Kind: engine.EventMoved, Side: draughts.Red, From: 9, To: 13}, "Red (you): 9-13\n"},
		{"opponent capture", engine.Event{Kind: engine.EventCaptured, Side: draughts.Black, From: 18, To: 9}, "Black (opponent): 18x9\n"},
		{"crowning", engine.Event{Kind: engine.EventPromoted, Side: draughts.Red, Piece: 4, To: 30}, "Red piece 4 crowned on 30\n"},
		{"selection is silent", engine.Event{Kind: engine.EventSelected, Side: draughts.Red}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			writeEvent(&buf, draughts.Red, tt.e)
			testutil.AssertEqual(t, buf.String(), tt.want)
		})
	}
}
