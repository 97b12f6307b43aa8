// Package notation reads and writes draughts move text. A plain move is
// written "11-15", a capture "15x24" and a capture chain "15x24x31", using
// the standard 1..32 square numbers.
package notation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/draughts-go/internal/draughts"
	"github.com/lgbarn/draughts-go/internal/engine"
	"github.com/lgbarn/draughts-go/internal/errors"
)

// Move is one turn of move text: the cells the piece visits in order.
type Move struct {
	Path    []draughts.Cell
	Capture bool
}

// String formats the move in standard notation.
func (m Move) String() string {
	sep := "-"
	if m.Capture {
		sep = "x"
	}
	parts := make([]string, len(m.Path))
	for i, c := range m.Path {
		parts[i] = strconv.Itoa(int(c))
	}
	return strings.Join(parts, sep)
}

// From returns the starting cell.
func (m Move) From() draughts.Cell {
	if len(m.Path) == 0 {
		return draughts.NoCell
	}
	return m.Path[0]
}

// Step builds a single-step move.
func Step(from, to draughts.Cell, capture bool) Move {
	return Move{Path: []draughts.Cell{from, to}, Capture: capture}
}

// ParseMove parses one move token.
func ParseMove(text string) (Move, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Move{}, &errors.ParseError{Err: errors.ErrNotation, Got: text}
	}

	hasDash := strings.Contains(text, "-")
	hasX := strings.ContainsAny(text, "xX")
	if hasDash == hasX {
		return Move{}, &errors.ParseError{Err: errors.ErrNotation, Got: text}
	}

	var fields []string
	if hasDash {
		fields = strings.Split(text, "-")
		if len(fields) != 2 {
			return Move{}, &errors.ParseError{Err: errors.ErrNotation, Got: text}
		}
	} else {
		fields = strings.FieldsFunc(text, func(r rune) bool { return r == 'x' || r == 'X' })
		if len(fields) < 2 || strings.Count(strings.ToLower(text), "x") != len(fields)-1 {
			return Move{}, &errors.ParseError{Err: errors.ErrNotation, Got: text}
		}
	}

	m := Move{Path: make([]draughts.Cell, 0, len(fields)), Capture: hasX}
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || !draughts.Cell(n).Valid() {
			return Move{}, &errors.ParseError{Err: errors.ErrNotation, Column: columnOf(fields, i), Got: f}
		}
		m.Path = append(m.Path, draughts.Cell(n))
	}
	return m, nil
}

func columnOf(fields []string, i int) int {
	col := 1
	for _, f := range fields[:i] {
		col += len(f) + 1
	}
	return col
}

// Apply plays a move on the match as origin. A capture chain is played one
// jump at a time, so a rejected later jump leaves the earlier jumps in place
// with the match awaiting the continuation. A capture that stops while the
// hunter still has a jump is reported as incomplete; the jumps already made
// stand and the chain can be continued from the last landing cell.
func Apply(m *engine.Match, origin engine.Origin, mv Move) error {
	if len(mv.Path) < 2 {
		return &errors.ParseError{Err: errors.ErrNotation, Got: mv.String()}
	}
	p, ok := m.PieceAt(mv.From())
	if !ok {
		return &errors.MoveError{
			Err:    errors.ErrInvalidMove,
			Side:   m.SideToMove().String(),
			From:   int(mv.From()),
			To:     int(mv.Path[1]),
			Reason: "no piece on the starting square",
		}
	}
	if !mv.Capture {
		if len(mv.Path) != 2 {
			return &errors.ParseError{Err: errors.ErrNotation, Got: mv.String()}
		}
		return m.Play(origin, p.ID, mv.Path[1], false)
	}
	for _, landing := range mv.Path[1:] {
		if err := m.Play(origin, p.ID, landing, true); err != nil {
			return err
		}
	}
	if m.State() == engine.AwaitingCaptureContinuation {
		last := mv.Path[len(mv.Path)-1]
		return &errors.MoveError{
			Err:    errors.ErrInvalidMove,
			Side:   p.Owner.String(),
			Piece:  int(p.ID),
			From:   int(mv.From()),
			To:     int(last),
			Reason: fmt.Sprintf("capture chain incomplete, continue from %d", last),
		}
	}
	return nil
}

// FromEvent returns the move text of a Moved or Captured event.
func FromEvent(e engine.Event) (Move, bool) {
	switch e.Kind {
	case engine.EventMoved:
		return Step(e.From, e.To, false), true
	case engine.EventCaptured:
		return Step(e.From, e.To, true), true
	}
	return Move{}, false
}
