// Package output formats match snapshots and replay results as text or
// JSON.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/draughts-go/internal/draughts"
	"github.com/lgbarn/draughts-go/internal/engine"
)

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator or a line break if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// pieceGlyph returns the board letter of a piece: r/b for men, R/B for kings.
func pieceGlyph(p draughts.Piece) byte {
	g := byte('r')
	if p.Owner == draughts.Black {
		g = 'b'
	}
	if p.Rank == draughts.King {
		g -= 'a' - 'A'
	}
	return g
}

// RenderBoard draws the position of a snapshot with Red's home row at the
// bottom. Playable empty cells show as '.', light squares as a blank.
func RenderBoard(s engine.Snapshot) string {
	byID := make(map[draughts.PieceID]draughts.Piece, len(s.Pieces))
	for _, p := range s.Pieces {
		byID[p.ID] = p
	}

	var sb strings.Builder
	for row := draughts.BoardSize - 1; row >= 0; row-- {
		fmt.Fprintf(&sb, "%d ", row+1)
		for col := 0; col < draughts.BoardSize; col++ {
			c := draughts.CellAt(draughts.Position{Row: row, Col: col})
			switch {
			case c == draughts.NoCell:
				sb.WriteByte(' ')
			case s.Occupancy[c] != draughts.NoPiece:
				sb.WriteByte(pieceGlyph(byID[s.Occupancy[c]]))
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  abcdefgh\n")
	return sb.String()
}

// WriteStatus writes the status block shown after every move in online play.
func WriteStatus(w io.Writer, s engine.Snapshot) {
	fmt.Fprint(w, RenderBoard(s))
	fmt.Fprintf(w, "%s (Red %d, Black %d)\n", s.Message, s.RedAlive, s.BlackAlive)
	if len(s.Forced) == 0 {
		return
	}
	cellOf := make(map[draughts.PieceID]draughts.Cell, len(s.Occupancy))
	for c, id := range s.Occupancy {
		cellOf[id] = c
	}
	ow := NewOutputWriter(w, 80)
	ow.Write("forced:")
	for _, id := range s.Forced.Hunters() {
		for _, t := range s.Forced[id] {
			ow.Write(fmt.Sprintf("%dx%d", cellOf[id], t.Landing))
		}
	}
	ow.NewLine()
}
