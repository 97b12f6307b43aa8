// Package engine provides capture detection and the turn state machine for
// a checkers match.
package engine

import (
	"sort"

	"github.com/lgbarn/draughts-go/internal/draughts"
)

// CaptureTarget is one concrete jump: the piece taken, the cell it stands
// on, and the cell the hunter lands on.
type CaptureTarget struct {
	Prey     draughts.PieceID `json:"prey"`
	PreyCell draughts.Cell    `json:"preyCell"`
	Landing  draughts.Cell    `json:"landing"`
}

// ForcedMoveSet maps each hunter to every jump it can make. It is non-empty
// exactly when the side it was computed for must capture.
type ForcedMoveSet map[draughts.PieceID][]CaptureTarget

// Empty reports whether no capture is available.
func (f ForcedMoveSet) Empty() bool {
	return len(f) == 0
}

// Targets returns the jumps available to hunter.
func (f ForcedMoveSet) Targets(hunter draughts.PieceID) []CaptureTarget {
	return f[hunter]
}

// Lookup finds the jump by hunter that lands on landing.
func (f ForcedMoveSet) Lookup(hunter draughts.PieceID, landing draughts.Cell) (CaptureTarget, bool) {
	for _, t := range f[hunter] {
		if t.Landing == landing {
			return t, true
		}
	}
	return CaptureTarget{}, false
}

// Hunters returns the hunter ids in ascending order.
func (f ForcedMoveSet) Hunters() []draughts.PieceID {
	out := make([]draughts.PieceID, 0, len(f))
	for id := range f {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len returns the total number of jumps across all hunters.
func (f ForcedMoveSet) Len() int {
	n := 0
	for _, ts := range f {
		n += len(ts)
	}
	return n
}

// Clone returns a deep copy.
func (f ForcedMoveSet) Clone() ForcedMoveSet {
	out := make(ForcedMoveSet, len(f))
	for id, ts := range f {
		out[id] = append([]CaptureTarget(nil), ts...)
	}
	return out
}

// ScanSide computes every mandatory jump for side over the whole board.
// Cells are visited in ascending order and directions in a fixed order, so
// two scans of the same position produce identical sets.
func ScanSide(b *draughts.Board, side draughts.Side) ForcedMoveSet {
	forced := make(ForcedMoveSet)
	for c := draughts.Cell(1); c <= draughts.NumCells; c++ {
		p, ok := b.PieceOn(c)
		if !ok || !p.Alive || p.Owner != side {
			continue
		}
		if targets := scanFrom(b, c, p); len(targets) > 0 {
			forced[p.ID] = targets
		}
	}
	return forced
}

// ScanPiece computes the jumps available to a single live piece from the
// cell it currently occupies. It is used to decide whether a capture chain
// continues.
func ScanPiece(b *draughts.Board, id draughts.PieceID) []CaptureTarget {
	p, ok := b.Pieces.Get(id)
	if !ok || !p.Alive {
		return nil
	}
	c := b.Cells.CellOf(id)
	if c == draughts.NoCell {
		return nil
	}
	return scanFrom(b, c, p)
}

// scanFrom checks each of the hunter's directions. A jump exists when the
// adjacent square holds an opposing piece and the square beyond it is on the
// board and empty. Every qualifying direction is kept.
func scanFrom(b *draughts.Board, from draughts.Cell, hunter draughts.Piece) []CaptureTarget {
	var out []CaptureTarget
	for _, d := range draughts.Directions(hunter.Rank) {
		over, landing := draughts.JumpPath(from, hunter.Owner, d)
		if over == draughts.NoCell {
			continue
		}
		prey, ok := b.PieceOn(over)
		if !ok || prey.Owner == hunter.Owner {
			continue
		}
		if !b.Empty(landing) {
			continue
		}
		out = append(out, CaptureTarget{Prey: prey.ID, PreyCell: over, Landing: landing})
	}
	return out
}

// PlainMoves returns, for each of side's pieces that can make a
// non-capturing step, the empty cells it can step to.
func PlainMoves(b *draughts.Board, side draughts.Side) map[draughts.PieceID][]draughts.Cell {
	out := make(map[draughts.PieceID][]draughts.Cell)
	for c := draughts.Cell(1); c <= draughts.NumCells; c++ {
		p, ok := b.PieceOn(c)
		if !ok || p.Owner != side {
			continue
		}
		for _, d := range draughts.Directions(p.Rank) {
			if to := draughts.Neighbor(c, side, d); to != draughts.NoCell && b.Empty(to) {
				out[p.ID] = append(out[p.ID], to)
			}
		}
	}
	return out
}
