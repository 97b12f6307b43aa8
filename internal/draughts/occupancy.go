package draughts

import (
	"github.com/lgbarn/draughts-go/internal/errors"
)

// Occupancy maps playable cells to the piece standing on them. Index 0
// (NoCell) is never used; NoPiece marks an empty cell.
type Occupancy struct {
	cells   [NumCells + 1]PieceID
	rebuilt bool
}

// PlaceAt puts id on cell c. It fails with ErrOccupancyViolation when c
// already holds a piece.
func (o *Occupancy) PlaceAt(c Cell, id PieceID) error {
	if !c.Valid() {
		return errors.Wrapf(errors.ErrPrecondition, "cell %d is not playable", int(c))
	}
	if id <= NoPiece {
		return errors.Wrapf(errors.ErrPrecondition, "piece id %d is not positive", id)
	}
	if cur := o.cells[c]; cur != NoPiece {
		return errors.Wrapf(errors.ErrOccupancyViolation, "cell %d holds piece %d, cannot place %d", int(c), cur, id)
	}
	o.cells[c] = id
	return nil
}

// Vacate empties cell c and returns the piece that stood there.
func (o *Occupancy) Vacate(c Cell) PieceID {
	if !c.Valid() {
		return NoPiece
	}
	id := o.cells[c]
	o.cells[c] = NoPiece
	return id
}

// PieceAt returns the piece on c, if any.
func (o *Occupancy) PieceAt(c Cell) (PieceID, bool) {
	if !c.Valid() {
		return NoPiece, false
	}
	id := o.cells[c]
	return id, id != NoPiece
}

// CellOf returns the cell holding id, or NoCell.
func (o *Occupancy) CellOf(id PieceID) Cell {
	if id == NoPiece {
		return NoCell
	}
	for c := Cell(1); c <= NumCells; c++ {
		if o.cells[c] == id {
			return c
		}
	}
	return NoCell
}

// Count returns the number of occupied cells.
func (o *Occupancy) Count() int {
	n := 0
	for c := Cell(1); c <= NumCells; c++ {
		if o.cells[c] != NoPiece {
			n++
		}
	}
	return n
}

// Entries returns a copy of the non-empty entries.
func (o *Occupancy) Entries() map[Cell]PieceID {
	out := make(map[Cell]PieceID)
	for c := Cell(1); c <= NumCells; c++ {
		if id := o.cells[c]; id != NoPiece {
			out[c] = id
		}
	}
	return out
}

// Rebuilt reports whether RebuildFromPositions has run.
func (o *Occupancy) Rebuilt() bool {
	return o.rebuilt
}

// RebuildFromPositions seeds the map from the geometric positions of the
// initial pieces. It runs once per match: later calls return false and
// change nothing. A placement outside every playable cell, or two
// placements in one cell, fail the rebuild and leave the map empty.
func (o *Occupancy) RebuildFromPositions(placements []Placement) (bool, error) {
	if o.rebuilt {
		return false, nil
	}
	var next Occupancy
	for _, pl := range placements {
		c := CellContaining(pl.At)
		if c == NoCell {
			return false, errors.Wrapf(errors.ErrPrecondition,
				"piece %d at (%.2f, %.2f) is not on a playable cell", pl.ID, pl.At.X, pl.At.Y)
		}
		if err := next.PlaceAt(c, pl.ID); err != nil {
			return false, err
		}
	}
	o.cells = next.cells
	o.rebuilt = true
	return true, nil
}
