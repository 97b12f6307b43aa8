package draughts

import (
	"fmt"

	"github.com/lgbarn/draughts-go/internal/errors"
)

// Board combines the piece registry with the occupancy map. Callers outside
// the engine should treat it as read-only.
type Board struct {
	Pieces *Registry
	Cells  *Occupancy
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{
		Pieces: NewRegistry(),
		Cells:  &Occupancy{},
	}
}

// NewBoardFromSetup registers the provider's pieces and seeds the occupancy
// map from their positions.
func NewBoardFromSetup(setup SetupProvider) (*Board, error) {
	b := NewBoard()
	placements := setup.Placements()
	for _, pl := range placements {
		if err := b.Pieces.Add(pl.ID, pl.Owner, pl.Rank); err != nil {
			return nil, err
		}
	}
	if _, err := b.Cells.RebuildFromPositions(placements); err != nil {
		return nil, err
	}
	return b, nil
}

// PieceOn returns the piece on c, if any.
func (b *Board) PieceOn(c Cell) (Piece, bool) {
	id, ok := b.Cells.PieceAt(c)
	if !ok {
		return Piece{}, false
	}
	return b.Pieces.Get(id)
}

// Empty reports whether c is a playable cell with nothing on it.
func (b *Board) Empty(c Cell) bool {
	if !c.Valid() {
		return false
	}
	_, occupied := b.Cells.PieceAt(c)
	return !occupied
}

// Locate returns the cell of a live piece, or NoCell.
func (b *Board) Locate(id PieceID) Cell {
	p, ok := b.Pieces.Get(id)
	if !ok || !p.Alive {
		return NoCell
	}
	return b.Cells.CellOf(id)
}

// Relocate moves the piece on from to the empty cell to.
func (b *Board) Relocate(from, to Cell) error {
	id, ok := b.Cells.PieceAt(from)
	if !ok {
		return errors.Wrapf(errors.ErrPrecondition, "no piece on cell %d", int(from))
	}
	if err := b.Cells.PlaceAt(to, id); err != nil {
		return err
	}
	b.Cells.Vacate(from)
	return nil
}

// Remove takes the piece on c off the board and marks it captured.
func (b *Board) Remove(c Cell) (PieceID, error) {
	id := b.Cells.Vacate(c)
	if id == NoPiece {
		return NoPiece, errors.Wrapf(errors.ErrPrecondition, "no piece on cell %d", int(c))
	}
	if !b.Pieces.Capture(id) {
		return id, errors.Wrapf(errors.ErrPrecondition, "piece %d on cell %d is not alive", id, int(c))
	}
	return id, nil
}

// Standing is the match outcome from one player's point of view.
type Standing int

const (
	Ongoing Standing = iota
	Won
	Lost
)

// String returns the string representation of a standing.
func (s Standing) String() string {
	switch s {
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return "ongoing"
}

// Standing evaluates the match for player against opponent. A side with no
// live pieces has lost. Passing the same side twice is a programming error
// and panics.
func (b *Board) Standing(player, opponent Side) Standing {
	if player == opponent {
		panic(errors.Wrapf(errors.ErrPrecondition, "standing of %s against itself", player))
	}
	switch {
	case b.Pieces.AliveCount(player) == 0:
		return Lost
	case b.Pieces.AliveCount(opponent) == 0:
		return Won
	}
	return Ongoing
}

// CheckInvariants verifies that live pieces and occupied cells are in
// one-to-one correspondence.
func (b *Board) CheckInvariants() error {
	seen := make(map[PieceID]Cell)
	for c, id := range b.Cells.Entries() {
		p, ok := b.Pieces.Get(id)
		if !ok {
			return fmt.Errorf("cell %d holds unknown piece %d", int(c), id)
		}
		if !p.Alive {
			return fmt.Errorf("cell %d holds captured piece %d", int(c), id)
		}
		if prev, dup := seen[id]; dup {
			return fmt.Errorf("piece %d on cells %d and %d", id, int(prev), int(c))
		}
		seen[id] = c
	}
	for _, p := range b.Pieces.Pieces() {
		if p.Alive {
			if _, ok := seen[p.ID]; !ok {
				return fmt.Errorf("live piece %d is not on the board", p.ID)
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cells := *b.Cells
	return &Board{
		Pieces: b.Pieces.Clone(),
		Cells:  &cells,
	}
}
