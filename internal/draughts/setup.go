package draughts

import (
	"fmt"

	"github.com/lgbarn/draughts-go/internal/errors"
)

// Placement is one piece supplied by a setup provider: its identity and the
// geometric point it starts on.
type Placement struct {
	ID    PieceID
	Owner Side
	Rank  Rank
	At    Point
}

// SetupProvider supplies the initial piece list for a match.
type SetupProvider interface {
	Placements() []Placement
}

// StandardSetup is the conventional opening position: Red men on rows 0-2
// (cells 1-12) and Black men on rows 5-7 (cells 21-32). Ids are assigned to
// cells in ascending cell order.
type StandardSetup struct {
	RedIDs   []PieceID
	BlackIDs []PieceID
}

// PiecesPerSide is the number of men each side starts with.
const PiecesPerSide = 12

// NewStandardSetup numbers Red's men 1-12 and Black's 13-24.
func NewStandardSetup() StandardSetup {
	s := StandardSetup{
		RedIDs:   make([]PieceID, PiecesPerSide),
		BlackIDs: make([]PieceID, PiecesPerSide),
	}
	for i := 0; i < PiecesPerSide; i++ {
		s.RedIDs[i] = PieceID(i + 1)
		s.BlackIDs[i] = PieceID(PiecesPerSide + i + 1)
	}
	return s
}

// StandardSetupWithIDs builds the opening position from id lists received
// from a peer. Each list must hold exactly PiecesPerSide ids.
func StandardSetupWithIDs(red, black []PieceID) (StandardSetup, error) {
	if len(red) != PiecesPerSide || len(black) != PiecesPerSide {
		return StandardSetup{}, errors.Wrapf(errors.ErrPrecondition,
			"standard setup needs %d ids per side, got red=%d black=%d", PiecesPerSide, len(red), len(black))
	}
	return StandardSetup{
		RedIDs:   append([]PieceID(nil), red...),
		BlackIDs: append([]PieceID(nil), black...),
	}, nil
}

// Placements implements SetupProvider.
func (s StandardSetup) Placements() []Placement {
	out := make([]Placement, 0, len(s.RedIDs)+len(s.BlackIDs))
	for i, id := range s.RedIDs {
		c := Cell(i + 1)
		out = append(out, Placement{ID: id, Owner: Red, Rank: Man, At: c.Position().Centre()})
	}
	first := NumCells - PiecesPerSide + 1
	for i, id := range s.BlackIDs {
		c := Cell(first + i)
		out = append(out, Placement{ID: id, Owner: Black, Rank: Man, At: c.Position().Centre()})
	}
	return out
}

// CustomSetup places arbitrary pieces by cell. It is used for composed
// positions and tests.
type CustomSetup []CellPlacement

// CellPlacement names a piece and the cell it starts on.
type CellPlacement struct {
	ID    PieceID
	Owner Side
	Rank  Rank
	Cell  Cell
}

// Placements implements SetupProvider.
func (s CustomSetup) Placements() []Placement {
	out := make([]Placement, 0, len(s))
	for _, cp := range s {
		out = append(out, Placement{ID: cp.ID, Owner: cp.Owner, Rank: cp.Rank, At: cp.Cell.Position().Centre()})
	}
	return out
}

// String lists the custom placements.
func (s CustomSetup) String() string {
	out := ""
	for i, cp := range s {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%s%d@%d", cp.Owner.String()[:1], cp.ID, cp.Cell)
	}
	return out
}
