// Package draughts provides the board topology, piece registry and occupancy
// map for 8x8 checkers.
package draughts

import "fmt"

// Side identifies a player.
type Side int

const (
	Red Side = iota
	Black
	NumSides
)

// String returns the string representation of a side.
func (s Side) String() string {
	switch s {
	case Red:
		return "Red"
	case Black:
		return "Black"
	}
	return "Unknown"
}

// Opposite returns the opposing side.
func (s Side) Opposite() Side {
	if s == Red {
		return Black
	}
	return Red
}

// Forward returns the row delta of a forward step for the side:
// +1 for Red, -1 for Black.
func (s Side) Forward() int {
	if s == Red {
		return 1
	}
	return -1
}

// HomeRow returns the row a side starts from.
func (s Side) HomeRow() int {
	if s == Red {
		return 0
	}
	return BoardSize - 1
}

// CrowningRow returns the row on which a man of the side is promoted.
func (s Side) CrowningRow() int {
	return s.Opposite().HomeRow()
}

// ParseSide converts a case-insensitive side name.
func ParseSide(name string) (Side, bool) {
	switch name {
	case "red", "Red", "RED", "r", "R":
		return Red, true
	case "black", "Black", "BLACK", "b", "B":
		return Black, true
	}
	return Red, false
}

// Rank is the promotion status of a piece.
type Rank int

const (
	Man Rank = iota
	King
)

// String returns the string representation of a rank.
func (r Rank) String() string {
	if r == King {
		return "King"
	}
	return "Man"
}

// PieceID identifies a piece for the lifetime of a match.
// Valid ids are positive; NoPiece marks an empty cell.
type PieceID int

// NoPiece is the zero PieceID.
const NoPiece PieceID = 0

// Cell is the index of a playable square, 1..32. NoCell is the sentinel for
// non-playable or off-board squares.
type Cell int

const (
	NoCell   Cell = 0
	NumCells      = 32

	BoardSize   = 8
	CellsPerRow = BoardSize / 2
)

// String returns the cell number, or "-" for NoCell.
func (c Cell) String() string {
	if !c.Valid() {
		return "-"
	}
	return fmt.Sprintf("%d", int(c))
}

// Valid reports whether c names one of the 32 playable cells.
func (c Cell) Valid() bool {
	return c >= 1 && c <= NumCells
}

// Position is a (row, col) pair in cell units. Row 0 is Red's home row and
// column 0 is the left edge as seen from Red's side.
type Position struct {
	Row int
	Col int
}

// Contained reports whether p lies within the 8x8 board.
func (p Position) Contained() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

// Interior reports whether p lies strictly inside the board, away from every
// edge. Only an interior square can be jumped over.
func (p Position) Interior() bool {
	return p.Row > 0 && p.Row < BoardSize-1 && p.Col > 0 && p.Col < BoardSize-1
}

// Playable reports whether p is a dark square.
func (p Position) Playable() bool {
	return p.Contained() && (p.Row+p.Col)%2 == 0
}

// Point is a geometric location in cell units, as supplied by a setup
// provider. The containing square of (x, y) is (row=floor(y), col=floor(x)).
type Point struct {
	X float64
	Y float64
}

// Centre returns the point at the middle of the square at p.
func (p Position) Centre() Point {
	return Point{X: float64(p.Col) + 0.5, Y: float64(p.Row) + 0.5}
}

// Parity of a board row; it selects the delta pair used for adjacency.
type Parity int

const (
	EvenRow Parity = iota
	OddRow
)

// String returns the string representation of a parity.
func (p Parity) String() string {
	if p == OddRow {
		return "odd"
	}
	return "even"
}
