package draughts

// The 32 playable squares are numbered 32 down to 1, row-major from the top
// row (row 7) to the bottom row (row 0), left to right within a row:
//
//	row 7:  32  31  30  29
//	row 6:  28  27  26  25
//	...
//	row 0:   4   3   2   1
//
// A square (row, col) is playable when row+col is even, so even rows use
// columns 0,2,4,6 and odd rows use 1,3,5,7.

type cellInfo struct {
	pos    Position
	parity Parity
}

var (
	cellTable [NumCells + 1]cellInfo
	cellGrid  [BoardSize][BoardSize]Cell
)

func init() {
	cellTable[NoCell] = cellInfo{pos: Position{Row: -1, Col: -1}}
	for row := 0; row < BoardSize; row++ {
		for k := 0; k < CellsPerRow; k++ {
			col := 2*k + row%2
			c := Cell(CellsPerRow*row + CellsPerRow - k)
			cellTable[c] = cellInfo{
				pos:    Position{Row: row, Col: col},
				parity: Parity(row % 2),
			}
			cellGrid[row][col] = c
		}
	}
}

// CellAt returns the cell at p, or NoCell when p is off the board or is a
// light square.
func CellAt(p Position) Cell {
	if !p.Contained() {
		return NoCell
	}
	return cellGrid[p.Row][p.Col]
}

// CellContaining returns the cell whose square contains pt.
func CellContaining(pt Point) Cell {
	if pt.X < 0 || pt.Y < 0 {
		return NoCell
	}
	return CellAt(Position{Row: int(pt.Y), Col: int(pt.X)})
}

// Position returns the board position of c. NoCell maps to (-1, -1).
func (c Cell) Position() Position {
	if !c.Valid() {
		return cellTable[NoCell].pos
	}
	return cellTable[c].pos
}

// Row returns the row of c.
func (c Cell) Row() int { return c.Position().Row }

// Col returns the column of c.
func (c Cell) Col() int { return c.Position().Col }

// Parity returns the parity of the row holding c.
func (c Cell) Parity() Parity {
	if !c.Valid() {
		return EvenRow
	}
	return cellTable[c].parity
}

// AllCells returns the playable cells in ascending order.
func AllCells() []Cell {
	out := make([]Cell, 0, NumCells)
	for c := Cell(1); c <= NumCells; c++ {
		out = append(out, c)
	}
	return out
}

// Direction is a diagonal direction relative to the moving side. Left and
// right are taken from the mover's seat, so Black's ForwardLeft points
// toward increasing columns.
type Direction int

const (
	ForwardLeft Direction = iota
	ForwardRight
	BackwardLeft
	BackwardRight
)

var directionNames = [...]string{"forward-left", "forward-right", "backward-left", "backward-right"}

// String returns the string representation of a direction.
func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "unknown"
}

var (
	forwardDirections = []Direction{ForwardLeft, ForwardRight}
	allDirections     = []Direction{ForwardLeft, ForwardRight, BackwardLeft, BackwardRight}
)

// Directions returns the directions a piece of the given rank moves and
// captures in: the two forward diagonals for a man, all four for a king.
// The returned slice must not be modified.
func Directions(r Rank) []Direction {
	if r == King {
		return allDirections
	}
	return forwardDirections
}

// Vector returns the (row, col) step of d for side.
func (d Direction) Vector(side Side) (dRow, dCol int) {
	f := side.Forward()
	dRow, dCol = f, -f
	if d == ForwardRight || d == BackwardRight {
		dCol = f
	}
	if d == BackwardLeft || d == BackwardRight {
		dRow = -f
	}
	return dRow, dCol
}

// stepOffset[parity][up][right] is the index offset of a single diagonal step
// toward increasing rows (up) and columns (right).
var stepOffset = [2][2][2]int{
	EvenRow: {{3, 4}, {5, 4}},
	OddRow:  {{4, 5}, {4, 3}},
}

// Deltas returns the index offsets from c to the adjacent cell and to the
// landing cell of a jump in direction d for side. The offsets are pure
// arithmetic: they say nothing about whether the target is on the board.
// Even rows use the 4/5 pair and odd rows the 3/4 pair for Red's forward
// steps; Black's offsets are the same pairs with the sign flipped, selected
// by the row parity as seen from Black's seat.
func Deltas(c Cell, side Side, d Direction) (adjacent, landing int) {
	dRow, dCol := d.Vector(side)
	up, right := 0, 0
	if dRow > 0 {
		up = 1
	}
	if dCol > 0 {
		right = 1
	}
	adjacent = stepOffset[c.Parity()][up][right]
	if dRow < 0 {
		adjacent = -adjacent
	}
	landing = 2*CellsPerRow*dRow - dCol
	return adjacent, landing
}

// Neighbor returns the cell one diagonal step from c in direction d for side,
// or NoCell when the step leaves the board.
func Neighbor(c Cell, side Side, d Direction) Cell {
	if !c.Valid() {
		return NoCell
	}
	dRow, dCol := d.Vector(side)
	p := c.Position()
	return CellAt(Position{Row: p.Row + dRow, Col: p.Col + dCol})
}

// JumpPath returns the cell jumped over and the landing cell for a capture
// from c in direction d, computed with Deltas. Both are NoCell when no jump
// fits on the board: the jumped square must be interior, otherwise the
// landing square would fall off an edge. The index arithmetic wraps across
// the board edges, so the results are checked against the diagonal geometry.
func JumpPath(c Cell, side Side, d Direction) (over, landing Cell) {
	if !c.Valid() {
		return NoCell, NoCell
	}
	adjacent, jump := Deltas(c, side, d)
	over, landing = c+Cell(adjacent), c+Cell(jump)
	if !over.Valid() || !landing.Valid() || !over.Position().Interior() {
		return NoCell, NoCell
	}
	if over != Neighbor(c, side, d) || landing != Neighbor(over, side, d) {
		return NoCell, NoCell
	}
	return over, landing
}

// DirectionBetween returns the direction and distance (1 for a step, 2 for a
// jump) leading from one cell to another along a diagonal, as seen by side.
func DirectionBetween(from, to Cell, side Side) (Direction, int, bool) {
	if !from.Valid() || !to.Valid() {
		return 0, 0, false
	}
	a, b := from.Position(), to.Position()
	dRow, dCol := b.Row-a.Row, b.Col-a.Col
	dist := dRow
	if dist < 0 {
		dist = -dist
	}
	if dist == 0 || dist > 2 || (dCol != dRow && dCol != -dRow) {
		return 0, 0, false
	}
	for _, d := range allDirections {
		vr, vc := d.Vector(side)
		if vr*dist == dRow && vc*dist == dCol {
			return d, dist, true
		}
	}
	return 0, 0, false
}
