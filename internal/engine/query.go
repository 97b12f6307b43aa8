package engine

import (
	"github.com/lgbarn/draughts-go/internal/draughts"
)

// ID returns the match id.
func (m *Match) ID() string {
	return m.id
}

// ForcedMoves returns a copy of the current forced move set for the side to
// move.
func (m *Match) ForcedMoves() ForcedMoveSet {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.forced.Clone()
}

// StatusMessage returns the human-readable status line.
func (m *Match) StatusMessage() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// IsGameOver reports whether the match has ended.
func (m *Match) IsGameOver() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.over
}

// Winner returns the winning side once the match is over.
func (m *Match) Winner() (draughts.Side, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.winner, m.over
}

// SideToMove returns the side whose turn it is.
func (m *Match) SideToMove() draughts.Side {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.toMove
}

// State returns the current turn state.
func (m *Match) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Source returns the selected cell, or NoCell.
func (m *Match) Source() draughts.Cell {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.source
}

// PieceAt returns the piece on cell c.
func (m *Match) PieceAt(c draughts.Cell) (draughts.Piece, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.board.PieceOn(c)
}

// Locate returns the cell of a live piece, or NoCell.
func (m *Match) Locate(id draughts.PieceID) draughts.Cell {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.board.Locate(id)
}

// AliveCount returns the number of live pieces side has.
func (m *Match) AliveCount(side draughts.Side) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.board.Pieces.AliveCount(side)
}

// PieceIDs returns the ids of side's pieces in setup order.
func (m *Match) PieceIDs(side draughts.Side) []draughts.PieceID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.board.Pieces.IDs(side)
}

// Blocked reports whether the side to move has neither a capture nor a plain
// move. The match does not end on its own in that case; collaborators decide
// how to present it.
func (m *Match) Blocked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.over {
		return false
	}
	return m.forced.Empty() && len(PlainMoves(m.board, m.toMove)) == 0
}

// Verify checks the occupancy invariants of the current position.
func (m *Match) Verify() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.board.CheckInvariants()
}

// Snapshot is a read-only copy of everything a presentation layer needs.
type Snapshot struct {
	ID         string                             `json:"id"`
	State      string                             `json:"state"`
	SideToMove string                             `json:"sideToMove"`
	GameOver   bool                               `json:"gameOver"`
	Winner     string                             `json:"winner,omitempty"`
	Message    string                             `json:"message"`
	Source     draughts.Cell                      `json:"source,omitempty"`
	Plies      int                                `json:"plies"`
	RedAlive   int                                `json:"redAlive"`
	BlackAlive int                                `json:"blackAlive"`
	Occupancy  map[draughts.Cell]draughts.PieceID `json:"occupancy"`
	Pieces     []draughts.Piece                   `json:"pieces"`
	Forced     ForcedMoveSet                      `json:"forced"`
}

// Snapshot copies the match state under the lock.
func (m *Match) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := Snapshot{
		ID:         m.id,
		State:      m.state.String(),
		SideToMove: m.toMove.String(),
		GameOver:   m.over,
		Message:    m.status,
		Source:     m.source,
		Plies:      m.plies,
		RedAlive:   m.board.Pieces.AliveCount(draughts.Red),
		BlackAlive: m.board.Pieces.AliveCount(draughts.Black),
		Occupancy:  m.board.Cells.Entries(),
		Pieces:     m.board.Pieces.Pieces(),
		Forced:     m.forced.Clone(),
	}
	if m.over {
		s.Winner = m.winner.String()
	}
	return s
}

// PlainMoves returns the non-capturing steps open to the side to move,
// whether or not a capture currently makes them illegal.
func (m *Match) PlainMoves() map[draughts.PieceID][]draughts.Cell {
	m.mu.Lock()
	defer m.mu.Unlock()
	return PlainMoves(m.board, m.toMove)
}

// BoardCopy returns a deep copy of the current board.
func (m *Match) BoardCopy() *draughts.Board {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.board.Clone()
}
