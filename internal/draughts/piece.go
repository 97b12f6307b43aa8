package draughts

import (
	"fmt"
	"sort"

	"github.com/lgbarn/draughts-go/internal/errors"
)

// Piece is one checker.
type Piece struct {
	ID    PieceID
	Owner Side
	Rank  Rank
	Alive bool
}

// String returns a short description such as "Red man #3".
func (p Piece) String() string {
	rank := "man"
	if p.Rank == King {
		rank = "king"
	}
	return fmt.Sprintf("%s %s #%d", p.Owner, rank, p.ID)
}

// Registry is the arena of pieces for one match. Pieces are stored in
// insertion order and looked up by id; they are never removed, only marked
// not alive.
type Registry struct {
	pieces []Piece
	index  map[PieceID]int
	alive  [NumSides]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[PieceID]int)}
}

// Add registers a live piece. Ids must be positive and unique.
func (r *Registry) Add(id PieceID, owner Side, rank Rank) error {
	if id <= NoPiece {
		return errors.Wrapf(errors.ErrPrecondition, "piece id %d is not positive", id)
	}
	if owner != Red && owner != Black {
		return errors.Wrapf(errors.ErrPrecondition, "piece %d has no owner", id)
	}
	if _, dup := r.index[id]; dup {
		return errors.Wrapf(errors.ErrPrecondition, "piece id %d registered twice", id)
	}
	r.index[id] = len(r.pieces)
	r.pieces = append(r.pieces, Piece{ID: id, Owner: owner, Rank: rank, Alive: true})
	r.alive[owner]++
	return nil
}

// Get returns the piece with the given id.
func (r *Registry) Get(id PieceID) (Piece, bool) {
	i, ok := r.index[id]
	if !ok {
		return Piece{}, false
	}
	return r.pieces[i], true
}

// Capture marks a live piece as captured and decrements its owner's count.
// It returns false when the piece is unknown or already captured.
func (r *Registry) Capture(id PieceID) bool {
	i, ok := r.index[id]
	if !ok || !r.pieces[i].Alive {
		return false
	}
	r.pieces[i].Alive = false
	r.alive[r.pieces[i].Owner]--
	return true
}

// Promote crowns a live man. It returns false if nothing changed.
func (r *Registry) Promote(id PieceID) bool {
	i, ok := r.index[id]
	if !ok || !r.pieces[i].Alive || r.pieces[i].Rank == King {
		return false
	}
	r.pieces[i].Rank = King
	return true
}

// AliveCount returns the number of live pieces owned by side.
func (r *Registry) AliveCount(side Side) int {
	if side != Red && side != Black {
		return 0
	}
	return r.alive[side]
}

// Len returns the number of registered pieces, alive or not.
func (r *Registry) Len() int {
	return len(r.pieces)
}

// Pieces returns a copy of every registered piece, ordered by id.
func (r *Registry) Pieces() []Piece {
	out := make([]Piece, len(r.pieces))
	copy(out, r.pieces)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IDs returns the ids of side's pieces in registration order.
func (r *Registry) IDs(side Side) []PieceID {
	var out []PieceID
	for _, p := range r.pieces {
		if p.Owner == side {
			out = append(out, p.ID)
		}
	}
	return out
}

// Clone returns a deep copy of the registry.
func (r *Registry) Clone() *Registry {
	c := &Registry{
		pieces: make([]Piece, len(r.pieces)),
		index:  make(map[PieceID]int, len(r.index)),
		alive:  r.alive,
	}
	copy(c.pieces, r.pieces)
	for id, i := range r.index {
		c.index[id] = i
	}
	return c
}
