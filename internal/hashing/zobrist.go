package hashing

import (
	"github.com/lgbarn/draughts-go/internal/draughts"
)

// zobristKeys[side][rank][cell] and the side-to-move key are fixed for the
// life of the process, so hashes are comparable across matches.
var (
	zobristKeys   [draughts.NumSides][2][draughts.NumCells + 1]uint64
	zobristToMove uint64
)

func init() {
	seed := uint64(0x9e3779b97f4a7c15)
	for s := range zobristKeys {
		for r := range zobristKeys[s] {
			for c := 1; c <= draughts.NumCells; c++ {
				zobristKeys[s][r][c] = splitmix64(&seed)
			}
		}
	}
	zobristToMove = splitmix64(&seed)
}

func splitmix64(state *uint64) uint64 {
	*state += 0x9e3779b97f4a7c15
	z := *state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// GenerateZobristHash hashes the live pieces of b and the side to move.
// Piece ids do not take part: two boards with the same men and kings on the
// same cells hash equal.
func GenerateZobristHash(b *draughts.Board, toMove draughts.Side) uint64 {
	var h uint64
	for c := draughts.Cell(1); c <= draughts.NumCells; c++ {
		p, ok := b.PieceOn(c)
		if !ok {
			continue
		}
		h ^= zobristKeys[p.Owner][p.Rank][c]
	}
	if toMove == draughts.Black {
		h ^= zobristToMove
	}
	return h
}

// Material packs the men and king counts of both sides into one value:
// red men, red kings, black men, black kings, one byte each.
type Material uint32

// WeakHash returns the material signature of b.
func WeakHash(b *draughts.Board) Material {
	var counts [draughts.NumSides][2]uint32
	for c := draughts.Cell(1); c <= draughts.NumCells; c++ {
		if p, ok := b.PieceOn(c); ok {
			counts[p.Owner][p.Rank]++
		}
	}
	return Material(counts[draughts.Red][draughts.Man]<<24 |
		counts[draughts.Red][draughts.King]<<16 |
		counts[draughts.Black][draughts.Man]<<8 |
		counts[draughts.Black][draughts.King])
}

// Count returns how many pieces of the given owner and rank m records.
func (m Material) Count(side draughts.Side, rank draughts.Rank) int {
	shift := 24 - 8*(2*int(side)+int(rank))
	return int(m>>uint(shift)) & 0xff
}

// RepetitionTracker counts how often each position occurs in one game.
type RepetitionTracker struct {
	seen map[uint64]int
	max  int
}

// NewRepetitionTracker creates an empty tracker.
func NewRepetitionTracker() *RepetitionTracker {
	return &RepetitionTracker{seen: make(map[uint64]int)}
}

// Add records one occurrence of hash and returns how often it has now
// occurred.
func (r *RepetitionTracker) Add(hash uint64) int {
	r.seen[hash]++
	n := r.seen[hash]
	if n > r.max {
		r.max = n
	}
	return n
}

// MaxRepeats returns the highest occurrence count of any position.
func (r *RepetitionTracker) MaxRepeats() int {
	return r.max
}
