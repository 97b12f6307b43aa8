package hashing

import (
	"testing"

	"github.com/lgbarn/draughts-go/internal/draughts"
	"github.com/lgbarn/draughts-go/internal/testutil"
)

func TestZobristHashConsistency(t *testing.T) {
	board1, err := draughts.NewBoardFromSetup(draughts.NewStandardSetup())
	testutil.AssertNoError(t, err)
	board2 := board1.Clone()

	hash1 := GenerateZobristHash(board1, draughts.Red)
	hash2 := GenerateZobristHash(board2, draughts.Red)

	if hash1 != hash2 {
		t.Errorf("Identical boards produced different hashes: %x != %x", hash1, hash2)
	}
}

func TestZobristHashIgnoresPieceIDs(t *testing.T) {
	a := testutil.MustBoard(t, "r1@11 b20@22")
	b := testutil.MustBoard(t, "r7@11 b31@22")
	if GenerateZobristHash(a, draughts.Red) != GenerateZobristHash(b, draughts.Red) {
		t.Error("hash depends on piece ids")
	}
}

func TestZobristHashDifferentPositions(t *testing.T) {
	base := testutil.MustBoard(t, "r1@11 b20@22")
	tests := []struct {
		name   string
		board  *draughts.Board
		toMove draughts.Side
	}{
		{"side to move", base, draughts.Black},
		{"moved piece", testutil.MustBoard(t, "r1@15 b20@22"), draughts.Red},
		{"crowned piece", testutil.MustBoard(t, "R1@11 b20@22"), draughts.Red},
		{"swapped owners", testutil.MustBoard(t, "b1@11 r20@22"), draughts.Red},
		{"captured piece", testutil.MustBoard(t, "r1@11"), draughts.Red},
	}
	want := GenerateZobristHash(base, draughts.Red)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if GenerateZobristHash(tt.board, tt.toMove) == want {
				t.Error("Different positions produced the same hash")
			}
		})
	}
}

func TestWeakHash(t *testing.T) {
	b := testutil.MustBoard(t, "r1@1 r2@2 R3@3 b20@29 B21@30 B22@31")
	if got, want := WeakHash(b), Material(2<<24|1<<16|1<<8|2); got != want {
		t.Errorf("WeakHash() = %08x; want %08x", got, want)
	}
}

func TestMaterialCount(t *testing.T) {
	m := WeakHash(testutil.MustBoard(t, "r1@1 r2@2 R3@3 b20@29 B21@30 B22@31"))
	tests := []struct {
		side draughts.Side
		rank draughts.Rank
		want int
	}{
		{draughts.Red, draughts.Man, 2},
		{draughts.Red, draughts.King, 1},
		{draughts.Black, draughts.Man, 1},
		{draughts.Black, draughts.King, 2},
	}
	for _, tt := range tests {
		if got := m.Count(tt.side, tt.rank); got != tt.want {
			t.Errorf("Count(%v, %v) = %d; want %d", tt.side, tt.rank, got, tt.want)
		}
	}
}

func TestRepetitionTracker(t *testing.T) {
	r := NewRepetitionTracker()
	if got := r.Add(1); got != 1 {
		t.Errorf("Add(1) = %d; want 1", got)
	}
	r.Add(2)
	if got := r.Add(1); got != 2 {
		t.Errorf("Add(1) again = %d; want 2", got)
	}
	if got := r.MaxRepeats(); got != 2 {
		t.Errorf("MaxRepeats() = %d; want 2", got)
	}
}

func TestDuplicateDetector(t *testing.T) {
	detector := NewDuplicateDetector(false, 0)
	sig := GameSignature{Hash: 42, Plies: 10, Weak: 0x0c000c00}

	if detector.CheckAndAdd(sig) {
		t.Error("First game was marked as duplicate")
	}
	if !detector.CheckAndAdd(sig) {
		t.Error("Duplicate game was not detected")
	}

	longer := sig
	longer.Plies = 12
	if !detector.CheckAndAdd(longer) {
		t.Error("Ply count should not matter without exact matching")
	}

	otherMaterial := sig
	otherMaterial.Weak = 0x0b000c00
	if detector.CheckAndAdd(otherMaterial) {
		t.Error("Different material was marked as duplicate")
	}

	if got := detector.DuplicateCount(); got != 2 {
		t.Errorf("DuplicateCount() = %d; want 2", got)
	}
	if got := detector.UniqueCount(); got != 2 {
		t.Errorf("UniqueCount() = %d; want 2", got)
	}
}

func TestDuplicateDetectorExactMatch(t *testing.T) {
	detector := NewDuplicateDetector(true, 0)
	detector.CheckAndAdd(GameSignature{Hash: 7, Plies: 3})
	if detector.CheckAndAdd(GameSignature{Hash: 7, Plies: 4}) {
		t.Error("Exact matching should compare ply counts")
	}
}

func TestDuplicateDetectorCapacity(t *testing.T) {
	detector := NewDuplicateDetector(false, 2)
	detector.CheckAndAdd(GameSignature{Hash: 1})
	detector.CheckAndAdd(GameSignature{Hash: 2})
	if !detector.IsFull() {
		t.Fatal("IsFull() = false after reaching capacity")
	}
	if detector.CheckAndAdd(GameSignature{Hash: 3}) {
		t.Error("New game marked as duplicate when full")
	}
	if detector.CheckAndAdd(GameSignature{Hash: 3}) {
		t.Error("Game stored past capacity")
	}
	if !detector.CheckAndAdd(GameSignature{Hash: 1}) {
		t.Error("Stored games are still detected when full")
	}
}
