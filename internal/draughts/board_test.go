package draughts

import (
	"errors"
	"testing"

	derrors "github.com/lgbarn/draughts-go/internal/errors"
)

func mustStandardBoard(t *testing.T) *Board {
	t.Helper()
	b, err := NewBoardFromSetup(NewStandardSetup())
	if err != nil {
		t.Fatalf("NewBoardFromSetup(standard) error: %v", err)
	}
	return b
}

func TestStandardSetup(t *testing.T) {
	b := mustStandardBoard(t)

	if got := b.Cells.Count(); got != 2*PiecesPerSide {
		t.Errorf("occupied cells = %d; want %d", got, 2*PiecesPerSide)
	}
	if got := b.Pieces.AliveCount(Red); got != PiecesPerSide {
		t.Errorf("AliveCount(Red) = %d; want %d", got, PiecesPerSide)
	}
	if got := b.Pieces.AliveCount(Black); got != PiecesPerSide {
		t.Errorf("AliveCount(Black) = %d; want %d", got, PiecesPerSide)
	}
	if err := b.CheckInvariants(); err != nil {
		t.Errorf("CheckInvariants() = %v", err)
	}

	for c := Cell(1); c <= NumCells; c++ {
		p, ok := b.PieceOn(c)
		switch {
		case c <= 12:
			if !ok || p.Owner != Red || p.Rank != Man {
				t.Errorf("cell %d = %v (%v); want Red man", c, p, ok)
			}
			if row := c.Row(); row > 2 {
				t.Errorf("Red cell %d on row %d; want rows 0-2", c, row)
			}
		case c >= 21:
			if !ok || p.Owner != Black || p.Rank != Man {
				t.Errorf("cell %d = %v (%v); want Black man", c, p, ok)
			}
			if row := c.Row(); row < 5 {
				t.Errorf("Black cell %d on row %d; want rows 5-7", c, row)
			}
		default:
			if ok {
				t.Errorf("cell %d = %v; want empty", c, p)
			}
		}
	}
}

func TestStandardSetupWithIDs(t *testing.T) {
	red := []PieceID{101, 102, 103, 104, 105, 106, 107, 108, 109, 110, 111, 112}
	black := []PieceID{201, 202, 203, 204, 205, 206, 207, 208, 209, 210, 211, 212}

	setup, err := StandardSetupWithIDs(red, black)
	if err != nil {
		t.Fatalf("StandardSetupWithIDs() error: %v", err)
	}
	b, err := NewBoardFromSetup(setup)
	if err != nil {
		t.Fatalf("NewBoardFromSetup() error: %v", err)
	}
	if got := b.Locate(101); got != 1 {
		t.Errorf("Locate(101) = %d; want 1", got)
	}
	if got := b.Locate(212); got != 32 {
		t.Errorf("Locate(212) = %d; want 32", got)
	}

	if _, err := StandardSetupWithIDs(red[:3], black); !errors.Is(err, derrors.ErrPrecondition) {
		t.Errorf("StandardSetupWithIDs(short list) error = %v; want ErrPrecondition", err)
	}
}

func TestNewBoardFromSetupRejectsDuplicateIDs(t *testing.T) {
	setup := CustomSetup{
		{ID: 1, Owner: Red, Cell: 11},
		{ID: 1, Owner: Black, Cell: 22},
	}
	if _, err := NewBoardFromSetup(setup); !errors.Is(err, derrors.ErrPrecondition) {
		t.Errorf("NewBoardFromSetup(duplicate ids) error = %v; want ErrPrecondition", err)
	}
}

func TestNewBoardFromSetupRejectsSharedCell(t *testing.T) {
	setup := CustomSetup{
		{ID: 1, Owner: Red, Cell: 11},
		{ID: 2, Owner: Black, Cell: 11},
	}
	if _, err := NewBoardFromSetup(setup); !errors.Is(err, derrors.ErrOccupancyViolation) {
		t.Errorf("NewBoardFromSetup(shared cell) error = %v; want ErrOccupancyViolation", err)
	}
}

func TestOccupancyPlaceAt(t *testing.T) {
	var o Occupancy

	if err := o.PlaceAt(14, 3); err != nil {
		t.Fatalf("PlaceAt(14, 3) error: %v", err)
	}
	if id, ok := o.PieceAt(14); !ok || id != 3 {
		t.Errorf("PieceAt(14) = (%d, %v); want (3, true)", id, ok)
	}

	err := o.PlaceAt(14, 4)
	if !errors.Is(err, derrors.ErrOccupancyViolation) {
		t.Fatalf("PlaceAt on occupied cell error = %v; want ErrOccupancyViolation", err)
	}
	if id, _ := o.PieceAt(14); id != 3 {
		t.Errorf("PieceAt(14) after rejected PlaceAt = %d; want 3", id)
	}

	if err := o.PlaceAt(NoCell, 5); !errors.Is(err, derrors.ErrPrecondition) {
		t.Errorf("PlaceAt(NoCell) error = %v; want ErrPrecondition", err)
	}

	if got := o.Vacate(14); got != 3 {
		t.Errorf("Vacate(14) = %d; want 3", got)
	}
	if _, ok := o.PieceAt(14); ok {
		t.Error("PieceAt(14) after Vacate reports occupied")
	}
	if got := o.Vacate(14); got != NoPiece {
		t.Errorf("Vacate(empty) = %d; want NoPiece", got)
	}
}

func TestRebuildFromPositionsRunsOnce(t *testing.T) {
	var o Occupancy
	first := []Placement{{ID: 1, Owner: Red, At: Cell(11).Position().Centre()}}

	applied, err := o.RebuildFromPositions(first)
	if err != nil || !applied {
		t.Fatalf("first RebuildFromPositions = (%v, %v); want (true, nil)", applied, err)
	}

	second := []Placement{{ID: 2, Owner: Black, At: Cell(22).Position().Centre()}}
	applied, err = o.RebuildFromPositions(second)
	if err != nil || applied {
		t.Fatalf("second RebuildFromPositions = (%v, %v); want (false, nil)", applied, err)
	}
	if _, ok := o.PieceAt(22); ok {
		t.Error("second rebuild changed the map")
	}
	if id, _ := o.PieceAt(11); id != 1 {
		t.Errorf("PieceAt(11) = %d; want 1", id)
	}
}

func TestRebuildFromPositionsRejectsLightSquare(t *testing.T) {
	var o Occupancy
	bad := []Placement{{ID: 1, Owner: Red, At: Point{X: 1.5, Y: 0.5}}}
	if _, err := o.RebuildFromPositions(bad); !errors.Is(err, derrors.ErrPrecondition) {
		t.Errorf("RebuildFromPositions(light square) error = %v; want ErrPrecondition", err)
	}
	if o.Rebuilt() {
		t.Error("failed rebuild marked the map as rebuilt")
	}
}

func TestRelocateAndRemove(t *testing.T) {
	b := mustStandardBoard(t)

	if err := b.Relocate(11, 15); err != nil {
		t.Fatalf("Relocate(11, 15) error: %v", err)
	}
	if !b.Empty(11) || b.Empty(15) {
		t.Errorf("after Relocate: Empty(11)=%v Empty(15)=%v; want true,false", b.Empty(11), b.Empty(15))
	}
	if err := b.Relocate(15, 10); !errors.Is(err, derrors.ErrOccupancyViolation) {
		t.Errorf("Relocate onto occupied cell error = %v; want ErrOccupancyViolation", err)
	}

	id, err := b.Remove(22)
	if err != nil {
		t.Fatalf("Remove(22) error: %v", err)
	}
	if p, _ := b.Pieces.Get(id); p.Alive {
		t.Errorf("removed piece %d still alive", id)
	}
	if got := b.Pieces.AliveCount(Black); got != PiecesPerSide-1 {
		t.Errorf("AliveCount(Black) = %d; want %d", got, PiecesPerSide-1)
	}
	if err := b.CheckInvariants(); err != nil {
		t.Errorf("CheckInvariants() = %v", err)
	}
	if _, err := b.Remove(22); !errors.Is(err, derrors.ErrPrecondition) {
		t.Errorf("Remove(empty) error = %v; want ErrPrecondition", err)
	}
}

func TestRegistryPromote(t *testing.T) {
	r := NewRegistry()
	if err := r.Add(7, Red, Man); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if !r.Promote(7) {
		t.Error("Promote(man) = false; want true")
	}
	if r.Promote(7) {
		t.Error("Promote(king) = true; want false")
	}
	if p, _ := r.Get(7); p.Rank != King {
		t.Errorf("rank after Promote = %v; want King", p.Rank)
	}
	if r.Capture(99) {
		t.Error("Capture(unknown) = true; want false")
	}
}

func TestStanding(t *testing.T) {
	b, err := NewBoardFromSetup(CustomSetup{{ID: 1, Owner: Red, Cell: 11}})
	if err != nil {
		t.Fatalf("NewBoardFromSetup() error: %v", err)
	}
	if got := b.Standing(Red, Black); got != Won {
		t.Errorf("Standing(Red, Black) = %v; want won", got)
	}
	if got := b.Standing(Black, Red); got != Lost {
		t.Errorf("Standing(Black, Red) = %v; want lost", got)
	}

	std := mustStandardBoard(t)
	if got := std.Standing(Red, Black); got != Ongoing {
		t.Errorf("standard Standing(Red, Black) = %v; want ongoing", got)
	}
}

func TestStandingAgainstItselfPanics(t *testing.T) {
	b := mustStandardBoard(t)
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Standing(Red, Red) did not panic")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, derrors.ErrPrecondition) {
			t.Errorf("panic value = %v; want ErrPrecondition", r)
		}
	}()
	b.Standing(Red, Red)
}

func TestCheckInvariantsDetectsCapturedPieceOnBoard(t *testing.T) {
	b := mustStandardBoard(t)
	b.Pieces.Capture(1)
	if err := b.CheckInvariants(); err == nil {
		t.Error("CheckInvariants() = nil; want error for captured piece still on board")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := mustStandardBoard(t)
	c := b.Clone()
	if err := c.Relocate(11, 15); err != nil {
		t.Fatalf("Relocate on clone error: %v", err)
	}
	c.Pieces.Promote(1)
	if b.Empty(11) {
		t.Error("relocating on the clone changed the original")
	}
	if p, _ := b.Pieces.Get(1); p.Rank != Man {
		t.Error("promoting on the clone changed the original")
	}
}
