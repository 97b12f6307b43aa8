package testutil

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/lgbarn/draughts-go/internal/draughts"
)

// ParsePosition builds a custom setup from a compact description such as
// "r1@18 R2@11 b20@22". Each token is a side letter (r or b; upper case for
// a king), the piece id, "@", and the cell number.
func ParsePosition(desc string) (draughts.CustomSetup, error) {
	var setup draughts.CustomSetup
	for _, tok := range strings.Fields(desc) {
		at := strings.IndexByte(tok, '@')
		if len(tok) < 4 || at < 2 {
			return nil, fmt.Errorf("bad piece token %q", tok)
		}
		var cp draughts.CellPlacement
		switch tok[0] {
		case 'r':
			cp.Owner, cp.Rank = draughts.Red, draughts.Man
		case 'R':
			cp.Owner, cp.Rank = draughts.Red, draughts.King
		case 'b':
			cp.Owner, cp.Rank = draughts.Black, draughts.Man
		case 'B':
			cp.Owner, cp.Rank = draughts.Black, draughts.King
		default:
			return nil, fmt.Errorf("bad side in token %q", tok)
		}
		id, err := strconv.Atoi(tok[1:at])
		if err != nil {
			return nil, fmt.Errorf("bad id in token %q: %w", tok, err)
		}
		cell, err := strconv.Atoi(tok[at+1:])
		if err != nil {
			return nil, fmt.Errorf("bad cell in token %q: %w", tok, err)
		}
		cp.ID = draughts.PieceID(id)
		cp.Cell = draughts.Cell(cell)
		setup = append(setup, cp)
	}
	return setup, nil
}

// MustPosition is ParsePosition that fails the test on error.
func MustPosition(t *testing.T, desc string) draughts.CustomSetup {
	t.Helper()
	setup, err := ParsePosition(desc)
	if err != nil {
		t.Fatalf("ParsePosition(%q): %v", desc, err)
	}
	return setup
}

// MustBoard builds a board from a compact position description.
func MustBoard(t *testing.T, desc string) *draughts.Board {
	t.Helper()
	b, err := draughts.NewBoardFromSetup(MustPosition(t, desc))
	if err != nil {
		t.Fatalf("NewBoardFromSetup(%q): %v", desc, err)
	}
	return b
}
