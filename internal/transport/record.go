// Package transport carries match actions between two processes. It owns
// everything the rule engine does not: record decoding, the bounded inbound
// queue, the connection lifecycle and the translation of records into match
// calls. Malformed input never reaches the match.
package transport

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/lgbarn/draughts-go/internal/draughts"
	"github.com/lgbarn/draughts-go/internal/errors"
)

// Kind names a record type.
type Kind string

const (
	KindMove    Kind = "MOVE"
	KindCapture Kind = "CAPTURE"
	KindWelcome Kind = "WELCOME"
	KindExit    Kind = "EXIT"
)

// Record is one logical message between peers.
type Record struct {
	Kind Kind `json:"kind"`

	// MOVE and CAPTURE
	Piece draughts.PieceID `json:"pieceId,omitempty"`
	Dest  draughts.Cell    `json:"destCell,omitempty"`

	// WELCOME
	Session  string             `json:"session,omitempty"`
	Team     string             `json:"team,omitempty"`
	RedIDs   []draughts.PieceID `json:"redPieceIds,omitempty"`
	BlackIDs []draughts.PieceID `json:"blackPieceIds,omitempty"`

	// EXIT
	Reason string `json:"reason,omitempty"`
}

// Move builds a MOVE record.
func Move(piece draughts.PieceID, dest draughts.Cell) Record {
	return Record{Kind: KindMove, Piece: piece, Dest: dest}
}

// Capture builds a CAPTURE record.
func Capture(piece draughts.PieceID, dest draughts.Cell) Record {
	return Record{Kind: KindCapture, Piece: piece, Dest: dest}
}

// Exit builds an EXIT record.
func Exit(reason string) Record {
	return Record{Kind: KindExit, Reason: reason}
}

// Welcome builds the record a host sends to a joiner: the joiner's team and
// both id lists, under a fresh session id.
func Welcome(team draughts.Side, setup draughts.StandardSetup) Record {
	return Record{
		Kind:     KindWelcome,
		Session:  uuid.NewString(),
		Team:     team.String(),
		RedIDs:   setup.RedIDs,
		BlackIDs: setup.BlackIDs,
	}
}

// Validate checks the field set required by the record kind.
func (r Record) Validate() error {
	switch r.Kind {
	case KindMove, KindCapture:
		if r.Piece <= draughts.NoPiece {
			return fmt.Errorf("%s without a piece id: %w", r.Kind, errors.ErrTransportParse)
		}
		if !r.Dest.Valid() {
			return fmt.Errorf("%s to invalid cell %d: %w", r.Kind, r.Dest, errors.ErrTransportParse)
		}
	case KindWelcome:
		if _, ok := draughts.ParseSide(r.Team); !ok {
			return fmt.Errorf("WELCOME with unknown team %q: %w", r.Team, errors.ErrTransportParse)
		}
		if _, err := r.Setup(); err != nil {
			return fmt.Errorf("WELCOME id lists: %v: %w", err, errors.ErrTransportParse)
		}
		if _, err := uuid.Parse(r.Session); err != nil {
			return fmt.Errorf("WELCOME session %q: %w", r.Session, errors.ErrTransportParse)
		}
	case KindExit:
	default:
		return fmt.Errorf("unknown record kind %q: %w", r.Kind, errors.ErrTransportParse)
	}
	return nil
}

// Setup returns the standard setup described by a WELCOME record.
func (r Record) Setup() (draughts.StandardSetup, error) {
	return draughts.StandardSetupWithIDs(r.RedIDs, r.BlackIDs)
}

// String returns a short human-readable form of the record.
func (r Record) String() string {
	switch r.Kind {
	case KindMove, KindCapture:
		return fmt.Sprintf("%s piece %d to %d", r.Kind, r.Piece, r.Dest)
	case KindWelcome:
		return fmt.Sprintf("%s session %s team %s", r.Kind, r.Session, r.Team)
	case KindExit:
		return fmt.Sprintf("%s %q", r.Kind, r.Reason)
	}
	return string(r.Kind)
}
