// Package errors provides sentinel errors and error types for the draughts engine.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidMove indicates a move or capture the rules do not allow.
	// The match state is left untouched.
	ErrInvalidMove = errors.New("invalid move attempt")

	// ErrOccupancyViolation indicates an attempt to place a piece on an
	// occupied cell. It signals a logic defect in the caller.
	ErrOccupancyViolation = errors.New("occupancy violation")

	// ErrPrecondition indicates a programmer precondition was broken.
	ErrPrecondition = errors.New("precondition violation")

	// ErrGameOver indicates an action attempted after the match ended.
	ErrGameOver = errors.New("game over")

	// ErrTransportParse indicates an inbound record that could not be decoded.
	ErrTransportParse = errors.New("transport parse failure")

	// ErrConnectionDead indicates the peer connection is no longer usable.
	ErrConnectionDead = errors.New("connection dead")

	// ErrNotation indicates malformed move text.
	ErrNotation = errors.New("malformed move notation")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// MoveError wraps a rejected action with the move context.
type MoveError struct {
	Err    error  // The underlying error
	Side   string // Side that attempted the action (if known)
	Piece  int    // Piece id (0 if not applicable)
	From   int    // Source cell (0 if not applicable)
	To     int    // Destination cell (0 if not applicable)
	Reason string // Short human-readable reason
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.Side != "" {
		parts = append(parts, e.Side)
	}
	if e.Piece > 0 {
		parts = append(parts, fmt.Sprintf("piece %d", e.Piece))
	}
	switch {
	case e.From > 0 && e.To > 0:
		parts = append(parts, fmt.Sprintf("%d->%d", e.From, e.To))
	case e.To > 0:
		parts = append(parts, fmt.Sprintf("to %d", e.To))
	}
	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	context := strings.Join(parts, ", ")
	if e.Err == nil {
		return context
	}
	if context == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", context, e.Err)
}

// Unwrap returns the underlying error.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// GameError wraps errors with game context, including game number,
// ply position, and move information. It implements the error interface
// and supports unwrapping via errors.Is() and errors.As().
type GameError struct {
	Err      error  // The underlying error
	GameNum  int    // 1-based game number in the file
	PlyNum   int    // Ply number where error occurred (0 if not applicable)
	MoveText string // The move text that caused the error (if applicable)
	File     string // Source file name (if known)
	Line     int    // Line number in source file (if known)
}

// Error returns a formatted error message including all available context.
func (e *GameError) Error() string {
	var parts []string

	if e.File != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.File, e.Line))
		} else {
			parts = append(parts, e.File)
		}
	}

	parts = append(parts, fmt.Sprintf("game %d", e.GameNum))

	if e.PlyNum > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.PlyNum))
	}

	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.MoveText))
	}

	context := strings.Join(parts, ", ")

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the GameError wrapper.
func (e *GameError) Unwrap() error {
	return e.Err
}

// ParseError represents a decoding error with input location context.
// It's used for move text and transport records.
type ParseError struct {
	Err    error  // The underlying error
	File   string // Source name (file name or peer address)
	Line   int    // Line number (1-based)
	Column int    // Column number (1-based)
	Got    string // The offending text
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.File != "" {
		loc := e.File
		if e.Line > 0 {
			loc += fmt.Sprintf(":%d", e.Line)
			if e.Column > 0 {
				loc += fmt.Sprintf(":%d", e.Column)
			}
		}
		parts = append(parts, loc)
	}
	if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %q", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}
	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
