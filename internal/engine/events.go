package engine

import (
	"github.com/lgbarn/draughts-go/internal/draughts"
)

// Origin tells where an action came from. The match treats both origins the
// same; collaborators use it to decide what to forward to the peer.
type Origin int

const (
	Local Origin = iota
	Remote
)

// String returns the string representation of an origin.
func (o Origin) String() string {
	if o == Remote {
		return "remote"
	}
	return "local"
}

// EventKind classifies an accepted transition.
type EventKind int

const (
	EventSelected EventKind = iota
	EventMoved
	EventCaptured
	EventPromoted
	EventTurnChanged
	EventGameOver
)

var eventKindNames = [...]string{"selected", "moved", "captured", "promoted", "turn", "gameover"}

// String returns the string representation of an event kind.
func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}

// Event is appended to the outbound queue on every accepted transition.
type Event struct {
	Kind     EventKind
	Origin   Origin
	Side     draughts.Side
	Piece    draughts.PieceID
	From     draughts.Cell
	To       draughts.Cell
	Prey     draughts.PieceID
	PreyCell draughts.Cell
	Message  string
}

// Forwardable reports whether the event is a locally originated move or
// capture that the peer must be told about.
func (e Event) Forwardable() bool {
	return e.Origin == Local && (e.Kind == EventMoved || e.Kind == EventCaptured)
}

// emit appends to the queue and wakes a waiting drainer. Callers hold m.mu.
func (m *Match) emit(e Event) {
	m.events = append(m.events, e)
	select {
	case m.notify <- struct{}{}:
	default:
	}
}

// DrainEvents returns the queued events in order and empties the queue.
func (m *Match) DrainEvents() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.events
	m.events = nil
	return out
}

// Notify returns a channel that receives a value whenever events are
// queued. Several appends may collapse into one signal, so a receiver should
// always drain the whole queue.
func (m *Match) Notify() <-chan struct{} {
	return m.notify
}
