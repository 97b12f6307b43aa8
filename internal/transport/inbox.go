package transport

import (
	"context"
	"sync"

	"github.com/lgbarn/draughts-go/internal/errors"
)

// Inbox is a bounded FIFO of inbound records. When full, pushing a record
// evicts the oldest one. Records are popped strictly in arrival order.
type Inbox struct {
	mu      sync.Mutex
	buf     []Record
	head    int
	size    int
	dropped int
	closed  bool
	ready   chan struct{}
}

// NewInbox creates an inbox holding at most capacity records.
func NewInbox(capacity int) *Inbox {
	if capacity < 1 {
		capacity = 1
	}
	return &Inbox{
		buf:   make([]Record, capacity),
		ready: make(chan struct{}, 1),
	}
}

// Push appends r. It reports whether an older record was evicted to make
// room. Pushing to a closed inbox is a no-op.
func (q *Inbox) Push(r Record) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	evicted := false
	if q.size == len(q.buf) {
		q.head = (q.head + 1) % len(q.buf)
		q.size--
		q.dropped++
		evicted = true
	}
	q.buf[(q.head+q.size)%len(q.buf)] = r
	q.size++
	q.signal()
	return evicted
}

// Pop removes the oldest record, blocking until one is available, the inbox
// is closed and empty, or ctx is done. A closed and drained inbox returns
// ErrConnectionDead.
func (q *Inbox) Pop(ctx context.Context) (Record, error) {
	for {
		q.mu.Lock()
		if q.size > 0 {
			r := q.buf[q.head]
			q.buf[q.head] = Record{}
			q.head = (q.head + 1) % len(q.buf)
			q.size--
			q.mu.Unlock()
			return r, nil
		}
		closed := q.closed
		q.mu.Unlock()
		if closed {
			return Record{}, errors.ErrConnectionDead
		}

		select {
		case <-q.ready:
		case <-ctx.Done():
			return Record{}, ctx.Err()
		}
	}
}

// Close stops accepting records. Records already queued can still be popped.
func (q *Inbox) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.signal()
}

// Len returns the number of queued records.
func (q *Inbox) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

// Dropped returns how many records were evicted by overflow.
func (q *Inbox) Dropped() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}

func (q *Inbox) signal() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}
