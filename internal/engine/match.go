package engine

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/lgbarn/draughts-go/internal/draughts"
	"github.com/lgbarn/draughts-go/internal/errors"
)

// State is the turn state of a match.
type State int

const (
	// AwaitingSelection: no source piece chosen.
	AwaitingSelection State = iota
	// Selected: a source piece is chosen and no jump chain is pending.
	Selected
	// AwaitingCaptureContinuation: the piece that just captured must jump again.
	AwaitingCaptureContinuation
	// GameOver is terminal.
	GameOver
)

var stateNames = [...]string{"awaiting-selection", "selected", "awaiting-capture-continuation", "game-over"}

// String returns the string representation of a state.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Rules holds the rule switches a match is played with.
type Rules struct {
	// PromoteKings crowns a man that ends a move on the far row.
	PromoteKings bool
	// PromotionEndsChain stops a capture chain when the hunter is crowned.
	PromotionEndsChain bool
}

// DefaultRules returns English draughts rules.
func DefaultRules() Rules {
	return Rules{PromoteKings: true, PromotionEndsChain: true}
}

// Option configures a Match.
type Option func(*Match)

// WithRules sets the rule switches.
func WithRules(r Rules) Option {
	return func(m *Match) {
		m.rules = r
	}
}

// WithID sets the match id instead of generating one.
func WithID(id string) Option {
	return func(m *Match) {
		if id != "" {
			m.id = id
		}
	}
}

// WithFirstMover sets the side that moves first. Red moves first by default.
func WithFirstMover(side draughts.Side) Option {
	return func(m *Match) {
		m.toMove = side
	}
}

// Match is the authoritative state of one game. Every exported method holds
// the match lock for its whole duration, so local input and remote input may
// call in concurrently.
type Match struct {
	mu sync.Mutex

	id     string
	rules  Rules
	board  *draughts.Board
	state  State
	source draughts.Cell
	toMove draughts.Side
	forced ForcedMoveSet
	winner draughts.Side
	over   bool
	status string
	plies  int

	events []Event
	notify chan struct{}
}

// NewMatch builds a match from the setup provider's pieces. Red moves first
// unless WithFirstMover says otherwise.
func NewMatch(setup draughts.SetupProvider, opts ...Option) (*Match, error) {
	board, err := draughts.NewBoardFromSetup(setup)
	if err != nil {
		return nil, errors.Wrap(err, "match setup")
	}
	m := &Match{
		id:     uuid.NewString(),
		rules:  DefaultRules(),
		board:  board,
		toMove: draughts.Red,
		notify: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.forced = ScanSide(m.board, m.toMove)
	m.status = m.turnStatus()
	m.checkWinner(Local)
	return m, nil
}

// NewStandardMatch builds a match from the standard opening position.
func NewStandardMatch(opts ...Option) (*Match, error) {
	return NewMatch(draughts.NewStandardSetup(), opts...)
}

// SelectSource chooses the piece to act with. It must belong to the side to
// move. While a capture chain is pending only the capturing piece may be
// selected.
func (m *Match) SelectSource(origin Origin, id draughts.PieceID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selectLocked(origin, id)
}

// AttemptPlainMove steps the selected piece to dest. It is accepted only
// when no capture is available to the side to move.
func (m *Match) AttemptPlainMove(origin Origin, dest draughts.Cell) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.plainLocked(origin, dest)
}

// AttemptCapture jumps the selected piece to dest. dest must be the landing
// cell of one of the selected hunter's jumps in the current forced set.
func (m *Match) AttemptCapture(origin Origin, dest draughts.Cell) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.captureLocked(origin, dest)
}

// Play selects id and moves it to dest in one step, as a capture when
// capture is set. On failure the selection is restored, so a rejected
// action leaves the match exactly as it was.
func (m *Match) Play(origin Origin, id draughts.PieceID, dest draughts.Cell, capture bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	savedState, savedSource, savedEvents := m.state, m.source, len(m.events)
	restore := func() {
		m.state, m.source = savedState, savedSource
		m.events = m.events[:savedEvents]
	}

	if err := m.selectLocked(origin, id); err != nil {
		restore()
		return err
	}
	var err error
	if capture {
		err = m.captureLocked(origin, dest)
	} else {
		err = m.plainLocked(origin, dest)
	}
	if err != nil {
		restore()
	}
	return err
}

func (m *Match) reject(id draughts.PieceID, from, to draughts.Cell, reason string) error {
	sentinel := errors.ErrInvalidMove
	if m.over {
		sentinel = errors.ErrGameOver
	}
	return &errors.MoveError{
		Err:    sentinel,
		Side:   m.toMove.String(),
		Piece:  int(id),
		From:   int(from),
		To:     int(to),
		Reason: reason,
	}
}

func (m *Match) selectLocked(origin Origin, id draughts.PieceID) error {
	if m.over {
		return m.reject(id, draughts.NoCell, draughts.NoCell, "match is over")
	}
	p, ok := m.board.Pieces.Get(id)
	if !ok {
		return m.reject(id, draughts.NoCell, draughts.NoCell, "unknown piece")
	}
	if !p.Alive {
		return m.reject(id, draughts.NoCell, draughts.NoCell, "piece was captured")
	}
	if p.Owner != m.toMove {
		return m.reject(id, draughts.NoCell, draughts.NoCell, fmt.Sprintf("piece belongs to %s", p.Owner))
	}
	cell := m.board.Cells.CellOf(id)
	if m.state == AwaitingCaptureContinuation {
		if cell != m.source {
			return m.reject(id, cell, draughts.NoCell, "capture chain must continue with the same piece")
		}
		return nil
	}
	m.source = cell
	m.state = Selected
	m.emit(Event{Kind: EventSelected, Origin: origin, Side: p.Owner, Piece: id, From: cell})
	return nil
}

func (m *Match) plainLocked(origin Origin, dest draughts.Cell) error {
	if m.over {
		return m.reject(draughts.NoPiece, m.source, dest, "match is over")
	}
	if m.state == AwaitingCaptureContinuation {
		return m.reject(draughts.NoPiece, m.source, dest, "capture chain must continue")
	}
	if m.state != Selected {
		return m.reject(draughts.NoPiece, draughts.NoCell, dest, "no piece selected")
	}
	p, _ := m.board.PieceOn(m.source)
	if !m.forced.Empty() {
		return m.reject(p.ID, m.source, dest, "capture is mandatory")
	}
	d, dist, ok := draughts.DirectionBetween(m.source, dest, p.Owner)
	if !ok || dist != 1 || !allows(p.Rank, d) {
		return m.reject(p.ID, m.source, dest, "destination is not a diagonal step")
	}
	if !m.board.Empty(dest) {
		return m.reject(p.ID, m.source, dest, "destination is occupied")
	}

	from := m.source
	m.must(m.board.Relocate(from, dest))
	m.plies++
	m.emit(Event{Kind: EventMoved, Origin: origin, Side: p.Owner, Piece: p.ID, From: from, To: dest})
	m.crown(origin, p, dest)

	m.passTurn(origin)
	m.checkWinner(origin)
	return nil
}

func (m *Match) captureLocked(origin Origin, dest draughts.Cell) error {
	if m.over {
		return m.reject(draughts.NoPiece, m.source, dest, "match is over")
	}
	if m.state != Selected && m.state != AwaitingCaptureContinuation {
		return m.reject(draughts.NoPiece, draughts.NoCell, dest, "no piece selected")
	}
	hunter, _ := m.board.PieceOn(m.source)
	target, ok := m.forced.Lookup(hunter.ID, dest)
	if !ok {
		return m.reject(hunter.ID, m.source, dest, "no capture lands there")
	}

	from := m.source
	m.must(m.board.Relocate(from, dest))
	if _, err := m.board.Remove(target.PreyCell); err != nil {
		m.must(err)
	}
	m.plies++
	m.emit(Event{
		Kind: EventCaptured, Origin: origin, Side: hunter.Owner, Piece: hunter.ID,
		From: from, To: dest, Prey: target.Prey, PreyCell: target.PreyCell,
	})
	crowned := m.crown(origin, hunter, dest)

	if m.checkWinner(origin) {
		return nil
	}

	if !(crowned && m.rules.PromotionEndsChain) {
		if more := ScanPiece(m.board, hunter.ID); len(more) > 0 {
			m.forced = ForcedMoveSet{hunter.ID: more}
			m.source = dest
			m.state = AwaitingCaptureContinuation
			m.status = fmt.Sprintf("%s must keep capturing with piece %d", m.toMove, hunter.ID)
			return nil
		}
	}

	m.passTurn(origin)
	return nil
}

// crown promotes a man that reached the far row. Callers hold m.mu.
func (m *Match) crown(origin Origin, p draughts.Piece, at draughts.Cell) bool {
	if !m.rules.PromoteKings || p.Rank == draughts.King || at.Row() != p.Owner.CrowningRow() {
		return false
	}
	if !m.board.Pieces.Promote(p.ID) {
		return false
	}
	m.emit(Event{Kind: EventPromoted, Origin: origin, Side: p.Owner, Piece: p.ID, To: at})
	return true
}

// passTurn hands the move to the opponent and rescans for its captures.
func (m *Match) passTurn(origin Origin) {
	m.source = draughts.NoCell
	m.toMove = m.toMove.Opposite()
	m.forced = ScanSide(m.board, m.toMove)
	m.state = AwaitingSelection
	m.status = m.turnStatus()
	m.emit(Event{Kind: EventTurnChanged, Origin: origin, Side: m.toMove, Message: m.status})
}

// turnStatus describes the start of a turn for the side to move.
func (m *Match) turnStatus() string {
	if m.forced.Empty() {
		return fmt.Sprintf("%s to move", m.toMove)
	}
	return fmt.Sprintf("%s to move, capture is mandatory", m.toMove)
}

// checkWinner ends the match when one side has no live pieces left.
func (m *Match) checkWinner(origin Origin) bool {
	if m.over {
		return true
	}
	var winner draughts.Side
	switch m.board.Standing(draughts.Red, draughts.Black) {
	case draughts.Won:
		winner = draughts.Red
	case draughts.Lost:
		winner = draughts.Black
	default:
		return false
	}
	m.over = true
	m.winner = winner
	m.state = GameOver
	m.source = draughts.NoCell
	m.forced = ForcedMoveSet{}
	m.status = fmt.Sprintf("%s wins", winner)
	m.emit(Event{Kind: EventGameOver, Origin: origin, Side: winner, Message: m.status})
	return true
}

// must treats a failed board mutation as a broken invariant.
func (m *Match) must(err error) {
	if err != nil {
		panic(errors.Wrapf(err, "match %s", m.id))
	}
}

func allows(r draughts.Rank, d draughts.Direction) bool {
	for _, a := range draughts.Directions(r) {
		if a == d {
			return true
		}
	}
	return false
}
