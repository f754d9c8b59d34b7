package selection

import (
	"sync"

	"github.com/google/uuid"

	"github.com/andyrewlee/cellgrid/internal/logging"
)

const defaultHistoryLimit = 64

// Session owns the authoritative State and applies events one at a time in
// arrival order. It is safe for concurrent use; transitions never interleave.
type Session struct {
	mu     sync.Mutex
	id     string
	engine *Engine
	state  State
	undo   []State
	redo   []State
	limit  int
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithHistoryLimit bounds the undo history. Zero disables history.
func WithHistoryLimit(n int) SessionOption {
	return func(s *Session) {
		if n < 0 {
			n = 0
		}
		s.limit = n
	}
}

// WithInitialState seeds the session.
func WithInitialState(state State) SessionOption {
	return func(s *Session) { s.state = state }
}

// NewSession creates a session over engine.
func NewSession(engine *Engine, opts ...SessionOption) *Session {
	s := &Session{
		id:     uuid.NewString(),
		engine: engine,
		limit:  defaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID identifies the session in logs.
func (s *Session) ID() string { return s.id }

// Engine returns the engine transitions run through.
func (s *Session) Engine() *Engine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Apply runs ev through the engine and stores the result. A rejected event
// leaves the session untouched.
func (s *Session) Apply(ev Event) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(ev)
}

// ApplyAll applies events in order, stopping at the first rejected event. It
// returns the resulting state and the number of events applied.
func (s *Session) ApplyAll(events []Event) (State, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, ev := range events {
		if _, err := s.applyLocked(ev); err != nil {
			return s.state, i, err
		}
	}
	return s.state, len(events), nil
}

func (s *Session) applyLocked(ev Event) (State, error) {
	prev := s.state
	next, err := s.engine.Apply(prev, ev)
	if err != nil {
		logging.Warn("selection[%s]: rejected %s: %v", s.short(), ev, err)
		return prev, err
	}
	if prev.Same(next) {
		return prev, nil
	}
	// A gesture starts with a click or press; hovers and the release belong
	// to the press that opened the drag and share its history entry.
	if ev.Kind == KindClick || ev.Kind == KindPress {
		s.pushUndo(prev)
	}
	s.state = next
	logging.Debug("selection[%s]: %s -> %d selected, dragging=%t", s.short(), ev, next.Len(), next.Dragging())
	return next, nil
}

func (s *Session) pushUndo(prev State) {
	if s.limit == 0 {
		return
	}
	s.undo = append(s.undo, prev)
	if len(s.undo) > s.limit {
		s.undo = append([]State(nil), s.undo[len(s.undo)-s.limit:]...)
	}
	s.redo = nil
}

// Undo restores the state before the most recent gesture. It is refused
// while a drag is in progress.
func (s *Session) Undo() (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Drag.Active || len(s.undo) == 0 {
		return s.state, false
	}
	last := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, s.state)
	s.state = last
	return s.state, true
}

// Redo reapplies the most recently undone gesture.
func (s *Session) Redo() (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Drag.Active || len(s.redo) == 0 {
		return s.state, false
	}
	last := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, s.state)
	s.state = last
	return s.state, true
}

// CanUndo reports whether Undo would succeed.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.state.Drag.Active && len(s.undo) > 0
}

// CanRedo reports whether Redo would succeed.
func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.state.Drag.Active && len(s.redo) > 0
}

// Clear drops the selection, anchor and any drag session. The previous state
// is kept in the undo history.
func (s *Session) Clear() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Same(State{}) {
		return s.state
	}
	s.pushUndo(s.state)
	s.state = State{}
	return s.state
}

// Reset swaps the engine and starts from an empty state with no history.
// Used when the grid itself changes.
func (s *Session) Reset(engine *Engine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine = engine
	s.state = State{}
	s.undo = nil
	s.redo = nil
	logging.Info("selection[%s]: reset, %d cells", s.short(), engine.Index().Len())
}

// SetEngine swaps the engine while keeping the current state. The caller
// must only use this when the grid is unchanged.
func (s *Session) SetEngine(engine *Engine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine = engine
}

// SetHistoryLimit rebounds the undo history, dropping the oldest entries.
func (s *Session) SetHistoryLimit(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 0 {
		n = 0
	}
	s.limit = n
	if len(s.undo) > n {
		s.undo = append([]State(nil), s.undo[len(s.undo)-n:]...)
	}
	if len(s.redo) > n {
		s.redo = append([]State(nil), s.redo[len(s.redo)-n:]...)
	}
}

func (s *Session) short() string {
	if len(s.id) > 8 {
		return s.id[:8]
	}
	return s.id
}
