// Package selection implements the multi-cell selection state machine:
// click, ctrl-toggle, shift-range and drag-range selection over a grid.Index.
package selection

import (
	"fmt"

	"github.com/andyrewlee/cellgrid/internal/grid"
)

// Options selects the engine variant.
type Options struct {
	// Drag enables press and hover handling. When false only clicks change
	// the selection; release still closes a drag left open from before.
	Drag bool
	// AppendRange unions range selections into the current selection
	// instead of replacing it.
	AppendRange bool
}

// DefaultOptions returns the interactive defaults: drag on, replace ranges.
func DefaultOptions() Options {
	return Options{Drag: true}
}

// Engine is the stateless transition function over a fixed grid.
type Engine struct {
	index *grid.Index
	opts  Options
}

// NewEngine creates an engine for the given grid.
func NewEngine(index *grid.Index, opts Options) *Engine {
	return &Engine{index: index, opts: opts}
}

// Index returns the grid the engine resolves cells against.
func (e *Engine) Index() *grid.Index { return e.index }

// Options returns the engine variant.
func (e *Engine) Options() Options { return e.opts }

// IsSelected reports whether cell is part of the state's selection.
func IsSelected(s State, cell grid.Cell) bool {
	return s.Selected.Has(cell)
}

// Apply computes the state that follows ev. On error the input state is
// returned unchanged.
func (e *Engine) Apply(s State, ev Event) (State, error) {
	if _, _, err := e.index.PositionOf(ev.Cell); err != nil {
		return s, err
	}

	switch ev.Kind {
	case KindClick:
		if s.Drag.Active {
			return s, nil
		}
		return e.selectCell(s, ev)

	case KindPress:
		if !e.opts.Drag {
			return s, nil
		}
		next := s
		next.Drag = DragSession{Active: true, Start: ev.Cell}
		next, err := e.selectCell(next, ev)
		if err != nil {
			return s, err
		}
		return next, nil

	case KindHover:
		if !e.opts.Drag || !s.Drag.Active {
			return s, nil
		}
		return e.selectRange(s, s.Drag.Start, ev.Cell)

	case KindRelease:
		// Ends an open drag even if dragging was switched off since the press.
		if !s.Drag.Active {
			return s, nil
		}
		next := s.withAnchor(ev.Cell)
		next.Drag = DragSession{}
		return next, nil
	}
	return s, fmt.Errorf("%w: %d", ErrUnknownKind, ev.Kind)
}

// selectCell applies the click policy: shift-range from the anchor, then
// ctrl-toggle, then plain single selection.
func (e *Engine) selectCell(s State, ev Event) (State, error) {
	switch {
	case ev.Shift && s.HasAnchor:
		// The anchor stays put so repeated shift-clicks range from one origin.
		return e.selectRange(s, s.Anchor, ev.Cell)
	case ev.Ctrl:
		next := s.withAnchor(ev.Cell)
		next.Selected = s.Selected.Toggle(ev.Cell)
		return next, nil
	default:
		next := s.withAnchor(ev.Cell)
		next.Selected = NewSet(ev.Cell)
		return next, nil
	}
}

func (e *Engine) selectRange(s State, from, to grid.Cell) (State, error) {
	cells, err := e.index.CellsInRectangle(from, to)
	if err != nil {
		return s, err
	}
	next := s
	if e.opts.AppendRange {
		next.Selected = s.Selected.Union(cells)
	} else {
		next.Selected = NewSet(cells...)
	}
	return next, nil
}

// Fold applies events in order starting from s. It stops at the first error
// and returns the last good state with the number of events applied.
func (e *Engine) Fold(s State, events ...Event) (State, int, error) {
	for i, ev := range events {
		next, err := e.Apply(s, ev)
		if err != nil {
			return s, i, fmt.Errorf("event %d (%s): %w", i, ev, err)
		}
		s = next
	}
	return s, len(events), nil
}
