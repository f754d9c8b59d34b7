package selection

import "github.com/andyrewlee/cellgrid/internal/grid"

// DragSession tracks an in-progress drag. Start is only meaningful while Active.
type DragSession struct {
	Active bool
	Start  grid.Cell
}

// State is the selection held by the UI layer. It is a value: transitions
// return a new State and never modify their input.
type State struct {
	Selected  Set
	Anchor    grid.Cell
	HasAnchor bool
	Drag      DragSession
}

// Cells returns the selected cells in insertion order.
func (s State) Cells() []grid.Cell { return s.Selected.Cells() }

// Len returns the number of selected cells.
func (s State) Len() int { return s.Selected.Len() }

// Dragging reports whether a drag session is active.
func (s State) Dragging() bool { return s.Drag.Active }

// AnchorCell returns the anchor, if any.
func (s State) AnchorCell() (grid.Cell, bool) { return s.Anchor, s.HasAnchor }

// Same reports whether two states select the same cells with the same anchor
// and drag session. Selection order is ignored.
func (s State) Same(other State) bool {
	return s.HasAnchor == other.HasAnchor &&
		(!s.HasAnchor || s.Anchor == other.Anchor) &&
		s.Drag == other.Drag &&
		s.Selected.Equal(other.Selected)
}

func (s State) withAnchor(c grid.Cell) State {
	s.Anchor = c
	s.HasAnchor = true
	return s
}
