package gridview

import (
	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/cellgrid/internal/selection"
)

func modifiers(mod tea.KeyMod) (ctrl, shift bool) {
	return mod.Contains(tea.ModCtrl) || mod.Contains(tea.ModMeta), mod.Contains(tea.ModShift)
}

// normalize translates a terminal mouse message into a selection event.
//
// A left press becomes Press, or Click when drag is off or a modifier is held
// and modifier clicks are enabled. Motion becomes Hover while a drag is in
// progress and the pointer entered a new cell. Release is only forwarded
// during a drag; outside the grid it lands on the last hovered cell.
func (m *Model) normalize(msg tea.Msg) (selection.Event, bool) {
	state := m.session.State()

	switch msg := msg.(type) {
	case tea.MouseClickMsg:
		if msg.Button != tea.MouseLeft {
			return selection.Event{}, false
		}
		c, ok := m.cellAt(msg.X, msg.Y)
		if !ok {
			return selection.Event{}, false
		}
		ctrl, shift := modifiers(msg.Mod)
		ev := selection.Press(c.Row, c.Column)
		if !m.session.Engine().Options().Drag || (m.policy.ModifierClick && (ctrl || shift)) {
			ev = selection.Click(c.Row, c.Column)
		}
		ev.Ctrl, ev.Shift = ctrl, shift
		m.hover, m.hasHover = c, true
		return ev, true

	case tea.MouseMotionMsg:
		if !state.Dragging() {
			return selection.Event{}, false
		}
		c, ok := m.cellAt(msg.X, msg.Y)
		if !ok || (m.hasHover && c == m.hover) {
			return selection.Event{}, false
		}
		m.hover, m.hasHover = c, true
		return selection.Hover(c.Row, c.Column), true

	case tea.MouseReleaseMsg:
		if !state.Dragging() {
			return selection.Event{}, false
		}
		c, ok := m.cellAt(msg.X, msg.Y)
		if !ok {
			c = state.Drag.Start
			if m.hasHover {
				c = m.hover
			}
		}
		m.hasHover = false
		return selection.Release(c.Row, c.Column), true
	}
	return selection.Event{}, false
}
