package gridview

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/andyrewlee/cellgrid/internal/logging"
	"github.com/andyrewlee/cellgrid/internal/messages"
	"github.com/andyrewlee/cellgrid/internal/ui/common"
)

type action string

const (
	actionClear action = "clear"
	actionCopy  action = "copy"
	actionUndo  action = "undo"
	actionRedo  action = "redo"
)

var toolbarButtons = []struct {
	action action
	label  string
}{
	{actionClear, "Clear"},
	{actionCopy, "Copy"},
	{actionUndo, "Undo"},
	{actionRedo, "Redo"},
}

func toolbarZoneID(prefix string, a action) string {
	return prefix + "toolbar-" + string(a)
}

// toolbarRegions lays the buttons out left to right, one space apart.
func toolbarRegions(styles common.Styles) []common.HitRegion {
	regions := make([]common.HitRegion, 0, len(toolbarButtons))
	x := 0
	for _, b := range toolbarButtons {
		w := lipgloss.Width(styles.Button.Render(b.label))
		regions = append(regions, common.HitRegion{ID: string(b.action), X: x, Y: toolbarLine, Width: w, Height: 1})
		x += w + 1
	}
	return regions
}

func toolbarWidth(styles common.Styles) int {
	regions := toolbarRegions(styles)
	last := regions[len(regions)-1]
	return last.X + last.Width
}

// toolbarAt resolves a click to a toolbar action. Zone positions are used
// once the zone manager has scanned a frame; layout geometry otherwise.
func (m *Model) toolbarAt(x, y int) (action, bool) {
	if m.zone != nil {
		for _, b := range toolbarButtons {
			z := m.zone.Get(toolbarZoneID(m.zonePrefix, b.action))
			if z.IsZero() {
				continue
			}
			if x >= z.StartX && x <= z.EndX && y >= z.StartY && y <= z.EndY {
				return b.action, true
			}
		}
	}
	r, ok := common.HitTest(toolbarRegions(m.styles), x-m.originX, y-m.originY)
	if !ok {
		return "", false
	}
	return action(r.ID), true
}

func (m *Model) enabled(a action) bool {
	state := m.session.State()
	switch a {
	case actionClear:
		return state.Len() > 0 || state.HasAnchor
	case actionCopy:
		return state.Len() > 0
	case actionUndo:
		return m.session.CanUndo()
	case actionRedo:
		return m.session.CanRedo()
	}
	return false
}

func (m *Model) runAction(a action) tea.Cmd {
	if !m.enabled(a) {
		return nil
	}
	switch a {
	case actionClear:
		m.hasHover = false
		return changedCmd(m.session.Clear())
	case actionCopy:
		state := m.session.State()
		text := SelectionText(m.session.Engine().Index(), state)
		return common.SafeCmd(func() tea.Msg {
			if err := common.CopyToClipboard(text); err != nil {
				logging.WithError(err, "copy selection")
				return messages.Error{Err: err, Context: "copy selection"}
			}
			return messages.Toast{Message: fmt.Sprintf("Copied %d cells", state.Len()), Level: messages.ToastSuccess}
		})
	case actionUndo:
		if state, ok := m.session.Undo(); ok {
			return changedCmd(state)
		}
	case actionRedo:
		if state, ok := m.session.Redo(); ok {
			return changedCmd(state)
		}
	}
	return nil
}

func (m *Model) renderToolbar() string {
	var out string
	for i, b := range toolbarButtons {
		style := m.styles.Button
		if !m.enabled(b.action) {
			style = m.styles.ButtonDisabled
		}
		label := style.Render(b.label)
		if m.zone != nil {
			label = m.zone.Mark(toolbarZoneID(m.zonePrefix, b.action), label)
		}
		if i > 0 {
			out += " "
		}
		out += label
	}
	return out
}
