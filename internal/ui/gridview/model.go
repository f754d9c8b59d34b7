package gridview

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	zone "github.com/lrstanley/bubblezone"

	"github.com/andyrewlee/cellgrid/internal/config"
	"github.com/andyrewlee/cellgrid/internal/grid"
	"github.com/andyrewlee/cellgrid/internal/keymap"
	"github.com/andyrewlee/cellgrid/internal/messages"
	"github.com/andyrewlee/cellgrid/internal/perf"
	"github.com/andyrewlee/cellgrid/internal/selection"
	"github.com/andyrewlee/cellgrid/internal/ui/common"
)

// Model is the interactive grid: it turns mouse and key input into
// selection events and renders the session state.
type Model struct {
	session *selection.Session
	policy  config.SelectionConfig
	keymap  keymap.KeyMap
	styles  common.Styles

	zone       *zone.Manager
	zonePrefix string

	originX int
	originY int
	layout  layout

	hover    grid.Cell
	hasHover bool
}

// New creates a grid model over session.
func New(session *selection.Session, policy config.SelectionConfig, km keymap.KeyMap) *Model {
	return &Model{
		session: session,
		policy:  policy,
		keymap:  km,
		styles:  common.DefaultStyles(),
		layout:  newLayout(session.Engine().Index()),
	}
}

// Init initializes the grid.
func (m *Model) Init() tea.Cmd { return nil }

// Session returns the selection session.
func (m *Model) Session() *selection.Session { return m.session }

// SetZone sets the zone manager used to mark toolbar buttons.
func (m *Model) SetZone(z *zone.Manager) {
	m.zone = z
	if z != nil {
		m.zonePrefix = z.NewPrefix()
	}
}

// SetStyles updates the grid styles (for theme changes).
func (m *Model) SetStyles(styles common.Styles) { m.styles = styles }

// SetKeyMap replaces the key bindings.
func (m *Model) SetKeyMap(km keymap.KeyMap) { m.keymap = km }

// SetPolicy replaces the UI selection policy.
func (m *Model) SetPolicy(policy config.SelectionConfig) { m.policy = policy }

// SetOrigin places the grid on screen. Mouse coordinates are translated by it.
func (m *Model) SetOrigin(x, y int) { m.originX, m.originY = x, y }

// Relayout recomputes the geometry after the session's grid changed.
func (m *Model) Relayout() {
	m.layout = newLayout(m.session.Engine().Index())
	m.hasHover = false
}

// ScreenPosition returns the terminal coordinates of the middle of a cell.
func (m *Model) ScreenPosition(c grid.Cell) (int, int, bool) {
	rowPos, colPos, err := m.session.Engine().Index().PositionOf(c)
	if err != nil {
		return 0, 0, false
	}
	x, y := m.layout.cellOrigin(rowPos, colPos)
	return m.originX + x + m.layout.cellWidth/2, m.originY + y, true
}

// Size returns the rendered width and height.
func (m *Model) Size() (int, int) {
	w := m.layout.width()
	if tw := toolbarWidth(m.styles); tw > w {
		w = tw
	}
	return w, m.layout.height()
}

// Update handles mouse and key input.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseClickMsg:
		if msg.Button == tea.MouseLeft && !m.session.State().Dragging() {
			if action, ok := m.toolbarAt(msg.X, msg.Y); ok {
				return m, m.runAction(action)
			}
		}
	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	}

	if ev, ok := m.normalize(msg); ok {
		return m, m.apply(ev)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keymap.Clear):
		return m.runAction(actionClear)
	case key.Matches(msg, m.keymap.Copy):
		return m.runAction(actionCopy)
	case key.Matches(msg, m.keymap.Undo):
		return m.runAction(actionUndo)
	case key.Matches(msg, m.keymap.Redo):
		return m.runAction(actionRedo)
	}
	return nil
}

// cellAt maps screen coordinates to a declared cell.
func (m *Model) cellAt(x, y int) (grid.Cell, bool) {
	rowPos, colPos, ok := m.layout.positionAt(x-m.originX, y-m.originY)
	if !ok {
		return grid.Cell{}, false
	}
	c, err := m.session.Engine().Index().CellAt(rowPos, colPos)
	if err != nil {
		return grid.Cell{}, false
	}
	return c, true
}

func (m *Model) apply(ev selection.Event) tea.Cmd {
	defer perf.Time("selection.apply")()
	before := m.session.State()
	after, err := m.session.Apply(ev)
	if err != nil {
		return errorCmd(err, fmt.Sprintf("apply %s", ev))
	}
	if before.Same(after) {
		return nil
	}
	return changedCmd(after)
}

func changedCmd(state selection.State) tea.Cmd {
	anchor, hasAnchor := state.AnchorCell()
	msg := messages.SelectionChanged{
		Count:     state.Len(),
		Anchor:    anchor,
		HasAnchor: hasAnchor,
		Dragging:  state.Dragging(),
	}
	return func() tea.Msg { return msg }
}

func errorCmd(err error, context string) tea.Cmd {
	return func() tea.Msg {
		return messages.Error{Err: err, Context: context}
	}
}
