package gridview

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/andyrewlee/cellgrid/internal/config"
	"github.com/andyrewlee/cellgrid/internal/grid"
	"github.com/andyrewlee/cellgrid/internal/keymap"
	"github.com/andyrewlee/cellgrid/internal/messages"
	"github.com/andyrewlee/cellgrid/internal/selection"
	"github.com/andyrewlee/cellgrid/internal/ui/common"
)

func newTestModel(t *testing.T, opts selection.Options, policy config.SelectionConfig) *Model {
	t.Helper()
	idx, err := grid.NewRange(5, 4)
	if err != nil {
		t.Fatalf("NewRange error = %v", err)
	}
	session := selection.NewSession(selection.NewEngine(idx, opts))
	return New(session, policy, keymap.New(config.KeyMapConfig{}))
}

func defaultPolicy() config.SelectionConfig {
	return config.SelectionConfig{Drag: true, ModifierClick: true, History: 64}
}

// screen returns the terminal coordinates of a cell.
func screen(t *testing.T, m *Model, row, col int) (int, int) {
	t.Helper()
	x, y, ok := m.ScreenPosition(grid.Cell{Row: row, Column: col})
	if !ok {
		t.Fatalf("no screen position for (%d,%d)", row, col)
	}
	return x, y
}

func click(t *testing.T, m *Model, row, col int, mod tea.KeyMod) tea.Cmd {
	t.Helper()
	x, y := screen(t, m, row, col)
	_, cmd := m.Update(tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft, Mod: mod})
	return cmd
}

func motion(t *testing.T, m *Model, row, col int) tea.Cmd {
	t.Helper()
	x, y := screen(t, m, row, col)
	_, cmd := m.Update(tea.MouseMotionMsg{X: x, Y: y, Button: tea.MouseLeft})
	return cmd
}

func release(t *testing.T, m *Model, row, col int) tea.Cmd {
	t.Helper()
	x, y := screen(t, m, row, col)
	_, cmd := m.Update(tea.MouseReleaseMsg{X: x, Y: y, Button: tea.MouseLeft})
	return cmd
}

func assertSelected(t *testing.T, m *Model, want ...grid.Cell) {
	t.Helper()
	state := m.session.State()
	if state.Len() != len(want) {
		t.Fatalf("selected %v, want %v", state.Cells(), want)
	}
	for _, c := range want {
		if !state.Selected.Has(c) {
			t.Fatalf("selected %v, missing %v", state.Cells(), c)
		}
	}
}

func c(row, col int) grid.Cell { return grid.Cell{Row: row, Column: col} }

func TestDragSelectsRectangle(t *testing.T) {
	m := newTestModel(t, selection.DefaultOptions(), defaultPolicy())

	cmd := click(t, m, 2, 2, 0)
	if cmd == nil {
		t.Fatalf("press should report a selection change")
	}
	changed, ok := cmd().(messages.SelectionChanged)
	if !ok || changed.Count != 1 || !changed.Dragging {
		t.Fatalf("unexpected message %#v", cmd())
	}

	motion(t, m, 3, 3)
	motion(t, m, 4, 3)
	release(t, m, 4, 3)

	assertSelected(t, m, c(2, 2), c(2, 3), c(3, 2), c(3, 3), c(4, 2), c(4, 3))
	state := m.session.State()
	if state.Dragging() || state.Anchor != c(4, 3) {
		t.Fatalf("after release: dragging=%t anchor=%v", state.Dragging(), state.Anchor)
	}
}

func TestModifierClickDoesNotStartDrag(t *testing.T) {
	m := newTestModel(t, selection.DefaultOptions(), defaultPolicy())
	click(t, m, 1, 1, 0)
	release(t, m, 1, 1)

	click(t, m, 3, 3, tea.ModCtrl)
	if m.session.State().Dragging() {
		t.Fatalf("ctrl click should not start a drag")
	}
	assertSelected(t, m, c(1, 1), c(3, 3))

	click(t, m, 3, 4, tea.ModShift)
	assertSelected(t, m, c(3, 3), c(3, 4))
	if m.session.State().Anchor != c(3, 3) {
		t.Fatalf("shift click should keep the anchor, got %v", m.session.State().Anchor)
	}
}

func TestModifierPressDragsWhenModifierClickOff(t *testing.T) {
	policy := defaultPolicy()
	policy.ModifierClick = false
	m := newTestModel(t, selection.Options{Drag: true, AppendRange: true}, policy)
	click(t, m, 1, 1, 0)
	release(t, m, 1, 1)

	click(t, m, 3, 3, tea.ModCtrl)
	if !m.session.State().Dragging() {
		t.Fatalf("ctrl press should start a drag when modifier clicks are off")
	}
	motion(t, m, 4, 4)
	release(t, m, 4, 4)
	assertSelected(t, m, c(1, 1), c(3, 3), c(3, 4), c(4, 3), c(4, 4))
}

func TestClickOnlyWhenDragDisabled(t *testing.T) {
	m := newTestModel(t, selection.Options{}, defaultPolicy())
	click(t, m, 2, 2, 0)
	if m.session.State().Dragging() {
		t.Fatalf("drag disabled: press must not open a drag")
	}
	if cmd := motion(t, m, 3, 3); cmd != nil {
		t.Fatalf("motion without a drag should be ignored")
	}
	assertSelected(t, m, c(2, 2))
}

func TestReleaseOutsideGridEndsDragAtLastHover(t *testing.T) {
	m := newTestModel(t, selection.DefaultOptions(), defaultPolicy())
	click(t, m, 1, 1, 0)
	motion(t, m, 2, 2)

	_, cmd := m.Update(tea.MouseReleaseMsg{X: 200, Y: 200, Button: tea.MouseLeft})
	if cmd == nil {
		t.Fatalf("release should report the drag ending")
	}
	state := m.session.State()
	if state.Dragging() || state.Anchor != c(2, 2) {
		t.Fatalf("drag should end at last hover: dragging=%t anchor=%v", state.Dragging(), state.Anchor)
	}
	assertSelected(t, m, c(1, 1), c(1, 2), c(2, 1), c(2, 2))
}

func TestIgnoredMouseInput(t *testing.T) {
	m := newTestModel(t, selection.DefaultOptions(), defaultPolicy())

	if _, cmd := m.Update(tea.MouseClickMsg{X: 0, Y: 3, Button: tea.MouseLeft}); cmd != nil {
		t.Fatalf("click on row label should be ignored")
	}
	x, y := screen(t, m, 2, 2)
	if _, cmd := m.Update(tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseRight}); cmd != nil {
		t.Fatalf("right click should be ignored")
	}
	if cmd := release(t, m, 2, 2); cmd != nil {
		t.Fatalf("release without a drag should be ignored")
	}

	click(t, m, 2, 2, 0)
	if cmd := motion(t, m, 2, 2); cmd != nil {
		t.Fatalf("motion within the same cell should be ignored")
	}
	if m.session.State().Len() != 1 {
		t.Fatalf("unexpected selection %v", m.session.State().Cells())
	}
}

func TestOriginOffset(t *testing.T) {
	m := newTestModel(t, selection.DefaultOptions(), defaultPolicy())
	m.SetOrigin(10, 5)
	click(t, m, 3, 2, 0)
	assertSelected(t, m, c(3, 2))
	if _, ok := m.cellAt(0, 0); ok {
		t.Fatalf("coordinates above the origin should not hit a cell")
	}
}

func TestToolbarActions(t *testing.T) {
	m := newTestModel(t, selection.Options{}, defaultPolicy())
	click(t, m, 1, 1, 0)
	click(t, m, 2, 2, tea.ModCtrl)

	undo := toolbarRegions(m.styles)[2]
	if _, cmd := m.Update(tea.MouseClickMsg{X: undo.X + 1, Y: undo.Y, Button: tea.MouseLeft}); cmd == nil {
		t.Fatalf("undo button should report a change")
	}
	assertSelected(t, m, c(1, 1))

	clearBtn := toolbarRegions(m.styles)[0]
	m.Update(tea.MouseClickMsg{X: clearBtn.X, Y: clearBtn.Y, Button: tea.MouseLeft})
	assertSelected(t, m)
	if m.session.State().HasAnchor {
		t.Fatalf("clear should drop the anchor")
	}

	if _, cmd := m.Update(tea.MouseClickMsg{X: clearBtn.X, Y: clearBtn.Y, Button: tea.MouseLeft}); cmd != nil {
		t.Fatalf("disabled button should do nothing")
	}
}

func TestKeyBindings(t *testing.T) {
	m := newTestModel(t, selection.Options{}, defaultPolicy())
	click(t, m, 1, 1, 0)
	click(t, m, 1, 2, tea.ModCtrl)

	m.Update(tea.KeyPressMsg{Code: 'u', Text: "u"})
	assertSelected(t, m, c(1, 1))

	m.Update(tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl})
	assertSelected(t, m, c(1, 1), c(1, 2))

	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assertSelected(t, m)
}

func TestCopySelection(t *testing.T) {
	var copied string
	restore := common.SetClipboardWriter(func(s string) error {
		copied = s
		return nil
	})
	defer restore()

	m := newTestModel(t, selection.Options{}, defaultPolicy())
	if _, cmd := m.Update(tea.KeyPressMsg{Code: 'y', Text: "y"}); cmd != nil {
		t.Fatalf("copy with an empty selection should do nothing")
	}

	click(t, m, 2, 3, 0)
	click(t, m, 1, 1, tea.ModCtrl)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	if cmd == nil {
		t.Fatalf("expected a toast command")
	}
	toast, ok := cmd().(messages.Toast)
	if !ok || toast.Level != messages.ToastSuccess {
		t.Fatalf("unexpected message %#v", cmd())
	}
	if copied != "day,location\n1,1\n2,3\n" {
		t.Fatalf("clipboard got %q", copied)
	}
}

func TestCopyFailureReportsError(t *testing.T) {
	restore := common.SetClipboardWriter(func(string) error { return errors.New("no display") })
	defer restore()

	m := newTestModel(t, selection.Options{}, defaultPolicy())
	click(t, m, 1, 1, 0)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	if cmd == nil {
		t.Fatalf("expected an error command")
	}
	if _, ok := cmd().(messages.Error); !ok {
		t.Fatalf("expected messages.Error, got %#v", cmd())
	}
}

func TestViewShowsState(t *testing.T) {
	m := newTestModel(t, selection.Options{}, defaultPolicy())
	click(t, m, 1, 1, 0)
	click(t, m, 1, 3, tea.ModCtrl)

	lines := strings.Split(ansi.Strip(m.View()), "\n")
	if len(lines) != 7 {
		t.Fatalf("expected toolbar, header and 5 rows, got %d lines", len(lines))
	}
	if !strings.Contains(lines[0], "Undo") || !strings.Contains(lines[0], "Clear") {
		t.Fatalf("toolbar line = %q", lines[0])
	}
	if strings.TrimSpace(lines[1]) != "1  2  3  4" {
		t.Fatalf("header line = %q", lines[1])
	}
	if got := strings.Count(lines[2], glyphSelected); got != 1 {
		t.Fatalf("row 1 = %q, want one selected glyph", lines[2])
	}
	if !strings.Contains(lines[2], glyphAnchor) {
		t.Fatalf("row 1 = %q, want anchor glyph", lines[2])
	}

	w, h := m.Size()
	if h != 7 || w < m.layout.width() {
		t.Fatalf("Size() = %d,%d", w, h)
	}
}
