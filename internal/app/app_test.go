package app

import (
	"os"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/andyrewlee/cellgrid/internal/config"
	"github.com/andyrewlee/cellgrid/internal/grid"
	"github.com/andyrewlee/cellgrid/internal/messages"
)

func newTestApp(t *testing.T, body string) *App {
	t.Helper()
	paths := config.NewPaths(t.TempDir())
	if body != "" {
		if err := os.WriteFile(paths.ConfigPath, []byte(body), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
	}
	cfg, err := config.LoadFrom(paths)
	if err != nil {
		t.Fatalf("LoadFrom error = %v", err)
	}
	a, err := New(cfg, "test", "abc", "today")
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	t.Cleanup(a.Shutdown)
	return a
}

// send delivers msg and feeds any immediate follow-up message back in.
func send(a *App, msg tea.Msg) {
	_, cmd := a.Update(msg)
	if cmd == nil {
		return
	}
	if next := cmd(); next != nil {
		if _, ok := next.(tea.QuitMsg); !ok {
			a.Update(next)
		}
	}
}

func mouse(t *testing.T, a *App, row, col int) (int, int) {
	t.Helper()
	x, y, ok := a.grid.ScreenPosition(grid.Cell{Row: row, Column: col})
	if !ok {
		t.Fatalf("no screen position for (%d,%d)", row, col)
	}
	return x, y
}

func TestDragUpdatesStatus(t *testing.T) {
	a := newTestApp(t, `{"grid":{"days":5,"locations":5}}`)

	x, y := mouse(t, a, 1, 1)
	send(a, tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
	x, y = mouse(t, a, 3, 2)
	send(a, tea.MouseMotionMsg{X: x, Y: y, Button: tea.MouseLeft})

	status := ansi.Strip(a.renderStatus())
	if !strings.Contains(status, "selected 6") || !strings.Contains(status, "(dragging)") {
		t.Fatalf("status mid-drag = %q", status)
	}

	send(a, tea.MouseReleaseMsg{X: x, Y: y, Button: tea.MouseLeft})
	status = ansi.Strip(a.renderStatus())
	if !strings.Contains(status, "anchor (3,2)") || strings.Contains(status, "dragging") {
		t.Fatalf("status after release = %q", status)
	}
}

func TestViewEnablesMouse(t *testing.T) {
	a := newTestApp(t, "")
	view := a.View()
	if !view.AltScreen || view.MouseMode != tea.MouseModeCellMotion {
		t.Fatalf("view should use the alt screen with cell motion mouse mode")
	}
	out := ansi.Strip(a.render())
	if !strings.Contains(out, "30 days × 20 locations") {
		t.Fatalf("title missing grid dimensions: %q", strings.SplitN(out, "\n", 2)[0])
	}
}

func TestQuitKey(t *testing.T) {
	a := newTestApp(t, "")
	_, cmd := a.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	if !a.quitting {
		t.Fatalf("app should be quitting")
	}
}

func TestHelpTogglePersists(t *testing.T) {
	a := newTestApp(t, "")
	if !a.showHints {
		t.Fatalf("hints should default to on")
	}
	send(a, tea.KeyPressMsg{Code: '?', Text: "?"})
	if a.showHints {
		t.Fatalf("? should hide hints")
	}
	cfg, err := config.LoadFrom(a.config.Paths)
	if err != nil {
		t.Fatalf("LoadFrom error = %v", err)
	}
	if cfg.UI.ShowKeymapHints {
		t.Fatalf("hint setting was not persisted")
	}
}

func TestHelpToggleReloadIsQuiet(t *testing.T) {
	a := newTestApp(t, "")
	send(a, tea.KeyPressMsg{Code: '?', Text: "?"})

	saved, err := config.LoadFrom(a.config.Paths)
	if err != nil {
		t.Fatalf("LoadFrom error = %v", err)
	}
	if _, cmd := a.Update(messages.ConfigReloaded{Config: saved}); cmd != nil {
		t.Fatalf("reloading our own ui save should not toast")
	}
	if a.toast.Visible() {
		t.Fatalf("toast shown for ui-only reload")
	}

	edited := *saved
	edited.Selection.AppendRange = !saved.Selection.AppendRange
	if _, cmd := a.Update(messages.ConfigReloaded{Config: &edited}); cmd == nil || !a.toast.Visible() {
		t.Fatalf("selection change should still toast")
	}
}

func TestErrorShownUntilNextChange(t *testing.T) {
	a := newTestApp(t, `{"grid":{"days":3,"locations":3}}`)
	send(a, messages.Error{Err: grid.ErrInvalidCell, Context: "apply click(9,9)"})
	if !strings.Contains(ansi.Strip(a.render()), "apply click(9,9)") {
		t.Fatalf("error line missing")
	}
	x, y := mouse(t, a, 2, 2)
	send(a, tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
	if a.lastErr != nil {
		t.Fatalf("selection change should clear the error, got %v", a.lastErr)
	}
}

func TestConfigReloadKeepsSelectionForSameGrid(t *testing.T) {
	a := newTestApp(t, `{"grid":{"days":4,"locations":4}}`)
	x, y := mouse(t, a, 2, 2)
	send(a, tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
	send(a, tea.MouseReleaseMsg{X: x, Y: y, Button: tea.MouseLeft})

	next := *a.config
	next.Grid = config.GridConfig{Days: 4, Locations: 4}
	next.Selection.Drag = false
	next.Selection.AppendRange = true
	a.Update(messages.ConfigReloaded{Config: &next})

	if a.session.State().Len() != 1 {
		t.Fatalf("same-shape reload should keep the selection")
	}
	opts := a.session.Engine().Options()
	if opts.Drag || !opts.AppendRange {
		t.Fatalf("engine options not updated: %+v", opts)
	}
	if !strings.Contains(ansi.Strip(a.renderStatus()), "mode click+append") {
		t.Fatalf("status = %q", ansi.Strip(a.renderStatus()))
	}
}

func TestDragDisabledMidDragStillReleases(t *testing.T) {
	a := newTestApp(t, `{"grid":{"days":4,"locations":4}}`)
	x, y := mouse(t, a, 2, 2)
	send(a, tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
	if !a.session.State().Dragging() {
		t.Fatalf("press should start a drag")
	}

	next := *a.config
	next.Selection.Drag = false
	a.Update(messages.ConfigReloaded{Config: &next})

	send(a, tea.MouseReleaseMsg{X: x, Y: y, Button: tea.MouseLeft})
	if a.session.State().Dragging() {
		t.Fatalf("release after disabling drag left the drag open")
	}

	x, y = mouse(t, a, 3, 3)
	send(a, tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
	cells := a.session.State().Cells()
	if len(cells) != 1 || cells[0] != (grid.Cell{Row: 3, Column: 3}) {
		t.Fatalf("click after reload selected %v, want [(3,3)]", cells)
	}
}

func TestConfigReloadResetsOnNewGrid(t *testing.T) {
	a := newTestApp(t, `{"grid":{"days":4,"locations":4}}`)
	x, y := mouse(t, a, 4, 4)
	send(a, tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})

	next := *a.config
	next.Grid = config.GridConfig{Days: 2, Locations: 2}
	a.Update(messages.ConfigReloaded{Config: &next})

	if a.session.State().Len() != 0 || a.session.CanUndo() {
		t.Fatalf("grid change should reset selection and history")
	}
	if _, _, ok := a.grid.ScreenPosition(grid.Cell{Row: 4, Column: 4}); ok {
		t.Fatalf("old cells should no longer be laid out")
	}
}

func TestWatcherDeliversReload(t *testing.T) {
	a := newTestApp(t, `{"grid":{"days":4,"locations":4}}`)
	if err := a.StartWatcher(); err != nil {
		t.Fatalf("StartWatcher error = %v", err)
	}
	wait := a.waitForWatcher()
	if wait == nil {
		t.Fatalf("expected a watcher command")
	}

	// Give the watcher goroutine a moment to start reading events.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(a.config.Paths.ConfigPath, []byte(`{"grid":{"days":6,"locations":4}}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	got := make(chan tea.Msg, 1)
	go func() { got <- wait() }()
	select {
	case msg := <-got:
		wrapped, ok := msg.(watcherMsg)
		if !ok {
			t.Fatalf("unexpected message %#v", msg)
		}
		reloaded, ok := wrapped.msg.(messages.ConfigReloaded)
		if !ok || reloaded.Config.Grid.Days != 6 {
			t.Fatalf("unexpected reload %#v", wrapped.msg)
		}
		_, cmd := a.Update(msg)
		if cmd == nil {
			t.Fatalf("watcher pump should be re-armed")
		}
		if len(a.session.Engine().Index().Rows()) != 6 {
			t.Fatalf("reload was not applied")
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("no reload delivered")
	}
}
