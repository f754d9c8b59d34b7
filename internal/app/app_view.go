package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/cellgrid/internal/perf"
	"github.com/andyrewlee/cellgrid/internal/selection"
)

// View renders the application.
func (a *App) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	if a.quitting {
		view.SetContent("")
		return view
	}
	done := perf.Time("view.render")
	content := a.render()
	done()
	if a.zone != nil {
		content = a.zone.Scan(content)
	}
	view.SetContent(content)
	return view
}

func (a *App) render() string {
	var b strings.Builder
	b.WriteString(a.renderTitle())
	b.WriteByte('\n')
	b.WriteString(a.grid.View())
	b.WriteString("\n\n")
	b.WriteString(a.renderStatus())
	if line := a.renderFeedback(); line != "" {
		b.WriteByte('\n')
		b.WriteString(line)
	}
	if a.showHints {
		b.WriteByte('\n')
		b.WriteString(a.styles.Help.Render(a.keymap.HelpLine()))
	}
	return b.String()
}

func (a *App) renderTitle() string {
	idx := a.session.Engine().Index()
	dims := fmt.Sprintf("%d days × %d locations", len(idx.Rows()), len(idx.Columns()))
	return a.styles.Title.Render("cellgrid") + " " + a.styles.Muted.Render(dims)
}

func (a *App) renderStatus() string {
	state := a.session.State()
	parts := []string{
		a.field("selected", fmt.Sprintf("%d", state.Len())),
		a.field("anchor", anchorText(state)),
		a.field("mode", modeText(a.engineOptions(), state)),
		a.field("session", shortID(a.session.ID())),
	}
	return strings.Join(parts, a.styles.Muted.Render(" · "))
}

func (a *App) field(name, value string) string {
	return a.styles.StatusKey.Render(name+" ") + a.styles.StatusBar.Render(value)
}

func (a *App) renderFeedback() string {
	if a.lastErr != nil {
		return a.styles.Error.Render(a.lastErr.Error())
	}
	return a.toast.View()
}

func anchorText(state selection.State) string {
	c, ok := state.AnchorCell()
	if !ok {
		return "none"
	}
	return c.String()
}

func modeText(opts selection.Options, state selection.State) string {
	mode := "click"
	if opts.Drag {
		mode = "drag"
	}
	if opts.AppendRange {
		mode += "+append"
	}
	if state.Dragging() {
		mode += " (dragging)"
	}
	return mode
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
