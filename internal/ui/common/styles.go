package common

import "charm.land/lipgloss/v2"

// Styles contains all the application styles
type Styles struct {
	Title lipgloss.Style
	Muted lipgloss.Style
	Bold  lipgloss.Style

	// Grid
	ColumnHeader lipgloss.Style
	RowHeader    lipgloss.Style
	Cell         lipgloss.Style
	CellSelected lipgloss.Style
	CellAnchor   lipgloss.Style
	CellDragFrom lipgloss.Style

	// Toolbar
	Button         lipgloss.Style
	ButtonDisabled lipgloss.Style

	// Status and help bar
	StatusBar lipgloss.Style
	StatusKey lipgloss.Style
	Help      lipgloss.Style
	HelpKey   lipgloss.Style
	HelpDesc  lipgloss.Style

	// Feedback
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
}

// DefaultStyles returns the default application styles using Tokyo Night palette
func DefaultStyles() Styles {
	return StylesFor(GetTheme(ThemeTokyoNight))
}

// StylesFor builds the application styles from a theme.
func StylesFor(theme Theme) Styles {
	c := theme.Colors
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(c.Primary),

		Muted: lipgloss.NewStyle().
			Foreground(c.Muted),

		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(c.Foreground),

		ColumnHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(c.Muted),

		RowHeader: lipgloss.NewStyle().
			Foreground(c.Muted),

		Cell: lipgloss.NewStyle().
			Foreground(c.Muted).
			Background(c.Surface),

		CellSelected: lipgloss.NewStyle().
			Foreground(c.Foreground).
			Background(c.Selection),

		CellAnchor: lipgloss.NewStyle().
			Bold(true).
			Foreground(c.Background).
			Background(c.Primary),

		CellDragFrom: lipgloss.NewStyle().
			Bold(true).
			Foreground(c.Background).
			Background(c.Secondary),

		Button: lipgloss.NewStyle().
			Foreground(c.Foreground).
			Background(c.Highlight).
			Padding(0, 1),

		ButtonDisabled: lipgloss.NewStyle().
			Foreground(c.Muted).
			Background(c.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(c.Foreground),

		StatusKey: lipgloss.NewStyle().
			Foreground(c.Muted),

		Help: lipgloss.NewStyle().
			Foreground(c.Muted),

		HelpKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(c.Secondary),

		HelpDesc: lipgloss.NewStyle().
			Foreground(c.Muted),

		Error: lipgloss.NewStyle().
			Foreground(c.Error),

		Success: lipgloss.NewStyle().
			Foreground(c.Success),

		Warning: lipgloss.NewStyle().
			Foreground(c.Warning),
	}
}

// RenderHelpBar renders a help bar with the given key-description pairs
func RenderHelpBar(s Styles, items []struct{ Key, Desc string }, width int) string {
	var parts []string
	for _, item := range items {
		key := s.HelpKey.Render(item.Key)
		desc := s.HelpDesc.Render(item.Desc)
		parts = append(parts, key+" "+desc)
	}

	joined := lipgloss.JoinHorizontal(lipgloss.Center, joinWith(parts, "  ")...)
	if width <= 0 {
		return s.Help.Render(joined)
	}
	return s.Help.Width(width).Render(joined)
}

func joinWith(parts []string, sep string) []string {
	if len(parts) < 2 {
		return parts
	}
	out := make([]string, 0, len(parts)*2-1)
	for i, p := range parts {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, p)
	}
	return out
}
