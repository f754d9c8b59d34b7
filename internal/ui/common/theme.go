package common

import (
	"image/color"
	"sort"

	"charm.land/lipgloss/v2"
)

// ThemeID identifies a color theme.
type ThemeID string

const (
	ThemeTokyoNight  ThemeID = "tokyo-night"
	ThemeDracula     ThemeID = "dracula"
	ThemeNord        ThemeID = "nord"
	ThemeGruvbox     ThemeID = "gruvbox"
	ThemeCatppuccin  ThemeID = "catppuccin"
	ThemeGitHubLight ThemeID = "github-light"
)

// ThemeColors defines all colors used by the application.
type ThemeColors struct {
	Background color.Color
	Foreground color.Color
	Muted      color.Color
	Border     color.Color

	Primary   color.Color
	Secondary color.Color
	Success   color.Color
	Warning   color.Color
	Error     color.Color

	Surface   color.Color // idle cell background
	Selection color.Color
	Highlight color.Color
}

// Theme represents a complete color theme.
type Theme struct {
	ID     ThemeID
	Name   string
	Colors ThemeColors
}

type palette struct {
	name                                      string
	bg, fg, muted, border                     string
	primary, secondary, success, warn, danger string
	surface, selection, highlight             string
}

var palettes = map[ThemeID]palette{
	ThemeTokyoNight: {
		name:      "Tokyo Night",
		bg:        "#1a1b26",
		fg:        "#a9b1d6",
		muted:     "#565f89",
		border:    "#292e42",
		primary:   "#7aa2f7",
		secondary: "#bb9af7",
		success:   "#9ece6a",
		warn:      "#e0af68",
		danger:    "#f7768e",
		surface:   "#1f2335",
		selection: "#33467c",
		highlight: "#3d59a1",
	},
	ThemeDracula: {
		name:      "Dracula",
		bg:        "#282a36",
		fg:        "#f8f8f2",
		muted:     "#6272a4",
		border:    "#44475a",
		primary:   "#bd93f9",
		secondary: "#ff79c6",
		success:   "#50fa7b",
		warn:      "#f1fa8c",
		danger:    "#ff5555",
		surface:   "#2d303e",
		selection: "#44475a",
		highlight: "#6272a4",
	},
	ThemeNord: {
		name:      "Nord",
		bg:        "#2e3440",
		fg:        "#eceff4",
		muted:     "#4c566a",
		border:    "#3b4252",
		primary:   "#88c0d0",
		secondary: "#b48ead",
		success:   "#a3be8c",
		warn:      "#ebcb8b",
		danger:    "#bf616a",
		surface:   "#3b4252",
		selection: "#434c5e",
		highlight: "#5e81ac",
	},
	ThemeGruvbox: {
		name:      "Gruvbox",
		bg:        "#282828",
		fg:        "#ebdbb2",
		muted:     "#928374",
		border:    "#3c3836",
		primary:   "#fe8019",
		secondary: "#d3869b",
		success:   "#b8bb26",
		warn:      "#fabd2f",
		danger:    "#fb4934",
		surface:   "#32302f",
		selection: "#504945",
		highlight: "#665c54",
	},
	ThemeCatppuccin: {
		name:      "Catppuccin Mocha",
		bg:        "#1e1e2e",
		fg:        "#cdd6f4",
		muted:     "#6c7086",
		border:    "#313244",
		primary:   "#89b4fa",
		secondary: "#cba6f7",
		success:   "#a6e3a1",
		warn:      "#f9e2af",
		danger:    "#f38ba8",
		surface:   "#181825",
		selection: "#45475a",
		highlight: "#585b70",
	},
	ThemeGitHubLight: {
		name:      "GitHub Light",
		bg:        "#ffffff",
		fg:        "#24292f",
		muted:     "#6e7781",
		border:    "#d0d7de",
		primary:   "#0969da",
		secondary: "#8250df",
		success:   "#1a7f37",
		warn:      "#9a6700",
		danger:    "#cf222e",
		surface:   "#f6f8fa",
		selection: "#b6e3ff",
		highlight: "#54aeff",
	},
}

func (p palette) theme(id ThemeID) Theme {
	c := lipgloss.Color
	return Theme{
		ID:   id,
		Name: p.name,
		Colors: ThemeColors{
			Background: c(p.bg),
			Foreground: c(p.fg),
			Muted:      c(p.muted),
			Border:     c(p.border),
			Primary:    c(p.primary),
			Secondary:  c(p.secondary),
			Success:    c(p.success),
			Warning:    c(p.warn),
			Error:      c(p.danger),
			Surface:    c(p.surface),
			Selection:  c(p.selection),
			Highlight:  c(p.highlight),
		},
	}
}

// AvailableThemes returns all predefined themes sorted by ID.
func AvailableThemes() []Theme {
	ids := make([]string, 0, len(palettes))
	for id := range palettes {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	out := make([]Theme, 0, len(ids))
	for _, id := range ids {
		out = append(out, palettes[ThemeID(id)].theme(ThemeID(id)))
	}
	return out
}

// GetTheme returns a theme by ID, defaulting to Tokyo Night.
func GetTheme(id ThemeID) Theme {
	if p, ok := palettes[id]; ok {
		return p.theme(id)
	}
	return palettes[ThemeTokyoNight].theme(ThemeTokyoNight)
}
