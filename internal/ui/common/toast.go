package common

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// ToastType identifies the type of toast notification
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastSuccess
	ToastError
	ToastWarning
)

// ToastDismissed is sent when a toast should be dismissed
type ToastDismissed struct{}

// ToastModel shows one transient notification at a time.
type ToastModel struct {
	message   string
	kind      ToastType
	showUntil time.Time
	styles    Styles
	now       func() time.Time
}

// NewToastModel creates a new toast model
func NewToastModel(styles Styles) *ToastModel {
	return &ToastModel{styles: styles, now: time.Now}
}

// SetStyles updates the toast styles (for theme changes).
func (m *ToastModel) SetStyles(styles Styles) {
	m.styles = styles
}

// Show displays a toast notification and schedules its dismissal.
func (m *ToastModel) Show(message string, kind ToastType) tea.Cmd {
	duration := 3 * time.Second
	if kind == ToastError {
		duration = 5 * time.Second
	}
	m.message = message
	m.kind = kind
	m.showUntil = m.now().Add(duration)
	return tea.Tick(duration, func(time.Time) tea.Msg {
		return ToastDismissed{}
	})
}

// Update handles dismissal ticks.
func (m *ToastModel) Update(msg tea.Msg) {
	if _, ok := msg.(ToastDismissed); ok && !m.Visible() {
		m.message = ""
	}
}

// Visible returns whether the toast is currently visible
func (m *ToastModel) Visible() bool {
	return m.message != "" && m.now().Before(m.showUntil)
}

// View renders the toast notification
func (m *ToastModel) View() string {
	if !m.Visible() {
		return ""
	}
	switch m.kind {
	case ToastSuccess:
		return m.styles.Success.Render("✓ " + m.message)
	case ToastError:
		return m.styles.Error.Render("✗ " + m.message)
	case ToastWarning:
		return m.styles.Warning.Render("! " + m.message)
	default:
		return m.styles.Muted.Render("i " + m.message)
	}
}
