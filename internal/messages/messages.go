package messages

import (
	"github.com/andyrewlee/cellgrid/internal/config"
	"github.com/andyrewlee/cellgrid/internal/grid"
)

// SelectionChanged is sent after an event changed the selection state
type SelectionChanged struct {
	Count     int
	Anchor    grid.Cell
	HasAnchor bool
	Dragging  bool
}

// ConfigReloaded is sent when the config file changed and parsed cleanly
type ConfigReloaded struct {
	Config *config.Config
}

// ToastLevel identifies the type of toast notification to display.
type ToastLevel string

const (
	ToastInfo    ToastLevel = "info"
	ToastSuccess ToastLevel = "success"
	ToastError   ToastLevel = "error"
	ToastWarning ToastLevel = "warning"
)

// Toast requests a toast notification in the UI.
type Toast struct {
	Message string
	Level   ToastLevel
}

// Error represents an application error
type Error struct {
	Err     error
	Context string
}

func (e Error) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

func (e Error) Unwrap() error { return e.Err }

// ToggleKeymapHints toggles the key hint footer
type ToggleKeymapHints struct{}
