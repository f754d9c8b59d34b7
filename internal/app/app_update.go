package app

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/cellgrid/internal/logging"
	"github.com/andyrewlee/cellgrid/internal/messages"
	"github.com/andyrewlee/cellgrid/internal/ui/common"
)

// Update handles all messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case watcherMsg:
		_, cmd := a.Update(msg.msg)
		return a, tea.Batch(cmd, a.waitForWatcher())

	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, a.keymap.Quit):
			a.quitting = true
			return a, tea.Quit
		case key.Matches(msg, a.keymap.Help):
			a.toggleHints()
			return a, nil
		}

	case messages.SelectionChanged:
		a.lastErr = nil
		return a, nil

	case messages.Error:
		a.lastErr = msg
		logging.Warn("%v", msg)
		return a, nil

	case messages.Toast:
		return a, a.toast.Show(msg.Message, toastType(msg.Level))

	case common.ToastDismissed:
		a.toast.Update(msg)
		return a, nil

	case messages.ConfigReloaded:
		return a, a.applyConfig(msg.Config)

	case messages.ToggleKeymapHints:
		a.toggleHints()
		return a, nil
	}

	var cmd tea.Cmd
	a.grid, cmd = a.grid.Update(msg)
	return a, cmd
}

func toastType(level messages.ToastLevel) common.ToastType {
	switch level {
	case messages.ToastSuccess:
		return common.ToastSuccess
	case messages.ToastError:
		return common.ToastError
	case messages.ToastWarning:
		return common.ToastWarning
	default:
		return common.ToastInfo
	}
}
