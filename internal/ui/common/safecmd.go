package common

import (
	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/cellgrid/internal/messages"
	"github.com/andyrewlee/cellgrid/internal/safego"
)

// SafeCmd wraps a command with panic recovery. A panic is delivered as a
// messages.Error instead of crashing the program.
func SafeCmd(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		var msg tea.Msg
		if err := safego.Call("command", func() error {
			msg = cmd()
			return nil
		}); err != nil {
			return messages.Error{Err: err, Context: "command"}
		}
		return msg
	}
}

// SafeBatch wraps commands in panic recovery before batching.
func SafeBatch(cmds ...tea.Cmd) tea.Cmd {
	safe := make([]tea.Cmd, 0, len(cmds))
	for _, cmd := range cmds {
		if cmd != nil {
			safe = append(safe, SafeCmd(cmd))
		}
	}
	if len(safe) == 0 {
		return nil
	}
	return tea.Batch(safe...)
}
