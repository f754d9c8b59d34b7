package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/cellgrid/internal/config"
	"github.com/andyrewlee/cellgrid/internal/keymap"
	"github.com/andyrewlee/cellgrid/internal/logging"
	"github.com/andyrewlee/cellgrid/internal/messages"
	"github.com/andyrewlee/cellgrid/internal/selection"
	"github.com/andyrewlee/cellgrid/internal/supervisor"
	"github.com/andyrewlee/cellgrid/internal/ui/common"
)

// watcherMsg wraps messages produced by the config watcher so the pump can
// be re-armed after each one.
type watcherMsg struct {
	msg tea.Msg
}

// StartWatcher reloads the config whenever the file changes. opts are
// reapplied on every reload so command-line overrides stick.
func (a *App) StartWatcher(opts ...config.Option) error {
	if a.config.Paths == nil {
		return nil
	}
	a.loadOpts = opts
	a.watcherCh = make(chan tea.Msg, watcherBuffer)
	w, err := config.NewWatcher(a.config.Paths, 0, a.reload)
	if err != nil {
		a.watcherCh = nil
		return err
	}
	a.watcher = w
	a.supervisor.SetErrorHandler(func(name string, err error) {
		logging.Warn("%s: %v", name, err)
	})
	a.supervisor.Start("config.watcher", w.Run,
		supervisor.WithBackoff(watcherBackoff, watcherMaxBackoff))
	return nil
}

// reload runs on the watcher goroutine.
func (a *App) reload() {
	cfg, err := config.LoadFrom(a.config.Paths, a.loadOpts...)
	var msg tea.Msg = messages.ConfigReloaded{Config: cfg}
	if err != nil {
		msg = messages.Error{Err: err, Context: "reload config"}
	}
	select {
	case a.watcherCh <- watcherMsg{msg: msg}:
	default:
		// Channel full; the next change reloads again.
	}
}

// waitForWatcher blocks on the next reload result.
func (a *App) waitForWatcher() tea.Cmd {
	if a.watcherCh == nil {
		return nil
	}
	ch := a.watcherCh
	return func() tea.Msg {
		return <-ch
	}
}

// applyConfig swaps in a reloaded config. A different grid shape resets the
// selection; anything else keeps it.
func (a *App) applyConfig(cfg *config.Config) tea.Cmd {
	engine, err := cfg.Engine()
	if err != nil {
		a.lastErr = err
		return nil
	}

	reset := !a.config.Grid.SameShape(cfg.Grid)
	quiet := a.config.UIOnlyChange(cfg)
	if reset {
		a.session.Reset(engine)
		a.grid.Relayout()
	} else {
		a.session.SetEngine(engine)
	}
	a.session.SetHistoryLimit(cfg.Selection.History)

	a.keymap = keymap.New(cfg.KeyMap)
	a.styles = common.StylesFor(common.GetTheme(common.ThemeID(cfg.UI.Theme)))
	a.grid.SetKeyMap(a.keymap)
	a.grid.SetStyles(a.styles)
	a.grid.SetPolicy(cfg.Selection)
	a.toast.SetStyles(a.styles)
	a.showHints = cfg.UI.ShowKeymapHints
	logging.SetLevel(cfg.LogLevel)

	a.config = cfg
	a.lastErr = nil
	logging.Info("config reloaded: grid reset=%t drag=%t append=%t", reset, cfg.Selection.Drag, cfg.Selection.AppendRange)

	switch {
	case reset:
		return a.toast.Show("Grid changed; selection cleared", common.ToastWarning)
	case quiet:
		// SaveUISettings echoes back through the watcher.
		return nil
	}
	return a.toast.Show("Config reloaded", common.ToastInfo)
}

// toggleHints flips the help footer and persists the choice.
func (a *App) toggleHints() {
	a.showHints = !a.showHints
	a.config.UI.ShowKeymapHints = a.showHints
	if err := a.config.SaveUISettings(); err != nil {
		logging.WithError(err, "save ui settings")
	}
}

func (a *App) engineOptions() selection.Options {
	return a.session.Engine().Options()
}
