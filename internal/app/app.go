package app

import (
	"context"
	"sync"

	tea "charm.land/bubbletea/v2"
	zone "github.com/lrstanley/bubblezone"

	"github.com/andyrewlee/cellgrid/internal/config"
	"github.com/andyrewlee/cellgrid/internal/keymap"
	"github.com/andyrewlee/cellgrid/internal/selection"
	"github.com/andyrewlee/cellgrid/internal/supervisor"
	"github.com/andyrewlee/cellgrid/internal/ui/common"
	"github.com/andyrewlee/cellgrid/internal/ui/gridview"
)

// App is the top-level Bubble Tea model: the grid plus a status bar.
type App struct {
	config  *config.Config
	session *selection.Session
	grid    *gridview.Model
	keymap  keymap.KeyMap
	styles  common.Styles
	toast   *common.ToastModel
	zone    *zone.Manager

	width     int
	height    int
	showHints bool
	lastErr   error
	quitting  bool

	watcher    *config.Watcher
	watcherCh  chan tea.Msg
	loadOpts   []config.Option
	supervisor *supervisor.Supervisor

	shutdownOnce sync.Once

	version   string
	commit    string
	buildDate string
}

// New creates the application from a loaded config.
func New(cfg *config.Config, version, commit, date string) (*App, error) {
	engine, err := cfg.Engine()
	if err != nil {
		return nil, err
	}
	session := selection.NewSession(engine, selection.WithHistoryLimit(cfg.Selection.History))

	a := &App{
		config:     cfg,
		session:    session,
		keymap:     keymap.New(cfg.KeyMap),
		styles:     common.StylesFor(common.GetTheme(common.ThemeID(cfg.UI.Theme))),
		zone:       zone.New(),
		showHints:  cfg.UI.ShowKeymapHints,
		supervisor: supervisor.New(context.Background()),
		version:    version,
		commit:     commit,
		buildDate:  date,
	}
	a.toast = common.NewToastModel(a.styles)
	a.grid = gridview.New(session, cfg.Selection, a.keymap)
	a.grid.SetStyles(a.styles)
	a.grid.SetZone(a.zone)
	a.grid.SetOrigin(0, gridOriginY)
	return a, nil
}

// Init initializes the application.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.grid.Init(), a.waitForWatcher())
}

// Session exposes the selection session.
func (a *App) Session() *selection.Session { return a.session }

// Shutdown releases resources that may outlive the Bubble Tea program.
func (a *App) Shutdown() {
	a.shutdownOnce.Do(func() {
		a.supervisor.Stop()
		if a.watcher != nil {
			_ = a.watcher.Close()
		}
		if a.zone != nil {
			a.zone.Close()
		}
	})
}
