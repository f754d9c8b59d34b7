package main

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/term"

	"github.com/andyrewlee/cellgrid/internal/app"
	"github.com/andyrewlee/cellgrid/internal/cli"
	"github.com/andyrewlee/cellgrid/internal/config"
	"github.com/andyrewlee/cellgrid/internal/logging"
	"github.com/andyrewlee/cellgrid/internal/perf"
)

// Version info set by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	args := os.Args[1:]
	launchTUI := shouldLaunchTUI(
		term.IsTerminal(os.Stdin.Fd()),
		term.IsTerminal(os.Stdout.Fd()),
		term.IsTerminal(os.Stderr.Fd()),
	)
	os.Exit(cli.Run(routeArgs(args, launchTUI), cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}, runTUI))
}

func shouldLaunchTUI(stdinIsTTY, stdoutIsTTY, stderrIsTTY bool) bool {
	return stdinIsTTY && stdoutIsTTY && stderrIsTTY
}

// routeArgs turns a bare invocation without a terminal into a help request
// instead of starting the TUI.
func routeArgs(args []string, launchTUI bool) []string {
	if len(args) == 0 && !launchTUI {
		return []string{"--help"}
	}
	return args
}

func runTUI(cfg *config.Config, opts []config.Option) error {
	if err := cfg.Paths.EnsureDirectories(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create %s: %v\n", cfg.Paths.Home, err)
	}
	if err := logging.Initialize(cfg.Paths.LogsDir, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not initialize logging: %v\n", err)
	}
	defer logging.Close()
	defer perf.Flush("shutdown")

	logging.Info("Starting cellgrid %s: %d days × %d locations", version, cfg.Grid.Days, cfg.Grid.Locations)

	a, err := app.New(cfg, version, commit, date)
	if err != nil {
		logging.Error("Failed to initialize app: %v", err)
		return fmt.Errorf("initialize app: %w", err)
	}
	defer a.Shutdown()

	if err := a.StartWatcher(opts...); err != nil {
		logging.Warn("Config watcher disabled: %v", err)
	}

	p := tea.NewProgram(a, tea.WithFilter(mouseEventFilter))
	if _, err := p.Run(); err != nil {
		logging.Error("App exited with error: %v", err)
		return fmt.Errorf("run app: %w", err)
	}
	logging.Info("cellgrid shutdown complete")
	return nil
}

var (
	lastMouseMotionEvent   time.Time
	lastMouseX, lastMouseY int
)

// mouseEventFilter drops repeated motion at the same position. Clicks and
// releases always pass so a drag can never be left open.
func mouseEventFilter(m tea.Model, msg tea.Msg) tea.Msg {
	motion, ok := msg.(tea.MouseMotionMsg)
	if !ok {
		return msg
	}
	if motion.X != lastMouseX || motion.Y != lastMouseY {
		lastMouseX = motion.X
		lastMouseY = motion.Y
		lastMouseMotionEvent = time.Now()
		return msg
	}
	now := time.Now()
	if now.Sub(lastMouseMotionEvent) < 15*time.Millisecond {
		return nil
	}
	lastMouseMotionEvent = now
	return msg
}
