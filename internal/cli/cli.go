package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/andyrewlee/cellgrid/internal/config"
)

// Writers and reader used by commands. Tests swap them out.
var (
	cliStdout io.Writer = os.Stdout
	cliStderr io.Writer = os.Stderr
	cliStdin  io.Reader = os.Stdin
)

// BuildInfo carries the values stamped in at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// TUIRunner launches the interactive grid. opts must be reapplied when the
// config is reloaded.
type TUIRunner func(cfg *config.Config, opts []config.Option) error

type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit with code %d", e.code)
}

// Run executes the cellgrid CLI. It returns a process exit code.
func Run(args []string, info BuildInfo, tui TUIRunner) int {
	root := buildRootCommand(info, tui)
	root.SetArgs(args)
	root.SetOut(cliStdout)
	root.SetErr(cliStderr)
	if err := root.Execute(); err != nil {
		var exitErr exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		Errorf(cliStderr, "%v", err)
		return ExitUsage
	}
	return ExitOK
}

func buildRootCommand(info BuildInfo, tui TUIRunner) *cobra.Command {
	gf := &globalFlags{}
	root := &cobra.Command{
		Use:   "cellgrid",
		Short: "Select cells on a days × locations grid",
		Long: `cellgrid - multi-cell selection over a days × locations grid

  cellgrid                 Open the interactive grid
  cellgrid replay [file]   Fold JSON-lines events and print the result
  cellgrid grid            Show the configured grid
  cellgrid version         Show build information`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, gf, tui)
		},
	}
	root.Version = info.Version
	root.SetHelpCommand(&cobra.Command{Hidden: true})
	root.CompletionOptions.DisableDefaultCmd = true
	gf.register(root)

	root.AddCommand(buildTUICommand(gf, tui))
	root.AddCommand(buildReplayCommand(gf, info.Version))
	root.AddCommand(buildGridCommand(gf, info.Version))
	root.AddCommand(buildVersionCommand(info))
	return root
}

// globalFlags override the config file and environment for one invocation.
type globalFlags struct {
	home        string
	days        int
	locations   int
	noDrag      bool
	appendRange bool
}

func (g *globalFlags) register(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.StringVar(&g.home, "home", "", "Config and log directory (default ~/.cellgrid)")
	flags.IntVar(&g.days, "days", config.DefaultDays, "Number of days (rows)")
	flags.IntVar(&g.locations, "locations", config.DefaultLocations, "Number of locations (columns)")
	flags.BoolVar(&g.noDrag, "no-drag", false, "Disable drag selection; every press is a click")
	flags.BoolVar(&g.appendRange, "append", false, "Shift-range adds to the selection instead of replacing it")
}

// options turns explicitly set flags into config overrides. Flags left at
// their defaults never shadow the file or environment.
func (g *globalFlags) options(cmd *cobra.Command) []config.Option {
	flags := cmd.Flags()
	opts := []config.Option{
		config.WithFlag("grid.days", flags.Lookup("days")),
		config.WithFlag("grid.locations", flags.Lookup("locations")),
		config.WithFlag("selection.append_range", flags.Lookup("append")),
	}
	if flags.Changed("days") {
		opts = append(opts, config.WithOverride("grid.day_values", []int{}))
	}
	if flags.Changed("locations") {
		opts = append(opts, config.WithOverride("grid.location_values", []int{}))
	}
	if g.noDrag {
		opts = append(opts, config.WithOverride("selection.drag", false))
	}
	return opts
}

func (g *globalFlags) paths() (*config.Paths, error) {
	if g.home != "" {
		return config.NewPaths(g.home), nil
	}
	return config.DefaultPaths()
}

func (g *globalFlags) load(cmd *cobra.Command) (*config.Config, []config.Option, error) {
	paths, err := g.paths()
	if err != nil {
		return nil, nil, err
	}
	opts := g.options(cmd)
	cfg, err := config.LoadFrom(paths, opts...)
	if err != nil {
		return nil, nil, err
	}
	return cfg, opts, nil
}

// reporter writes results and failures in the format the caller asked for.
type reporter struct {
	json    bool
	command string
	version string
}

func (r reporter) success(data any, human func(io.Writer)) error {
	if r.json {
		PrintJSON(cliStdout, r.command, data, r.version)
		return nil
	}
	human(cliStdout)
	return nil
}

func (r reporter) fail(exit int, code string, err error, details any) error {
	if r.json {
		ReturnError(cliStdout, r.command, code, err.Error(), details, r.version)
	} else {
		Errorf(cliStderr, "%v", err)
	}
	return exitError{code: exit}
}
