package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func buildTUICommand(gf *globalFlags, tui TUIRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, gf, tui)
		},
	}
}

func runTUI(cmd *cobra.Command, gf *globalFlags, tui TUIRunner) error {
	r := reporter{command: "tui"}
	if tui == nil {
		return r.fail(ExitUsage, codeUsage, errors.New("interactive mode is not available"), nil)
	}
	cfg, opts, err := gf.load(cmd)
	if err != nil {
		return r.fail(ExitUsage, codeConfig, err, nil)
	}
	if err := tui(cfg, opts); err != nil {
		return r.fail(ExitInternalError, codeInternal, err, nil)
	}
	return nil
}
