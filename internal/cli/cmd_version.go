package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type versionResult struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

func buildVersionCommand(info BuildInfo) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := reporter{json: jsonOut, command: "version", version: info.Version}
			result := versionResult{Version: info.Version, Commit: info.Commit, Date: info.Date}
			return r.success(result, func(w io.Writer) {
				fmt.Fprintf(w, "cellgrid %s (commit %s, built %s)\n", info.Version, info.Commit, info.Date)
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
