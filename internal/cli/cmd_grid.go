package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

type gridResult struct {
	Days        []int  `json:"days"`
	Locations   []int  `json:"locations"`
	Cells       int    `json:"cells"`
	Drag        bool   `json:"drag"`
	AppendRange bool   `json:"append_range"`
	ConfigPath  string `json:"config_path"`
}

func buildGridCommand(gf *globalFlags, version string) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Show the configured grid and selection policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := reporter{json: jsonOut, command: "grid", version: version}
			cfg, _, err := gf.load(cmd)
			if err != nil {
				return r.fail(ExitUsage, codeConfig, err, nil)
			}
			idx, err := cfg.Index()
			if err != nil {
				return r.fail(ExitUsage, codeConfig, err, nil)
			}

			result := gridResult{
				Days:        idx.Rows(),
				Locations:   idx.Columns(),
				Cells:       idx.Len(),
				Drag:        cfg.Selection.Drag,
				AppendRange: cfg.Selection.AppendRange,
				ConfigPath:  cfg.Paths.ConfigPath,
			}
			return r.success(result, func(w io.Writer) {
				fmt.Fprintf(w, "%d days × %d locations (%d cells)\n", len(result.Days), len(result.Locations), result.Cells)
				fmt.Fprintf(w, "days:      %s\n", joinInts(result.Days))
				fmt.Fprintf(w, "locations: %s\n", joinInts(result.Locations))
				fmt.Fprintf(w, "drag:      %t\n", result.Drag)
				fmt.Fprintf(w, "append:    %t\n", result.AppendRange)
				fmt.Fprintf(w, "config:    %s\n", result.ConfigPath)
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
