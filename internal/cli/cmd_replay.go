package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/andyrewlee/cellgrid/internal/grid"
	"github.com/andyrewlee/cellgrid/internal/selection"
	"github.com/andyrewlee/cellgrid/internal/ui/common"
	"github.com/andyrewlee/cellgrid/internal/ui/gridview"
)

const maxReplayLine = 1 << 20

type replayResult struct {
	Selected []grid.Cell `json:"selected"`
	Anchor   *grid.Cell  `json:"anchor"`
	Dragging bool        `json:"dragging"`
	Events   int         `json:"events"`
	Session  string      `json:"session"`
}

// replayEvent is an event plus the input line it came from.
type replayEvent struct {
	event selection.Event
	line  int
}

type replayFailure struct {
	Line    int    `json:"line"`
	Event   string `json:"event,omitempty"`
	Applied int    `json:"applied"`
}

func buildReplayCommand(gf *globalFlags, version string) *cobra.Command {
	var (
		jsonOut bool
		color   bool
		cells   bool
	)
	cmd := &cobra.Command{
		Use:   "replay [file|-]",
		Short: "Fold JSON-lines selection events and print the final state",
		Long: `Read one event per line, e.g.

  {"kind":"press","row":3,"column":2}
  {"kind":"hover","row":5,"column":4}
  {"kind":"release","row":5,"column":4}
  {"kind":"click","row":9,"column":1,"ctrl":true}

A missing kind means click. Input is read from stdin when no file or "-" is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := reporter{json: jsonOut, command: "replay", version: version}
			cfg, _, err := gf.load(cmd)
			if err != nil {
				return r.fail(ExitUsage, codeConfig, err, nil)
			}
			engine, err := cfg.Engine()
			if err != nil {
				return r.fail(ExitUsage, codeConfig, err, nil)
			}

			source := "-"
			if len(args) == 1 {
				source = args[0]
			}
			events, err := readReplayInput(source)
			if err != nil {
				var pe *parseError
				if errors.As(err, &pe) {
					return r.fail(ExitUsage, codeParse, err, replayFailure{Line: pe.line})
				}
				return r.fail(ExitUsage, codeUsage, err, nil)
			}

			session := selection.NewSession(engine, selection.WithHistoryLimit(0))
			state, applied, err := replay(session, events)
			if err != nil {
				failed := events[applied]
				details := replayFailure{Line: failed.line, Event: failed.event.String(), Applied: applied}
				if errors.Is(err, grid.ErrInvalidCell) {
					return r.fail(ExitInvalidCell, codeInvalidCell, err, details)
				}
				return r.fail(ExitInternalError, codeInternal, err, details)
			}

			result := replayResult{
				Selected: state.Cells(),
				Dragging: state.Dragging(),
				Events:   applied,
				Session:  session.ID(),
			}
			if result.Selected == nil {
				result.Selected = []grid.Cell{}
			}
			if anchor, ok := state.AnchorCell(); ok {
				result.Anchor = &anchor
			}
			return r.success(result, func(w io.Writer) {
				idx := engine.Index()
				if cells {
					fmt.Fprint(w, gridview.SelectionText(idx, state))
					return
				}
				styles := common.StylesFor(common.GetTheme(common.ThemeID(cfg.UI.Theme)))
				out := gridview.Render(idx, state, styles)
				if !color {
					out = ansi.Strip(out)
				}
				fmt.Fprintln(w, out)
				fmt.Fprintln(w)
				fmt.Fprintln(w, replaySummary(result))
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&color, "color", false, "Keep terminal styles in the rendered grid")
	cmd.Flags().BoolVar(&cells, "cells", false, "Print the selected cells as CSV instead of the grid")
	return cmd
}

func replay(session *selection.Session, events []replayEvent) (selection.State, int, error) {
	list := make([]selection.Event, len(events))
	for i, ev := range events {
		list[i] = ev.event
	}
	return session.ApplyAll(list)
}

func replaySummary(r replayResult) string {
	anchor := "none"
	if r.Anchor != nil {
		anchor = r.Anchor.String()
	}
	summary := fmt.Sprintf("selected %d · anchor %s · events %d", len(r.Selected), anchor, r.Events)
	if r.Dragging {
		summary += " · dragging"
	}
	return summary
}

type parseError struct {
	line int
	err  error
}

func (e *parseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.line, e.err)
}

func (e *parseError) Unwrap() error { return e.err }

func readReplayInput(source string) ([]replayEvent, error) {
	if source == "-" {
		return parseReplay(cliStdin)
	}
	f, err := os.Open(source)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseReplay(f)
}

// parseReplay decodes JSON-lines events. Blank lines and lines starting with
// '#' are skipped. Nothing is applied unless the whole input parses.
func parseReplay(r io.Reader) ([]replayEvent, error) {
	var events []replayEvent
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxReplayLine)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		var ev selection.Event
		if err := json.Unmarshal([]byte(text), &ev); err != nil {
			return nil, &parseError{line: line, err: err}
		}
		events = append(events, replayEvent{event: ev, line: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
