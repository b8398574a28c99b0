package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tburrows/impasto/internal/actionlog"
)

// LogOptions holds flags for the log command.
type LogOptions struct {
	*RootOptions
	Database string
	Kind     string // optional - filter by action kind
}

// LogEntry is the output form of one logged action.
type LogEntry struct {
	Seq   int64                  `json:"seq"`
	ID    string                 `json:"id"`
	Kind  string                 `json:"kind"`
	Steps []actionlog.StepRecord `json:"steps,omitempty"`
}

// LogResult holds the log listing.
type LogResult struct {
	Entries []LogEntry `json:"entries"`
	Total   int        `json:"total"`
}

// NewLogCommand creates the log command.
func NewLogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Inspect a session's action log",
		Long: `List the recorded actions of a session in replay order.

Each entry shows the logical-clock seq, the action ID, the action kind
(draw, special, undo, redo) and, for draws, the brush steps.

Examples:
  impasto log --db ./session.db
  impasto log --db ./session.db --kind draw
  impasto log --db ./session.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite action log (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Kind, "kind", "", "filter by action kind (draw|special|undo|redo)")

	return cmd
}

func runLog(opts *LogOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.Kind != "" {
		switch actionlog.Kind(opts.Kind) {
		case actionlog.KindDraw, actionlog.KindSpecial, actionlog.KindUndo, actionlog.KindRedo:
		default:
			return NewExitError(ExitCommandError, fmt.Sprintf("invalid kind %q", opts.Kind))
		}
	}

	log, err := actionlog.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open action log", err)
	}
	defer log.Close()

	records, err := log.ReadAll(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read action log", err)
	}

	result := LogResult{Entries: []LogEntry{}}
	for _, rec := range records {
		if opts.Kind != "" && string(rec.Kind) != opts.Kind {
			continue
		}
		result.Entries = append(result.Entries, LogEntry{
			Seq:   rec.Seq,
			ID:    rec.ID,
			Kind:  string(rec.Kind),
			Steps: rec.Steps,
		})
	}
	result.Total = len(result.Entries)

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(result)
	}

	w := cmd.OutOrStdout()
	if result.Total == 0 {
		fmt.Fprintln(w, "No actions recorded.")
		return nil
	}
	fmt.Fprintf(w, "%d action(s)\n", result.Total)
	for _, e := range result.Entries {
		if len(e.Steps) == 0 {
			fmt.Fprintf(w, "  %4d  %-7s  %s\n", e.Seq, e.Kind, e.ID)
			continue
		}
		steps := make([]string, 0, len(e.Steps))
		for _, s := range e.Steps {
			steps = append(steps, fmt.Sprintf("%s@(%d,%d)", s.Layer, s.X, s.Y))
		}
		fmt.Fprintf(w, "  %4d  %-7s  %s  %s\n", e.Seq, e.Kind, e.ID, strings.Join(steps, " "))
	}
	return nil
}
