package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tburrows/impasto/internal/actionlog"
	"github.com/tburrows/impasto/internal/canvas"
	"github.com/tburrows/impasto/internal/palette"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database  string
	Style     string
	Width     int
	Height    int
	Capacity  int
	Timestamp int64
}

// ReplayResult holds the replay verification result.
type ReplayResult struct {
	Records       int      `json:"records"`
	Draws         int      `json:"draws"`
	Specials      int      `json:"specials"`
	Undos         int      `json:"undos"`
	Redos         int      `json:"redos"`
	Render        []string `json:"render"`
	Deterministic bool     `json:"deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay an action log and verify determinism",
		Long: `Replay a session's action log and verify determinism.

The log stores actions but not the grid configuration, so the canvas
style and dimensions must be supplied and must match the original
session. The log is replayed twice onto fresh grids; if the two renders
differ, replay is non-deterministic.

Exit codes:
  0 - Replay is deterministic
  1 - Determinism verification failed
  2 - Command error (log not found, replay error, etc.)

Examples:
  impasto replay --db ./session.db --style SET --width 4 --height 4
  impasto replay --db ./session.db --style ADD --width 2 --height 2 --capacity 8
  impasto replay --db ./session.db --style SET --width 4 --height 4 --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite action log (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Style, "style", "", "canvas style: SET, ADD or SEQUENCE (required)")
	_ = cmd.MarkFlagRequired("style")
	cmd.Flags().IntVar(&opts.Width, "width", 0, "canvas width (required)")
	_ = cmd.MarkFlagRequired("width")
	cmd.Flags().IntVar(&opts.Height, "height", 0, "canvas height (required)")
	_ = cmd.MarkFlagRequired("height")
	cmd.Flags().IntVar(&opts.Capacity, "capacity", 0, "ADD-style cell queue capacity (0 = default)")
	cmd.Flags().Int64Var(&opts.Timestamp, "timestamp", 0, "render timestamp for animated layers")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	style, err := canvas.ParseDrawStyle(opts.Style)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid canvas style", err)
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

	result := ReplayResult{Records: len(records)}
	for _, rec := range records {
		switch rec.Kind {
		case actionlog.KindDraw:
			result.Draws++
		case actionlog.KindSpecial:
			result.Specials++
		case actionlog.KindUndo:
			result.Undos++
		case actionlog.KindRedo:
			result.Redos++
		}
	}

	cat := palette.Default()

	// Replay twice onto fresh grids and compare the renders.
	first, err := replayOnto(ctx, log, cat, style, opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "first replay failed", err)
	}
	second, err := replayOnto(ctx, log, cat, style, opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "second replay failed", err)
	}

	render1 := renderLines(first.Render(palette.White, opts.Timestamp))
	render2 := renderLines(second.Render(palette.White, opts.Timestamp))
	result.Render = render1
	result.Deterministic = equalRenders(render1, render2)

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		if !result.Deterministic {
			if err := formatter.Error("E_DETERMINISM", "determinism verification failed", result); err != nil {
				return err
			}
			return NewExitError(ExitFailure, "determinism verification failed")
		}
		if err := formatter.Success(result); err != nil {
			return err
		}
		return nil
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Replayed %d record(s): %d draw, %d special, %d undo, %d redo\n",
		result.Records, result.Draws, result.Specials, result.Undos, result.Redos)
	for _, row := range result.Render {
		fmt.Fprintln(w, row)
	}
	if result.Deterministic {
		fmt.Fprintln(w, "Replay verified deterministic")
		return nil
	}
	fmt.Fprintln(w, "Determinism verification failed")
	return NewExitError(ExitFailure, "determinism verification failed")
}

// replayOnto plays the full log onto a fresh grid of the given configuration.
func replayOnto(ctx context.Context, log *actionlog.Log, cat *palette.Catalogue, style canvas.DrawStyle, opts *ReplayOptions) (*canvas.Grid, error) {
	tracker, err := actionlog.LoadTracker(ctx, log, cat, 0)
	if err != nil {
		return nil, err
	}
	grid, err := canvas.NewGrid(style, opts.Width, opts.Height, cat, opts.Capacity)
	if err != nil {
		return nil, err
	}
	tracker.StartReplay()
	for {
		done, err := tracker.PlayNext(grid)
		if err != nil {
			return nil, err
		}
		if done {
			return grid, nil
		}
	}
}

func equalRenders(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
