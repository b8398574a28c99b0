package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tburrows/impasto/internal/canvas"
	"github.com/tburrows/impasto/internal/engine"
	"github.com/tburrows/impasto/internal/paint"
	"github.com/tburrows/impasto/internal/palette"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database string

	// IDGenerator allows overriding the action ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDGenerator paint.IDGenerator
}

// RunResult holds the result of executing a paint script.
type RunResult struct {
	Actions       int      `json:"actions"`
	FinalSeq      int64    `json:"final_seq"`
	Render        []string `json:"render"`
	ReplayMatches bool     `json:"replay_matches"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Execute a paint script",
		Long: `Execute a CUE paint script against a fresh painting session.

The script declares a canvas (style, dimensions) and an ordered list of
actions (draw, special, undo, redo). Every performed action is appended to
the action log; after the script completes, the log is replayed onto a
fresh grid and the renders are compared.

Exit codes:
  0 - Script executed and replay verified
  1 - Replay diverged from the live render
  2 - Command error (script not found, invalid script, etc.)

Examples:
  impasto run ./script.cue
  impasto run ./scripts --db ./session.db
  impasto run ./script.cue --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite action log (default: in-memory)")

	return cmd
}

func runScript(opts *RunOptions, scriptPath string, cmd *cobra.Command) error {
	// Configure logging based on verbose flag
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	lg := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	script, err := LoadScript(scriptPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load script", err)
	}
	lg.Info("script loaded", "path", scriptPath, "actions", len(script.Actions))

	style, err := canvas.ParseDrawStyle(script.Canvas.Style)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid canvas style", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	eng, err := engine.New(ctx, engine.Config{
		Style:            style,
		Width:            script.Canvas.Width,
		Height:           script.Canvas.Height,
		AdditiveCapacity: script.Canvas.Capacity,
		LogPath:          opts.Database,
		IDs:              opts.IDGenerator,
		Logger:           lg,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open session", err)
	}
	defer func() {
		if closeErr := eng.Close(); closeErr != nil {
			lg.Error("error closing action log", "error", closeErr)
		}
	}()

	for i, a := range script.Actions {
		if err := performAction(ctx, eng, a); err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("actions[%d] failed", i), err)
		}
	}

	result := RunResult{
		Actions:  len(script.Actions),
		FinalSeq: eng.Clock(),
		Render:   renderLines(eng.Render(palette.White, script.Timestamp)),
	}

	ok, err := eng.VerifyReplay(ctx, palette.White, script.Timestamp)
	if err != nil {
		return WrapExitError(ExitCommandError, "replay failed", err)
	}
	result.ReplayMatches = ok

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Executed %d action(s), final seq %d\n", result.Actions, result.FinalSeq)
		for _, row := range result.Render {
			fmt.Fprintln(w, row)
		}
	}

	if !ok {
		return NewExitError(ExitFailure, "replay diverged from live render")
	}
	return nil
}

func performAction(ctx context.Context, eng *engine.Engine, a ScriptAction) error {
	switch {
	case a.Draw != nil:
		layer, ok := eng.Catalogue().ByName(a.Draw.Layer)
		if !ok {
			return fmt.Errorf("unknown layer %q", a.Draw.Layer)
		}
		steps := make([]paint.PaintStep, 0, len(a.Draw.Points))
		for _, p := range a.Draw.Points {
			steps = append(steps, paint.PaintStep{X: p[0], Y: p[1], Layer: layer})
		}
		_, err := eng.Draw(ctx, steps)
		return err
	case a.Special:
		_, err := eng.Special(ctx)
		return err
	case a.Undo:
		_, _, err := eng.Undo(ctx)
		return err
	case a.Redo:
		_, _, err := eng.Redo(ctx)
		return err
	}
	return fmt.Errorf("empty action")
}

// renderLines flattens a render into one string per row (increasing y),
// cells in increasing x order.
func renderLines(colours [][]palette.Colour) []string {
	if len(colours) == 0 {
		return nil
	}
	width, height := len(colours), len(colours[0])
	rows := make([]string, 0, height)
	for y := 0; y < height; y++ {
		cells := make([]string, 0, width)
		for x := 0; x < width; x++ {
			cells = append(cells, colours[x][y].String())
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	return rows
}
