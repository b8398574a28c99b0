// Package engine runs painting sessions: it owns a grid, the undo history,
// the logical clock, and the durable action log, and keeps them consistent
// with each other.
//
// Every performed action is stamped with the next clock seq, applied to the
// grid, recorded for undo, and appended to the log. Because the log captures
// the complete session in seq order, replaying it onto a fresh grid of the
// same configuration reproduces the session's final render exactly.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tburrows/impasto/internal/actionlog"
	"github.com/tburrows/impasto/internal/canvas"
	"github.com/tburrows/impasto/internal/paint"
	"github.com/tburrows/impasto/internal/palette"
)

// Config describes a session. Zero values select defaults: an in-memory
// log, the built-in catalogue, UUIDv7 action IDs, and default capacities.
type Config struct {
	Style  canvas.DrawStyle
	Width  int
	Height int

	// AdditiveCapacity bounds each ADD-style cell's queue; 0 = default.
	AdditiveCapacity int

	// TrackerCapacity bounds undo history; 0 = default.
	TrackerCapacity int

	// LogPath is the SQLite path for the action log; "" = in-memory.
	LogPath string

	Catalogue *palette.Catalogue
	IDs       paint.IDGenerator
	Logger    *slog.Logger
}

// Engine is one painting session over one grid.
type Engine struct {
	cfg   Config
	cat   *palette.Catalogue
	grid  *canvas.Grid
	undo  *paint.UndoTracker
	clock *paint.Clock
	ids   paint.IDGenerator
	log   *actionlog.Log
	lg    *slog.Logger
}

// New opens a session. If the log already holds actions (a reopened
// on-disk log), the clock resumes past the highest recorded seq.
func New(ctx context.Context, cfg Config) (*Engine, error) {
	cat := cfg.Catalogue
	if cat == nil {
		cat = palette.Default()
	}
	ids := cfg.IDs
	if ids == nil {
		ids = paint.UUIDv7Generator{}
	}
	lg := cfg.Logger
	if lg == nil {
		lg = slog.Default()
	}

	grid, err := canvas.NewGrid(cfg.Style, cfg.Width, cfg.Height, cat, cfg.AdditiveCapacity)
	if err != nil {
		return nil, err
	}

	path := cfg.LogPath
	if path == "" {
		path = ":memory:"
	}
	log, err := actionlog.Open(path)
	if err != nil {
		return nil, err
	}

	lastSeq, err := log.LastSeq(ctx)
	if err != nil {
		log.Close()
		return nil, err
	}

	lg.Debug("session opened",
		"style", string(cfg.Style),
		"width", cfg.Width,
		"height", cfg.Height,
		"resume_seq", lastSeq,
	)

	return &Engine{
		cfg:   cfg,
		cat:   cat,
		grid:  grid,
		undo:  paint.NewUndoTracker(cfg.TrackerCapacity),
		clock: paint.NewClockAt(lastSeq),
		ids:   ids,
		log:   log,
		lg:    lg,
	}, nil
}

// Close releases the action log.
func (e *Engine) Close() error {
	return e.log.Close()
}

// Grid exposes the live grid, e.g. for direct cell reads.
func (e *Engine) Grid() *canvas.Grid { return e.grid }

// Catalogue returns the layer catalogue the session draws from.
func (e *Engine) Catalogue() *palette.Catalogue { return e.cat }

// Clock returns the session's logical clock position.
func (e *Engine) Clock() int64 { return e.clock.Current() }

// Draw performs a brush-stroke action over the given steps.
func (e *Engine) Draw(ctx context.Context, steps []paint.PaintStep) (paint.PaintAction, error) {
	a := paint.PaintAction{ID: e.ids.Generate(), Seq: e.clock.Next(), Steps: steps}
	if err := a.ApplyTo(e.grid); err != nil {
		return a, err
	}
	e.undo.AddAction(a)
	if err := e.log.Append(ctx, actionlog.FromAction(a, actionlog.KindDraw)); err != nil {
		return a, err
	}
	e.lg.Debug("draw", "action", a.ID, "seq", a.Seq, "steps", len(steps))
	return a, nil
}

// Special performs a grid-wide special action.
func (e *Engine) Special(ctx context.Context) (paint.PaintAction, error) {
	a := paint.PaintAction{ID: e.ids.Generate(), Seq: e.clock.Next(), Special: true}
	if err := a.ApplyTo(e.grid); err != nil {
		return a, err
	}
	e.undo.AddAction(a)
	if err := e.log.Append(ctx, actionlog.FromAction(a, actionlog.KindSpecial)); err != nil {
		return a, err
	}
	e.lg.Debug("special", "action", a.ID, "seq", a.Seq)
	return a, nil
}

// Undo reverses the most recent action. The undo itself is logged under a
// fresh ID and seq, so replaying the log repeats the session verbatim,
// undos included. Returns false when there is nothing to undo.
func (e *Engine) Undo(ctx context.Context) (paint.PaintAction, bool, error) {
	a, ok, err := e.undo.Undo(e.grid)
	if err != nil || !ok {
		return a, ok, err
	}
	rec := actionlog.FromAction(a, actionlog.KindUndo)
	rec.ID = e.ids.Generate()
	rec.Seq = e.clock.Next()
	if err := e.log.Append(ctx, rec); err != nil {
		return a, true, err
	}
	e.lg.Debug("undo", "action", a.ID, "seq", rec.Seq)
	return a, true, nil
}

// Redo re-applies the most recently undone action, logged like Undo under
// a fresh ID and seq. Returns false when there is nothing to redo.
func (e *Engine) Redo(ctx context.Context) (paint.PaintAction, bool, error) {
	a, ok, err := e.undo.Redo(e.grid)
	if err != nil || !ok {
		return a, ok, err
	}
	rec := actionlog.FromAction(a, actionlog.KindRedo)
	rec.ID = e.ids.Generate()
	rec.Seq = e.clock.Next()
	if err := e.log.Append(ctx, rec); err != nil {
		return a, true, err
	}
	e.lg.Debug("redo", "action", a.ID, "seq", rec.Seq)
	return a, true, nil
}

// Render composes every cell over start at the given timestamp.
func (e *Engine) Render(start palette.Colour, timestamp int64) [][]palette.Colour {
	return e.grid.Render(start, timestamp)
}

// Replay plays the session's full log onto a fresh grid of the same
// configuration and returns that grid. The live grid is untouched.
func (e *Engine) Replay(ctx context.Context) (*canvas.Grid, error) {
	tracker, err := actionlog.LoadTracker(ctx, e.log, e.cat, 0)
	if err != nil {
		return nil, err
	}
	fresh, err := canvas.NewGrid(e.cfg.Style, e.cfg.Width, e.cfg.Height, e.cat, e.cfg.AdditiveCapacity)
	if err != nil {
		return nil, err
	}
	tracker.StartReplay()
	for {
		done, err := tracker.PlayNext(fresh)
		if err != nil {
			return nil, err
		}
		if done {
			return fresh, nil
		}
	}
}

// VerifyReplay replays the log and reports whether the replayed render
// matches the live one. A mismatch means the log does not capture the
// session faithfully.
func (e *Engine) VerifyReplay(ctx context.Context, start palette.Colour, timestamp int64) (bool, error) {
	replayed, err := e.Replay(ctx)
	if err != nil {
		return false, err
	}
	live := e.grid.Render(start, timestamp)
	again := replayed.Render(start, timestamp)
	for x := range live {
		for y := range live[x] {
			if live[x][y] != again[x][y] {
				e.lg.Debug("replay divergence",
					"x", x, "y", y,
					"live", live[x][y].String(),
					"replayed", again[x][y].String(),
				)
				return false, nil
			}
		}
	}
	return true, nil
}

// String renders a one-line summary, mostly for logs.
func (e *Engine) String() string {
	return fmt.Sprintf("engine(%s %dx%d seq=%d)", e.grid.Style(), e.grid.Width(), e.grid.Height(), e.clock.Current())
}
