package harness

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/tburrows/impasto/internal/canvas"
	"github.com/tburrows/impasto/internal/engine"
	"github.com/tburrows/impasto/internal/paint"
	"github.com/tburrows/impasto/internal/palette"
)

// TraceEvent records one performed script operation.
type TraceEvent struct {
	Type   string   `json:"type"` // "draw", "special", "undo", "redo"
	ID     string   `json:"id,omitempty"`
	Seq    int64    `json:"seq,omitempty"`
	Layer  string   `json:"layer,omitempty"`
	Points []string `json:"points,omitempty"`
	Noop   bool     `json:"noop,omitempty"` // undo/redo with nothing to do
}

// Result is the outcome of a scenario execution.
type Result struct {
	Pass          bool         `json:"pass"`
	Errors        []string     `json:"errors,omitempty"`
	Trace         []TraceEvent `json:"trace"`
	Render        []string     `json:"render"`
	ReplayMatches bool         `json:"replay_matches"`
}

// seqIDGenerator hands out "action-1", "action-2", ... so traces and golden
// files are stable across runs.
type seqIDGenerator struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("action-%d", g.n)
}

// Run executes a scenario in a fresh session with an in-memory action log
// and deterministic IDs.
//
// Script errors abort the run; assertion failures and replay divergence are
// collected into the result instead, so a failing scenario still carries
// its full trace for diagnosis.
func Run(s *Scenario) (*Result, error) {
	ctx := context.Background()
	cat := palette.Default()

	style, err := canvas.ParseDrawStyle(s.Grid.Style)
	if err != nil {
		return nil, err
	}

	eng, err := engine.New(ctx, engine.Config{
		Style:            style,
		Width:            s.Grid.Width,
		Height:           s.Grid.Height,
		AdditiveCapacity: s.Grid.Capacity,
		Catalogue:        cat,
		IDs:              &seqIDGenerator{},
	})
	if err != nil {
		return nil, err
	}
	defer eng.Close()

	result := &Result{Pass: true}

	for i, st := range s.Script {
		event, err := playStep(ctx, eng, cat, st)
		if err != nil {
			return nil, fmt.Errorf("harness: script[%d]: %w", i, err)
		}
		result.Trace = append(result.Trace, event)
	}

	result.Render = renderRows(eng.Render(palette.White, s.Timestamp))

	ok, err := eng.VerifyReplay(ctx, palette.White, s.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("harness: replay: %w", err)
	}
	result.ReplayMatches = ok
	if !ok {
		result.Pass = false
		result.Errors = append(result.Errors, "replayed render diverges from live render")
	}

	checkCells(s, eng, result)
	return result, nil
}

func playStep(ctx context.Context, eng *engine.Engine, cat *palette.Catalogue, st Step) (TraceEvent, error) {
	switch {
	case st.Draw != nil:
		layer, ok := cat.ByName(st.Draw.Layer)
		if !ok {
			return TraceEvent{}, fmt.Errorf("unknown layer %q", st.Draw.Layer)
		}
		steps := make([]paint.PaintStep, 0, len(st.Draw.Points))
		points := make([]string, 0, len(st.Draw.Points))
		for _, p := range st.Draw.Points {
			steps = append(steps, paint.PaintStep{X: p[0], Y: p[1], Layer: layer})
			points = append(points, fmt.Sprintf("%d,%d", p[0], p[1]))
		}
		a, err := eng.Draw(ctx, steps)
		if err != nil {
			return TraceEvent{}, err
		}
		return TraceEvent{Type: "draw", ID: a.ID, Seq: a.Seq, Layer: layer.Name, Points: points}, nil

	case st.Special:
		a, err := eng.Special(ctx)
		if err != nil {
			return TraceEvent{}, err
		}
		return TraceEvent{Type: "special", ID: a.ID, Seq: a.Seq}, nil

	case st.Undo:
		a, ok, err := eng.Undo(ctx)
		if err != nil {
			return TraceEvent{}, err
		}
		if !ok {
			return TraceEvent{Type: "undo", Noop: true}, nil
		}
		return TraceEvent{Type: "undo", ID: a.ID, Seq: eng.Clock()}, nil

	case st.Redo:
		a, ok, err := eng.Redo(ctx)
		if err != nil {
			return TraceEvent{}, err
		}
		if !ok {
			return TraceEvent{Type: "redo", Noop: true}, nil
		}
		return TraceEvent{Type: "redo", ID: a.ID, Seq: eng.Clock()}, nil
	}
	return TraceEvent{}, fmt.Errorf("empty step")
}

// renderRows flattens a render into one string per row (increasing y),
// cells in increasing x order.
func renderRows(colours [][]palette.Colour) []string {
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

func checkCells(s *Scenario, eng *engine.Engine, result *Result) {
	colours := eng.Render(palette.White, s.Timestamp)
	for _, want := range s.Cells {
		if want.X < 0 || want.X >= len(colours) || want.Y < 0 || want.Y >= len(colours[want.X]) {
			result.Pass = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("cell assertion (%d, %d) outside %dx%d grid", want.X, want.Y, s.Grid.Width, s.Grid.Height))
			continue
		}
		got := colours[want.X][want.Y].String()
		if got != want.Colour {
			result.Pass = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("cell (%d, %d): want %s, got %s", want.X, want.Y, want.Colour, got))
		}
	}
}
