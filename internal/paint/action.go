// Package paint sequences layer-store operations into reversible, replayable
// actions: brush strokes, specials, undo, and redo.
//
// The composition core knows nothing about these trackers; everything here
// drives grids purely through the four-operation LayerStore interface.
package paint

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/tburrows/impasto/internal/canvas"
	"github.com/tburrows/impasto/internal/palette"
)

// PaintStep is one brush touch: a layer applied to a single cell.
type PaintStep struct {
	X, Y  int
	Layer palette.Layer
}

// PaintAction is a reversible unit of work: either a list of steps from one
// brush stroke, or a grid-wide special.
type PaintAction struct {
	// ID identifies the action in logs and traces.
	ID string

	// Seq is the logical-clock stamp assigned when the action is recorded.
	// Replay orders strictly by Seq, never by wall time.
	Seq int64

	Steps   []PaintStep
	Special bool
}

// NewAction creates a draw action over the given steps.
func NewAction(id string, steps []PaintStep) PaintAction {
	return PaintAction{ID: id, Steps: steps}
}

// NewSpecialAction creates a grid-wide special action.
func NewSpecialAction(id string) PaintAction {
	return PaintAction{ID: id, Special: true}
}

// ApplyTo performs the action on the grid: every step's layer is added to
// its cell, or the special is broadcast.
func (a PaintAction) ApplyTo(g *canvas.Grid) error {
	if a.Special {
		if err := g.Special(); err != nil {
			return fmt.Errorf("action %s special: %w", a.ID, err)
		}
		return nil
	}
	for _, step := range a.Steps {
		cell, err := g.At(step.X, step.Y)
		if err != nil {
			return fmt.Errorf("action %s: %w", a.ID, err)
		}
		if _, err := cell.Add(step.Layer); err != nil {
			return fmt.Errorf("action %s add at (%d, %d): %w", a.ID, step.X, step.Y, err)
		}
	}
	return nil
}

// UndoTo reverses the action on the grid: steps are erased in reverse order.
// A special is undone by broadcasting special again; the Set and Additive
// specials have period two, so this is an exact inverse for them. The
// Sequence special has no inverse, and undoing it repeats the eviction.
func (a PaintAction) UndoTo(g *canvas.Grid) error {
	if a.Special {
		if err := g.Special(); err != nil {
			return fmt.Errorf("action %s undo special: %w", a.ID, err)
		}
		return nil
	}
	for i := len(a.Steps) - 1; i >= 0; i-- {
		step := a.Steps[i]
		cell, err := g.At(step.X, step.Y)
		if err != nil {
			return fmt.Errorf("action %s undo: %w", a.ID, err)
		}
		if _, err := cell.Erase(step.Layer); err != nil {
			return fmt.Errorf("action %s erase at (%d, %d): %w", a.ID, step.X, step.Y, err)
		}
	}
	return nil
}

// IDGenerator produces action IDs. The production generator is UUIDv7;
// tests inject FixedGenerator for deterministic traces.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 action IDs.
// Stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7 string.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined IDs in order, for deterministic
// tests and golden traces. Panics when the supply is exhausted so a test
// that records more actions than expected fails fast.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator creates a generator returning ids in order.
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// Generate returns the next predetermined ID.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.idx >= len(g.ids) {
		panic("paint: FixedGenerator exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
