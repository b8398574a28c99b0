package paint

import (
	"github.com/tburrows/impasto/internal/canvas"
	"github.com/tburrows/impasto/internal/collection"
)

// DefaultTrackerCapacity bounds the tracker collections when the caller
// does not choose a capacity. Sizing is a deployment parameter.
const DefaultTrackerCapacity = 10000

// UndoTracker maintains linear undo/redo history for one grid.
//
// Every tracker owns its two stacks; nothing is shared across instances or
// process-wide. A new recorded action invalidates the redo branch, as in
// any linear-history editor.
type UndoTracker struct {
	history *collection.Stack[PaintAction]
	redo    *collection.Stack[PaintAction]
}

// NewUndoTracker creates a tracker holding at most capacity actions.
// capacity <= 0 selects DefaultTrackerCapacity.
func NewUndoTracker(capacity int) *UndoTracker {
	if capacity <= 0 {
		capacity = DefaultTrackerCapacity
	}
	return &UndoTracker{
		history: collection.NewStack[PaintAction](capacity),
		redo:    collection.NewStack[PaintAction](capacity),
	}
}

// AddAction records a performed action. Recording clears any pending redo
// history. A tracker at capacity drops the action and reports false.
func (t *UndoTracker) AddAction(a PaintAction) bool {
	t.redo.Clear()
	if err := t.history.Push(a); err != nil {
		return false
	}
	return true
}

// Undo reverses the most recent action on the grid and moves it to the redo
// stack. Returns the undone action and true, or false when there is nothing
// to undo.
func (t *UndoTracker) Undo(g *canvas.Grid) (PaintAction, bool, error) {
	a, err := t.history.Pop()
	if err != nil {
		return PaintAction{}, false, nil
	}
	if err := a.UndoTo(g); err != nil {
		return a, true, err
	}
	// The redo stack mirrors the history stack's capacity, so this push
	// cannot overflow: every redo entry came off the history stack.
	if err := t.redo.Push(a); err != nil {
		return a, true, err
	}
	return a, true, nil
}

// Redo re-applies the most recently undone action and moves it back to the
// history stack. Returns the redone action and true, or false when there is
// nothing to redo.
func (t *UndoTracker) Redo(g *canvas.Grid) (PaintAction, bool, error) {
	a, err := t.redo.Pop()
	if err != nil {
		return PaintAction{}, false, nil
	}
	if err := a.ApplyTo(g); err != nil {
		return a, true, err
	}
	if err := t.history.Push(a); err != nil {
		return a, true, err
	}
	return a, true, nil
}

// HistoryLen returns the number of undoable actions.
func (t *UndoTracker) HistoryLen() int { return t.history.Len() }

// RedoLen returns the number of redoable actions.
func (t *UndoTracker) RedoLen() int { return t.redo.Len() }
