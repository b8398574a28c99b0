package paint

import (
	"errors"
	"fmt"

	"github.com/tburrows/impasto/internal/canvas"
	"github.com/tburrows/impasto/internal/collection"
)

// ErrReplayStarted is returned when recording into a tracker that has
// already begun playback.
var ErrReplayStarted = errors.New("paint: replay already started")

// replayRecord pairs an action with how it was performed. Draw, special,
// and redo all replay forwards; only undo replays in reverse.
type replayRecord struct {
	action PaintAction
	isUndo bool
}

// ReplayTracker records a session's actions in order and plays them back
// onto a grid, reproducing the session deterministically.
type ReplayTracker struct {
	queue   *collection.Ring[replayRecord]
	started bool
}

// NewReplayTracker creates a tracker holding at most capacity records.
// capacity <= 0 selects DefaultTrackerCapacity.
func NewReplayTracker(capacity int) *ReplayTracker {
	if capacity <= 0 {
		capacity = DefaultTrackerCapacity
	}
	return &ReplayTracker{
		queue: collection.NewRing[replayRecord](capacity),
	}
}

// AddAction records an action. isUndo marks actions that were performed as
// undos; specials, draws, and redos all record with isUndo false.
// Returns an error once playback has started or if the tracker is full.
func (t *ReplayTracker) AddAction(a PaintAction, isUndo bool) error {
	if t.started {
		return ErrReplayStarted
	}
	if err := t.queue.Append(replayRecord{action: a, isUndo: isUndo}); err != nil {
		return fmt.Errorf("replay tracker at capacity %d: %w", t.queue.Cap(), err)
	}
	return nil
}

// StartReplay seals the tracker: no further actions may be recorded and
// playback may begin.
func (t *ReplayTracker) StartReplay() {
	t.started = true
}

// PlayNext applies the next recorded action to the grid, in reverse when it
// was recorded as an undo. Returns true when there are no more actions to
// play (and nothing happened), false otherwise.
func (t *ReplayTracker) PlayNext(g *canvas.Grid) (bool, error) {
	rec, err := t.queue.Serve()
	if err != nil {
		return true, nil
	}
	if rec.isUndo {
		return false, rec.action.UndoTo(g)
	}
	return false, rec.action.ApplyTo(g)
}

// Pending returns the number of unplayed records.
func (t *ReplayTracker) Pending() int { return t.queue.Len() }
