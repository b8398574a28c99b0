package actionlog

import (
	"context"
	"fmt"

	"github.com/tburrows/impasto/internal/paint"
	"github.com/tburrows/impasto/internal/palette"
)

// FromAction converts a performed action into its stored form.
//
// A special action always logs as KindSpecial, whatever kind the caller
// performed it as: undoing or redoing a special both re-broadcast it, so
// replaying the record forwards is the faithful reproduction.
func FromAction(a paint.PaintAction, kind Kind) Record {
	rec := Record{
		Seq:  a.Seq,
		ID:   a.ID,
		Kind: kind,
	}
	if kind == KindSpecial || a.Special {
		rec.Kind = KindSpecial
		return rec
	}
	rec.Steps = make([]StepRecord, 0, len(a.Steps))
	for _, s := range a.Steps {
		rec.Steps = append(rec.Steps, StepRecord{X: s.X, Y: s.Y, Layer: s.Layer.Name})
	}
	return rec
}

// ToAction rebuilds the action from its stored form, resolving layer names
// against the catalogue. The second return reports whether the record was
// performed as an undo, which is how replay must re-apply it.
func (rec Record) ToAction(cat *palette.Catalogue) (paint.PaintAction, bool, error) {
	switch rec.Kind {
	case KindDraw, KindSpecial, KindUndo, KindRedo:
	default:
		return paint.PaintAction{}, false, fmt.Errorf("%w: %q", ErrUnknownKind, rec.Kind)
	}

	a := paint.PaintAction{
		ID:      rec.ID,
		Seq:     rec.Seq,
		Special: rec.Kind == KindSpecial,
	}
	for _, s := range rec.Steps {
		layer, ok := cat.ByName(s.Layer)
		if !ok {
			return paint.PaintAction{}, false, fmt.Errorf("actionlog: record %s references unknown layer %q", rec.ID, s.Layer)
		}
		a.Steps = append(a.Steps, paint.PaintStep{X: s.X, Y: s.Y, Layer: layer})
	}
	return a, rec.Kind == KindUndo, nil
}

// LoadTracker reads the whole log into a replay tracker, ready to play
// back onto a fresh grid. capacity <= 0 selects the tracker default.
func LoadTracker(ctx context.Context, l *Log, cat *palette.Catalogue, capacity int) (*paint.ReplayTracker, error) {
	records, err := l.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	tracker := paint.NewReplayTracker(capacity)
	for _, rec := range records {
		action, isUndo, err := rec.ToAction(cat)
		if err != nil {
			return nil, err
		}
		if err := tracker.AddAction(action, isUndo); err != nil {
			return nil, fmt.Errorf("actionlog: load record %s: %w", rec.ID, err)
		}
	}
	return tracker, nil
}
