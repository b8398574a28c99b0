package canvas

import "github.com/tburrows/impasto/internal/palette"

// SetLayerStore holds at most one layer plus an independent invert toggle.
//
// Exactly one of {no layer, one layer} holds at any time; the toggle flips
// independently of which layer (if any) is held. Toggling twice restores the
// original output for every input, so Special has period 2.
type SetLayerStore struct {
	layer    *palette.Layer
	inverted bool
	invert   palette.Layer
}

// NewSetStore creates an empty set store using the catalogue's distinguished
// invert transform for the toggle.
func NewSetStore(cat *palette.Catalogue) *SetLayerStore {
	return &SetLayerStore{invert: cat.Invert()}
}

// Add replaces the held layer. Re-adding the layer already held is a no-op
// reported as false.
func (s *SetLayerStore) Add(l palette.Layer) (bool, error) {
	if s.layer != nil && s.layer.Equal(l) {
		return false, nil
	}
	s.layer = &l
	return true, nil
}

// Erase clears the held layer regardless of which layer is passed.
// Returns true iff a layer was present before the call.
func (s *SetLayerStore) Erase(palette.Layer) (bool, error) {
	if s.layer == nil {
		return false, nil
	}
	s.layer = nil
	return true, nil
}

// GetColor applies the held layer (if any) to start, then wraps the result
// in the invert transform when the toggle is set.
func (s *SetLayerStore) GetColor(start palette.Colour, timestamp int64, x, y int) palette.Colour {
	c := start
	if s.layer != nil {
		c = s.layer.Apply(c, timestamp, x, y)
	}
	if s.inverted {
		c = s.invert.Apply(c, timestamp, x, y)
	}
	return c
}

// Special toggles the invert flag. Never fails.
func (s *SetLayerStore) Special() error {
	s.inverted = !s.inverted
	return nil
}
