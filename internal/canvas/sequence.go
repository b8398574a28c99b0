package canvas

import (
	"fmt"

	"github.com/tburrows/impasto/internal/collection"
	"github.com/tburrows/impasto/internal/palette"
)

// SequenceLayerStore tracks membership per layer type.
//
// Each catalogue layer is either applied or not; there is no duplicate and
// no insertion-order memory. Reads always apply members in catalogue index
// order, so the output is independent of the order add and erase were
// called in. Special evicts the member whose name is the median under
// lexicographic order; unlike the other policies it has no inverse.
type SequenceLayerStore struct {
	cat     *palette.Catalogue
	members *collection.Bitset
}

// NewSequenceStore creates an empty sequence store over the catalogue.
func NewSequenceStore(cat *palette.Catalogue) *SequenceLayerStore {
	return &SequenceLayerStore{
		cat:     cat,
		members: collection.NewBitset(cat.Len()),
	}
}

// Add marks the layer as applied. Idempotent: returns true iff the layer
// was not already a member.
func (s *SequenceLayerStore) Add(l palette.Layer) (bool, error) {
	if s.members.Contains(l.Index) {
		return false, nil
	}
	if err := s.members.Add(l.Index); err != nil {
		return false, fmt.Errorf("sequence store add %q (index %d): %w", l.Name, l.Index, err)
	}
	return true, nil
}

// Erase marks the layer as not applied. Returns true iff it was a member;
// erasing an absent layer is a normal false outcome.
func (s *SequenceLayerStore) Erase(l palette.Layer) (bool, error) {
	if !s.members.Contains(l.Index) {
		return false, nil
	}
	if err := s.members.Remove(l.Index); err != nil {
		return false, fmt.Errorf("sequence store erase %q (index %d): %w", l.Name, l.Index, err)
	}
	return true, nil
}

// GetColor walks the entire catalogue in index order and applies each member
// in sequence. Cost is proportional to the catalogue size, not the
// membership size.
func (s *SequenceLayerStore) GetColor(start palette.Colour, timestamp int64, x, y int) palette.Colour {
	c := start
	for _, l := range s.cat.Layers() {
		if s.members.Contains(l.Index) {
			c = l.Apply(c, timestamp, x, y)
		}
	}
	return c
}

// Special removes the member with the median name.
//
// Members are ranked by name in lexicographic order; with an odd count n the
// element at rank n/2 is evicted, with an even count the element at rank
// n/2-1 (the lexicographically smaller of the two middle names). No members
// means no-op.
func (s *SequenceLayerStore) Special() error {
	n := s.members.Len()
	if n == 0 {
		return nil
	}

	byName := collection.NewSortedList[palette.Layer](s.cat.Len())
	for _, l := range s.cat.Layers() {
		if !s.members.Contains(l.Index) {
			continue
		}
		if err := byName.Add(l, l.Name); err != nil {
			return fmt.Errorf("sequence store median: %w", ErrCapacityExceeded)
		}
	}

	rank := n / 2
	if n%2 == 0 {
		rank = n/2 - 1
	}
	median, err := byName.Get(rank)
	if err != nil {
		return fmt.Errorf("sequence store median rank %d of %d: %w", rank, n, err)
	}
	if err := s.members.Remove(median.Value.Index); err != nil {
		return fmt.Errorf("sequence store median evict %q: %w", median.Value.Name, err)
	}
	return nil
}

// Len returns the current membership count.
func (s *SequenceLayerStore) Len() int { return s.members.Len() }
