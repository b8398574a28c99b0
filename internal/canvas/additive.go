package canvas

import (
	"fmt"

	"github.com/tburrows/impasto/internal/collection"
	"github.com/tburrows/impasto/internal/palette"
)

// AdditiveLayerStore composes layers in arrival order.
//
// Layers live in a bounded FIFO ring; arrival order is application order and
// duplicates are permitted. Erase always removes the longest-resident layer.
// Special reverses the order by draining the ring through a companion stack
// of equal capacity, so reversing twice restores the original order.
type AdditiveLayerStore struct {
	queue   *collection.Ring[palette.Layer]
	scratch *collection.Stack[palette.Layer]
}

// NewAdditiveStore creates an empty additive store holding at most capacity
// layers.
func NewAdditiveStore(capacity int) *AdditiveLayerStore {
	return &AdditiveLayerStore{
		queue:   collection.NewRing[palette.Layer](capacity),
		scratch: collection.NewStack[palette.Layer](capacity),
	}
}

// Add appends a layer at the tail. A store at its fixed capacity rejects the
// layer with ErrCapacityExceeded and is left unchanged.
func (s *AdditiveLayerStore) Add(l palette.Layer) (bool, error) {
	if err := s.queue.Append(l); err != nil {
		return false, fmt.Errorf("additive store at capacity %d: %w", s.queue.Cap(), ErrCapacityExceeded)
	}
	return true, nil
}

// Erase removes the oldest layer, ignoring which layer is passed.
// Returns false when the store is empty.
func (s *AdditiveLayerStore) Erase(palette.Layer) (bool, error) {
	if _, err := s.queue.Serve(); err != nil {
		return false, nil
	}
	return true, nil
}

// GetColor left-folds every held layer over start in head-to-tail order.
// The traversal reads the ring in place; nothing is rotated or restored, so
// a concurrent-free second read yields an identical result.
func (s *AdditiveLayerStore) GetColor(start palette.Colour, timestamp int64, x, y int) palette.Colour {
	c := start
	for i := 0; i < s.queue.Len(); i++ {
		l, err := s.queue.At(i)
		if err != nil {
			break
		}
		c = l.Apply(c, timestamp, x, y)
	}
	return c
}

// Special reverses the head-to-tail order: every layer is drained into the
// scratch stack and popped back into the ring. The scratch stack has the
// ring's capacity, so it cannot overflow mid-reversal; a fault here would
// mean the two collections were constructed with mismatched capacities.
func (s *AdditiveLayerStore) Special() error {
	n := s.queue.Len()
	for i := 0; i < n; i++ {
		l, err := s.queue.Serve()
		if err != nil {
			return fmt.Errorf("additive store reversal: %w", err)
		}
		if err := s.scratch.Push(l); err != nil {
			return fmt.Errorf("additive store reversal scratch: %w", ErrCapacityExceeded)
		}
	}
	for i := 0; i < n; i++ {
		l, err := s.scratch.Pop()
		if err != nil {
			return fmt.Errorf("additive store reversal: %w", err)
		}
		if err := s.queue.Append(l); err != nil {
			return fmt.Errorf("additive store reversal refill: %w", ErrCapacityExceeded)
		}
	}
	return nil
}

// Len returns the number of layers currently held.
func (s *AdditiveLayerStore) Len() int { return s.queue.Len() }
