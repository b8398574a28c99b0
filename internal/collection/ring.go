package collection

// Ring is a fixed-capacity FIFO queue backed by a circular buffer.
//
// Append writes at the tail, Serve reads at the head; both are O(1).
// At(i) provides a non-mutating head-relative read so traversals never
// need to rotate elements through the queue to observe them in order.
type Ring[T any] struct {
	items []T
	head  int // index of the front element
	size  int // number of elements currently held
}

// NewRing creates an empty ring with the given fixed capacity.
// Capacity must be positive.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		capacity = 1
	}
	return &Ring[T]{items: make([]T, capacity)}
}

// Append adds an element at the tail of the queue.
// Returns ErrFull if the ring is at capacity; the ring is unchanged.
func (r *Ring[T]) Append(item T) error {
	if r.size == len(r.items) {
		return ErrFull
	}
	tail := (r.head + r.size) % len(r.items)
	r.items[tail] = item
	r.size++
	return nil
}

// Serve removes and returns the element at the head of the queue.
// Returns ErrEmpty if the ring holds no elements.
func (r *Ring[T]) Serve() (T, error) {
	var zero T
	if r.size == 0 {
		return zero, ErrEmpty
	}
	item := r.items[r.head]
	r.items[r.head] = zero // release for GC
	r.head = (r.head + 1) % len(r.items)
	r.size--
	return item, nil
}

// Peek returns the head element without removing it.
func (r *Ring[T]) Peek() (T, error) {
	var zero T
	if r.size == 0 {
		return zero, ErrEmpty
	}
	return r.items[r.head], nil
}

// At returns the element i positions behind the head without mutating the
// ring. At(0) is the head, At(Len()-1) the tail.
// Returns ErrOutOfRange if i is negative or beyond the current length.
func (r *Ring[T]) At(i int) (T, error) {
	var zero T
	if i < 0 || i >= r.size {
		return zero, ErrOutOfRange
	}
	return r.items[(r.head+i)%len(r.items)], nil
}

// Len returns the number of elements currently held.
func (r *Ring[T]) Len() int { return r.size }

// Cap returns the fixed capacity.
func (r *Ring[T]) Cap() int { return len(r.items) }

// IsEmpty reports whether the ring holds no elements.
func (r *Ring[T]) IsEmpty() bool { return r.size == 0 }

// IsFull reports whether the ring is at capacity.
func (r *Ring[T]) IsFull() bool { return r.size == len(r.items) }

// Clear removes all elements without reallocating.
func (r *Ring[T]) Clear() {
	var zero T
	for i := 0; i < r.size; i++ {
		r.items[(r.head+i)%len(r.items)] = zero
	}
	r.head = 0
	r.size = 0
}
