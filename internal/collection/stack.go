package collection

// Stack is a fixed-capacity LIFO container.
//
// The backing array is allocated once at construction; Push never grows it.
// Overflow and underflow are reported as ErrFull / ErrEmpty rather than
// panicking, so callers can decide whether the condition is a fault or a
// normal boundary.
type Stack[T any] struct {
	items []T
	top   int // number of elements currently held
}

// NewStack creates an empty stack with the given fixed capacity.
// Capacity must be positive.
func NewStack[T any](capacity int) *Stack[T] {
	if capacity <= 0 {
		capacity = 1
	}
	return &Stack[T]{items: make([]T, capacity)}
}

// Push adds an element to the top of the stack.
// Returns ErrFull if the stack is at capacity; the stack is unchanged.
func (s *Stack[T]) Push(item T) error {
	if s.top == len(s.items) {
		return ErrFull
	}
	s.items[s.top] = item
	s.top++
	return nil
}

// Pop removes and returns the top element.
// Returns ErrEmpty if the stack holds no elements.
func (s *Stack[T]) Pop() (T, error) {
	var zero T
	if s.top == 0 {
		return zero, ErrEmpty
	}
	s.top--
	item := s.items[s.top]
	s.items[s.top] = zero // release for GC
	return item, nil
}

// Peek returns the top element without removing it.
func (s *Stack[T]) Peek() (T, error) {
	var zero T
	if s.top == 0 {
		return zero, ErrEmpty
	}
	return s.items[s.top-1], nil
}

// Len returns the number of elements currently held.
func (s *Stack[T]) Len() int { return s.top }

// Cap returns the fixed capacity.
func (s *Stack[T]) Cap() int { return len(s.items) }

// IsEmpty reports whether the stack holds no elements.
func (s *Stack[T]) IsEmpty() bool { return s.top == 0 }

// IsFull reports whether the stack is at capacity.
func (s *Stack[T]) IsFull() bool { return s.top == len(s.items) }

// Clear removes all elements without reallocating.
func (s *Stack[T]) Clear() {
	var zero T
	for i := 0; i < s.top; i++ {
		s.items[i] = zero
	}
	s.top = 0
}
