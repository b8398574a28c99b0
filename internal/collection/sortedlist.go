package collection

// SortedItem pairs a value with the string key it is ordered by.
type SortedItem[T any] struct {
	Value T
	Key   string
}

// SortedList is a capacity-bounded list kept ordered by string key.
//
// Insertion finds the position by binary search and shifts the tail, so Add
// is O(log n) to locate plus O(n) to place. Duplicate keys are permitted;
// a new item is placed after existing items with an equal key, keeping
// insertion order stable among equals.
type SortedList[T any] struct {
	items []SortedItem[T]
	cap   int
}

// NewSortedList creates an empty sorted list with the given fixed capacity.
func NewSortedList[T any](capacity int) *SortedList[T] {
	if capacity <= 0 {
		capacity = 1
	}
	return &SortedList[T]{
		items: make([]SortedItem[T], 0, capacity),
		cap:   capacity,
	}
}

// Add inserts value at the position determined by key.
// Returns ErrFull if the list is at capacity; the list is unchanged.
func (l *SortedList[T]) Add(value T, key string) error {
	if len(l.items) == l.cap {
		return ErrFull
	}
	lo, hi := 0, len(l.items)
	for lo < hi {
		mid := (lo + hi) / 2
		if l.items[mid].Key <= key {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	l.items = append(l.items, SortedItem[T]{})
	copy(l.items[lo+1:], l.items[lo:])
	l.items[lo] = SortedItem[T]{Value: value, Key: key}
	return nil
}

// Get returns the item at the given rank, rank 0 holding the smallest key.
// Returns ErrOutOfRange if rank is outside the current length.
func (l *SortedList[T]) Get(rank int) (SortedItem[T], error) {
	if rank < 0 || rank >= len(l.items) {
		return SortedItem[T]{}, ErrOutOfRange
	}
	return l.items[rank], nil
}

// Remove deletes and returns the item at the given rank.
// Returns ErrOutOfRange if rank is outside the current length.
func (l *SortedList[T]) Remove(rank int) (SortedItem[T], error) {
	if rank < 0 || rank >= len(l.items) {
		return SortedItem[T]{}, ErrOutOfRange
	}
	item := l.items[rank]
	copy(l.items[rank:], l.items[rank+1:])
	l.items = l.items[:len(l.items)-1]
	return item, nil
}

// Len returns the number of items currently held.
func (l *SortedList[T]) Len() int { return len(l.items) }

// Cap returns the fixed capacity.
func (l *SortedList[T]) Cap() int { return l.cap }

// IsEmpty reports whether the list holds no items.
func (l *SortedList[T]) IsEmpty() bool { return len(l.items) == 0 }
