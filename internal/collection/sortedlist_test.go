package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keysOf[T any](t *testing.T, l *SortedList[T]) []string {
	t.Helper()
	keys := make([]string, 0, l.Len())
	for i := 0; i < l.Len(); i++ {
		item, err := l.Get(i)
		require.NoError(t, err)
		keys = append(keys, item.Key)
	}
	return keys
}

func TestSortedList_KeepsKeyOrder(t *testing.T) {
	l := NewSortedList[int](8)

	require.NoError(t, l.Add(3, "cherry"))
	require.NoError(t, l.Add(1, "apple"))
	require.NoError(t, l.Add(4, "date"))
	require.NoError(t, l.Add(2, "banana"))

	assert.Equal(t, []string{"apple", "banana", "cherry", "date"}, keysOf(t, l))

	item, err := l.Get(0)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Value)
}

func TestSortedList_DuplicateKeys_StableOrder(t *testing.T) {
	l := NewSortedList[int](4)

	require.NoError(t, l.Add(1, "same"))
	require.NoError(t, l.Add(2, "same"))
	require.NoError(t, l.Add(3, "same"))

	for i, want := range []int{1, 2, 3} {
		item, err := l.Get(i)
		require.NoError(t, err)
		assert.Equal(t, want, item.Value)
	}
}

func TestSortedList_Remove(t *testing.T) {
	l := NewSortedList[int](4)
	require.NoError(t, l.Add(1, "a"))
	require.NoError(t, l.Add(2, "b"))
	require.NoError(t, l.Add(3, "c"))

	item, err := l.Remove(1)
	require.NoError(t, err)
	assert.Equal(t, "b", item.Key)
	assert.Equal(t, []string{"a", "c"}, keysOf(t, l))

	_, err = l.Remove(5)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestSortedList_CapacityFault(t *testing.T) {
	l := NewSortedList[int](2)
	require.NoError(t, l.Add(1, "a"))
	require.NoError(t, l.Add(2, "b"))

	err := l.Add(3, "c")
	assert.ErrorIs(t, err, ErrFull)
	assert.Equal(t, 2, l.Len())
}

func TestSortedList_GetOutOfRange(t *testing.T) {
	l := NewSortedList[int](2)
	_, err := l.Get(0)
	assert.ErrorIs(t, err, ErrOutOfRange)
}
