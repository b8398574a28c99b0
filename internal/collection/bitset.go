package collection

// Bitset is a membership set over a fixed universe of small non-negative
// integers, indexed directly from zero.
//
// The set enforces its invariants strictly: adding a present element or
// removing an absent one is an error at this level. Callers that treat those
// conditions as normal outcomes (e.g. idempotent add) check Contains first.
type Bitset struct {
	words    []uint64
	universe int
	count    int
}

// NewBitset creates an empty set over the universe [0, universe).
func NewBitset(universe int) *Bitset {
	if universe < 0 {
		universe = 0
	}
	return &Bitset{
		words:    make([]uint64, (universe+63)/64),
		universe: universe,
	}
}

// Add inserts element i into the set.
// Returns ErrOutOfRange if i is outside the universe, ErrDuplicate if i is
// already present.
func (b *Bitset) Add(i int) error {
	if i < 0 || i >= b.universe {
		return ErrOutOfRange
	}
	word, bit := i/64, uint64(1)<<(i%64)
	if b.words[word]&bit != 0 {
		return ErrDuplicate
	}
	b.words[word] |= bit
	b.count++
	return nil
}

// Remove deletes element i from the set.
// Returns ErrOutOfRange if i is outside the universe, ErrNotMember if i is
// not present.
func (b *Bitset) Remove(i int) error {
	if i < 0 || i >= b.universe {
		return ErrOutOfRange
	}
	word, bit := i/64, uint64(1)<<(i%64)
	if b.words[word]&bit == 0 {
		return ErrNotMember
	}
	b.words[word] &^= bit
	b.count--
	return nil
}

// Contains reports whether element i is present.
// Elements outside the universe are never present.
func (b *Bitset) Contains(i int) bool {
	if i < 0 || i >= b.universe {
		return false
	}
	return b.words[i/64]&(uint64(1)<<(i%64)) != 0
}

// Len returns the number of elements currently present.
func (b *Bitset) Len() int { return b.count }

// Universe returns the exclusive upper bound of representable elements.
func (b *Bitset) Universe() int { return b.universe }
