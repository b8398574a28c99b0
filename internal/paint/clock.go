package paint

import "sync/atomic"

// Clock is a monotonic logical clock stamping recorded actions.
//
// Sequence numbers, not wall time, order actions: replay of a recorded log
// reproduces the exact original order regardless of when it runs. Safe for
// concurrent use, though recording is normally single-threaded.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at zero.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock resuming from a known position, e.g. the last
// sequence number found in a recorded log.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number. Each call returns a unique,
// strictly increasing value.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the clock position without advancing it.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
