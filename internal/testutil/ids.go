// Package testutil provides deterministic helpers for exercising the
// degenerate corners of a session: duplicate action IDs, resettable clocks.
package testutil

// ConstantIDGenerator returns the same action ID every time.
//
// The action log deduplicates on ID, so feeding an engine constant IDs is
// the easiest way to exercise the idempotent-append path and the replay
// divergence it causes.
//
// Unlike paint.FixedGenerator, which hands out a finite sequence of distinct
// IDs, this generator never runs out.
//
// Thread-safety: ConstantIDGenerator is stateless and safe for concurrent use.
type ConstantIDGenerator struct {
	id string
}

// NewConstantIDGenerator creates a generator that always returns id.
// If id is empty, Generate() returns "action-fixed".
func NewConstantIDGenerator(id string) *ConstantIDGenerator {
	if id == "" {
		id = "action-fixed"
	}
	return &ConstantIDGenerator{id: id}
}

// Generate returns the fixed action ID.
//
// Implements paint.IDGenerator.
func (g *ConstantIDGenerator) Generate() string {
	return g.id
}
