package collection

import "errors"

// Sentinel errors shared by the bounded collection primitives.
//
// Capacity violations (ErrFull, ErrOutOfRange) indicate configuration or
// usage errors and are expected to propagate to the caller. Emptiness and
// membership conditions (ErrEmpty, ErrNotMember, ErrDuplicate) are reachable
// through normal use; callers that want boolean semantics check Len or
// Contains before invoking the failing operation.
var (
	// ErrFull is returned when an element cannot be added to a collection
	// that is at its fixed capacity.
	ErrFull = errors.New("collection: full")

	// ErrEmpty is returned when an element is requested from an empty
	// collection.
	ErrEmpty = errors.New("collection: empty")

	// ErrOutOfRange is returned when an index or element is outside the
	// collection's fixed universe or current length.
	ErrOutOfRange = errors.New("collection: out of range")

	// ErrDuplicate is returned when adding an element already present in a
	// set with a uniqueness invariant.
	ErrDuplicate = errors.New("collection: duplicate element")

	// ErrNotMember is returned when removing an element that is not present.
	ErrNotMember = errors.New("collection: not a member")
)
