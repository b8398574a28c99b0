// Package canvas implements the layer-composition core: three per-cell
// storage policies for composing colour-transform layers, and the grid of
// cells built from them.
//
// Every cell of a grid holds exactly one LayerStore whose concrete policy is
// fixed when the grid is constructed. The three policies differ in what they
// remember and in what their Special transformation does:
//
//   - Set: at most one layer plus an invert toggle; Special flips the toggle.
//   - Additive: FIFO-ordered accumulation with duplicates; Special reverses
//     the order.
//   - Sequence: membership per layer type, always applied in catalogue index
//     order; Special permanently evicts the member with the median name.
//
// Boundary conditions reachable through normal use (erasing from an empty
// store, re-adding a present layer) are reported as a false boolean, never an
// error. Only fixed-capacity violations propagate as errors, and every
// operation is atomic: it fully succeeds or leaves the store unchanged.
package canvas

import (
	"errors"
	"fmt"

	"github.com/tburrows/impasto/internal/palette"
)

var (
	// ErrCapacityExceeded is returned when an operation would push a bounded
	// collection past its fixed capacity. This indicates a configuration or
	// usage error, not an expected steady-state condition.
	ErrCapacityExceeded = errors.New("canvas: capacity exceeded")

	// ErrUnknownStyle is returned when constructing a store or grid with a
	// draw style outside the closed three-variant set.
	ErrUnknownStyle = errors.New("canvas: unknown draw style")
)

// LayerStore is the capability interface through which the composition core
// is consumed. The three policy variants below are the only implementations;
// no further variant is added dynamically.
type LayerStore interface {
	// Add records a layer in the store. Returns true iff the store changed.
	Add(l palette.Layer) (bool, error)

	// Erase removes a layer from the store according to the policy's
	// eviction rule. Returns true iff the store changed; erasing from an
	// empty store is a normal false outcome, not an error.
	Erase(l palette.Layer) (bool, error)

	// GetColor composes the held layers over start. Reads are deterministic
	// and have no observable effect on stored state.
	GetColor(start palette.Colour, timestamp int64, x, y int) palette.Colour

	// Special applies the policy's stateful transformation.
	Special() error
}

// DrawStyle selects the layer-store policy for a whole grid.
type DrawStyle string

const (
	StyleSet      DrawStyle = "SET"
	StyleAdd      DrawStyle = "ADD"
	StyleSequence DrawStyle = "SEQUENCE"
)

// Styles lists the closed set of draw styles.
var Styles = []DrawStyle{StyleSet, StyleAdd, StyleSequence}

// ParseDrawStyle converts a string to a DrawStyle.
func ParseDrawStyle(s string) (DrawStyle, error) {
	for _, style := range Styles {
		if string(style) == s {
			return style, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want one of %v)", ErrUnknownStyle, s, Styles)
}

// NewStore constructs a layer store of the given style.
//
// additiveCapacity bounds the Additive policy's queue; values <= 0 select
// the default of 100 slots per catalogue layer. The capacity is a deployment
// parameter, not a correctness requirement.
func NewStore(style DrawStyle, cat *palette.Catalogue, additiveCapacity int) (LayerStore, error) {
	switch style {
	case StyleSet:
		return NewSetStore(cat), nil
	case StyleAdd:
		if additiveCapacity <= 0 {
			additiveCapacity = 100 * cat.Len()
		}
		return NewAdditiveStore(additiveCapacity), nil
	case StyleSequence:
		return NewSequenceStore(cat), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}
}
