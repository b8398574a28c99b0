package palette

import "fmt"

// Colour is an opaque three-channel RGB value.
//
// Colours have pure value semantics: transforms return new values and no
// identity is attached to any particular instance.
type Colour struct {
	R, G, B uint8
}

// White and Black are the conventional canvas extremes.
var (
	White = Colour{255, 255, 255}
	Black = Colour{0, 0, 0}
)

// String renders the colour as a hex triplet, e.g. "#ff0080".
func (c Colour) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// clampAdd adds delta to a channel, saturating at the channel bounds.
func clampAdd(v uint8, delta int) uint8 {
	n := int(v) + delta
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}
