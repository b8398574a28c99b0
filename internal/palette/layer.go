// Package palette defines colours, colour-transform layers, and the process
// wide layer catalogue.
//
// A Layer is a named, indexed, pure transform over a Colour. Layers live in
// a Catalogue: an ordered register that is initialized once and immutable
// afterwards. The registration order defines each layer's index, and that
// index order is the canonical iteration order used by index-ordered
// composition policies. Because the catalogue never changes after
// initialization it is freely shared, read-only, across all consumers.
package palette

import "golang.org/x/text/unicode/norm"

// ApplyFunc is a pure colour transform. timestamp drives animated layers;
// x and y are the cell coordinates being painted.
type ApplyFunc func(c Colour, timestamp int64, x, y int) Colour

// Layer is one catalogue entry: an immutable, named, indexed transform.
//
// Two Layer values are equal iff they are the same catalogue entry; the
// index carries identity. Stores hold Layer values by copy but never own
// them in any meaningful sense.
type Layer struct {
	// Index is the 0-based registration position, stable for the process
	// lifetime.
	Index int

	// Name is the NFC-normalized display name, also the secondary ordering
	// key for name-ordered operations.
	Name string

	apply ApplyFunc
}

// Apply runs the layer's transform.
func (l Layer) Apply(c Colour, timestamp int64, x, y int) Colour {
	if l.apply == nil {
		return c
	}
	return l.apply(c, timestamp, x, y)
}

// Equal reports whether two layers are the same catalogue entry.
func (l Layer) Equal(other Layer) bool {
	return l.Index == other.Index
}

// Catalogue is an ordered register of layers.
//
// Register all layers up front, then treat the catalogue as frozen; stores
// capture the catalogue length at construction and direct-index into it.
type Catalogue struct {
	layers []Layer
	invert *Layer
}

// NewCatalogue creates an empty catalogue.
func NewCatalogue() *Catalogue {
	return &Catalogue{}
}

// Register appends a layer with the next free index.
// Names are NFC-normalized so that name ordering is byte-stable regardless
// of the Unicode form the caller used.
func (c *Catalogue) Register(name string, fn ApplyFunc) Layer {
	l := Layer{
		Index: len(c.layers),
		Name:  norm.NFC.String(name),
		apply: fn,
	}
	c.layers = append(c.layers, l)
	return l
}

// RegisterInvert registers a layer and marks it as the catalogue's
// distinguished invert transform.
func (c *Catalogue) RegisterInvert(name string, fn ApplyFunc) Layer {
	l := c.Register(name, fn)
	c.invert = &l
	return l
}

// Invert returns the distinguished invert layer. If none was registered a
// synthetic channel-complement layer outside the catalogue (index -1) is
// returned, so invert-wrapping composition always has a transform to use.
func (c *Catalogue) Invert() Layer {
	if c.invert != nil {
		return *c.invert
	}
	return Layer{Index: -1, Name: "invert", apply: invertChannels}
}

// Layers returns all layers in index order. The returned slice is shared;
// callers must not modify it.
func (c *Catalogue) Layers() []Layer {
	return c.layers
}

// Layer returns the entry at index i.
func (c *Catalogue) Layer(i int) (Layer, bool) {
	if i < 0 || i >= len(c.layers) {
		return Layer{}, false
	}
	return c.layers[i], true
}

// ByName returns the first entry with the given name.
func (c *Catalogue) ByName(name string) (Layer, bool) {
	name = norm.NFC.String(name)
	for _, l := range c.layers {
		if l.Name == name {
			return l, true
		}
	}
	return Layer{}, false
}

// Len returns the number of registered layers.
func (c *Catalogue) Len() int {
	return len(c.layers)
}
