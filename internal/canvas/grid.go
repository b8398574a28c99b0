package canvas

import (
	"errors"
	"fmt"

	"github.com/tburrows/impasto/internal/palette"
)

// Brush size bounds. The brush is grid-level state used by callers when
// expanding a stroke into steps; the grid itself only clamps it.
const (
	MinBrush         = 0
	MaxBrush         = 5
	DefaultBrushSize = 2
)

// ErrOutOfBounds is returned when a cell coordinate falls outside the grid.
var ErrOutOfBounds = errors.New("canvas: coordinate out of bounds")

// Grid is a 2-D array of layer stores, one per cell, all sharing a single
// draw style fixed at construction.
//
// Cells are independent: no operation on one cell observes or mutates
// another cell's state.
type Grid struct {
	style  DrawStyle
	width  int // x dimension
	height int // y dimension
	cells  [][]LayerStore
	brush  int
}

// NewGrid constructs a width x height grid of stores of the given style.
// additiveCapacity is forwarded to NewStore and only meaningful for the
// ADD style; pass 0 for the default.
func NewGrid(style DrawStyle, width, height int, cat *palette.Catalogue, additiveCapacity int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("canvas: invalid grid dimensions %dx%d", width, height)
	}
	cells := make([][]LayerStore, width)
	for x := range cells {
		cells[x] = make([]LayerStore, height)
		for y := range cells[x] {
			store, err := NewStore(style, cat, additiveCapacity)
			if err != nil {
				return nil, err
			}
			cells[x][y] = store
		}
	}
	return &Grid{
		style:  style,
		width:  width,
		height: height,
		cells:  cells,
		brush:  DefaultBrushSize,
	}, nil
}

// At returns the store for cell (x, y).
func (g *Grid) At(x, y int) (LayerStore, error) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return nil, fmt.Errorf("%w: (%d, %d) in %dx%d grid", ErrOutOfBounds, x, y, g.width, g.height)
	}
	return g.cells[x][y], nil
}

// Special broadcasts the policy's special transformation to every cell
// exactly once, in row-major order. Per-cell failures do not stop the
// broadcast; all are joined into the returned error.
func (g *Grid) Special() error {
	var errs []error
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			if err := g.cells[x][y].Special(); err != nil {
				errs = append(errs, fmt.Errorf("cell (%d, %d): %w", x, y, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Render composes every cell over start and returns the colours in
// [x][y] layout.
func (g *Grid) Render(start palette.Colour, timestamp int64) [][]palette.Colour {
	out := make([][]palette.Colour, g.width)
	for x := 0; x < g.width; x++ {
		out[x] = make([]palette.Colour, g.height)
		for y := 0; y < g.height; y++ {
			out[x][y] = g.cells[x][y].GetColor(start, timestamp, x, y)
		}
	}
	return out
}

// IncreaseBrushSize grows the brush by one, saturating at MaxBrush.
func (g *Grid) IncreaseBrushSize() {
	if g.brush < MaxBrush {
		g.brush++
	}
}

// DecreaseBrushSize shrinks the brush by one, saturating at MinBrush.
func (g *Grid) DecreaseBrushSize() {
	if g.brush > MinBrush {
		g.brush--
	}
}

// BrushSize returns the current brush size.
func (g *Grid) BrushSize() int { return g.brush }

// Style returns the grid's draw style.
func (g *Grid) Style() DrawStyle { return g.style }

// Width returns the x dimension.
func (g *Grid) Width() int { return g.width }

// Height returns the y dimension.
func (g *Grid) Height() int { return g.height }
