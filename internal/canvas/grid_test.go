package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tburrows/impasto/internal/palette"
)

func TestParseDrawStyle(t *testing.T) {
	for _, s := range []string{"SET", "ADD", "SEQUENCE"} {
		style, err := ParseDrawStyle(s)
		require.NoError(t, err)
		assert.Equal(t, DrawStyle(s), style)
	}

	_, err := ParseDrawStyle("SPLATTER")
	assert.ErrorIs(t, err, ErrUnknownStyle)
}

func TestNewStore_UnknownStyle(t *testing.T) {
	_, err := NewStore(DrawStyle("NOPE"), palette.Default(), 0)
	assert.ErrorIs(t, err, ErrUnknownStyle)
}

func TestNewGrid_AllCellsSharePolicy(t *testing.T) {
	g, err := NewGrid(StyleAdd, 3, 2, palette.Default(), 16)
	require.NoError(t, err)

	for x := 0; x < 3; x++ {
		for y := 0; y < 2; y++ {
			cell, err := g.At(x, y)
			require.NoError(t, err)
			assert.IsType(t, &AdditiveLayerStore{}, cell)
		}
	}
}

func TestNewGrid_InvalidDimensions(t *testing.T) {
	_, err := NewGrid(StyleSet, 0, 4, palette.Default(), 0)
	assert.Error(t, err)

	_, err = NewGrid(StyleSet, 4, -1, palette.Default(), 0)
	assert.Error(t, err)
}

func TestGrid_At_OutOfBounds(t *testing.T) {
	g, err := NewGrid(StyleSet, 2, 2, palette.Default(), 0)
	require.NoError(t, err)

	for _, xy := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		_, err := g.At(xy[0], xy[1])
		assert.ErrorIs(t, err, ErrOutOfBounds, "coordinate %v", xy)
	}
}

func TestGrid_SpecialBroadcastsToEveryCellOnce(t *testing.T) {
	g, err := NewGrid(StyleSet, 3, 3, palette.Default(), 0)
	require.NoError(t, err)

	require.NoError(t, g.Special())

	// A SET store's special toggles invert; exactly one application per
	// cell means every cell now inverts the start colour exactly once.
	start := palette.Colour{R: 0, G: 0, B: 0}
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			cell, err := g.At(x, y)
			require.NoError(t, err)
			assert.Equal(t, palette.Colour{R: 255, G: 255, B: 255}, cell.GetColor(start, 0, x, y))
		}
	}
}

func TestGrid_CellsAreIndependent(t *testing.T) {
	g, err := NewGrid(StyleAdd, 2, 1, palette.Default(), 4)
	require.NoError(t, err)

	left, err := g.At(0, 0)
	require.NoError(t, err)
	right, err := g.At(1, 0)
	require.NoError(t, err)

	_, err = left.Add(mustLayer(t, "black"))
	require.NoError(t, err)

	start := palette.Colour{R: 9, G: 9, B: 9}
	assert.Equal(t, palette.Colour{R: 0, G: 0, B: 0}, left.GetColor(start, 0, 0, 0))
	assert.Equal(t, start, right.GetColor(start, 0, 1, 0), "painting one cell must not touch another")
}

func TestGrid_Render(t *testing.T) {
	g, err := NewGrid(StyleSet, 2, 2, palette.Default(), 0)
	require.NoError(t, err)

	cell, err := g.At(1, 1)
	require.NoError(t, err)
	_, err = cell.Add(mustLayer(t, "black"))
	require.NoError(t, err)

	out := g.Render(palette.White, 0)
	require.Len(t, out, 2)
	assert.Equal(t, palette.White, out[0][0])
	assert.Equal(t, palette.Black, out[1][1])
}

func TestGrid_BrushSizeClamps(t *testing.T) {
	g, err := NewGrid(StyleSet, 1, 1, palette.Default(), 0)
	require.NoError(t, err)

	assert.Equal(t, DefaultBrushSize, g.BrushSize())

	for i := 0; i < 10; i++ {
		g.IncreaseBrushSize()
	}
	assert.Equal(t, MaxBrush, g.BrushSize())

	for i := 0; i < 10; i++ {
		g.DecreaseBrushSize()
	}
	assert.Equal(t, MinBrush, g.BrushSize())
}
