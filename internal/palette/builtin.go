package palette

import (
	"hash/fnv"
	"math"
	"sync"
)

// Built-in layer transforms. All are deterministic functions of the input
// colour, the timestamp, and the cell coordinates, so replaying a recorded
// script always renders identically.

func blackLayer(Colour, int64, int, int) Colour {
	return Black
}

func lightenLayer(c Colour, _ int64, _, _ int) Colour {
	return Colour{clampAdd(c.R, 40), clampAdd(c.G, 40), clampAdd(c.B, 40)}
}

func invertChannels(c Colour, _ int64, _, _ int) Colour {
	return Colour{255 - c.R, 255 - c.G, 255 - c.B}
}

// rainbowLayer cycles hue with the timestamp, phase-shifted per channel and
// per cell so neighbouring cells differ.
func rainbowLayer(_ Colour, timestamp int64, x, y int) Colour {
	phase := float64(timestamp)/1000 + float64(x)/2 + float64(y)/2
	channel := func(offset float64) uint8 {
		return uint8(128 + 127*math.Sin(phase+offset))
	}
	return Colour{channel(0), channel(2 * math.Pi / 3), channel(4 * math.Pi / 3)}
}

// sparkleLayer brightens roughly one cell in four, chosen by a hash of the
// timestamp and coordinates rather than a random source.
func sparkleLayer(c Colour, timestamp int64, x, y int) Colour {
	h := fnv.New32a()
	var buf [8]byte
	for _, v := range []int64{timestamp, int64(x), int64(y)} {
		for b := 0; b < 8; b++ {
			buf[b] = byte(v >> (8 * b))
		}
		h.Write(buf[:])
	}
	if h.Sum32()%4 == 0 {
		return Colour{clampAdd(c.R, 80), clampAdd(c.G, 80), clampAdd(c.B, 80)}
	}
	return c
}

func darkenLayer(c Colour, _ int64, _, _ int) Colour {
	return Colour{clampAdd(c.R, -40), clampAdd(c.G, -40), clampAdd(c.B, -40)}
}

func redLayer(c Colour, _ int64, _, _ int) Colour {
	return Colour{255, c.G, c.B}
}

func greenLayer(c Colour, _ int64, _, _ int) Colour {
	return Colour{c.R, 255, c.B}
}

func blueLayer(c Colour, _ int64, _, _ int) Colour {
	return Colour{c.R, c.G, 255}
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalogue
)

// Default returns the process-wide catalogue of built-in layers, built on
// first use. Registration order fixes the indices:
//
//	0 black, 1 lighten, 2 invert, 3 rainbow, 4 sparkle,
//	5 darken, 6 red, 7 green, 8 blue
func Default() *Catalogue {
	defaultOnce.Do(func() {
		c := NewCatalogue()
		c.Register("black", blackLayer)
		c.Register("lighten", lightenLayer)
		c.RegisterInvert("invert", invertChannels)
		c.Register("rainbow", rainbowLayer)
		c.Register("sparkle", sparkleLayer)
		c.Register("darken", darkenLayer)
		c.Register("red", redLayer)
		c.Register("green", greenLayer)
		c.Register("blue", blueLayer)
		defaultCat = c
	})
	return defaultCat
}
