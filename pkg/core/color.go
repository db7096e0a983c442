package core

import "math"

// RGB is an 8-bit per channel color
type RGB struct {
	R, G, B uint8
}

// NewRGB creates a new RGB color
func NewRGB(r, g, b uint8) RGB {
	return RGB{R: r, G: g, B: b}
}

// Gray returns a color with all channels set to v
func Gray(v uint8) RGB {
	return RGB{R: v, G: v, B: v}
}

// Scale multiplies every channel by brightness/255, floors the result and
// clamps it to [0, 255].
func (c RGB) Scale(brightness float32) RGB {
	return RGB{
		R: scaleChannel(c.R, brightness),
		G: scaleChannel(c.G, brightness),
		B: scaleChannel(c.B, brightness),
	}
}

func scaleChannel(v uint8, brightness float32) uint8 {
	scaled := math.Floor(float64(float32(v) * brightness / 255))
	// NaN fails both comparisons below and would convert to garbage
	if math.IsNaN(scaled) || scaled <= 0 {
		return 0
	}
	if scaled >= 255 {
		return 255
	}
	return uint8(scaled)
}
