package core

import "github.com/chewxy/math32"

// Colour is a linear RGB triple. Channels are unbounded while light is being
// accumulated and only brought into [0, 1] by Clamp.
type Colour struct {
	R, G, B float32
}

// NewColour creates a new Colour
func NewColour(r, g, b float32) Colour {
	return Colour{R: r, G: g, B: b}
}

// Black returns the zero colour
func Black() Colour {
	return Colour{}
}

// Add returns the channel-wise sum of two colours
func (c Colour) Add(other Colour) Colour {
	return Colour{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Multiply returns the channel-wise product of two colours
func (c Colour) Multiply(other Colour) Colour {
	return Colour{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Scale returns the colour with every channel multiplied by s
func (c Colour) Scale(s float32) Colour {
	return Colour{c.R * s, c.G * s, c.B * s}
}

// Clamp limits every channel to at most 1. Channels are not raised to 0:
// shading only ever adds non-negative terms.
func (c Colour) Clamp() Colour {
	return Colour{
		R: math32.Min(c.R, 1),
		G: math32.Min(c.G, 1),
		B: math32.Min(c.B, 1),
	}
}

// IsBlack reports whether all channels are zero
func (c Colour) IsBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// Luminance returns the perceptual luminance of the colour
// using weights 0.299*R + 0.587*G + 0.114*B
func (c Colour) Luminance() float32 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}
