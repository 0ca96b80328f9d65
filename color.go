package boardview

import "image/color"

// Color represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1].
//
// The zero value is "unset": primitives whose color is unset (or fully
// transparent) inherit the renderer's current fill or stroke color at
// draw time. Use RGB/RGBA to construct set colors; Transparent is set
// but invisible.
type Color struct {
	R, G, B, A float64

	set bool
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1, set: true}
}

// RGBA creates a color from RGBA components.
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a, set: true}
}

// Common colors.
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Transparent = RGBA(0, 0, 0, 0)
)

// IsSet reports whether the color was explicitly constructed.
func (c Color) IsSet() bool {
	return c.set
}

// IsTransparent reports whether the color is fully transparent.
func (c Color) IsTransparent() bool {
	return c.A == 0
}

// WithAlpha returns the color with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	c.set = true
	return c
}

// MulAlpha returns the color with its alpha scaled by a.
func (c Color) MulAlpha(a float64) Color {
	c.A *= a
	return c
}

// Or returns c if it is set and not fully transparent, otherwise fallback.
// This implements the render-state color substitution rule.
func (c Color) Or(fallback Color) Color {
	if c.set && !c.IsTransparent() {
		return c
	}
	return fallback
}

// NRGBA converts the color to the standard library representation.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// Float32 returns the components as float32 values, premultiplied by
// nothing; suitable for GPU vertex attributes.
func (c Color) Float32() [4]float32 {
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
