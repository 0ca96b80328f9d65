package boardview

import "math"

// BBox is an axis-aligned bounding box.
//
// A BBox is valid when both W and H are non-negative and the box has been
// explicitly constructed or assigned; the zero value is invalid and acts
// as the empty box in Union. Context optionally carries a back-reference
// to the object (typically a document item) the box was measured for.
type BBox struct {
	X, Y, W, H float64

	// Context is the object this box belongs to, if any. It survives
	// Union and Grow so hit-test results can be traced back to their
	// source items.
	Context any

	valid bool
}

// NewBBox creates a bounding box from origin and size.
func NewBBox(x, y, w, h float64) BBox {
	return BBox{X: x, Y: y, W: w, H: h, valid: w >= 0 && h >= 0}
}

// BBoxFromPoints returns the smallest box containing all points.
// Returns an invalid box for an empty slice.
func BBoxFromPoints(pts []Vec2) BBox {
	if len(pts) == 0 {
		return BBox{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return NewBBox(minX, minY, maxX-minX, maxY-minY)
}

// Valid reports whether the box represents a real region.
func (b BBox) Valid() bool {
	return b.valid && b.W >= 0 && b.H >= 0
}

// X2 returns the right edge of the box.
func (b BBox) X2() float64 { return b.X + b.W }

// Y2 returns the bottom edge of the box.
func (b BBox) Y2() float64 { return b.Y + b.H }

// Center returns the center point of the box.
func (b BBox) Center() Vec2 {
	return Vec2{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// Corners returns the four corners of the box.
func (b BBox) Corners() [4]Vec2 {
	return [4]Vec2{
		{b.X, b.Y},
		{b.X2(), b.Y},
		{b.X2(), b.Y2()},
		{b.X, b.Y2()},
	}
}

// Contains reports whether the point lies inside the box.
// Edges and corners are inclusive.
func (b BBox) Contains(p Vec2) bool {
	return b.Valid() &&
		p.X >= b.X && p.X <= b.X2() &&
		p.Y >= b.Y && p.Y <= b.Y2()
}

// Union returns the smallest box containing both boxes.
// An invalid box is the identity element. The receiver's Context is kept.
func (b BBox) Union(other BBox) BBox {
	switch {
	case !b.Valid() && !other.Valid():
		return BBox{Context: b.Context}
	case !b.Valid():
		out := other
		out.Context = b.Context
		return out
	case !other.Valid():
		return b
	}
	x := math.Min(b.X, other.X)
	y := math.Min(b.Y, other.Y)
	out := NewBBox(x, y,
		math.Max(b.X2(), other.X2())-x,
		math.Max(b.Y2(), other.Y2())-y)
	out.Context = b.Context
	return out
}

// Grow returns the box expanded by d on every side.
func (b BBox) Grow(d float64) BBox {
	out := NewBBox(b.X-d, b.Y-d, b.W+2*d, b.H+2*d)
	out.Context = b.Context
	return out
}

// Transform returns the axis-aligned box containing the four transformed
// corners of b.
func (b BBox) Transform(m Matrix3) BBox {
	if !b.Valid() {
		return b
	}
	c := b.Corners()
	out := BBoxFromPoints(m.TransformAll(c[:]))
	out.Context = b.Context
	return out
}
