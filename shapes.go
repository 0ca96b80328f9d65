package boardview

import "math"

// arcSegments is the number of line segments an arc or circle outline is
// flattened into. Chosen so flattening error stays below a device pixel
// at typical board zoom levels.
const arcSegments = 32

// Shape is the canonical value for one drawing primitive.
// Exactly one of the concrete shape types implements it.
type Shape interface {
	// ShapeBBox returns the bounds of the shape, including stroke width.
	ShapeBBox() BBox

	// TransformShape returns the shape with all coordinates transformed
	// by m. Scalar widths and radii are scaled by the matrix's average
	// absolute scale.
	TransformShape(m Matrix3) Shape
}

// Circle is a filled circle primitive.
type Circle struct {
	Center Vec2
	Radius float64
	Color  Color
}

// ShapeBBox returns the bounds of the circle.
func (c Circle) ShapeBBox() BBox {
	return NewBBox(c.Center.X-c.Radius, c.Center.Y-c.Radius, 2*c.Radius, 2*c.Radius)
}

// TransformShape returns the circle transformed by m.
func (c Circle) TransformShape(m Matrix3) Shape {
	return Circle{
		Center: m.Transform(c.Center),
		Radius: c.Radius * m.AbsScale(),
		Color:  c.Color,
	}
}

// Arc is a stroked circular arc primitive, swept from StartAngle to
// EndAngle counter-clockwise. Backends never see arcs: the renderer
// flattens them to polylines before compilation.
type Arc struct {
	Center     Vec2
	Radius     float64
	StartAngle Angle
	EndAngle   Angle
	Width      float64
	Color      Color
}

// ToPolyline flattens the arc into a polyline with the same width and
// color.
func (a Arc) ToPolyline() Polyline {
	start := a.StartAngle.Radians()
	sweep := a.EndAngle.Sub(a.StartAngle).Radians()
	if sweep <= 0 {
		sweep += 2 * math.Pi
	}

	n := arcSegments
	pts := make([]Vec2, 0, n+1)
	for i := 0; i <= n; i++ {
		t := start + sweep*float64(i)/float64(n)
		sin, cos := math.Sincos(t)
		pts = append(pts, Vec2{
			X: a.Center.X + a.Radius*cos,
			Y: a.Center.Y + a.Radius*sin,
		})
	}
	return Polyline{Points: pts, Width: a.Width, Color: a.Color}
}

// ShapeBBox returns the bounds of the flattened arc.
func (a Arc) ShapeBBox() BBox {
	return a.ToPolyline().ShapeBBox()
}

// TransformShape returns the arc transformed by m.
// Rotation components of m are folded into the sweep angles.
func (a Arc) TransformShape(m Matrix3) Shape {
	scale := m.AbsScale()
	rot := m.TransformVector(Vec2{X: 1}).Angle()
	return Arc{
		Center:     m.Transform(a.Center),
		Radius:     a.Radius * scale,
		StartAngle: a.StartAngle.Add(rot),
		EndAngle:   a.EndAngle.Add(rot),
		Width:      a.Width * scale,
		Color:      a.Color,
	}
}

// Polyline is a stroked open line strip primitive.
type Polyline struct {
	Points []Vec2
	Width  float64
	Color  Color
}

// ShapeBBox returns the bounds of the polyline grown by half the stroke
// width.
func (p Polyline) ShapeBBox() BBox {
	return BBoxFromPoints(p.Points).Grow(p.Width / 2)
}

// TransformShape returns the polyline transformed by m.
func (p Polyline) TransformShape(m Matrix3) Shape {
	return Polyline{
		Points: m.TransformAll(p.Points),
		Width:  p.Width * m.AbsScale(),
		Color:  p.Color,
	}
}

// Polygon is a filled closed polygon primitive. The outline is closed
// implicitly; the last point need not repeat the first.
type Polygon struct {
	Points []Vec2
	Color  Color
}

// ShapeBBox returns the bounds of the polygon.
func (p Polygon) ShapeBBox() BBox {
	return BBoxFromPoints(p.Points)
}

// TransformShape returns the polygon transformed by m.
func (p Polygon) TransformShape(m Matrix3) Shape {
	return Polygon{Points: m.TransformAll(p.Points), Color: p.Color}
}

// Triangulate decomposes the polygon into triangles, returned as index
// triples into Points. Convex polygons use a fan; concave polygons fall
// back to ear clipping. Degenerate polygons (fewer than 3 points) return
// nil.
func (p Polygon) Triangulate() [][3]int {
	n := len(p.Points)
	if n < 3 {
		return nil
	}

	if p.isConvex() {
		tris := make([][3]int, 0, n-2)
		for i := 1; i < n-1; i++ {
			tris = append(tris, [3]int{0, i, i + 1})
		}
		return tris
	}
	return p.earClip()
}

// isConvex reports whether all cross products along the outline share a
// sign.
func (p Polygon) isConvex() bool {
	n := len(p.Points)
	sign := 0.0
	for i := 0; i < n; i++ {
		a := p.Points[i]
		b := p.Points[(i+1)%n]
		c := p.Points[(i+2)%n]
		cross := b.Sub(a).Cross(c.Sub(b))
		if cross == 0 {
			continue
		}
		if sign == 0 {
			sign = cross
		} else if sign*cross < 0 {
			return false
		}
	}
	return true
}

// earClip triangulates a simple polygon by iteratively removing ears.
func (p Polygon) earClip() [][3]int {
	n := len(p.Points)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	// Ensure counter-clockwise winding so ear tests are consistent.
	if signedArea(p.Points) < 0 {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			idx[i], idx[j] = idx[j], idx[i]
		}
	}

	tris := make([][3]int, 0, n-2)
	for len(idx) > 3 {
		clipped := false
		for i := 0; i < len(idx); i++ {
			prev := idx[(i+len(idx)-1)%len(idx)]
			cur := idx[i]
			next := idx[(i+1)%len(idx)]
			if p.isEar(prev, cur, next, idx) {
				tris = append(tris, [3]int{prev, cur, next})
				idx = append(idx[:i], idx[i+1:]...)
				clipped = true
				break
			}
		}
		if !clipped {
			// Degenerate or self-intersecting outline; emit what
			// remains as a fan rather than looping forever.
			break
		}
	}
	if len(idx) >= 3 {
		for i := 1; i < len(idx)-1; i++ {
			tris = append(tris, [3]int{idx[0], idx[i], idx[i+1]})
		}
	}
	return tris
}

func (p Polygon) isEar(a, b, c int, idx []int) bool {
	pa, pb, pc := p.Points[a], p.Points[b], p.Points[c]
	if pb.Sub(pa).Cross(pc.Sub(pb)) <= 0 {
		return false // reflex corner
	}
	for _, i := range idx {
		if i == a || i == b || i == c {
			continue
		}
		if pointInTriangle(p.Points[i], pa, pb, pc) {
			return false
		}
	}
	return true
}

func pointInTriangle(p, a, b, c Vec2) bool {
	d1 := b.Sub(a).Cross(p.Sub(a))
	d2 := c.Sub(b).Cross(p.Sub(b))
	d3 := a.Sub(c).Cross(p.Sub(c))
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func signedArea(pts []Vec2) float64 {
	area := 0.0
	for i, a := range pts {
		b := pts[(i+1)%len(pts)]
		area += a.Cross(b)
	}
	return area / 2
}
