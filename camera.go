package boardview

// framingMargin keeps a SetBBox-framed region at least 10% inside the
// viewport edges.
const framingMargin = 1.1

// Camera holds the view transform between world space and screen space:
// viewport size, pan center, zoom, and rotation. It produces the
// world-to-screen matrix
//
//	translate(viewport/2) * rotate * scale(zoom) * translate(-center)
//
// so Center always maps to the middle of the viewport.
//
// The camera performs no clamping of its own; zoom and pan limits are the
// viewport's responsibility.
type Camera struct {
	ViewportSize Vec2
	Center       Vec2
	Zoom         float64
	Rotation     Angle
}

// NewCamera creates a camera at the origin with unit zoom.
func NewCamera() *Camera {
	return &Camera{Zoom: 1}
}

// Matrix returns the world-to-screen transform.
func (c *Camera) Matrix() Matrix3 {
	return Translation(c.ViewportSize.X/2, c.ViewportSize.Y/2).
		Rotate(c.Rotation).
		Scale(c.Zoom, c.Zoom).
		Translate(-c.Center.X, -c.Center.Y)
}

// WorldToScreen transforms a world-space point to screen space.
func (c *Camera) WorldToScreen(p Vec2) Vec2 {
	return c.Matrix().Transform(p)
}

// ScreenToWorld transforms a screen-space point to world space.
func (c *Camera) ScreenToWorld(p Vec2) Vec2 {
	inv, ok := c.Matrix().Inverse()
	if !ok {
		return p
	}
	return inv.Transform(p)
}

// Translate pans the camera center by a world-space delta.
func (c *Camera) Translate(delta Vec2) {
	c.Center = c.Center.Add(delta)
}

// ZoomAt changes the zoom level while keeping the given screen point
// fixed on the same world location.
func (c *Camera) ZoomAt(screen Vec2, zoom float64) {
	if zoom <= 0 || zoom == c.Zoom {
		if zoom > 0 {
			c.Zoom = zoom
		}
		return
	}
	before := c.ScreenToWorld(screen)
	c.Zoom = zoom
	after := c.ScreenToWorld(screen)
	c.Center = c.Center.Add(before.Sub(after))
}

// BBox returns the axis-aligned world-space region currently visible.
func (c *Camera) BBox() BBox {
	screen := NewBBox(0, 0, c.ViewportSize.X, c.ViewportSize.Y)
	inv, ok := c.Matrix().Inverse()
	if !ok {
		return BBox{}
	}
	return screen.Transform(inv)
}

// SetBBox frames the camera on the given world-space box: the center
// moves to the box center and the zoom is chosen so the box fits the
// viewport with the framing margin, preserving aspect ratio. The box
// extent is measured through the camera rotation, so rotated cameras
// still fit the whole box. Does nothing for an invalid box or an empty
// viewport.
func (c *Camera) SetBBox(b BBox) {
	if !b.Valid() || b.W == 0 || b.H == 0 ||
		c.ViewportSize.X == 0 || c.ViewportSize.Y == 0 {
		return
	}
	rb := b.Transform(Rotation(c.Rotation))
	zx := c.ViewportSize.X / (rb.W * framingMargin)
	zy := c.ViewportSize.Y / (rb.H * framingMargin)
	c.Zoom = min(zx, zy)
	c.Center = b.Center()
}
