package boardview

// Renderer is the backend-agnostic drawing surface.
//
// Primitives issued between StartLayer and EndLayer are compiled into a
// backend-resident RenderLayer that can be redrawn at arbitrary camera
// transforms without re-walking the source document. The renderer applies
// the current RenderState to every primitive: coordinates are transformed
// by the state matrix, and unset or fully transparent shape colors are
// substituted with the state fill (circles, polygons) or stroke (arcs,
// polylines) color.
//
// Layer and bounding-box scopes follow a strict protocol: StartLayer
// while a layer is open, EndLayer with none open, and EndBBox with no
// open scope all panic, since they indicate a broken painter rather than
// a recoverable condition.
//
// Renderers are NOT safe for concurrent use.
type Renderer interface {
	// Background returns the surface clear color.
	Background() Color

	// SetBackground sets the surface clear color.
	SetBackground(c Color)

	// State returns the current render state. Mutations apply to
	// subsequent primitives until the next Pop.
	State() *RenderState

	// Push saves the current render state.
	Push()

	// Pop restores the previously saved render state.
	Pop()

	// StartLayer opens a new compiled layer. Panics if a layer is
	// already open.
	StartLayer(name string)

	// EndLayer closes the open layer, appends it to Layers, and
	// returns it. Panics if no layer is open.
	EndLayer() RenderLayer

	// StartBBox opens a running bounding-box accumulation scope.
	StartBBox()

	// EndBBox closes the scope and returns the accumulated box in
	// world coordinates. Panics if no scope is open.
	EndBBox() BBox

	// Circle draws a filled circle.
	Circle(c Circle)

	// Arc draws a stroked arc. Arcs are flattened to polylines before
	// the backend sees them.
	Arc(a Arc)

	// Line draws a stroked polyline.
	Line(p Polyline)

	// Polygon draws a filled polygon.
	Polygon(p Polygon)

	// Clear fills the surface with the background color, discarding
	// previously presented output (not compiled layers).
	Clear()

	// Layers returns all compiled layers in compile order.
	Layers() []RenderLayer

	// Dispose releases all compiled layers and backend resources.
	// Dispose is idempotent.
	Dispose()
}

// RenderLayer is one compiled, redrawable batch of graphics.
//
// A layer is write-once: after EndLayer returns it, its contents never
// change. Render may be called any number of times with different
// transforms. Dispose must be idempotent because the owning view layer
// and the backend may independently release it during layer replacement.
type RenderLayer interface {
	// Name returns the layer name given to StartLayer.
	Name() string

	// Empty reports whether the layer compiled no primitives.
	Empty() bool

	// Render draws the compiled graphics with the given view
	// transform, depth (back-to-front tie-breaking, 0..1), and global
	// alpha.
	Render(transform Matrix3, depth, alpha float64)

	// Dispose releases the layer's backend resources. Safe to call
	// more than once.
	Dispose()
}

// LayerCompiler is the backend half of the renderer contract. The shared
// BaseRenderer normalizes, colors, and transforms primitives, then hands
// them to the compiler; the compiler turns them into backend-native
// objects (path batches, GPU buffers, or plain records).
type LayerCompiler interface {
	// CompileStart begins compilation of a new layer.
	CompileStart(name string)

	// CompileCircle adds a normalized, transformed circle.
	CompileCircle(c Circle)

	// CompilePolyline adds a normalized, transformed polyline.
	CompilePolyline(p Polyline)

	// CompilePolygon adds a normalized, transformed polygon.
	CompilePolygon(p Polygon)

	// CompileEnd finishes the layer and returns the compiled result.
	CompileEnd() RenderLayer
}

// BaseRenderer implements the backend-independent part of Renderer:
// state stack, layer/bbox protocol, color fallback, coordinate transform,
// and arc flattening. Backends embed it and pass themselves as the
// LayerCompiler.
type BaseRenderer struct {
	states     *StateStack
	background Color
	compiler   LayerCompiler

	layers    []RenderLayer
	layerOpen bool

	bbox     BBox
	bboxOpen bool
}

// NewBaseRenderer creates the shared renderer core for a backend.
func NewBaseRenderer(compiler LayerCompiler) BaseRenderer {
	return BaseRenderer{
		states:     NewStateStack(),
		background: Black,
		compiler:   compiler,
	}
}

// Background returns the surface clear color.
func (r *BaseRenderer) Background() Color { return r.background }

// SetBackground sets the surface clear color.
func (r *BaseRenderer) SetBackground(c Color) { r.background = c }

// State returns the current render state.
func (r *BaseRenderer) State() *RenderState { return r.states.Top() }

// Push saves the current render state.
func (r *BaseRenderer) Push() { r.states.Push() }

// Pop restores the previously saved render state.
func (r *BaseRenderer) Pop() { r.states.Pop() }

// StartLayer opens a new compiled layer.
func (r *BaseRenderer) StartLayer(name string) {
	if r.layerOpen {
		panic("boardview: StartLayer called while a layer is open")
	}
	r.layerOpen = true
	r.compiler.CompileStart(name)
}

// EndLayer closes the open layer and returns the compiled result.
func (r *BaseRenderer) EndLayer() RenderLayer {
	if !r.layerOpen {
		panic("boardview: EndLayer called with no open layer")
	}
	r.layerOpen = false
	layer := r.compiler.CompileEnd()
	r.layers = append(r.layers, layer)
	return layer
}

// StartBBox opens a bounding-box accumulation scope.
func (r *BaseRenderer) StartBBox() {
	r.bbox = BBox{}
	r.bboxOpen = true
}

// EndBBox closes the scope and returns the accumulated box.
func (r *BaseRenderer) EndBBox() BBox {
	if !r.bboxOpen {
		panic("boardview: EndBBox called with no open scope")
	}
	r.bboxOpen = false
	return r.bbox
}

// Layers returns all compiled layers in compile order.
func (r *BaseRenderer) Layers() []RenderLayer { return r.layers }

// ForgetLayer removes a compiled layer from the renderer's layer list.
// Backends call it from their layer Dispose so replaced layers do not
// accumulate for the renderer's lifetime.
func (r *BaseRenderer) ForgetLayer(target RenderLayer) {
	for i, l := range r.layers {
		if l == target {
			r.layers = append(r.layers[:i], r.layers[i+1:]...)
			return
		}
	}
}

// DisposeLayers disposes every compiled layer and forgets them.
// Backends call this from their Dispose implementation.
func (r *BaseRenderer) DisposeLayers() {
	layers := r.layers
	r.layers = nil
	for _, l := range layers {
		l.Dispose()
	}
}

// Circle draws a filled circle through the compiler.
func (r *BaseRenderer) Circle(c Circle) {
	st := r.State()
	c.Color = c.Color.Or(st.Fill)
	out := c.TransformShape(st.Matrix).(Circle)
	r.extendBBox(out.ShapeBBox())
	r.compiler.CompileCircle(out)
}

// Arc flattens the arc and draws it as a polyline.
func (r *BaseRenderer) Arc(a Arc) {
	st := r.State()
	a.Color = a.Color.Or(st.Stroke)
	if a.Width == 0 {
		a.Width = st.StrokeWidth
	}
	r.Line(a.ToPolyline())
}

// Line draws a stroked polyline through the compiler.
func (r *BaseRenderer) Line(p Polyline) {
	if len(p.Points) < 2 {
		return
	}
	st := r.State()
	p.Color = p.Color.Or(st.Stroke)
	if p.Width == 0 {
		p.Width = st.StrokeWidth
	}
	out := p.TransformShape(st.Matrix).(Polyline)
	r.extendBBox(out.ShapeBBox())
	r.compiler.CompilePolyline(out)
}

// Polygon draws a filled polygon through the compiler.
func (r *BaseRenderer) Polygon(p Polygon) {
	if len(p.Points) < 3 {
		return
	}
	st := r.State()
	p.Color = p.Color.Or(st.Fill)
	out := p.TransformShape(st.Matrix).(Polygon)
	r.extendBBox(out.ShapeBBox())
	r.compiler.CompilePolygon(out)
}

func (r *BaseRenderer) extendBBox(b BBox) {
	if r.bboxOpen {
		r.bbox = r.bbox.Union(b)
	}
}
