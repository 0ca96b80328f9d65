// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package view

import (
	"fmt"

	"github.com/gogpu/boardview"
	"github.com/gogpu/boardview/backend"
)

// dimAlpha is the opacity non-highlighted layers draw with while any
// layer is highlighted.
const dimAlpha = 0.25

// selectionMargin grows the selection highlight box beyond the picked
// item's bounds, in world units.
const selectionMargin = 3

// depthStep separates consecutive layers in depth for backends that
// layer by depth value rather than draw order.
const depthStep = 0.01

// Selection is the currently picked item and its bounding box.
type Selection struct {
	BBox boardview.BBox
	Item Item
}

// Option configures a Viewer before Setup.
type Option func(*Viewer)

// WithBackend selects the renderer backend by registry name instead of
// priority order.
func WithBackend(name string) Option {
	return func(v *Viewer) { v.backendName = name }
}

// WithGrid enables or disables the background grid.
func WithGrid(enabled bool) Option {
	return func(v *Viewer) { v.gridEnabled = enabled }
}

// WithZoomLimits overrides the viewport's zoom clamp range.
func WithZoomLimits(minZoom, maxZoom float64) Option {
	return func(v *Viewer) { v.minZoom, v.maxZoom = minZoom, maxZoom }
}

// Viewer owns one renderer, one viewport, the view layer set, and the
// document painter, and runs the draw loop and pick/selection flow.
//
// Lifecycle: NewViewer -> Setup -> Resize (host reports surface size) ->
// Load -> steady-state Tick/gesture/pick cycles -> Dispose. Draw never
// renders synchronously: it marks a redraw pending, and the host's
// per-frame Tick performs at most one paint regardless of how many
// Draw calls accumulated.
type Viewer struct {
	renderer boardview.Renderer
	camera   *boardview.Camera
	viewport *Viewport
	layers   *LayerSet
	painter  *DocumentPainter
	grid     *Grid

	doc   Document
	theme Theme

	backendName      string
	gridEnabled      bool
	minZoom, maxZoom float64

	selection *Selection

	redrawPending bool
	framePending  bool
	setUp         bool
	loaded        bool
	disposed      bool

	onLoad      []func()
	onSelect    []func(cur, prev Item)
	onMouseMove []func(world boardview.Vec2)
}

// NewViewer creates an unconfigured viewer. Call Setup before use.
func NewViewer(opts ...Option) *Viewer {
	v := &Viewer{
		gridEnabled: true,
		minZoom:     DefaultMinZoom,
		maxZoom:     DefaultMaxZoom,
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Setup creates the backend renderer and the viewport. Backend setup
// failure (for example, no GPU device) is fatal and propagates; nothing
// is retried.
func (v *Viewer) Setup() error {
	if v.setUp {
		return nil
	}

	var (
		r   boardview.Renderer
		err error
	)
	// The surface size arrives later through Resize; backends start
	// at a placeholder size.
	if v.backendName != "" {
		r, err = backend.New(v.backendName, 1, 1)
	} else {
		r, err = backend.Default(1, 1)
	}
	if err != nil {
		return fmt.Errorf("view: renderer setup failed: %w", err)
	}

	v.renderer = r
	v.camera = boardview.NewCamera()
	v.viewport = NewViewport(v.camera, v.Draw)
	v.viewport.MinZoom = v.minZoom
	v.viewport.MaxZoom = v.maxZoom
	v.layers = NewLayerSet()
	v.setUp = true
	return nil
}

// Renderer returns the backend renderer.
func (v *Viewer) Renderer() boardview.Renderer { return v.renderer }

// Camera returns the camera.
func (v *Viewer) Camera() *boardview.Camera { return v.camera }

// Viewport returns the viewport.
func (v *Viewer) Viewport() *Viewport { return v.viewport }

// Layers returns the view layer set.
func (v *Viewer) Layers() *LayerSet { return v.layers }

// resizer is implemented by backends whose surface can follow the
// viewport size.
type resizer interface {
	Resize(width, height int)
}

// Resize reports a host surface size change.
func (v *Viewer) Resize(width, height int) {
	if !v.setUp {
		return
	}
	v.viewport.Resize(width, height)
	if rs, ok := v.renderer.(resizer); ok {
		rs.Resize(width, height)
	}
	if v.framePending && v.ready() {
		v.frameDocument()
		v.framePending = false
	}
	v.Draw()
}

// Load paints a document through the given painters and frames the
// camera on it. Loading again replaces the previous document's layers.
func (v *Viewer) Load(doc Document, theme Theme, painters ...ItemPainter) error {
	if !v.setUp {
		return fmt.Errorf("view: Load called before Setup")
	}

	v.doc = doc
	v.theme = theme
	v.renderer.SetBackground(theme.Background())

	v.painter = NewDocumentPainter(v.renderer, theme)
	v.painter.Register(painters...)
	v.painter.PaintDocument(doc, v.layers)

	if v.gridEnabled && v.grid == nil {
		v.grid = NewGrid(v.renderer, v.camera, theme.LayerColor("grid"))
	}

	v.loaded = true
	if v.ready() {
		v.frameDocument()
	} else {
		// Frame once the host reports a real surface size.
		v.framePending = true
	}

	for _, fn := range v.onLoad {
		fn()
	}
	v.Draw()
	return nil
}

// ready reports whether the viewport has had a positive size.
func (v *Viewer) ready() bool {
	select {
	case <-v.viewport.Ready():
		return true
	default:
		return false
	}
}

// frameDocument centers and zooms the camera on the loaded document.
func (v *Viewer) frameDocument() {
	v.camera.SetBBox(v.documentBBox())
	v.camera.Zoom = v.viewport.clampZoom(v.camera.Zoom)
}

// documentBBox returns the union of every layer's item boxes.
func (v *Viewer) documentBBox() boardview.BBox {
	var out boardview.BBox
	for _, l := range v.layers.Layers() {
		out = out.Union(l.BBox())
	}
	return out
}

// Draw schedules a render on the next host tick. Multiple calls within
// one frame coalesce into a single paint.
func (v *Viewer) Draw() {
	v.redrawPending = true
}

// Tick is called by the host once per display refresh. It renders at
// most one frame, and only when a redraw is pending and the viewport
// has a real size.
func (v *Viewer) Tick() {
	if !v.redrawPending || v.disposed || !v.setUp || !v.ready() {
		return
	}
	v.redrawPending = false
	v.renderFrame()
}

func (v *Viewer) renderFrame() {
	v.renderer.Clear()

	matrix := v.camera.Matrix()
	depth := depthStep
	dim := v.layers.AnyHighlighted()

	if v.grid != nil {
		v.grid.Update()
		if gl := v.grid.Layer(); gl != nil {
			gl.Render(matrix, depth, 1)
		}
		depth += depthStep
	}

	for _, l := range v.layers.InDisplayOrder() {
		if !l.Visible() || l.Graphics == nil || l.Graphics.Empty() {
			continue
		}
		alpha := l.Opacity
		if dim && !l.Highlighted && l.Name != OverlayLayerName {
			alpha *= dimAlpha
		}
		l.Graphics.Render(matrix, depth, alpha)
		depth += depthStep
	}
}

// PickAt maps a surface point through the camera into world space and
// selects the topmost interactive item whose recorded box contains it.
// A miss clears the selection. Picking before a document is loaded
// yields no selection and is not an error.
func (v *Viewer) PickAt(screen boardview.Vec2) *Selection {
	if !v.loaded {
		v.Select(nil)
		return nil
	}
	world := v.camera.ScreenToWorld(screen)
	hits := v.layers.QueryPoint(world)
	if len(hits) == 0 {
		v.Select(nil)
		return nil
	}
	item, _ := hits[0].Context.(Item)
	v.SelectBBox(hits[0], item)
	return v.Selection()
}

// Select selects an item by resolving its recorded per-layer boxes, or
// clears the selection when item is nil.
func (v *Viewer) Select(item Item) {
	if item == nil {
		v.setSelection(nil)
		return
	}
	var bbox boardview.BBox
	for _, b := range v.layers.QueryItemBBoxes(item) {
		bbox = bbox.Union(b)
	}
	if !bbox.Valid() {
		v.setSelection(nil)
		return
	}
	v.SelectBBox(bbox, item)
}

// SelectBBox selects an explicit bounding box, with item as the
// originating document item (may be nil).
func (v *Viewer) SelectBBox(bbox boardview.BBox, item Item) {
	bbox.Context = item
	v.setSelection(&Selection{BBox: bbox, Item: item})
}

// Selection returns a defensive copy of the current selection, or nil.
func (v *Viewer) Selection() *Selection {
	if v.selection == nil {
		return nil
	}
	s := *v.selection
	return &s
}

func (v *Viewer) setSelection(sel *Selection) {
	var prev Item
	if v.selection != nil {
		prev = v.selection.Item
	}
	v.selection = sel

	v.paintOverlay()

	var cur Item
	if sel != nil {
		cur = sel.Item
	}
	for _, fn := range v.onSelect {
		fn(cur, prev)
	}
	v.Draw()
}

// paintOverlay rebuilds the overlay layer's graphics: a highlight
// outline and translucent fill sized to the selection box grown by a
// fixed margin.
func (v *Viewer) paintOverlay() {
	if !v.setUp {
		return
	}
	overlay := v.layers.Overlay()

	r := v.renderer
	r.StartLayer(OverlayLayerName)
	if v.selection != nil {
		b := v.selection.BBox.Grow(selectionMargin)
		c := overlay.Color
		corners := b.Corners()
		outline := append(corners[:], corners[0])
		r.Polygon(boardview.Polygon{Points: corners[:], Color: c.WithAlpha(c.A * 0.3)})
		r.Line(boardview.Polyline{Points: outline, Width: selectionMargin / 4, Color: c})
	}
	overlay.AttachGraphics(r.EndLayer())
}

// ZoomToSelection frames the camera on the current selection.
func (v *Viewer) ZoomToSelection() {
	if v.selection == nil {
		return
	}
	v.camera.SetBBox(v.selection.BBox.Grow(selectionMargin * 2))
	v.camera.Zoom = v.viewport.clampZoom(v.camera.Zoom)
	v.Draw()
}

// ZoomToPage frames the camera on the whole document.
func (v *Viewer) ZoomToPage() {
	if !v.loaded {
		return
	}
	v.frameDocument()
	v.Draw()
}

// SetLayerOpacity sets a per-layer opacity multiplier.
func (v *Viewer) SetLayerOpacity(name string, alpha float64) {
	if l := v.layers.ByName(name); l != nil {
		l.Opacity = alpha
		v.Draw()
	}
}

// MouseMove reports pointer movement; listeners receive the position in
// world space.
func (v *Viewer) MouseMove(screen boardview.Vec2) {
	if !v.setUp {
		return
	}
	world := v.camera.ScreenToWorld(screen)
	for _, fn := range v.onMouseMove {
		fn(world)
	}
}

// OnLoad registers a listener fired after every successful Load.
func (v *Viewer) OnLoad(fn func()) { v.onLoad = append(v.onLoad, fn) }

// OnSelect registers a listener fired on every selection change with
// the new and previous selected items (either may be nil).
func (v *Viewer) OnSelect(fn func(cur, prev Item)) { v.onSelect = append(v.onSelect, fn) }

// OnMouseMove registers a pointer-move listener.
func (v *Viewer) OnMouseMove(fn func(world boardview.Vec2)) {
	v.onMouseMove = append(v.onMouseMove, fn)
}

// Dispose tears down layers, grid, viewport, and renderer. Idempotent.
func (v *Viewer) Dispose() {
	if v.disposed {
		boardview.Logger().Warn("viewer disposed twice")
		return
	}
	v.disposed = true
	if v.layers != nil {
		v.layers.Dispose()
	}
	if v.grid != nil {
		v.grid.Dispose()
	}
	if v.viewport != nil {
		v.viewport.Dispose()
	}
	if v.renderer != nil {
		v.renderer.Dispose()
	}
}
