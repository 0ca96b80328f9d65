// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package canvas implements the immediate-surface renderer backend.
//
// Primitives are compiled into vector path batches: consecutive
// primitives with the same paint style merge into a single batch up to a
// small ceiling, trading marginally higher per-batch path complexity for
// drastically fewer draw calls. Drawing a layer replays its batches
// through a golang.org/x/image/vector rasterizer onto the backend's
// *image.RGBA surface, composing the surface transform with the layer's
// draw-time transform, so the same compiled layer redraws at any camera
// position without recompilation.
package canvas

import (
	"image"
	"image/draw"

	"github.com/gogpu/boardview"
	"github.com/gogpu/boardview/backend"
)

func init() {
	backend.Register(backend.BackendCanvas, func(width, height int) (boardview.Renderer, error) {
		return New(width, height)
	})
}

// Renderer is the immediate-surface backend. It implements
// boardview.Renderer.
type Renderer struct {
	boardview.BaseRenderer

	img    *image.RGBA
	width  int
	height int

	// transform is the surface's accumulated transform (device pixel
	// ratio, flips). Layer draw-time transforms compose with it.
	transform boardview.Matrix3

	open     *Layer
	disposed bool
}

// New creates a canvas renderer drawing into a fresh RGBA surface.
func New(width, height int) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, backend.ErrDeviceUnavailable
	}
	r := &Renderer{
		img:       image.NewRGBA(image.Rect(0, 0, width, height)),
		width:     width,
		height:    height,
		transform: boardview.Identity(),
	}
	r.BaseRenderer = boardview.NewBaseRenderer(r)
	return r, nil
}

// Image returns the surface the renderer draws into. The host presents
// it after each frame.
func (r *Renderer) Image() *image.RGBA { return r.img }

// SetTransform sets the surface's accumulated transform.
func (r *Renderer) SetTransform(m boardview.Matrix3) { r.transform = m }

// Resize replaces the surface with one of the given size. Compiled
// layers survive a resize; only the presentation surface is rebuilt.
func (r *Renderer) Resize(width, height int) {
	if r.disposed || (width == r.width && height == r.height) {
		return
	}
	r.width = width
	r.height = height
	r.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Clear fills the surface with the background color. A no-op after
// Dispose.
func (r *Renderer) Clear() {
	if r.img == nil {
		return
	}
	bg := image.NewUniform(r.Background().NRGBA())
	draw.Draw(r.img, r.img.Bounds(), bg, image.Point{}, draw.Src)
}

// Dispose releases all compiled layers. Idempotent.
func (r *Renderer) Dispose() {
	if r.disposed {
		boardview.Logger().Warn("canvas renderer disposed twice")
		return
	}
	r.disposed = true
	r.DisposeLayers()
	r.img = nil
}

// CompileStart implements boardview.LayerCompiler.
func (r *Renderer) CompileStart(name string) {
	r.open = &Layer{name: name, renderer: r}
}

// CompileCircle implements boardview.LayerCompiler.
func (r *Renderer) CompileCircle(c boardview.Circle) {
	r.open.add(paintStyle{color: c.Color}, circleOutline(c.Center, c.Radius))
}

// CompilePolyline implements boardview.LayerCompiler.
func (r *Renderer) CompilePolyline(p boardview.Polyline) {
	r.open.add(paintStyle{color: p.Color, width: p.Width}, strokeOutline(p.Points, p.Width)...)
}

// CompilePolygon implements boardview.LayerCompiler.
func (r *Renderer) CompilePolygon(p boardview.Polygon) {
	r.open.add(paintStyle{color: p.Color}, p.Points)
}

// CompileEnd implements boardview.LayerCompiler.
func (r *Renderer) CompileEnd() boardview.RenderLayer {
	layer := r.open
	r.open = nil
	boardview.Logger().Debug("canvas layer compiled",
		"layer", layer.name, "batches", len(layer.batches))
	return layer
}
