// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"github.com/gogpu/boardview"
)

func init() {
	Register(BackendNull, func(width, height int) (boardview.Renderer, error) {
		return NewNullRenderer(width, height), nil
	})
}

// NullRenderer records normalized shapes into plain per-layer slices with
// zero device interaction. It exists so painting and classification logic
// can be tested headlessly, independent of any graphics device.
type NullRenderer struct {
	boardview.BaseRenderer

	width, height int
	disposed      bool

	open *NullLayer
}

// NewNullRenderer creates a recording renderer of the given size.
func NewNullRenderer(width, height int) *NullRenderer {
	r := &NullRenderer{width: width, height: height}
	r.BaseRenderer = boardview.NewBaseRenderer(r)
	return r
}

// Clear is a no-op; there is no surface to clear.
func (r *NullRenderer) Clear() {}

// Dispose releases all recorded layers. Idempotent.
func (r *NullRenderer) Dispose() {
	if r.disposed {
		boardview.Logger().Warn("null renderer disposed twice")
		return
	}
	r.disposed = true
	r.DisposeLayers()
}

// CompileStart implements boardview.LayerCompiler.
func (r *NullRenderer) CompileStart(name string) {
	r.open = &NullLayer{name: name, renderer: r}
}

// CompileCircle implements boardview.LayerCompiler.
func (r *NullRenderer) CompileCircle(c boardview.Circle) {
	r.open.Shapes = append(r.open.Shapes, c)
}

// CompilePolyline implements boardview.LayerCompiler.
func (r *NullRenderer) CompilePolyline(p boardview.Polyline) {
	r.open.Shapes = append(r.open.Shapes, p)
}

// CompilePolygon implements boardview.LayerCompiler.
func (r *NullRenderer) CompilePolygon(p boardview.Polygon) {
	r.open.Shapes = append(r.open.Shapes, p)
}

// CompileEnd implements boardview.LayerCompiler.
func (r *NullRenderer) CompileEnd() boardview.RenderLayer {
	layer := r.open
	r.open = nil
	return layer
}

// NullLayer is a compiled layer holding the recorded shapes.
type NullLayer struct {
	// Shapes are the normalized, transformed primitives in draw order.
	Shapes []boardview.Shape

	// Renders records every Render call for assertion in tests.
	Renders []NullRender

	name     string
	renderer *NullRenderer
	disposed bool
}

// NullRender records the arguments of one Render call.
type NullRender struct {
	Transform boardview.Matrix3
	Depth     float64
	Alpha     float64
}

// Name returns the layer name.
func (l *NullLayer) Name() string { return l.name }

// Empty reports whether no shapes were recorded.
func (l *NullLayer) Empty() bool { return len(l.Shapes) == 0 }

// Render records the call; nothing is drawn.
func (l *NullLayer) Render(transform boardview.Matrix3, depth, alpha float64) {
	l.Renders = append(l.Renders, NullRender{Transform: transform, Depth: depth, Alpha: alpha})
}

// Dispose marks the layer disposed and detaches it from the renderer.
// Idempotent.
func (l *NullLayer) Dispose() {
	if l.disposed {
		boardview.Logger().Warn("render layer disposed twice", "layer", l.name)
		return
	}
	l.disposed = true
	l.Shapes = nil
	if l.renderer != nil {
		l.renderer.ForgetLayer(l)
	}
}
