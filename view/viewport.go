// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package view

import (
	"math"
	"sync"

	"github.com/gogpu/boardview"
)

// Default zoom limits applied to every gesture.
const (
	DefaultMinZoom = 0.05
	DefaultMaxZoom = 190
)

// wheelDeltaMax clamps normalized wheel deltas; some devices report
// enormous single-event deltas.
const wheelDeltaMax = 120

// zoomWheelFactor converts a normalized wheel delta into a zoom ratio.
const zoomWheelFactor = 0.002

// DeltaMode identifies the unit of a wheel event's deltas.
type DeltaMode uint8

// Wheel delta modes, matching the host event's unit.
const (
	DeltaPixel DeltaMode = iota
	DeltaLine
	DeltaPage
)

// WheelEvent is a normalized host scroll event.
type WheelEvent struct {
	DeltaX, DeltaY float64
	Mode           DeltaMode
	Position       boardview.Vec2 // surface coordinates
	Ctrl           bool
	Shift          bool
}

// PinchEvent is a two-finger zoom gesture step.
type PinchEvent struct {
	Position      boardview.Vec2
	DeltaDistance float64
}

// MouseButton identifies which button drives a drag gesture.
type MouseButton uint8

// Buttons that pan the viewport when dragged.
const (
	ButtonMiddle MouseButton = iota
	ButtonRight
	ButtonLeft
)

// DragEvent is a pointer-drag step in surface coordinates.
type DragEvent struct {
	Button MouseButton
	Delta  boardview.Vec2
}

// Viewport binds the camera to the host surface's physical size and to
// pointer-driven pan/zoom gestures.
//
// The host reports surface size changes through Resize; the viewport
// never polls. The first time both dimensions become positive, a
// one-shot ready gate opens (the camera's framing math needs a non-zero
// viewport). Every successful gesture invokes OnChange — the viewer uses
// it to schedule a redraw — and notifies registered pan-zoom listeners.
type Viewport struct {
	Camera *boardview.Camera

	// Bounds optionally clamps the camera's pan center into a
	// world-space box after every pan.
	Bounds *boardview.BBox

	MinZoom, MaxZoom float64

	// AlignSourceTool swaps the wheel bindings so plain wheel pans
	// and Ctrl+wheel zooms, matching the source CAD tool.
	AlignSourceTool bool

	// OnChange runs after every successful gesture.
	OnChange func()

	width, height int

	ready     chan struct{}
	readyOnce sync.Once

	panZoomListeners []func()
	disposed         bool
}

// NewViewport creates a viewport around a camera.
func NewViewport(camera *boardview.Camera, onChange func()) *Viewport {
	return &Viewport{
		Camera:   camera,
		MinZoom:  DefaultMinZoom,
		MaxZoom:  DefaultMaxZoom,
		OnChange: onChange,
		ready:    make(chan struct{}),
	}
}

// Size returns the observed surface size.
func (vp *Viewport) Size() (int, int) { return vp.width, vp.height }

// Resize reacts to a host surface size change. A repeated report of the
// same size does nothing, so the camera matrix is not recomputed
// redundantly.
func (vp *Viewport) Resize(width, height int) {
	if width == vp.width && height == vp.height {
		return
	}
	vp.width = width
	vp.height = height
	vp.Camera.ViewportSize = boardview.V2(float64(width), float64(height))
	if width > 0 && height > 0 {
		vp.readyOnce.Do(func() { close(vp.ready) })
	}
	vp.changed()
}

// Ready returns a channel closed once the viewport first has a positive
// size. The viewer consumes it before the first paint.
func (vp *Viewport) Ready() <-chan struct{} { return vp.ready }

// AddPanZoomListener registers a listener notified after every pan or
// zoom gesture.
func (vp *Viewport) AddPanZoomListener(fn func()) {
	vp.panZoomListeners = append(vp.panZoomListeners, fn)
}

// Wheel handles a scroll event. By default the wheel zooms at the
// cursor, Shift+wheel pans horizontally, and Ctrl+wheel pans
// vertically; with AlignSourceTool set, the plain wheel pans vertically
// and Ctrl+wheel zooms instead.
func (vp *Viewport) Wheel(ev WheelEvent) {
	dx := clampDelta(normalizeDelta(ev.DeltaX, ev.Mode))
	dy := clampDelta(normalizeDelta(ev.DeltaY, ev.Mode))
	if dx == 0 && dy == 0 {
		return
	}

	zoom := !ev.Ctrl && !ev.Shift
	if vp.AlignSourceTool {
		zoom = ev.Ctrl
	}

	switch {
	case zoom:
		vp.zoomAt(ev.Position, vp.Camera.Zoom*math.Exp2(-dy*zoomWheelFactor))
	case ev.Shift:
		vp.panScreen(boardview.V2(dy, 0))
	default:
		vp.panScreen(boardview.V2(dx, dy))
	}
	vp.changed()
}

// Pinch handles a two-finger zoom step: distance delta maps to a zoom
// ratio around the gesture center.
func (vp *Viewport) Pinch(ev PinchEvent) {
	if ev.DeltaDistance == 0 {
		return
	}
	vp.zoomAt(ev.Position, vp.Camera.Zoom*(1+ev.DeltaDistance*0.01))
	vp.changed()
}

// Drag handles a pointer drag step. Middle and right button drags pan;
// other buttons are ignored (the left button picks).
func (vp *Viewport) Drag(ev DragEvent) {
	if ev.Button != ButtonMiddle && ev.Button != ButtonRight {
		return
	}
	vp.panScreen(ev.Delta.Neg())
	vp.changed()
}

// panScreen pans the camera by a surface-space delta.
func (vp *Viewport) panScreen(delta boardview.Vec2) {
	inv, ok := vp.Camera.Matrix().Inverse()
	if !ok {
		return
	}
	vp.Camera.Translate(inv.TransformVector(delta))
	vp.clampPan()
}

// zoomAt applies a clamped zoom keeping the given surface point fixed.
func (vp *Viewport) zoomAt(pos boardview.Vec2, zoom float64) {
	vp.Camera.ZoomAt(pos, vp.clampZoom(zoom))
	vp.clampPan()
}

func (vp *Viewport) clampZoom(zoom float64) float64 {
	return math.Min(math.Max(zoom, vp.MinZoom), vp.MaxZoom)
}

func (vp *Viewport) clampPan() {
	if vp.Bounds == nil || !vp.Bounds.Valid() {
		return
	}
	c := vp.Camera.Center
	c.X = math.Min(math.Max(c.X, vp.Bounds.X), vp.Bounds.X2())
	c.Y = math.Min(math.Max(c.Y, vp.Bounds.Y), vp.Bounds.Y2())
	vp.Camera.Center = c
}

func (vp *Viewport) changed() {
	if vp.OnChange != nil {
		vp.OnChange()
	}
	for _, fn := range vp.panZoomListeners {
		fn()
	}
}

// Dispose detaches callbacks. Idempotent.
func (vp *Viewport) Dispose() {
	if vp.disposed {
		boardview.Logger().Warn("viewport disposed twice")
		return
	}
	vp.disposed = true
	vp.OnChange = nil
	vp.panZoomListeners = nil
}

// normalizeDelta converts a wheel delta into pixels.
func normalizeDelta(d float64, mode DeltaMode) float64 {
	switch mode {
	case DeltaLine:
		return d * 16
	case DeltaPage:
		return d * 320
	default:
		return d
	}
}

func clampDelta(d float64) float64 {
	return math.Min(math.Max(d, -wheelDeltaMax), wheelDeltaMax)
}
