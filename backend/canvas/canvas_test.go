// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package canvas

import (
	"image/color"
	"testing"

	"github.com/gogpu/boardview"
	"github.com/gogpu/boardview/backend"
)

func TestNewRejectsEmptySurface(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 100},
		{"zero height", 100, 0},
		{"negative", -1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.width, tt.height); err == nil {
				t.Error("New accepted an empty surface")
			}
		})
	}
}

func TestRegisteredWithRegistry(t *testing.T) {
	if !backend.IsRegistered(backend.BackendCanvas) {
		t.Fatal("canvas backend not registered")
	}
	r, err := backend.New(backend.BackendCanvas, 10, 10)
	if err != nil {
		t.Fatalf("registry New error: %v", err)
	}
	defer r.Dispose()
	if _, ok := r.(*Renderer); !ok {
		t.Errorf("registry produced %T", r)
	}
}

func TestClearFillsBackground(t *testing.T) {
	r, err := New(8, 8)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Dispose()

	r.SetBackground(boardview.RGB(1, 0, 0))
	r.Clear()

	got := r.Image().RGBAAt(4, 4)
	want := color.RGBA{255, 0, 0, 255}
	if got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
}

func TestRenderCirclePaintsPixels(t *testing.T) {
	r, err := New(64, 64)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Dispose()
	r.SetBackground(boardview.Black)
	r.Clear()

	r.StartLayer("test")
	r.Circle(boardview.Circle{Center: boardview.V2(32, 32), Radius: 10, Color: boardview.White})
	layer := r.EndLayer()

	layer.Render(boardview.Identity(), 0, 1)

	if got := r.Image().RGBAAt(32, 32); got.R != 255 {
		t.Errorf("center pixel = %v, want white", got)
	}
	if got := r.Image().RGBAAt(2, 2); got.R != 0 {
		t.Errorf("corner pixel = %v, want untouched black", got)
	}
}

func TestRenderAppliesTransform(t *testing.T) {
	r, err := New(64, 64)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Dispose()
	r.Clear()

	// Circle at the origin, drawn with a translation into view.
	r.StartLayer("test")
	r.Circle(boardview.Circle{Center: boardview.V2(0, 0), Radius: 5, Color: boardview.White})
	layer := r.EndLayer()

	layer.Render(boardview.Translation(40, 40), 0, 1)

	if got := r.Image().RGBAAt(40, 40); got.R != 255 {
		t.Errorf("translated center = %v, want white", got)
	}
	if got := r.Image().RGBAAt(5, 5); got.R != 0 {
		t.Errorf("origin = %v, want untouched", got)
	}
}

func TestBatchingMergesSameStyle(t *testing.T) {
	r, err := New(32, 32)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Dispose()

	r.StartLayer("test")
	for i := 0; i < 5; i++ {
		r.Circle(boardview.Circle{
			Center: boardview.V2(float64(i*6), 16),
			Radius: 2,
			Color:  boardview.White,
		})
	}
	layer := r.EndLayer().(*Layer)

	if len(layer.batches) != 1 {
		t.Errorf("batch count = %d, want 1 merged batch", len(layer.batches))
	}
	if len(layer.batches[0].outlines) != 5 {
		t.Errorf("outline count = %d, want 5", len(layer.batches[0].outlines))
	}
}

func TestBatchingSplitsOnStyleChange(t *testing.T) {
	r, err := New(32, 32)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Dispose()

	r.StartLayer("test")
	r.Circle(boardview.Circle{Center: boardview.V2(8, 8), Radius: 2, Color: boardview.White})
	r.Circle(boardview.Circle{Center: boardview.V2(16, 8), Radius: 2, Color: boardview.RGB(1, 0, 0)})
	r.Circle(boardview.Circle{Center: boardview.V2(24, 8), Radius: 2, Color: boardview.RGB(1, 0, 0)})
	layer := r.EndLayer().(*Layer)

	if len(layer.batches) != 2 {
		t.Errorf("batch count = %d, want 2", len(layer.batches))
	}
}

func TestBatchingHonorsCeiling(t *testing.T) {
	l := &Layer{}
	style := paintStyle{color: boardview.White}
	outline := []boardview.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}

	for i := 0; i < maxBatchSize+1; i++ {
		l.add(style, outline)
	}
	if len(l.batches) != 2 {
		t.Errorf("batch count = %d, want overflow into 2", len(l.batches))
	}
	if len(l.batches[0].outlines) != maxBatchSize {
		t.Errorf("first batch size = %d, want %d", len(l.batches[0].outlines), maxBatchSize)
	}
}

func TestTranslucentStylesNeverMerge(t *testing.T) {
	r, err := New(32, 32)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Dispose()

	r.StartLayer("test")
	for i := 0; i < 3; i++ {
		r.Circle(boardview.Circle{
			Center: boardview.V2(float64(8+i*4), 16),
			Radius: 3,
			Color:  boardview.RGBA(1, 0, 0, 0.5),
		})
	}
	layer := r.EndLayer().(*Layer)

	if len(layer.batches) != 3 {
		t.Errorf("batch count = %d, want one per translucent primitive", len(layer.batches))
	}
}

func TestTranslucentOverlapBlendsPerPrimitive(t *testing.T) {
	circle := func(x float64) boardview.Circle {
		return boardview.Circle{Center: boardview.V2(x, 16), Radius: 8, Color: boardview.RGBA(1, 0, 0, 0.5)}
	}

	// Both circles compiled into one layer back to back.
	batched, err := New(32, 32)
	if err != nil {
		t.Fatal(err)
	}
	defer batched.Dispose()
	batched.SetBackground(boardview.Black)
	batched.Clear()
	batched.StartLayer("both")
	batched.Circle(circle(12))
	batched.Circle(circle(20))
	batched.EndLayer().Render(boardview.Identity(), 0, 1)

	// The same circles compiled into separate layers.
	separate, err := New(32, 32)
	if err != nil {
		t.Fatal(err)
	}
	defer separate.Dispose()
	separate.SetBackground(boardview.Black)
	separate.Clear()
	separate.StartLayer("a")
	separate.Circle(circle(12))
	a := separate.EndLayer()
	separate.StartLayer("b")
	separate.Circle(circle(20))
	b := separate.EndLayer()
	a.Render(boardview.Identity(), 0, 1)
	b.Render(boardview.Identity(), 0, 1)

	// The overlap pixel must blend the translucent fill twice either way.
	got := batched.Image().RGBAAt(16, 16)
	want := separate.Image().RGBAAt(16, 16)
	if got != want {
		t.Errorf("overlap pixel = %v, want %v", got, want)
	}
}

func TestDimmedRenderBlendsPerPrimitive(t *testing.T) {
	circle := func(x float64) boardview.Circle {
		return boardview.Circle{Center: boardview.V2(x, 16), Radius: 8, Color: boardview.White}
	}

	batched, err := New(32, 32)
	if err != nil {
		t.Fatal(err)
	}
	defer batched.Dispose()
	batched.SetBackground(boardview.Black)
	batched.Clear()
	batched.StartLayer("both")
	batched.Circle(circle(12))
	batched.Circle(circle(20))
	merged := batched.EndLayer().(*Layer)
	if len(merged.batches) != 1 {
		t.Fatalf("opaque circles did not merge: %d batches", len(merged.batches))
	}
	merged.Render(boardview.Identity(), 0, 0.5)

	separate, err := New(32, 32)
	if err != nil {
		t.Fatal(err)
	}
	defer separate.Dispose()
	separate.SetBackground(boardview.Black)
	separate.Clear()
	separate.StartLayer("a")
	separate.Circle(circle(12))
	a := separate.EndLayer()
	separate.StartLayer("b")
	separate.Circle(circle(20))
	b := separate.EndLayer()
	a.Render(boardview.Identity(), 0, 0.5)
	b.Render(boardview.Identity(), 0, 0.5)

	got := batched.Image().RGBAAt(16, 16)
	want := separate.Image().RGBAAt(16, 16)
	if got != want {
		t.Errorf("dimmed overlap pixel = %v, want %v", got, want)
	}
}

func TestLayerDisposeDetaches(t *testing.T) {
	r, err := New(16, 16)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Dispose()

	r.StartLayer("a")
	r.Circle(boardview.Circle{Center: boardview.V2(8, 8), Radius: 2, Color: boardview.White})
	a := r.EndLayer()
	r.StartLayer("b")
	r.Circle(boardview.Circle{Center: boardview.V2(8, 8), Radius: 2, Color: boardview.White})
	b := r.EndLayer()

	a.Dispose()
	layers := r.Layers()
	if len(layers) != 1 || layers[0] != b {
		t.Errorf("Layers after dispose = %v, want only b", layers)
	}
}

func TestDisposedRendererCallsAreNoops(t *testing.T) {
	r, err := New(16, 16)
	if err != nil {
		t.Fatal(err)
	}
	r.Dispose()

	r.Clear()
	r.Resize(64, 64)
	if r.Image() != nil {
		t.Error("surface recreated after dispose")
	}
}

func TestResizeKeepsLayers(t *testing.T) {
	r, err := New(16, 16)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Dispose()

	r.StartLayer("test")
	r.Circle(boardview.Circle{Center: boardview.V2(8, 8), Radius: 3, Color: boardview.White})
	layer := r.EndLayer()

	r.Resize(64, 64)
	r.Clear()
	layer.Render(boardview.Identity(), 0, 1)

	if got := r.Image().Bounds().Dx(); got != 64 {
		t.Fatalf("surface width = %d, want 64", got)
	}
	if got := r.Image().RGBAAt(8, 8); got.R != 255 {
		t.Errorf("pixel after resize = %v, want white", got)
	}
}

func TestDisposedLayerRendersNothing(t *testing.T) {
	r, err := New(32, 32)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Dispose()
	r.Clear()

	r.StartLayer("test")
	r.Circle(boardview.Circle{Center: boardview.V2(16, 16), Radius: 5, Color: boardview.White})
	layer := r.EndLayer()

	layer.Dispose()
	layer.Dispose()
	layer.Render(boardview.Identity(), 0, 1)

	if got := r.Image().RGBAAt(16, 16); got.R != 0 {
		t.Errorf("disposed layer painted pixel %v", got)
	}
}

func TestStrokeOutline(t *testing.T) {
	pts := []boardview.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	outlines := strokeOutline(pts, 2)

	// Two segment quads plus a cap circle per vertex.
	if len(outlines) != 5 {
		t.Fatalf("outline count = %d, want 5", len(outlines))
	}
	quad := outlines[0]
	if len(quad) != 4 {
		t.Fatalf("segment quad has %d points", len(quad))
	}
	if !(quad[0] == boardview.Vec2{X: 0, Y: 1} || quad[0] == boardview.Vec2{X: 0, Y: -1}) {
		t.Errorf("quad corner = %v, want offset by half width", quad[0])
	}

	if strokeOutline(pts[:1], 2) != nil {
		t.Error("single point produced outlines")
	}
}

func TestCircleSegmentsClamped(t *testing.T) {
	if got := circleSegments(1); got != 16 {
		t.Errorf("small radius segments = %d, want 16", got)
	}
	if got := circleSegments(1000); got != 128 {
		t.Errorf("large radius segments = %d, want 128", got)
	}
	if got := circleSegments(50); got != 50 {
		t.Errorf("mid radius segments = %d, want 50", got)
	}
}
