// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/boardview"
	"github.com/gogpu/boardview/backend"
)

// newNoopDevice creates a noop HAL device and queue for testing.
func newNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

// newTargetView creates a render target texture view on the device.
func newTargetView(t *testing.T, device hal.Device) (hal.TextureView, func()) {
	t.Helper()
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "test_target",
		Size:          hal.Extent3D{Width: 64, Height: 64, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		t.Fatalf("CreateTexture failed: %v", err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "test_target_view",
	})
	if err != nil {
		device.DestroyTexture(tex)
		t.Fatalf("CreateTextureView failed: %v", err)
	}
	cleanup := func() {
		device.DestroyTextureView(view)
		device.DestroyTexture(tex)
	}
	return view, cleanup
}

func TestNewRejectsNilDevice(t *testing.T) {
	if _, err := New(nil, nil, 64, 64); !errors.Is(err, backend.ErrDeviceUnavailable) {
		t.Errorf("New(nil, nil) error = %v, want ErrDeviceUnavailable", err)
	}
}

func TestNewCreatesRenderPipeline(t *testing.T) {
	device, queue, cleanup := newNoopDevice(t)
	defer cleanup()

	r, err := New(device, queue, 64, 64)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer r.Dispose()

	if r.pipeline.module == nil {
		t.Error("expected non-nil shader module")
	}
	if r.pipeline.bindLayout == nil {
		t.Error("expected non-nil bind group layout")
	}
	if r.pipeline.layout == nil {
		t.Error("expected non-nil pipeline layout")
	}
	if r.pipeline.pipeline == nil {
		t.Error("expected non-nil render pipeline")
	}
}

func TestCompileCreatesLayerBindings(t *testing.T) {
	device, queue, cleanup := newNoopDevice(t)
	defer cleanup()

	r, err := New(device, queue, 64, 64)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer r.Dispose()

	r.StartLayer("copper")
	r.Circle(boardview.Circle{Center: boardview.V2(10, 10), Radius: 5, Color: boardview.White})
	layer := r.EndLayer().(*Layer)

	if len(layer.sets) != 1 {
		t.Fatalf("primitive set count = %d, want 1", len(layer.sets))
	}
	if layer.uniforms == nil {
		t.Error("expected non-nil uniform buffer")
	}
	if layer.bindGroup == nil {
		t.Error("expected non-nil bind group")
	}
}

func TestRenderWithoutTargetIsNoop(t *testing.T) {
	device, queue, cleanup := newNoopDevice(t)
	defer cleanup()

	r, err := New(device, queue, 64, 64)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer r.Dispose()

	r.StartLayer("l")
	r.Circle(boardview.Circle{Radius: 1, Color: boardview.White})
	layer := r.EndLayer()

	// No target set: clear and render must not panic or submit.
	r.Clear()
	layer.Render(boardview.Identity(), 0, 1)
}

func TestRenderEncodesAgainstTarget(t *testing.T) {
	device, queue, cleanup := newNoopDevice(t)
	defer cleanup()

	r, err := New(device, queue, 64, 64)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer r.Dispose()

	view, release := newTargetView(t, device)
	defer release()
	r.SetRenderTarget(view)

	r.StartLayer("l")
	r.Circle(boardview.Circle{Center: boardview.V2(32, 32), Radius: 8, Color: boardview.White})
	r.Line(boardview.Polyline{
		Points: []boardview.Vec2{{X: 0, Y: 0}, {X: 10, Y: 10}},
		Width:  2,
		Color:  boardview.White,
	})
	layer := r.EndLayer()

	r.SetBackground(boardview.Black)
	r.Clear()
	layer.Render(boardview.Identity(), 0.1, 0.5)

	// Detaching the target returns renders to no-ops.
	r.SetRenderTarget(nil)
	layer.Render(boardview.Identity(), 0.1, 0.5)
}

func TestLayerDisposeDetachesAndReleases(t *testing.T) {
	device, queue, cleanup := newNoopDevice(t)
	defer cleanup()

	r, err := New(device, queue, 64, 64)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer r.Dispose()

	r.StartLayer("a")
	r.Circle(boardview.Circle{Radius: 1, Color: boardview.White})
	a := r.EndLayer().(*Layer)
	r.StartLayer("b")
	r.Circle(boardview.Circle{Radius: 1, Color: boardview.White})
	b := r.EndLayer()

	a.Dispose()
	a.Dispose()

	if a.uniforms != nil || a.bindGroup != nil || a.sets != nil {
		t.Error("layer resources retained after dispose")
	}
	layers := r.Layers()
	if len(layers) != 1 || layers[0] != b {
		t.Errorf("Layers after dispose = %v, want only b", layers)
	}
}

func TestDisposeReleasesPipeline(t *testing.T) {
	device, queue, cleanup := newNoopDevice(t)
	defer cleanup()

	r, err := New(device, queue, 64, 64)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	r.StartLayer("l")
	r.Circle(boardview.Circle{Radius: 1, Color: boardview.White})
	r.EndLayer()

	r.Dispose()
	r.Dispose()

	if r.pipeline.pipeline != nil || r.pipeline.module != nil {
		t.Error("pipeline resources retained after dispose")
	}
	if len(r.Layers()) != 0 {
		t.Errorf("Layers after dispose = %v", r.Layers())
	}
}

func TestLayerVertexLayout(t *testing.T) {
	layout := layerVertexLayout()
	if len(layout) != 1 {
		t.Fatalf("buffer layout count = %d, want 1", len(layout))
	}
	vbl := layout[0]
	if vbl.ArrayStride != vertexStride*4 {
		t.Errorf("stride = %d, want %d", vbl.ArrayStride, vertexStride*4)
	}
	if len(vbl.Attributes) != 2 {
		t.Fatalf("attribute count = %d, want 2", len(vbl.Attributes))
	}
	if vbl.Attributes[1].Offset != 8 {
		t.Errorf("color offset = %d, want 8", vbl.Attributes[1].Offset)
	}
}
