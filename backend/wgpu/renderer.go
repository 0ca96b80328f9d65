// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/boardview"
	"github.com/gogpu/boardview/backend"
)

// Renderer is the GPU vertex-buffer backend. It implements
// boardview.Renderer.
type Renderer struct {
	boardview.BaseRenderer

	device hal.Device
	queue  hal.Queue

	pipeline *layerPipeline

	// target is the texture view of the host's current surface texture.
	// Render passes are skipped until the host sets one.
	target hal.TextureView

	width  int
	height int

	open     *Layer
	disposed bool
}

// New creates a GPU renderer on the given HAL device and queue.
// Shader compilation or pipeline creation failure is fatal and wraps
// backend.ErrDeviceUnavailable semantics: the caller should fall back to
// another backend.
func New(device hal.Device, queue hal.Queue, width, height int) (*Renderer, error) {
	if device == nil || queue == nil {
		return nil, backend.ErrDeviceUnavailable
	}

	pipeline, err := newLayerPipeline(device)
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		device:   device,
		queue:    queue,
		pipeline: pipeline,
		width:    width,
		height:   height,
	}
	r.BaseRenderer = boardview.NewBaseRenderer(r)
	boardview.Logger().Info("wgpu renderer created", "width", width, "height", height)
	return r, nil
}

// SetRenderTarget sets the texture view render passes draw into,
// normally the host's acquired surface texture for the current frame.
// The caller retains ownership of the view; the renderer never destroys
// it. Call with nil to detach, after which Clear and layer renders are
// no-ops.
func (r *Renderer) SetRenderTarget(view hal.TextureView) {
	r.target = view
}

// Resize updates the projection viewport. Compiled layers survive; only
// the screen-to-clip mapping changes.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
}

// Clear encodes a render pass that clears the target to the background
// color.
func (r *Renderer) Clear() {
	bg := r.Background()
	r.encodePass("boardview_clear", gputypes.LoadOpClear,
		gputypes.Color{R: bg.R, G: bg.G, B: bg.B, A: bg.A}, nil)
}

// Dispose releases every compiled layer's buffers and the shared
// pipeline. Idempotent.
func (r *Renderer) Dispose() {
	if r.disposed {
		boardview.Logger().Warn("wgpu renderer disposed twice")
		return
	}
	r.disposed = true
	r.DisposeLayers()
	r.pipeline.destroy(r.device)
	r.target = nil
}

// CompileStart implements boardview.LayerCompiler.
func (r *Renderer) CompileStart(name string) {
	r.open = &Layer{
		name:     name,
		renderer: r,
		meshes: [3]*mesh{
			{kind: meshCircles},
			{kind: meshPolylines},
			{kind: meshPolygons},
		},
	}
}

// CompileCircle implements boardview.LayerCompiler.
func (r *Renderer) CompileCircle(c boardview.Circle) {
	r.open.meshes[meshCircles].addCircle(c)
}

// CompilePolyline implements boardview.LayerCompiler.
func (r *Renderer) CompilePolyline(p boardview.Polyline) {
	r.open.meshes[meshPolylines].addPolyline(p)
}

// CompilePolygon implements boardview.LayerCompiler.
func (r *Renderer) CompilePolygon(p boardview.Polygon) {
	r.open.meshes[meshPolygons].addPolygon(p)
}

// CompileEnd implements boardview.LayerCompiler. Tesselated meshes are
// uploaded to device buffers here; nothing further is uploaded at draw
// time except the per-draw uniform block.
func (r *Renderer) CompileEnd() boardview.RenderLayer {
	layer := r.open
	r.open = nil

	for _, m := range layer.meshes {
		if m.empty() {
			continue
		}
		set, err := uploadMesh(r.device, r.queue, layer.name, m)
		if err != nil {
			// A failed upload degrades the layer rather than
			// aborting the paint pass.
			boardview.Logger().Warn("mesh upload failed",
				"layer", layer.name, "kind", m.kind.String(), "error", err)
			continue
		}
		layer.sets = append(layer.sets, set)
	}

	if err := r.createLayerBindings(layer); err != nil {
		boardview.Logger().Warn("layer binding creation failed",
			"layer", layer.name, "error", err)
	}

	boardview.Logger().Debug("wgpu layer compiled",
		"layer", layer.name, "sets", len(layer.sets))
	return layer
}

// createLayerBindings creates the layer's uniform buffer and the bind
// group that exposes it to the shader.
func (r *Renderer) createLayerBindings(layer *Layer) error {
	ubuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: layer.name + "_uniforms",
		Size:  uniformBlockSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}

	bindGroup, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  layer.name + "_bind",
		Layout: r.pipeline.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: ubuf.NativeHandle(), Offset: 0, Size: uniformBlockSize,
			}},
		},
	})
	if err != nil {
		r.device.DestroyBuffer(ubuf)
		return err
	}

	layer.uniforms = ubuf
	layer.bindGroup = bindGroup
	return nil
}

// encodePass encodes and submits one render pass against the current
// target. The record callback, if any, issues the draw calls.
func (r *Renderer) encodePass(label string, loadOp gputypes.LoadOp, clear gputypes.Color, record func(hal.RenderPassEncoder)) {
	if r.target == nil {
		boardview.Logger().Debug("no render target set, skipping pass", "label", label)
		return
	}

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		boardview.Logger().Warn("command encoder creation failed", "error", err)
		return
	}
	if err := encoder.BeginEncoding(label); err != nil {
		boardview.Logger().Warn("command encoding failed", "error", err)
		return
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: label,
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       r.target,
			LoadOp:     loadOp,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: clear,
		}},
	})
	if record != nil {
		record(rp)
	}
	rp.End()

	cmd, err := encoder.EndEncoding()
	if err != nil {
		boardview.Logger().Warn("command encoding failed", "error", err)
		return
	}
	defer r.device.FreeCommandBuffer(cmd)

	if _, err := r.queue.Submit([]hal.CommandBuffer{cmd}); err != nil {
		boardview.Logger().Warn("command submit failed", "error", err)
	}
}
