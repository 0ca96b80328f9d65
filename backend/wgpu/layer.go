// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/boardview"
)

// Layer is a compiled GPU layer: up to three primitive sets (circles,
// polylines, polygons) plus a per-layer uniform buffer and bind group.
// Write-once after CompileEnd.
type Layer struct {
	name     string
	renderer *Renderer

	// meshes accumulate during compilation and are released after
	// upload; only the device-resident sets survive.
	meshes [3]*mesh

	sets      []*primitiveSet
	uniforms  hal.Buffer
	bindGroup hal.BindGroup
	disposed  bool
}

// Name returns the layer name.
func (l *Layer) Name() string { return l.name }

// Empty reports whether the layer compiled no primitives.
func (l *Layer) Empty() bool {
	if len(l.sets) > 0 {
		return false
	}
	for _, m := range l.meshes {
		if m != nil && !m.empty() {
			return false
		}
	}
	return true
}

// Render draws the layer's primitive sets: the uniform block (combined
// transform, depth, alpha) is written, then one render pass binds the
// pipeline and bind group and issues an indexed draw per set. Vertex and
// index buffers were uploaded at compile time.
func (l *Layer) Render(transform boardview.Matrix3, depth, alpha float64) {
	if l.disposed || len(l.sets) == 0 || l.uniforms == nil || l.bindGroup == nil {
		return
	}

	r := l.renderer
	u := packLayerUniforms(r.projection().Mul(transform), depth, alpha)
	r.queue.WriteBuffer(l.uniforms, 0, u)

	r.encodePass(l.name, gputypes.LoadOpLoad, gputypes.Color{}, func(rp hal.RenderPassEncoder) {
		rp.SetPipeline(r.pipeline.pipeline)
		rp.SetBindGroup(0, l.bindGroup, nil)
		for _, s := range l.sets {
			rp.SetVertexBuffer(0, s.vertex, 0)
			rp.SetIndexBuffer(s.index, gputypes.IndexFormatUint32, 0)
			rp.DrawIndexed(s.indexCount, 1, 0, 0, 0)
		}
	})
}

// Dispose releases the layer's buffers exactly once and detaches the
// layer from the renderer. Safe to call more than once; overlapping
// disposal from the view layer and the backend is expected during layer
// replacement.
func (l *Layer) Dispose() {
	if l.disposed {
		boardview.Logger().Warn("render layer disposed twice", "layer", l.name)
		return
	}
	l.disposed = true
	for _, s := range l.sets {
		s.Destroy()
	}
	l.sets = nil
	if l.bindGroup != nil {
		l.renderer.device.DestroyBindGroup(l.bindGroup)
		l.bindGroup = nil
	}
	if l.uniforms != nil {
		l.renderer.device.DestroyBuffer(l.uniforms)
		l.uniforms = nil
	}
	l.renderer.ForgetLayer(l)
}

// projection maps surface pixel coordinates to clip space.
func (r *Renderer) projection() boardview.Matrix3 {
	if r.width == 0 || r.height == 0 {
		return boardview.Identity()
	}
	// x: [0,w] -> [-1,1], y: [0,h] -> [1,-1] (clip space is y-up).
	return boardview.Translation(-1, 1).
		Scale(2/float64(r.width), -2/float64(r.height))
}

// packLayerUniforms lays out LayerUniforms as the shader expects: the
// affine transform promoted to a column-major 4x4 matrix, then depth and
// alpha in the params vector.
func packLayerUniforms(m boardview.Matrix3, depth, alpha float64) []byte {
	u := make([]float32, 20)
	// Column 0
	u[0] = float32(m.A)
	u[1] = float32(m.D)
	// Column 1
	u[4] = float32(m.B)
	u[5] = float32(m.E)
	// Column 2 (z passthrough)
	u[10] = 1
	// Column 3 (translation)
	u[12] = float32(m.C)
	u[13] = float32(m.F)
	u[15] = 1
	// Params
	u[16] = float32(depth)
	u[17] = float32(alpha)
	return floatBytes(u)
}
