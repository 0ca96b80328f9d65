// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/boardview"
)

// primitiveSet is one uploaded mesh: a vertex buffer, an index buffer,
// and the index count to draw. The set owns its buffers; Destroy
// releases them exactly once.
type primitiveSet struct {
	kind       meshKind
	device     hal.Device
	vertex     hal.Buffer
	index      hal.Buffer
	indexCount uint32
	destroyed  bool
}

// uploadMesh creates device buffers for a tesselated mesh and writes the
// vertex and index data through the queue.
func uploadMesh(device hal.Device, queue hal.Queue, label string, m *mesh) (*primitiveSet, error) {
	vertexData := floatBytes(m.vertices)
	indexData := uint32Bytes(m.indices)

	vbuf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label + "_" + m.kind.String() + "_vertices",
		Size:  uint64(len(vertexData)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create vertex buffer: %w", err)
	}

	ibuf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label + "_" + m.kind.String() + "_indices",
		Size:  uint64(len(indexData)),
		Usage: gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		device.DestroyBuffer(vbuf)
		return nil, fmt.Errorf("wgpu: create index buffer: %w", err)
	}

	queue.WriteBuffer(vbuf, 0, vertexData)
	queue.WriteBuffer(ibuf, 0, indexData)

	return &primitiveSet{
		kind:       m.kind,
		device:     device,
		vertex:     vbuf,
		index:      ibuf,
		indexCount: uint32(len(m.indices)),
	}, nil
}

// Destroy releases the set's buffers. Safe to call more than once.
func (s *primitiveSet) Destroy() {
	if s.destroyed {
		boardview.Logger().Warn("primitive set destroyed twice", "kind", s.kind.String())
		return
	}
	s.destroyed = true
	if s.device != nil {
		if s.vertex != nil {
			s.device.DestroyBuffer(s.vertex)
		}
		if s.index != nil {
			s.device.DestroyBuffer(s.index)
		}
	}
	s.vertex = nil
	s.index = nil
}

// floatBytes reinterprets a float32 slice as bytes for buffer upload.
func floatBytes(data []float32) []byte {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*4) //nolint:gosec // safe slice reinterpretation
}

// uint32Bytes reinterprets a uint32 slice as bytes for buffer upload.
func uint32Bytes(data []uint32) []byte {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*4) //nolint:gosec // safe slice reinterpretation
}
