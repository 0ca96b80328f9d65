// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/boardview"
)

func uniformFloat(data []byte, i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
}

func TestPackLayerUniformsLayout(t *testing.T) {
	m := boardview.Matrix3{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}
	data := packLayerUniforms(m, 0.25, 0.75)

	if len(data) != uniformBlockSize {
		t.Fatalf("uniform size = %d, want %d", len(data), uniformBlockSize)
	}

	// Column-major 4x4: column 0 holds (A, D), column 1 (B, E),
	// column 3 the translation (C, F).
	checks := []struct {
		index int
		want  float32
	}{
		{0, 1},   // A
		{1, 4},   // D
		{4, 2},   // B
		{5, 5},   // E
		{10, 1},  // z passthrough
		{12, 3},  // C
		{13, 6},  // F
		{15, 1},  // w
		{16, .25}, // depth
		{17, .75}, // alpha
	}
	for _, c := range checks {
		if got := uniformFloat(data, c.index); got != c.want {
			t.Errorf("uniform[%d] = %v, want %v", c.index, got, c.want)
		}
	}
}

func TestPackLayerUniformsIdentity(t *testing.T) {
	data := packLayerUniforms(boardview.Identity(), 0, 1)
	// The promoted matrix must be the 4x4 identity.
	for i := 0; i < 16; i++ {
		want := float32(0)
		if i%5 == 0 {
			want = 1
		}
		if got := uniformFloat(data, i); got != want {
			t.Errorf("identity uniform[%d] = %v, want %v", i, got, want)
		}
	}
}

func TestProjectionMapsPixelsToClip(t *testing.T) {
	r := &Renderer{width: 800, height: 600}
	p := r.projection()

	tests := []struct {
		name string
		in   boardview.Vec2
		want boardview.Vec2
	}{
		{"origin to top-left", boardview.V2(0, 0), boardview.V2(-1, 1)},
		{"center", boardview.V2(400, 300), boardview.V2(0, 0)},
		{"far corner", boardview.V2(800, 600), boardview.V2(1, -1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Transform(tt.in)
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("projection(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestProjectionZeroSurface(t *testing.T) {
	r := &Renderer{}
	if !r.projection().IsIdentity() {
		t.Error("zero surface projection is not identity")
	}
}

func TestFloatBytes(t *testing.T) {
	data := floatBytes([]float32{1})
	if len(data) != 4 {
		t.Fatalf("length = %d, want 4", len(data))
	}
	if got := uniformFloat(data, 0); got != 1 {
		t.Errorf("roundtrip = %v, want 1", got)
	}
	if floatBytes(nil) != nil {
		t.Error("empty slice produced bytes")
	}
}

func TestUint32Bytes(t *testing.T) {
	data := uint32Bytes([]uint32{0x01020304})
	if len(data) != 4 {
		t.Fatalf("length = %d, want 4", len(data))
	}
	if got := binary.LittleEndian.Uint32(data); got != 0x01020304 {
		t.Errorf("roundtrip = %#x", got)
	}
	if uint32Bytes(nil) != nil {
		t.Error("empty slice produced bytes")
	}
}
