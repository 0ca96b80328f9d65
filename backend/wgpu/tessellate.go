// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/boardview"
)

// Vertex layout: x, y, r, g, b, a interleaved float32.
const vertexStride = 6

// circleFanSegments is the fixed segment count for circle fans. The
// canvas backend flattens adaptively; a fixed fan keeps GPU vertex
// counts predictable and is visually equivalent at board zoom levels.
const circleFanSegments = 32

// meshKind identifies which primitive group a mesh belongs to.
type meshKind uint8

const (
	meshCircles meshKind = iota
	meshPolylines
	meshPolygons
)

// String returns a human-readable name for the mesh kind.
func (k meshKind) String() string {
	switch k {
	case meshCircles:
		return "circles"
	case meshPolylines:
		return "polylines"
	case meshPolygons:
		return "polygons"
	default:
		return "unknown"
	}
}

// mesh accumulates tesselated triangles for one primitive group of a
// layer. Vertices are interleaved position and color; indices form a
// triangle list.
type mesh struct {
	kind     meshKind
	vertices []float32
	indices  []uint32
}

func (m *mesh) empty() bool {
	return len(m.indices) == 0
}

// vertexCount returns the number of vertices currently in the mesh.
func (m *mesh) vertexCount() uint32 {
	return uint32(len(m.vertices) / vertexStride)
}

func (m *mesh) addVertex(x, y float64, color [4]float32) uint32 {
	i := m.vertexCount()
	m.vertices = append(m.vertices,
		float32(x), float32(y),
		color[0], color[1], color[2], color[3])
	return i
}

func (m *mesh) addTriangle(a, b, c uint32) {
	m.indices = append(m.indices, a, b, c)
}

// addCircle tesselates a filled circle as a fixed-segment triangle fan
// around the center vertex.
func (m *mesh) addCircle(c boardview.Circle) {
	col := c.Color.Float32()
	center := m.addVertex(c.Center.X, c.Center.Y, col)

	cx, cy := float32(c.Center.X), float32(c.Center.Y)
	r := float32(c.Radius)
	first := m.vertexCount()
	for i := 0; i < circleFanSegments; i++ {
		t := 2 * math32.Pi * float32(i) / circleFanSegments
		sin, cos := math32.Sincos(t)
		m.vertices = append(m.vertices,
			cx+r*cos, cy+r*sin,
			col[0], col[1], col[2], col[3])
	}
	for i := uint32(0); i < circleFanSegments; i++ {
		m.addTriangle(center, first+i, first+(i+1)%circleFanSegments)
	}
}

// addPolyline tesselates a stroked polyline as one quad per segment plus
// a small fan at every vertex, approximating round joins and caps.
func (m *mesh) addPolyline(p boardview.Polyline) {
	half := p.Width / 2
	if half <= 0 {
		half = 0.5
	}
	col := p.Color.Float32()

	for i := 0; i < len(p.Points)-1; i++ {
		a, b := p.Points[i], p.Points[i+1]
		dir := b.Sub(a)
		if dir.LengthSq() == 0 {
			continue
		}
		n := dir.Normalize().Perp().Mul(half)
		v0 := m.addVertex(a.X+n.X, a.Y+n.Y, col)
		v1 := m.addVertex(b.X+n.X, b.Y+n.Y, col)
		v2 := m.addVertex(b.X-n.X, b.Y-n.Y, col)
		v3 := m.addVertex(a.X-n.X, a.Y-n.Y, col)
		m.addTriangle(v0, v1, v2)
		m.addTriangle(v0, v2, v3)
	}
	for _, pt := range p.Points {
		m.addCircle(boardview.Circle{Center: pt, Radius: half, Color: p.Color})
	}
}

// addPolygon tesselates a filled polygon by ear clipping (convex fan
// fast path in Triangulate).
func (m *mesh) addPolygon(p boardview.Polygon) {
	tris := p.Triangulate()
	if len(tris) == 0 {
		return
	}
	col := p.Color.Float32()

	base := m.vertexCount()
	for _, pt := range p.Points {
		m.addVertex(pt.X, pt.Y, col)
	}
	for _, t := range tris {
		m.addTriangle(base+uint32(t[0]), base+uint32(t[1]), base+uint32(t[2]))
	}
}
