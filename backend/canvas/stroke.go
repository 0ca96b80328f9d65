// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package canvas

import (
	"math"

	"github.com/gogpu/boardview"
)

// circleSegments returns the flattening segment count for a circle of
// the given radius in surface units.
func circleSegments(r float64) int {
	n := int(math.Ceil(r))
	if n < 16 {
		return 16
	}
	if n > 128 {
		return 128
	}
	return n
}

// circleOutline flattens a circle into a closed outline.
func circleOutline(center boardview.Vec2, radius float64) []boardview.Vec2 {
	n := circleSegments(radius)
	pts := make([]boardview.Vec2, n)
	for i := range pts {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		pts[i] = boardview.Vec2{X: center.X + radius*cos, Y: center.Y + radius*sin}
	}
	return pts
}

// strokeOutline expands a polyline of the given width into filled
// outlines: one quad per segment plus a cap circle at every vertex,
// which approximates round joins and caps. All outlines of one stroke
// fill in a single rasterizer pass, so the overlaps do not double-blend.
func strokeOutline(points []boardview.Vec2, width float64) [][]boardview.Vec2 {
	if len(points) < 2 {
		return nil
	}
	half := width / 2
	if half <= 0 {
		half = 0.5 // hairline
	}

	outlines := make([][]boardview.Vec2, 0, 2*len(points)-1)
	for i := 0; i < len(points)-1; i++ {
		a, b := points[i], points[i+1]
		dir := b.Sub(a)
		if dir.LengthSq() == 0 {
			continue
		}
		n := dir.Normalize().Perp().Mul(half)
		outlines = append(outlines, []boardview.Vec2{
			a.Add(n), b.Add(n), b.Sub(n), a.Sub(n),
		})
	}
	for _, p := range points {
		outlines = append(outlines, circleOutline(p, half))
	}
	return outlines
}
