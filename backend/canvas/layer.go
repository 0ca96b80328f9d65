// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package canvas

import (
	"image"
	"image/draw"

	"golang.org/x/image/vector"

	"github.com/gogpu/boardview"
)

// maxBatchSize caps the number of subpaths merged into one batch. Very
// large batches make the rasterizer's edge list expensive to rebuild, so
// batching stops paying off past a few hundred paths.
const maxBatchSize = 256

// paintStyle is the batching key: primitives merge into the previous
// batch only when their style matches exactly.
type paintStyle struct {
	color boardview.Color
	width float64
}

// pathBatch is one compiled draw call: a set of closed outlines sharing
// one paint style, filled together in a single rasterizer pass.
type pathBatch struct {
	style    paintStyle
	outlines [][]boardview.Vec2

	// spans records the outline count of each merged primitive, so a
	// translucent replay can fill one primitive per pass.
	spans []int
}

// Layer is a compiled canvas layer: an ordered list of path batches.
// Write-once after CompileEnd; Render replays the batches at any
// transform.
type Layer struct {
	name     string
	renderer *Renderer
	batches  []*pathBatch
	disposed bool
}

// add appends outlines, merging into the last batch when the style
// matches and the batch ceiling is not reached. Translucent styles
// never merge: a single-pass fill covers overlapping outlines once,
// where per-primitive drawing blends them twice.
func (l *Layer) add(style paintStyle, outlines ...[]boardview.Vec2) {
	if n := len(l.batches); n > 0 && style.color.A >= 1 {
		last := l.batches[n-1]
		if last.style == style && len(last.outlines)+len(outlines) <= maxBatchSize {
			last.outlines = append(last.outlines, outlines...)
			last.spans = append(last.spans, len(outlines))
			return
		}
	}
	l.batches = append(l.batches, &pathBatch{
		style:    style,
		outlines: outlines,
		spans:    []int{len(outlines)},
	})
}

// Name returns the layer name.
func (l *Layer) Name() string { return l.name }

// Empty reports whether the layer compiled no primitives.
func (l *Layer) Empty() bool { return len(l.batches) == 0 }

// Render replays the layer's batches onto the renderer's surface.
// The effective transform is surface transform x draw-time transform.
// Depth is unused: the canvas backend relies on painter's-algorithm
// call order.
func (l *Layer) Render(transform boardview.Matrix3, depth, alpha float64) {
	if l.disposed || l.renderer.img == nil {
		return
	}
	_ = depth
	m := l.renderer.transform.Mul(transform)

	for _, b := range l.batches {
		if alpha < 1 && len(b.spans) > 1 {
			// A global alpha makes even opaque batches translucent, so
			// fall back to per-primitive compositing.
			start := 0
			for _, n := range b.spans {
				l.fillOutlines(b.style, b.outlines[start:start+n], m, alpha)
				start += n
			}
			continue
		}
		l.fillOutlines(b.style, b.outlines, m, alpha)
	}
}

func (l *Layer) fillOutlines(style paintStyle, outlines [][]boardview.Vec2, m boardview.Matrix3, alpha float64) {
	img := l.renderer.img
	ras := vector.NewRasterizer(l.renderer.width, l.renderer.height)
	ras.DrawOp = draw.Over

	any := false
	for _, outline := range outlines {
		if len(outline) < 3 {
			continue
		}
		p := m.Transform(outline[0])
		ras.MoveTo(float32(p.X), float32(p.Y))
		for _, wp := range outline[1:] {
			p = m.Transform(wp)
			ras.LineTo(float32(p.X), float32(p.Y))
		}
		ras.ClosePath()
		any = true
	}
	if !any {
		return
	}

	src := image.NewUniform(style.color.MulAlpha(alpha).NRGBA())
	ras.Draw(img, img.Bounds(), src, image.Point{})
}

// Dispose releases the layer's batches and detaches it from the
// renderer. Idempotent.
func (l *Layer) Dispose() {
	if l.disposed {
		boardview.Logger().Warn("render layer disposed twice", "layer", l.name)
		return
	}
	l.disposed = true
	l.batches = nil
	if l.renderer != nil {
		l.renderer.ForgetLayer(l)
	}
}
