// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package view

import (
	"github.com/gogpu/boardview"
	"github.com/gogpu/boardview/backend"
)

// Shared test fixtures: a minimal document model with one item kind.

const kindCircle ItemKind = "circle"

type circleItem struct {
	center boardview.Vec2
	radius float64
	layers []string
}

func (c *circleItem) Kind() ItemKind { return kindCircle }

type sliceDoc []Item

func (d sliceDoc) Items() []Item { return d }

type circlePainter struct{}

func (circlePainter) Kinds() []ItemKind { return []ItemKind{kindCircle} }

func (circlePainter) LayersFor(item Item) []string {
	return item.(*circleItem).layers
}

func (circlePainter) Paint(r boardview.Renderer, layer *Layer, item Item) {
	it := item.(*circleItem)
	r.Circle(boardview.Circle{Center: it.center, Radius: it.radius})
}

type testTheme struct{}

func (testTheme) Background() boardview.Color { return boardview.RGB(0.1, 0.1, 0.2) }

func (testTheme) LayerColor(name string) boardview.Color { return boardview.White }

func newTestRenderer() *backend.NullRenderer {
	return backend.NewNullRenderer(800, 600)
}
