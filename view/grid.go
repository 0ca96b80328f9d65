// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package view

import (
	"math"

	"github.com/gogpu/boardview"
)

// GridLevel is one level-of-detail entry: when the camera zoom is at
// least MinZoom, grid lines are generated with the given world-space
// spacing and stroke width.
type GridLevel struct {
	MinZoom float64
	Spacing float64
	Width   float64
}

// DefaultGridLevels suit millimeter-unit board documents: coarse 10 mm
// lines zoomed out, 0.1 inch pitch at working zoom, fine quarter-pitch
// lines zoomed in.
var DefaultGridLevels = []GridLevel{
	{MinZoom: 0, Spacing: 10, Width: 0.1},
	{MinZoom: 0.5, Spacing: 2.54, Width: 0.05},
	{MinZoom: 2.5, Spacing: 0.635, Width: 0.02},
}

// Grid maintains the level-of-detail line grid drawn beneath the
// document layers.
//
// Regeneration is the expensive part — a fine grid over a large visible
// region is thousands of line segments — so Update only rebuilds when
// the visible world region leaves the extent the last generation
// covered, or when the zoom crosses into another level. Continuous
// panning inside the generated extent reuses the compiled layer
// untouched.
type Grid struct {
	Levels []GridLevel
	Color  boardview.Color

	renderer boardview.Renderer
	camera   *boardview.Camera

	layer      boardview.RenderLayer
	lastExtent boardview.BBox
	lastLevel  int
}

// NewGrid creates a grid for a renderer and camera using the default
// levels.
func NewGrid(r boardview.Renderer, camera *boardview.Camera, color boardview.Color) *Grid {
	return &Grid{
		Levels:    DefaultGridLevels,
		Color:     color,
		renderer:  r,
		camera:    camera,
		lastLevel: -1,
	}
}

// Layer returns the compiled grid layer, nil before the first Update.
func (g *Grid) Layer() boardview.RenderLayer { return g.layer }

// Update regenerates the grid if the visible region moved outside the
// previously generated extent. Returns true if the layer was rebuilt.
func (g *Grid) Update() bool {
	visible := g.camera.BBox()
	if !visible.Valid() || visible.W == 0 {
		return false
	}

	level := g.levelFor(g.camera.Zoom)
	if g.layer != nil && level == g.lastLevel && containsBox(g.lastExtent, visible) {
		return false
	}

	// Generate over twice the visible area so small pans stay inside
	// the extent.
	extent := visible.Grow(math.Max(visible.W, visible.H) / 2)
	g.regenerate(extent, g.Levels[level])
	g.lastExtent = extent
	g.lastLevel = level
	boardview.Logger().Debug("grid regenerated",
		"spacing", g.Levels[level].Spacing, "zoom", g.camera.Zoom)
	return true
}

// Dispose releases the compiled grid layer.
func (g *Grid) Dispose() {
	if g.layer != nil {
		g.layer.Dispose()
		g.layer = nil
	}
}

// levelFor returns the index of the finest level whose MinZoom the
// current zoom reaches.
func (g *Grid) levelFor(zoom float64) int {
	best := 0
	for i, l := range g.Levels {
		if zoom >= l.MinZoom {
			best = i
		}
	}
	return best
}

func (g *Grid) regenerate(extent boardview.BBox, level GridLevel) {
	r := g.renderer
	r.StartLayer("grid")

	x0 := math.Floor(extent.X/level.Spacing) * level.Spacing
	y0 := math.Floor(extent.Y/level.Spacing) * level.Spacing
	for x := x0; x <= extent.X2(); x += level.Spacing {
		r.Line(boardview.Polyline{
			Points: []boardview.Vec2{{X: x, Y: extent.Y}, {X: x, Y: extent.Y2()}},
			Width:  level.Width,
			Color:  g.Color,
		})
	}
	for y := y0; y <= extent.Y2(); y += level.Spacing {
		r.Line(boardview.Polyline{
			Points: []boardview.Vec2{{X: extent.X, Y: y}, {X: extent.X2(), Y: y}},
			Width:  level.Width,
			Color:  g.Color,
		})
	}

	old := g.layer
	g.layer = r.EndLayer()
	if old != nil {
		old.Dispose()
	}
}

// containsBox reports whether outer fully contains inner.
func containsBox(outer, inner boardview.BBox) bool {
	return outer.Valid() && inner.Valid() &&
		inner.X >= outer.X && inner.Y >= outer.Y &&
		inner.X2() <= outer.X2() && inner.Y2() <= outer.Y2()
}
