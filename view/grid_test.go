// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package view

import (
	"math"
	"testing"

	"github.com/gogpu/boardview"
	"github.com/gogpu/boardview/backend"
)

func newTestGrid() (*Grid, *boardview.Camera, *backend.NullRenderer) {
	r := newTestRenderer()
	cam := boardview.NewCamera()
	cam.ViewportSize = boardview.V2(800, 600)
	g := NewGrid(r, cam, boardview.RGB(0.3, 0.3, 0.3))
	return g, cam, r
}

func TestGridFirstUpdateGenerates(t *testing.T) {
	g, _, r := newTestGrid()
	defer r.Dispose()

	if g.Layer() != nil {
		t.Fatal("layer exists before Update")
	}
	if !g.Update() {
		t.Fatal("first Update did not generate")
	}
	layer := g.Layer()
	if layer == nil || layer.Empty() {
		t.Fatal("generated layer is empty")
	}
	if layer.Name() != "grid" {
		t.Errorf("layer name = %q", layer.Name())
	}
}

func TestGridReusesInsideExtent(t *testing.T) {
	g, cam, r := newTestGrid()
	defer r.Dispose()

	g.Update()
	layer := g.Layer()

	// Small pans stay inside the generated extent.
	cam.Translate(boardview.V2(20, 10))
	if g.Update() {
		t.Error("small pan regenerated the grid")
	}
	if g.Layer() != layer {
		t.Error("layer replaced without regeneration")
	}
}

func TestGridRegeneratesOutsideExtent(t *testing.T) {
	g, cam, r := newTestGrid()
	defer r.Dispose()

	g.Update()
	old := g.Layer()

	// A pan past the generated margin forces a rebuild.
	cam.Translate(boardview.V2(5000, 0))
	if !g.Update() {
		t.Fatal("large pan did not regenerate")
	}
	if g.Layer() == old {
		t.Error("layer not replaced after regeneration")
	}
}

func TestGridRegeneratesOnLevelChange(t *testing.T) {
	g, cam, r := newTestGrid()
	defer r.Dispose()

	cam.Zoom = 0.1
	g.Update()

	cam.Zoom = 3
	if !g.Update() {
		t.Error("zoom level crossing did not regenerate")
	}
}

func TestGridLevelSelection(t *testing.T) {
	g, _, r := newTestGrid()
	defer r.Dispose()

	tests := []struct {
		zoom float64
		want int
	}{
		{0.1, 0},
		{0.5, 1},
		{1, 1},
		{2.5, 2},
		{100, 2},
	}
	for _, tt := range tests {
		if got := g.levelFor(tt.zoom); got != tt.want {
			t.Errorf("levelFor(%v) = %d, want %d", tt.zoom, got, tt.want)
		}
	}
}

func TestGridLinesSnapToSpacing(t *testing.T) {
	g, cam, r := newTestGrid()
	defer r.Dispose()

	cam.Zoom = 1 // level 1, spacing 2.54
	g.Update()

	nl := g.Layer().(*backend.NullLayer)
	if len(nl.Shapes) == 0 {
		t.Fatal("no grid lines generated")
	}
	spacing := g.Levels[1].Spacing
	for _, s := range nl.Shapes {
		p := s.(boardview.Polyline)
		// Vertical lines share X and must sit on the spacing lattice.
		if p.Points[0].X == p.Points[1].X {
			if rem := math.Remainder(p.Points[0].X, spacing); math.Abs(rem) > 1e-6 {
				t.Errorf("vertical line at %v off lattice", p.Points[0].X)
			}
		}
	}
}

func TestGridDispose(t *testing.T) {
	g, _, r := newTestGrid()
	defer r.Dispose()

	g.Update()
	g.Dispose()
	if g.Layer() != nil {
		t.Error("layer survived dispose")
	}
	g.Dispose()
}
