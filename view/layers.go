// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package view

import (
	"fmt"
	"slices"

	"github.com/gogpu/boardview"
)

// OverlayLayerName is the reserved name of the always-on-top overlay
// layer every LayerSet owns. Selection highlights draw into it.
const OverlayLayerName = ":overlay"

// Visibility is either a fixed boolean or a zero-argument predicate
// re-evaluated on every query. Predicates express visibility derived
// from other layers' state, such as "via holes visible iff any copper
// layer is visible".
type Visibility struct {
	value bool
	fn    func() bool
}

// Shown is a fixed visible Visibility.
func Shown() Visibility { return Visibility{value: true} }

// Hidden is a fixed invisible Visibility.
func Hidden() Visibility { return Visibility{} }

// VisibleWhen derives visibility from a predicate evaluated on every
// query. Predicates must be cheap; they run far less often than frames
// draw, but on every hit-test and display-order walk.
func VisibleWhen(fn func() bool) Visibility { return Visibility{fn: fn} }

// Get evaluates the visibility.
func (v Visibility) Get() bool {
	if v.fn != nil {
		return v.fn()
	}
	return v.value
}

// Layer is one named semantic view layer (for example "wires" or
// "silkscreen"): the items classified onto it, their layer-local
// bounding boxes for hit-testing, and the compiled render layer.
type Layer struct {
	Name        string
	Visibility  Visibility
	Interactive bool
	Highlighted bool
	Color       boardview.Color

	// Opacity scales the layer's alpha on every draw, before any
	// highlight dimming.
	Opacity float64

	// Items lists the document items classified onto this layer, in
	// paint order.
	Items []Item

	// Graphics is the compiled render layer, nil until painted.
	// The view layer is the sole owner; attaching a replacement
	// disposes the previous one.
	Graphics boardview.RenderLayer

	bboxes   map[Item]boardview.BBox
	disposed bool
}

// NewLayer creates a visible layer.
func NewLayer(name string, interactive bool, color boardview.Color) *Layer {
	return &Layer{
		Name:        name,
		Visibility:  Shown(),
		Interactive: interactive,
		Color:       color,
		Opacity:     1,
		bboxes:      make(map[Item]boardview.BBox),
	}
}

// Visible evaluates the layer's visibility.
func (l *Layer) Visible() bool { return l.Visibility.Get() }

// SetItemBBox records an item's bounding box on this layer. The box's
// Context is set to the item so hit-test results resolve back to it.
func (l *Layer) SetItemBBox(item Item, b boardview.BBox) {
	b.Context = item
	l.bboxes[item] = b
}

// ItemBBox returns the recorded box for an item.
func (l *Layer) ItemBBox(item Item) (boardview.BBox, bool) {
	b, ok := l.bboxes[item]
	return b, ok
}

// BBox returns the union of all recorded item boxes.
func (l *Layer) BBox() boardview.BBox {
	var out boardview.BBox
	for _, b := range l.bboxes {
		out = out.Union(b)
	}
	out.Context = l
	return out
}

// AttachGraphics hands the layer a freshly compiled render layer,
// disposing the previous one.
func (l *Layer) AttachGraphics(g boardview.RenderLayer) {
	if l.Graphics != nil {
		l.Graphics.Dispose()
	}
	l.Graphics = g
}

// Clear discards items, boxes, and compiled graphics, keeping the
// layer's identity and flags for the next paint pass.
func (l *Layer) Clear() {
	l.Items = nil
	l.bboxes = make(map[Item]boardview.BBox)
	if l.Graphics != nil {
		l.Graphics.Dispose()
		l.Graphics = nil
	}
}

// Dispose releases the layer's graphics. Idempotent.
func (l *Layer) Dispose() {
	if l.disposed {
		boardview.Logger().Warn("view layer disposed twice", "layer", l.Name)
		return
	}
	l.disposed = true
	l.Clear()
}

// LayerSet is the ordered collection of view layers for one document,
// plus the overlay layer that always draws last.
type LayerSet struct {
	order   []*Layer
	byName  map[string]*Layer
	overlay *Layer

	disposed bool
}

// NewLayerSet creates an empty set with its overlay layer.
func NewLayerSet() *LayerSet {
	s := &LayerSet{byName: make(map[string]*Layer)}
	s.overlay = NewLayer(OverlayLayerName, false, boardview.RGBA(1, 1, 1, 0.8))
	return s
}

// Add appends layers in front-to-back authoring order. Adding a
// duplicate or reserved name panics: layer sets are authored once at
// document load, so a collision is a programmer error.
func (s *LayerSet) Add(layers ...*Layer) {
	for _, l := range layers {
		if l.Name == OverlayLayerName {
			panic(fmt.Sprintf("view: layer name %q is reserved", l.Name))
		}
		if _, dup := s.byName[l.Name]; dup {
			panic(fmt.Sprintf("view: duplicate layer name %q", l.Name))
		}
		s.order = append(s.order, l)
		s.byName[l.Name] = l
	}
}

// ByName returns the layer with the given name, or nil.
func (s *LayerSet) ByName(name string) *Layer {
	if name == OverlayLayerName {
		return s.overlay
	}
	return s.byName[name]
}

// Overlay returns the always-on-top overlay layer.
func (s *LayerSet) Overlay() *Layer { return s.overlay }

// Layers returns the layers in front-to-back authoring order, without
// the overlay.
func (s *LayerSet) Layers() []*Layer {
	return slices.Clone(s.order)
}

// InDisplayOrder returns the layers back-to-front as they must draw:
// non-highlighted layers in reverse authoring order, then highlighted
// layers in reverse authoring order, then the overlay. Highlighted
// content and the selection overlay therefore always draw on top,
// regardless of authoring order.
func (s *LayerSet) InDisplayOrder() []*Layer {
	out := make([]*Layer, 0, len(s.order)+1)
	for i := len(s.order) - 1; i >= 0; i-- {
		if !s.order[i].Highlighted {
			out = append(out, s.order[i])
		}
	}
	for i := len(s.order) - 1; i >= 0; i-- {
		if s.order[i].Highlighted {
			out = append(out, s.order[i])
		}
	}
	return append(out, s.overlay)
}

// Highlight sets the highlighted flag on exactly the named layers and
// clears it everywhere else. Highlight() clears all highlights.
func (s *LayerSet) Highlight(names ...string) {
	for _, l := range s.order {
		l.Highlighted = slices.Contains(names, l.Name)
	}
}

// AnyHighlighted reports whether any layer is currently highlighted.
// The viewer uses it to decide whether non-highlighted layers draw
// dimmed.
func (s *LayerSet) AnyHighlighted() bool {
	for _, l := range s.order {
		if l.Highlighted {
			return true
		}
	}
	return false
}

// QueryPoint returns every stored bounding box containing p, walking
// only layers that are interactive and currently visible, in authoring
// order. Box Contexts carry the owning items.
func (s *LayerSet) QueryPoint(p boardview.Vec2) []boardview.BBox {
	var hits []boardview.BBox
	for _, l := range s.order {
		if !l.Interactive || !l.Visible() {
			continue
		}
		for _, item := range l.Items {
			if b, ok := l.bboxes[item]; ok && b.Contains(p) {
				hits = append(hits, b)
			}
		}
	}
	return hits
}

// QueryItemBBoxes returns the per-layer boxes recorded for an item; an
// item can span multiple layers.
func (s *LayerSet) QueryItemBBoxes(item Item) []boardview.BBox {
	var out []boardview.BBox
	for _, l := range s.order {
		if b, ok := l.bboxes[item]; ok {
			out = append(out, b)
		}
	}
	return out
}

// Dispose releases every layer including the overlay. Idempotent.
func (s *LayerSet) Dispose() {
	if s.disposed {
		boardview.Logger().Warn("layer set disposed twice")
		return
	}
	s.disposed = true
	for _, l := range s.order {
		l.Dispose()
	}
	s.overlay.Dispose()
}
