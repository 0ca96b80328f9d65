// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package view

import (
	"github.com/gogpu/boardview"
)

// ItemKind is the stable type tag of a document item. Painters register
// against kinds; the engine never inspects item types reflectively.
type ItemKind string

// Item is one drawable element of a document. Implementations live in
// the parsing layer; the engine only needs the kind tag for painter
// dispatch. Text-bearing items must carry pre-shaped polyline geometry;
// text shaping is external.
type Item interface {
	Kind() ItemKind
}

// Document is a finite, restartable sequence of drawable items,
// produced by the external parsing layer.
type Document interface {
	Items() []Item
}

// Theme supplies the background and named fallback colors used when a
// shape carries no color of its own.
type Theme interface {
	Background() boardview.Color
	LayerColor(name string) boardview.Color
}

// ItemPainter turns one document item into primitive draw calls.
// Painters are stateless per call beyond reading shared state from the
// owning DocumentPainter; a single item may emit any number of
// primitives.
type ItemPainter interface {
	// Kinds returns the item kinds this painter handles.
	Kinds() []ItemKind

	// LayersFor reports which named view layers the item contributes
	// to.
	LayersFor(item Item) []string

	// Paint emits the item's primitives for one layer through the
	// renderer.
	Paint(r boardview.Renderer, layer *Layer, item Item)
}

// DocumentPainter dispatches document items to registered painters and
// compiles one render layer per view layer.
type DocumentPainter struct {
	renderer boardview.Renderer
	theme    Theme
	painters map[ItemKind]ItemPainter
}

// NewDocumentPainter creates a painter dispatcher for a renderer and
// theme.
func NewDocumentPainter(r boardview.Renderer, theme Theme) *DocumentPainter {
	return &DocumentPainter{
		renderer: r,
		theme:    theme,
		painters: make(map[ItemKind]ItemPainter),
	}
}

// Register adds a painter for every kind it reports. A later
// registration for the same kind replaces the earlier one.
func (dp *DocumentPainter) Register(painters ...ItemPainter) {
	for _, p := range painters {
		for _, k := range p.Kinds() {
			dp.painters[k] = p
		}
	}
}

// PainterFor returns the painter registered for a kind, or nil.
func (dp *DocumentPainter) PainterFor(kind ItemKind) ItemPainter {
	return dp.painters[kind]
}

// Theme returns the theme shared with painters.
func (dp *DocumentPainter) Theme() Theme { return dp.theme }

// PaintDocument runs the two-phase paint: classify every document item
// onto the view layers its painter reports, then paint each layer's
// items into one compiled render layer.
//
// Items with no registered painter are logged and skipped; a document
// with unrecognized item kinds still renders everything it can.
// Re-painting discards each layer's previous graphics and repeats the
// full pass; there is no incremental update.
func (dp *DocumentPainter) PaintDocument(doc Document, layers *LayerSet) {
	dp.classify(doc, layers)
	for _, layer := range layers.InDisplayOrder() {
		dp.paintLayer(layer)
	}
}

// classify pushes every item onto the layers it belongs to.
func (dp *DocumentPainter) classify(doc Document, layers *LayerSet) {
	for _, l := range layers.Layers() {
		l.Clear()
	}
	for _, item := range doc.Items() {
		p := dp.painters[item.Kind()]
		if p == nil {
			boardview.Logger().Warn("no painter for item kind, skipping",
				"kind", string(item.Kind()))
			continue
		}
		for _, name := range p.LayersFor(item) {
			l := layers.ByName(name)
			if l == nil {
				boardview.Logger().Warn("painter names unknown view layer, skipping",
					"kind", string(item.Kind()), "layer", name)
				continue
			}
			l.Items = append(l.Items, item)
		}
	}
}

// paintLayer compiles one view layer: every classified item paints
// inside its own bounding-box scope, and the resulting box is recorded
// against the item for hit-testing.
func (dp *DocumentPainter) paintLayer(layer *Layer) {
	r := dp.renderer
	r.StartLayer(layer.Name)

	r.Push()
	st := r.State()
	st.Fill = layer.Color.Or(dp.theme.LayerColor(layer.Name))
	st.Stroke = st.Fill

	for _, item := range layer.Items {
		p := dp.painters[item.Kind()]
		if p == nil {
			continue
		}
		r.StartBBox()
		p.Paint(r, layer, item)
		layer.SetItemBBox(item, r.EndBBox())
	}
	r.Pop()

	layer.AttachGraphics(r.EndLayer())
	boardview.Logger().Debug("view layer painted",
		"layer", layer.Name, "items", len(layer.Items))
}
