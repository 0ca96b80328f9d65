// Package boardview is a retained-mode 2D rendering engine for viewing
// large electronic schematics and circuit-board layouts.
//
// Drawing primitives are grouped into named layers and compiled once into
// backend-resident graphics objects; redrawing after camera, visibility,
// or highlight changes replays the compiled layers without re-walking the
// source document.
//
// The root package holds the geometry values (Vec2, Matrix3, Angle,
// BBox), primitive shapes, the render state stack, the Camera, and the
// Renderer abstraction. Concrete backends live under backend/: an
// immediate-surface path-batching backend (backend/canvas), a GPU
// vertex-buffer backend (backend/wgpu), and a recording no-op backend for
// headless tests. The view package couples a renderer to a document
// through view layers, a viewport, painters, and the Viewer orchestrator.
//
// A minimal host looks like:
//
//	v := view.NewViewer(view.WithBackend(backend.BackendCanvas))
//	if err := v.Setup(); err != nil {
//	    log.Fatal(err)
//	}
//	v.Resize(800, 600)
//	if err := v.Load(doc, theme); err != nil {
//	    log.Fatal(err)
//	}
//	// Host frame loop:
//	v.Tick()
//
// boardview never parses files, shapes text, or owns application UI;
// those are external collaborators.
package boardview
