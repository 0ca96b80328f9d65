// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package view couples a boardview renderer to a document.
//
// It provides the named, orderable, independently visible and
// highlightable view layers that hold compiled graphics and per-item
// bounding boxes; the viewport that binds the camera to the host
// surface and its pointer gestures; the document painter dispatch that
// classifies and paints items through per-kind painters; the
// level-of-detail grid; and the Viewer orchestrator that runs the draw
// loop and the pick/selection flow.
package view
