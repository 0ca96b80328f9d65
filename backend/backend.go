// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backend provides the renderer backend registry.
//
// Concrete backends register themselves in init functions; hosts select
// one by name or take the best available via Default. All backends
// implement boardview.Renderer and are interchangeable: the rest of the
// engine never branches on backend type.
package backend

import (
	"errors"

	"github.com/gogpu/boardview"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is
	// not registered.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrDeviceUnavailable is returned when a backend's graphics
	// device or surface cannot be created. This is a fatal setup
	// error; it is never retried.
	ErrDeviceUnavailable = errors.New("backend: graphics device unavailable")
)

// Backend name constants.
const (
	// BackendCanvas is the immediate-surface path-batching backend.
	BackendCanvas = "canvas"
	// BackendWGPU is the GPU vertex-buffer backend (gogpu/wgpu).
	BackendWGPU = "wgpu"
	// BackendNull is the recording no-op backend used for headless
	// testing.
	BackendNull = "null"
)

// Factory creates a renderer sized for the given surface dimensions.
// A factory returns an error when the backend's device cannot be
// created (for example, no GPU adapter is present).
type Factory func(width, height int) (boardview.Renderer, error)
