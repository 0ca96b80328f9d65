// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"fmt"
	"sync"

	"github.com/gogpu/boardview"
)

// registry holds registered backend factories.
var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)

	// Priority order for backend selection (first available wins).
	// The GPU backend is fastest; canvas is the software fallback.
	// The null backend never participates in Default selection.
	backendPriority = []string{BackendWGPU, BackendCanvas}
)

// Register registers a backend factory with the given name.
// This is typically called from init functions in backend packages.
// If a backend with the same name is already registered, it is replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns a list of registered backend names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// New creates a renderer from the named backend.
// Returns ErrBackendNotAvailable if the name is not registered, or the
// factory's own error if device creation fails.
func New(name string, width, height int) (boardview.Renderer, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	return factory(width, height)
}

// Default creates a renderer from the best available backend in priority
// order, falling back to the null backend when nothing else can
// initialize.
func Default(width, height int) (boardview.Renderer, error) {
	for _, name := range backendPriority {
		if !IsRegistered(name) {
			continue
		}
		r, err := New(name, width, height)
		if err != nil {
			boardview.Logger().Info("backend unavailable, trying next",
				"backend", name, "error", err)
			continue
		}
		boardview.Logger().Info("backend selected", "backend", name)
		return r, nil
	}
	return New(BackendNull, width, height)
}
