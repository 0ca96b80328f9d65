// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/boardview"
	"github.com/gogpu/boardview/backend"
)

// halProvider is implemented by device providers that expose the
// underlying HAL device and queue. gogpu's context providers do.
type halProvider interface {
	HALDevice() hal.Device
	HALQueue() hal.Queue
}

var (
	providerMu sync.RWMutex
	provider   gpucontext.DeviceProvider
)

// SetDeviceProvider registers the host's GPU device provider. The
// backend registry factory uses it when this backend is selected by
// name or priority; hosts that construct the renderer directly can call
// New or FromProvider instead.
func SetDeviceProvider(p gpucontext.DeviceProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	provider = p
}

func init() {
	backend.Register(backend.BackendWGPU, func(width, height int) (boardview.Renderer, error) {
		providerMu.RLock()
		p := provider
		providerMu.RUnlock()
		if p == nil {
			return nil, fmt.Errorf("%w: no device provider registered", backend.ErrDeviceUnavailable)
		}
		return FromProvider(p, width, height)
	})
}

// FromProvider creates a GPU renderer from a gpucontext device provider.
// Returns backend.ErrDeviceUnavailable if the provider does not expose a
// HAL device.
func FromProvider(p gpucontext.DeviceProvider, width, height int) (*Renderer, error) {
	hp, ok := p.(halProvider)
	if !ok {
		return nil, fmt.Errorf("%w: provider does not expose a HAL device", backend.ErrDeviceUnavailable)
	}
	device, queue := hp.HALDevice(), hp.HALQueue()
	if device == nil || queue == nil {
		return nil, fmt.Errorf("%w: provider returned a nil device or queue", backend.ErrDeviceUnavailable)
	}
	return New(device, queue, width, height)
}
