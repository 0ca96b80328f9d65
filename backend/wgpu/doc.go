// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu implements the GPU-accelerated renderer backend.
//
// Primitives are grouped by kind (filled circles, stroked polylines,
// filled polygons) and tesselated into a small number of vertex/index
// buffer sets per layer at compile time. Drawing a layer uploads nothing
// but a single uniform block: the combined projection x view x layer
// matrix, a depth value for painter's-algorithm layering, and a global
// alpha used for highlight dimming.
//
// The backend needs a HAL device and queue from the host, either
// directly via New or through a gpucontext.DeviceProvider registered
// with SetDeviceProvider before backend selection. Each frame the host
// acquires its surface texture and hands the view to SetRenderTarget;
// Clear and layer renders encode passes against that view.
package wgpu
