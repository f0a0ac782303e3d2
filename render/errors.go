// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "errors"

var (
	// ErrNoAdapter is returned by Open when no adapter can present to the
	// surface.
	ErrNoAdapter = errors.New("render: no compatible GPU adapter")

	// ErrDeviceUnavailable is returned when an adapter was found but a
	// device could not be opened on it.
	ErrDeviceUnavailable = errors.New("render: GPU device unavailable")

	// ErrNoHALProvider is returned by FromProvider when the host does not
	// expose HAL device and queue handles.
	ErrNoHALProvider = errors.New("render: provider does not expose HAL device")

	// ErrNoSurfaceFormat is returned when the surface reports no supported
	// texture formats for the adapter.
	ErrNoSurfaceFormat = errors.New("render: surface has no supported formats")

	// ErrZeroSize is returned when a surface is configured with a zero
	// dimension.
	ErrZeroSize = errors.New("render: zero surface size")

	// ErrShaderCompile wraps WGSL compilation failures.
	ErrShaderCompile = errors.New("render: shader compilation failed")

	// ErrOutOfMemory is returned by Render when the GPU runs out of memory.
	// The run loop must stop.
	ErrOutOfMemory = errors.New("render: GPU out of memory")

	// ErrDestroyed is returned when a Renderer is used after Destroy.
	ErrDestroyed = errors.New("render: renderer destroyed")
)
