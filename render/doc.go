// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render draws the Mandelbrot view on the GPU.
//
// # Resource group
//
// A Renderer owns every GPU object the view needs (uniform buffer, bind
// group and its layout, shader module, pipeline layout, render pipeline,
// vertex and index buffers). They are created together in New and released
// together, in reverse order, by Destroy. There is no per-object
// reference counting.
//
// # Frame protocol
//
// Each call to Render:
//
//  1. acquires the next presentable image from the Target,
//  2. writes the current view.State into the uniform buffer,
//  3. records one render pass that clears to white and draws the quad
//     with a single indexed draw (6 indices, 1 instance),
//  4. submits the commands and presents the image.
//
// Lost or outdated surfaces are reconfigured and the frame is skipped.
// Running out of GPU memory returns ErrOutOfMemory, which callers treat as
// fatal. Any other acquisition failure is logged and the frame is skipped.
//
// # Targets
//
// SurfaceTarget presents to a hal.Surface the renderer configured itself
// (FIFO presentation, first supported format). Hosts that own the window
// surface, such as gogpu, implement Target to hand out their per-frame
// texture view instead.
//
// # Devices
//
// Open picks an adapter compatible with a surface and opens a device on
// it. FromProvider adopts the device of a host application such as
// gogpu, through its gpucontext.DeviceProvider.
//
//	dev, err := render.Open(instance, surface)
//	if err != nil {
//	    return err // fatal: no usable GPU
//	}
//	target, err := render.NewSurfaceTarget(dev, surface, 1600, 1600)
//	...
//	r, err := render.New(dev.Device, dev.Queue, target, view.NewState())
//	...
//	for running {
//	    if err := r.Render(state); errors.Is(err, render.ErrOutOfMemory) {
//	        break
//	    }
//	}
package render
