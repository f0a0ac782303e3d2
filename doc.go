// Package mandelbrot is an interactive GPU viewer for the Mandelbrot set.
//
// # Overview
//
// The whole image is computed in a fragment shader over one full-viewport
// quad. The CPU side only keeps a small view uniform (offset, scale,
// aspect ratio) up to date from keyboard, mouse and scroll input and
// uploads it once per frame.
//
// # Packages
//
//   - geometry: the static quad and its vertex layout
//   - view: the view uniform, input events and the controller that maps
//     events to view changes
//   - render: device opening, surface negotiation, the GPU resource group
//     and the per-frame protocol
//   - escape: a CPU implementation of the shading stage for headless
//     snapshots
//
// This package glues them into a [Viewer] driven by the host's run loop.
//
// # Controls
//
//   - = / - and the scroll wheel zoom in and out by 5% per step
//   - W A S D move the view by 0.05 plane units
//   - dragging with the left mouse button pans
//
// # Quick Start
//
//	dev, _ := render.FromProvider(app.GPUContextProvider())
//	v, _ := mandelbrot.NewViewer(dev.Device, dev.Queue, target)
//	defer v.Close()
//	view.Bind(app.EventSource(), func(ev view.Event) {
//		if v.HandleEvent(ev) {
//			app.Quit()
//		}
//	})
//	app.OnDraw(func(*gogpu.Context) { _ = v.Frame() })
package mandelbrot

// Version is the current release.
const Version = "0.1.0"
