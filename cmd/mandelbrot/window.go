package main

import (
	"fmt"
	"math"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
	"github.com/spf13/pflag"

	"github.com/gogpu/mandelbrot"
	"github.com/gogpu/mandelbrot/render"
	"github.com/gogpu/mandelbrot/view"
)

type windowFlags struct {
	width, height int
	title         string
}

// apply overlays the flags the user set explicitly onto c.
func (f windowFlags) apply(flags *pflag.FlagSet, c config) config {
	if flags.Changed("width") {
		c.Window.Width = f.width
	}
	if flags.Changed("height") {
		c.Window.Height = f.height
	}
	if flags.Changed("title") {
		c.Window.Title = f.title
	}
	return c
}

func runWindow(c config) error {
	if err := c.validate(); err != nil {
		return err
	}

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(c.Window.Title).
		WithSize(c.Window.Width, c.Window.Height).
		WithContinuousRender(true))

	loop := &windowLoop{
		provider: app.GPUContextProvider,
		scale:    app.ScaleFactor,
		opts:     c.viewerOptions(),
	}

	view.Bind(app.EventSource(), func(ev view.Event) {
		if loop.input(ev) {
			app.Quit()
		}
	})

	app.OnDraw(func(dc *gogpu.Context) {
		sv := dc.SurfaceView()
		if sv == nil {
			return
		}
		sw, sh := dc.SurfaceSize()
		if err := loop.draw(sv.HalTextureView(), sw, sh); err != nil {
			app.Quit()
		}
	})

	app.OnClose(loop.close)

	if err := app.Run(); err != nil {
		return err
	}
	return loop.err
}

// windowLoop is the state shared by the window callbacks. The viewer works
// in physical surface pixels; the host reports pointer and resize events in
// logical pixels, so input converts them with the current scale factor.
type windowLoop struct {
	provider func() gpucontext.DeviceProvider
	scale    func() float64
	opts     []mandelbrot.ViewerOption

	viewer *mandelbrot.Viewer
	target *hostTarget
	err    error
}

// input routes one event and reports whether the window should close.
func (l *windowLoop) input(ev view.Event) bool {
	if k, ok := ev.(view.KeyEvent); ok && k.Pressed && k.Key == gpucontext.KeyEscape {
		return true
	}
	// Events before the first frame have nothing to act on.
	if l.viewer == nil {
		return false
	}
	return l.viewer.HandleEvent(toPhysical(ev, l.scale()))
}

// draw renders one frame into sv, creating the viewer on first use. It
// returns the error that ends the loop, if any.
func (l *windowLoop) draw(sv hal.TextureView, width, height uint32) error {
	if l.err != nil {
		return l.err
	}
	if sv == nil || width == 0 || height == 0 {
		return nil
	}

	if l.viewer == nil {
		viewer, target, err := newWindowViewer(l.provider(), width, height, l.opts...)
		if err != nil {
			l.err = err
			return err
		}
		l.viewer, l.target = viewer, target
		mandelbrot.Logger().Info("mandelbrot: window ready", "width", width, "height", height)
	}

	if err := l.viewer.Resize(width, height); err != nil {
		mandelbrot.Logger().Warn("mandelbrot: resize", "err", err)
	}

	l.target.begin(sv)
	err := l.viewer.Frame()
	l.target.end()
	if err != nil {
		l.err = err
	}
	return err
}

func (l *windowLoop) close() {
	if l.viewer == nil {
		return
	}
	mandelbrot.Logger().Debug("mandelbrot: closing",
		"frames", l.viewer.FrameCount(), "state", l.viewer.State().String())
	l.viewer.Close()
	l.viewer = nil
}

// toPhysical rescales the pixel quantities of a logical-pixel event.
func toPhysical(ev view.Event, scale float64) view.Event {
	if scale <= 0 || scale == 1 {
		return ev
	}
	switch e := ev.(type) {
	case view.CursorMovedEvent:
		return view.CursorMovedEvent{X: e.X * scale, Y: e.Y * scale}
	case view.ResizedEvent:
		return view.ResizedEvent{Width: scaleSize(e.Width, scale), Height: scaleSize(e.Height, scale)}
	}
	return ev
}

func scaleSize(v uint32, scale float64) uint32 {
	return uint32(math.Round(float64(v) * scale))
}

// newWindowViewer adopts the window's device and builds a viewer drawing
// into the host surface.
func newWindowViewer(provider gpucontext.DeviceProvider, width, height uint32, opts ...mandelbrot.ViewerOption) (*mandelbrot.Viewer, *hostTarget, error) {
	if provider == nil {
		return nil, nil, render.ErrNoHALProvider
	}
	dev, err := render.FromProvider(provider)
	if err != nil {
		return nil, nil, err
	}
	target, err := newHostTarget(provider.SurfaceFormat(), width, height)
	if err != nil {
		return nil, nil, err
	}
	v, err := mandelbrot.NewViewer(dev.Device, dev.Queue, target, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("create viewer: %w", err)
	}
	return v, target, nil
}
