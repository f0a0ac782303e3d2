package mandelbrot

import (
	"errors"
	"fmt"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/mandelbrot/render"
	"github.com/gogpu/mandelbrot/view"
)

// Viewer ties the view state, its controller and the renderer into one
// run-loop participant. All methods must be called from the goroutine that
// owns the window.
type Viewer struct {
	state      view.State
	controller *view.Controller
	renderer   *render.Renderer
}

// NewViewer builds a viewer that draws into target. The controller starts
// with the target's size and the state's aspect ratio follows it.
func NewViewer(device hal.Device, queue hal.Queue, target render.Target, opts ...ViewerOption) (*Viewer, error) {
	o := defaultViewerOptions()
	for _, opt := range opts {
		opt(&o)
	}

	w, h := target.Size()
	ctrlOpts := append([]view.ControllerOption{view.WithSurfaceSize(w, h)}, o.controller...)
	v := &Viewer{
		state:      o.initial,
		controller: view.NewController(ctrlOpts...),
	}
	v.controller.Resize(w, h, &v.state)

	r, err := render.New(device, queue, target, v.state, o.render...)
	if err != nil {
		return nil, fmt.Errorf("mandelbrot: create renderer: %w", err)
	}
	v.renderer = r

	Logger().Debug("mandelbrot: viewer ready", "width", w, "height", h, "state", v.state.String())
	return v, nil
}

// HandleEvent feeds one window event to the viewer and reports whether the
// window should close. Input events go to the controller; resize and
// close requests are handled here.
func (v *Viewer) HandleEvent(ev view.Event) (quit bool) {
	if v.controller.Input(ev, &v.state) {
		return false
	}
	switch e := ev.(type) {
	case view.CloseRequestedEvent:
		return true
	case view.ResizedEvent:
		v.resizeOrWarn(e.Width, e.Height)
	case view.ScaleFactorChangedEvent:
		v.resizeOrWarn(e.Width, e.Height)
	}
	return false
}

func (v *Viewer) resizeOrWarn(width, height uint32) {
	if err := v.Resize(width, height); err != nil {
		Logger().Warn("mandelbrot: resize failed", "width", width, "height", height, "err", err)
	}
}

// Resize reconfigures the surface and updates the aspect ratio. A zero
// dimension is ignored.
func (v *Viewer) Resize(width, height uint32) error {
	if width == 0 || height == 0 {
		return nil
	}
	if err := v.renderer.Resize(width, height); err != nil {
		return err
	}
	v.controller.Resize(width, height, &v.state)
	return nil
}

// Frame uploads the current view and draws it. Only errors that must end
// the run loop are returned; anything else is logged and the next frame
// is attempted.
func (v *Viewer) Frame() error {
	err := v.renderer.Render(v.state)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, render.ErrOutOfMemory), errors.Is(err, render.ErrDestroyed):
		return err
	default:
		Logger().Warn("mandelbrot: frame failed", "err", err)
		return nil
	}
}

// State returns the current view.
func (v *Viewer) State() view.State { return v.state }

// Controller returns the viewer's input controller.
func (v *Viewer) Controller() *view.Controller { return v.controller }

// FrameCount returns the number of frames presented.
func (v *Viewer) FrameCount() uint64 { return v.renderer.FrameCount() }

// Close releases the renderer's GPU resources. The device and target are
// left to their owners.
func (v *Viewer) Close() {
	v.renderer.Destroy()
}
