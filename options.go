package mandelbrot

import (
	"github.com/gogpu/mandelbrot/render"
	"github.com/gogpu/mandelbrot/view"
)

// ViewerOption configures a Viewer.
type ViewerOption func(*viewerOptions)

type viewerOptions struct {
	initial    view.State
	controller []view.ControllerOption
	render     []render.Option
}

func defaultViewerOptions() viewerOptions {
	return viewerOptions{initial: view.NewState()}
}

// WithInitialState starts the viewer at s instead of the default view. The
// aspect ratio is always taken from the target size.
func WithInitialState(s view.State) ViewerOption {
	return func(o *viewerOptions) {
		if s.Scale > 0 {
			o.initial = s
		}
	}
}

// WithControllerOptions passes options to the view controller.
func WithControllerOptions(opts ...view.ControllerOption) ViewerOption {
	return func(o *viewerOptions) {
		o.controller = append(o.controller, opts...)
	}
}

// WithRenderOptions passes options to the renderer.
func WithRenderOptions(opts ...render.Option) ViewerOption {
	return func(o *viewerOptions) {
		o.render = append(o.render, opts...)
	}
}
