package view

// ControllerOption configures a Controller during creation.
//
// Example:
//
//	c := view.NewController(
//	    view.WithScaleStep(1.1),
//	    view.WithSurfaceSize(1280, 720),
//	)
type ControllerOption func(*controllerOptions)

type controllerOptions struct {
	scaleStep     float32
	moveStep      float32
	width, height uint32
}

func defaultControllerOptions() controllerOptions {
	return controllerOptions{
		scaleStep: ScaleStep,
		moveStep:  MoveStep,
		width:     DefaultSurfaceWidth,
		height:    DefaultSurfaceHeight,
	}
}

// WithScaleStep sets the multiplicative zoom step. Values <= 1 are ignored
// since they would invert or stall zooming.
func WithScaleStep(step float32) ControllerOption {
	return func(o *controllerOptions) {
		if step > 1 {
			o.scaleStep = step
		}
	}
}

// WithMoveStep sets the additive keyboard pan step. Values <= 0 are ignored.
func WithMoveStep(step float32) ControllerOption {
	return func(o *controllerOptions) {
		if step > 0 {
			o.moveStep = step
		}
	}
}

// WithSurfaceSize sets the initial surface size used to convert cursor
// motion into plane units. Zero dimensions are ignored.
func WithSurfaceSize(width, height uint32) ControllerOption {
	return func(o *controllerOptions) {
		if width > 0 && height > 0 {
			o.width, o.height = width, height
		}
	}
}
