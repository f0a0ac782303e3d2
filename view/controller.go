package view

import "github.com/gogpu/gpucontext"

const (
	// ScaleStep is the multiplicative zoom step for one key press or one
	// scroll notch.
	ScaleStep float32 = 1.05

	// MoveStep is the additive offset step for one W/A/S/D press, in plane
	// units.
	MoveStep float32 = 0.05

	// DefaultSurfaceWidth and DefaultSurfaceHeight are the surface size
	// assumed until the first resize.
	DefaultSurfaceWidth  = 1600
	DefaultSurfaceHeight = 1600

	// MinScale and MaxScale bound zooming. Past them float32 either
	// overflows or enters the denormal range where a step no longer
	// changes the value.
	MinScale float32 = 1e-30
	MaxScale float32 = 1e30
)

// Controller translates input events into State mutations.
//
// It has two states: idle and panning (left mouse button held). While
// panning, cursor motion drags the plane so that a full-surface drag moves
// the offset by 1/scale. The controller is not safe for concurrent use; it
// belongs to the goroutine that owns the window.
type Controller struct {
	opts controllerOptions

	panning bool
	cursor  [2]float64

	// Live surface size. Cursor deltas are divided by these.
	width, height uint32
}

// NewController returns an idle controller with the cursor at the origin.
func NewController(opts ...ControllerOption) *Controller {
	o := defaultControllerOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Controller{
		opts:   o,
		width:  o.width,
		height: o.height,
	}
}

// Panning reports whether a drag is in progress.
func (c *Controller) Panning() bool { return c.panning }

// Cursor returns the last recorded cursor position.
func (c *Controller) Cursor() (x, y float64) { return c.cursor[0], c.cursor[1] }

// SurfaceSize returns the surface size used for pan conversion.
func (c *Controller) SurfaceSize() (width, height uint32) { return c.width, c.height }

// Input applies ev to s and reports whether the event was consumed.
// Unconsumed events leave both s and the controller untouched, so the
// caller may treat them as window-level commands.
func (c *Controller) Input(ev Event, s *State) bool {
	switch e := ev.(type) {
	case KeyEvent:
		if !e.Pressed {
			return false
		}
		return c.key(e.Key, s)

	case MouseButtonEvent:
		if e.Button != gpucontext.MouseButtonLeft {
			return false
		}
		c.panning = e.Pressed
		return true

	case CursorMovedEvent:
		if c.panning {
			// Screen Y grows downward, plane Y grows upward.
			s.Offset[0] += float32(c.cursor[0]-e.X) / s.Scale / float32(c.width)
			s.Offset[1] -= float32(c.cursor[1]-e.Y) / s.Scale / float32(c.height)
		}
		c.cursor = [2]float64{e.X, e.Y}
		return true

	case ScrollEvent:
		if NormalizeScroll(e.Delta, e.Mode) > 0 {
			c.zoomIn(s)
		} else {
			c.zoomOut(s)
		}
		return true
	}
	return false
}

func (c *Controller) key(k gpucontext.Key, s *State) bool {
	switch k {
	case gpucontext.KeyEqual:
		c.zoomIn(s)
	case gpucontext.KeyMinus:
		c.zoomOut(s)
	case gpucontext.KeyW:
		s.Offset[1] += c.opts.moveStep
	case gpucontext.KeyA:
		s.Offset[0] -= c.opts.moveStep
	case gpucontext.KeyS:
		s.Offset[1] -= c.opts.moveStep
	case gpucontext.KeyD:
		s.Offset[0] += c.opts.moveStep
	default:
		return false
	}
	return true
}

func (c *Controller) zoomIn(s *State) {
	if next := s.Scale * c.opts.scaleStep; next <= MaxScale {
		s.Scale = next
	}
}

func (c *Controller) zoomOut(s *State) {
	if next := s.Scale / c.opts.scaleStep; next >= MinScale {
		s.Scale = next
	}
}

// Resize records the new surface size and sets the aspect ratio to
// width/height. A zero dimension (minimized window) is ignored and the last
// valid ratio is kept. It reports whether the state changed.
func (c *Controller) Resize(width, height uint32, s *State) bool {
	if width == 0 || height == 0 {
		return false
	}
	c.width, c.height = width, height
	s.AspectRatio = float32(width) / float32(height)
	return true
}
