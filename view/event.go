package view

import "github.com/gogpu/gpucontext"

// Event is a window input event. The set of implementations is closed:
// KeyEvent, MouseButtonEvent, CursorMovedEvent, ScrollEvent, ResizedEvent,
// ScaleFactorChangedEvent and CloseRequestedEvent.
type Event interface {
	event()
}

// KeyEvent is a key press or release.
type KeyEvent struct {
	Key     gpucontext.Key
	Pressed bool
}

// MouseButtonEvent is a mouse button press or release.
type MouseButtonEvent struct {
	Button  gpucontext.MouseButton
	Pressed bool
}

// CursorMovedEvent carries the absolute cursor position in surface pixels,
// origin top-left, Y growing downward.
type CursorMovedEvent struct {
	X, Y float64
}

// ScrollEvent is a vertical wheel or touchpad scroll. Positive Delta means
// scrolling up (away from the user), which zooms in.
type ScrollEvent struct {
	Delta float64
	Mode  gpucontext.ScrollDeltaMode
}

// ResizedEvent reports the new surface size in pixels.
type ResizedEvent struct {
	Width, Height uint32
}

// ScaleFactorChangedEvent reports the new inner surface size after a DPI
// change.
type ScaleFactorChangedEvent struct {
	Width, Height uint32
}

// CloseRequestedEvent asks the run loop to stop.
type CloseRequestedEvent struct{}

func (KeyEvent) event()                {}
func (MouseButtonEvent) event()        {}
func (CursorMovedEvent) event()        {}
func (ScrollEvent) event()             {}
func (ResizedEvent) event()            {}
func (ScaleFactorChangedEvent) event() {}
func (CloseRequestedEvent) event()     {}

// NormalizeScroll reduces a scroll delta of any unit to a zoom direction:
// +1 zooms in for a positive delta, -1 zooms out otherwise, including a zero
// delta. Line, pixel and page deltas differ only in magnitude, which is
// ignored so that one notch or one touchpad event is always one zoom step.
func NormalizeScroll(delta float64, _ gpucontext.ScrollDeltaMode) int {
	if delta > 0 {
		return 1
	}
	return -1
}
