package view

import "github.com/gogpu/gpucontext"

// Bind registers callbacks on src that translate platform events into
// Events and deliver them to sink. Callbacks fire on the window goroutine,
// so sink runs there as well.
//
// gpucontext reports scroll with positive values meaning "down"; Bind
// flips the sign so that ScrollEvent.Delta > 0 means zoom in. When src also
// implements gpucontext.ScrollEventSource, its detailed scroll events (with
// delta mode) are used instead of the plain OnScroll callback.
func Bind(src gpucontext.EventSource, sink func(Event)) {
	src.OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		sink(KeyEvent{Key: key, Pressed: true})
	})
	src.OnKeyRelease(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		sink(KeyEvent{Key: key, Pressed: false})
	})
	src.OnMouseMove(func(x, y float64) {
		sink(CursorMovedEvent{X: x, Y: y})
	})
	// Button callbacks carry the position; deliver it first so a drag is
	// anchored at the press point and ends at the release point.
	src.OnMousePress(func(button gpucontext.MouseButton, x, y float64) {
		sink(CursorMovedEvent{X: x, Y: y})
		sink(MouseButtonEvent{Button: button, Pressed: true})
	})
	src.OnMouseRelease(func(button gpucontext.MouseButton, x, y float64) {
		sink(CursorMovedEvent{X: x, Y: y})
		sink(MouseButtonEvent{Button: button, Pressed: false})
	})
	src.OnResize(func(width, height int) {
		sink(ResizedEvent{Width: clampSize(width), Height: clampSize(height)})
	})

	if ss, ok := src.(gpucontext.ScrollEventSource); ok {
		ss.OnScrollEvent(func(ev gpucontext.ScrollEvent) {
			sink(ScrollEvent{Delta: -ev.DeltaY, Mode: ev.DeltaMode})
		})
		return
	}
	src.OnScroll(func(_, dy float64) {
		sink(ScrollEvent{Delta: -dy, Mode: gpucontext.ScrollDeltaLine})
	})
}

func clampSize(v int) uint32 {
	if v < 0 {
		return 0
	}
	return uint32(v)
}
