package main

import (
	"errors"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/mandelbrot/render"
)

var errNoSurfaceView = errors.New("mandelbrot: no surface view for this frame")

// hostTarget renders into the surface view gogpu hands out for the current
// frame. gogpu acquires, presents and reconfigures its own surface, so
// Configure only tracks the size and Present does nothing.
type hostTarget struct {
	format        gputypes.TextureFormat
	width, height uint32

	view hal.TextureView
}

func newHostTarget(format gputypes.TextureFormat, width, height uint32) (*hostTarget, error) {
	if format == gputypes.TextureFormatUndefined {
		return nil, render.ErrNoSurfaceFormat
	}
	if width == 0 || height == 0 {
		return nil, render.ErrZeroSize
	}
	return &hostTarget{format: format, width: width, height: height}, nil
}

// begin installs the host's view for one frame; end removes it.
func (t *hostTarget) begin(v hal.TextureView) { t.view = v }
func (t *hostTarget) end()                    { t.view = nil }

func (t *hostTarget) Format() gputypes.TextureFormat { return t.format }

func (t *hostTarget) Size() (uint32, uint32) { return t.width, t.height }

func (t *hostTarget) Configure(width, height uint32) error {
	if width == 0 || height == 0 {
		return render.ErrZeroSize
	}
	t.width, t.height = width, height
	return nil
}

func (t *hostTarget) Acquire() (*render.Frame, error) {
	if t.view == nil {
		return nil, errNoSurfaceView
	}
	return &render.Frame{View: t.view}, nil
}

func (t *hostTarget) Present(*render.Frame) error { return nil }

func (t *hostTarget) Discard(*render.Frame) {}

var _ render.Target = (*hostTarget)(nil)
