// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Frame is one acquired presentable image.
type Frame struct {
	// View is the color attachment for this frame.
	View hal.TextureView

	// Suboptimal reports that the image is usable but the target should be
	// reconfigured soon.
	Suboptimal bool

	texture hal.SurfaceTexture
}

// Target is the presentation destination of a Renderer.
//
// Acquire errors are reported unchanged so the renderer can classify them
// (hal.ErrSurfaceLost, hal.ErrSurfaceOutdated, hal.ErrDeviceOutOfMemory).
type Target interface {
	// Format returns the color format of acquired images.
	Format() gputypes.TextureFormat

	// Size returns the configured size in pixels.
	Size() (width, height uint32)

	// Configure (re)configures the target for the given size.
	Configure(width, height uint32) error

	// Acquire returns the next image to draw into.
	Acquire() (*Frame, error)

	// Present hands a drawn frame to the display.
	Present(f *Frame) error

	// Discard releases a frame that will not be presented.
	Discard(f *Frame)
}

// SurfaceTarget presents to a hal.Surface with FIFO (vsync) presentation
// using the first format the adapter supports for the surface.
type SurfaceTarget struct {
	device  hal.Device
	queue   hal.Queue
	surface hal.Surface
	config  hal.SurfaceConfiguration
}

// NewSurfaceTarget negotiates the surface format on dev's adapter and
// configures surface for width x height.
func NewSurfaceTarget(dev *Device, surface hal.Surface, width, height uint32) (*SurfaceTarget, error) {
	if dev.Adapter == nil {
		return nil, fmt.Errorf("render: surface target needs an adapter: %w", ErrNoAdapter)
	}
	caps := dev.Adapter.SurfaceCapabilities(surface)
	if caps == nil || len(caps.Formats) == 0 {
		return nil, ErrNoSurfaceFormat
	}

	t := &SurfaceTarget{
		device:  dev.Device,
		queue:   dev.Queue,
		surface: surface,
		config: hal.SurfaceConfiguration{
			Format:      caps.Formats[0],
			Usage:       gputypes.TextureUsageRenderAttachment,
			PresentMode: gputypes.PresentModeFifo,
			AlphaMode:   gputypes.CompositeAlphaModeOpaque,
		},
	}
	if err := t.Configure(width, height); err != nil {
		return nil, err
	}

	slogger().Info("render: surface configured",
		"format", t.config.Format.String(),
		"present_mode", t.config.PresentMode.String(),
		"width", width, "height", height)
	return t, nil
}

// Format returns the negotiated surface format.
func (t *SurfaceTarget) Format() gputypes.TextureFormat { return t.config.Format }

// Size returns the configured surface size.
func (t *SurfaceTarget) Size() (width, height uint32) { return t.config.Width, t.config.Height }

// Configure applies a new surface size. Zero dimensions return ErrZeroSize
// and keep the previous configuration.
func (t *SurfaceTarget) Configure(width, height uint32) error {
	if width == 0 || height == 0 {
		return ErrZeroSize
	}
	cfg := t.config
	cfg.Width, cfg.Height = width, height
	if err := t.surface.Configure(t.device, &cfg); err != nil {
		return fmt.Errorf("render: configure surface %dx%d: %w", width, height, err)
	}
	t.config = cfg
	return nil
}

// Acquire gets the next swapchain image and creates a view for it.
func (t *SurfaceTarget) Acquire() (*Frame, error) {
	acquired, err := t.surface.AcquireTexture(nil)
	if err != nil {
		return nil, err
	}
	view, err := t.device.CreateTextureView(acquired.Texture, &hal.TextureViewDescriptor{
		Label:           "mandelbrot_surface_view",
		Format:          t.config.Format,
		Dimension:       gputypes.TextureViewDimension2D,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
	})
	if err != nil {
		t.surface.DiscardTexture(acquired.Texture)
		return nil, fmt.Errorf("render: create surface view: %w", err)
	}
	return &Frame{
		View:       view,
		Suboptimal: acquired.Suboptimal,
		texture:    acquired.Texture,
	}, nil
}

// Present queues the frame for display and releases its view.
func (t *SurfaceTarget) Present(f *Frame) error {
	defer t.device.DestroyTextureView(f.View)
	if err := t.queue.Present(t.surface, f.texture, nil); err != nil {
		return fmt.Errorf("render: present: %w", err)
	}
	return nil
}

// Discard returns the frame's image to the surface without presenting it.
func (t *SurfaceTarget) Discard(f *Frame) {
	t.device.DestroyTextureView(f.View)
	t.surface.DiscardTexture(f.texture)
}

// Release unconfigures the surface. The surface itself belongs to the
// caller.
func (t *SurfaceTarget) Release() {
	t.surface.Unconfigure(t.device)
}

var _ Target = (*SurfaceTarget)(nil)
