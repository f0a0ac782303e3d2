// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/gputypes"

// Option configures a Renderer during creation.
//
// Example:
//
//	r, err := render.New(device, queue, target, state,
//	    render.WithClearColor(gputypes.Color{R: 0, G: 0, B: 0, A: 1}),
//	)
type Option func(*options)

type options struct {
	clearColor gputypes.Color
	label      string
}

func defaultOptions() options {
	return options{
		clearColor: gputypes.Color{R: 1, G: 1, B: 1, A: 1},
		label:      "mandelbrot",
	}
}

// WithClearColor sets the color the render pass clears to before drawing.
// The default is opaque white.
func WithClearColor(c gputypes.Color) Option {
	return func(o *options) {
		o.clearColor = c
	}
}

// WithLabel sets the prefix of GPU debug labels. Empty labels are ignored.
func WithLabel(label string) Option {
	return func(o *options) {
		if label != "" {
			o.label = label
		}
	}
}
