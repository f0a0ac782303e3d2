// Package escape is the CPU counterpart of the fractal shader. It maps a
// view onto the complex plane exactly as the fragment stage does and
// shades points with the same escape-time palette, so frames can be
// produced without a GPU.
package escape

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/gogpu/mandelbrot/internal/parallel"
	"github.com/gogpu/mandelbrot/view"
)

const (
	// Extent is the half-height of the visible plane at scale 1.
	Extent = 2.0

	// MaxIterations matches the shader's iteration cap.
	MaxIterations = 256

	// escapeRadius2 is the squared bailout radius.
	escapeRadius2 = 4.0
)

// Palette phase offsets per channel.
var phase = [3]float64{0, 0.33, 0.67}

// Plane returns the point of the complex plane under pixel (px, py) of a
// w x h image. Pixel coordinates grow right and down; the plane's
// imaginary axis grows up.
func Plane(s view.State, px, py float64, w, h int) complex128 {
	nx := 2*px/float64(w) - 1
	ny := 1 - 2*py/float64(h)
	k := Extent / float64(s.Scale)
	re := float64(s.Offset[0]) + nx*float64(s.AspectRatio)*k
	im := float64(s.Offset[1]) + ny*k
	return complex(re, im)
}

// Iterate returns the zero-based iteration at which z = z² + c leaves the
// escape radius, or limit when it stays bounded.
func Iterate(c complex128, limit int) int {
	var z complex128
	for i := 0; i < limit; i++ {
		z = z*z + c
		if re, im := real(z), imag(z); re*re+im*im > escapeRadius2 {
			return i
		}
	}
	return limit
}

// Color shades an escape count. Bounded points are black.
func Color(n, limit int) color.RGBA {
	if n >= limit {
		return color.RGBA{A: 0xff}
	}
	t := float64(n) / float64(limit)
	var rgb [3]uint8
	for i, p := range phase {
		v := 0.5 + 0.5*math.Cos(2*math.Pi*(t+p))
		rgb[i] = uint8(math.Round(v * 255))
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff}
}

// Rows returns the number of rows Render shades for an image of height h,
// which is the total reported through WithProgress.
func Rows(h int, opts ...Option) int {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return h * o.supersample
}

// Render shades a w x h image of the view s.
func Render(s view.State, w, h int, opts ...Option) *image.RGBA {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.supersample == 1 {
		return shade(s, w, h, o)
	}
	big := shade(s, w*o.supersample, h*o.supersample, o)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), big, big.Bounds(), draw.Src, nil)
	return dst
}

// shade fills rows in parallel. Each row is one task and is written by
// exactly one worker.
func shade(s view.State, w, h int, o options) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	pool := parallel.NewPool(o.workers)
	defer pool.Close()

	rows := make([]func(), h)
	for y := range rows {
		rows[y] = func() {
			for x := 0; x < w; x++ {
				c := Plane(s, float64(x)+0.5, float64(y)+0.5, w, h)
				img.SetRGBA(x, y, Color(Iterate(c, o.iterations), o.iterations))
			}
			if o.progress != nil {
				o.progress(1)
			}
		}
	}
	pool.Run(rows)

	return img
}
