package main

import (
	"fmt"
	"time"

	"github.com/disintegration/imaging"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/gogpu/mandelbrot"
	"github.com/gogpu/mandelbrot/escape"
	"github.com/gogpu/mandelbrot/view"
)

type snapshotFlags struct {
	out         string
	width       int
	height      int
	offsetX     float32
	offsetY     float32
	scale       float32
	iterations  int
	supersample int
	quiet       bool
}

func snapshotCmd() *cobra.Command {
	start := view.NewState()
	f := snapshotFlags{
		out:         "mandelbrot.png",
		width:       1600,
		height:      1600,
		offsetX:     start.Offset[0],
		offsetY:     start.Offset[1],
		scale:       start.Scale,
		iterations:  escape.MaxIterations,
		supersample: 1,
	}

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render a view to an image file without a GPU",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			// At this point usage information has already been printed if obviously incorrect.
			cmd.SilenceUsage = true
			return runSnapshot(f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.out, "out", "o", f.out, "output image; the extension selects PNG, JPEG, GIF, TIFF or BMP")
	flags.IntVar(&f.width, "width", f.width, "image width in pixels")
	flags.IntVar(&f.height, "height", f.height, "image height in pixels")
	flags.Float32Var(&f.offsetX, "offset-x", f.offsetX, "real part of the image center")
	flags.Float32Var(&f.offsetY, "offset-y", f.offsetY, "imaginary part of the image center")
	flags.Float32Var(&f.scale, "scale", f.scale, "zoom factor; larger is closer")
	flags.IntVar(&f.iterations, "iterations", f.iterations, "iteration cap")
	flags.IntVar(&f.supersample, "supersample", f.supersample, "samples per pixel on each axis")
	flags.BoolVarP(&f.quiet, "quiet", "q", false, "hide the progress bar")

	return cmd
}

func (f snapshotFlags) state() (view.State, error) {
	if f.width <= 0 || f.height <= 0 {
		return view.State{}, fmt.Errorf("invalid image size %dx%d", f.width, f.height)
	}
	if _, err := imaging.FormatFromFilename(f.out); err != nil {
		return view.State{}, fmt.Errorf("output %s: %w", f.out, err)
	}
	if f.iterations < 1 || f.supersample < 1 {
		return view.State{}, fmt.Errorf("iterations and supersample must be at least 1, got %d and %d", f.iterations, f.supersample)
	}
	s := view.State{
		Offset:      [2]float32{f.offsetX, f.offsetY},
		Scale:       f.scale,
		AspectRatio: float32(f.width) / float32(f.height),
	}
	if s.Scale < view.MinScale || s.Scale > view.MaxScale {
		return view.State{}, fmt.Errorf("scale %g out of range [%g, %g]", s.Scale, view.MinScale, view.MaxScale)
	}
	return s, nil
}

func runSnapshot(f snapshotFlags) error {
	s, err := f.state()
	if err != nil {
		return err
	}

	opts := []escape.Option{
		escape.WithIterations(f.iterations),
		escape.WithSupersample(f.supersample),
	}
	if !f.quiet {
		pb := progressbar.Default(int64(escape.Rows(f.height, opts...)), "shading")
		defer pb.Close()
		opts = append(opts, escape.WithProgress(func(n int) { _ = pb.Add(n) }))
	}

	start := time.Now()
	img := escape.Render(s, f.width, f.height, opts...)
	mandelbrot.Logger().Debug("mandelbrot: snapshot shaded",
		"state", s.String(), "elapsed", time.Since(start))

	if err := imaging.Save(img, f.out); err != nil {
		return fmt.Errorf("write %s: %w", f.out, err)
	}

	mandelbrot.Logger().Info("mandelbrot: snapshot written", "path", f.out,
		"width", f.width, "height", f.height)
	return nil
}
