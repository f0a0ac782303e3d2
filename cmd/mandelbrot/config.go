package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gogpu/gputypes"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/mandelbrot"
	"github.com/gogpu/mandelbrot/render"
	"github.com/gogpu/mandelbrot/view"
)

var errInvalidConfig = errors.New("mandelbrot: invalid config")

// config holds the window settings. It is read from the --config YAML file;
// flags set on the command line win over the file.
type config struct {
	Window   windowConfig   `yaml:"window"`
	Controls controlsConfig `yaml:"controls"`
	// ClearColor is the opaque color behind the fractal as "#rrggbb".
	ClearColor string `yaml:"clear_color"`
}

type windowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type controlsConfig struct {
	ScaleStep float32 `yaml:"scale_step"`
	MoveStep  float32 `yaml:"move_step"`
}

func defaultConfig() config {
	return config{
		Window: windowConfig{
			Width:  view.DefaultSurfaceWidth,
			Height: view.DefaultSurfaceHeight,
			Title:  "mandelbrot!",
		},
		Controls: controlsConfig{
			ScaleStep: view.ScaleStep,
			MoveStep:  view.MoveStep,
		},
		ClearColor: "#ffffff",
	}
}

// loadConfig reads path over the defaults. Keys missing from the file keep
// their default; unknown keys are an error.
func loadConfig(path string) (config, error) {
	c := defaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c, c.validate()
}

func (c config) validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", errInvalidConfig, c.Window.Width, c.Window.Height)
	case c.Controls.ScaleStep <= 1:
		return fmt.Errorf("%w: scale_step %g must exceed 1", errInvalidConfig, c.Controls.ScaleStep)
	case c.Controls.MoveStep <= 0:
		return fmt.Errorf("%w: move_step %g must be positive", errInvalidConfig, c.Controls.MoveStep)
	}
	if _, err := colorful.Hex(c.ClearColor); err != nil {
		return fmt.Errorf("%w: clear_color %q: %w", errInvalidConfig, c.ClearColor, err)
	}
	return nil
}

// clearColor assumes c has been validated.
func (c config) clearColor() gputypes.Color {
	rgb, _ := colorful.Hex(c.ClearColor)
	return gputypes.Color{R: rgb.R, G: rgb.G, B: rgb.B, A: 1}
}

func (c config) viewerOptions() []mandelbrot.ViewerOption {
	return []mandelbrot.ViewerOption{
		mandelbrot.WithControllerOptions(
			view.WithScaleStep(c.Controls.ScaleStep),
			view.WithMoveStep(c.Controls.MoveStep),
		),
		mandelbrot.WithRenderOptions(
			render.WithClearColor(c.clearColor()),
		),
	}
}

func writeConfig(w io.Writer, c config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
