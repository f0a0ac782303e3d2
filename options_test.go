package mandelbrot

import (
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/mandelbrot/render"
	"github.com/gogpu/mandelbrot/view"
)

func TestDefaultViewerOptions(t *testing.T) {
	o := defaultViewerOptions()
	if o.initial != view.NewState() {
		t.Errorf("initial = %+v, want %+v", o.initial, view.NewState())
	}
	if len(o.controller) != 0 || len(o.render) != 0 {
		t.Errorf("default options carry %d controller and %d render options",
			len(o.controller), len(o.render))
	}
}

func TestWithInitialStateIgnoresInvalidScale(t *testing.T) {
	tests := []struct {
		name  string
		scale float32
		want  float32
	}{
		{"positive", 4, 4},
		{"zero", 0, 1},
		{"negative", -2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := defaultViewerOptions()
			s := view.NewState()
			s.Scale = tt.scale
			WithInitialState(s)(&o)
			if o.initial.Scale != tt.want {
				t.Errorf("Scale = %v, want %v", o.initial.Scale, tt.want)
			}
		})
	}
}

func TestOptionsAccumulate(t *testing.T) {
	o := defaultViewerOptions()
	for _, opt := range []ViewerOption{
		WithControllerOptions(view.WithScaleStep(1.5)),
		WithControllerOptions(view.WithMoveStep(0.2), view.WithSurfaceSize(10, 10)),
		WithRenderOptions(render.WithLabel("a")),
		WithRenderOptions(render.WithClearColor(gputypes.Color{A: 1})),
	} {
		opt(&o)
	}
	if len(o.controller) != 3 {
		t.Errorf("controller options = %d, want 3", len(o.controller))
	}
	if len(o.render) != 2 {
		t.Errorf("render options = %d, want 2", len(o.render))
	}
}
