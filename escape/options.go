package escape

import "runtime"

// Option configures Render.
type Option func(*options)

type options struct {
	iterations  int
	supersample int
	workers     int
	progress    func(rows int)
}

func defaultOptions() options {
	return options{
		iterations:  MaxIterations,
		supersample: 1,
		workers:     runtime.GOMAXPROCS(0),
	}
}

// WithIterations sets the iteration cap. Non-positive values are ignored.
func WithIterations(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.iterations = n
		}
	}
}

// WithSupersample renders at n times the resolution on each axis and
// filters down. 1 disables supersampling; lower values are ignored.
func WithSupersample(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.supersample = n
		}
	}
}

// WithWorkers sets the number of shading goroutines.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithProgress registers fn to be called after each shaded row with the
// number of rows finished by that call. fn is called from worker
// goroutines and must be safe for concurrent use. With supersampling the
// total is the supersampled height.
func WithProgress(fn func(rows int)) Option {
	return func(o *options) {
		o.progress = fn
	}
}
