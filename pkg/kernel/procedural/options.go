package procedural

import "github.com/xcanals/meshform/pkg/kernel"

// Option configures a shape builder.
type Option func(*options)

type options struct {
	height kernel.HeightFunc
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithHeightFunc displaces terrain vertices by h(u, v) * maxHeight.
// Other shapes ignore it.
func WithHeightFunc(h kernel.HeightFunc) Option {
	return func(o *options) {
		o.height = h
	}
}
