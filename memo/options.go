package memo

import "go.uber.org/zap"

type options struct {
	logger *zap.Logger
}

// Option configures a Memoizer at construction.
type Option func(*options)

// WithLogger sets the logger used for compute and cycle events.
// The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
