package dispatch

import "fmt"

// DefaultMaxConcurrency bounds how many servers a multi-server operation
// queries at once.
const DefaultMaxConcurrency = 4

// Option defines a functional option for configuring Dispatcher.
type Option func(*Options) error

// Options contains optional configuration for the dispatcher.
type Options struct {
	// maxConcurrency bounds fan-out parallelism.
	maxConcurrency int

	// validateArgs enables tool-argument validation against input schemas.
	validateArgs bool
}

// NewOptions creates Options with defaults and applies given options in order,
// with later options overriding earlier ones.
func NewOptions(opts ...Option) (Options, error) {
	o := Options{
		maxConcurrency: DefaultMaxConcurrency,
		validateArgs:   false,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&o); err != nil {
			return Options{}, err
		}
	}

	return o, nil
}

// WithMaxConcurrency bounds how many servers are queried in parallel during
// multi-server operations.
func WithMaxConcurrency(n int) Option {
	return func(o *Options) error {
		if n <= 0 {
			return fmt.Errorf("max concurrency must be positive, got %d", n)
		}
		o.maxConcurrency = n
		return nil
	}
}

// WithArgumentValidation enables validating tool-call arguments against the
// tool's advertised input schema before the call is made.
func WithArgumentValidation(enabled bool) Option {
	return func(o *Options) error {
		o.validateArgs = enabled
		return nil
	}
}
