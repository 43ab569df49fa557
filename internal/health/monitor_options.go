package health

import (
	"fmt"
	"time"
)

// Option defines a functional option for configuring Monitor.
type Option func(*Options) error

// Options contains optional configuration for the monitor.
type Options struct {
	// threshold is the consecutive-failure count that flips a server to unhealthy.
	threshold int

	// now supplies the current time.
	now func() time.Time
}

// NewOptions creates Options with defaults and applies given options in order,
// with later options overriding earlier ones.
func NewOptions(opts ...Option) (Options, error) {
	o := Options{
		threshold: DefaultFailureThreshold,
		now:       time.Now,
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

// WithFailureThreshold sets the consecutive-failure count that marks a
// server unhealthy.
func WithFailureThreshold(n int) Option {
	return func(o *Options) error {
		if n <= 0 {
			return fmt.Errorf("failure threshold must be positive, got %d", n)
		}
		o.threshold = n
		return nil
	}
}

// WithClock sets the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Options) error {
		if now == nil {
			return fmt.Errorf("clock cannot be nil")
		}
		o.now = now
		return nil
	}
}
