package transport

import (
	"fmt"
	"net/http"
)

// Option defines a functional option for configuring Caller.
type Option func(*Options) error

// Options contains optional configuration for the caller.
type Options struct {
	// httpClient issues the underlying HTTP requests. Per-call deadlines come
	// from each server's configuration, so the client itself has no timeout.
	httpClient *http.Client
}

// NewOptions creates Options with defaults and applies given options in order,
// with later options overriding earlier ones.
func NewOptions(opts ...Option) (Options, error) {
	o := Options{
		httpClient: &http.Client{},
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

// WithHTTPClient sets the HTTP client used for outbound calls.
func WithHTTPClient(client *http.Client) Option {
	return func(o *Options) error {
		if client == nil {
			return fmt.Errorf("HTTP client cannot be nil")
		}
		o.httpClient = client
		return nil
	}
}
