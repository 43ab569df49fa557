package api

import (
	"fmt"
	"net/http"
	"time"
)

// DefaultShutdownTimeout is how long Start waits for in-flight requests on
// shutdown.
const DefaultShutdownTimeout = 10 * time.Second

// CORSConfig controls cross-origin request handling for the API server.
type CORSConfig struct {
	Enabled          bool
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// ServerOption defines a functional option for configuring Server.
type ServerOption func(*ServerOptions) error

// ServerOptions contains optional configuration for the API server.
type ServerOptions struct {
	// CORS configuration for cross-origin requests.
	CORS CORSConfig

	// ShutdownTimeout specifies how long to wait for graceful shutdown.
	ShutdownTimeout time.Duration
}

// NewServerOptions creates ServerOptions with defaults and applies given
// options in order, with later options overriding earlier ones.
func NewServerOptions(opts ...ServerOption) (ServerOptions, error) {
	o := ServerOptions{
		CORS: CORSConfig{
			Enabled:      false,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
			MaxAge:       5 * time.Minute,
		},
		ShutdownTimeout: DefaultShutdownTimeout,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&o); err != nil {
			return ServerOptions{}, err
		}
	}

	return o, nil
}

// WithCORS enables CORS with the given allowed origins.
func WithCORS(origins []string) ServerOption {
	return func(o *ServerOptions) error {
		if len(origins) == 0 {
			return fmt.Errorf("CORS origins cannot be empty")
		}
		o.CORS.Enabled = true
		o.CORS.AllowOrigins = origins
		return nil
	}
}

// WithShutdownTimeout sets how long to wait for graceful shutdown.
func WithShutdownTimeout(timeout time.Duration) ServerOption {
	return func(o *ServerOptions) error {
		if timeout <= 0 {
			return fmt.Errorf("shutdown timeout must be positive, got %v", timeout)
		}
		o.ShutdownTimeout = timeout
		return nil
	}
}
