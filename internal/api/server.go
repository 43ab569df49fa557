package api

import (
	"context"
	stdErrors "errors"
	"fmt"
	"net/http"
	"reflect"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hashicorp/go-hclog"

	"github.com/agentry/mcplink/internal/dispatch"
)

// Server exposes the dispatcher over HTTP.
// NewServer should be used to create instances of Server.
type Server struct {
	logger          hclog.Logger
	dispatcher      *dispatch.Dispatcher
	addr            string
	cors            CORSConfig
	shutdownTimeout time.Duration
}

// NewServer creates an API server for the given dispatcher.
// Applies default options first, then user-provided options on top.
func NewServer(logger hclog.Logger, dispatcher *dispatch.Dispatcher, addr string, opt ...ServerOption) (*Server, error) {
	if logger == nil || reflect.ValueOf(logger).IsNil() {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if dispatcher == nil {
		return nil, fmt.Errorf("dispatcher cannot be nil")
	}
	if addr == "" {
		return nil, fmt.Errorf("address cannot be empty")
	}

	options, err := NewServerOptions(opt...)
	if err != nil {
		return nil, fmt.Errorf("invalid API options: %w", err)
	}

	return &Server{
		logger:          logger.Named("api"),
		dispatcher:      dispatcher,
		addr:            addr,
		cors:            options.CORS,
		shutdownTimeout: options.ShutdownTimeout,
	}, nil
}

// Start starts the API server and blocks until the context is canceled or
// an error occurs.
func (s *Server) Start(ctx context.Context) error {
	mux := chi.NewMux()
	mux.Use(middleware.StripSlashes)

	if s.cors.Enabled {
		s.applyCORS(mux)
	}

	config := huma.DefaultConfig("mcplink docs", APIVersion)
	router := humachi.New(mux, config)

	apiPathPrefix, err := RegisterRoutes(router, s.dispatcher)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("Starting API server", "address", s.addr, "prefix", apiPathPrefix)
		if err := srv.ListenAndServe(); err != nil && !stdErrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		s.logger.Info("Shutting down API server...")
		_ = srv.Shutdown(shutdownCtx)
		s.logger.Info("Shutdown complete")
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// applyCORS applies CORS middleware based on the configured options.
func (s *Server) applyCORS(mux *chi.Mux) {
	s.logger.Info("Enabling CORS", "origins", s.cors.AllowOrigins)

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cors.AllowOrigins,
		AllowedMethods:   s.cors.AllowMethods,
		AllowedHeaders:   s.cors.AllowHeaders,
		ExposedHeaders:   s.cors.ExposeHeaders,
		AllowCredentials: s.cors.AllowCredentials,
		MaxAge:           int(s.cors.MaxAge.Seconds()),
	}))
}
