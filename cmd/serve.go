package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/agentry/mcplink/internal/api"
)

// DefaultAPIAddr is where the API server listens unless configured otherwise.
const DefaultAPIAddr = "localhost:8090"

// NewServeCmd starts the HTTP API exposing the dispatcher.
func NewServeCmd(logger hclog.Logger) *cobra.Command {
	var addr string
	var corsOrigins []string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API for the configured MCP servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dispatcher, err := buildDispatcher(logger)
			if err != nil {
				return err
			}

			var opts []api.ServerOption
			if len(corsOrigins) > 0 {
				opts = append(opts, api.WithCORS(corsOrigins))
			}

			server, err := api.NewServer(logger, dispatcher, addr, opts...)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := server.Start(ctx); err != nil && err != context.Canceled {
				return err
			}
			return nil
		},
	}

	serveCmd.Flags().StringVar(&addr, "addr", DefaultAPIAddr, "address for the API server to listen on")
	serveCmd.Flags().StringSliceVar(&corsOrigins, "cors-origin", nil, "allowed CORS origins (enables CORS)")

	return serveCmd
}
