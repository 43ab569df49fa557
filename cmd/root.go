// Package cmd wires the mcplink CLI.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/agentry/mcplink/internal/cache"
	"github.com/agentry/mcplink/internal/config"
	"github.com/agentry/mcplink/internal/dispatch"
	"github.com/agentry/mcplink/internal/flags"
	"github.com/agentry/mcplink/internal/health"
	"github.com/agentry/mcplink/internal/registry"
	"github.com/agentry/mcplink/internal/transport"
)

var version = "dev" // Set at build time using -ldflags

// Execute runs the root command.
func Execute() {
	logger, err := configureLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error executing root command: %s", err)
		os.Exit(1)
	}

	rootCmd := NewRootCmd(logger)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the root command with all subcommands attached.
func NewRootCmd(logger hclog.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mcplink <command> [args]",
		Short: "'mcplink' discovers and invokes capabilities across configured MCP servers.",
		Long: `The 'mcplink' CLI talks to the MCP servers declared in the configuration
file: listing their tools, calling them, and reporting per-server health.`,
		SilenceUsage: true,
		Version:      version,
	}

	// Global flags
	flags.InitFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(NewToolsCmd(logger))
	rootCmd.AddCommand(NewCallCmd(logger))
	rootCmd.AddCommand(NewHealthCmd(logger))
	rootCmd.AddCommand(NewPingCmd(logger))
	rootCmd.AddCommand(NewServeCmd(logger))

	return rootCmd
}

// buildDispatcher assembles a dispatcher from the configured servers.
func buildDispatcher(logger hclog.Logger, opt ...dispatch.Option) (*dispatch.Dispatcher, error) {
	loader := &config.DefaultLoader{}
	cfg, err := loader.Load(flags.ConfigFile)
	if err != nil {
		return nil, err
	}

	reg, err := registry.New(cfg.Servers)
	if err != nil {
		return nil, err
	}

	caller, err := transport.NewCaller(logger)
	if err != nil {
		return nil, err
	}

	capCache, err := cache.NewCache(logger)
	if err != nil {
		return nil, err
	}

	monitor, err := health.NewMonitor()
	if err != nil {
		return nil, err
	}

	return dispatch.NewDispatcher(dispatch.Dependencies{
		Logger:   logger,
		Registry: reg,
		Caller:   caller,
		Cache:    capCache,
		Health:   monitor,
	}, opt...)
}

func configureLogger() (hclog.Logger, error) {
	logLevel := strings.ToLower(strings.TrimSpace(os.Getenv(flags.EnvVarLogLevel)))
	if logLevel == "" {
		logLevel = flags.DefaultLogLevel
	}

	logPath := strings.TrimSpace(os.Getenv(flags.EnvVarLogPath))

	// If MCPLINK_LOG_PATH is not set, don't log anywhere.
	var output io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file (%s): %w", logPath, err)
		}
		output = f
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "mcplink",
		Level:  hclog.LevelFromString(logLevel),
		Output: output,
	}), nil
}
