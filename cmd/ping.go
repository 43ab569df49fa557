package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

// NewPingCmd tests connectivity to configured servers.
func NewPingCmd(logger hclog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "ping [server]",
		Short: "Test connectivity to configured MCP servers",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dispatcher, err := buildDispatcher(logger)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				ok, err := dispatcher.TestConnection(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return writeJSON(map[string]bool{args[0]: ok})
			}

			return writeJSON(dispatcher.TestConnections(cmd.Context()))
		},
	}
}
