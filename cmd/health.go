package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

// NewHealthCmd reports the tracked health of configured servers.
func NewHealthCmd(logger hclog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "health [server]",
		Short: "Report tracked health for configured MCP servers",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dispatcher, err := buildDispatcher(logger)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				record, err := dispatcher.ServerHealth(args[0])
				if err != nil {
					return err
				}
				return writeJSON(record)
			}

			return writeJSON(dispatcher.Health())
		},
	}
}
