package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/agentry/mcplink/internal/dispatch"
)

// NewCallCmd invokes a tool on one server.
func NewCallCmd(logger hclog.Logger) *cobra.Command {
	var rawArgs string
	var validate bool

	callCmd := &cobra.Command{
		Use:   "call <server> <tool>",
		Short: "Call a tool on a configured MCP server",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var toolArgs map[string]any
			if rawArgs != "" {
				if err := json.Unmarshal([]byte(rawArgs), &toolArgs); err != nil {
					return fmt.Errorf("--args must be a JSON object: %w", err)
				}
			}

			dispatcher, err := buildDispatcher(logger, dispatch.WithArgumentValidation(validate))
			if err != nil {
				return err
			}

			result, err := dispatcher.CallTool(cmd.Context(), args[0], args[1], toolArgs)
			if err != nil {
				return err
			}
			return writeJSON(result)
		},
	}

	callCmd.Flags().StringVar(&rawArgs, "args", "", "tool arguments as a JSON object")
	callCmd.Flags().BoolVar(&validate, "validate", false, "validate arguments against the tool's input schema")

	return callCmd
}
