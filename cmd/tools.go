package cmd

import (
	"encoding/json"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

// NewToolsCmd lists tools across all enabled servers, or for one server.
func NewToolsCmd(logger hclog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "tools [server]",
		Short: "List the tools advertised by configured MCP servers",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dispatcher, err := buildDispatcher(logger)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				tools, err := dispatcher.ServerTools(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return writeJSON(tools)
			}

			listings := dispatcher.AllTools(cmd.Context())
			out := make([]map[string]any, 0, len(listings))
			for _, l := range listings {
				slot := map[string]any{"server": l.Server}
				if l.Err != nil {
					slot["error"] = l.Err.Error()
				} else {
					slot["tools"] = l.Tools
				}
				out = append(out, slot)
			}
			return writeJSON(out)
		},
	}
}

// writeJSON renders v to stdout as indented JSON.
func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
