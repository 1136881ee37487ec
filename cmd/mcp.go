package cmd

import (
	"github.com/huangsam/casemap/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Casemap MCP server",
	Long:  `Launch an MCP server that allows AI agents to list, classify and generate use cases via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Keep stdout clean in MCP mode since stdio carries the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, engine, newGenerator())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
