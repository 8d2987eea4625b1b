package cmd

import (
	"github.com/gerritlens/gerritlens/internal/mcp"
	"github.com/gerritlens/gerritlens/internal/pointstore"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Gerritlens MCP server",
	Long:  `Launch an MCP server that allows AI agents to query collected Gerrit metrics via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Setup runs normally; the server itself keeps stdout clean since
		// stdio carries the protocol.
		return sharedSetup(cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, pointstore.Manager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
