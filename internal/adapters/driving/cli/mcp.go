package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/holdings-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can convert
submissions, normalise class titles and query the filing catalog.

By default the server speaks JSON-RPC over stdio. Use --port to serve the
streamable HTTP transport instead, for MCP Inspector or remote clients.

Examples:
  # Stdio mode (default)
  holdings mcp serve

  # HTTP mode
  holdings mcp serve --port 8080

Client configuration:
  {
    "mcpServers": {
      "holdings": {
        "command": "/path/to/holdings",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	server, err := mcp.NewServer(mcpPorts())
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}

func mcpPorts() *mcp.Ports {
	return &mcp.Ports{
		Titles:     titleService,
		Conversion: conversionService,
		Catalog:    catalogService,
	}
}
