package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/holdings-cli/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/holdings-cli/internal/adapters/driving/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the conversion and catalog HTTP API",
	Long: `Serve the JSON HTTP API:

  GET    /healthz
  POST   /v1/convert
  GET    /v1/titles/normalize?title=
  GET    /v1/filings
  GET    /v1/filings/{accession}
  DELETE /v1/filings/{accession}
  GET    /v1/filings/{accession}/holdings
  GET    /v1/holdings?cusip=

The MCP streamable HTTP transport is mounted at /mcp.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().Bool("no-mcp", false, "do not mount the MCP endpoint")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return fmt.Errorf("getting addr flag: %w", err)
	}
	noMCP, err := cmd.Flags().GetBool("no-mcp")
	if err != nil {
		return fmt.Errorf("getting no-mcp flag: %w", err)
	}

	server, err := newHTTPServer(!noMCP)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Listening on %s\n", addr)
	return server.ListenAndServe(commandContext(cmd), addr)
}

// newHTTPServer builds the API server, optionally with MCP mounted at /mcp.
func newHTTPServer(withMCP bool) (*httpapi.Server, error) {
	server, err := httpapi.NewServer(&httpapi.Ports{
		Titles:     titleService,
		Conversion: conversionService,
		Catalog:    catalogService,
	})
	if err != nil {
		return nil, err
	}
	if !withMCP {
		return server, nil
	}

	mcpServer, err := mcp.NewServer(mcpPorts())
	if err != nil {
		return nil, err
	}
	server.Mount("/mcp", mcpServer.Handler())
	return server, nil
}
