package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for holdings resources.
	uriScheme = "holdings://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "filings",
		Name:        "filings",
		Description: "Filings recorded in the catalog",
		MIMEType:    "application/json",
	}, s.handleFilingsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "filings/{accession}/holdings",
		Name:        "filing-holdings",
		Description: "Holdings reported in one filing",
		MIMEType:    "application/json",
	}, s.handleHoldingsResource)
}

// handleFilingsResource returns every catalogued filing.
func (s *Server) handleFilingsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Catalog == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	filings, err := s.ports.Catalog.ListFilings(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing filings: %w", err)
	}

	data, err := json.MarshalIndent(filings, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling filings: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

// handleHoldingsResource returns the holdings of one filing.
func (s *Server) handleHoldingsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Catalog == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	accession := extractAccession(req.Params.URI)
	if accession == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	holdings, err := s.ports.Catalog.GetHoldings(ctx, accession)
	if err != nil {
		return nil, fmt.Errorf("getting holdings: %w", err)
	}

	data, err := json.MarshalIndent(holdings, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling holdings: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// extractAccession extracts the accession number from a URI like
// holdings://filings/{accession}/holdings.
func extractAccession(uri string) string {
	const prefix = uriScheme + "filings/"
	const suffix = "/holdings"

	if !strings.HasPrefix(uri, prefix) || !strings.HasSuffix(uri, suffix) {
		return ""
	}
	id := strings.TrimSuffix(strings.TrimPrefix(uri, prefix), suffix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
