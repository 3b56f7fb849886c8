package mcp

import (
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Titles normalises and classifies class titles.
	Titles driving.TitleService

	// Conversion parses submissions.
	Conversion driving.ConversionService

	// Catalog queries converted filings.
	Catalog driving.CatalogService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Titles == nil {
		return ErrMissingTitleService
	}
	// Conversion and Catalog are optional; their tools report ErrServiceUnavailable.
	return nil
}
