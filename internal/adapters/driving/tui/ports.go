// Package tui provides an interactive terminal browser for catalogued
// filings and their holdings.
package tui

import (
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the TUI.
type Ports struct {
	// Catalog lists filings and their holdings. Required.
	Catalog driving.CatalogService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	return nil
}
