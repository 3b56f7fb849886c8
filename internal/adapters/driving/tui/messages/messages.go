// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/holdings-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewFilings lists catalogued filings.
	ViewFilings ViewType = iota
	// ViewHoldings shows the holdings table of one filing.
	ViewHoldings
	// ViewLookup finds holdings by CUSIP across filings.
	ViewLookup
	// ViewHelp is the keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewFilings:
		return "filings"
	case ViewHoldings:
		return "holdings"
	case ViewLookup:
		return "lookup"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// FilingsLoaded carries the catalogued filings.
type FilingsLoaded struct {
	Filings []domain.StoredFiling
	Err     error
}

// FilingSelected is sent when a filing is opened from the list.
type FilingSelected struct {
	Filing domain.StoredFiling
}

// HoldingsLoaded carries the holdings of one filing.
type HoldingsLoaded struct {
	Accession string
	Holdings  []domain.HoldingRecord
	Err       error
}

// LookupCompleted carries the holdings found for a CUSIP.
type LookupCompleted struct {
	CUSIP   string
	Matches []domain.HoldingMatch
	Err     error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
