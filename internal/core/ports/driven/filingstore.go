package driven

import (
	"context"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
)

// FilingStore persists converted filings and their holdings.
// Backed by SQLite for the catalog.
type FilingStore interface {
	// SaveFiling stores or replaces a filing and its holdings.
	// Filings are keyed by accession number.
	SaveFiling(ctx context.Context, filing *domain.StoredFiling, holdings []domain.HoldingRecord) error

	// GetFiling retrieves a filing by accession number.
	GetFiling(ctx context.Context, accession string) (*domain.StoredFiling, error)

	// ListFilings returns all filings, newest period first.
	ListFilings(ctx context.Context) ([]domain.StoredFiling, error)

	// GetHoldings returns a filing's holdings in document order.
	GetHoldings(ctx context.Context, accession string) ([]domain.HoldingRecord, error)

	// FindByCUSIP returns every stored holding with the given CUSIP.
	FindByCUSIP(ctx context.Context, cusip string) ([]domain.HoldingMatch, error)

	// DeleteFiling removes a filing and its holdings.
	DeleteFiling(ctx context.Context, accession string) error
}
