package driving

import (
	"context"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
)

// CatalogService queries previously converted filings.
type CatalogService interface {
	// ListFilings returns all catalogued filings.
	ListFilings(ctx context.Context) ([]domain.StoredFiling, error)

	// GetFiling returns one filing by accession number.
	GetFiling(ctx context.Context, accession string) (*domain.StoredFiling, error)

	// GetHoldings returns a filing's holdings.
	GetHoldings(ctx context.Context, accession string) ([]domain.HoldingRecord, error)

	// FindByCUSIP returns holdings across filings for one CUSIP.
	FindByCUSIP(ctx context.Context, cusip string) ([]domain.HoldingMatch, error)

	// DeleteFiling removes a filing from the catalog.
	DeleteFiling(ctx context.Context, accession string) error
}
