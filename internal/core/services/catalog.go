package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driven"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driving"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService queries the filing catalog.
type CatalogService struct {
	store driven.FilingStore
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store driven.FilingStore) *CatalogService {
	return &CatalogService{store: store}
}

// ListFilings returns all catalogued filings, newest period first.
func (s *CatalogService) ListFilings(ctx context.Context) ([]domain.StoredFiling, error) {
	filings, err := s.store.ListFilings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list filings: %w", err)
	}
	return filings, nil
}

// GetFiling returns one filing by accession number.
func (s *CatalogService) GetFiling(ctx context.Context, accession string) (*domain.StoredFiling, error) {
	accession, err := requireArg("accession number", accession)
	if err != nil {
		return nil, err
	}
	filing, err := s.store.GetFiling(ctx, accession)
	if err != nil {
		return nil, fmt.Errorf("get filing %s: %w", accession, err)
	}
	return filing, nil
}

// GetHoldings returns a filing's holdings in document order.
func (s *CatalogService) GetHoldings(ctx context.Context, accession string) ([]domain.HoldingRecord, error) {
	accession, err := requireArg("accession number", accession)
	if err != nil {
		return nil, err
	}
	holdings, err := s.store.GetHoldings(ctx, accession)
	if err != nil {
		return nil, fmt.Errorf("get holdings %s: %w", accession, err)
	}
	return holdings, nil
}

// FindByCUSIP returns holdings across filings for one CUSIP.
func (s *CatalogService) FindByCUSIP(ctx context.Context, cusip string) ([]domain.HoldingMatch, error) {
	cusip, err := requireArg("cusip", cusip)
	if err != nil {
		return nil, err
	}
	matches, err := s.store.FindByCUSIP(ctx, strings.ToUpper(cusip))
	if err != nil {
		return nil, fmt.Errorf("find cusip %s: %w", cusip, err)
	}
	return matches, nil
}

// DeleteFiling removes a filing from the catalog.
func (s *CatalogService) DeleteFiling(ctx context.Context, accession string) error {
	accession, err := requireArg("accession number", accession)
	if err != nil {
		return err
	}
	if err := s.store.DeleteFiling(ctx, accession); err != nil {
		return fmt.Errorf("delete filing %s: %w", accession, err)
	}
	return nil
}

func requireArg(name, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%s is required: %w", name, domain.ErrInvalidInput)
	}
	return value, nil
}
