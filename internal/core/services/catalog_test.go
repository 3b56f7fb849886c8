package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/holdings-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/holdings-cli/internal/core/domain"
)

func newTestCatalog(t *testing.T) *CatalogService {
	t.Helper()
	store := memory.NewFilingStore()
	require.NoError(t, store.SaveFiling(context.Background(),
		&domain.StoredFiling{AccessionNumber: "0001-24-000001", Period: "20231231"},
		[]domain.HoldingRecord{{IssuerName: "APPLE INC", CUSIP: "037833100"}},
	))
	return NewCatalogService(store)
}

func TestCatalogService_ListAndGet(t *testing.T) {
	ctx := context.Background()
	svc := newTestCatalog(t)

	filings, err := svc.ListFilings(ctx)
	require.NoError(t, err)
	require.Len(t, filings, 1)

	filing, err := svc.GetFiling(ctx, " 0001-24-000001 ")
	require.NoError(t, err)
	assert.Equal(t, "20231231", filing.Period)

	holdings, err := svc.GetHoldings(ctx, "0001-24-000001")
	require.NoError(t, err)
	assert.Len(t, holdings, 1)
}

func TestCatalogService_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := newTestCatalog(t)

	_, err := svc.GetFiling(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetHoldings(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteFiling(ctx, "missing"), domain.ErrNotFound)
}

func TestCatalogService_RequiresArguments(t *testing.T) {
	ctx := context.Background()
	svc := newTestCatalog(t)

	_, err := svc.GetFiling(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.FindByCUSIP(ctx, "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.ErrorIs(t, svc.DeleteFiling(ctx, ""), domain.ErrInvalidInput)
}

func TestCatalogService_FindByCUSIP_UpperCases(t *testing.T) {
	ctx := context.Background()
	store := memory.NewFilingStore()
	require.NoError(t, store.SaveFiling(ctx,
		&domain.StoredFiling{AccessionNumber: "A"},
		[]domain.HoldingRecord{{IssuerName: "XYZ CORP", CUSIP: "98765X113"}},
	))
	svc := NewCatalogService(store)

	matches, err := svc.FindByCUSIP(ctx, "98765x113")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "XYZ CORP", matches[0].Holding.IssuerName)
}

func TestCatalogService_DeleteFiling(t *testing.T) {
	ctx := context.Background()
	svc := newTestCatalog(t)

	require.NoError(t, svc.DeleteFiling(ctx, "0001-24-000001"))

	filings, err := svc.ListFilings(ctx)
	require.NoError(t, err)
	assert.Empty(t, filings)
}
