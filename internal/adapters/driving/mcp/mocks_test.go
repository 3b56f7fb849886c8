package mcp

import (
	"context"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driving"
)

// mockConversionService is a mock implementation of driving.ConversionService.
type mockConversionService struct {
	conv     *domain.Conversion
	err      error
	lastText string
	lastPath string
}

func (m *mockConversionService) Convert(_ context.Context, raw string) (*domain.Conversion, error) {
	m.lastText = raw
	return m.conv, m.err
}

func (m *mockConversionService) ConvertFile(_ context.Context, path string) (*domain.Conversion, error) {
	m.lastPath = path
	return m.conv, m.err
}

func (m *mockConversionService) Extract(
	_ context.Context,
	_ string,
	_ driving.ExtractOptions,
) (*driving.ExtractResult, error) {
	return nil, m.err
}

// mockCatalogService is a mock implementation of driving.CatalogService.
type mockCatalogService struct {
	filings  []domain.StoredFiling
	holdings []domain.HoldingRecord
	matches  []domain.HoldingMatch
	err      error
}

func (m *mockCatalogService) ListFilings(_ context.Context) ([]domain.StoredFiling, error) {
	return m.filings, m.err
}

func (m *mockCatalogService) GetFiling(_ context.Context, accession string) (*domain.StoredFiling, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.filings {
		if m.filings[i].AccessionNumber == accession {
			return &m.filings[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockCatalogService) GetHoldings(_ context.Context, _ string) ([]domain.HoldingRecord, error) {
	return m.holdings, m.err
}

func (m *mockCatalogService) FindByCUSIP(_ context.Context, _ string) ([]domain.HoldingMatch, error) {
	return m.matches, m.err
}

func (m *mockCatalogService) DeleteFiling(_ context.Context, _ string) error {
	return m.err
}

func testConversion() *domain.Conversion {
	header := domain.NewHeaderRecord()
	header.Set(domain.HeaderAccessionNumber, "0001086364-24-001234")

	headerSet := domain.NewRecordSet(domain.RecordSetHeader, "Accession_Number")
	_ = headerSet.Append([]string{"0001086364-24-001234"})

	holdings := domain.NewRecordSet(domain.RecordSetHoldings, domain.HoldingColumns()...)
	_ = holdings.Append(domain.HoldingRecord{IssuerName: "APPLE INC", CUSIP: "037833100"}.Row())

	return &domain.Conversion{
		Header:       *headerSet,
		Holdings:     *holdings,
		HeaderRecord: header,
		BodyFields:   []domain.BodyField{{Key: "reportType", Value: "13F HOLDINGS REPORT"}},
		Diagnostics: []domain.Diagnostic{{
			Kind:     domain.DiagnosticMissingRequiredField,
			Position: 2,
			Field:    "cusip",
			Message:  "missing cusip",
		}},
	}
}
