package category

import (
	"context"
	"testing"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
)

func newConversion(t *testing.T, titles ...string) *domain.Conversion {
	t.Helper()
	rs := domain.NewRecordSet(domain.RecordSetHoldings, domain.HoldingColumns()...)
	for _, title := range titles {
		rec := domain.HoldingRecord{IssuerName: "ISSUER", CUSIP: "000000000", ClassTitle: title}
		if err := rs.Append(rec.Row()); err != nil {
			t.Fatal(err)
		}
	}
	return &domain.Conversion{Holdings: *rs}
}

func TestProcess_Simple(t *testing.T) {
	conv := newConversion(t, "SPDR S&P 500 ETF", "*W EXP 07/01/2024", "COM")

	if err := New().Process(context.Background(), conv); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := conv.Holdings.Column("class_category")
	if err != nil {
		t.Fatalf("missing category column: %v", err)
	}
	want := []string{"ETF", "Warrant", "COM"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestProcess_Detailed(t *testing.T) {
	conv := newConversion(t, "PFD SER A")

	if err := New(WithDetailed(), WithOutput("taxonomy")).Process(context.Background(), conv); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := conv.Holdings.Column("taxonomy")
	if err != nil {
		t.Fatalf("missing taxonomy column: %v", err)
	}
	if got[0] != "Preferred Stock" {
		t.Errorf("expected Preferred Stock, got %q", got[0])
	}
}

func TestName(t *testing.T) {
	if New().Name() != "category" {
		t.Errorf("unexpected name %s", New().Name())
	}
}
