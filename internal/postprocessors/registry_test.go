package postprocessors

import (
	"context"
	"testing"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driven"
	"github.com/custodia-labs/holdings-cli/internal/postprocessors/category"
	"github.com/custodia-labs/holdings-cli/internal/postprocessors/titlenorm"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry returned nil")
	}
	if len(r.builders) != 0 {
		t.Errorf("expected empty builders, got %d", len(r.builders))
	}
}

func TestRegistry_Build_Unknown(t *testing.T) {
	r := NewRegistry()

	if _, err := r.Build("missing", nil); err == nil {
		t.Error("expected error for unknown processor")
	}
}

func TestRegistry_Build_Success(t *testing.T) {
	r := NewRegistry()
	r.Register("test", func(cfg map[string]any) (driven.RecordProcessor, error) {
		name := "default"
		if n, ok := cfg["name"].(string); ok {
			name = n
		}
		return &mockProcessor{name: name}, nil
	})

	proc, err := r.Build("test", map[string]any{"name": "custom"})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if proc.Name() != "custom" {
		t.Errorf("expected name custom, got %s", proc.Name())
	}
}

func TestRegisterDefaults(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	names := r.Names()
	if len(names) != 2 || names[0] != category.Name || names[1] != titlenorm.Name {
		t.Errorf("unexpected default processors %v", names)
	}
}

func TestDefaultNames(t *testing.T) {
	plain := DefaultNames(domain.ProcessorSettings{})
	if len(plain) != 1 || plain[0] != titlenorm.Name {
		t.Errorf("unexpected names %v", plain)
	}

	withCategory := DefaultNames(domain.ProcessorSettings{Category: true})
	if len(withCategory) != 2 || withCategory[0] != category.Name {
		t.Errorf("unexpected names %v", withCategory)
	}
}

func TestBuildPipeline_Defaults(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	settings := domain.ProcessorSettings{Category: true}

	p, err := r.BuildPipeline(DefaultNames(settings), DefaultConfigs(settings))
	if err != nil {
		t.Fatalf("BuildPipeline failed: %v", err)
	}

	holdings := domain.NewRecordSet(domain.RecordSetHoldings, domain.HoldingColumns()...)
	rec := domain.HoldingRecord{IssuerName: "X", CUSIP: "1", ClassTitle: "*W EXP 07/01/2024"}
	if err := holdings.Append(rec.Row()); err != nil {
		t.Fatal(err)
	}
	conv := &domain.Conversion{Holdings: *holdings, HoldingRecords: []domain.HoldingRecord{rec}}

	if err := p.Process(context.Background(), conv); err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	titlesCol, _ := conv.Holdings.Column(domain.HoldingColumnClassTitle)
	if titlesCol[0] != "Warrant (expires 2024-07-01)" {
		t.Errorf("unexpected title %q", titlesCol[0])
	}
	cats, err := conv.Holdings.Column("class_category")
	if err != nil {
		t.Fatalf("category column missing: %v", err)
	}
	if cats[0] != "Warrant" {
		t.Errorf("unexpected category %q", cats[0])
	}
	if conv.HoldingRecords[0].ClassTitle != "Warrant (expires 2024-07-01)" {
		t.Errorf("typed record not normalised: %q", conv.HoldingRecords[0].ClassTitle)
	}
}

func TestBuildPipeline_Unknown(t *testing.T) {
	r := NewRegistry()

	if _, err := r.BuildPipeline([]string{"nope"}, nil); err == nil {
		t.Error("expected error for unknown processor")
	}
}
