package parsers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driven"
)

type stubParser struct {
	kind  domain.SectionKind
	calls int
}

func (s *stubParser) Kind() domain.SectionKind { return s.kind }

func (s *stubParser) Parse(_ context.Context, _ domain.Section) (*driven.SectionResult, error) {
	s.calls++
	return &driven.SectionResult{Kind: s.kind}, nil
}

func TestDefaultRegistry_Kinds(t *testing.T) {
	r := DefaultRegistry()

	assert.Equal(t, []domain.SectionKind{
		domain.SectionBody,
		domain.SectionHeader,
		domain.SectionHoldings,
	}, r.Kinds())
	assert.False(t, r.Has(domain.SectionUnknown))
}

func TestRegistry_Parse_Dispatches(t *testing.T) {
	r := NewRegistry()
	stub := &stubParser{kind: domain.SectionBody}
	r.Register(stub)

	result, err := r.Parse(context.Background(), domain.Section{Kind: domain.SectionBody})
	require.NoError(t, err)
	assert.Equal(t, domain.SectionBody, result.Kind)
	assert.Equal(t, 1, stub.calls)
}

func TestRegistry_Parse_Unsupported(t *testing.T) {
	r := NewRegistry()

	_, err := r.Parse(context.Background(), domain.Section{Kind: domain.SectionUnknown})
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestRegistry_Register_Replaces(t *testing.T) {
	r := NewRegistry()
	first := &stubParser{kind: domain.SectionHeader}
	second := &stubParser{kind: domain.SectionHeader}
	r.Register(first)
	r.Register(second)

	_, err := r.Parse(context.Background(), domain.Section{Kind: domain.SectionHeader})
	require.NoError(t, err)
	assert.Equal(t, 0, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestDefaultRegistry_ParsesHeader(t *testing.T) {
	r := DefaultRegistry()

	result, err := r.Parse(context.Background(), domain.Section{
		Kind:    domain.SectionHeader,
		Content: "ACCESSION NUMBER:\t\t0000950123-24-000001\n",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Header)
	assert.Equal(t, "0000950123-24-000001", result.Header.Get(domain.HeaderAccessionNumber))
}
