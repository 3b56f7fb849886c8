package parsers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driven"
	"github.com/custodia-labs/holdings-cli/internal/parsers/body"
	"github.com/custodia-labs/holdings-cli/internal/parsers/header"
	"github.com/custodia-labs/holdings-cli/internal/parsers/holdings"
)

// Ensure Registry implements the interface.
var _ driven.SectionParserRegistry = (*Registry)(nil)

// Registry maps section kinds to their parsers.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	parsers map[domain.SectionKind]driven.SectionParser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		parsers: make(map[domain.SectionKind]driven.SectionParser),
	}
}

// DefaultRegistry returns a registry with the header, body and holdings parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(header.New())
	r.Register(body.New())
	r.Register(holdings.New())
	return r
}

// Register adds a parser, replacing any parser for the same kind.
func (r *Registry) Register(parser driven.SectionParser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers[parser.Kind()] = parser
}

// Parse dispatches a section to the parser registered for its kind.
func (r *Registry) Parse(ctx context.Context, section domain.Section) (*driven.SectionResult, error) {
	r.mu.RLock()
	parser, ok := r.parsers[section.Kind]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: no parser for %s section", domain.ErrUnsupportedType, section.Kind)
	}
	return parser.Parse(ctx, section)
}

// Has reports whether a parser is registered for kind.
func (r *Registry) Has(kind domain.SectionKind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.parsers[kind]
	return ok
}

// Kinds returns the registered section kinds, sorted.
func (r *Registry) Kinds() []domain.SectionKind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]domain.SectionKind, 0, len(r.parsers))
	for k := range r.parsers {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
