package driven

import (
	"context"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
)

// SectionParserRegistry selects the parser for a section.
// It maps each section kind to exactly one parsing strategy.
type SectionParserRegistry interface {
	// Parse dispatches a section to the parser registered for its kind.
	// Returns ErrUnsupportedType if no parser handles the kind.
	Parse(ctx context.Context, section domain.Section) (*SectionResult, error)

	// Register adds a parser, replacing any parser for the same kind.
	Register(parser SectionParser)

	// Kinds returns the registered section kinds.
	Kinds() []domain.SectionKind
}
