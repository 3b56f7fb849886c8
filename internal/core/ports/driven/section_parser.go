package driven

import (
	"context"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
)

// SectionSplitter decomposes a raw submission into ordered sections.
type SectionSplitter interface {
	// Split returns the document with its sections in order of appearance.
	// Returns ErrMalformedDocument if no section structure can be found.
	Split(raw string) (*domain.SubmissionDocument, error)
}

// SectionParser turns one kind of section into records.
// Each parser handles exactly one section kind.
type SectionParser interface {
	// Kind returns the section kind this parser handles.
	Kind() domain.SectionKind

	// Parse extracts records from a section. Per-entry problems are
	// reported in the result's diagnostics, not as an error.
	Parse(ctx context.Context, section domain.Section) (*SectionResult, error)
}

// SectionResult contains the output of parsing one section.
// Only the fields relevant to the section kind are populated.
type SectionResult struct {
	// Kind is the kind of the parsed section.
	Kind domain.SectionKind

	// Header is set for header sections.
	Header *domain.HeaderRecord

	// Body is set for body sections.
	Body []domain.BodyField

	// Holdings is set for holdings sections.
	Holdings []domain.HoldingRecord

	// Diagnostics lists skipped entries. Positions are relative to the section.
	Diagnostics []domain.Diagnostic

	// Entries is the number of holdings entries found, accepted or not.
	Entries int
}
