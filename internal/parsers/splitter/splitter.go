// Package splitter decomposes a raw submission into typed sections.
//
// A section boundary is a line beginning with a <TYPE> token. Text before
// the first boundary is the header; the first boundary that does not open
// an information table starts the body; every information table boundary
// starts a holdings section. Other document types are kept as unknown
// sections.
package splitter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driven"
)

// Ensure Splitter implements the interface.
var _ driven.SectionSplitter = (*Splitter)(nil)

// Pre-compiled boundary patterns.
var (
	typeBoundary    = regexp.MustCompile(`(?im)^[ \t]*<TYPE>[ \t]*([^\r\n]*?)[ \t]*\r?$`)
	secHeaderOpen   = regexp.MustCompile(`(?i)<SEC-HEADER>`)
	secHeaderClosed = regexp.MustCompile(`(?is)<SEC-HEADER>.*</SEC-HEADER>`)
)

// Splitter splits submission text on <TYPE> boundaries.
type Splitter struct{}

// New creates a new splitter.
func New() *Splitter {
	return &Splitter{}
}

type boundary struct {
	lineStart    int
	contentStart int
	typ          string
}

// Split returns the submission's sections in document order.
func (s *Splitter) Split(raw string) (*domain.SubmissionDocument, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: empty submission", domain.ErrMalformedDocument)
	}

	bounds := findBoundaries(raw)
	if len(bounds) == 0 {
		return headerOnly(raw)
	}

	doc := &domain.SubmissionDocument{
		Raw:      raw,
		Sections: make([]domain.Section, 0, len(bounds)+1),
	}
	doc.Sections = append(doc.Sections, domain.Section{
		Kind:    domain.SectionHeader,
		Content: raw[:bounds[0].lineStart],
	})

	bodySeen := false
	for i, b := range bounds {
		end := len(raw)
		if i+1 < len(bounds) {
			end = bounds[i+1].lineStart
		}
		start := b.contentStart
		if start > end {
			start = end
		}

		kind := classify(b.typ, bodySeen)
		if kind == domain.SectionBody {
			bodySeen = true
		}
		doc.Sections = append(doc.Sections, domain.Section{
			Kind:    kind,
			Type:    b.typ,
			Content: raw[start:end],
			Offset:  start,
		})
	}
	return doc, nil
}

// IsHoldingsType reports whether a type identifier opens an information table.
func IsHoldingsType(typ string) bool {
	return strings.EqualFold(strings.Join(strings.Fields(typ), " "), domain.HoldingsSectionType)
}

func classify(typ string, bodySeen bool) domain.SectionKind {
	switch {
	case IsHoldingsType(typ):
		return domain.SectionHoldings
	case !bodySeen:
		return domain.SectionBody
	default:
		return domain.SectionUnknown
	}
}

func findBoundaries(raw string) []boundary {
	matches := typeBoundary.FindAllStringSubmatchIndex(raw, -1)
	bounds := make([]boundary, 0, len(matches))
	for _, m := range matches {
		contentStart := m[1]
		if contentStart < len(raw) && raw[contentStart] == '\n' {
			contentStart++
		}
		bounds = append(bounds, boundary{
			lineStart:    m[0],
			contentStart: contentStart,
			typ:          raw[m[2]:m[3]],
		})
	}
	return bounds
}

// headerOnly accepts a boundary-free submission only when it carries a
// complete <SEC-HEADER> block.
func headerOnly(raw string) (*domain.SubmissionDocument, error) {
	if secHeaderClosed.MatchString(raw) {
		return &domain.SubmissionDocument{
			Raw:      raw,
			Sections: []domain.Section{{Kind: domain.SectionHeader, Content: raw}},
		}, nil
	}
	if secHeaderOpen.MatchString(raw) {
		return nil, fmt.Errorf("%w: unterminated SEC-HEADER block", domain.ErrMalformedDocument)
	}
	return nil, fmt.Errorf("%w: no section boundaries", domain.ErrMalformedDocument)
}
