package domain

// SectionKind identifies how a section of a submission is parsed.
type SectionKind string

// Available section kinds.
const (
	// SectionHeader is the leading metadata block of the submission.
	SectionHeader SectionKind = "header"

	// SectionBody is the filing-type specific document (e.g. 13F-HR).
	SectionBody SectionKind = "body"

	// SectionHoldings is an information table document.
	SectionHoldings SectionKind = "holdings"

	// SectionUnknown is any other document type. It is kept so later
	// stages can decide to ignore it.
	SectionUnknown SectionKind = "unknown"
)

// IsValid returns true if the section kind is recognised.
func (k SectionKind) IsValid() bool {
	switch k {
	case SectionHeader, SectionBody, SectionHoldings, SectionUnknown:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k SectionKind) String() string {
	return string(k)
}

// HoldingsSectionType is the document type that carries the holdings table.
const HoldingsSectionType = "INFORMATION TABLE"

// Section is one contiguous region of a submission.
type Section struct {
	// Kind selects the parsing strategy.
	Kind SectionKind

	// Type is the raw type identifier that opened the section
	// (e.g. "13F-HR", "INFORMATION TABLE"). Empty for the header.
	Type string

	// Content is the section text, excluding the boundary token line.
	Content string

	// Offset is the byte offset of Content within the raw submission.
	Offset int
}

// SubmissionDocument is one filing's raw submission text and its decomposition
// into ordered sections. It lives only for the duration of one conversion.
type SubmissionDocument struct {
	// Raw is the full submission text.
	Raw string

	// Sections are ordered by position and never overlap.
	Sections []Section
}

// First returns the first section of the given kind.
func (d *SubmissionDocument) First(kind SectionKind) (Section, bool) {
	for _, s := range d.Sections {
		if s.Kind == kind {
			return s, true
		}
	}
	return Section{}, false
}

// All returns every section of the given kind in document order.
func (d *SubmissionDocument) All(kind SectionKind) []Section {
	var out []Section
	for _, s := range d.Sections {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}
