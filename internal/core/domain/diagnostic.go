package domain

import "fmt"

// DiagnosticKind classifies a non-fatal conversion problem.
type DiagnosticKind string

// Available diagnostic kinds.
const (
	// DiagnosticMissingRequiredField marks a holdings entry that was skipped.
	DiagnosticMissingRequiredField DiagnosticKind = "missing_required_field"
)

// Diagnostic records one per-record failure. The record it describes is
// absent from the output; the rest of the document is unaffected.
type Diagnostic struct {
	// Kind classifies the problem.
	Kind DiagnosticKind `json:"kind"`

	// Section is the raw type identifier of the section the record came from.
	Section string `json:"section,omitempty"`

	// Position is the 1-based index of the entry within the document's holdings.
	Position int `json:"position"`

	// Field names the missing or invalid sub-field.
	Field string `json:"field,omitempty"`

	// Message is a human-readable description.
	Message string `json:"message"`
}

// Err returns the diagnostic as an error wrapping the matching sentinel.
func (d Diagnostic) Err() error {
	switch d.Kind {
	case DiagnosticMissingRequiredField:
		return fmt.Errorf("entry %d: %w: %s", d.Position, ErrMissingRequiredField, d.Field)
	default:
		return fmt.Errorf("entry %d: %s", d.Position, d.Message)
	}
}

// String returns a one-line description.
func (d Diagnostic) String() string {
	return fmt.Sprintf("entry %d skipped: %s", d.Position, d.Message)
}
