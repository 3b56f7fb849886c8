package driven

import (
	"context"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
)

// SubmissionReader loads a submission's full text.
type SubmissionReader interface {
	// Read returns the text of the submission at path.
	// Compressed submissions are decompressed transparently.
	Read(ctx context.Context, path string) (string, error)
}

// WorkbookWriter persists a conversion's record sets.
type WorkbookWriter interface {
	// Format returns the output format this writer produces.
	Format() domain.OutputFormat

	// Write stores the record sets under dir using base as the file stem.
	// Returns the paths written, or none when the overwrite policy skipped them.
	Write(ctx context.Context, conv *domain.Conversion, dir, base string) ([]string, error)
}
