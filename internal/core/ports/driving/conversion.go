package driving

import (
	"context"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
)

// ConversionService turns submissions into record sets.
type ConversionService interface {
	// Convert parses raw submission text. Returns ErrMalformedDocument
	// when the text has no section structure; no record sets are produced.
	Convert(ctx context.Context, raw string) (*domain.Conversion, error)

	// ConvertFile reads and parses the submission at path.
	ConvertFile(ctx context.Context, path string) (*domain.Conversion, error)

	// Extract converts the submission at path, writes its workbook and,
	// when enabled, records it in the filing catalog.
	Extract(ctx context.Context, path string, opts ExtractOptions) (*ExtractResult, error)
}

// ExtractOptions override configured output settings for one extraction.
// Zero values fall back to the configured settings.
type ExtractOptions struct {
	// OutputDir replaces the configured output directory.
	OutputDir string

	// Format replaces the configured output format.
	Format domain.OutputFormat

	// SkipCatalog disables catalog recording.
	SkipCatalog bool
}

// ExtractResult describes one completed extraction.
type ExtractResult struct {
	// Conversion holds the record sets.
	Conversion *domain.Conversion

	// Issuer is the output subdirectory name derived from the source path.
	Issuer string

	// Period is the resolved period of report (YYYYMMDD).
	Period string

	// Paths lists the files written. Empty when the overwrite policy skipped them.
	Paths []string

	// Filing is the catalog entry, if recorded.
	Filing *domain.StoredFiling
}
