package driving

import "context"

// ScrapeService downloads submissions listed in filing-link manifests.
type ScrapeService interface {
	// Scrape processes one manifest.
	Scrape(ctx context.Context, manifestPath string) (*ScrapeReport, error)

	// ScrapeAll processes every manifest in the configured links directory.
	ScrapeAll(ctx context.Context) ([]ScrapeReport, error)
}

// ScrapeReport summarises one manifest run.
type ScrapeReport struct {
	// Manifest is the manifest path.
	Manifest string

	// Target is the routed directory name.
	Target string

	// Saved lists the submission files written.
	Saved []string

	// Skipped counts rows ignored by form type or overwrite policy.
	Skipped int

	// Failures lists rows that could not be downloaded.
	Failures []ScrapeFailure
}

// ScrapeFailure records one failed manifest row.
type ScrapeFailure struct {
	URL string
	Err error
}
