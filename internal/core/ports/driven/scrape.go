package driven

import (
	"context"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
)

// Fetcher retrieves remote pages and submissions.
type Fetcher interface {
	// Fetch returns the body of url. Non-success responses wrap ErrFetchFailed.
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FilingPage is what a filing index page tells us about a submission.
type FilingPage struct {
	// Period is the period of report as YYYYMMDD, or empty.
	Period string

	// SubmissionURL is the absolute URL of the complete submission text file.
	SubmissionURL string
}

// FilingPageParser extracts submission details from a filing index page.
type FilingPageParser interface {
	// ParseFilingPage reads the page fetched from pageURL.
	// Returns ErrNoSubmissionLink if the page has no submission text link.
	ParseFilingPage(body []byte, pageURL string) (*FilingPage, error)
}

// ManifestReader loads filing-link manifests.
type ManifestReader interface {
	// Read returns the manifest at path.
	// Returns ErrUnsupportedType for unknown file extensions.
	Read(ctx context.Context, path string) (*domain.Manifest, error)

	// Extensions returns the file extensions this reader accepts.
	Extensions() []string
}

// Router maps a manifest name to a target directory name.
type Router interface {
	// Route returns the target for name. Returns ErrNoRoute when nothing matches.
	Route(name string) (string, error)
}

// SubmissionArchive stores downloaded submissions.
type SubmissionArchive interface {
	// Save writes data as <target>/<period>.txt and returns the path written.
	// Returns an empty path when the overwrite policy skipped the file.
	Save(ctx context.Context, target, period string, data []byte) (string, error)
}
