package domain

import "time"

// FilingLink is one row of a filing-link manifest.
type FilingLink struct {
	// FormType is the filing form (e.g. "13F-HR").
	FormType string `yaml:"form_type"`

	// URL is the filing detail (index) page.
	URL string `yaml:"url"`

	// Period is an optional period of report hint (YYYYMMDD).
	Period string `yaml:"period,omitempty"`
}

// Manifest is a named list of filing links. The name is what the router
// matches against to choose a target directory.
type Manifest struct {
	Name  string
	Path  string
	Links []FilingLink
}

// RouteRule maps a case-insensitive keyword in a manifest name to a target
// directory name under the raw submissions directory.
type RouteRule struct {
	Keyword string
	Target  string
}

// StoredFiling is a converted filing recorded in the catalog.
type StoredFiling struct {
	ID              string    `json:"id"`
	AccessionNumber string    `json:"accession_number"`
	SubmissionType  string    `json:"submission_type"`
	Period          string    `json:"period"`
	FilerName       string    `json:"filer_name"`
	CIK             string    `json:"cik"`
	SourcePath      string    `json:"source_path"`
	OutputPath      string    `json:"output_path"`
	HoldingCount    int       `json:"holding_count"`
	SkippedCount    int       `json:"skipped_count"`
	TotalValue      int64     `json:"total_value"`
	ConvertedAt     time.Time `json:"converted_at"`
}

// HoldingMatch is a holdings row found by CUSIP across filings.
type HoldingMatch struct {
	Filing  StoredFiling  `json:"filing"`
	Holding HoldingRecord `json:"holding"`
}
