package domain

import "time"

const unknownDescription = "Unknown"

// PathSettings holds the working directories.
type PathSettings struct {
	// RawDir receives downloaded submissions, one subdirectory per route target.
	RawDir string

	// OutputDir receives converted workbooks, one subdirectory per issuer.
	OutputDir string

	// LinksDir holds filing-link manifests.
	LinksDir string

	// DataDir holds the filing catalog database.
	DataDir string
}

// ScrapeSettings configures submission downloads.
type ScrapeSettings struct {
	// BaseURL is prepended to relative submission links.
	BaseURL string

	// UserAgent is sent with every request.
	UserAgent string

	// Timeout bounds each request.
	Timeout time.Duration

	// FormType is the form a manifest row must contain to be fetched.
	FormType string
}

// OutputSettings configures conversion output.
type OutputSettings struct {
	// Format selects the workbook writer.
	Format OutputFormat

	// Overwrite applies to workbooks and downloaded submissions.
	Overwrite OverwritePolicy

	// Catalog records each conversion in the filing catalog.
	Catalog bool
}

// ProcessorSettings toggles optional record processors.
type ProcessorSettings struct {
	// Category adds the class_category column to holdings.
	Category bool

	// DetailedCategory uses the detailed taxonomy instead of ETF/Warrant.
	DetailedCategory bool
}

// Settings is the complete application configuration.
type Settings struct {
	Paths      PathSettings
	Scrape     ScrapeSettings
	Output     OutputSettings
	Processors ProcessorSettings
	Routes     []RouteRule
}

// DefaultUserAgent identifies the tool to the filing system.
const DefaultUserAgent = "holdings-cli/1.0 (contact: dev@example.com)"

// DefaultSettings returns the default configuration.
func DefaultSettings() Settings {
	return Settings{
		Paths: PathSettings{
			RawDir:    "data/raw_13F_HR",
			OutputDir: "data/extracted_13F_HR",
			LinksDir:  "data/edgar_links",
		},
		Scrape: ScrapeSettings{
			BaseURL:   "https://www.sec.gov",
			UserAgent: DefaultUserAgent,
			Timeout:   20 * time.Second,
			FormType:  "13F-HR",
		},
		Output: OutputSettings{
			Format:    OutputXLSX,
			Overwrite: OverwriteTimestamp,
			Catalog:   true,
		},
		Routes: DefaultRoutes(),
	}
}

// DefaultRoutes returns the built-in manifest routing rules.
func DefaultRoutes() []RouteRule {
	return []RouteRule{
		{Keyword: "blackrock", Target: "blackrock"},
		{Keyword: "vanguard", Target: "vanguard"},
	}
}
