package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driven"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driving"
	"github.com/custodia-labs/holdings-cli/internal/logger"
)

// Ensure ScrapeService implements the interface.
var _ driving.ScrapeService = (*ScrapeService)(nil)

// ScrapeService downloads the submissions listed in filing-link manifests
// into the raw submissions directory.
type ScrapeService struct {
	fetcher   driven.Fetcher
	pages     driven.FilingPageParser
	manifests []driven.ManifestReader
	router    driven.Router
	archive   driven.SubmissionArchive
	settings  driving.SettingsService
}

// NewScrapeService creates a new scrape service.
func NewScrapeService(
	fetcher driven.Fetcher,
	pages driven.FilingPageParser,
	manifests []driven.ManifestReader,
	router driven.Router,
	archive driven.SubmissionArchive,
	settings driving.SettingsService,
) *ScrapeService {
	return &ScrapeService{
		fetcher:   fetcher,
		pages:     pages,
		manifests: manifests,
		router:    router,
		archive:   archive,
		settings:  settings,
	}
}

// Scrape processes one manifest. Row failures are collected in the report;
// an error is returned only when the manifest itself cannot be used.
func (s *ScrapeService) Scrape(ctx context.Context, manifestPath string) (*driving.ScrapeReport, error) {
	settings, err := s.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	reader, err := s.readerFor(manifestPath)
	if err != nil {
		return nil, err
	}

	manifest, err := reader.Read(ctx, manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	target, err := s.router.Route(manifest.Name)
	if err != nil {
		return nil, fmt.Errorf("route %s: %w", manifest.Name, err)
	}

	logger.Section("Scrape " + manifest.Name)
	logger.Info("Routing %d links to %s", len(manifest.Links), target)

	report := &driving.ScrapeReport{
		Manifest: manifestPath,
		Target:   target,
	}

	for _, link := range manifest.Links {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if !matchesFormType(link.FormType, settings.Scrape.FormType) {
			logger.Debug("Skipping %s filing %s", link.FormType, link.URL)
			report.Skipped++
			continue
		}

		path, err := s.download(ctx, target, link)
		if err != nil {
			logger.Warn("Failed %s: %v", link.URL, err)
			report.Failures = append(report.Failures, driving.ScrapeFailure{URL: link.URL, Err: err})
			continue
		}
		if path == "" {
			report.Skipped++
			continue
		}
		report.Saved = append(report.Saved, path)
	}

	logger.Info("Saved %d, skipped %d, failed %d", len(report.Saved), report.Skipped, len(report.Failures))
	return report, nil
}

// ScrapeAll processes every manifest in the configured links directory.
// A manifest that cannot be used does not stop the others.
func (s *ScrapeService) ScrapeAll(ctx context.Context) ([]driving.ScrapeReport, error) {
	settings, err := s.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	paths, err := s.listManifests(settings.Paths.LinksDir)
	if err != nil {
		return nil, err
	}

	var reports []driving.ScrapeReport //nolint:prealloc // failed manifests add no report
	var errs []error
	for _, path := range paths {
		report, err := s.Scrape(ctx, path)
		if report != nil {
			reports = append(reports, *report)
		}
		if err != nil {
			if ctx.Err() != nil {
				return reports, err
			}
			logger.Warn("Manifest %s: %v", path, err)
			errs = append(errs, fmt.Errorf("%s: %w", filepath.Base(path), err))
		}
	}

	return reports, errors.Join(errs...)
}

// download fetches the filing page, finds the submission link and period,
// then stores the submission. Returns "" when the archive skipped it.
func (s *ScrapeService) download(ctx context.Context, target string, link domain.FilingLink) (string, error) {
	body, err := s.fetcher.Fetch(ctx, link.URL)
	if err != nil {
		return "", err
	}

	page, err := s.pages.ParseFilingPage(body, link.URL)
	if err != nil {
		return "", err
	}

	data, err := s.fetcher.Fetch(ctx, page.SubmissionURL)
	if err != nil {
		return "", err
	}

	period := page.Period
	if period == "" {
		period = link.Period
	}
	if period == "" {
		period = PeriodFromSubmission(string(data))
	}
	safe, err := safePeriod(period)
	if err != nil {
		return "", err
	}

	path, err := s.archive.Save(ctx, target, safe, data)
	if err != nil {
		return "", fmt.Errorf("save submission: %w", err)
	}
	if path != "" {
		logger.Debug("Saved %s", path)
	}
	return path, nil
}

// safePeriod keeps only the digits of a period, which must leave YYYYMMDD.
func safePeriod(period string) (string, error) {
	if period == "" {
		return "", domain.ErrMissingPeriod
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, period)
	if len(digits) != 8 {
		return "", fmt.Errorf("unsafe period %q: %w", period, domain.ErrMissingPeriod)
	}
	return digits, nil
}

func (s *ScrapeService) readerFor(path string) (driven.ManifestReader, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, r := range s.manifests {
		for _, e := range r.Extensions() {
			if e == ext {
				return r, nil
			}
		}
	}
	return nil, fmt.Errorf("manifest %s: %w", filepath.Base(path), domain.ErrUnsupportedType)
}

func (s *ScrapeService) listManifests(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list manifests: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || strings.HasPrefix(e.Name(), "~$") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if _, err := s.readerFor(path); err == nil {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// matchesFormType reports whether a manifest row's form type contains the
// wanted form. An empty wanted form accepts every row.
func matchesFormType(formType, want string) bool {
	if want == "" {
		return true
	}
	return strings.Contains(strings.ToUpper(formType), strings.ToUpper(want))
}
