package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/holdings-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driven"
)

type scrapeFixture struct {
	svc     *ScrapeService
	fetcher *mockFetcher
	archive *mockArchive
	links   string
}

func newScrapeFixture(t *testing.T) *scrapeFixture {
	t.Helper()

	links := t.TempDir()
	blackrock := filepath.Join(links, "blackrock_links.yaml")
	unrouted := filepath.Join(links, "acme_links.yaml")
	for _, p := range []string{blackrock, unrouted, filepath.Join(links, "notes.txt")} {
		require.NoError(t, os.WriteFile(p, nil, 0600))
	}

	fetcher := &mockFetcher{pages: map[string]string{
		"https://sec.test/q4-index.htm": "20231231|https://sec.test/q4.txt",
		"https://sec.test/q4.txt":       "Q4 SUBMISSION",
		"https://sec.test/q3-index.htm": "|https://sec.test/q3.txt",
		"https://sec.test/q3.txt":       "Q3 SUBMISSION",
		"https://sec.test/nolink.htm":   "20230630|",
		"https://sec.test/noperiod.htm": "|https://sec.test/x.txt",
		"https://sec.test/existing.htm": "20230331|https://sec.test/existing.txt",
		"https://sec.test/existing.txt": "OLD",
		"https://sec.test/x.txt":        "no period here",
		"https://sec.test/text.htm":     "|https://sec.test/text.txt",
		"https://sec.test/text.txt":     "CONFORMED PERIOD OF REPORT:\t20230630\n",
	}}

	manifests := &mockManifestReader{manifests: map[string]*domain.Manifest{
		blackrock: {
			Name: "blackrock_links",
			Links: []domain.FilingLink{
				{FormType: "13F-HR", URL: "https://sec.test/q4-index.htm"},
				{FormType: "13F-HR/A", URL: "https://sec.test/q3-index.htm", Period: "20230930"},
				{FormType: "SC 13G", URL: "https://sec.test/ignored.htm"},
				{FormType: "13F-HR", URL: "https://sec.test/nolink.htm"},
				{FormType: "13F-HR", URL: "https://sec.test/noperiod.htm"},
				{FormType: "13F-HR", URL: "https://sec.test/missing.htm"},
				{FormType: "13F-HR", URL: "https://sec.test/existing.htm"},
				{FormType: "13F-HR", URL: "https://sec.test/text.htm"},
			},
		},
		unrouted: {Name: "acme_links"},
	}}

	archive := &mockArchive{existing: map[string]bool{"blackrock/20230331.txt": true}}
	settings := NewSettingsService(memory.NewConfigStoreFrom(map[string]any{"paths.links_dir": links}))

	svc := NewScrapeService(
		fetcher,
		mockPageParser{},
		[]driven.ManifestReader{manifests},
		&mockRouter{routes: map[string]string{"blackrock_links": "blackrock"}},
		archive,
		settings,
	)
	return &scrapeFixture{svc: svc, fetcher: fetcher, archive: archive, links: links}
}

func TestScrapeService_Scrape(t *testing.T) {
	f := newScrapeFixture(t)

	report, err := f.svc.Scrape(context.Background(), filepath.Join(f.links, "blackrock_links.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "blackrock", report.Target)
	assert.Equal(t, []string{
		"blackrock/20231231.txt",
		"blackrock/20230930.txt",
		"blackrock/20230630.txt",
	}, report.Saved)
	assert.Equal(t, "Q4 SUBMISSION", string(f.archive.saved["blackrock/20231231.txt"]))
	assert.Equal(t, "Q3 SUBMISSION", string(f.archive.saved["blackrock/20230930.txt"]))

	// One row of another form, one already archived.
	assert.Equal(t, 2, report.Skipped)
	assert.NotContains(t, f.fetcher.fetched, "https://sec.test/ignored.htm")

	require.Len(t, report.Failures, 3)
	assert.ErrorIs(t, report.Failures[0].Err, domain.ErrNoSubmissionLink)
	assert.ErrorIs(t, report.Failures[1].Err, domain.ErrMissingPeriod)
	assert.ErrorIs(t, report.Failures[2].Err, domain.ErrFetchFailed)
	assert.Equal(t, "https://sec.test/missing.htm", report.Failures[2].URL)
}

func TestScrapeService_Scrape_NoRoute(t *testing.T) {
	f := newScrapeFixture(t)

	_, err := f.svc.Scrape(context.Background(), filepath.Join(f.links, "acme_links.yaml"))
	assert.ErrorIs(t, err, domain.ErrNoRoute)
}

func TestScrapeService_Scrape_UnsupportedManifest(t *testing.T) {
	f := newScrapeFixture(t)

	_, err := f.svc.Scrape(context.Background(), filepath.Join(f.links, "notes.txt"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestScrapeService_Scrape_Cancelled(t *testing.T) {
	f := newScrapeFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := f.svc.Scrape(ctx, filepath.Join(f.links, "blackrock_links.yaml"))
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	assert.Empty(t, report.Saved)
}

func TestScrapeService_ScrapeAll(t *testing.T) {
	f := newScrapeFixture(t)

	reports, err := f.svc.ScrapeAll(context.Background())

	// The unrouted manifest fails without stopping the other.
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoRoute)
	require.Len(t, reports, 1)
	assert.Equal(t, "blackrock", reports[0].Target)
	assert.Len(t, reports[0].Saved, 3)
}

func TestScrapeService_ScrapeAll_MissingLinksDir(t *testing.T) {
	f := newScrapeFixture(t)
	f.svc.settings = NewSettingsService(memory.NewConfigStoreFrom(map[string]any{
		"paths.links_dir": filepath.Join(f.links, "missing"),
	}))

	_, err := f.svc.ScrapeAll(context.Background())
	assert.Error(t, err)
}

func TestSafePeriod(t *testing.T) {
	got, err := safePeriod("2023-12-31")
	require.NoError(t, err)
	assert.Equal(t, "20231231", got)

	_, err = safePeriod("../../etc")
	assert.ErrorIs(t, err, domain.ErrMissingPeriod)

	_, err = safePeriod("")
	assert.ErrorIs(t, err, domain.ErrMissingPeriod)
}

func TestMatchesFormType(t *testing.T) {
	assert.True(t, matchesFormType("13F-HR", "13F-HR"))
	assert.True(t, matchesFormType("13f-hr/a", "13F-HR"))
	assert.False(t, matchesFormType("13F-NT", "13F-HR"))
	assert.True(t, matchesFormType("anything", ""))
}
