package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driven"
)

// mockReader implements driven.SubmissionReader from an in-memory map.
type mockReader struct {
	files map[string]string
}

func (m *mockReader) Read(_ context.Context, path string) (string, error) {
	raw, ok := m.files[path]
	if !ok {
		return "", fmt.Errorf("open %s: %w", path, domain.ErrNotFound)
	}
	return raw, nil
}

// mockWriter implements driven.WorkbookWriter and records its calls.
type mockWriter struct {
	format domain.OutputFormat
	err    error

	mu    sync.Mutex
	calls []string
}

func (m *mockWriter) Format() domain.OutputFormat { return m.format }

func (m *mockWriter) Write(_ context.Context, _ *domain.Conversion, dir, base string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, dir+"/"+base)
	if m.err != nil {
		return nil, m.err
	}
	return []string{dir + "/" + base + "." + string(m.format)}, nil
}

// mockFetcher implements driven.Fetcher from an in-memory map.
type mockFetcher struct {
	pages   map[string]string
	fetched []string
}

func (m *mockFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	m.fetched = append(m.fetched, url)
	body, ok := m.pages[url]
	if !ok {
		return nil, fmt.Errorf("GET %s: status 404: %w", url, domain.ErrFetchFailed)
	}
	return []byte(body), nil
}

// mockPageParser implements driven.FilingPageParser. The page body is
// "<period>|<submission url>".
type mockPageParser struct{}

func (mockPageParser) ParseFilingPage(body []byte, _ string) (*driven.FilingPage, error) {
	period, link, found := strings.Cut(string(body), "|")
	if !found || link == "" {
		return nil, domain.ErrNoSubmissionLink
	}
	return &driven.FilingPage{Period: period, SubmissionURL: link}, nil
}

// mockManifestReader implements driven.ManifestReader.
type mockManifestReader struct {
	manifests map[string]*domain.Manifest
}

func (m *mockManifestReader) Read(_ context.Context, path string) (*domain.Manifest, error) {
	manifest, ok := m.manifests[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return manifest, nil
}

func (m *mockManifestReader) Extensions() []string { return []string{".yaml"} }

// mockRouter implements driven.Router with exact names.
type mockRouter struct {
	routes map[string]string
}

func (m *mockRouter) Route(name string) (string, error) {
	target, ok := m.routes[name]
	if !ok {
		return "", domain.ErrNoRoute
	}
	return target, nil
}

// mockArchive implements driven.SubmissionArchive in memory.
type mockArchive struct {
	existing map[string]bool
	saved    map[string][]byte
}

func (m *mockArchive) Save(_ context.Context, target, period string, data []byte) (string, error) {
	path := target + "/" + period + ".txt"
	if m.existing[path] {
		return "", nil
	}
	if m.saved == nil {
		m.saved = make(map[string][]byte)
	}
	m.saved[path] = data
	return path, nil
}

// failingProcessor implements driven.RecordProcessorPipeline and always fails.
type failingProcessor struct{}

func (failingProcessor) Process(context.Context, *domain.Conversion) error {
	return errors.New("processor failed")
}

// fixedSplitter implements driven.SectionSplitter with a fixed document.
type fixedSplitter struct {
	doc *domain.SubmissionDocument
}

func (f fixedSplitter) Split(string) (*domain.SubmissionDocument, error) {
	return f.doc, nil
}
