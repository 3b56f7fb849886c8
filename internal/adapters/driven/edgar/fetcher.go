// Package edgar provides adapters for the SEC EDGAR filing system: an HTTP
// fetcher and a parser for filing index pages.
package edgar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driven"
)

// Ensure Fetcher implements the interface.
var _ driven.Fetcher = (*Fetcher)(nil)

// Default configuration values.
const (
	DefaultTimeout = 20 * time.Second

	// maxBodySize bounds a single response. Large 13F submissions run to
	// tens of megabytes.
	maxBodySize = 256 << 20
)

// Config holds configuration for the fetcher.
type Config struct {
	// UserAgent is sent with every request. EDGAR rejects requests without one.
	UserAgent string

	// Timeout is the request timeout (default: 20s).
	Timeout time.Duration

	// Client replaces the default HTTP client.
	Client *http.Client
}

// Fetcher retrieves EDGAR pages over HTTP.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher creates a new fetcher.
func NewFetcher(cfg Config) *Fetcher {
	if cfg.UserAgent == "" {
		cfg.UserAgent = domain.DefaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Fetcher{
		client:    client,
		userAgent: cfg.UserAgent,
	}
}

// Fetch returns the body of url. Any status other than 200 wraps ErrFetchFailed.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w: %w", url, domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d: %w", url, resp.StatusCode, domain.ErrFetchFailed)
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("GET %s: read body: %w", url, err)
	}
	return body, nil
}
