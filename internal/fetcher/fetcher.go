package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const maxPageBodySize = 5 << 20 // 5MB; large enough for any realistic page

// connection pooling limits to prevent resource exhaustion when fetching many pages
const (
	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 10
	defaultMaxConnsPerHost     = 10
	defaultIdleConnTimeout     = 60 * time.Second
)

// Fetcher retrieves pages over HTTP and extracts their anchor references.
//
// Timeouts are applied per-request via context rather than a global client
// timeout. Page bodies are limited to 5MB to prevent memory issues.
type Fetcher struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
}

// New creates a page [Fetcher] with the given User-Agent header and
// per-request timeout.
//
// The underlying client follows redirects on page fetches (a moved page
// should still have its links checked) and is configured with connection
// pooling limits matching the resolver's.
func New(userAgent string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			// no default timeout - we use per-request timeouts via context
			Transport: &http.Transport{
				MaxIdleConns:        defaultMaxIdleConns,
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				MaxConnsPerHost:     defaultMaxConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
			},
		},
		userAgent: userAgent,
		timeout:   timeout,
	}
}

// PageLinks fetches pageURL and returns its anchor references in document
// order. Relative references are resolved against pageURL.
//
// Any failure (unparseable URL, transport error, non-2xx status, broken
// HTML stream) is returned as an error; the page then simply contributes
// no links.
func (f *Fetcher) PageLinks(ctx context.Context, pageURL string) ([]LinkRef, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page URL: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build page request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch page: unexpected status %d", resp.StatusCode)
	}

	links, err := ExtractLinks(io.LimitReader(resp.Body, maxPageBodySize), base)
	if err != nil {
		return nil, fmt.Errorf("extract links: %w", err)
	}
	return links, nil
}

// Close closes all idle connections in the fetcher's connection pool.
//
// Safe to call multiple times. After Close, the fetcher remains usable but
// new connections will be established as needed.
func (f *Fetcher) Close() {
	if f == nil || f.client == nil {
		return
	}
	if transport, ok := f.client.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}
