package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxFetchBytes caps downloads so a hostile host cannot exhaust memory.
const maxFetchBytes = 10 << 20

// Fetcher downloads a remote resource. Used to pull candidate logo images
// found via search.
type Fetcher interface {
	// Fetch returns the body and Content-Type of a URL.
	Fetch(ctx context.Context, rawURL string) ([]byte, string, error)
}

var _ Fetcher = (*HTTPFetcher)(nil)

// HTTPFetcher fetches resources with browser-like headers. Many image hosts
// reject requests without a User-Agent.
type HTTPFetcher struct {
	httpClient *http.Client
}

// NewHTTPFetcher creates a fetcher with a request timeout
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch downloads rawURL and returns the body and Content-Type.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")
	req.Header.Set("Accept", "image/avif,image/webp,image/png,image/jpeg,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read body of %s: %w", rawURL, err)
	}

	return body, resp.Header.Get("Content-Type"), nil
}
