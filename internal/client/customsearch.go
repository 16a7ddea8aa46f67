package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const customSearchAPIBase = "https://www.googleapis.com/customsearch/v1"

// SearchClient defines the interface for web search lookups used during
// enrichment. GoogleSearchClient implements this interface.
type SearchClient interface {
	// SearchSnippets returns the text snippets of the top results for a query.
	SearchSnippets(ctx context.Context, query string, limit int) ([]string, error)

	// SearchImages returns direct image links for a query.
	SearchImages(ctx context.Context, query string, limit int) ([]string, error)
}

var _ SearchClient = (*GoogleSearchClient)(nil)

// GoogleSearchClient queries the Google Custom Search JSON API.
type GoogleSearchClient struct {
	httpClient  *http.Client
	apiKey      string
	cx          string
	rateLimiter *RateLimiter
	logger      *slog.Logger
}

// CustomSearchResponse represents the subset of the API response we consume
type CustomSearchResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"items"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewGoogleSearchClient creates a new Custom Search client
func NewGoogleSearchClient(apiKey, cx string, requestsPerSecond float64, logger *slog.Logger) *GoogleSearchClient {
	return &GoogleSearchClient{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		apiKey:      apiKey,
		cx:          cx,
		rateLimiter: NewRateLimiter(requestsPerSecond, 1),
		logger:      logger,
	}
}

// SearchSnippets returns result snippets for a text query.
func (c *GoogleSearchClient) SearchSnippets(ctx context.Context, query string, limit int) ([]string, error) {
	resp, err := c.doSearch(ctx, query, limit, false)
	if err != nil {
		return nil, err
	}

	snippets := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Snippet != "" {
			snippets = append(snippets, item.Snippet)
		}
	}
	return snippets, nil
}

// SearchImages returns direct image links for a query.
func (c *GoogleSearchClient) SearchImages(ctx context.Context, query string, limit int) ([]string, error) {
	resp, err := c.doSearch(ctx, query, limit, true)
	if err != nil {
		return nil, err
	}

	links := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Link != "" {
			links = append(links, item.Link)
		}
	}
	return links, nil
}

func (c *GoogleSearchClient) doSearch(ctx context.Context, query string, limit int, images bool) (*CustomSearchResponse, error) {
	if c.apiKey == "" || c.cx == "" {
		return nil, fmt.Errorf("missing search API credentials")
	}
	if limit <= 0 || limit > 10 {
		limit = 10
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait failed: %w", err)
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.cx)
	params.Set("q", query)
	params.Set("num", fmt.Sprintf("%d", limit))
	if images {
		params.Set("searchType", "image")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, customSearchAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("search API returned non-200 status",
			"status", resp.StatusCode,
			"query", query,
		)
		return nil, fmt.Errorf("search API error (status %d): %s", resp.StatusCode, string(raw))
	}

	var searchResp CustomSearchResponse
	if err := json.Unmarshal(raw, &searchResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if searchResp.Error != nil {
		return nil, fmt.Errorf("search API error: %s", searchResp.Error.Message)
	}

	return &searchResp, nil
}
