package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	nurl "net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
)

// DefaultPageBaseURL is where holiday reference pages are looked up.
const DefaultPageBaseURL = "https://en.wikipedia.org/wiki/"

// maxPageSize caps fetched reference pages (5MB).
const maxPageSize = 5 * 1024 * 1024

// PageImageSearcher implements Searcher by fetching the reference page named
// after the query and returning the page's lead image.
type PageImageSearcher struct {
	baseURL string
	client  *http.Client
}

// NewPageImageSearcher creates a searcher rooted at baseURL.
func NewPageImageSearcher(baseURL string, timeout time.Duration) *PageImageSearcher {
	if baseURL == "" {
		baseURL = DefaultPageBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &PageImageSearcher{baseURL: baseURL, client: &http.Client{Timeout: timeout}}
}

// Search returns at most one URL: the lead image of the page for query.
// limit and rating do not apply to reference pages.
func (s *PageImageSearcher) Search(ctx context.Context, query string, _ int, _ string) ([]string, error) {
	pageURL := s.baseURL + nurl.PathEscape(strings.ReplaceAll(strings.TrimSpace(query), " ", "_"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "holidaymeme/1.0 (+https://github.com/yangwenmai/holidaymeme)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, pageURL)
	}

	parsed, err := nurl.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page url: %w", err)
	}
	article, err := readability.FromReader(io.LimitReader(resp.Body, maxPageSize), parsed)
	if err != nil {
		return nil, fmt.Errorf("readability: %w", err)
	}
	if article.Image == "" {
		return nil, nil
	}

	img, err := parsed.Parse(article.Image)
	if err != nil {
		return nil, fmt.Errorf("parse lead image: %w", err)
	}
	return []string{img.String()}, nil
}
