package media

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultGiphyURL is the GIPHY search endpoint.
const DefaultGiphyURL = "https://api.giphy.com/v1/gifs/search"

// maxSearchBody caps search responses (2MB).
const maxSearchBody = 2 << 20

// GiphyClient implements Searcher against the GIPHY search API.
type GiphyClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// GiphyOption configures the GIPHY client.
type GiphyOption func(*GiphyClient)

// WithGiphyURL overrides the search endpoint.
func WithGiphyURL(u string) GiphyOption {
	return func(c *GiphyClient) { c.baseURL = strings.TrimRight(u, "/") }
}

// NewGiphyClient creates a GIPHY search client.
func NewGiphyClient(apiKey string, timeout time.Duration, opts ...GiphyOption) *GiphyClient {
	c := &GiphyClient{
		apiKey:     apiKey,
		baseURL:    DefaultGiphyURL,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type giphyImage struct {
	URL string `json:"url"`
}

type giphyResponse struct {
	Data []struct {
		Images struct {
			Original  giphyImage `json:"original"`
			Downsized giphyImage `json:"downsized"`
		} `json:"images"`
	} `json:"data"`
	Meta struct {
		Status int    `json:"status"`
		Msg    string `json:"msg"`
	} `json:"meta"`
}

// Search returns up to limit GIF URLs for query, filtered by content rating.
func (c *GiphyClient) Search(ctx context.Context, query string, limit int, rating string) ([]string, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("rating", rating)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("giphy search: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSearchBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("giphy search: HTTP %d", resp.StatusCode)
	}

	var gr giphyResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return nil, fmt.Errorf("decode giphy response: %w", err)
	}

	urls := make([]string, 0, len(gr.Data))
	for _, d := range gr.Data {
		u := d.Images.Original.URL
		if u == "" {
			u = d.Images.Downsized.URL
		}
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls, nil
}
