package holiday

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

	"github.com/yangwenmai/holidaymeme/internal/model"
)

// DefaultNinjasURL is the api-ninjas holidays endpoint.
const DefaultNinjasURL = "https://api.api-ninjas.com/v1/holidays"

// maxBodySize caps the holiday response body (1MB).
const maxBodySize = 1 << 20

// Fetcher looks up the holidays observed in a country on a given day.
type Fetcher interface {
	Fetch(ctx context.Context, country string, day time.Time) ([]model.Holiday, error)
}

// NinjasClient implements Fetcher against the api-ninjas holidays API.
type NinjasClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NinjasOption configures the holidays client.
type NinjasOption func(*NinjasClient)

// WithNinjasURL overrides the endpoint.
func WithNinjasURL(u string) NinjasOption {
	return func(c *NinjasClient) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithNinjasHTTPClient replaces the HTTP client.
func WithNinjasHTTPClient(hc *http.Client) NinjasOption {
	return func(c *NinjasClient) { c.httpClient = hc }
}

// NewNinjasClient creates a holidays client. An empty apiKey uses "demo".
func NewNinjasClient(apiKey string, opts ...NinjasOption) *NinjasClient {
	if apiKey == "" {
		apiKey = "demo"
	}
	c := &NinjasClient{
		apiKey:  apiKey,
		baseURL: DefaultNinjasURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type ninjasHoliday struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Type        string `json:"type"`
}

// Fetch performs a single GET keyed by country, year, month and day.
func (c *NinjasClient) Fetch(ctx context.Context, country string, day time.Time) ([]model.Holiday, error) {
	q := url.Values{}
	q.Set("country", country)
	q.Set("year", strconv.Itoa(day.Year()))
	q.Set("month", strconv.Itoa(int(day.Month())))
	q.Set("day", strconv.Itoa(day.Day()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch holidays: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("holidays API: HTTP %d", resp.StatusCode)
	}

	var raw []ninjasHoliday
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode holidays: %w", err)
	}

	out := make([]model.Holiday, 0, len(raw))
	for _, r := range raw {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			continue
		}
		category := r.Category
		if category == "" {
			category = r.Type
		}
		out = append(out, model.Holiday{Name: name, Description: r.Description, Category: category})
	}
	return out, nil
}
