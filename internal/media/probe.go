package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Prober checks that a media URL is reachable before it is committed to.
type Prober interface {
	Probe(ctx context.Context, url string) error
}

// HTTPProber issues a HEAD request, retrying as a GET when HEAD is not allowed.
type HTTPProber struct {
	client *http.Client
}

// NewHTTPProber creates a prober with the given per-request timeout.
func NewHTTPProber(timeout time.Duration) *HTTPProber {
	return &HTTPProber{client: &http.Client{Timeout: timeout}}
}

// Probe returns nil when url answers with a 2xx status.
func (p *HTTPProber) Probe(ctx context.Context, url string) error {
	status, err := p.do(ctx, http.MethodHead, url)
	if err != nil {
		return err
	}
	if status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented {
		if status, err = p.do(ctx, http.MethodGet, url); err != nil {
			return err
		}
	}
	if status < 200 || status > 299 {
		return fmt.Errorf("probe %s: HTTP %d", url, status)
	}
	return nil
}

func (p *HTTPProber) do(ctx context.Context, method, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, fmt.Errorf("probe request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w", url, err)
	}
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
	return resp.StatusCode, nil
}

// probeOK applies p when it is configured.
func probeOK(ctx context.Context, p Prober, url string) error {
	if p == nil {
		return nil
	}
	return p.Probe(ctx, url)
}
