package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// maxAttempts is the fixed number of tries per oracle call.
	maxAttempts = 2
	// retryPause separates the two attempts. There is no growing backoff.
	retryPause = 500 * time.Millisecond
	// maxResponseSize caps provider response bodies (2MB).
	maxResponseSize = 2 << 20
)

// APIError is a non-200 response from a model provider.
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: HTTP %d: %s", e.Provider, e.StatusCode, e.Body)
}

// Retryable reports whether the failure is transient (rate limit, server error).
func (e *APIError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests ||
		e.StatusCode >= http.StatusInternalServerError
}

// completeWithRetry runs call up to maxAttempts times, stopping early on
// non-retryable API errors or context cancellation.
func completeWithRetry(ctx context.Context, provider string, call func(context.Context) (string, error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		result, err := call(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		var ae *APIError
		if errors.As(err, &ae) && !ae.Retryable() {
			return "", fmt.Errorf("%s: %w", provider, err)
		}

		if attempt < maxAttempts-1 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(retryPause):
			}
		}
	}
	return "", fmt.Errorf("%s: %w", provider, lastErr)
}

// postJSON sends body to url and returns the response body of a 200 reply.
func postJSON(ctx context.Context, hc *http.Client, provider, url string, headers map[string]string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Provider: provider, StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return respBody, nil
}
