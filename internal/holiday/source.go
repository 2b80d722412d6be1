// Package holiday resolves a calendar day to its candidate holidays, preferring
// a live holiday service and degrading to a static table.
package holiday

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yangwenmai/holidaymeme/internal/model"
)

// Source fetches today's candidates. Fetch never fails and never returns an empty list.
type Source struct {
	fetcher Fetcher
	table   *Table
	country string
	timeout time.Duration
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithCountry sets the country code sent to the remote service (default US).
func WithCountry(country string) SourceOption {
	return func(s *Source) {
		if country != "" {
			s.country = country
		}
	}
}

// WithTimeout bounds the remote lookup; expiry counts as a failed lookup.
func WithTimeout(d time.Duration) SourceOption {
	return func(s *Source) { s.timeout = d }
}

// WithTable replaces the static fallback table.
func WithTable(t *Table) SourceOption {
	return func(s *Source) {
		if t != nil {
			s.table = t
		}
	}
}

// NewSource creates a Source. A nil fetcher always uses the static table.
func NewSource(f Fetcher, opts ...SourceOption) *Source {
	s := &Source{fetcher: f, table: NewTable(), country: "US"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch returns the live holidays for today, or the static table's entries when
// the service fails, times out or reports nothing.
func (s *Source) Fetch(ctx context.Context, today time.Time) []model.Holiday {
	holidays, err := s.fetchRemote(ctx, today)
	if err == nil && len(holidays) > 0 {
		return holidays
	}
	if err == nil {
		err = fmt.Errorf("%w: empty result", model.ErrSourceUnavailable)
	}
	slog.Warn("using fallback holidays", "stage", model.StageSource, "error", err)
	return s.table.Lookup(today)
}

func (s *Source) fetchRemote(ctx context.Context, today time.Time) ([]model.Holiday, error) {
	if s.fetcher == nil {
		return nil, fmt.Errorf("%w: no remote configured", model.ErrSourceUnavailable)
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	holidays, err := s.fetcher.Fetch(ctx, s.country, today)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrSourceUnavailable, err)
	}
	return holidays, nil
}
