package media

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yangwenmai/holidaymeme/internal/model"
)

// Searcher queries a media search service and returns candidate media URLs.
type Searcher interface {
	Search(ctx context.Context, query string, limit int, rating string) ([]string, error)
}

// genericQueries follow the holiday-specific queries.
var genericQueries = []string{"programmer celebration", "developer happy dance"}

// SearchTier tries each searcher with a short, ordered list of queries and
// accepts the first result that is reachable.
type SearchTier struct {
	searchers []Searcher
	probe     Prober
	limit     int
	rating    string
}

// NewSearchTier creates the search tier. probe may be nil.
func NewSearchTier(probe Prober, limit int, rating string, searchers ...Searcher) *SearchTier {
	if limit <= 0 {
		limit = 5
	}
	if rating == "" {
		rating = "g"
	}
	return &SearchTier{searchers: searchers, probe: probe, limit: limit, rating: rating}
}

func (t *SearchTier) Name() string { return TierSearch }

// Queries returns the ordered query strings for a holiday.
func Queries(h model.Holiday) []string {
	qs := make([]string, 0, 2+len(genericQueries))
	if h.Name != "" {
		qs = append(qs, h.Name, h.Name+" programming")
	}
	return append(qs, genericQueries...)
}

func (t *SearchTier) Resolve(ctx context.Context, req Request) (model.MediaArtifact, error) {
	for _, s := range t.searchers {
		for _, q := range Queries(req.Holiday) {
			urls, err := s.Search(ctx, q, t.limit, t.rating)
			if err != nil {
				slog.Debug("media search failed", "tier", TierSearch, "query", q, "error", err)
				if ctx.Err() != nil {
					return model.MediaArtifact{}, fmt.Errorf("%w: %w", model.ErrMediaUnavailable, ctx.Err())
				}
				continue
			}
			for _, u := range urls {
				if u == "" {
					continue
				}
				if err := probeOK(ctx, t.probe, u); err != nil {
					slog.Debug("media result unreachable", "tier", TierSearch, "url", u, "error", err)
					continue
				}
				return model.ImageArtifact(u), nil
			}
		}
	}
	return model.MediaArtifact{}, fmt.Errorf("%w: no reachable search result", model.ErrMediaUnavailable)
}
