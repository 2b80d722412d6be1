package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yangwenmai/holidaymeme/internal/model"
)

// Ranker picks the most shareable holiday for an engineering audience.
// Without a usable oracle answer it keeps input order and returns the first candidate.
type Ranker struct {
	model   ModelClient
	timeout time.Duration
}

// NewRanker creates a Ranker. A nil client always picks the first candidate.
// A positive timeout bounds the oracle call.
func NewRanker(mc ModelClient, timeout time.Duration) *Ranker {
	return &Ranker{model: mc, timeout: timeout}
}

// Select returns one candidate. When the oracle's pick is used the returned
// copy carries its reason; candidates themselves are never modified.
func (r *Ranker) Select(ctx context.Context, candidates []model.Holiday) model.Holiday {
	if len(candidates) == 0 {
		return model.Holiday{}
	}
	if len(candidates) == 1 || r.model == nil {
		return candidates[0]
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	raw, err := r.model.Complete(ctx, buildRankPrompt(candidates))
	if err != nil {
		return r.fallback(candidates, fmt.Errorf("%w: %w", model.ErrRankingUnavailable, err))
	}

	name, reason, ok := parseRankResponse(raw)
	if !ok {
		return r.fallback(candidates, fmt.Errorf("%w: malformed answer %q", model.ErrRankingUnavailable, raw))
	}

	i := matchCandidate(candidates, name)
	if i < 0 {
		return r.fallback(candidates, fmt.Errorf("%w: %q is not a candidate", model.ErrRankingUnavailable, name))
	}
	return candidates[i].WithReason(reason)
}

func (r *Ranker) fallback(candidates []model.Holiday, err error) model.Holiday {
	slog.Warn("using first holiday", "stage", model.StageRank, "error", err)
	return candidates[0]
}
