package engine

import (
	"context"
	"time"

	"github.com/yangwenmai/holidaymeme/internal/model"
)

// ModelClient abstracts text oracle calls. Implementations wrap OpenAI, Claude, Gemini, Ollama or a stub.
type ModelClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// HolidaySource returns today's candidates. It never fails and never returns an empty list.
type HolidaySource interface {
	Fetch(ctx context.Context, today time.Time) []model.Holiday
}

// HolidayRanker picks exactly one holiday from a non-empty candidate list.
type HolidayRanker interface {
	Select(ctx context.Context, candidates []model.Holiday) model.Holiday
}

// MediaResolver always produces some artifact for a holiday.
type MediaResolver interface {
	Resolve(ctx context.Context, h model.Holiday, forceNew bool) model.MediaArtifact
}

// ContentCache is the persisted single-slot daily cache.
// Load returns nil with no error when the slot is empty.
type ContentCache interface {
	Load(ctx context.Context) (*model.DailyContent, error)
	Save(ctx context.Context, c model.DailyContent) error
}
