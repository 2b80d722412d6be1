// Package media turns a chosen holiday into a shareable artifact through an
// ordered cascade of tiers that always ends in a guaranteed generic fallback.
package media

import (
	"context"
	"time"

	"github.com/yangwenmai/holidaymeme/internal/model"
)

// Tier names.
const (
	TierCurated  = "curated"
	TierGenerate = "generate"
	TierSearch   = "search"
	TierFallback = "fallback"
)

// Request is the input to every tier.
type Request struct {
	Holiday  model.Holiday
	ForceNew bool
	Now      time.Time
}

// Tier is one strategy in the cascade. A tier either returns a usable artifact
// or an error; errors only advance the cascade.
type Tier interface {
	Name() string
	Resolve(ctx context.Context, req Request) (model.MediaArtifact, error)
}
