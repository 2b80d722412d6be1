package media

import (
	"context"
	"fmt"
	"strings"

	"github.com/yangwenmai/holidaymeme/internal/model"
)

// Generator produces meme content for a holiday: either meme text or a URL.
type Generator interface {
	Generate(ctx context.Context, h model.Holiday) (string, error)
}

// GenerateTier asks a generation oracle for content. URL answers are probed
// before being accepted.
type GenerateTier struct {
	gen   Generator
	probe Prober
}

// NewGenerateTier creates the generation tier. probe may be nil.
func NewGenerateTier(g Generator, probe Prober) *GenerateTier {
	return &GenerateTier{gen: g, probe: probe}
}

func (t *GenerateTier) Name() string { return TierGenerate }

func (t *GenerateTier) Resolve(ctx context.Context, req Request) (model.MediaArtifact, error) {
	out, err := t.gen.Generate(ctx, req.Holiday)
	if err != nil {
		return model.MediaArtifact{}, err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return model.MediaArtifact{}, fmt.Errorf("%w: empty generation", model.ErrMediaUnavailable)
	}
	if !looksLikeURL(out) {
		return model.TextArtifact(out), nil
	}
	if err := probeOK(ctx, t.probe, out); err != nil {
		return model.MediaArtifact{}, fmt.Errorf("%w: %w", model.ErrMediaUnavailable, err)
	}
	return model.ImageArtifact(out), nil
}

func looksLikeURL(s string) bool {
	if strings.ContainsAny(s, " \n\t") {
		return false
	}
	return strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://")
}
