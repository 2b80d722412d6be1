package engine

import (
	"context"
	"fmt"

	"github.com/yangwenmai/holidaymeme/internal/model"
)

// MemeGenerator asks a text oracle for a short developer meme about a holiday.
type MemeGenerator struct {
	model ModelClient
}

// NewMemeGenerator creates a MemeGenerator backed by mc.
func NewMemeGenerator(mc ModelClient) *MemeGenerator {
	return &MemeGenerator{model: mc}
}

// Generate returns cleaned meme text, or an error wrapping ErrMediaUnavailable
// when the oracle fails or answers with nothing.
func (g *MemeGenerator) Generate(ctx context.Context, h model.Holiday) (string, error) {
	raw, err := g.model.Complete(ctx, buildMemePrompt(h))
	if err != nil {
		return "", fmt.Errorf("%w: %w", model.ErrMediaUnavailable, err)
	}
	text := cleanMeme(raw)
	if text == "" {
		return "", fmt.Errorf("%w: empty meme", model.ErrMediaUnavailable)
	}
	return text, nil
}
