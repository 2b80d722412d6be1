package media

import (
	"context"
	"fmt"

	"github.com/yangwenmai/holidaymeme/internal/model"
)

// CuratedTier serves pre-vetted artifacts from a Library.
type CuratedTier struct {
	library *Library
	picker  *Picker
}

// NewCuratedTier creates the curated lookup tier.
func NewCuratedTier(l *Library, p *Picker) *CuratedTier {
	return &CuratedTier{library: l, picker: p}
}

func (t *CuratedTier) Name() string { return TierCurated }

func (t *CuratedTier) Resolve(_ context.Context, req Request) (model.MediaArtifact, error) {
	list, ok := t.library.Lookup(req.Holiday.Name)
	if !ok || len(list) == 0 {
		return model.MediaArtifact{}, fmt.Errorf("%w: no curated entry for %q", model.ErrMediaUnavailable, req.Holiday.Name)
	}
	return list[t.picker.Pick(len(list), req.Now, req.ForceNew)], nil
}
