package media

import (
	"context"
	"fmt"

	"github.com/yangwenmai/holidaymeme/internal/model"
)

// genericTemplates are formatted with the holiday name.
var genericTemplates = []string{
	"Happy %s! 🎉\nTime to celebrate with some quality code!",
	"Celebrating %s the engineer way:\nrunning the test suite one more time.",
	"%s status: 200 OK. Enjoy the day!",
}

// FallbackTier is the last tier. It always succeeds.
type FallbackTier struct {
	picker *Picker
}

// NewFallbackTier creates the generic fallback tier.
func NewFallbackTier(p *Picker) *FallbackTier {
	return &FallbackTier{picker: p}
}

func (t *FallbackTier) Name() string { return TierFallback }

func (t *FallbackTier) Resolve(_ context.Context, req Request) (model.MediaArtifact, error) {
	return t.Artifact(req), nil
}

// Artifact returns the generic artifact for req.
func (t *FallbackTier) Artifact(req Request) model.MediaArtifact {
	name := req.Holiday.Name
	if name == "" {
		name = "Today"
	}
	tmpl := genericTemplates[t.picker.Pick(len(genericTemplates), req.Now, req.ForceNew)]
	return model.TextArtifact(fmt.Sprintf(tmpl, name))
}
