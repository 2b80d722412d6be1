package media

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yangwenmai/holidaymeme/internal/clock"
	"github.com/yangwenmai/holidaymeme/internal/model"
)

var tracer = otel.Tracer("github.com/yangwenmai/holidaymeme/internal/media")

// Resolver walks its tiers in order; the first usable artifact wins. When every
// tier fails the generic fallback is returned, so Resolve never fails.
type Resolver struct {
	clock    clock.Clock
	tiers    []Tier
	fallback *FallbackTier
	timeout  time.Duration
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithTierTimeout bounds each tier; expiry counts as a tier failure.
func WithTierTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) { r.timeout = d }
}

// WithFallback replaces the generic fallback tier.
func WithFallback(f *FallbackTier) ResolverOption {
	return func(r *Resolver) {
		if f != nil {
			r.fallback = f
		}
	}
}

// NewResolver creates a resolver over the given ordered tiers.
func NewResolver(clk clock.Clock, tiers []Tier, opts ...ResolverOption) *Resolver {
	r := &Resolver{clock: clk, tiers: tiers, fallback: NewFallbackTier(NewPicker())}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns an artifact for h. forceNew switches list picks from the
// hour-stable choice to a random one.
func (r *Resolver) Resolve(ctx context.Context, h model.Holiday, forceNew bool) model.MediaArtifact {
	req := Request{Holiday: h, ForceNew: forceNew, Now: r.clock.Now()}
	for _, tier := range r.tiers {
		a, err := r.try(ctx, tier, req)
		if err == nil {
			return a.FromTier(tier.Name())
		}
		slog.Warn("media tier failed", "stage", model.StageMedia, "tier", tier.Name(), "holiday", h.Name, "error", err)
	}
	return r.fallback.Artifact(req).FromTier(TierFallback)
}

func (r *Resolver) try(ctx context.Context, tier Tier, req Request) (a model.MediaArtifact, err error) {
	ctx, span := tracer.Start(ctx, "holidaymeme.media."+tier.Name(),
		trace.WithAttributes(attribute.String("holidaymeme.tier", tier.Name())))
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: tier panicked: %v", model.ErrMediaUnavailable, rec)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	a, err = tier.Resolve(ctx, req)
	if err != nil {
		return model.MediaArtifact{}, err
	}
	if a.IsZero() {
		return model.MediaArtifact{}, fmt.Errorf("%w: empty artifact", model.ErrMediaUnavailable)
	}
	return a, nil
}
