// Package engine holds the oracle clients, the holiday ranker and the pipeline
// that turns today's date into a cached (holiday, media) card.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yangwenmai/holidaymeme/internal/clock"
	"github.com/yangwenmai/holidaymeme/internal/model"
)

// Pipeline orchestrates source → ranker → media resolver → cache write.
// Stages run strictly in sequence. The pipeline does not guard against
// concurrent Resolve calls; callers serialize refreshes.
type Pipeline struct {
	clock  clock.Clock
	source HolidaySource
	ranker HolidayRanker
	media  MediaResolver
	cache  ContentCache

	current atomic.Pointer[model.DailyContent]

	loadMu sync.Mutex
	loaded bool
}

// NewPipeline creates a pipeline with the given dependencies. cache may be nil
// for a process-local slot.
func NewPipeline(clk clock.Clock, source HolidaySource, ranker HolidayRanker, media MediaResolver, cache ContentCache) *Pipeline {
	return &Pipeline{clock: clk, source: source, ranker: ranker, media: media, cache: cache}
}

// Current returns the cached card, or nil when the slot is empty. The
// persisted slot is read until one read succeeds; a failed read is retried on
// the next call.
func (p *Pipeline) Current(ctx context.Context) *model.DailyContent {
	p.loadPersisted(ctx)
	return p.current.Load()
}

func (p *Pipeline) loadPersisted(ctx context.Context) {
	p.loadMu.Lock()
	defer p.loadMu.Unlock()
	if p.loaded {
		return
	}
	if p.cache == nil {
		p.loaded = true
		return
	}
	c, err := p.cache.Load(ctx)
	if err != nil {
		slog.Warn("load cached content", "stage", model.StageCache, "error", err)
		return
	}
	if c != nil {
		p.current.CompareAndSwap(nil, c)
	}
	p.loaded = true
}

// Resolve returns today's card. Unless force is set, a card already computed
// for today is returned as-is without touching any collaborator.
//
// On an unexpected failure the previous card (possibly nil) is returned together
// with an error wrapping model.ErrPipelineFailure; the slot is left untouched.
func (p *Pipeline) Resolve(ctx context.Context, force bool) (*model.DailyContent, error) {
	prev := p.Current(ctx)
	if !force && prev.IsFor(clock.DayKey(p.clock.Now())) {
		return prev, nil
	}

	runID := uuid.New().String()
	ctx, span := tracer().Start(ctx, "holidaymeme.resolve", trace.WithAttributes(
		attribute.Bool("holidaymeme.force", force),
		attribute.String("holidaymeme.run_id", runID),
	))
	defer span.End()

	content, err := p.run(ctx, runID, force)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.Error("pipeline failed", "run_id", runID, "stage", stageOf(err), "error", err)
		return prev, fmt.Errorf("%w: %w", model.ErrPipelineFailure, err)
	}

	p.current.Store(content)
	slog.Info("daily content resolved",
		"run_id", runID,
		"date", content.Date,
		"holiday", content.Holiday.Name,
		"media_kind", string(content.Media.Kind),
		"media_tier", content.Media.Source,
		"forced", force,
	)
	return content, nil
}

func (p *Pipeline) run(ctx context.Context, runID string, force bool) (content *model.DailyContent, err error) {
	stage := model.StageUnknown
	defer func() {
		if r := recover(); r != nil {
			content = nil
			err = &model.StageError{Stage: stage, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	var candidates []model.Holiday
	stage = model.StageSource
	if err := traceStage(ctx, stage, func(ctx context.Context) error {
		candidates = p.source.Fetch(ctx, p.clock.Now())
		if len(candidates) == 0 {
			return errors.New("holiday source returned no candidates")
		}
		return nil
	}); err != nil {
		return nil, &model.StageError{Stage: stage, Err: err}
	}

	var picked model.Holiday
	stage = model.StageRank
	if err := traceStage(ctx, stage, func(ctx context.Context) error {
		picked = p.ranker.Select(ctx, candidates)
		if picked.Name == "" {
			return errors.New("ranker returned a nameless holiday")
		}
		return nil
	}); err != nil {
		return nil, &model.StageError{Stage: stage, Err: err}
	}

	var media model.MediaArtifact
	stage = model.StageMedia
	if err := traceStage(ctx, stage, func(ctx context.Context) error {
		media = p.media.Resolve(ctx, picked, force)
		if media.IsZero() {
			return fmt.Errorf("%w: resolver returned an empty artifact", model.ErrMediaUnavailable)
		}
		return nil
	}); err != nil {
		return nil, &model.StageError{Stage: stage, Err: err}
	}

	c := model.NewDailyContent(clock.DayKey(p.clock.Now()), picked, media, runID)

	stage = model.StageCache
	if p.cache != nil {
		if err := traceStage(ctx, stage, func(ctx context.Context) error {
			return p.cache.Save(ctx, c)
		}); err != nil {
			return nil, &model.StageError{Stage: stage, Err: err}
		}
	}
	return &c, nil
}

// stageNamer is implemented by errors that carry a pipeline stage name.
type stageNamer interface {
	StageName() string
}

func stageOf(err error) string {
	var sn stageNamer
	if errors.As(err, &sn) {
		return sn.StageName()
	}
	return model.StageUnknown
}
