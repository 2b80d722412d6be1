// Package worker keeps the daily card warm: it periodically asks the session
// to load today's card so a new day is resolved soon after midnight.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/yangwenmai/holidaymeme/internal/model"
	"github.com/yangwenmai/holidaymeme/internal/session"
)

// Loader resolves today's card, reusing it when it is already current.
type Loader interface {
	Load(ctx context.Context) (*model.DailyContent, error)
}

// Worker polls the loader on a fixed interval.
type Worker struct {
	loader   Loader
	interval time.Duration
}

// DefaultInterval is used when New is given a non-positive interval.
const DefaultInterval = 15 * time.Minute

// New creates a new Worker.
func New(loader Loader, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Worker{loader: loader, interval: interval}
}

// Start runs one load immediately and then one per interval. It blocks until
// ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("worker started", "interval", w.interval.String())
	for {
		select {
		case <-ctx.Done():
			slog.Info("worker stopped")
			return
		default:
		}

		w.tick(ctx)
		w.sleep(ctx)
	}
}

func (w *Worker) tick(ctx context.Context) {
	c, err := w.loader.Load(ctx)
	switch {
	case errors.Is(err, session.ErrBusy):
		slog.Debug("worker skipped tick, run in progress")
	case err != nil:
		slog.Error("prewarm failed", "stage", stageOf(err), "error", err)
	case c != nil:
		slog.Debug("prewarm ok", "date", c.Date, "holiday", c.Holiday.Name)
	}
}

func (w *Worker) sleep(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(w.interval):
	}
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
