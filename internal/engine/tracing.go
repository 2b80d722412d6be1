package engine

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/yangwenmai/holidaymeme/internal/engine"

func tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// traceStage runs fn inside a child span named after the stage.
func traceStage(ctx context.Context, stage string, fn func(context.Context) error) error {
	ctx, span := tracer().Start(ctx, "holidaymeme.stage."+stage,
		trace.WithAttributes(attribute.String("holidaymeme.stage", stage)))
	defer span.End()

	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
