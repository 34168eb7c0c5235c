package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// StartScenarioSpan starts a span covering one scenario execution.
func StartScenarioSpan(ctx context.Context, tracer trace.Tracer, id, category, tier string) (context.Context, trace.Span) {
	ctx, span := tracer.Start(ctx, "hazard "+id,
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	span.SetAttributes(
		attribute.String("hazcat.scenario", id),
		attribute.String("hazcat.category", category),
		attribute.String("hazcat.tier", tier),
	)
	return ctx, span
}

// EndSpan finishes a span, recording error status if applicable.
func EndSpan(span trace.Span, err error, attrs ...attribute.KeyValue) {
	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
