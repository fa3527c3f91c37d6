package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/jsamuelsen/headline-quoter/telemetry"

// StartRun opens the root span of a run. Every upstream call made with the
// returned context becomes a child of it. The returned func ends the span,
// marking it failed when err is non-nil.
func StartRun(ctx context.Context, runID string, dryRun bool) (context.Context, func(err error)) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "quoter.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.Bool("run.dry_run", dryRun),
		),
	)

	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}

		span.End()
	}
}

// TraceID returns the hex trace id of the span in ctx, or "" when the span
// is not sampled or telemetry is disabled.
func TraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return ""
	}

	return sc.TraceID().String()
}
