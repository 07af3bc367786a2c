package blog

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "penblog/internal/blog"

// telemetry wraps every service call in a span and counts writes by
// operation. Without a configured provider both are no-ops.
type telemetry struct {
	tracer trace.Tracer
	writes metric.Int64Counter
}

func newTelemetry() *telemetry {
	writes, err := otel.Meter(instrumentationName).Int64Counter(
		"penblog.blog.writes",
		metric.WithDescription("Successful blog write operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		slog.Warn("blog write counter unavailable", "error", err)
		writes, _ = noop.Meter{}.Int64Counter("penblog.blog.writes")
	}
	return &telemetry{
		tracer: otel.Tracer(instrumentationName),
		writes: writes,
	}
}

func (t *telemetry) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "blog."+op, trace.WithAttributes(attrs...))
}

// end closes span, recording err when set.
func (t *telemetry) end(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (t *telemetry) wrote(ctx context.Context, op string) {
	t.writes.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
}
