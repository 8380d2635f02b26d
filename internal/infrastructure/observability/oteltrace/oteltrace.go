package oteltrace

import (
	"context"

	"github.com/minpay/orderpay/internal/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type tracer struct{ t trace.Tracer }

// New adapts the globally configured OpenTelemetry tracer to the
// observability.Tracer port. Initialising an sdktrace.TracerProvider and
// exporter is the deployment's responsibility; without one the global
// tracer is a no-op.
func New(name string) observability.Tracer {
	if name == "" {
		name = "orderpay"
	}
	return &tracer{t: otel.Tracer(name)}
}

func (t *tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.t.Start(ctx, name, trace.WithAttributes(attrs...))
}
