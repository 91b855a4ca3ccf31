package infinitode

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var clientTracer = otel.Tracer("tdi-leaderboards/external/infinitode")
var clientNoopSpan = trace.SpanFromContext(context.Background())

// startSpan only opens a span under an existing one so untraced callers pay nothing.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, clientNoopSpan
	}
	return clientTracer.Start(ctx, name)
}
