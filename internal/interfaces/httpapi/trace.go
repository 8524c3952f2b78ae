package httpapi

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("odds-pipeline/internal/interfaces/httpapi")

// handlerSpan opens "httpapi.Handler.<op>" under the server span that
// RequestTracing started. Untraced routes such as /healthz get a no-op span.
func handlerSpan(r *http.Request, op string) (ctx context.Context, span trace.Span) {
	ctx = r.Context()
	if !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, handlerSpanName(op))
}

func handlerSpanName(op string) string {
	return "httpapi.Handler." + op
}
