package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestHandlerSpan(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	untraced := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	_, span := handlerSpan(untraced, "Healthz")
	span.End()
	if span.SpanContext().IsValid() {
		t.Fatalf("untraced request must not start a span")
	}

	parentCtx, parent := provider.Tracer("test").Start(context.Background(), "POST /v1/records/send-all")
	traced := httptest.NewRequest(http.MethodPost, "/v1/records/send-all", nil).WithContext(parentCtx)
	_, child := handlerSpan(traced, "SendAllRecords")
	child.End()
	parent.End()

	if !child.SpanContext().IsValid() || child.SpanContext().TraceID() != parent.SpanContext().TraceID() {
		t.Fatalf("handler span must join the request trace")
	}
	if got := handlerSpanName("SendAllRecords"); got != "httpapi.Handler.SendAllRecords" {
		t.Fatalf("unexpected span name %q", got)
	}
}
