package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Level
	}{
		{in: "debug", want: LevelDebug},
		{in: " WARN ", want: LevelWarn},
		{in: "warning", want: LevelWarn},
		{in: "error", want: LevelError},
		{in: "", want: LevelInfo},
		{in: "verbose", want: LevelInfo},
	}
	for _, tc := range tests {
		if got := ParseLevel(tc.in); got != tc.want {
			t.Fatalf("ParseLevel(%q)=%s want %s", tc.in, got, tc.want)
		}
	}
}

func TestLogger_NamedAndFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core)).Named("delivery")

	logger.Warn("record delivery failed", "game_id", "g-1", "error", errors.New("boom"), "dangling")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["component"] != "delivery" || fields["game_id"] != "g-1" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
	if fields["error"] != "boom" {
		t.Fatalf("unexpected error field: %+v", fields["error"])
	}
	if _, ok := fields["dangling"]; !ok {
		t.Fatalf("expected dangling key to be kept: %+v", fields)
	}
}

func TestLogger_ContextAddsTraceIDs(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	logger := FromZap(zap.New(core))

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.InfoContext(ctx, "batch started")
	logger.DebugContext(ctx, "filtered out")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["trace_id"] != traceID.String() || fields["span_id"] != spanID.String() {
		t.Fatalf("unexpected trace fields: %+v", fields)
	}
}

func TestSetDefault_NilFallsBackToNop(t *testing.T) {
	SetDefault(nil)
	if Default() == nil {
		t.Fatalf("expected non-nil default logger")
	}
	Default().Info("discarded")
}

func TestNewJSON_EncodesOneObjectPerLine(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newJSON(zapcore.AddSync(&buf), LevelInfo).Named("ledger")
	logger.Debug("hidden")
	logger.Info("fingerprint stored", "key", "cubs-angels")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %q", buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal(lines[0], &entry); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	if entry["level"] != "INFO" || entry["msg"] != "fingerprint stored" || entry["component"] != "ledger" || entry["key"] != "cubs-angels" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if _, ok := entry["time"]; !ok {
		t.Fatalf("missing time key: %+v", entry)
	}
}

func TestLogger_Writer(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	w := FromZap(zap.New(core)).Writer(LevelWarn)

	if _, err := w.Write([]byte("http: TLS handshake error\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, _ = w.Write([]byte("\n"))

	entries := logs.All()
	if len(entries) != 1 || entries[0].Message != "http: TLS handshake error" || entries[0].Level != zapcore.WarnLevel {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestLogger_NilUsesDefault(t *testing.T) {
	var l *Logger
	l.Info("dropped by the nop default")
	if l.With("k", "v") == nil || l.Named("x") == nil {
		t.Fatalf("derived loggers must not be nil")
	}
	if err := l.Sync(); err != nil {
		t.Fatalf("nil sync: %v", err)
	}
}
