package observability

import (
	"context"
	"testing"

	"github.com/riskibarqy/odds-pipeline/internal/config"
	"github.com/riskibarqy/odds-pipeline/internal/platform/logging"
)

func TestInitUptrace_Disabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{name: "flag off", cfg: config.Config{UptraceEnabled: false, ServiceName: "odds-pipeline"}},
		{name: "empty dsn", cfg: config.Config{UptraceEnabled: true, UptraceDSN: "  ", ServiceName: "odds-pipeline"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			shutdown, err := InitUptrace(tc.cfg, logging.NewNop())
			if err != nil {
				t.Fatalf("init uptrace: %v", err)
			}
			if err := shutdown(context.Background()); err != nil {
				t.Fatalf("shutdown uptrace: %v", err)
			}
		})
	}
}

func TestResourceAttributes(t *testing.T) {
	attrs := resourceAttributes(config.Config{
		SourceID:        "src-1",
		APIBaseURL:      "https://ingest.example.com/v2",
		MatchingBaseURL: "::not a url",
	})

	got := make(map[string]string, len(attrs))
	for _, kv := range attrs {
		got[string(kv.Key)] = kv.Value.AsString()
	}
	if len(got) != 2 || got["odds.source_id"] != "src-1" || got["ingestion.host"] != "ingest.example.com" {
		t.Fatalf("unexpected attributes: %+v", got)
	}
	if len(resourceAttributes(config.Config{})) != 0 {
		t.Fatalf("expected no attributes for an empty config")
	}
}
