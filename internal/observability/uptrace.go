// Package observability boots the tracing and profiling backends of the
// pipeline: Uptrace receives the spans of HTTP requests, scheduled batches,
// delivery attempts and matching lookups; Pyroscope and pprof profile the
// process.
package observability

import (
	"context"
	"net/url"
	"strings"

	"github.com/riskibarqy/odds-pipeline/internal/config"
	"github.com/riskibarqy/odds-pipeline/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"
)

// InitUptrace installs the global tracer provider. The returned func flushes
// pending spans; it is a no-op when tracing is off.
func InitUptrace(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	noop := func(context.Context) error { return nil }

	switch {
	case !cfg.UptraceEnabled:
		logger.Info("tracing disabled", "reason", "UPTRACE_ENABLED=false")
		return noop, nil
	case strings.TrimSpace(cfg.UptraceDSN) == "":
		logger.Info("tracing disabled", "reason", "UPTRACE_DSN empty")
		return noop, nil
	}

	attrs := resourceAttributes(cfg)
	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithResourceAttributes(attrs...),
	)

	logger.Info("tracing enabled",
		"backend", "uptrace",
		"service_name", cfg.ServiceName,
		"environment", cfg.AppEnv,
		"resource_attributes", len(attrs),
	)
	return uptrace.Shutdown, nil
}

// resourceAttributes tags every span with the odds source and the hosts the
// pipeline delivers to.
func resourceAttributes(cfg config.Config) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 3)
	if id := strings.TrimSpace(cfg.SourceID); id != "" {
		attrs = append(attrs, attribute.String("odds.source_id", id))
	}
	if host := hostOf(cfg.APIBaseURL); host != "" {
		attrs = append(attrs, attribute.String("ingestion.host", host))
	}
	if host := hostOf(cfg.MatchingBaseURL); host != "" {
		attrs = append(attrs, attribute.String("matching.host", host))
	}
	return attrs
}

func hostOf(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return u.Host
}
