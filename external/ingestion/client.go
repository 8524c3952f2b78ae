package ingestion

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/odds-pipeline/internal/domain/delivery"
	"github.com/riskibarqy/odds-pipeline/internal/domain/record"
	"github.com/riskibarqy/odds-pipeline/internal/platform/logging"
	"github.com/riskibarqy/odds-pipeline/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	upsertPath          = "/raw-bets/upsert"
	maxResponseBodySize = 1 << 20
	maxLoggedBodySize   = 4096
)

// errIngestionTransport marks failures where no HTTP answer came back. Only
// these count against the circuit breaker.
var errIngestionTransport = crerr.New("ingestion transport failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client posts canonical records to the ingestion API. Each Send is exactly
// one HTTP attempt; retries belong to the caller.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:      strings.TrimSpace(cfg.Token),
		logger:     logger,
		breaker:    resilience.NewCircuitBreaker("ingestion", cfg.CircuitBreaker, logBreakerChange(logger)),
	}
}

func logBreakerChange(logger *logging.Logger) resilience.StateChangeFunc {
	return func(name string, from, to resilience.CircuitState) {
		logger.Warn("circuit breaker state changed", "breaker", name, "from", from, "to", to)
	}
}

func (c *Client) Send(ctx context.Context, rec record.CanonicalRecord) (delivery.Response, error) {
	baseURL, err := validateHTTPBaseURL(c.baseURL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid API_BASE_URL")
	}
	endpoint := baseURL + upsertPath

	body, err := sonic.Marshal(rec)
	if err != nil {
		return nil, crerr.Wrap(err, "marshal canonical record")
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("ingestion.url", endpoint),
			attribute.String("ingestion.record", rec.Name),
			attribute.Int("ingestion.outcomes", rec.OutcomeCount()),
			attribute.String("ingestion.request_curl_preview", buildCurlPreview(endpoint, truncateForLog(string(body), maxLoggedBodySize))),
		)
	}

	var (
		status int
		raw    []byte
	)
	err = c.breaker.Execute(func() error {
		var postErr error
		status, raw, postErr = c.post(ctx, endpoint, body)
		return postErr
	}, isTransportFailure)
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "ingestion circuit breaker rejected request", "record", rec.Name, "state", c.breaker.State())
		return nil, crerr.Wrap(err, "ingestion api is temporarily unavailable")
	}
	if err != nil {
		var respErr *delivery.ResponseError
		if stderrors.As(err, &respErr) {
			return nil, respErr
		}
		return nil, err
	}

	out := delivery.Response{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, nil
	}
	if err := sonic.Unmarshal(raw, &out); err != nil {
		// a 2xx with a non-object body is still a delivered record
		out = delivery.Response{"raw": truncateForLog(string(raw), maxLoggedBodySize)}
	}

	c.logger.DebugContext(ctx, "record delivered", "record", rec.Name, "status", status)
	return out, nil
}

// post performs one request. Non-2xx answers come back as
// *delivery.ResponseError.
func (c *Client) post(ctx context.Context, endpoint string, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, nil, crerr.Wrap(err, "create ingestion request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: post %s: %s", errIngestionTransport, endpoint, sanitizeSensitiveText(err.Error(), c.token))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if resp.StatusCode/100 != 2 {
		respErr := &delivery.ResponseError{
			StatusCode: resp.StatusCode,
			Body:       truncateForLog(strings.TrimSpace(string(raw)), maxLoggedBodySize),
		}
		return resp.StatusCode, nil, respErr
	}
	if readErr != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: read ingestion response: %v", errIngestionTransport, readErr)
	}
	return resp.StatusCode, raw, nil
}

func isTransportFailure(err error) bool {
	return stderrors.Is(err, errIngestionTransport)
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return strings.TrimRight(candidate, "/"), nil
}

func buildCurlPreview(endpoint, body string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendPart := func(part string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(part)
	}

	appendPart("curl")
	appendPart("-X")
	appendPart("POST")
	appendPart(shellQuote(endpoint))
	appendPart("-H")
	appendPart(shellQuote("Authorization: Bearer ***"))
	appendPart("-H")
	appendPart(shellQuote("Content-Type: application/json"))
	appendPart("-d")
	appendPart(shellQuote(body))

	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if token != "" {
		value = strings.ReplaceAll(value, token, "REDACTED")
	}
	return value
}
