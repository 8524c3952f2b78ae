package matching

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	domain "github.com/riskibarqy/odds-pipeline/internal/domain/matching"
	"github.com/riskibarqy/odds-pipeline/internal/platform/logging"
	"github.com/riskibarqy/odds-pipeline/internal/platform/resilience"
	"github.com/riskibarqy/odds-pipeline/internal/usecase"
	"golang.org/x/sync/singleflight"
)

const (
	matchingStatusPath  = "/api/matching-status"
	checkEventPath      = "/api/check-omenizer-event"
	maxResponseBodySize = 2 << 20
)

var errMatchingTransient = crerr.New("matching service transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the matching service. It serves both the batch status
// endpoint and the per-game downstream event lookup.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     singleflight.Group
}

type matchingStatusRequest struct {
	GameIDs []string `json:"game_ids"`
}

type matchingStatusResponse struct {
	MatchingData map[string]domain.Status `json:"matching_data"`
}

type checkEventRequest struct {
	GameID string `json:"game_id"`
}

type checkEventResponse struct {
	EventID *string `json:"event_id"`
	Teams   *string `json:"teams"`
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
		httpClient.Timeout = 10 * time.Second
	}

	onChange := func(name string, from, to resilience.CircuitState) {
		logger.Warn("circuit breaker state changed", "breaker", name, "from", from, "to", to)
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		logger:     logger,
		breaker:    resilience.NewCircuitBreaker("matching", cfg.CircuitBreaker, onChange),
	}
}

// LookupMany returns the statuses the matching service reports for gameIDs.
// Ids the service does not mention are absent from the map.
func (c *Client) LookupMany(ctx context.Context, gameIDs []string) (map[string]domain.Status, error) {
	if len(gameIDs) == 0 {
		return map[string]domain.Status{}, nil
	}

	var out matchingStatusResponse
	if _, err := c.postJSON(ctx, matchingStatusPath, matchingStatusRequest{GameIDs: gameIDs}, flightKey(matchingStatusPath, gameIDs), &out); err != nil {
		return nil, err
	}
	if out.MatchingData == nil {
		return map[string]domain.Status{}, nil
	}
	return out.MatchingData, nil
}

// Lookup asks whether gameID already exists as an event downstream. Any
// non-2xx answer means no mapping; only an unreachable service, an open
// breaker or an unreadable 2xx body is an error.
func (c *Client) Lookup(ctx context.Context, gameID string) (domain.Status, bool, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return domain.Status{}, false, nil
	}

	var out checkEventResponse
	status, err := c.postJSON(ctx, checkEventPath, checkEventRequest{GameID: gameID}, checkEventPath+"|"+gameID, &out)
	if err != nil {
		if status != 0 && status/100 != 2 {
			c.logger.DebugContext(ctx, "matching event check answered without a mapping", "game_id", gameID, "status", status)
			return domain.Status{}, false, nil
		}
		return domain.Status{}, false, err
	}

	if out.EventID == nil || strings.TrimSpace(*out.EventID) == "" {
		return domain.Status{}, false, nil
	}
	teams := ""
	if out.Teams != nil {
		teams = *out.Teams
	}
	return domain.ExistsInOmenizer(gameID, strings.TrimSpace(*out.EventID), teams), true, nil
}

// postJSON shares one in-flight request between callers with the same key.
func (c *Client) postJSON(ctx context.Context, path string, payload any, key string, target any) (int, error) {
	if c.baseURL == "" {
		return 0, fmt.Errorf("%w: matching service base url is not configured", usecase.ErrDependencyUnavailable)
	}

	body, err := sonic.Marshal(payload)
	if err != nil {
		return 0, crerr.Wrap(err, "marshal matching request")
	}

	type result struct {
		status int
		raw    []byte
	}
	out, err, _ := c.flight.Do(key, func() (any, error) {
		var res result
		execErr := c.breaker.Execute(func() error {
			var reqErr error
			res.status, res.raw, reqErr = c.execute(ctx, c.baseURL+path, body)
			return reqErr
		}, func(err error) bool {
			return stderrors.Is(err, errMatchingTransient)
		})
		return res, execErr
	})
	res, _ := out.(result)
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "matching circuit breaker rejected request", "path", path, "state", c.breaker.State())
		return 0, fmt.Errorf("%w: matching service is temporarily unavailable: %v", usecase.ErrDependencyUnavailable, err)
	}
	if err != nil {
		return res.status, err
	}

	if err := sonic.Unmarshal(res.raw, target); err != nil {
		return res.status, crerr.Wrap(err, "decode matching response")
	}
	return res.status, nil
}

func (c *Client) execute(ctx context.Context, endpoint string, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, nil, crerr.Wrap(err, "build matching request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: post %s: %v", errMatchingTransient, endpoint, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: read matching response: %v", errMatchingTransient, err)
	}
	if resp.StatusCode/100 != 2 {
		if isRetryableStatus(resp.StatusCode) {
			return resp.StatusCode, raw, fmt.Errorf("%w: matching status=%d body=%s", errMatchingTransient, resp.StatusCode, abbreviate(raw))
		}
		return resp.StatusCode, raw, crerr.Newf("matching status=%d body=%s", resp.StatusCode, abbreviate(raw))
	}

	return resp.StatusCode, raw, nil
}

func flightKey(path string, ids []string) string {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	return path + "|" + strings.Join(sorted, ",")
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}

func abbreviate(raw []byte) string {
	text := strings.TrimSpace(string(raw))
	if len(text) > 512 {
		return text[:512] + "...(truncated)"
	}
	return text
}
