package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/odds-pipeline/internal/domain/bookmaker"
	"github.com/riskibarqy/odds-pipeline/internal/domain/delivery"
	"github.com/riskibarqy/odds-pipeline/internal/domain/record"
	"github.com/riskibarqy/odds-pipeline/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/odds-pipeline/internal/platform/logging"
	"github.com/riskibarqy/odds-pipeline/internal/usecase"
)

const testJobToken = "job-token"

type recordingSender struct {
	mu    sync.Mutex
	names []string
	err   error
}

func (s *recordingSender) Send(_ context.Context, rec record.CanonicalRecord) (delivery.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.names = append(s.names, rec.Name)
	if s.err != nil {
		return nil, s.err
	}
	return delivery.Response{"status": "ok"}, nil
}

func (s *recordingSender) sent() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.names...)
}

func newTestRouter(t *testing.T, sender *recordingSender, swaggerEnabled bool) http.Handler {
	t.Helper()

	games := memory.NewGameRepository(memory.SeedGames(), memory.SeedOdds())
	flagged := memory.NewFlaggedEventRepository(memory.SeedFlaggedEvents())
	resolver := bookmaker.NewDefaultResolver()

	deliveryService := usecase.NewDeliveryService(
		games,
		record.NewNormalizer("source-1", resolver),
		sender,
		nil,
		nil,
		usecase.DeliveryConfig{SourceID: "source-1", MaxAttempts: 1},
		logging.NewNop(),
	)
	matchingService := usecase.NewMatchingService(flagged, nil, nil, usecase.MatchingConfig{Workers: 2}, logging.NewNop())
	handler := NewHandler(deliveryService, matchingService, usecase.NewFlaggedEventService(flagged), resolver, logging.NewNop())

	return NewRouter(handler, logging.NewNop(), RouterConfig{
		SwaggerEnabled:      swaggerEnabled,
		CORSAllowedOrigins:  []string{"*"},
		InternalJobToken:    testJobToken,
		RequestBodyMaxBytes: 64,
	})
}

func doRequest(t *testing.T, router http.Handler, method, path, body string, withToken bool) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if withToken {
		req.Header.Set(internalJobTokenHeader, testJobToken)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body struct {
		Data map[string]any `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v (%s)", err, rec.Body.String())
	}
	return body.Data
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestRouter(t, &recordingSender{}, false), http.MethodGet, "/healthz", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestSendAll_RequiresInternalJobToken(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{}
	rec := doRequest(t, newTestRouter(t, sender, false), http.MethodPost, "/v1/deliveries/send-all", "", false)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if len(sender.sent()) != 0 {
		t.Fatalf("did not expect any delivery, got %v", sender.sent())
	}
}

func TestSendAll_DeliversGamesWithOdds(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{}
	router := newTestRouter(t, sender, false)

	rec := doRequest(t, router, http.MethodPost, "/v1/deliveries/send-all", `{"limit":10}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
	data := decodeData(t, rec)
	if data["successful"] != float64(2) || data["failed"] != float64(0) {
		t.Fatalf("unexpected batch result: %+v", data)
	}
	if len(sender.sent()) != 2 {
		t.Fatalf("expected two deliveries, got %v", sender.sent())
	}

	stats := decodeData(t, doRequest(t, router, http.MethodGet, "/v1/deliveries/stats", "", false))
	if stats["sent"] != float64(2) || stats["success_rate"] != "100.00%" {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	if rec := doRequest(t, router, http.MethodDelete, "/v1/deliveries/stats", "", true); rec.Code != http.StatusOK {
		t.Fatalf("reset stats status: %d", rec.Code)
	}
	stats = decodeData(t, doRequest(t, router, http.MethodGet, "/v1/deliveries/stats", "", false))
	if stats["sent"] != float64(0) || stats["success_rate"] != "0%" {
		t.Fatalf("expected reset stats, got %+v", stats)
	}
}

func TestSendAll_FailuresAreReportedNotFatal(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{err: &delivery.ResponseError{StatusCode: http.StatusBadGateway, Body: "upstream down"}}
	rec := doRequest(t, newTestRouter(t, sender, false), http.MethodPost, "/v1/deliveries/send-all", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
	data := decodeData(t, rec)
	if data["failed"] != float64(2) || data["successful"] != float64(0) {
		t.Fatalf("unexpected batch result: %+v", data)
	}
	errs, _ := data["errors"].([]any)
	if len(errs) != 2 {
		t.Fatalf("expected two batch errors, got %+v", data["errors"])
	}
}

func TestSendByIDs_Validation(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &recordingSender{}, false)
	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "unknown field", body: `{"ids":["a"]}`},
		{name: "empty list", body: `{"game_ids":[]}`},
		{name: "blank id", body: `{"game_ids":[""]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodPost, "/v1/deliveries/send-by-ids", tc.body, true)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestSendByIDs_DeliversOnlyListedGames(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{}
	body := `{"game_ids":["` + memory.GameIDCubsAngels + `","` + memory.GameIDArsenalChelsea + `"]}`
	rec := doRequest(t, newTestRouter(t, sender, false), http.MethodPost, "/v1/deliveries/send-by-ids", body, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
	got := sender.sent()
	if len(got) != 1 || got[0] != "Chicago Cubs vs Los Angeles Angels" {
		t.Fatalf("unexpected deliveries: %v", got)
	}
}

func TestTestConnection(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{err: errors.New("dial tcp: connection refused")}
	rec := doRequest(t, newTestRouter(t, sender, false), http.MethodPost, "/v1/deliveries/test-connection", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	data := decodeData(t, rec)
	if data["success"] != false || !strings.Contains(data["error"].(string), "connection refused") {
		t.Fatalf("unexpected connection result: %+v", data)
	}
	if got := sender.sent(); len(got) != 1 || got[0] != "Test Game vs Test Opponent" {
		t.Fatalf("unexpected probe: %v", got)
	}
}

func TestGetGameRecord(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &recordingSender{}, false)

	rec := doRequest(t, router, http.MethodGet, "/v1/games/"+memory.GameIDCubsAngels+"/record", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
	data := decodeData(t, rec)
	if data["name"] != "Chicago Cubs vs Los Angeles Angels" || data["source_id"] != "source-1" {
		t.Fatalf("unexpected record: %+v", data)
	}
	markets, _ := data["markets"].(map[string]any)
	if markets["bookmaker_count"] != float64(2) || markets["total_markets"] != float64(2) {
		t.Fatalf("unexpected markets summary: %+v", markets)
	}

	if rec := doRequest(t, router, http.MethodGet, "/v1/games/missing/record", "", false); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestMatchingStatusRoutes(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &recordingSender{}, false)

	single := decodeData(t, doRequest(t, router, http.MethodGet, "/v1/matching/status/"+memory.GameIDArsenalChelsea, "", false))
	if single["status"] != "pending" || single["source"] != "flagged_events" {
		t.Fatalf("unexpected flagged status: %+v", single)
	}

	body := `{"game_ids":["` + memory.GameIDArsenalChelsea + `","` + memory.GameIDCubsAngels + `"]}`
	rec := doRequest(t, router, http.MethodPost, "/v1/matching/status", body, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
	statuses, _ := decodeData(t, rec)["matching_data"].(map[string]any)
	cubs, _ := statuses[memory.GameIDCubsAngels].(map[string]any)
	if cubs["status"] != "not_processed" {
		t.Fatalf("unexpected status for unflagged game: %+v", statuses)
	}
}

func TestFlaggedEventRoutes(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &recordingSender{}, false)

	list := decodeData(t, doRequest(t, router, http.MethodGet, "/v1/flagged-events?status=unmatched", "", false))
	events, _ := list["events"].([]any)
	if len(events) != 1 {
		t.Fatalf("unexpected events: %+v", list)
	}

	if rec := doRequest(t, router, http.MethodGet, "/v1/flagged-events?limit=abc", "", false); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", rec.Code)
	}

	path := "/v1/flagged-events/" + memory.GameIDArsenalChelsea + "/resolve"
	if rec := doRequest(t, router, http.MethodPost, path, "", false); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	if rec := doRequest(t, router, http.MethodPost, path, "", true); rec.Code != http.StatusOK {
		t.Fatalf("resolve status: %d body=%s", rec.Code, rec.Body.String())
	}

	after := decodeData(t, doRequest(t, router, http.MethodGet, "/v1/matching/status/"+memory.GameIDArsenalChelsea, "", false))
	if after["status"] != "not_processed" {
		t.Fatalf("expected resolved flag to drop out of the index, got %+v", after)
	}
	if rec := doRequest(t, router, http.MethodPost, path, "", true); rec.Code != http.StatusOK {
		t.Fatalf("expected repeat resolve to be idempotent, got %d", rec.Code)
	}
	if rec := doRequest(t, router, http.MethodPost, "/v1/flagged-events/unknown-game/resolve", "", true); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown flag, got %d", rec.Code)
	}
}

func TestFlagEvent(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &recordingSender{}, false)
	body := `{"game_id":"` + memory.GameIDCubsAngels + `","home_team":"Chicago Cubs","away_team":"Los Angeles Angels",` +
		`"sport":"baseball","resolution_status":"ready_for_api_creation","translated_home_team":"Cubs","translated_away_team":"Angels"}`

	if rec := doRequest(t, router, http.MethodPost, "/v1/flagged-events", body, false); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	if rec := doRequest(t, router, http.MethodPost, "/v1/flagged-events", `{"game_id":"x"}`, true); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for incomplete flag, got %d", rec.Code)
	}
	if rec := doRequest(t, router, http.MethodPost, "/v1/flagged-events", body, true); rec.Code != http.StatusOK {
		t.Fatalf("flag status: %d body=%s", rec.Code, rec.Body.String())
	}

	status := decodeData(t, doRequest(t, router, http.MethodGet, "/v1/matching/status/"+memory.GameIDCubsAngels, "", false))
	if status["status"] != "ready_for_creation" || status["translated_teams"] != "Cubs vs Angels" {
		t.Fatalf("unexpected status after flagging: %+v", status)
	}
}

func TestBookmakerRoutes(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, &recordingSender{}, false)

	data := decodeData(t, doRequest(t, router, http.MethodGet, "/v1/bookmakers/resolve?name=DK+Sportsbook", "", false))
	if data["unknown"] != false || data["id"] == bookmaker.UnknownID {
		t.Fatalf("expected DraftKings alias to resolve, got %+v", data)
	}

	data = decodeData(t, doRequest(t, router, http.MethodGet, "/v1/bookmakers/resolve?name=Corner+Bookie", "", false))
	if data["unknown"] != true || data["id"] != bookmaker.UnknownID {
		t.Fatalf("expected unknown identifier, got %+v", data)
	}

	if rec := doRequest(t, router, http.MethodGet, "/v1/bookmakers/resolve", "", false); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without name, got %d", rec.Code)
	}

	rec := doRequest(t, router, http.MethodGet, "/v1/bookmakers", "", false)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "DraftKings") {
		t.Fatalf("unexpected bookmaker list: %d %s", rec.Code, rec.Body.String())
	}
}

func TestSwaggerRoutes(t *testing.T) {
	t.Parallel()

	if rec := doRequest(t, newTestRouter(t, &recordingSender{}, false), http.MethodGet, "/openapi.yaml", "", false); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when swagger disabled, got %d", rec.Code)
	}

	rec := doRequest(t, newTestRouter(t, &recordingSender{}, true), http.MethodGet, "/openapi.yaml", "", false)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Odds Pipeline API") {
		t.Fatalf("unexpected openapi response: %d", rec.Code)
	}
}

func TestRequireInternalJobToken_Unconfigured(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/deliveries/send-all", nil)
	req.Header.Set(internalJobTokenHeader, "anything")
	rec := httptest.NewRecorder()

	RequireInternalJobToken("  ", next).ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when token is not configured, got %d", rec.Code)
	}
}

func TestBatchContext_OutlivesRequestButNotBinding(t *testing.T) {
	t.Parallel()

	h := NewHandler(nil, nil, nil, nil, logging.NewNop())
	lifetime, stopAll := context.WithCancel(context.Background())
	h.BindBatchContext(lifetime)

	reqCtx, cancelReq := context.WithCancel(context.Background())
	batchCtx, release := h.batchContext(reqCtx)
	defer release()

	cancelReq()
	if err := batchCtx.Err(); err != nil {
		t.Fatalf("request cancellation must not reach the batch: %v", err)
	}

	stopAll()
	select {
	case <-batchCtx.Done():
	case <-time.After(time.Second):
		t.Fatalf("batch context not cancelled with its binding")
	}
}
