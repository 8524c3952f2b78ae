package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/odds-pipeline/internal/config"
	"github.com/riskibarqy/odds-pipeline/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:                  config.EnvDev,
		HTTPAddr:                ":0",
		ReadTimeout:             time.Second,
		WriteTimeout:            time.Second,
		InternalJobToken:        "job-token",
		SourceID:                "source-1",
		APIBaseURL:              "http://127.0.0.1:1",
		BatchSize:               10,
		RetryAttempts:           1,
		RequestTimeout:          time.Second,
		SendAllDefaultLimit:     100,
		MatchingBaseURL:         "",
		LedgerTTL:               time.Hour,
		DeliverySchedule:        "*/15 * * * *",
		DeliveryScheduleEnabled: true,
	}
}

func TestNew_InMemoryWiring(t *testing.T) {
	t.Parallel()

	a, err := New(context.Background(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}()

	if a.Server == nil || a.Scheduler == nil {
		t.Fatalf("expected server and scheduler, got %+v", a)
	}

	rec := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/games/mlb-cubs-angels-20250806/record", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestNew_RejectsEmptyAddr(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.HTTPAddr = " "
	if _, err := New(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}

func TestNew_BookmakerTable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	valid := filepath.Join(dir, "bookmakers.yaml")
	if err := os.WriteFile(valid, []byte("bookmakers:\n  - name: corner bookie\n    id: 0b7a6d3e-8a55-4e8f-9b7a-3f1f7b6f2c11\n"), 0o600); err != nil {
		t.Fatalf("write table: %v", err)
	}

	cfg := memoryConfig()
	cfg.DeliveryScheduleEnabled = false
	cfg.BookmakerTablePath = valid
	a, err := New(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("New with table: %v", err)
	}
	_ = a.Close()

	cfg.BookmakerTablePath = filepath.Join(dir, "missing.yaml")
	if _, err := New(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for missing bookmaker table")
	}
}
