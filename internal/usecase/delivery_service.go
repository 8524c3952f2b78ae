package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/odds-pipeline/internal/domain/delivery"
	"github.com/riskibarqy/odds-pipeline/internal/domain/odds"
	"github.com/riskibarqy/odds-pipeline/internal/domain/record"
	idgen "github.com/riskibarqy/odds-pipeline/internal/platform/id"
	"github.com/riskibarqy/odds-pipeline/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultDeliveryBatchSize   = 10
	defaultDeliveryMaxAttempts = 3
	defaultSendAllLimit        = 100
)

type DeliveryConfig struct {
	SourceID     string
	BatchSize    int
	MaxAttempts  int
	RetryDelay   time.Duration
	BatchDelay   time.Duration
	DefaultLimit int
}

type BatchError struct {
	Game  string `json:"game"`
	Error string `json:"error"`
}

type BatchResult struct {
	RunID      string         `json:"run_id"`
	Total      int            `json:"total"`
	Successful int            `json:"successful"`
	Failed     int            `json:"failed"`
	Skipped    int            `json:"skipped"`
	Errors     []BatchError   `json:"errors"`
	Stats      delivery.Stats `json:"stats"`
}

type ConnectionResult struct {
	Success  bool              `json:"success"`
	Response delivery.Response `json:"response,omitempty"`
	Error    string            `json:"error,omitempty"`
}

type pendingRecord struct {
	gameID string
	record record.CanonicalRecord
}

// DeliveryService sends canonical records to the ingestion API and owns the
// delivery counters. Batches are serialized so a single batch mutates the
// counters at a time.
type DeliveryService struct {
	games      odds.Repository
	normalizer *record.Normalizer
	sender     delivery.Sender
	ledger     delivery.Ledger
	ids        idgen.Generator
	cfg        DeliveryConfig
	logger     *logging.Logger
	now        func() time.Time

	batchMu sync.Mutex

	mu     sync.Mutex
	sent   int
	failed int
	errs   []delivery.ErrorEntry
}

func NewDeliveryService(
	games odds.Repository,
	normalizer *record.Normalizer,
	sender delivery.Sender,
	ledger delivery.Ledger,
	ids idgen.Generator,
	cfg DeliveryConfig,
	logger *logging.Logger,
) *DeliveryService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = idgen.NewUUIDGenerator()
	}
	if cfg.BatchSize < 1 {
		cfg.BatchSize = defaultDeliveryBatchSize
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = defaultDeliveryMaxAttempts
	}
	if cfg.RetryDelay < 0 {
		cfg.RetryDelay = 0
	}
	if cfg.BatchDelay < 0 {
		cfg.BatchDelay = 0
	}
	if cfg.DefaultLimit < 1 {
		cfg.DefaultLimit = defaultSendAllLimit
	}

	return &DeliveryService{
		games:      games,
		normalizer: normalizer,
		sender:     sender,
		ledger:     ledger,
		ids:        ids,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
		errs:       make([]delivery.ErrorEntry, 0),
	}
}

// SendRecord delivers one record, retrying any failure up to MaxAttempts
// with a fixed RetryDelay between attempts. When the sender asks for a longer
// pause (an open circuit breaker), the wait stretches to that pause so the
// next attempt reaches the API.
func (s *DeliveryService) SendRecord(ctx context.Context, rec record.CanonicalRecord) (delivery.Response, error) {
	ctx, span := startSpan(ctx, "usecase.DeliveryService.SendRecord", attribute.String("delivery.record", rec.Name))
	defer span.End()

	var lastErr error
	attempts := 0
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		attempts = attempt
		resp, err := s.sender.Send(ctx, rec)
		if err == nil {
			s.recordSuccess()
			span.SetAttributes(attribute.Int("delivery.attempts", attempts))
			return resp, nil
		}
		lastErr = err

		if attempt == s.cfg.MaxAttempts {
			break
		}
		delay := s.retryDelay(err)
		s.logger.WarnContext(ctx, "delivery attempt failed, retrying",
			"record", rec.Name,
			"attempt", attempt,
			"max_attempts", s.cfg.MaxAttempts,
			"retry_delay", delay.String(),
			"error", err,
		)
		if waitErr := waitFor(ctx, delay); waitErr != nil {
			lastErr = fmt.Errorf("%w (retry aborted: %v)", lastErr, waitErr)
			break
		}
	}

	deliveryErr := &delivery.Error{
		Record:   rec.Name,
		Attempts: attempts,
		Err:      lastErr,
	}
	var respErr *delivery.ResponseError
	if errors.As(lastErr, &respErr) {
		deliveryErr.Status = respErr.StatusCode
		deliveryErr.Body = respErr.Body
	}

	s.recordFailure(rec.Name, lastErr)
	span.SetAttributes(attribute.Int("delivery.attempts", attempts))
	failSpan(span, deliveryErr)
	s.logger.ErrorContext(ctx, "delivery failed",
		"record", rec.Name,
		"attempts", attempts,
		"status", deliveryErr.Status,
		"error", lastErr,
	)
	return nil, deliveryErr
}

// SendAll delivers up to limit games that have odds. limit <= 0 uses the default.
func (s *DeliveryService) SendAll(ctx context.Context, limit int) (BatchResult, error) {
	ctx, span := startSpan(ctx, "usecase.DeliveryService.SendAll")
	defer span.End()

	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}

	records, err := s.loadRecords(ctx, odds.GameFilter{Limit: limit, OnlyWithOdds: true})
	if err != nil {
		return BatchResult{}, err
	}

	return s.runBatch(ctx, records)
}

// SendByIDs delivers the listed games that have odds.
func (s *DeliveryService) SendByIDs(ctx context.Context, gameIDs []string) (BatchResult, error) {
	ctx, span := startSpan(ctx, "usecase.DeliveryService.SendByIDs")
	defer span.End()

	ids := normalizeIDs(gameIDs)
	if len(ids) == 0 {
		return BatchResult{}, fmt.Errorf("%w: game_ids is required", ErrInvalidInput)
	}

	records, err := s.loadRecords(ctx, odds.GameFilter{IDs: ids, OnlyWithOdds: true})
	if err != nil {
		return BatchResult{}, err
	}

	return s.runBatch(ctx, records)
}

// BuildRecord returns the canonical record of one game without sending it.
func (s *DeliveryService) BuildRecord(ctx context.Context, gameID string) (record.CanonicalRecord, error) {
	ctx, span := startSpan(ctx, "usecase.DeliveryService.BuildRecord")
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return record.CanonicalRecord{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	games, err := s.games.ListGames(ctx, odds.GameFilter{IDs: []string{gameID}})
	if err != nil {
		return record.CanonicalRecord{}, fmt.Errorf("list games: %w", err)
	}
	games = odds.DedupeGames(games)
	if len(games) == 0 {
		return record.CanonicalRecord{}, fmt.Errorf("%w: game=%s", ErrNotFound, gameID)
	}

	rows, err := s.games.ListOddsByGameIDs(ctx, []string{gameID})
	if err != nil {
		return record.CanonicalRecord{}, fmt.Errorf("list odds: %w", err)
	}

	return s.normalizer.Normalize(games[0], odds.DedupeOdds(rows)), nil
}

// TestConnection sends a probe record once. It does not touch the counters.
func (s *DeliveryService) TestConnection(ctx context.Context) ConnectionResult {
	ctx, span := startSpan(ctx, "usecase.DeliveryService.TestConnection")
	defer span.End()

	resp, err := s.sender.Send(ctx, record.ConnectionTestRecord(s.cfg.SourceID, s.now()))
	if err != nil {
		s.logger.WarnContext(ctx, "ingestion connection test failed", "error", err)
		return ConnectionResult{Success: false, Error: err.Error()}
	}
	return ConnectionResult{Success: true, Response: resp}
}

func (s *DeliveryService) Stats() delivery.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return delivery.Stats{
		Sent:        s.sent,
		Failed:      s.failed,
		Errors:      append([]delivery.ErrorEntry{}, s.errs...),
		SuccessRate: delivery.SuccessRate(s.sent, s.failed),
	}
}

func (s *DeliveryService) ResetStats() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sent = 0
	s.failed = 0
	s.errs = make([]delivery.ErrorEntry, 0)
}

func (s *DeliveryService) recordSuccess() {
	s.mu.Lock()
	s.sent++
	s.mu.Unlock()
}

func (s *DeliveryService) recordFailure(name string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}

	s.mu.Lock()
	s.failed++
	s.errs = append(s.errs, delivery.ErrorEntry{
		Record:    name,
		Error:     msg,
		Timestamp: s.now().UTC(),
	})
	s.mu.Unlock()
}

func (s *DeliveryService) loadRecords(ctx context.Context, filter odds.GameFilter) ([]pendingRecord, error) {
	games, err := s.games.ListGames(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	games = odds.DedupeGames(games)
	if len(games) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(games))
	for _, game := range games {
		ids = append(ids, game.ID)
	}

	rows, err := s.games.ListOddsByGameIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list odds: %w", err)
	}
	byGame := odds.GroupByGame(odds.DedupeOdds(rows))

	out := make([]pendingRecord, 0, len(games))
	for _, game := range games {
		gameRows := byGame[game.ID]
		if len(gameRows) == 0 {
			continue
		}
		out = append(out, pendingRecord{
			gameID: game.ID,
			record: s.normalizer.Normalize(game, gameRows),
		})
	}

	return out, nil
}

func (s *DeliveryService) runBatch(ctx context.Context, records []pendingRecord) (BatchResult, error) {
	s.batchMu.Lock()
	defer s.batchMu.Unlock()

	runID, err := s.ids.NewID()
	if err != nil {
		return BatchResult{}, fmt.Errorf("generate run id: %w", err)
	}

	result := BatchResult{
		RunID:  runID,
		Total:  len(records),
		Errors: make([]BatchError, 0),
	}
	started := s.now()
	s.logger.InfoContext(ctx, "delivery batch started", "run_id", runID, "records", len(records), "batch_size", s.cfg.BatchSize)

	for i, item := range records {
		if i > 0 && i%s.cfg.BatchSize == 0 {
			// cancellation is picked up by the ctx check below
			_ = waitFor(ctx, s.cfg.BatchDelay)
		}
		if err := ctx.Err(); err != nil {
			s.abandon(ctx, records[i:], err, &result)
			break
		}
		s.deliverOne(ctx, item, &result)
	}

	result.Stats = s.Stats()
	s.logger.InfoContext(ctx, "delivery batch finished",
		"run_id", runID,
		"successful", result.Successful,
		"failed", result.Failed,
		"skipped", result.Skipped,
		"duration_ms", time.Since(started).Milliseconds(),
	)

	return result, nil
}

func (s *DeliveryService) deliverOne(ctx context.Context, item pendingRecord, result *BatchResult) {
	fingerprint := ""
	if s.ledger != nil {
		fingerprint = recordFingerprint(item.record)
		if fingerprint != "" {
			seen, err := s.ledger.Seen(ctx, item.gameID, fingerprint)
			if err != nil {
				s.logger.WarnContext(ctx, "delivery ledger lookup failed", "game_id", item.gameID, "error", err)
			} else if seen {
				result.Skipped++
				return
			}
		}
	}

	if _, err := s.SendRecord(ctx, item.record); err != nil {
		result.Failed++
		result.Errors = append(result.Errors, BatchError{Game: item.record.Name, Error: err.Error()})
		return
	}
	result.Successful++

	if s.ledger != nil && fingerprint != "" {
		if err := s.ledger.Remember(ctx, item.gameID, fingerprint); err != nil {
			s.logger.WarnContext(ctx, "delivery ledger update failed", "game_id", item.gameID, "error", err)
		}
	}
}

// abandon counts records a cancelled batch never attempted as failed.
func (s *DeliveryService) abandon(ctx context.Context, records []pendingRecord, cause error, result *BatchResult) {
	err := fmt.Errorf("delivery cancelled: %w", cause)
	for _, item := range records {
		s.recordFailure(item.record.Name, err)
		result.Failed++
		result.Errors = append(result.Errors, BatchError{Game: item.record.Name, Error: err.Error()})
	}
	s.logger.WarnContext(ctx, "delivery batch cancelled", "remaining", len(records), "error", cause)
}

func recordFingerprint(rec record.CanonicalRecord) string {
	raw, err := sonic.Marshal(rec)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// retryHinter is implemented by sender errors that know when a retry can
// succeed.
type retryHinter interface {
	RetryAfter() time.Duration
}

func (s *DeliveryService) retryDelay(err error) time.Duration {
	var hint retryHinter
	if errors.As(err, &hint) && hint.RetryAfter() > s.cfg.RetryDelay {
		return hint.RetryAfter()
	}
	return s.cfg.RetryDelay
}

func waitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func normalizeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
