package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/odds-pipeline/internal/domain/matching"
	"github.com/riskibarqy/odds-pipeline/internal/platform/cache"
	"github.com/riskibarqy/odds-pipeline/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultMatchingWorkers  = 8
	matchingCacheKeyPrefix  = "matching:"
	defaultMatchingCacheTTL = 30 * time.Second
)

type MatchingConfig struct {
	CacheTTL time.Duration
	Workers  int
}

type downstreamResult struct {
	status matching.Status
	found  bool
}

// MatchingService reports the reconciliation status of games. The flagged
// index is authoritative; the downstream service is consulted only on a miss.
type MatchingService struct {
	flagged    matching.Lookup
	downstream matching.Lookup
	batch      matching.BatchLookup
	cache      *cache.Store[downstreamResult]
	workers    int
	logger     *logging.Logger
}

func NewMatchingService(
	flagged matching.Lookup,
	downstream matching.Lookup,
	batch matching.BatchLookup,
	cfg MatchingConfig,
	logger *logging.Logger,
) *MatchingService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Workers < 1 {
		cfg.Workers = defaultMatchingWorkers
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultMatchingCacheTTL
	}

	return &MatchingService{
		flagged:    flagged,
		downstream: downstream,
		batch:      batch,
		cache:      cache.NewStore[downstreamResult](cfg.CacheTTL),
		workers:    cfg.Workers,
		logger:     logger,
	}
}

// Resolve never fails: lookup errors are folded into an api_error status.
func (s *MatchingService) Resolve(ctx context.Context, gameID string) matching.Status {
	ctx, span := startSpan(ctx, "usecase.MatchingService.Resolve", attribute.String("matching.game_id", gameID))
	defer span.End()

	if s.flagged != nil {
		status, found, err := s.flagged.Lookup(ctx, gameID)
		switch {
		case err != nil:
			s.logger.WarnContext(ctx, "flagged event lookup failed", "game_id", gameID, "error", err)
		case found:
			span.SetAttributes(attribute.String("matching.source", matching.SourceFlaggedEvents))
			return status
		}
	}

	if s.downstream == nil {
		return matching.NotProcessed(gameID)
	}

	res, err := s.cache.GetOrLoad(ctx, matchingCacheKeyPrefix+gameID, func(ctx context.Context) (downstreamResult, error) {
		status, found, err := s.downstream.Lookup(ctx, gameID)
		if err != nil {
			return downstreamResult{}, err
		}
		return downstreamResult{status: status, found: found}, nil
	})
	if err != nil {
		s.logger.WarnContext(ctx, "matching service lookup failed", "game_id", gameID, "error", err)
		return matching.APIError(gameID, err)
	}

	if !res.found {
		return matching.NotProcessed(gameID)
	}
	span.SetAttributes(attribute.String("matching.source", res.status.Source))
	return matching.Sanitize(gameID, res.status)
}

// ResolveMany asks the batch endpoint for every id at once. Every id in the
// input has an entry in the result.
func (s *MatchingService) ResolveMany(ctx context.Context, gameIDs []string) map[string]matching.Status {
	ctx, span := startSpan(ctx, "usecase.MatchingService.ResolveMany")
	defer span.End()

	ids := normalizeIDs(gameIDs)
	if s.batch == nil {
		return s.ResolveEach(ctx, ids)
	}

	out := make(map[string]matching.Status, len(ids))
	if len(ids) == 0 {
		return out
	}

	resp, err := s.batch.LookupMany(ctx, ids)
	if err != nil {
		s.logger.WarnContext(ctx, "matching batch lookup failed", "games", len(ids), "error", err)
		for _, id := range ids {
			out[id] = matching.APIError(id, err)
		}
		return out
	}

	for _, id := range ids {
		status, ok := resp[id]
		if !ok {
			out[id] = matching.Unknown(id)
			continue
		}
		out[id] = matching.Sanitize(id, status)
	}
	return out
}

// ResolveEach runs Resolve for every id on a bounded worker pool.
func (s *MatchingService) ResolveEach(ctx context.Context, gameIDs []string) map[string]matching.Status {
	ids := normalizeIDs(gameIDs)
	out := make(map[string]matching.Status, len(ids))
	if len(ids) == 0 {
		return out
	}

	workerCount := s.workers
	if workerCount > len(ids) {
		workerCount = len(ids)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		s.logger.WarnContext(ctx, "create matching worker pool failed, resolving sequentially", "error", err)
		for _, id := range ids {
			out[id] = s.Resolve(ctx, id)
		}
		return out
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		workers sync.WaitGroup
	)
	for _, id := range ids {
		id := id
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			status := s.Resolve(ctx, id)
			mu.Lock()
			out[id] = status
			mu.Unlock()
		}); err != nil {
			workers.Done()
			status := s.Resolve(ctx, id)
			mu.Lock()
			out[id] = status
			mu.Unlock()
		}
	}
	workers.Wait()

	return out
}

// Invalidate drops a cached downstream answer.
func (s *MatchingService) Invalidate(ctx context.Context, gameID string) {
	s.cache.Delete(ctx, matchingCacheKeyPrefix+gameID)
}
