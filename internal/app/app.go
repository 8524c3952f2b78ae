package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/odds-pipeline/external/ingestion"
	matchingclient "github.com/riskibarqy/odds-pipeline/external/matching"
	"github.com/riskibarqy/odds-pipeline/internal/config"
	"github.com/riskibarqy/odds-pipeline/internal/domain/bookmaker"
	"github.com/riskibarqy/odds-pipeline/internal/domain/delivery"
	"github.com/riskibarqy/odds-pipeline/internal/domain/matching"
	"github.com/riskibarqy/odds-pipeline/internal/domain/odds"
	"github.com/riskibarqy/odds-pipeline/internal/domain/record"
	"github.com/riskibarqy/odds-pipeline/internal/infrastructure/ledger"
	"github.com/riskibarqy/odds-pipeline/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/odds-pipeline/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/odds-pipeline/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/odds-pipeline/internal/platform/id"
	"github.com/riskibarqy/odds-pipeline/internal/platform/logging"
	"github.com/riskibarqy/odds-pipeline/internal/usecase"
)

// App owns the HTTP server and every resource that must be released on shutdown.
type App struct {
	Server    *http.Server
	Scheduler *Scheduler

	closers       []func() error
	cancelBatches context.CancelFunc
	logger        *logging.Logger
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	batchCtx, cancelBatches := context.WithCancel(context.Background())
	a := &App{logger: logger, cancelBatches: cancelBatches}

	games, flagged, err := a.buildRepositories(ctx, cfg)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	resolver := bookmaker.NewDefaultResolver()
	if path := strings.TrimSpace(cfg.BookmakerTablePath); path != "" {
		resolver, err = bookmaker.LoadFile(path)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		logger.Info("bookmaker table loaded", "path", path, "entries", len(resolver.Known()))
	}

	deliveryLedger, err := a.buildLedger(ctx, cfg)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	sender := ingestion.NewClient(ingestion.ClientConfig{
		BaseURL:        cfg.APIBaseURL,
		Token:          cfg.APIToken,
		Timeout:        cfg.RequestTimeout,
		Logger:         logger.Named("ingestion"),
		CircuitBreaker: cfg.IngestionCircuit,
	})

	deliveryService := usecase.NewDeliveryService(
		games,
		record.NewNormalizer(cfg.SourceID, resolver),
		sender,
		deliveryLedger,
		idgen.NewUUIDGenerator(),
		usecase.DeliveryConfig{
			SourceID:     cfg.SourceID,
			BatchSize:    cfg.BatchSize,
			MaxAttempts:  cfg.RetryAttempts,
			RetryDelay:   cfg.RetryDelay,
			BatchDelay:   cfg.BatchDelay,
			DefaultLimit: cfg.SendAllDefaultLimit,
		},
		logger.Named("delivery"),
	)

	var (
		downstream matching.Lookup
		batch      matching.BatchLookup
	)
	if strings.TrimSpace(cfg.MatchingBaseURL) != "" {
		client := matchingclient.NewClient(matchingclient.ClientConfig{
			BaseURL:        cfg.MatchingBaseURL,
			Timeout:        cfg.MatchingTimeout,
			Logger:         logger.Named("matching-client"),
			CircuitBreaker: cfg.MatchingCircuit,
		})
		downstream = client
		batch = client
	}
	matchingService := usecase.NewMatchingService(
		flagged,
		downstream,
		batch,
		usecase.MatchingConfig{
			CacheTTL: cfg.MatchingCacheTTL,
			Workers:  cfg.MatchingWorkers,
		},
		logger.Named("matching"),
	)

	handler := httpapi.NewHandler(
		deliveryService,
		matchingService,
		usecase.NewFlaggedEventService(flagged),
		resolver,
		logger.Named("httpapi"),
	)
	handler.BindBatchContext(batchCtx)

	routerCfg := httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
	}
	if cfg.UptraceEnabled && cfg.UptraceCaptureRequestBody {
		routerCfg.RequestBodyMaxBytes = cfg.UptraceRequestBodyMaxBytes
	}

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, logger, routerCfg),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorLog:     log.New(logger.Named("http").Writer(logging.LevelWarn), "", 0),
	}

	if cfg.DeliveryScheduleEnabled {
		a.Scheduler, err = NewScheduler(cfg.DeliverySchedule, cfg.SendAllDefaultLimit, deliveryService, logger.Named("scheduler"))
		if err != nil {
			_ = a.Close()
			return nil, err
		}
	}

	return a, nil
}

func (a *App) buildRepositories(ctx context.Context, cfg config.Config) (odds.Repository, matching.FlaggedEventRepository, error) {
	if !cfg.DBEnabled {
		a.logger.Warn("database disabled, serving seeded in-memory games")
		return memory.NewGameRepository(memory.SeedGames(), memory.SeedOdds()),
			memory.NewFlaggedEventRepository(memory.SeedFlaggedEvents()),
			nil
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	a.closers = append(a.closers, db.Close)

	return postgres.NewGameRepository(db), postgres.NewFlaggedEventRepository(db), nil
}

func (a *App) buildLedger(ctx context.Context, cfg config.Config) (delivery.Ledger, error) {
	if !cfg.RedisEnabled {
		return ledger.NewMemoryLedger(cfg.LedgerTTL), nil
	}

	client, err := ledger.NewRedisClient(ctx, ledger.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("connect delivery ledger: %w", err)
	}
	a.closers = append(a.closers, client.Close)
	a.logger.Info("delivery ledger connected", "backend", "redis", "addr", cfg.RedisAddr, "ttl", cfg.LedgerTTL.String())

	return ledger.NewRedisLedger(client, cfg.LedgerTTL), nil
}

// Start launches the scheduler if one is configured. The HTTP server is
// started by the caller.
func (a *App) Start() {
	if a.Scheduler != nil {
		a.Scheduler.Start()
	}
}

// Close cancels delivery batches still running after the HTTP server shut
// down, stops the scheduler, waiting for a running batch, then releases
// connections in reverse order of acquisition.
func (a *App) Close() error {
	if a.cancelBatches != nil {
		a.cancelBatches()
	}
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}

	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}
