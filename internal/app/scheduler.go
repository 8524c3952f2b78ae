package app

import (
	"context"
	"fmt"

	"github.com/riskibarqy/odds-pipeline/internal/platform/logging"
	"github.com/riskibarqy/odds-pipeline/internal/usecase"
	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

type batchSender interface {
	SendAll(ctx context.Context, limit int) (usecase.BatchResult, error)
}

// Scheduler runs SendAll on a cron schedule. Overlapping ticks are skipped.
// Stop cancels the context of a running batch.
type Scheduler struct {
	cron   *cron.Cron
	cancel context.CancelFunc
	logger *logging.Logger
}

func NewScheduler(spec string, limit int, sender batchSender, logger *logging.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = logging.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	cl := cronLogger{logger: logger}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	tracer := otel.Tracer("odds-pipeline/internal/app")
	_, err := c.AddFunc(spec, func() {
		runCtx, span := tracer.Start(ctx, "scheduler.SendAll")
		defer span.End()

		result, err := sender.SendAll(runCtx, limit)
		if err != nil {
			span.RecordError(err)
			logger.ErrorContext(runCtx, "scheduled delivery failed", "limit", limit, "error", err)
			return
		}
		span.SetAttributes(attribute.String("delivery.run_id", result.RunID))
		logger.InfoContext(runCtx, "scheduled delivery finished",
			"run_id", result.RunID,
			"total", result.Total,
			"successful", result.Successful,
			"failed", result.Failed,
			"skipped", result.Skipped,
		)
	})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("register delivery schedule %q: %w", spec, err)
	}

	return &Scheduler{cron: c, cancel: cancel, logger: logger}, nil
}

func (s *Scheduler) Start() {
	s.logger.Info("delivery scheduler started", "jobs", len(s.cron.Entries()))
	s.cron.Start()
}

// Stop blocks until a running delivery returns.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
	s.logger.Info("delivery scheduler stopped")
}

type cronLogger struct {
	logger *logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
