package auctionqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	auctionservice "github.com/Black-And-White-Club/gala-night/app/modules/auction/application"
	auctiondb "github.com/Black-And-White-Club/gala-night/app/modules/auction/infrastructure/repositories"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability/attr"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability/metrics"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
)

const (
	queueName     = "auction"
	metricService = "river"
)

// Service schedules auction close jobs on River.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	metrics metrics.OperationMetrics
}

var _ auctionservice.CloseScheduler = (*Service)(nil)

// NewService creates a River client on its own pgx pool and registers the close worker.
func NewService(ctx context.Context, dsn string, repo auctiondb.Repository, logger *slog.Logger, m metrics.OperationMetrics) (*Service, error) {
	ctxLogger := logger.With(
		attr.String("operation", "new_auction_queue_service"),
		attr.String("component", "river_queue"),
	)

	start := time.Now()
	m.RecordOperationAttempt(ctx, "initialize_service", metricService)

	ctxLogger.InfoContext(ctx, "Initializing auction queue service")

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		m.RecordOperationFailure(ctx, "initialize_service", metricService)
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		m.RecordOperationFailure(ctx, "initialize_service", metricService)
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		m.RecordOperationFailure(ctx, "initialize_service", metricService)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewCloseWorker(repo, ctxLogger))

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 5},
			queueName:          {MaxWorkers: 5},
		},
		Workers: workers,
	})
	if err != nil {
		pool.Close()
		m.RecordOperationFailure(ctx, "initialize_service", metricService)
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	m.RecordOperationSuccess(ctx, "initialize_service", metricService)
	m.RecordOperationDuration(ctx, "initialize_service", metricService, time.Since(start))

	ctxLogger.InfoContext(ctx, "Auction queue service initialized")
	return &Service{client: client, pool: pool, logger: ctxLogger, metrics: m}, nil
}

// Start starts working jobs.
func (s *Service) Start(ctx context.Context) error {
	s.metrics.RecordOperationAttempt(ctx, "start_service", metricService)
	if err := s.client.Start(ctx); err != nil {
		s.metrics.RecordOperationFailure(ctx, "start_service", metricService)
		return fmt.Errorf("failed to start River client: %w", err)
	}
	s.metrics.RecordOperationSuccess(ctx, "start_service", metricService)
	s.logger.InfoContext(ctx, "Auction queue service started")
	return nil
}

// Stop waits for running jobs to finish and closes the pool.
func (s *Service) Stop(ctx context.Context) error {
	s.metrics.RecordOperationAttempt(ctx, "stop_service", metricService)
	defer s.pool.Close()

	if err := s.client.Stop(ctx); err != nil {
		s.metrics.RecordOperationFailure(ctx, "stop_service", metricService)
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.metrics.RecordOperationSuccess(ctx, "stop_service", metricService)
	s.logger.InfoContext(ctx, "Auction queue service stopped")
	return nil
}

// ScheduleClose enqueues a close job at endsAt. Rescheduling the same item and time is a no-op.
func (s *Service) ScheduleClose(ctx context.Context, itemID int64, endsAt time.Time) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "schedule_auction_close", metricService)

	res, err := s.client.Insert(ctx, AuctionCloseJob{ItemID: itemID, EndsAt: endsAt.UTC()}, &river.InsertOpts{
		Queue:       queueName,
		ScheduledAt: endsAt,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	})
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "schedule_auction_close", metricService)
		return fmt.Errorf("failed to schedule auction close job: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "schedule_auction_close", metricService)
	s.metrics.RecordOperationDuration(ctx, "schedule_auction_close", metricService, time.Since(start))

	s.logger.InfoContext(ctx, "Auction close job scheduled",
		attr.Int64("item_id", itemID),
		attr.Time("ends_at", endsAt),
		attr.Int64("job_id", res.Job.ID),
		attr.Bool("duplicate", res.UniqueSkippedAsDuplicate),
	)
	return nil
}
