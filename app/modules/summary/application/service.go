package summaryservice

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/Black-And-White-Club/gala-night/app/shared/observability/attr"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability/metrics"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "SummaryService"

// Service reports event-wide figures.
type Service interface {
	TotalRaised(ctx context.Context) (*TotalRaised, error)
}

// PaidTotaler sums paid registration amounts.
type PaidTotaler interface {
	SumPaid(ctx context.Context, db bun.IDB) (float64, error)
}

// BidTotaler sums the winning bids of items that received at least one bid.
type BidTotaler interface {
	SumWinningBids(ctx context.Context, db bun.IDB) (float64, error)
}

// TotalRaised is the money raised so far, rounded to cents.
type TotalRaised struct {
	Registrations float64 `json:"registrations"`
	Auction       float64 `json:"auction"`
	Total         float64 `json:"total"`
}

// SummaryService implements Service.
type SummaryService struct {
	registrations PaidTotaler
	auction       BidTotaler
	logger        *slog.Logger
	metrics       metrics.OperationMetrics
	tracer        trace.Tracer
}

// NewSummaryService creates a new SummaryService.
func NewSummaryService(registrations PaidTotaler, auction BidTotaler, logger *slog.Logger, metrics metrics.OperationMetrics, tracer trace.Tracer) *SummaryService {
	return &SummaryService{
		registrations: registrations,
		auction:       auction,
		logger:        logger,
		metrics:       metrics,
		tracer:        tracer,
	}
}

func (s *SummaryService) TotalRaised(ctx context.Context) (*TotalRaised, error) {
	const op = "TotalRaised"
	ctx, span := s.tracer.Start(ctx, op)
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, op, serviceName)
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration(ctx, op, serviceName, time.Since(start)) }()

	paid, err := s.registrations.SumPaid(ctx, nil)
	if err != nil {
		return nil, s.fail(ctx, span, op, err)
	}
	bids, err := s.auction.SumWinningBids(ctx, nil)
	if err != nil {
		return nil, s.fail(ctx, span, op, err)
	}

	s.metrics.RecordOperationSuccess(ctx, op, serviceName)
	return &TotalRaised{
		Registrations: cents(paid),
		Auction:       cents(bids),
		Total:         cents(paid + bids),
	}, nil
}

func (s *SummaryService) fail(ctx context.Context, span trace.Span, op string, err error) error {
	err = fmt.Errorf("%s: %w", op, err)
	s.logger.ErrorContext(ctx, "Operation failed with error",
		attr.ExtractCorrelationID(ctx),
		attr.String("operation", op),
		attr.Error(err),
	)
	s.metrics.RecordOperationFailure(ctx, op, serviceName)
	span.RecordError(err)
	return err
}

func cents(v float64) float64 {
	return math.Round(v*100) / 100
}

var _ Service = (*SummaryService)(nil)
