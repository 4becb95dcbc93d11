package seatingservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	registrationdb "github.com/Black-And-White-Club/gala-night/app/modules/registration/infrastructure/repositories"
	seatingdb "github.com/Black-And-White-Club/gala-night/app/modules/seating/infrastructure/repositories"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability/attr"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability/metrics"
	"github.com/Black-And-White-Club/gala-night/app/shared/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName      = "SeatingService"
	MaxSeatsPerTable = 50
)

// SeatingService manages tables, seats and seat assignment.
type SeatingService struct {
	repo    seatingdb.Repository
	regRepo registrationdb.Repository
	logger  *slog.Logger
	metrics metrics.OperationMetrics
	tracer  trace.Tracer
	db      *bun.DB
}

// NewSeatingService creates a new SeatingService.
func NewSeatingService(
	repo seatingdb.Repository,
	regRepo registrationdb.Repository,
	logger *slog.Logger,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *SeatingService {
	return &SeatingService{
		repo:    repo,
		regRepo: regRepo,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		db:      db,
	}
}

// AddTable creates seats 1..seatCount for a table. Existing positions are skipped, so
// growing a table only adds the missing seats.
func (s *SeatingService) AddTable(ctx context.Context, tableNumber, seatCount int) (*AddTableResult, error) {
	result, err := withTelemetry(s, ctx, "AddTable", strconv.Itoa(tableNumber), func(ctx context.Context) (results.OperationResult[*AddTableResult, error], error) {
		if tableNumber < 1 || seatCount < 1 || seatCount > MaxSeatsPerTable {
			return results.FailureResult[*AddTableResult, error](ErrInvalidTable), nil
		}
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*AddTableResult, error], error) {
			created, err := s.repo.CreateTable(ctx, db, tableNumber, seatCount)
			if err != nil {
				return results.OperationResult[*AddTableResult, error]{}, err
			}
			return results.SuccessResult[*AddTableResult, error](&AddTableResult{
				TableNumber: tableNumber,
				Created:     created,
				Skipped:     seatCount - created,
			}), nil
		})
	})
	return unwrap(result, err)
}

// GetChart returns every table with its seats and occupants.
func (s *SeatingService) GetChart(ctx context.Context) ([]TableView, error) {
	result, err := withTelemetry(s, ctx, "GetChart", "all", func(ctx context.Context) (results.OperationResult[[]TableView, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]TableView, error], error) {
			seats, err := s.repo.List(ctx, db)
			if err != nil {
				return results.OperationResult[[]TableView, error]{}, err
			}
			return results.SuccessResult[[]TableView, error](BuildChart(seats)), nil
		})
	})
	return unwrap(result, err)
}

func (s *SeatingService) ListAvailable(ctx context.Context) ([]SeatView, error) {
	result, err := withTelemetry(s, ctx, "ListAvailable", "all", func(ctx context.Context) (results.OperationResult[[]SeatView, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]SeatView, error], error) {
			seats, err := s.repo.ListAvailable(ctx, db)
			if err != nil {
				return results.OperationResult[[]SeatView, error]{}, err
			}
			views := make([]SeatView, 0, len(seats))
			for i := range seats {
				views = append(views, toSeatView(&seats[i]))
			}
			return results.SuccessResult[[]SeatView, error](views), nil
		})
	})
	return unwrap(result, err)
}

// AssignSeat links a seat to a registration in one transaction. A seat held by another
// guest is never overwritten; the guest's previous seat is released.
func (s *SeatingService) AssignSeat(ctx context.Context, seatID, registrationID int64) (*SeatView, error) {
	identifier := fmt.Sprintf("seat:%d registration:%d", seatID, registrationID)
	result, err := withTelemetry(s, ctx, "AssignSeat", identifier, func(ctx context.Context) (results.OperationResult[*SeatView, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*SeatView, error], error) {
			return s.assignSeatLogic(ctx, db, seatID, registrationID)
		})
	})
	return unwrap(result, err)
}

func (s *SeatingService) assignSeatLogic(ctx context.Context, db bun.IDB, seatID, registrationID int64) (results.OperationResult[*SeatView, error], error) {
	if _, err := s.regRepo.GetByID(ctx, db, registrationID); err != nil {
		if errors.Is(err, registrationdb.ErrNotFound) {
			return results.FailureResult[*SeatView, error](ErrRegistrationNotFound), nil
		}
		return results.OperationResult[*SeatView, error]{}, err
	}

	claimed, err := s.repo.Claim(ctx, db, seatID, registrationID)
	if err != nil {
		return results.OperationResult[*SeatView, error]{}, err
	}
	if !claimed {
		if _, err := s.repo.GetByID(ctx, db, seatID); err != nil {
			if errors.Is(err, seatingdb.ErrNotFound) {
				return results.FailureResult[*SeatView, error](ErrSeatNotFound), nil
			}
			return results.OperationResult[*SeatView, error]{}, err
		}
		return results.FailureResult[*SeatView, error](ErrSeatOccupied), nil
	}

	released, err := s.repo.ReleaseOthers(ctx, db, registrationID, seatID)
	if err != nil {
		return results.OperationResult[*SeatView, error]{}, err
	}
	if released > 0 {
		s.logger.InfoContext(ctx, "Released previous seat",
			attr.ExtractCorrelationID(ctx),
			attr.Int64("registration_id", registrationID),
			attr.Int("released", released),
		)
	}
	if err := s.regRepo.SetSeatAssigned(ctx, db, registrationID, true); err != nil {
		return results.OperationResult[*SeatView, error]{}, err
	}

	seat, err := s.repo.GetByID(ctx, db, seatID)
	if err != nil {
		return results.OperationResult[*SeatView, error]{}, err
	}
	view := toSeatView(seat)
	return results.SuccessResult[*SeatView, error](&view), nil
}

// UnassignSeat frees a seat and clears the former occupant's flag when they hold no other seat.
func (s *SeatingService) UnassignSeat(ctx context.Context, seatID int64) (*SeatView, error) {
	result, err := withTelemetry(s, ctx, "UnassignSeat", strconv.FormatInt(seatID, 10), func(ctx context.Context) (results.OperationResult[*SeatView, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*SeatView, error], error) {
			seat, err := s.repo.GetByID(ctx, db, seatID)
			if err != nil {
				return seatNotFoundOr[*SeatView](err)
			}
			previous := seat.RegistrationID
			if previous != nil {
				if err := s.repo.Release(ctx, db, seatID); err != nil {
					return seatNotFoundOr[*SeatView](err)
				}
				if err := RefreshAssigned(ctx, db, s.repo, s.regRepo, *previous); err != nil {
					return results.OperationResult[*SeatView, error]{}, err
				}
			}
			seat.RegistrationID = nil
			seat.Registration = nil
			view := toSeatView(seat)
			return results.SuccessResult[*SeatView, error](&view), nil
		})
	})
	return unwrap(result, err)
}

// DeleteSeat removes a seat and frees its occupant.
func (s *SeatingService) DeleteSeat(ctx context.Context, seatID int64) error {
	result, err := withTelemetry(s, ctx, "DeleteSeat", strconv.FormatInt(seatID, 10), func(ctx context.Context) (results.OperationResult[bool, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[bool, error], error) {
			seat, err := s.repo.GetByID(ctx, db, seatID)
			if err != nil {
				return seatNotFoundOr[bool](err)
			}
			if err := s.repo.Delete(ctx, db, seatID); err != nil {
				return seatNotFoundOr[bool](err)
			}
			if seat.RegistrationID != nil {
				if err := RefreshAssigned(ctx, db, s.repo, s.regRepo, *seat.RegistrationID); err != nil {
					return results.OperationResult[bool, error]{}, err
				}
			}
			return results.SuccessResult[bool, error](true), nil
		})
	})
	_, err = unwrap(result, err)
	return err
}

// DeleteTable removes every seat at a table and returns how many were removed.
func (s *SeatingService) DeleteTable(ctx context.Context, tableNumber int) (int, error) {
	result, err := withTelemetry(s, ctx, "DeleteTable", strconv.Itoa(tableNumber), func(ctx context.Context) (results.OperationResult[int, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[int, error], error) {
			removed, err := s.repo.DeleteTable(ctx, db, tableNumber)
			if err != nil {
				if errors.Is(err, seatingdb.ErrNotFound) {
					return results.FailureResult[int, error](ErrTableNotFound), nil
				}
				return results.OperationResult[int, error]{}, err
			}
			for _, seat := range removed {
				if seat.RegistrationID == nil {
					continue
				}
				if err := RefreshAssigned(ctx, db, s.repo, s.regRepo, *seat.RegistrationID); err != nil {
					return results.OperationResult[int, error]{}, err
				}
			}
			return results.SuccessResult[int, error](len(removed)), nil
		})
	})
	return unwrap(result, err)
}

func seatNotFoundOr[S any](err error) (results.OperationResult[S, error], error) {
	if errors.Is(err, seatingdb.ErrNotFound) {
		return results.FailureResult[S, error](ErrSeatNotFound), nil
	}
	return results.OperationResult[S, error]{}, err
}

func unwrap[S any](result results.OperationResult[S, error], err error) (S, error) {
	var zero S
	if err != nil {
		return zero, err
	}
	if result.IsFailure() {
		return zero, *result.Failure
	}
	return *result.Success, nil
}

// -----------------------------------------------------------------------------
// Generic Helpers
// -----------------------------------------------------------------------------

type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *SeatingService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	if s.metrics != nil {
		s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)
	}

	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
		}
	}()

	s.logger.InfoContext(ctx, "Operation triggered", attr.ExtractCorrelationID(ctx), attr.String("operation", operationName))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			if s.metrics != nil {
				s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			}
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		}
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, "Operation completed successfully",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
		)
	}

	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	}

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *SeatingService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})
	return result, err
}

var _ Service = (*SeatingService)(nil)
