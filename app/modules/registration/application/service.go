package registrationservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	registrationdb "github.com/Black-And-White-Club/gala-night/app/modules/registration/infrastructure/repositories"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability/attr"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability/metrics"
	"github.com/Black-And-White-Club/gala-night/app/shared/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "RegistrationService"

// RegistrationService handles guest registrations.
type RegistrationService struct {
	repo    registrationdb.Repository
	logger  *slog.Logger
	metrics metrics.OperationMetrics
	tracer  trace.Tracer
	db      *bun.DB
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(
	repo registrationdb.Repository,
	logger *slog.Logger,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *RegistrationService {
	return &RegistrationService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		db:      db,
	}
}

// Register stores a new guest registration. Payment status always starts unpaid.
func (s *RegistrationService) Register(ctx context.Context, in RegisterInput) (*registrationdb.Registration, error) {
	result, err := withTelemetry(s, ctx, "Register", strings.TrimSpace(in.Email), func(ctx context.Context) (results.OperationResult[*registrationdb.Registration, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*registrationdb.Registration, error], error) {
			reg := &registrationdb.Registration{}
			applyInput(reg, in)
			if reg.Name == "" || reg.Email == "" {
				return results.FailureResult[*registrationdb.Registration, error](ErrInvalidRegistration), nil
			}
			if err := s.repo.Create(ctx, db, reg); err != nil {
				return results.OperationResult[*registrationdb.Registration, error]{}, err
			}
			return results.SuccessResult[*registrationdb.Registration, error](reg), nil
		})
	})
	return unwrap(result, err)
}

// GetRegistration retrieves a registration by id.
func (s *RegistrationService) GetRegistration(ctx context.Context, id int64) (*registrationdb.Registration, error) {
	result, err := withTelemetry(s, ctx, "GetRegistration", strconv.FormatInt(id, 10), func(ctx context.Context) (results.OperationResult[*registrationdb.Registration, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*registrationdb.Registration, error], error) {
			reg, err := s.repo.GetByID(ctx, db, id)
			if err != nil {
				return notFoundOr[*registrationdb.Registration](err)
			}
			return results.SuccessResult[*registrationdb.Registration, error](reg), nil
		})
	})
	return unwrap(result, err)
}

// ListRegistrations returns every registration, newest first.
func (s *RegistrationService) ListRegistrations(ctx context.Context) ([]registrationdb.Registration, error) {
	result, err := withTelemetry(s, ctx, "ListRegistrations", "all", func(ctx context.Context) (results.OperationResult[[]registrationdb.Registration, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]registrationdb.Registration, error], error) {
			regs, err := s.repo.List(ctx, db)
			if err != nil {
				return results.OperationResult[[]registrationdb.Registration, error]{}, err
			}
			if regs == nil {
				regs = []registrationdb.Registration{}
			}
			return results.SuccessResult[[]registrationdb.Registration, error](regs), nil
		})
	})
	return unwrap(result, err)
}

func (s *RegistrationService) ListByTable(ctx context.Context) ([]TableGroup, error) {
	result, err := withTelemetry(s, ctx, "ListByTable", "all", func(ctx context.Context) (results.OperationResult[[]TableGroup, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]TableGroup, error], error) {
			regs, err := s.repo.List(ctx, db)
			if err != nil {
				return results.OperationResult[[]TableGroup, error]{}, err
			}
			return results.SuccessResult[[]TableGroup, error](GroupByTable(regs)), nil
		})
	})
	return unwrap(result, err)
}

// UpdateRegistration replaces the editable fields of a registration. The seat flag is
// owned by seating and is left untouched.
func (s *RegistrationService) UpdateRegistration(ctx context.Context, id int64, in UpdateInput) (*registrationdb.Registration, error) {
	result, err := withTelemetry(s, ctx, "UpdateRegistration", strconv.FormatInt(id, 10), func(ctx context.Context) (results.OperationResult[*registrationdb.Registration, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*registrationdb.Registration, error], error) {
			reg, err := s.repo.GetByID(ctx, db, id)
			if err != nil {
				return notFoundOr[*registrationdb.Registration](err)
			}
			applyInput(reg, in.RegisterInput)
			reg.PaymentStatus = in.PaymentStatus
			if reg.Name == "" || reg.Email == "" {
				return results.FailureResult[*registrationdb.Registration, error](ErrInvalidRegistration), nil
			}
			if err := s.repo.Update(ctx, db, reg); err != nil {
				return notFoundOr[*registrationdb.Registration](err)
			}
			return results.SuccessResult[*registrationdb.Registration, error](reg), nil
		})
	})
	return unwrap(result, err)
}

// UpdatePayment marks a registration paid or unpaid, optionally correcting the amount.
func (s *RegistrationService) UpdatePayment(ctx context.Context, id int64, paid bool, amount *float64) (*registrationdb.Registration, error) {
	result, err := withTelemetry(s, ctx, "UpdatePayment", strconv.FormatInt(id, 10), func(ctx context.Context) (results.OperationResult[*registrationdb.Registration, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*registrationdb.Registration, error], error) {
			reg, err := s.repo.UpdatePayment(ctx, db, id, paid, amount)
			if err != nil {
				return notFoundOr[*registrationdb.Registration](err)
			}
			return results.SuccessResult[*registrationdb.Registration, error](reg), nil
		})
	})
	return unwrap(result, err)
}

func applyInput(reg *registrationdb.Registration, in RegisterInput) {
	reg.Name = strings.TrimSpace(in.Name)
	reg.Email = strings.TrimSpace(in.Email)
	reg.Phone = strings.TrimSpace(in.Phone)
	reg.PaymentAmount = in.PaymentAmount
	reg.TablePreference = in.TablePreference
	reg.SeatPreference = in.SeatPreference
	reg.Quote = optional(in.Quote)
	reg.Bio = optional(in.Bio)
	reg.Involvement = optional(in.Involvement)
	reg.ImageURL = optional(in.ImageURL)
}

// optional turns blank strings into NULL.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func notFoundOr[S any](err error) (results.OperationResult[S, error], error) {
	if errors.Is(err, registrationdb.ErrNotFound) {
		return results.FailureResult[S, error](registrationdb.ErrNotFound), nil
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
	s *RegistrationService,
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
	s *RegistrationService,
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

var _ Service = (*RegistrationService)(nil)
