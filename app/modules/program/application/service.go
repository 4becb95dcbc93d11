package programservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	programdb "github.com/Black-And-White-Club/gala-night/app/modules/program/infrastructure/repositories"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability/attr"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability/metrics"
	"github.com/Black-And-White-Club/gala-night/app/shared/results"
	"github.com/Black-And-White-Club/gala-night/app/shared/timeparse"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "ProgramService"

// ProgramService manages the event schedule.
type ProgramService struct {
	repo    programdb.Repository
	times   *timeparse.Parser
	logger  *slog.Logger
	metrics metrics.OperationMetrics
	tracer  trace.Tracer
	db      *bun.DB
}

// NewProgramService creates a new ProgramService.
func NewProgramService(
	repo programdb.Repository,
	times *timeparse.Parser,
	logger *slog.Logger,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *ProgramService {
	if times == nil {
		times = timeparse.New(time.UTC, nil)
	}
	return &ProgramService{
		repo:    repo,
		times:   times,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		db:      db,
	}
}

func (s *ProgramService) ListPrograms(ctx context.Context) ([]programdb.Program, error) {
	result, err := withTelemetry(s, ctx, "ListPrograms", "all", func(ctx context.Context) (results.OperationResult[[]programdb.Program, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]programdb.Program, error], error) {
			programs, err := s.repo.List(ctx, db)
			if err != nil {
				return results.OperationResult[[]programdb.Program, error]{}, err
			}
			if programs == nil {
				programs = []programdb.Program{}
			}
			return results.SuccessResult[[]programdb.Program, error](programs), nil
		})
	})
	return unwrap(result, err)
}

func (s *ProgramService) GetProgram(ctx context.Context, id int64) (*programdb.Program, error) {
	result, err := withTelemetry(s, ctx, "GetProgram", strconv.FormatInt(id, 10), func(ctx context.Context) (results.OperationResult[*programdb.Program, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*programdb.Program, error], error) {
			p, err := s.repo.GetByID(ctx, db, id)
			if err != nil {
				return notFoundOr[*programdb.Program](err)
			}
			return results.SuccessResult[*programdb.Program, error](p), nil
		})
	})
	return unwrap(result, err)
}

func (s *ProgramService) CreateProgram(ctx context.Context, in ProgramInput) (*programdb.Program, error) {
	result, err := withTelemetry(s, ctx, "CreateProgram", strings.TrimSpace(in.Title), func(ctx context.Context) (results.OperationResult[*programdb.Program, error], error) {
		p := &programdb.Program{}
		if failure := s.applyInput(p, in); failure != nil {
			return results.FailureResult[*programdb.Program, error](failure), nil
		}
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*programdb.Program, error], error) {
			max, err := s.repo.MaxSequence(ctx, db)
			if err != nil {
				return results.OperationResult[*programdb.Program, error]{}, err
			}
			p.Sequence = max + 1
			if err := s.repo.Create(ctx, db, p); err != nil {
				return results.OperationResult[*programdb.Program, error]{}, err
			}
			return results.SuccessResult[*programdb.Program, error](p), nil
		})
	})
	return unwrap(result, err)
}

func (s *ProgramService) UpdateProgram(ctx context.Context, id int64, in ProgramInput) (*programdb.Program, error) {
	result, err := withTelemetry(s, ctx, "UpdateProgram", strconv.FormatInt(id, 10), func(ctx context.Context) (results.OperationResult[*programdb.Program, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*programdb.Program, error], error) {
			p, err := s.repo.GetByID(ctx, db, id)
			if err != nil {
				return notFoundOr[*programdb.Program](err)
			}
			if failure := s.applyInput(p, in); failure != nil {
				return results.FailureResult[*programdb.Program, error](failure), nil
			}
			if err := s.repo.Update(ctx, db, p); err != nil {
				return notFoundOr[*programdb.Program](err)
			}
			return results.SuccessResult[*programdb.Program, error](p), nil
		})
	})
	return unwrap(result, err)
}

func (s *ProgramService) DeleteProgram(ctx context.Context, id int64) error {
	result, err := withTelemetry(s, ctx, "DeleteProgram", strconv.FormatInt(id, 10), func(ctx context.Context) (results.OperationResult[bool, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[bool, error], error) {
			if err := s.repo.Delete(ctx, db, id); err != nil {
				return notFoundOr[bool](err)
			}
			return results.SuccessResult[bool, error](true), nil
		})
	})
	_, err = unwrap(result, err)
	return err
}

func (s *ProgramService) Reorder(ctx context.Context, updates []SequenceUpdate) ([]programdb.Program, error) {
	result, err := withTelemetry(s, ctx, "Reorder", strconv.Itoa(len(updates)), func(ctx context.Context) (results.OperationResult[[]programdb.Program, error], error) {
		ids, ok := uniqueIDs(updates)
		if !ok {
			return results.FailureResult[[]programdb.Program, error](ErrInvalidReorder), nil
		}
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]programdb.Program, error], error) {
			// Check every id before writing so an unknown id leaves the order untouched.
			found, err := s.repo.CountExisting(ctx, db, ids)
			if err != nil {
				return results.OperationResult[[]programdb.Program, error]{}, err
			}
			if found != len(ids) {
				return results.FailureResult[[]programdb.Program, error](ErrProgramNotFound), nil
			}

			for _, u := range updates {
				// A row deleted since the check fails the whole transaction.
				if err := s.repo.SetSequence(ctx, db, u.ID, u.Sequence); err != nil {
					return results.OperationResult[[]programdb.Program, error]{}, err
				}
			}

			programs, err := s.repo.List(ctx, db)
			if err != nil {
				return results.OperationResult[[]programdb.Program, error]{}, err
			}
			return results.SuccessResult[[]programdb.Program, error](programs), nil
		})
	})
	return unwrap(result, err)
}

func (s *ProgramService) applyInput(p *programdb.Program, in ProgramInput) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return ErrInvalidProgram
	}
	start, err := s.times.ParseOptional(in.StartTime)
	if err != nil {
		return ErrInvalidTime
	}
	end, err := s.times.ParseOptional(in.EndTime)
	if err != nil {
		return ErrInvalidTime
	}
	if start != nil && end != nil && end.Before(*start) {
		return ErrInvalidProgram
	}

	p.Title = title
	p.Description = strings.TrimSpace(in.Description)
	p.Type = strings.TrimSpace(in.Type)
	p.StartTime = start
	p.EndTime = end
	p.Location = optional(in.Location)
	p.SpeakerName = optional(in.SpeakerName)
	p.SpeakerTitle = optional(in.SpeakerTitle)
	p.SpeakerImageURL = optional(in.SpeakerImageURL)
	p.ExternalLink = optional(in.ExternalLink)
	return nil
}

func uniqueIDs(updates []SequenceUpdate) ([]int64, bool) {
	if len(updates) == 0 {
		return nil, false
	}
	seen := make(map[int64]struct{}, len(updates))
	ids := make([]int64, 0, len(updates))
	for _, u := range updates {
		if u.ID <= 0 {
			return nil, false
		}
		if _, dup := seen[u.ID]; dup {
			return nil, false
		}
		seen[u.ID] = struct{}{}
		ids = append(ids, u.ID)
	}
	return ids, true
}

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
	if errors.Is(err, programdb.ErrNotFound) {
		return results.FailureResult[S, error](ErrProgramNotFound), nil
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

type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *ProgramService,
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
	s *ProgramService,
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

var _ Service = (*ProgramService)(nil)
