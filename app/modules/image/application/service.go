package imageservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	imagedb "github.com/Black-And-White-Club/gala-night/app/modules/image/infrastructure/repositories"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability/attr"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability/metrics"
	"github.com/Black-And-White-Club/gala-night/app/shared/results"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "ImageService"

// ImageService manages labelled image resources. Every operation is a single
// statement, so the repository runs on its own connection without a transaction.
type ImageService struct {
	repo    imagedb.Repository
	logger  *slog.Logger
	metrics metrics.OperationMetrics
	tracer  trace.Tracer
}

// NewImageService creates a new ImageService.
func NewImageService(repo imagedb.Repository, logger *slog.Logger, metrics metrics.OperationMetrics, tracer trace.Tracer) *ImageService {
	return &ImageService{repo: repo, logger: logger, metrics: metrics, tracer: tracer}
}

func (s *ImageService) ListImages(ctx context.Context) ([]imagedb.Image, error) {
	result, err := withTelemetry(s, ctx, "ListImages", "all", func(ctx context.Context) (results.OperationResult[[]imagedb.Image, error], error) {
		images, err := s.repo.List(ctx, nil)
		if err != nil {
			return results.OperationResult[[]imagedb.Image, error]{}, err
		}
		if images == nil {
			images = []imagedb.Image{}
		}
		return results.SuccessResult[[]imagedb.Image, error](images), nil
	})
	return unwrap(result, err)
}

func (s *ImageService) GetImage(ctx context.Context, label string) (*imagedb.Image, error) {
	label = normalizeLabel(label)
	result, err := withTelemetry(s, ctx, "GetImage", label, func(ctx context.Context) (results.OperationResult[*imagedb.Image, error], error) {
		img, err := s.repo.GetByLabel(ctx, nil, label)
		if err != nil {
			return mapRepoErr[*imagedb.Image](err)
		}
		return results.SuccessResult[*imagedb.Image, error](img), nil
	})
	return unwrap(result, err)
}

func (s *ImageService) CreateImage(ctx context.Context, in ImageInput) (*imagedb.Image, error) {
	result, err := withTelemetry(s, ctx, "CreateImage", normalizeLabel(in.Label), func(ctx context.Context) (results.OperationResult[*imagedb.Image, error], error) {
		img := &imagedb.Image{}
		if !apply(img, in) {
			return results.FailureResult[*imagedb.Image, error](ErrInvalidImage), nil
		}
		if err := s.repo.Create(ctx, nil, img); err != nil {
			return mapRepoErr[*imagedb.Image](err)
		}
		return results.SuccessResult[*imagedb.Image, error](img), nil
	})
	return unwrap(result, err)
}

func (s *ImageService) UpdateImage(ctx context.Context, id int64, in ImageInput) (*imagedb.Image, error) {
	result, err := withTelemetry(s, ctx, "UpdateImage", strconv.FormatInt(id, 10), func(ctx context.Context) (results.OperationResult[*imagedb.Image, error], error) {
		img := &imagedb.Image{ID: id}
		if !apply(img, in) {
			return results.FailureResult[*imagedb.Image, error](ErrInvalidImage), nil
		}
		if err := s.repo.Update(ctx, nil, img); err != nil {
			return mapRepoErr[*imagedb.Image](err)
		}
		// reload for created_at
		stored, err := s.repo.GetByID(ctx, nil, id)
		if err != nil {
			return mapRepoErr[*imagedb.Image](err)
		}
		return results.SuccessResult[*imagedb.Image, error](stored), nil
	})
	return unwrap(result, err)
}

func (s *ImageService) DeleteImage(ctx context.Context, id int64) error {
	result, err := withTelemetry(s, ctx, "DeleteImage", strconv.FormatInt(id, 10), func(ctx context.Context) (results.OperationResult[bool, error], error) {
		if err := s.repo.Delete(ctx, nil, id); err != nil {
			return mapRepoErr[bool](err)
		}
		return results.SuccessResult[bool, error](true), nil
	})
	_, err = unwrap(result, err)
	return err
}

func apply(img *imagedb.Image, in ImageInput) bool {
	label := normalizeLabel(in.Label)
	fileID := strings.TrimSpace(in.FileID)
	if label == "" || fileID == "" {
		return false
	}
	img.Label = label
	img.FileID = fileID
	img.Alt = strings.TrimSpace(in.Alt)
	img.Type = strings.TrimSpace(in.Type)
	return true
}

func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

func mapRepoErr[S any](err error) (results.OperationResult[S, error], error) {
	switch {
	case errors.Is(err, imagedb.ErrNotFound):
		return results.FailureResult[S, error](ErrImageNotFound), nil
	case errors.Is(err, imagedb.ErrDuplicateLabel):
		return results.FailureResult[S, error](ErrDuplicateLabel), nil
	default:
		return results.OperationResult[S, error]{}, err
	}
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
	s *ImageService,
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

var _ Service = (*ImageService)(nil)
