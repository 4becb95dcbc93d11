package authservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	authdomain "github.com/Black-And-White-Club/gala-night/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/gala-night/app/modules/auth/infrastructure/jwt"
	authdb "github.com/Black-And-White-Club/gala-night/app/modules/auth/infrastructure/repositories"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability/attr"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability/metrics"
	"github.com/Black-And-White-Club/gala-night/app/shared/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"
)

const (
	serviceName       = "AuthService"
	MinPasswordLength = 8
	DefaultSessionTTL = 12 * time.Hour
)

// Config holds the configuration for the auth service.
type Config struct {
	StaticEmail        string
	StaticPasswordHash string
	// FallbackPassword is hashed and used when StaticPasswordHash is empty.
	FallbackPassword string
	SessionTTL       time.Duration
	BcryptCost       int
}

// service implements the Service interface.
type service struct {
	repo        authdb.Repository
	jwtProvider authjwt.Provider
	config      Config
	staticHash  []byte
	logger      *slog.Logger
	metrics     metrics.OperationMetrics
	tracer      trace.Tracer
	db          *bun.DB
}

// NewService creates a new auth service.
func NewService(
	repo authdb.Repository,
	jwtProvider authjwt.Provider,
	config Config,
	logger *slog.Logger,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) (Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if config.SessionTTL <= 0 {
		config.SessionTTL = DefaultSessionTTL
	}
	if config.BcryptCost == 0 {
		config.BcryptCost = bcrypt.DefaultCost
	}
	config.StaticEmail = authdomain.NormalizeEmail(config.StaticEmail)

	staticHash := []byte(config.StaticPasswordHash)
	if len(staticHash) == 0 && config.FallbackPassword != "" {
		logger.Warn("No admin password hash configured, static admin uses the fallback password",
			attr.String("email", config.StaticEmail),
		)
		hash, err := bcrypt.GenerateFromPassword([]byte(config.FallbackPassword), config.BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash fallback password: %w", err)
		}
		staticHash = hash
	}

	return &service{
		repo:        repo,
		jwtProvider: jwtProvider,
		config:      config,
		staticHash:  staticHash,
		logger:      logger,
		metrics:     metrics,
		tracer:      tracer,
		db:          db,
	}, nil
}

// Login checks the credentials against the static admin and then the admins table.
func (s *service) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	email = authdomain.NormalizeEmail(email)

	result, err := withTelemetry(s, ctx, "Login", email, func(ctx context.Context) (results.OperationResult[*LoginResponse, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*LoginResponse, error], error) {
			return s.loginLogic(ctx, db, email, password)
		})
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

func (s *service) loginLogic(ctx context.Context, db bun.IDB, email, password string) (results.OperationResult[*LoginResponse, error], error) {
	claims, err := s.authenticate(ctx, db, email, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return results.FailureResult[*LoginResponse, error](err), nil
		}
		return results.OperationResult[*LoginResponse, error]{}, err
	}

	token, err := s.jwtProvider.GenerateToken(claims, s.config.SessionTTL)
	if err != nil {
		return results.OperationResult[*LoginResponse, error]{}, fmt.Errorf("failed to generate session token: %w", err)
	}
	claims.IssuedAt = time.Now()
	claims.ExpiresAt = claims.IssuedAt.Add(s.config.SessionTTL)

	return results.SuccessResult[*LoginResponse, error](&LoginResponse{Token: token, Claims: claims}), nil
}

func (s *service) authenticate(ctx context.Context, db bun.IDB, email, password string) (*authdomain.Claims, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	if email == s.config.StaticEmail && len(s.staticHash) > 0 {
		if bcrypt.CompareHashAndPassword(s.staticHash, []byte(password)) == nil {
			return &authdomain.Claims{Email: email, Source: authdomain.SourceStatic}, nil
		}
		return nil, ErrInvalidCredentials
	}

	admin, err := s.repo.GetByEmail(ctx, db, email)
	if err != nil {
		if errors.Is(err, authdb.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &authdomain.Claims{AdminID: admin.ID, Email: admin.Email, Source: authdomain.SourceAccount}, nil
}

// ValidateSession verifies a session token. Account sessions are rejected once the account is deleted.
func (s *service) ValidateSession(ctx context.Context, token string) (*authdomain.Claims, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	claims, err := s.jwtProvider.ValidateToken(token)
	if err != nil {
		if errors.Is(err, authjwt.ErrExpiredToken) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims.Source == authdomain.SourceAccount {
		admin, err := s.repo.GetByEmail(ctx, nil, claims.Email)
		if err != nil {
			if errors.Is(err, authdb.ErrNotFound) {
				return nil, ErrInvalidToken
			}
			return nil, fmt.Errorf("failed to look up admin: %w", err)
		}
		if admin.ID != claims.AdminID {
			return nil, ErrInvalidToken
		}
	}
	return claims, nil
}

// CreateAdmin hashes the password and stores a new admin.
func (s *service) CreateAdmin(ctx context.Context, email, password string) (*AdminInfo, error) {
	email = authdomain.NormalizeEmail(email)

	result, err := withTelemetry(s, ctx, "CreateAdmin", email, func(ctx context.Context) (results.OperationResult[*AdminInfo, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*AdminInfo, error], error) {
			return s.createAdminLogic(ctx, db, email, password)
		})
	})
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, *result.Failure
	}
	return *result.Success, nil
}

func (s *service) createAdminLogic(ctx context.Context, db bun.IDB, email, password string) (results.OperationResult[*AdminInfo, error], error) {
	if len(password) < MinPasswordLength {
		return results.FailureResult[*AdminInfo, error](ErrWeakPassword), nil
	}
	if email == s.config.StaticEmail {
		return results.FailureResult[*AdminInfo, error](ErrDuplicateEmail), nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.config.BcryptCost)
	if err != nil {
		return results.OperationResult[*AdminInfo, error]{}, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &authdb.Admin{Email: email, PasswordHash: string(hash)}
	if err := s.repo.Create(ctx, db, admin); err != nil {
		if errors.Is(err, authdb.ErrDuplicateEmail) {
			return results.FailureResult[*AdminInfo, error](ErrDuplicateEmail), nil
		}
		return results.OperationResult[*AdminInfo, error]{}, fmt.Errorf("failed to create admin: %w", err)
	}

	return results.SuccessResult[*AdminInfo, error](toAdminInfo(admin)), nil
}

// ListAdmins returns the static admin followed by stored accounts.
func (s *service) ListAdmins(ctx context.Context) ([]AdminInfo, error) {
	result, err := withTelemetry(s, ctx, "ListAdmins", "all", func(ctx context.Context) (results.OperationResult[[]AdminInfo, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]AdminInfo, error], error) {
			admins, err := s.repo.List(ctx, db)
			if err != nil {
				return results.OperationResult[[]AdminInfo, error]{}, err
			}
			out := make([]AdminInfo, 0, len(admins)+1)
			if s.config.StaticEmail != "" {
				out = append(out, AdminInfo{Email: s.config.StaticEmail, Source: authdomain.SourceStatic})
			}
			for i := range admins {
				out = append(out, *toAdminInfo(&admins[i]))
			}
			return results.SuccessResult[[]AdminInfo, error](out), nil
		})
	})
	if err != nil {
		return nil, err
	}
	return *result.Success, nil
}

// DeleteAdmin removes an admin account.
func (s *service) DeleteAdmin(ctx context.Context, requester *authdomain.Claims, id int64) error {
	result, err := withTelemetry(s, ctx, "DeleteAdmin", strconv.FormatInt(id, 10), func(ctx context.Context) (results.OperationResult[bool, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[bool, error], error) {
			if requester != nil && requester.Source == authdomain.SourceAccount && requester.AdminID == id {
				return results.FailureResult[bool, error](ErrCannotDeleteSelf), nil
			}
			if err := s.repo.Delete(ctx, db, id); err != nil {
				if errors.Is(err, authdb.ErrNotFound) {
					return results.FailureResult[bool, error](ErrAdminNotFound), nil
				}
				return results.OperationResult[bool, error]{}, err
			}
			return results.SuccessResult[bool, error](true), nil
		})
	})
	if err != nil {
		return err
	}
	if result.IsFailure() {
		return *result.Failure
	}
	return nil
}

func toAdminInfo(a *authdb.Admin) *AdminInfo {
	info := &AdminInfo{ID: a.ID, Email: a.Email, Source: authdomain.SourceAccount}
	if !a.CreatedAt.IsZero() {
		created := a.CreatedAt
		info.CreatedAt = &created
	}
	return info
}

// -----------------------------------------------------------------------------
// Generic Helpers (Defined as functions because methods cannot have type params)
// -----------------------------------------------------------------------------

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *service,
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
	s *service,
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
