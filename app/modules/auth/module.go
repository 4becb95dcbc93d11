package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	authservice "github.com/Black-And-White-Club/gala-night/app/modules/auth/application"
	authhandlers "github.com/Black-And-White-Club/gala-night/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/Black-And-White-Club/gala-night/app/modules/auth/infrastructure/jwt"
	authdb "github.com/Black-And-White-Club/gala-night/app/modules/auth/infrastructure/repositories"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability"
	"github.com/Black-And-White-Club/gala-night/config"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Login attempts per second and burst allowed per client IP.
const (
	loginRate  = 5
	loginBurst = 10
)

// Module represents the admin auth module.
type Module struct {
	service  authservice.Service
	handlers authhandlers.Handlers
	logger   *slog.Logger
}

// NewModule creates the auth module and registers its routes.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	db *bun.DB,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "Initializing auth module")

	// 1. Dependencies
	repo := authdb.NewRepository(db)
	jwtProvider := authjwt.NewProvider(cfg.JWT.Secret, cfg.JWT.Issuer)

	// 2. Service
	service, err := authservice.NewService(
		repo,
		jwtProvider,
		authservice.Config{
			StaticEmail:        cfg.Admin.Email,
			StaticPasswordHash: cfg.Admin.PasswordHash,
			FallbackPassword:   config.DefaultAdminPassword,
			SessionTTL:         cfg.JWT.SessionTTL,
		},
		logger,
		obs.Metrics,
		obs.Tracer,
		db,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	// 3. Handlers
	handlers := authhandlers.NewAuthHandlers(service, logger, obs.Tracer, cfg.UseSecureCookies())

	// 4. Routes
	if httpRouter != nil {
		limiter := authhandlers.NewLoginLimiter(loginRate, loginBurst, logger)
		httpRouter.Route("/api/auth", func(r chi.Router) {
			r.With(limiter.Middleware).Post("/login", handlers.HandleLogin)
			r.Post("/logout", handlers.HandleLogout)
			r.Get("/session", handlers.HandleSession)
		})
		httpRouter.Route("/api/admin/accounts", func(r chi.Router) {
			r.Use(handlers.RequireAdmin)
			r.Get("/", handlers.HandleListAdmins)
			r.Post("/", handlers.HandleCreateAdmin)
			r.Delete("/{id}", handlers.HandleDeleteAdmin)
		})
	}

	logger.InfoContext(ctx, "Auth module initialized")

	return &Module{
		service:  service,
		handlers: handlers,
		logger:   logger,
	}, nil
}

// RequireAdmin returns the session middleware guarding admin routes.
func (m *Module) RequireAdmin() func(http.Handler) http.Handler {
	return m.handlers.RequireAdmin
}

// GetService returns the auth service for use by other modules.
func (m *Module) GetService() authservice.Service {
	return m.service
}
