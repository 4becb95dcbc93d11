package registration

import (
	"context"
	"log/slog"
	"net/http"

	registrationservice "github.com/Black-And-White-Club/gala-night/app/modules/registration/application"
	registrationhandlers "github.com/Black-And-White-Club/gala-night/app/modules/registration/infrastructure/handlers"
	registrationdb "github.com/Black-And-White-Club/gala-night/app/modules/registration/infrastructure/repositories"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the registration module.
type Module struct {
	service registrationservice.Service
	repo    registrationdb.Repository
	logger  *slog.Logger
}

// NewModule creates the registration module and registers its routes.
func NewModule(
	ctx context.Context,
	obs *observability.Observability,
	db *bun.DB,
	httpRouter chi.Router,
	requireAdmin func(http.Handler) http.Handler,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "Initializing registration module")

	repo := registrationdb.NewRepository(db)
	service := registrationservice.NewRegistrationService(repo, logger, obs.Metrics, obs.Tracer, db)
	handlers := registrationhandlers.NewRegistrationHandlers(service, logger, obs.Tracer)

	if httpRouter != nil {
		httpRouter.Post("/api/registrations", handlers.HandleRegister)
		httpRouter.Route("/api/admin/registrations", func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/", handlers.HandleList)
			r.Get("/by-table", handlers.HandleListByTable)
			r.Get("/{id}", handlers.HandleGet)
			r.Put("/{id}", handlers.HandleUpdate)
			r.Patch("/{id}/payment", handlers.HandleUpdatePayment)
		})
	}

	logger.InfoContext(ctx, "Registration module initialized")

	return &Module{
		service: service,
		repo:    repo,
		logger:  logger,
	}, nil
}

// GetService returns the registration service.
func (m *Module) GetService() registrationservice.Service {
	return m.service
}

// Repository exposes the registration repository to modules that join against it.
func (m *Module) Repository() registrationdb.Repository {
	return m.repo
}
