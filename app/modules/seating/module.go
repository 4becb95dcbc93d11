package seating

import (
	"context"
	"log/slog"
	"net/http"

	registrationdb "github.com/Black-And-White-Club/gala-night/app/modules/registration/infrastructure/repositories"
	seatingservice "github.com/Black-And-White-Club/gala-night/app/modules/seating/application"
	seatinghandlers "github.com/Black-And-White-Club/gala-night/app/modules/seating/infrastructure/handlers"
	seatingdb "github.com/Black-And-White-Club/gala-night/app/modules/seating/infrastructure/repositories"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the seating module.
type Module struct {
	service seatingservice.Service
	repo    seatingdb.Repository
	logger  *slog.Logger
}

// NewModule creates the seating module and registers its routes.
func NewModule(
	ctx context.Context,
	obs *observability.Observability,
	db *bun.DB,
	regRepo registrationdb.Repository,
	httpRouter chi.Router,
	requireAdmin func(http.Handler) http.Handler,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "Initializing seating module")

	repo := seatingdb.NewRepository(db)
	service := seatingservice.NewSeatingService(repo, regRepo, logger, obs.Metrics, obs.Tracer, db)
	handlers := seatinghandlers.NewSeatingHandlers(service, logger, obs.Tracer)

	if httpRouter != nil {
		httpRouter.Get("/api/seating", handlers.HandleChart)
		httpRouter.Get("/api/seating/available", handlers.HandleAvailable)
		httpRouter.Route("/api/admin/seating", func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/tables", handlers.HandleAddTable)
			r.Delete("/tables/{tableNumber}", handlers.HandleDeleteTable)
			r.Delete("/seats/{id}", handlers.HandleDeleteSeat)
			r.Put("/seats/{id}/assignment", handlers.HandleAssign)
			r.Delete("/seats/{id}/assignment", handlers.HandleUnassign)
		})
	}

	logger.InfoContext(ctx, "Seating module initialized")

	return &Module{service: service, repo: repo, logger: logger}, nil
}

// GetService returns the seating service.
func (m *Module) GetService() seatingservice.Service {
	return m.service
}

// Repository exposes the seat repository to the spreadsheet module.
func (m *Module) Repository() seatingdb.Repository {
	return m.repo
}
