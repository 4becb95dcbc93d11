package program

import (
	"context"
	"log/slog"
	"net/http"

	programservice "github.com/Black-And-White-Club/gala-night/app/modules/program/application"
	programhandlers "github.com/Black-And-White-Club/gala-night/app/modules/program/infrastructure/handlers"
	programdb "github.com/Black-And-White-Club/gala-night/app/modules/program/infrastructure/repositories"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability"
	"github.com/Black-And-White-Club/gala-night/app/shared/timeparse"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the program schedule module.
type Module struct {
	service programservice.Service
	logger  *slog.Logger
}

// NewModule creates the program module and registers its routes.
func NewModule(
	ctx context.Context,
	obs *observability.Observability,
	db *bun.DB,
	times *timeparse.Parser,
	httpRouter chi.Router,
	requireAdmin func(http.Handler) http.Handler,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "Initializing program module")

	repo := programdb.NewRepository(db)
	service := programservice.NewProgramService(repo, times, logger, obs.Metrics, obs.Tracer, db)
	handlers := programhandlers.NewProgramHandlers(service, logger, obs.Tracer)

	if httpRouter != nil {
		httpRouter.Get("/api/programs", handlers.HandleList)
		httpRouter.Get("/api/programs/{id}", handlers.HandleGet)
		httpRouter.Route("/api/admin/programs", func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/", handlers.HandleCreate)
			r.Patch("/sequence", handlers.HandleReorder)
			r.Put("/{id}", handlers.HandleUpdate)
			r.Delete("/{id}", handlers.HandleDelete)
		})
	}

	logger.InfoContext(ctx, "Program module initialized")

	return &Module{service: service, logger: logger}, nil
}

// GetService returns the program service.
func (m *Module) GetService() programservice.Service {
	return m.service
}
