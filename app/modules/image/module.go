package image

import (
	"context"
	"log/slog"
	"net/http"

	imageservice "github.com/Black-And-White-Club/gala-night/app/modules/image/application"
	imagehandlers "github.com/Black-And-White-Club/gala-night/app/modules/image/infrastructure/handlers"
	imagedb "github.com/Black-And-White-Club/gala-night/app/modules/image/infrastructure/repositories"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the image resource module.
type Module struct {
	service imageservice.Service
	logger  *slog.Logger
}

// NewModule creates the image module and registers its routes.
func NewModule(
	ctx context.Context,
	obs *observability.Observability,
	db *bun.DB,
	httpRouter chi.Router,
	requireAdmin func(http.Handler) http.Handler,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "Initializing image module")

	repo := imagedb.NewRepository(db)
	service := imageservice.NewImageService(repo, logger, obs.Metrics, obs.Tracer)
	handlers := imagehandlers.NewImageHandlers(service, logger, obs.Tracer)

	if httpRouter != nil {
		httpRouter.Get("/api/images", handlers.HandleList)
		httpRouter.Get("/api/images/{label}", handlers.HandleGet)
		httpRouter.Get("/api/images/{label}/view", handlers.HandleView)
		httpRouter.Route("/api/admin/images", func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/", handlers.HandleCreate)
			r.Put("/{id}", handlers.HandleUpdate)
			r.Delete("/{id}", handlers.HandleDelete)
		})
	}

	logger.InfoContext(ctx, "Image module initialized")

	return &Module{service: service, logger: logger}, nil
}

// GetService returns the image service.
func (m *Module) GetService() imageservice.Service {
	return m.service
}
