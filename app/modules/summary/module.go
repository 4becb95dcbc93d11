package summary

import (
	"context"

	auctiondb "github.com/Black-And-White-Club/gala-night/app/modules/auction/infrastructure/repositories"
	registrationdb "github.com/Black-And-White-Club/gala-night/app/modules/registration/infrastructure/repositories"
	summaryservice "github.com/Black-And-White-Club/gala-night/app/modules/summary/application"
	summaryhandlers "github.com/Black-And-White-Club/gala-night/app/modules/summary/infrastructure/handlers"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module exposes event-wide totals.
type Module struct {
	service summaryservice.Service
}

// NewModule creates the summary module and registers its route.
func NewModule(ctx context.Context, obs *observability.Observability, db *bun.DB, httpRouter chi.Router) (*Module, error) {
	obs.Logger.InfoContext(ctx, "Initializing summary module")

	service := summaryservice.NewSummaryService(
		registrationdb.NewRepository(db),
		auctiondb.NewRepository(db),
		obs.Logger,
		obs.Metrics,
		obs.Tracer,
	)
	if httpRouter != nil {
		httpRouter.Get("/api/stats/total-raised", summaryhandlers.NewSummaryHandlers(service, obs.Logger).HandleTotalRaised)
	}

	obs.Logger.InfoContext(ctx, "Summary module initialized")
	return &Module{service: service}, nil
}

// GetService returns the summary service.
func (m *Module) GetService() summaryservice.Service {
	return m.service
}
