package auction

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	auctionservice "github.com/Black-And-White-Club/gala-night/app/modules/auction/application"
	auctionhandlers "github.com/Black-And-White-Club/gala-night/app/modules/auction/infrastructure/handlers"
	auctionqueue "github.com/Black-And-White-Club/gala-night/app/modules/auction/infrastructure/queue"
	auctiondb "github.com/Black-And-White-Club/gala-night/app/modules/auction/infrastructure/repositories"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability"
	"github.com/Black-And-White-Club/gala-night/app/shared/timeparse"
	"github.com/Black-And-White-Club/gala-night/config"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the auction module.
type Module struct {
	service auctionservice.Service
	repo    auctiondb.Repository
	queue   *auctionqueue.Service
	logger  *slog.Logger
}

// NewModule creates the auction module and registers its routes. When the queue is
// enabled a River client is created; call Run to start it.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	db *bun.DB,
	httpRouter chi.Router,
	requireAdmin func(http.Handler) http.Handler,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "Initializing auction module")

	repo := auctiondb.NewRepository(db)
	times := timeparse.New(cfg.Location(), nil)

	var scheduler auctionservice.CloseScheduler = auctionservice.NoopScheduler{}
	var queue *auctionqueue.Service
	if cfg.Queue.Enabled {
		q, err := auctionqueue.NewService(ctx, cfg.Postgres.DSN, repo, logger, obs.Metrics)
		if err != nil {
			return nil, fmt.Errorf("failed to create auction queue: %w", err)
		}
		queue = q
		scheduler = q
	}

	service := auctionservice.NewAuctionService(repo, times, nil, scheduler, logger, obs.Metrics, obs.Tracer, db)
	handlers := auctionhandlers.NewAuctionHandlers(service, times, logger, obs.Tracer)

	if httpRouter != nil {
		httpRouter.Route("/api/auction", func(r chi.Router) {
			r.Get("/items", handlers.HandleListItems)
			r.Get("/items/{id}", handlers.HandleGetItem)
			r.Get("/items/{id}/bids", handlers.HandleListBids)
			r.Post("/items/{id}/bids", handlers.HandlePlaceBid)
			r.Get("/items/{id}/chart.png", handlers.HandleBidChart)
			r.Get("/leaderboard", handlers.HandleLeaderboard)
		})
		httpRouter.Route("/api/admin/auction", func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/items", handlers.HandleCreateItem)
			r.Put("/items/{id}", handlers.HandleUpdateItem)
			r.Delete("/items/{id}", handlers.HandleDeleteItem)
			r.Patch("/items/{id}/active", handlers.HandleSetActive)
			r.Post("/items/{id}/bids", handlers.HandleAdminPlaceBid)
			r.Get("/bids", handlers.HandleListAllBids)
		})
	}

	logger.InfoContext(ctx, "Auction module initialized")

	return &Module{service: service, repo: repo, queue: queue, logger: logger}, nil
}

// Run starts the close queue, if any, and blocks until ctx is cancelled.
func (m *Module) Run(ctx context.Context) error {
	if m.queue == nil {
		<-ctx.Done()
		return nil
	}
	if err := m.queue.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

// Close stops the close queue.
func (m *Module) Close(ctx context.Context) error {
	if m.queue == nil {
		return nil
	}
	return m.queue.Stop(ctx)
}

// GetService returns the auction service.
func (m *Module) GetService() auctionservice.Service {
	return m.service
}

// Repository exposes the auction repository to the summary module.
func (m *Module) Repository() auctiondb.Repository {
	return m.repo
}
