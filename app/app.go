package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Black-And-White-Club/gala-night/app/modules/auction"
	"github.com/Black-And-White-Club/gala-night/app/modules/auth"
	authhandlers "github.com/Black-And-White-Club/gala-night/app/modules/auth/infrastructure/handlers"
	"github.com/Black-And-White-Club/gala-night/app/modules/image"
	"github.com/Black-And-White-Club/gala-night/app/modules/program"
	"github.com/Black-And-White-Club/gala-night/app/modules/registration"
	"github.com/Black-And-White-Club/gala-night/app/modules/seating"
	"github.com/Black-And-White-Club/gala-night/app/modules/sheets"
	"github.com/Black-And-White-Club/gala-night/app/modules/summary"
	"github.com/Black-And-White-Club/gala-night/app/shared/httpjson"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability/attr"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability/metrics"
	"github.com/Black-And-White-Club/gala-night/app/shared/timeparse"
	"github.com/Black-And-White-Club/gala-night/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"golang.org/x/sync/errgroup"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// App holds the application components.
type App struct {
	Config        *config.Config
	Observability *observability.Observability
	DB            *bun.DB
	Router        chi.Router
	Modules       *Modules
}

// Modules holds every domain module, in initialization order.
type Modules struct {
	Auth         *auth.Module
	Registration *registration.Module
	Seating      *seating.Module
	Auction      *auction.Module
	Program      *program.Module
	Image        *image.Module
	Sheets       *sheets.Module
	Summary      *summary.Module
}

// NewDB opens the Postgres database through bun's pgdriver.
func NewDB(dsn string) *bun.DB {
	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(pgdb, pgdialect.New())
}

// New builds the router and every module on an already opened database.
func New(ctx context.Context, cfg *config.Config, obs *observability.Observability, db *bun.DB) (*App, error) {
	app := &App{
		Config:        cfg,
		Observability: obs,
		DB:            db,
	}

	router, err := app.newRouter()
	if err != nil {
		return nil, err
	}
	app.Router = router

	if err := app.initializeModules(ctx); err != nil {
		return nil, err
	}

	obs.Logger.InfoContext(ctx, "Application initialized",
		attr.String("event", cfg.Event.Name),
		attr.String("timezone", cfg.Event.Timezone),
		attr.Bool("queue_enabled", cfg.Queue.Enabled),
		attr.Bool("sheets_enabled", cfg.Sheets.SheetsEnabled()),
	)
	return app, nil
}

func (app *App) newRouter() (chi.Router, error) {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(authhandlers.CORSMiddleware(app.Config.HTTP.AllowedOrigins))

	if reg := app.Observability.Registry; reg != nil {
		mw, err := metrics.HTTPMiddleware(reg)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP metrics: %w", err)
		}
		r.Use(mw)
		r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}

	r.Get("/healthz", app.handleHealth)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httpjson.Fail(w, http.StatusNotFound, httpjson.CodeNotFound, "route not found")
	})
	return r, nil
}

func (app *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := app.DB.PingContext(ctx); err != nil {
		app.Observability.Logger.WarnContext(ctx, "Health check failed", attr.Error(err))
		httpjson.Fail(w, http.StatusServiceUnavailable, httpjson.CodeServiceUnavailable, "database unavailable")
		return
	}
	httpjson.OK(w, http.StatusOK, map[string]string{"database": "ok"})
}

func (app *App) initializeModules(ctx context.Context) error {
	obs, cfg, db, router := app.Observability, app.Config, app.DB, app.Router
	m := &Modules{}

	var err error
	if m.Auth, err = auth.NewModule(ctx, cfg, obs, db, router); err != nil {
		return fmt.Errorf("failed to initialize auth module: %w", err)
	}
	requireAdmin := m.Auth.RequireAdmin()

	if m.Registration, err = registration.NewModule(ctx, obs, db, router, requireAdmin); err != nil {
		return fmt.Errorf("failed to initialize registration module: %w", err)
	}
	if m.Seating, err = seating.NewModule(ctx, obs, db, m.Registration.Repository(), router, requireAdmin); err != nil {
		return fmt.Errorf("failed to initialize seating module: %w", err)
	}
	if m.Auction, err = auction.NewModule(ctx, cfg, obs, db, router, requireAdmin); err != nil {
		return fmt.Errorf("failed to initialize auction module: %w", err)
	}
	times := timeparse.New(cfg.Location(), nil)
	if m.Program, err = program.NewModule(ctx, obs, db, times, router, requireAdmin); err != nil {
		return fmt.Errorf("failed to initialize program module: %w", err)
	}
	if m.Image, err = image.NewModule(ctx, obs, db, router, requireAdmin); err != nil {
		return fmt.Errorf("failed to initialize image module: %w", err)
	}
	if m.Sheets, err = sheets.NewModule(ctx, cfg, obs, db, router, requireAdmin); err != nil {
		return fmt.Errorf("failed to initialize sheets module: %w", err)
	}
	if m.Summary, err = summary.NewModule(ctx, obs, db, router); err != nil {
		return fmt.Errorf("failed to initialize summary module: %w", err)
	}

	app.Modules = m
	return nil
}

// Run serves HTTP and the background workers until ctx is canceled, then shuts the
// server down gracefully.
func (app *App) Run(ctx context.Context) error {
	logger := app.Observability.Logger
	srv := &http.Server{
		Addr:              app.Config.HTTP.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.InfoContext(ctx, "HTTP server listening", attr.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return app.Modules.Auction.Run(ctx)
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Close releases background workers and the database.
func (app *App) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if app.Modules != nil && app.Modules.Auction != nil {
		if err := app.Modules.Auction.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop auction queue: %w", err))
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}
	app.Observability.Logger.Info("Application closed")
	return errors.Join(errs...)
}
