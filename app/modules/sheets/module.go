package sheets

import (
	"context"
	"log/slog"
	"net/http"

	registrationdb "github.com/Black-And-White-Club/gala-night/app/modules/registration/infrastructure/repositories"
	seatingdb "github.com/Black-And-White-Club/gala-night/app/modules/seating/infrastructure/repositories"
	sheetsservice "github.com/Black-And-White-Club/gala-night/app/modules/sheets/application"
	googlesheets "github.com/Black-And-White-Club/gala-night/app/modules/sheets/infrastructure/google"
	sheetshandlers "github.com/Black-And-White-Club/gala-night/app/modules/sheets/infrastructure/handlers"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability/attr"
	"github.com/Black-And-White-Club/gala-night/config"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the spreadsheet export and sync module.
type Module struct {
	service sheetsservice.Service
	logger  *slog.Logger
}

// NewModule creates the sheets module and registers its routes. Missing or unreadable
// credentials leave the module running with spreadsheet calls answering "not configured".
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	db *bun.DB,
	httpRouter chi.Router,
	requireAdmin func(http.Handler) http.Handler,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "Initializing sheets module")

	client := newClient(ctx, cfg.Sheets, logger)

	service := sheetsservice.NewSheetsService(
		client,
		cfg.Sheets,
		registrationdb.NewRepository(db),
		seatingdb.NewRepository(db),
		logger,
		obs.Metrics,
		obs.Tracer,
		db,
	)
	handlers := sheetshandlers.NewSheetsHandlers(service, logger, obs.Tracer)

	if httpRouter != nil {
		httpRouter.Route("/api/admin/sheets", func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/export/registrations", handlers.HandleExportRegistrations)
			r.Post("/export/seating", handlers.HandleExportSeating)
			r.Post("/sync", handlers.HandleSync)
		})
		httpRouter.Route("/api/admin/export", func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/registrations.xlsx", handlers.HandleRegistrationsXLSX)
			r.Get("/seating.xlsx", handlers.HandleSeatingXLSX)
		})
	}

	logger.InfoContext(ctx, "Sheets module initialized", attr.Bool("sheets_enabled", client != nil))

	return &Module{service: service, logger: logger}, nil
}

// newClient returns nil when no usable credential is configured.
func newClient(ctx context.Context, cfg config.SheetsConfig, logger *slog.Logger) sheetsservice.SheetClient {
	if !cfg.SheetsEnabled() {
		return nil
	}
	creds, err := cfg.Credentials()
	if err != nil {
		logger.WarnContext(ctx, "Spreadsheet credentials unavailable", attr.Error(err))
		return nil
	}
	client, err := googlesheets.NewClient(ctx, creds)
	if err != nil {
		logger.WarnContext(ctx, "Failed to create spreadsheet client", attr.Error(err))
		return nil
	}
	return client
}

// GetService returns the sheets service, used by the CLI commands.
func (m *Module) GetService() sheetsservice.Service {
	return m.service
}
