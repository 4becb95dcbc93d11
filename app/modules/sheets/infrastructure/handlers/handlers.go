package sheetshandlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	sheetsservice "github.com/Black-And-White-Club/gala-night/app/modules/sheets/application"
	"github.com/Black-And-White-Club/gala-night/app/shared/httpjson"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability/attr"
	"go.opentelemetry.io/otel/trace"
)

const (
	// CodeSheetsNotConfigured is returned when credentials or the target spreadsheet id are missing.
	CodeSheetsNotConfigured = "SHEETS_NOT_CONFIGURED"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// SheetsHandlers implements the Handlers interface.
type SheetsHandlers struct {
	service sheetsservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewSheetsHandlers creates a new SheetsHandlers instance.
func NewSheetsHandlers(service sheetsservice.Service, logger *slog.Logger, tracer trace.Tracer) Handlers {
	return &SheetsHandlers{service: service, logger: logger, tracer: tracer}
}

func (h *SheetsHandlers) HandleExportRegistrations(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.ExportRegistrations(r.Context())
	if err != nil {
		h.writeError(w, r, "ExportRegistrations", err)
		return
	}
	httpjson.OK(w, http.StatusOK, res)
}

func (h *SheetsHandlers) HandleExportSeating(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.ExportSeating(r.Context())
	if err != nil {
		h.writeError(w, r, "ExportSeating", err)
		return
	}
	httpjson.OK(w, http.StatusOK, res)
}

func (h *SheetsHandlers) HandleSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "SheetsHandlers.HandleSync")
	defer span.End()

	res, err := h.service.Sync(ctx)
	if err != nil {
		h.writeError(w, r, "Sync", err)
		return
	}
	httpjson.OK(w, http.StatusOK, res)
}

func (h *SheetsHandlers) HandleRegistrationsXLSX(w http.ResponseWriter, r *http.Request) {
	h.download(w, r, "registrations.xlsx", h.service.WriteRegistrationsXLSX)
}

func (h *SheetsHandlers) HandleSeatingXLSX(w http.ResponseWriter, r *http.Request) {
	h.download(w, r, "seating.xlsx", h.service.WriteSeatingXLSX)
}

// download buffers the workbook so a failure can still answer with the JSON envelope.
func (h *SheetsHandlers) download(
	w http.ResponseWriter,
	r *http.Request,
	filename string,
	write func(ctx context.Context, w io.Writer) error,
) {
	var buf bytes.Buffer
	if err := write(r.Context(), &buf); err != nil {
		h.writeError(w, r, filename, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *SheetsHandlers) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, sheetsservice.ErrNotConfigured):
		httpjson.Fail(w, http.StatusServiceUnavailable, CodeSheetsNotConfigured, err.Error())
	default:
		ctx := r.Context()
		h.logger.ErrorContext(ctx, "Sheets request failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", op),
			attr.Error(err),
		)
		httpjson.Internal(w)
	}
}
