package summaryhandlers

import (
	"log/slog"
	"net/http"

	summaryservice "github.com/Black-And-White-Club/gala-night/app/modules/summary/application"
	"github.com/Black-And-White-Club/gala-night/app/shared/httpjson"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability/attr"
)

// SummaryHandlers serves the public event figures.
type SummaryHandlers struct {
	service summaryservice.Service
	logger  *slog.Logger
}

func NewSummaryHandlers(service summaryservice.Service, logger *slog.Logger) *SummaryHandlers {
	return &SummaryHandlers{service: service, logger: logger}
}

func (h *SummaryHandlers) HandleTotalRaised(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.TotalRaised(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Summary request failed",
			attr.ExtractCorrelationID(r.Context()),
			attr.Error(err),
		)
		httpjson.Internal(w)
		return
	}
	httpjson.OK(w, http.StatusOK, total)
}
