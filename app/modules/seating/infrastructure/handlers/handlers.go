package seatinghandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	seatingservice "github.com/Black-And-White-Club/gala-night/app/modules/seating/application"
	"github.com/Black-And-White-Club/gala-night/app/shared/httpjson"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability/attr"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

// CodeSeatOccupied is returned when an assignment targets a seat held by another guest.
const CodeSeatOccupied = "SEAT_OCCUPIED"

// SeatingHandlers implements the Handlers interface.
type SeatingHandlers struct {
	service seatingservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewSeatingHandlers creates a new SeatingHandlers instance.
func NewSeatingHandlers(service seatingservice.Service, logger *slog.Logger, tracer trace.Tracer) Handlers {
	return &SeatingHandlers{service: service, logger: logger, tracer: tracer}
}

type addTableRequest struct {
	TableNumber int `json:"tableNumber" validate:"min=1"`
	SeatCount   int `json:"seatCount" validate:"min=1,max=50"`
}

type assignRequest struct {
	RegistrationID int64 `json:"registrationId" validate:"min=1"`
}

func (h *SeatingHandlers) HandleChart(w http.ResponseWriter, r *http.Request) {
	chart, err := h.service.GetChart(r.Context())
	if err != nil {
		h.writeError(w, r, "GetChart", err)
		return
	}
	httpjson.OK(w, http.StatusOK, chart)
}

func (h *SeatingHandlers) HandleAvailable(w http.ResponseWriter, r *http.Request) {
	seats, err := h.service.ListAvailable(r.Context())
	if err != nil {
		h.writeError(w, r, "ListAvailable", err)
		return
	}
	httpjson.OK(w, http.StatusOK, seats)
}

func (h *SeatingHandlers) HandleAddTable(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "SeatingHandlers.HandleAddTable")
	defer span.End()

	var req addTableRequest
	if !httpjson.DecodeOrFail(w, r, &req) {
		return
	}
	res, err := h.service.AddTable(ctx, req.TableNumber, req.SeatCount)
	if err != nil {
		h.writeError(w, r, "AddTable", err)
		return
	}
	status := http.StatusCreated
	if res.Created == 0 {
		status = http.StatusOK
	}
	httpjson.OK(w, status, res)
}

func (h *SeatingHandlers) HandleDeleteTable(w http.ResponseWriter, r *http.Request) {
	table, err := strconv.Atoi(chi.URLParam(r, "tableNumber"))
	if err != nil || table < 1 {
		httpjson.Fail(w, http.StatusBadRequest, httpjson.CodeBadRequest, "invalid tableNumber")
		return
	}
	removed, err := h.service.DeleteTable(r.Context(), table)
	if err != nil {
		h.writeError(w, r, "DeleteTable", err)
		return
	}
	httpjson.OK(w, http.StatusOK, map[string]int{"removed": removed})
}

func (h *SeatingHandlers) HandleDeleteSeat(w http.ResponseWriter, r *http.Request) {
	id, ok := httpjson.ParamIDOrFail(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteSeat(r.Context(), id); err != nil {
		h.writeError(w, r, "DeleteSeat", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SeatingHandlers) HandleAssign(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "SeatingHandlers.HandleAssign")
	defer span.End()

	id, ok := httpjson.ParamIDOrFail(w, r, "id")
	if !ok {
		return
	}
	var req assignRequest
	if !httpjson.DecodeOrFail(w, r, &req) {
		return
	}
	seat, err := h.service.AssignSeat(ctx, id, req.RegistrationID)
	if err != nil {
		h.writeError(w, r, "AssignSeat", err)
		return
	}
	httpjson.OK(w, http.StatusOK, seat)
}

func (h *SeatingHandlers) HandleUnassign(w http.ResponseWriter, r *http.Request) {
	id, ok := httpjson.ParamIDOrFail(w, r, "id")
	if !ok {
		return
	}
	seat, err := h.service.UnassignSeat(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "UnassignSeat", err)
		return
	}
	httpjson.OK(w, http.StatusOK, seat)
}

func (h *SeatingHandlers) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, seatingservice.ErrSeatNotFound),
		errors.Is(err, seatingservice.ErrTableNotFound),
		errors.Is(err, seatingservice.ErrRegistrationNotFound):
		httpjson.Fail(w, http.StatusNotFound, httpjson.CodeNotFound, err.Error())
	case errors.Is(err, seatingservice.ErrSeatOccupied):
		httpjson.Fail(w, http.StatusConflict, CodeSeatOccupied, err.Error())
	case errors.Is(err, seatingservice.ErrInvalidTable):
		httpjson.Fail(w, http.StatusBadRequest, httpjson.CodeValidation, err.Error())
	default:
		ctx := r.Context()
		h.logger.ErrorContext(ctx, "Seating request failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", op),
			attr.Error(err),
		)
		httpjson.Internal(w)
	}
}
