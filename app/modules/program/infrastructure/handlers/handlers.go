package programhandlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	programservice "github.com/Black-And-White-Club/gala-night/app/modules/program/application"
	"github.com/Black-And-White-Club/gala-night/app/shared/httpjson"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability/attr"
	"go.opentelemetry.io/otel/trace"
)

// ProgramHandlers implements the Handlers interface.
type ProgramHandlers struct {
	service programservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewProgramHandlers creates a new ProgramHandlers instance.
func NewProgramHandlers(service programservice.Service, logger *slog.Logger, tracer trace.Tracer) Handlers {
	return &ProgramHandlers{service: service, logger: logger, tracer: tracer}
}

type programRequest struct {
	Title           string  `json:"title" validate:"notblank,max=200"`
	Description     string  `json:"description" validate:"max=4000"`
	Type            string  `json:"type" validate:"max=50"`
	StartTime       *string `json:"startTime"`
	EndTime         *string `json:"endTime"`
	Location        *string `json:"location" validate:"omitempty,max=200"`
	SpeakerName     *string `json:"speakerName" validate:"omitempty,max=200"`
	SpeakerTitle    *string `json:"speakerTitle" validate:"omitempty,max=200"`
	SpeakerImageURL *string `json:"speakerImageUrl" validate:"omitempty,max=2000"`
	ExternalLink    *string `json:"externalLink" validate:"omitempty,max=2000"`
}

func (req programRequest) input() programservice.ProgramInput {
	return programservice.ProgramInput{
		Title:           req.Title,
		Description:     req.Description,
		Type:            req.Type,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Location:        req.Location,
		SpeakerName:     req.SpeakerName,
		SpeakerTitle:    req.SpeakerTitle,
		SpeakerImageURL: req.SpeakerImageURL,
		ExternalLink:    req.ExternalLink,
	}
}

type sequenceItem struct {
	ID       int64 `json:"id" validate:"min=1"`
	Sequence int   `json:"sequence" validate:"gte=0"`
}

// reorderRequest accepts a bare array or {"items": [...]}.
type reorderRequest struct {
	Items []sequenceItem `json:"items" validate:"required,min=1,dive"`
}

func (req *reorderRequest) UnmarshalJSON(b []byte) error {
	if trimmed := bytes.TrimSpace(b); len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &req.Items)
	}
	type plain reorderRequest
	return json.Unmarshal(b, (*plain)(req))
}

func (h *ProgramHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	programs, err := h.service.ListPrograms(r.Context())
	if err != nil {
		h.writeError(w, r, "ListPrograms", err)
		return
	}
	httpjson.OK(w, http.StatusOK, programs)
}

func (h *ProgramHandlers) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := httpjson.ParamIDOrFail(w, r, "id")
	if !ok {
		return
	}
	p, err := h.service.GetProgram(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "GetProgram", err)
		return
	}
	httpjson.OK(w, http.StatusOK, p)
}

func (h *ProgramHandlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req programRequest
	if !httpjson.DecodeOrFail(w, r, &req) {
		return
	}
	p, err := h.service.CreateProgram(r.Context(), req.input())
	if err != nil {
		h.writeError(w, r, "CreateProgram", err)
		return
	}
	httpjson.OK(w, http.StatusCreated, p)
}

func (h *ProgramHandlers) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := httpjson.ParamIDOrFail(w, r, "id")
	if !ok {
		return
	}
	var req programRequest
	if !httpjson.DecodeOrFail(w, r, &req) {
		return
	}
	p, err := h.service.UpdateProgram(r.Context(), id, req.input())
	if err != nil {
		h.writeError(w, r, "UpdateProgram", err)
		return
	}
	httpjson.OK(w, http.StatusOK, p)
}

func (h *ProgramHandlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := httpjson.ParamIDOrFail(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteProgram(r.Context(), id); err != nil {
		h.writeError(w, r, "DeleteProgram", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProgramHandlers) HandleReorder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ProgramHandlers.HandleReorder")
	defer span.End()

	var req reorderRequest
	if !httpjson.DecodeOrFail(w, r, &req) {
		return
	}
	updates := make([]programservice.SequenceUpdate, len(req.Items))
	for i, item := range req.Items {
		updates[i] = programservice.SequenceUpdate{ID: item.ID, Sequence: item.Sequence}
	}

	programs, err := h.service.Reorder(ctx, updates)
	if err != nil {
		h.writeError(w, r, "Reorder", err)
		return
	}
	httpjson.OK(w, http.StatusOK, programs)
}

func (h *ProgramHandlers) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, programservice.ErrProgramNotFound):
		httpjson.Fail(w, http.StatusNotFound, httpjson.CodeNotFound, err.Error())
	case errors.Is(err, programservice.ErrInvalidProgram),
		errors.Is(err, programservice.ErrInvalidTime),
		errors.Is(err, programservice.ErrInvalidReorder):
		httpjson.Fail(w, http.StatusBadRequest, httpjson.CodeValidation, err.Error())
	default:
		ctx := r.Context()
		h.logger.ErrorContext(ctx, "Program request failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", op),
			attr.Error(err),
		)
		httpjson.Internal(w)
	}
}
