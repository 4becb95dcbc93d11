package imagehandlers

import (
	"errors"
	"log/slog"
	"net/http"

	imageservice "github.com/Black-And-White-Club/gala-night/app/modules/image/application"
	"github.com/Black-And-White-Club/gala-night/app/shared/httpjson"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability/attr"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

// CodeDuplicateLabel is returned when another image already uses the label.
const CodeDuplicateLabel = "DUPLICATE_LABEL"

// ImageHandlers implements the Handlers interface.
type ImageHandlers struct {
	service imageservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewImageHandlers creates a new ImageHandlers instance.
func NewImageHandlers(service imageservice.Service, logger *slog.Logger, tracer trace.Tracer) Handlers {
	return &ImageHandlers{service: service, logger: logger, tracer: tracer}
}

type imageRequest struct {
	Label  string `json:"label" validate:"required,label,max=100"`
	FileID string `json:"fileId" validate:"notblank,max=200"`
	Alt    string `json:"alt" validate:"max=500"`
	Type   string `json:"type" validate:"max=50"`
}

func (req imageRequest) input() imageservice.ImageInput {
	return imageservice.ImageInput{Label: req.Label, FileID: req.FileID, Alt: req.Alt, Type: req.Type}
}

func (h *ImageHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	images, err := h.service.ListImages(r.Context())
	if err != nil {
		h.writeError(w, r, "ListImages", err)
		return
	}
	httpjson.OK(w, http.StatusOK, images)
}

func (h *ImageHandlers) HandleGet(w http.ResponseWriter, r *http.Request) {
	img, err := h.service.GetImage(r.Context(), chi.URLParam(r, "label"))
	if err != nil {
		h.writeError(w, r, "GetImage", err)
		return
	}
	httpjson.OK(w, http.StatusOK, img)
}

// HandleView redirects to the public Drive URL so <img src> can point at a stable label.
func (h *ImageHandlers) HandleView(w http.ResponseWriter, r *http.Request) {
	img, err := h.service.GetImage(r.Context(), chi.URLParam(r, "label"))
	if err != nil {
		h.writeError(w, r, "ViewImage", err)
		return
	}
	http.Redirect(w, r, img.URL, http.StatusFound)
}

func (h *ImageHandlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req imageRequest
	if !httpjson.DecodeOrFail(w, r, &req) {
		return
	}
	img, err := h.service.CreateImage(r.Context(), req.input())
	if err != nil {
		h.writeError(w, r, "CreateImage", err)
		return
	}
	httpjson.OK(w, http.StatusCreated, img)
}

func (h *ImageHandlers) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := httpjson.ParamIDOrFail(w, r, "id")
	if !ok {
		return
	}
	var req imageRequest
	if !httpjson.DecodeOrFail(w, r, &req) {
		return
	}
	img, err := h.service.UpdateImage(r.Context(), id, req.input())
	if err != nil {
		h.writeError(w, r, "UpdateImage", err)
		return
	}
	httpjson.OK(w, http.StatusOK, img)
}

func (h *ImageHandlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := httpjson.ParamIDOrFail(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteImage(r.Context(), id); err != nil {
		h.writeError(w, r, "DeleteImage", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ImageHandlers) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, imageservice.ErrImageNotFound):
		httpjson.Fail(w, http.StatusNotFound, httpjson.CodeNotFound, err.Error())
	case errors.Is(err, imageservice.ErrDuplicateLabel):
		httpjson.Fail(w, http.StatusConflict, CodeDuplicateLabel, err.Error())
	case errors.Is(err, imageservice.ErrInvalidImage):
		httpjson.Fail(w, http.StatusBadRequest, httpjson.CodeValidation, err.Error())
	default:
		ctx := r.Context()
		h.logger.ErrorContext(ctx, "Image request failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", op),
			attr.Error(err),
		)
		httpjson.Internal(w)
	}
}
