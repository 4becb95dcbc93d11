package registrationhandlers

import (
	"errors"
	"log/slog"
	"net/http"

	registrationservice "github.com/Black-And-White-Club/gala-night/app/modules/registration/application"
	registrationdb "github.com/Black-And-White-Club/gala-night/app/modules/registration/infrastructure/repositories"
	"github.com/Black-And-White-Club/gala-night/app/shared/httpjson"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability/attr"
	"go.opentelemetry.io/otel/trace"
)

// RegistrationHandlers implements the Handlers interface.
type RegistrationHandlers struct {
	service registrationservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewRegistrationHandlers creates a new RegistrationHandlers instance.
func NewRegistrationHandlers(service registrationservice.Service, logger *slog.Logger, tracer trace.Tracer) Handlers {
	return &RegistrationHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

type registrationRequest struct {
	Name            string  `json:"name" validate:"notblank,max=200"`
	Email           string  `json:"email" validate:"required,email"`
	Phone           string  `json:"phone" validate:"max=40"`
	PaymentAmount   float64 `json:"paymentAmount" validate:"gte=0"`
	TablePreference *int    `json:"tablePreference" validate:"omitempty,min=1"`
	SeatPreference  *int    `json:"seatPreference" validate:"omitempty,min=1"`
	Quote           *string `json:"quote" validate:"omitempty,max=500"`
	Bio             *string `json:"bio" validate:"omitempty,max=2000"`
	Involvement     *string `json:"involvement" validate:"omitempty,max=500"`
	ImageURL        *string `json:"imageUrl" validate:"omitempty,max=2048"`
}

func (req registrationRequest) toInput() registrationservice.RegisterInput {
	return registrationservice.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		PaymentAmount:   req.PaymentAmount,
		TablePreference: req.TablePreference,
		SeatPreference:  req.SeatPreference,
		Quote:           req.Quote,
		Bio:             req.Bio,
		Involvement:     req.Involvement,
		ImageURL:        req.ImageURL,
	}
}

type updateRequest struct {
	registrationRequest
	PaymentStatus bool `json:"paymentStatus"`
}

type paymentRequest struct {
	PaymentStatus *bool    `json:"paymentStatus" validate:"required"`
	PaymentAmount *float64 `json:"paymentAmount" validate:"omitempty,gte=0"`
}

// HandleRegister is the public sign-up endpoint.
func (h *RegistrationHandlers) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RegistrationHandlers.HandleRegister")
	defer span.End()

	var req registrationRequest
	if !httpjson.DecodeOrFail(w, r, &req) {
		return
	}

	reg, err := h.service.Register(ctx, req.toInput())
	if err != nil {
		h.writeError(w, r, "Register", err)
		return
	}
	httpjson.OK(w, http.StatusCreated, reg)
}

func (h *RegistrationHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	regs, err := h.service.ListRegistrations(r.Context())
	if err != nil {
		h.writeError(w, r, "ListRegistrations", err)
		return
	}
	httpjson.OK(w, http.StatusOK, regs)
}

func (h *RegistrationHandlers) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := httpjson.ParamIDOrFail(w, r, "id")
	if !ok {
		return
	}
	reg, err := h.service.GetRegistration(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "GetRegistration", err)
		return
	}
	httpjson.OK(w, http.StatusOK, reg)
}

func (h *RegistrationHandlers) HandleListByTable(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.ListByTable(r.Context())
	if err != nil {
		h.writeError(w, r, "ListByTable", err)
		return
	}
	httpjson.OK(w, http.StatusOK, groups)
}

func (h *RegistrationHandlers) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := httpjson.ParamIDOrFail(w, r, "id")
	if !ok {
		return
	}
	var req updateRequest
	if !httpjson.DecodeOrFail(w, r, &req) {
		return
	}
	reg, err := h.service.UpdateRegistration(r.Context(), id, registrationservice.UpdateInput{
		RegisterInput: req.toInput(),
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		h.writeError(w, r, "UpdateRegistration", err)
		return
	}
	httpjson.OK(w, http.StatusOK, reg)
}

func (h *RegistrationHandlers) HandleUpdatePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := httpjson.ParamIDOrFail(w, r, "id")
	if !ok {
		return
	}
	var req paymentRequest
	if !httpjson.DecodeOrFail(w, r, &req) {
		return
	}
	reg, err := h.service.UpdatePayment(r.Context(), id, *req.PaymentStatus, req.PaymentAmount)
	if err != nil {
		h.writeError(w, r, "UpdatePayment", err)
		return
	}
	httpjson.OK(w, http.StatusOK, reg)
}

func (h *RegistrationHandlers) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, registrationdb.ErrNotFound):
		httpjson.Fail(w, http.StatusNotFound, httpjson.CodeNotFound, err.Error())
	case errors.Is(err, registrationservice.ErrInvalidRegistration):
		httpjson.Fail(w, http.StatusBadRequest, httpjson.CodeValidation, err.Error())
	default:
		ctx := r.Context()
		h.logger.ErrorContext(ctx, "Registration request failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", op),
			attr.Error(err),
		)
		httpjson.Internal(w)
	}
}
