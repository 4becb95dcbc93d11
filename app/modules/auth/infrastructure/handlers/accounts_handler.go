package authhandlers

import (
	"errors"
	"net/http"

	authservice "github.com/Black-And-White-Club/gala-night/app/modules/auth/application"
	"github.com/Black-And-White-Club/gala-night/app/shared/httpjson"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability/attr"
)

type createAdminRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (h *AuthHandlers) HandleCreateAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AuthHandlers.HandleCreateAdmin")
	defer span.End()

	var req createAdminRequest
	if !httpjson.DecodeOrFail(w, r, &req) {
		return
	}

	info, err := h.service.CreateAdmin(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, authservice.ErrWeakPassword):
			httpjson.Fail(w, http.StatusBadRequest, httpjson.CodeValidation, err.Error())
		case errors.Is(err, authservice.ErrDuplicateEmail):
			httpjson.Fail(w, http.StatusConflict, httpjson.CodeConflict, err.Error())
		default:
			h.logger.ErrorContext(ctx, "Create admin failed", attr.ExtractCorrelationID(ctx), attr.Error(err))
			httpjson.Internal(w)
		}
		return
	}

	h.logger.InfoContext(ctx, "Admin account created",
		attr.ExtractCorrelationID(ctx),
		attr.String("email", info.Email),
		attr.String("created_by", ClaimsFromContext(ctx).Email),
	)
	httpjson.OK(w, http.StatusCreated, info)
}

func (h *AuthHandlers) HandleListAdmins(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	admins, err := h.service.ListAdmins(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "List admins failed", attr.ExtractCorrelationID(ctx), attr.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.OK(w, http.StatusOK, admins)
}

func (h *AuthHandlers) HandleDeleteAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := httpjson.ParamIDOrFail(w, r, "id")
	if !ok {
		return
	}

	err := h.service.DeleteAdmin(ctx, ClaimsFromContext(ctx), id)
	if err != nil {
		switch {
		case errors.Is(err, authservice.ErrAdminNotFound):
			httpjson.Fail(w, http.StatusNotFound, httpjson.CodeNotFound, err.Error())
		case errors.Is(err, authservice.ErrCannotDeleteSelf):
			httpjson.Fail(w, http.StatusConflict, httpjson.CodeConflict, err.Error())
		default:
			h.logger.ErrorContext(ctx, "Delete admin failed", attr.ExtractCorrelationID(ctx), attr.Error(err))
			httpjson.Internal(w)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
