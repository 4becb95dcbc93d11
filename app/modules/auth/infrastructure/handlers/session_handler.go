package authhandlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	authservice "github.com/Black-And-White-Club/gala-night/app/modules/auth/application"
	"github.com/Black-And-White-Club/gala-night/app/shared/httpjson"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability/attr"
)

const (
	SessionCookie = "gala_session"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	Authenticated bool       `json:"authenticated"`
	Email         string     `json:"email,omitempty"`
	Source        string     `json:"source,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}

// HandleLogin checks credentials and sets the session cookie.
func (h *AuthHandlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AuthHandlers.HandleLogin")
	defer span.End()

	var req loginRequest
	if !httpjson.DecodeOrFail(w, r, &req) {
		return
	}

	resp, err := h.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			httpjson.Fail(w, http.StatusUnauthorized, httpjson.CodeInvalidCredentials, err.Error())
			return
		}
		h.logger.ErrorContext(ctx, "HTTP Login failed", attr.ExtractCorrelationID(ctx), attr.Error(err))
		httpjson.Internal(w)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    resp.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
		Expires:  resp.Claims.ExpiresAt,
	})

	expires := resp.Claims.ExpiresAt
	httpjson.OK(w, http.StatusOK, sessionResponse{
		Authenticated: true,
		Email:         resp.Claims.Email,
		Source:        string(resp.Claims.Source),
		ExpiresAt:     &expires,
	})
}

// HandleLogout clears the session cookie. Tokens are stateless and simply age out.
func (h *AuthHandlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})

	httpjson.OK(w, http.StatusOK, sessionResponse{Authenticated: false})
}

// HandleSession reports whether the caller holds a valid session. It never fails with 401
// so the UI can use it to decide whether to show the login form.
func (h *AuthHandlers) HandleSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, err := h.service.ValidateSession(ctx, tokenFromRequest(r))
	if err != nil {
		if !isAuthError(err) {
			h.logger.ErrorContext(ctx, "Session check failed", attr.ExtractCorrelationID(ctx), attr.Error(err))
			httpjson.Internal(w)
			return
		}
		httpjson.OK(w, http.StatusOK, sessionResponse{Authenticated: false})
		return
	}

	expires := claims.ExpiresAt
	httpjson.OK(w, http.StatusOK, sessionResponse{
		Authenticated: true,
		Email:         claims.Email,
		Source:        string(claims.Source),
		ExpiresAt:     &expires,
	})
}

// tokenFromRequest reads the session cookie, falling back to a bearer token for scripted clients.
func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

func isAuthError(err error) bool {
	return errors.Is(err, authservice.ErrMissingToken) ||
		errors.Is(err, authservice.ErrInvalidToken) ||
		errors.Is(err, authservice.ErrExpiredToken)
}
