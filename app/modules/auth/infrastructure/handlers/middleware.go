package authhandlers

import (
	"context"
	"net/http"

	authdomain "github.com/Black-And-White-Club/gala-night/app/modules/auth/domain"
	"github.com/Black-And-White-Club/gala-night/app/shared/httpjson"
	"github.com/Black-And-White-Club/gala-night/app/shared/observability/attr"
)

type claimsKey struct{}

// ClaimsFromContext returns the admin claims stored by RequireAdmin, or empty claims.
func ClaimsFromContext(ctx context.Context) *authdomain.Claims {
	if c, ok := ctx.Value(claimsKey{}).(*authdomain.Claims); ok && c != nil {
		return c
	}
	return &authdomain.Claims{}
}

// WithClaims stores admin claims in ctx.
func WithClaims(ctx context.Context, claims *authdomain.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// RequireAdmin verifies the session token server-side before every admin request.
func (h *AuthHandlers) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		claims, err := h.service.ValidateSession(ctx, tokenFromRequest(r))
		if err != nil {
			if isAuthError(err) {
				httpjson.Fail(w, http.StatusUnauthorized, httpjson.CodeUnauthorized, err.Error())
				return
			}
			h.logger.ErrorContext(ctx, "Session validation failed", attr.ExtractCorrelationID(ctx), attr.Error(err))
			httpjson.Internal(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithClaims(ctx, claims)))
	})
}
