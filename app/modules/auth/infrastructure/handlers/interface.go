package authhandlers

import "net/http"

// Handlers defines the HTTP surface of the auth module.
type Handlers interface {
	HandleLogin(w http.ResponseWriter, r *http.Request)
	HandleLogout(w http.ResponseWriter, r *http.Request)
	HandleSession(w http.ResponseWriter, r *http.Request)
	HandleCreateAdmin(w http.ResponseWriter, r *http.Request)
	HandleListAdmins(w http.ResponseWriter, r *http.Request)
	HandleDeleteAdmin(w http.ResponseWriter, r *http.Request)

	// RequireAdmin rejects requests without a valid admin session.
	RequireAdmin(next http.Handler) http.Handler
}
