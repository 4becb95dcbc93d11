package registrationhandlers

import "net/http"

// Handlers defines the HTTP surface of the registration module.
type Handlers interface {
	HandleRegister(w http.ResponseWriter, r *http.Request)
	HandleList(w http.ResponseWriter, r *http.Request)
	HandleGet(w http.ResponseWriter, r *http.Request)
	HandleListByTable(w http.ResponseWriter, r *http.Request)
	HandleUpdate(w http.ResponseWriter, r *http.Request)
	HandleUpdatePayment(w http.ResponseWriter, r *http.Request)
}
