package sheetshandlers

import "net/http"

// Handlers defines the HTTP surface of the sheets module.
type Handlers interface {
	HandleExportRegistrations(w http.ResponseWriter, r *http.Request)
	HandleExportSeating(w http.ResponseWriter, r *http.Request)
	HandleSync(w http.ResponseWriter, r *http.Request)
	HandleRegistrationsXLSX(w http.ResponseWriter, r *http.Request)
	HandleSeatingXLSX(w http.ResponseWriter, r *http.Request)
}
