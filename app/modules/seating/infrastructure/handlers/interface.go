package seatinghandlers

import "net/http"

// Handlers defines the HTTP surface of the seating module.
type Handlers interface {
	HandleChart(w http.ResponseWriter, r *http.Request)
	HandleAvailable(w http.ResponseWriter, r *http.Request)
	HandleAddTable(w http.ResponseWriter, r *http.Request)
	HandleDeleteTable(w http.ResponseWriter, r *http.Request)
	HandleDeleteSeat(w http.ResponseWriter, r *http.Request)
	HandleAssign(w http.ResponseWriter, r *http.Request)
	HandleUnassign(w http.ResponseWriter, r *http.Request)
}
