package seatinghandlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	seatingservice "github.com/Black-And-White-Club/gala-night/app/modules/seating/application"
	"github.com/Black-And-White-Club/gala-night/app/shared/httpjson"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newRouter(svc seatingservice.Service) http.Handler {
	h := NewSeatingHandlers(svc, slog.New(slog.NewTextHandler(io.Discard, nil)), noop.NewTracerProvider().Tracer("test"))
	r := chi.NewRouter()
	r.Get("/seating", h.HandleChart)
	r.Get("/seating/available", h.HandleAvailable)
	r.Post("/admin/seating/tables", h.HandleAddTable)
	r.Delete("/admin/seating/tables/{tableNumber}", h.HandleDeleteTable)
	r.Delete("/admin/seating/seats/{id}", h.HandleDeleteSeat)
	r.Put("/admin/seating/seats/{id}/assignment", h.HandleAssign)
	r.Delete("/admin/seating/seats/{id}/assignment", h.HandleUnassign)
	return r
}

func serve(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, httpjson.Response) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, path, rdr))
	var resp httpjson.Response
	if rr.Code != http.StatusNoContent {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	}
	return rr, resp
}

func TestSeatingHandlers_HandleAssign(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "assigned", path: "/admin/seating/seats/3/assignment", body: `{"registrationId":5}`, wantStatus: http.StatusOK},
		{name: "occupied", path: "/admin/seating/seats/3/assignment", body: `{"registrationId":5}`, err: seatingservice.ErrSeatOccupied, wantStatus: http.StatusConflict, wantCode: CodeSeatOccupied},
		{name: "unknown seat", path: "/admin/seating/seats/3/assignment", body: `{"registrationId":5}`, err: seatingservice.ErrSeatNotFound, wantStatus: http.StatusNotFound, wantCode: httpjson.CodeNotFound},
		{name: "unknown registration", path: "/admin/seating/seats/3/assignment", body: `{"registrationId":5}`, err: seatingservice.ErrRegistrationNotFound, wantStatus: http.StatusNotFound, wantCode: httpjson.CodeNotFound},
		{name: "missing registration id", path: "/admin/seating/seats/3/assignment", body: `{}`, wantStatus: http.StatusBadRequest, wantCode: httpjson.CodeValidation},
		{name: "bad seat id", path: "/admin/seating/seats/x/assignment", body: `{"registrationId":5}`, wantStatus: http.StatusBadRequest, wantCode: httpjson.CodeBadRequest},
		{name: "store failure", path: "/admin/seating/seats/3/assignment", body: `{"registrationId":5}`, err: errors.New("disk full"), wantStatus: http.StatusInternalServerError, wantCode: httpjson.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &FakeService{}
			if tt.err != nil {
				svc.AssignSeatFunc = func(ctx context.Context, seatID, registrationID int64) (*seatingservice.SeatView, error) {
					return nil, tt.err
				}
			}
			rr, resp := serve(t, newRouter(svc), http.MethodPut, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantCode != "" {
				require.NotNil(t, resp.Error)
				assert.Equal(t, tt.wantCode, resp.Error.Code)
			}
		})
	}
}

func TestSeatingHandlers_HandleAddTable(t *testing.T) {
	svc := &FakeService{
		AddTableFunc: func(ctx context.Context, tableNumber, seatCount int) (*seatingservice.AddTableResult, error) {
			return &seatingservice.AddTableResult{TableNumber: tableNumber, Created: 0, Skipped: seatCount}, nil
		},
	}
	rr, resp := serve(t, newRouter(svc), http.MethodPost, "/admin/seating/tables", `{"tableNumber":2,"seatCount":8}`)
	assert.Equal(t, http.StatusOK, rr.Code, "nothing new created")
	assert.Equal(t, "ok", resp.Status)
	assert.Contains(t, rr.Body.String(), `"skipped":8`)

	rr, _ = serve(t, newRouter(&FakeService{}), http.MethodPost, "/admin/seating/tables", `{"tableNumber":2,"seatCount":8}`)
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr, _ = serve(t, newRouter(&FakeService{}), http.MethodPost, "/admin/seating/tables", `{"tableNumber":2,"seatCount":80}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSeatingHandlers_DeleteRoutes(t *testing.T) {
	svc := &FakeService{
		DeleteTableFunc: func(ctx context.Context, tableNumber int) (int, error) {
			if tableNumber == 4 {
				return 10, nil
			}
			return 0, seatingservice.ErrTableNotFound
		},
	}
	router := newRouter(svc)

	rr, _ := serve(t, router, http.MethodDelete, "/admin/seating/tables/4", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"removed":10`)

	rr, _ = serve(t, router, http.MethodDelete, "/admin/seating/tables/5", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr, _ = serve(t, router, http.MethodDelete, "/admin/seating/tables/zero", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr, _ = serve(t, router, http.MethodDelete, "/admin/seating/seats/8", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestSeatingHandlers_PublicChart(t *testing.T) {
	regID := int64(1)
	svc := &FakeService{
		GetChartFunc: func(ctx context.Context) ([]seatingservice.TableView, error) {
			return []seatingservice.TableView{{
				TableNumber: 1,
				Seats: []seatingservice.SeatView{
					{ID: 1, TableNumber: 1, SeatNumber: 1, RegistrationID: &regID, Occupant: &seatingservice.Occupant{Name: "Ada"}},
				},
			}}, nil
		},
	}
	rr, resp := serve(t, newRouter(svc), http.MethodGet, "/seating", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", resp.Status)
	assert.Contains(t, rr.Body.String(), `"name":"Ada"`)
	assert.NotContains(t, rr.Body.String(), "email")
}
