package programhandlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	programservice "github.com/Black-And-White-Club/gala-night/app/modules/program/application"
	programdb "github.com/Black-And-White-Club/gala-night/app/modules/program/infrastructure/repositories"
	"github.com/Black-And-White-Club/gala-night/app/shared/httpjson"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newRouter(svc programservice.Service) http.Handler {
	h := NewProgramHandlers(svc, slog.New(slog.NewTextHandler(io.Discard, nil)), noop.NewTracerProvider().Tracer("test"))
	r := chi.NewRouter()
	r.Get("/programs", h.HandleList)
	r.Get("/programs/{id}", h.HandleGet)
	r.Post("/admin/programs", h.HandleCreate)
	r.Patch("/admin/programs/sequence", h.HandleReorder)
	r.Put("/admin/programs/{id}", h.HandleUpdate)
	r.Delete("/admin/programs/{id}", h.HandleDelete)
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

func TestProgramHandlers_HandleReorder(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantCode   string
		wantIDs    []int64
	}{
		{name: "bare array", body: `[{"id":3,"sequence":1},{"id":1,"sequence":2}]`, wantStatus: http.StatusOK, wantIDs: []int64{3, 1}},
		{name: "wrapped", body: `{"items":[{"id":2,"sequence":5}]}`, wantStatus: http.StatusOK, wantIDs: []int64{2}},
		{name: "empty array", body: `[]`, wantStatus: http.StatusBadRequest, wantCode: httpjson.CodeValidation},
		{name: "invalid id", body: `[{"id":0,"sequence":1}]`, wantStatus: http.StatusBadRequest, wantCode: httpjson.CodeValidation},
		{name: "unknown id", body: `[{"id":8,"sequence":1}]`, err: programservice.ErrProgramNotFound, wantStatus: http.StatusNotFound, wantCode: httpjson.CodeNotFound},
		{name: "duplicate ids", body: `[{"id":8,"sequence":1},{"id":8,"sequence":2}]`, err: programservice.ErrInvalidReorder, wantStatus: http.StatusBadRequest, wantCode: httpjson.CodeValidation},
		{name: "malformed", body: `[{"id":`, wantStatus: http.StatusBadRequest, wantCode: httpjson.CodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotIDs []int64
			svc := &FakeService{
				ReorderFunc: func(_ context.Context, updates []programservice.SequenceUpdate) ([]programdb.Program, error) {
					for _, u := range updates {
						gotIDs = append(gotIDs, u.ID)
					}
					if tt.err != nil {
						return nil, tt.err
					}
					return []programdb.Program{}, nil
				},
			}
			rr, resp := serve(t, newRouter(svc), http.MethodPatch, "/admin/programs/sequence", tt.body)
			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantCode != "" {
				require.NotNil(t, resp.Error)
				assert.Equal(t, tt.wantCode, resp.Error.Code)
			}
			if tt.wantIDs != nil {
				assert.Equal(t, tt.wantIDs, gotIDs)
			}
		})
	}
}

func TestProgramHandlers_CRUD(t *testing.T) {
	t.Run("create passes times through", func(t *testing.T) {
		var got programservice.ProgramInput
		svc := &FakeService{
			CreateProgramFunc: func(_ context.Context, in programservice.ProgramInput) (*programdb.Program, error) {
				got = in
				return &programdb.Program{ID: 4, Title: in.Title, Sequence: 3}, nil
			},
		}
		rr, resp := serve(t, newRouter(svc), http.MethodPost, "/admin/programs",
			`{"title":"Dinner","type":"meal","startTime":"today at 7pm"}`)
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "ok", resp.Status)
		require.NotNil(t, got.StartTime)
		assert.Equal(t, "today at 7pm", *got.StartTime)
		assert.Equal(t, "meal", got.Type)
	})

	t.Run("create without title", func(t *testing.T) {
		rr, resp := serve(t, newRouter(&FakeService{}), http.MethodPost, "/admin/programs", `{"type":"meal"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, httpjson.CodeValidation, resp.Error.Code)
	})

	t.Run("update with bad time", func(t *testing.T) {
		svc := &FakeService{
			UpdateProgramFunc: func(context.Context, int64, programservice.ProgramInput) (*programdb.Program, error) {
				return nil, programservice.ErrInvalidTime
			},
		}
		rr, _ := serve(t, newRouter(svc), http.MethodPut, "/admin/programs/2", `{"title":"Dinner","startTime":"banana"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("delete", func(t *testing.T) {
		rr, _ := serve(t, newRouter(&FakeService{}), http.MethodDelete, "/admin/programs/2", "")
		assert.Equal(t, http.StatusNoContent, rr.Code)

		svc := &FakeService{DeleteProgramFunc: func(context.Context, int64) error { return programservice.ErrProgramNotFound }}
		rr, _ = serve(t, newRouter(svc), http.MethodDelete, "/admin/programs/2", "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("list", func(t *testing.T) {
		svc := &FakeService{
			ListProgramsFunc: func(context.Context) ([]programdb.Program, error) {
				return []programdb.Program{{ID: 1, Title: "Welcome", Sequence: 1}}, nil
			},
		}
		rr, resp := serve(t, newRouter(svc), http.MethodGet, "/programs", "")
		assert.Equal(t, http.StatusOK, rr.Code)
		list := resp.Data.([]any)
		require.Len(t, list, 1)
		assert.Equal(t, "Welcome", list[0].(map[string]any)["title"])
	})
}
