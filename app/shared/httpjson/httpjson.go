// Package httpjson writes the JSON response envelope shared by every endpoint and
// decodes validated request bodies.
package httpjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/Black-And-White-Club/gala-night/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// Error codes returned in the envelope.
const (
	CodeBadRequest         = "BAD_REQUEST"
	CodeValidation         = "VALIDATION_FAILED"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeRateLimited        = "RATE_LIMITED"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeInternal           = "INTERNAL_ERROR"
	internalErrorDesc      = "Service is currently unavailable. Please try again later."
	maxRequestBodyBytes    = 1 << 20
	statusOK, statusErr    = "ok", "error"
)

type Response struct {
	Status string `json:"status"`
	Error  *Error `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

type Error struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
}

// OK writes data inside a success envelope.
func OK(w http.ResponseWriter, status int, data any) {
	write(w, status, Response{Status: statusOK, Data: data})
}

// Fail writes an error envelope.
func Fail(w http.ResponseWriter, status int, code, desc string) {
	write(w, status, Response{Status: statusErr, Error: &Error{Code: code, Desc: desc}})
}

// Internal writes the generic 500 envelope; the cause is never exposed.
func Internal(w http.ResponseWriter) {
	Fail(w, http.StatusInternalServerError, CodeInternal, internalErrorDesc)
}

func write(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// DecodeError is returned by Decode; Code tells the handler which envelope code to use.
type DecodeError struct {
	Code string
	Err  error
}

func (e *DecodeError) Error() string { return e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// Decode reads a JSON body into dst and validates it.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return &DecodeError{Code: CodeBadRequest, Err: errors.New("request body is empty")}
		}
		return &DecodeError{Code: CodeBadRequest, Err: fmt.Errorf("malformed JSON: %w", err)}
	}
	if err := validator.Validate(r.Context(), dst); err != nil {
		return &DecodeError{Code: CodeValidation, Err: err}
	}
	return nil
}

// DecodeOrFail decodes dst and writes a 400 envelope on failure. It reports whether decoding succeeded.
func DecodeOrFail(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := Decode(r, dst); err != nil {
		code := CodeBadRequest
		var de *DecodeError
		if errors.As(err, &de) {
			code = de.Code
		}
		Fail(w, http.StatusBadRequest, code, err.Error())
		return false
	}
	return true
}

// ParamInt64 parses a positive integer chi URL parameter.
func ParamInt64(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// ParamIDOrFail parses the named parameter and writes a 400 envelope when it is invalid.
func ParamIDOrFail(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := ParamInt64(r, name)
	if err != nil {
		Fail(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return 0, false
	}
	return id, true
}
