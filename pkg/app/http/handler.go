// Package http provides HTTP utilities including chi-compatible error handling
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/chainsafe/dero-bridge/pkg/app/errors"
)

// HandlerFunc defines a function that returns an error for clean error handling
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// HandleError wraps an error-returning HandlerFunc into a standard http.HandlerFunc.
//
// Usage with chi:
//
//	r.Post("/bridge/execute", http.HandleError(handler.execute))
func HandleError(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			DefaultErrorHandler(w, err)
		}
	}
}

type statusError struct {
	status int
	err    error
}

func (e *statusError) Error() string { return e.err.Error() }
func (e *statusError) Unwrap() error { return e.err }

// WithStatus attaches an explicit HTTP status to an error that carries no
// bridge error kind, such as a busy orchestrator.
func WithStatus(status int, err error) error {
	if err == nil {
		return nil
	}
	return &statusError{status: status, err: err}
}

type errorResponse struct {
	ErrMsg     string         `json:"error"`
	Kind       apperrors.Kind `json:"kind,omitempty"`
	ErrMsgCode int            `json:"code"`
}

// DefaultErrorHandler handles errors returned from HTTP handlers
func DefaultErrorHandler(w http.ResponseWriter, err error) {
	var (
		bErr *apperrors.BridgeError
		sErr *statusError
	)

	switch {
	case errors.As(err, &bErr):
		writeError(w, bErr.StatusCode(), &errorResponse{
			ErrMsg:     bErr.Error(),
			Kind:       bErr.Kind,
			ErrMsgCode: bErr.StatusCode(),
		})
	case errors.As(err, &sErr):
		writeError(w, sErr.status, &errorResponse{
			ErrMsg:     sErr.Error(),
			ErrMsgCode: sErr.status,
		})
	default:
		writeError(w, http.StatusInternalServerError, &errorResponse{
			ErrMsg:     "Unexpected Service Error",
			ErrMsgCode: http.StatusInternalServerError,
		})
	}
}

// WriteJSON writes data as a JSON response with the given status
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, resp *errorResponse) {
	WriteJSON(w, status, resp)
}
