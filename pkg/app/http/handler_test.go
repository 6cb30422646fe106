package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/chainsafe/dero-bridge/pkg/app/errors"
)

type response struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
	Code  int    `json:"code"`
}

func handle(t *testing.T, err error) (int, response) {
	t.Helper()

	rec := httptest.NewRecorder()
	HandleError(func(http.ResponseWriter, *http.Request) error { return err })(
		rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var got response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	return rec.Code, got
}

func TestDefaultErrorHandler_BridgeError(t *testing.T) {
	code, got := handle(t, apperrors.UnknownSymbolError(nil, `token "XYZ" is not registered`))
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "UnknownSymbol", got.Kind)
	assert.Equal(t, `token "XYZ" is not registered`, got.Error)
	assert.Equal(t, http.StatusNotFound, got.Code)
}

func TestDefaultErrorHandler_WithStatus(t *testing.T) {
	code, got := handle(t, WithStatus(http.StatusConflict, errors.New("busy")))
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "busy", got.Error)
	assert.Empty(t, got.Kind)
}

func TestDefaultErrorHandler_Unknown(t *testing.T) {
	code, got := handle(t, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Unexpected Service Error", got.Error)
}

func TestHandleError_NoError(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(func(w http.ResponseWriter, _ *http.Request) error {
		WriteJSON(w, http.StatusCreated, map[string]string{"ok": "yes"})
		return nil
	})(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"ok":"yes"}`, rec.Body.String())
	assert.Nil(t, WithStatus(http.StatusConflict, nil))
}
