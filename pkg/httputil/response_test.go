package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSON(rr, http.StatusCreated, map[string]string{"id": "42"})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":"42"}`, rr.Body.String())
}

func TestWriteJSON_NilData(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSON(rr, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, http.StatusBadRequest, ErrorBody{
		Error:   "Error processing file upload",
		Details: "unexpected EOF",
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Error processing file upload", body["error"])
	assert.Equal(t, "unexpected EOF", body["details"])
	_, hasPath := body["path"]
	assert.False(t, hasPath, "empty path must be omitted")
}

func TestMarshalError_OmitsEmptyFields(t *testing.T) {
	b := MarshalError(ErrorBody{Error: "not found", Path: "/x", Method: "GET"})
	assert.JSONEq(t, `{"error":"not found","path":"/x","method":"GET"}`, string(b))
}
