package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, map[string]int{"count": 3}, http.StatusCreated)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"count":3}`, rec.Body.String())
}

func TestRespondErrorWithCode(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondErrorWithCode(rec, "user not found", CodeUserNotFound, http.StatusNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "user not found", resp.Error)
	assert.Equal(t, CodeUserNotFound, resp.Code)
}

func TestRespondErrorOmitsEmptyCode(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, "boom", http.StatusInternalServerError)

	assert.JSONEq(t, `{"error":"boom"}`, rec.Body.String())
}
