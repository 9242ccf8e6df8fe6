package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "preservation/pkg/domain-errors"
)

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestWriteError(t *testing.T) {
	t.Run("internal error omits description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeInternal, "db failed"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "internal_error", body["error"])
		_, ok := body["error_description"]
		assert.False(t, ok)
	})

	t.Run("plain error is internal", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, fmt.Errorf("connection reset"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "internal_error", decodeBody(t, w)["error"])
	})

	t.Run("domain error includes its message but not the cause", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.Wrap(fmt.Errorf("secret detail"), dErrors.CodeNotReady, "tag is not ready to be preserved"))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "not_ready", body["error"])
		assert.Equal(t, "tag is not ready to be preserved", body["error_description"])
	})
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code dErrors.Code
		want int
	}{
		{dErrors.CodeMissingRequiredInput, http.StatusBadRequest},
		{dErrors.CodeInvalidInput, http.StatusBadRequest},
		{dErrors.CodeUnauthorized, http.StatusUnauthorized},
		{dErrors.CodeNotFound, http.StatusNotFound},
		{dErrors.CodeUniquenessViolation, http.StatusConflict},
		{dErrors.CodeConflict, http.StatusConflict},
		{dErrors.CodeInvalidState, http.StatusUnprocessableEntity},
		{dErrors.CodeInvariantViolation, http.StatusUnprocessableEntity},
		{dErrors.CodeTimeout, http.StatusGatewayTimeout},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.code))
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Remark string `json:"remark"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"remark":"ok"}`))
	require.NoError(t, DecodeJSON(r, &v))
	assert.Equal(t, "ok", v.Remark)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"unknown":1}`))
	err := DecodeJSON(r, &v)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}
