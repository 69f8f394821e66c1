package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSONError(t *testing.T) {
	tests := []struct {
		name         string
		code         string
		message      string
		status       int
		expectedBody map[string]any
	}{
		{
			name:    "writes not found error",
			code:    ErrorCodeNotFound,
			message: "route not found",
			status:  http.StatusNotFound,
			expectedBody: map[string]any{
				"error":   "not_found",
				"message": "route not found",
			},
		},
		{
			name:    "writes token expired error",
			code:    ErrorCodeTokenExpired,
			message: "token has expired",
			status:  http.StatusUnauthorized,
			expectedBody: map[string]any{
				"error":   "token_expired",
				"message": "token has expired",
			},
		},
		{
			name:    "writes method not allowed error",
			code:    ErrorCodeMethodNotAllowed,
			message: "method not allowed",
			status:  http.StatusMethodNotAllowed,
			expectedBody: map[string]any{
				"error":   "method_not_allowed",
				"message": "method not allowed",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			WriteJSONError(w, tt.code, tt.message, tt.status)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var response map[string]any
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			assert.Equal(t, tt.expectedBody, response)
		})
	}
}
