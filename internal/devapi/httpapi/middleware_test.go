package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VinkoRobi2/CameYa-sub001/internal/devapi/auth"
)

func TestRequestID(t *testing.T) {
	ts := newTestServer(t, 0)

	rec, _ := ts.call(t, http.MethodGet, "/health", nil, "")
	assert.Len(t, rec.Header().Get(requestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestRequireAuth(t *testing.T) {
	ts := newTestServer(t, 0)

	verify, err := ts.signer.GenerateToken(auth.Claims{Role: "estudiante", Purpose: auth.PurposeVerify}, time.Hour)
	require.NoError(t, err)
	expired, err := ts.signer.GenerateToken(auth.Claims{Role: "estudiante", Purpose: auth.PurposeSession}, -time.Minute)
	require.NoError(t, err)
	foreign, err := auth.NewSigner("other").GenerateToken(auth.Claims{Role: "estudiante", Purpose: auth.PurposeSession}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"missing", "", "Token no proporcionado"},
		{"not bearer", "Basic abc", "Token no proporcionado"},
		{"garbage", "Bearer abc", "Token inválido o expirado"},
		{"verify token", "Bearer " + verify, "Token inválido o expirado"},
		{"expired", "Bearer " + expired, "Token inválido o expirado"},
		{"other key", "Bearer " + foreign, "Token inválido o expirado"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected/todos_trabajos", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			ts.Handler().ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.want)
		})
	}
}
