package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authProbeHandler(t *testing.T, wantID uuid.UUID, wantEmail string, called *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true

		gotID, ok := GetUserIDFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, wantID, gotID)

		gotEmail, ok := GetUserEmailFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, wantEmail, gotEmail)

		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuthBearerToken(t *testing.T) {
	svc := newTestPasetoService(t)
	userID := uuid.New()

	token, err := svc.CreateToken(userID, "anna@example.com", 15*time.Minute)
	require.NoError(t, err)

	called := false
	handler := NewMiddleware(svc).RequireAuth(authProbeHandler(t, userID, "anna@example.com", &called))

	req := httptest.NewRequest(http.MethodGet, "/api/rating", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestRequireAuthCookieFallback(t *testing.T) {
	svc := newTestPasetoService(t)
	userID := uuid.New()

	token, err := svc.CreateToken(userID, "anna@example.com", 15*time.Minute)
	require.NoError(t, err)

	called := false
	handler := NewMiddleware(svc).RequireAuth(authProbeHandler(t, userID, "anna@example.com", &called))

	req := httptest.NewRequest(http.MethodGet, "/api/rating", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestRequireAuthRejections(t *testing.T) {
	svc := newTestPasetoService(t)

	expired, err := svc.CreateToken(uuid.New(), "anna@example.com", -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name     string
		prepare  func(r *http.Request)
		wantCode string
	}{
		{
			name:     "missing credentials",
			prepare:  func(r *http.Request) {},
			wantCode: "missing_auth",
		},
		{
			name: "malformed header",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Token abc")
			},
			wantCode: "invalid_auth_header",
		},
		{
			name: "garbage token",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer not-a-token")
			},
			wantCode: "invalid_token",
		},
		{
			name: "expired token",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+expired)
			},
			wantCode: "token_expired",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := NewMiddleware(svc).RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/rating", nil)
			tt.prepare(req)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantCode)
			assert.False(t, called)
		})
	}
}
