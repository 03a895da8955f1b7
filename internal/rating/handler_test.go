package rating

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Morzh777/stars-api/internal/auth"
	"github.com/Morzh777/stars-api/internal/httputil"
	"github.com/Morzh777/stars-api/internal/logging"
)

func newTestHandler(store *fakeStore, sessions SessionTracker) *Handler {
	logger := logging.NewLogger(true)
	calc := NewCalculator(store)
	cards := NewCardService(store, calc, nil, logger)
	profiles := NewProfileService(store, calc, sessions, logger)
	profiles.now = func() time.Time { return profileNow }
	return NewHandler(cards, profiles)
}

func decodeListResponse(t *testing.T, rec *httptest.ResponseRecorder) ListUsersResponse {
	t.Helper()
	var resp ListUsersResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func decodeErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) httputil.ErrorResponse {
	t.Helper()
	var resp httputil.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestListUsersPagination(t *testing.T) {
	h := newTestHandler(cardFixtureStore(), &fakeSessions{})

	req := httptest.NewRequest(http.MethodGet, "/api/users?limit=2&orderBy=starsCount&orderDirection=desc", nil)
	rec := httptest.NewRecorder()
	h.ListUsers(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeListResponse(t, rec)

	require.Len(t, resp.Data, 2)
	assert.Equal(t, 1, resp.Data[0].GlobalRank)
	assert.Equal(t, 2, resp.Data[1].GlobalRank)

	require.NotNil(t, resp.Meta.Limit)
	assert.Equal(t, 2, *resp.Meta.Limit)
	assert.Equal(t, 0, resp.Meta.Offset)
	assert.Equal(t, 2, resp.Meta.Count)
	assert.Equal(t, 3, resp.Meta.TotalUsers)
	// A full page suggests another one exists
	assert.True(t, resp.Meta.HasMore)
}

func TestListUsersLastPage(t *testing.T) {
	h := newTestHandler(cardFixtureStore(), &fakeSessions{})

	req := httptest.NewRequest(http.MethodGet, "/api/users?limit=2&offset=2&orderBy=starsCount&orderDirection=desc", nil)
	rec := httptest.NewRecorder()
	h.ListUsers(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeListResponse(t, rec)

	require.Len(t, resp.Data, 1)
	assert.Equal(t, 3, resp.Data[0].GlobalRank)
	assert.Equal(t, 2, resp.Meta.Offset)
	assert.False(t, resp.Meta.HasMore)
}

func TestListUsersWithoutLimit(t *testing.T) {
	h := newTestHandler(cardFixtureStore(), &fakeSessions{})

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	h.ListUsers(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeListResponse(t, rec)

	assert.Len(t, resp.Data, 3)
	assert.Nil(t, resp.Meta.Limit)
	// Without a requested limit the window is never "full"
	assert.False(t, resp.Meta.HasMore)
}

func TestListUsersInvalidParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "zero limit", query: "limit=0"},
		{name: "negative limit", query: "limit=-5"},
		{name: "non-numeric limit", query: "limit=abc"},
		{name: "negative offset", query: "offset=-1"},
		{name: "unknown order field", query: "orderBy=email"},
		{name: "unknown order direction", query: "orderDirection=sideways"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(cardFixtureStore(), &fakeSessions{})

			req := httptest.NewRequest(http.MethodGet, "/api/users?"+tt.query, nil)
			rec := httptest.NewRecorder()
			h.ListUsers(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, httputil.CodeInvalidQueryParam, decodeErrorResponse(t, rec).Code)
		})
	}
}

func TestListUsersEmptyPopulation(t *testing.T) {
	h := newTestHandler(&fakeStore{}, &fakeSessions{})

	req := httptest.NewRequest(http.MethodGet, "/api/users?limit=10", nil)
	rec := httptest.NewRecorder()
	h.ListUsers(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeListResponse(t, rec)

	assert.Empty(t, resp.Data)
	assert.Zero(t, resp.Meta.TotalUsers)
	assert.Zero(t, resp.Meta.Count)
	assert.False(t, resp.Meta.HasMore)
}

func TestListUsersOffsetPastPopulation(t *testing.T) {
	h := newTestHandler(cardFixtureStore(), &fakeSessions{})

	req := httptest.NewRequest(http.MethodGet, "/api/users?limit=2&offset=10", nil)
	rec := httptest.NewRecorder()
	h.ListUsers(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeListResponse(t, rec)

	assert.Empty(t, resp.Data)
	// The window is past the population but the population still counts
	assert.Equal(t, 3, resp.Meta.TotalUsers)
	assert.Equal(t, 10, resp.Meta.Offset)
	assert.False(t, resp.Meta.HasMore)
}

func TestListUsersStoreFailure(t *testing.T) {
	store := cardFixtureStore()
	store.failSelect = true
	h := newTestHandler(store, &fakeSessions{})

	req := httptest.NewRequest(http.MethodGet, "/api/users?limit=2", nil)
	rec := httptest.NewRecorder()
	h.ListUsers(rec, req)

	// The listing degrades to an empty page instead of an error
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeListResponse(t, rec)
	assert.Empty(t, resp.Data)
	assert.Zero(t, resp.Meta.TotalUsers)
	assert.False(t, resp.Meta.HasMore)
}

func TestLoginCardsEndpoint(t *testing.T) {
	h := newTestHandler(cardFixtureStore(), &fakeSessions{})

	req := httptest.NewRequest(http.MethodGet, "/api/login-cards", nil)
	rec := httptest.NewRecorder()
	h.LoginCards(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var cards []UserCard
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&cards))
	assert.Len(t, cards, 3)
}

func TestRating(t *testing.T) {
	store, userID := profileFixture()
	sessions := &fakeSessions{expiries: map[uuid.UUID]time.Time{
		userID: profileNow.Add(time.Hour),
	}}
	h := newTestHandler(store, sessions)

	req := httptest.NewRequest(http.MethodGet, "/api/rating", nil)
	req = req.WithContext(context.WithValue(req.Context(), auth.UserIDContextKey, userID))
	rec := httptest.NewRecorder()
	h.Rating(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result ProfileResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, 2, result.GlobalRank)
	assert.Equal(t, 2, result.TotalUsers)
	assert.Equal(t, userID, result.Profile.ID)
	assert.True(t, result.Profile.IsActive)
}

func TestRatingWithoutAuth(t *testing.T) {
	store, _ := profileFixture()
	h := newTestHandler(store, &fakeSessions{})

	req := httptest.NewRequest(http.MethodGet, "/api/rating", nil)
	rec := httptest.NewRecorder()
	h.Rating(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, httputil.CodeMissingAuth, decodeErrorResponse(t, rec).Code)
}

func TestRatingUnknownUser(t *testing.T) {
	store, _ := profileFixture()
	h := newTestHandler(store, &fakeSessions{})

	req := httptest.NewRequest(http.MethodGet, "/api/rating", nil)
	req = req.WithContext(context.WithValue(req.Context(), auth.UserIDContextKey, uuid.New()))
	rec := httptest.NewRecorder()
	h.Rating(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, httputil.CodeUserNotFound, decodeErrorResponse(t, rec).Code)
}

func TestRatingStoreFailure(t *testing.T) {
	store, userID := profileFixture()
	store.failCountMore = true
	h := newTestHandler(store, &fakeSessions{})

	req := httptest.NewRequest(http.MethodGet, "/api/rating", nil)
	req = req.WithContext(context.WithValue(req.Context(), auth.UserIDContextKey, userID))
	rec := httptest.NewRecorder()
	h.Rating(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, httputil.CodeInternalError, decodeErrorResponse(t, rec).Code)
}
