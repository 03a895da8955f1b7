package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPasetoKey = []byte("0123456789abcdef0123456789abcdef")

func newTestPasetoService(t *testing.T) *PasetoService {
	t.Helper()
	svc, err := NewPasetoService(testPasetoKey)
	require.NoError(t, err)
	return svc
}

func TestNewPasetoServiceKeyLength(t *testing.T) {
	_, err := NewPasetoService([]byte("too-short"))
	require.Error(t, err)

	_, err = NewPasetoService(testPasetoKey)
	require.NoError(t, err)
}

func TestPasetoRoundTrip(t *testing.T) {
	svc := newTestPasetoService(t)
	userID := uuid.New()

	token, err := svc.CreateToken(userID, "anna@example.com", 15*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "anna@example.com", claims.Email)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt))
}

func TestPasetoExpiredToken(t *testing.T) {
	svc := newTestPasetoService(t)

	token, err := svc.CreateToken(uuid.New(), "anna@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestPasetoWrongKey(t *testing.T) {
	svc := newTestPasetoService(t)
	other, err := NewPasetoService([]byte("fedcba9876543210fedcba9876543210"))
	require.NoError(t, err)

	token, err := svc.CreateToken(uuid.New(), "anna@example.com", 15*time.Minute)
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasetoGarbageToken(t *testing.T) {
	svc := newTestPasetoService(t)

	_, err := svc.VerifyToken("v4.local.not-a-real-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
