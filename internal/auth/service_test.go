package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "latin name", input: "Anna Smith"},
		{name: "cyrillic name", input: "Анна Петрова"},
		{name: "minimum length", input: "Ян"},
		{name: "too short", input: "A", wantErr: ErrNameInvalid},
		{name: "too long", input: strings.Repeat("а", 31), wantErr: ErrNameInvalid},
		{name: "digits rejected", input: "Anna2", wantErr: ErrNameInvalid},
		{name: "punctuation rejected", input: "Anna!", wantErr: ErrNameInvalid},
		{name: "empty", input: "", wantErr: ErrNameInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateName(tt.input)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "valid", input: "anna@example.com"},
		{name: "empty", input: "", wantErr: ErrEmailRequired},
		{name: "no at sign", input: "anna.example.com", wantErr: ErrInvalidEmailFormat},
		{name: "no domain", input: "anna@", wantErr: ErrInvalidEmailFormat},
		{
			name:    "over length limit",
			input:   strings.Repeat("a", 250) + "@x.com",
			wantErr: ErrInvalidEmailFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateEmail(tt.input)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "valid", input: "Password1"},
		{name: "empty", input: "", wantErr: ErrPasswordRequired},
		{name: "too short", input: "Pass1", wantErr: ErrPasswordTooShort},
		{name: "too long", input: "P1" + strings.Repeat("a", 49), wantErr: ErrPasswordTooLong},
		{name: "no uppercase", input: "password1", wantErr: ErrPasswordTooWeak},
		{name: "no lowercase", input: "PASSWORD1", wantErr: ErrPasswordTooWeak},
		{name: "no digit", input: "Passwordx", wantErr: ErrPasswordTooWeak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePassword(tt.input)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGenerateRandomToken(t *testing.T) {
	a, err := generateRandomToken()
	require.NoError(t, err)
	b, err := generateRandomToken()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, a, 44) // 32 bytes base64url encoded
}

func TestRefreshTokenState(t *testing.T) {
	now := time.Now()
	revoked := now.Add(-time.Minute)

	tests := []struct {
		name  string
		token RefreshToken
		valid bool
	}{
		{
			name:  "live token",
			token: RefreshToken{UserID: uuid.New(), ExpiresAt: now.Add(time.Hour)},
			valid: true,
		},
		{
			name:  "expired token",
			token: RefreshToken{UserID: uuid.New(), ExpiresAt: now.Add(-time.Hour)},
			valid: false,
		},
		{
			name:  "revoked token",
			token: RefreshToken{UserID: uuid.New(), ExpiresAt: now.Add(time.Hour), RevokedAt: &revoked},
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.token.IsValid())
		})
	}
}

func TestHashTokenIsStable(t *testing.T) {
	assert.Equal(t, hashToken("secret"), hashToken("secret"))
	assert.NotEqual(t, hashToken("secret"), hashToken("Secret"))
	assert.Len(t, hashToken("secret"), 64) // hex SHA-256
}
