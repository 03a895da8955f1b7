package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisRepository handles refresh token persistence in Redis. It also tracks
// the latest session expiry per user, which the rating profile reads as an
// activity signal.
type RedisRepository struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func tokenKey(tokenHash string) string {
	return fmt.Sprintf("refresh_token:%s", tokenHash)
}

func revokedKey(tokenHash string) string {
	return fmt.Sprintf("refresh_token:revoked:%s", tokenHash)
}

func userTokensKey(userID uuid.UUID) string {
	return fmt.Sprintf("user_tokens:%s", userID.String())
}

func sessionExpiryKey(userID uuid.UUID) string {
	return fmt.Sprintf("user_session_exp:%s", userID.String())
}

// StoreRefreshToken stores a refresh token with TTL and records the session
// expiry for the user
func (r *RedisRepository) StoreRefreshToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	tokenHash := hashToken(token)

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return fmt.Errorf("token expiration time is in the past")
	}

	pipe := r.client.Pipeline()

	pipe.HSet(ctx, tokenKey(tokenHash), map[string]interface{}{
		"user_id":    userID.String(),
		"expires_at": expiresAt.Unix(),
		"created_at": time.Now().Unix(),
	})
	pipe.Expire(ctx, tokenKey(tokenHash), ttl)

	// Track this user's token set (for revoke-all) with the same TTL
	pipe.SAdd(ctx, userTokensKey(userID), tokenHash)
	pipe.Expire(ctx, userTokensKey(userID), ttl)

	// Latest session expiry, read by the rating profile activity check
	pipe.Set(ctx, sessionExpiryKey(userID), expiresAt.Unix(), ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	return nil
}

// GetRefreshToken retrieves a refresh token by its hash
func (r *RedisRepository) GetRefreshToken(ctx context.Context, token string) (*RefreshToken, error) {
	tokenHash := hashToken(token)

	revoked, err := r.client.Exists(ctx, revokedKey(tokenHash)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to check revocation: %w", err)
	}
	if revoked > 0 {
		return nil, ErrRefreshTokenRevoked
	}

	data, err := r.client.HGetAll(ctx, tokenKey(tokenHash)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrRefreshTokenNotFound
	}

	userID, err := uuid.Parse(data["user_id"])
	if err != nil {
		return nil, ErrInvalidToken
	}

	expiresAtUnix, _ := strconv.ParseInt(data["expires_at"], 10, 64)
	expiresAt := time.Unix(expiresAtUnix, 0)
	if time.Now().After(expiresAt) {
		return nil, ErrRefreshTokenExpired
	}

	createdAtUnix, _ := strconv.ParseInt(data["created_at"], 10, 64)

	return &RefreshToken{
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Unix(createdAtUnix, 0),
	}, nil
}

// RevokeRefreshToken marks a refresh token as revoked
func (r *RedisRepository) RevokeRefreshToken(ctx context.Context, token string) error {
	tokenHash := hashToken(token)

	exists, err := r.client.Exists(ctx, tokenKey(tokenHash)).Result()
	if err != nil {
		return fmt.Errorf("failed to check token existence: %w", err)
	}
	if exists == 0 {
		return ErrRefreshTokenNotFound
	}

	// Revocation marker lives as long as the token itself would have
	ttl, err := r.client.TTL(ctx, tokenKey(tokenHash)).Result()
	if err != nil {
		return fmt.Errorf("failed to get token TTL: %w", err)
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}

	if err := r.client.Set(ctx, revokedKey(tokenHash), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return nil
}

// RevokeAllUserTokens revokes every refresh token of a user
func (r *RedisRepository) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	tokenHashes, err := r.client.SMembers(ctx, userTokensKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("failed to get user tokens: %w", err)
	}
	if len(tokenHashes) == 0 {
		return nil
	}

	pipe := r.client.Pipeline()
	for _, tokenHash := range tokenHashes {
		ttl, _ := r.client.TTL(ctx, tokenKey(tokenHash)).Result()
		if ttl <= 0 {
			ttl = 7 * 24 * time.Hour
		}
		pipe.Set(ctx, revokedKey(tokenHash), "1", ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to revoke all user tokens: %w", err)
	}

	return nil
}

// LatestSessionExpiry returns the expiry of the user's most recent refresh
// token, or the zero time when none is recorded. Implements
// rating.SessionTracker.
func (r *RedisRepository) LatestSessionExpiry(ctx context.Context, userID uuid.UUID) (time.Time, error) {
	raw, err := r.client.Get(ctx, sessionExpiryKey(userID)).Result()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get session expiry: %w", err)
	}

	expiresAtUnix, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse session expiry: %w", err)
	}

	return time.Unix(expiresAtUnix, 0), nil
}
