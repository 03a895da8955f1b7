package rating

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when a rating lookup targets an unknown user
var ErrUserNotFound = errors.New("user not found")

// CardRow is the projection of a user row needed to build a leaderboard card
type CardRow struct {
	Name        string
	Email       string
	Image       string
	Description string
	Tags        string
	StarsCount  int
	MaxStars    int
}

// RatingUser is the projection of a user row needed to build a rating profile
type RatingUser struct {
	ID         uuid.UUID
	Name       string
	Image      string
	StarsCount int
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Store is the read-side contract against the user table.
// Implemented by BunStore in production and by fakes in tests.
type Store interface {
	// SelectCardPage returns the ordered, offset window of card rows.
	SelectCardPage(ctx context.Context, opts ListOptions) ([]CardRow, error)
	// CountEligible returns the number of users matching the eligibility filter.
	CountEligible(ctx context.Context, activeOnly bool) (int, error)
	// CountWithMoreStars counts users with strictly more stars than the given
	// score, scoped to the same eligibility filter.
	CountWithMoreStars(ctx context.Context, stars int, activeOnly bool) (int, error)
	// GetRatingUser returns the profile projection for one user, or
	// ErrUserNotFound.
	GetRatingUser(ctx context.Context, id uuid.UUID) (*RatingUser, error)
}

// SessionTracker reports the expiry of a user's most recent session.
// A zero time means no recorded session.
type SessionTracker interface {
	LatestSessionExpiry(ctx context.Context, userID uuid.UUID) (time.Time, error)
}
