package rating

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/Morzh777/stars-api/internal/database"
)

// BunStore implements Store against Postgres via Bun
type BunStore struct {
	db *bun.DB
}

func NewBunStore(db *bun.DB) *BunStore {
	return &BunStore{db: db}
}

// SelectCardPage returns the ordered, offset window of card rows.
// Options must be validated by the caller; the order column comes from the
// OrderField enum, never from raw user input.
func (s *BunStore) SelectCardPage(ctx context.Context, opts ListOptions) ([]CardRow, error) {
	var dbUsers []database.User

	q := s.db.NewSelect().
		Model(&dbUsers).
		Column("name", "email", "image", "description", "tags", "stars_count", "max_stars").
		Order(fmt.Sprintf("%s %s", opts.OrderBy.Column(), orderKeyword(opts.OrderDirection))).
		Offset(opts.Offset)

	if opts.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to select card page: %w", err)
	}

	rows := make([]CardRow, len(dbUsers))
	for i, dbu := range dbUsers {
		rows[i] = CardRow{
			Name:        dbu.Name,
			Email:       dbu.Email,
			Image:       dbu.Image,
			Description: dbu.Description,
			Tags:        dbu.Tags,
			StarsCount:  dbu.StarsCount,
			MaxStars:    dbu.MaxStars,
		}
	}

	return rows, nil
}

// CountEligible returns the number of users matching the eligibility filter
func (s *BunStore) CountEligible(ctx context.Context, activeOnly bool) (int, error) {
	q := s.db.NewSelect().Model((*database.User)(nil))
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	count, err := q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count eligible users: %w", err)
	}

	return count, nil
}

// CountWithMoreStars counts users with strictly more stars than the given score
func (s *BunStore) CountWithMoreStars(ctx context.Context, stars int, activeOnly bool) (int, error) {
	q := s.db.NewSelect().
		Model((*database.User)(nil)).
		Where("stars_count > ?", stars)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	count, err := q.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count higher-scored users: %w", err)
	}

	return count, nil
}

// GetRatingUser returns the profile projection for one user
func (s *BunStore) GetRatingUser(ctx context.Context, id uuid.UUID) (*RatingUser, error) {
	dbUser := new(database.User)
	err := s.db.NewSelect().
		Model(dbUser).
		Column("id", "name", "image", "stars_count", "is_active", "created_at", "updated_at").
		Where("id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get rating user: %w", err)
	}

	return &RatingUser{
		ID:         dbUser.ID,
		Name:       dbUser.Name,
		Image:      dbUser.Image,
		StarsCount: dbUser.StarsCount,
		IsActive:   dbUser.IsActive,
		CreatedAt:  dbUser.CreatedAt,
		UpdatedAt:  dbUser.UpdatedAt,
	}, nil
}

func orderKeyword(d OrderDirection) string {
	if d == OrderAsc {
		return "ASC"
	}
	return "DESC"
}
