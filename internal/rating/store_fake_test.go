package rating

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
)

var errStoreDown = errors.New("store unreachable")

// seedRow is one in-memory user for fake store tests
type seedRow struct {
	id         uuid.UUID
	name       string
	email      string
	image      string
	stars      int
	maxStars   int
	active     bool
	createdAt  time.Time
	updatedAt  time.Time
	globalRank int
}

// fakeStore implements Store over an in-memory slice, with per-call
// failure injection
type fakeStore struct {
	rows []seedRow

	failSelect    bool
	failCount     bool
	failCountMore bool
	failGet       bool

	countMoreCalls int
}

func (f *fakeStore) eligible(activeOnly bool) []seedRow {
	out := make([]seedRow, 0, len(f.rows))
	for _, r := range f.rows {
		if !activeOnly || r.active {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeStore) SelectCardPage(_ context.Context, opts ListOptions) ([]CardRow, error) {
	if f.failSelect {
		return nil, errStoreDown
	}

	rows := f.eligible(opts.ActiveOnly)

	sort.SliceStable(rows, func(i, j int) bool {
		var less bool
		switch opts.OrderBy {
		case OrderByStars:
			less = rows[i].stars < rows[j].stars
		case OrderByGlobalRank:
			less = rows[i].globalRank < rows[j].globalRank
		default:
			less = rows[i].createdAt.Before(rows[j].createdAt)
		}
		if opts.OrderDirection == OrderDesc {
			return !less && !equalKey(rows[i], rows[j], opts.OrderBy)
		}
		return less
	})

	if opts.Offset >= len(rows) {
		return []CardRow{}, nil
	}
	rows = rows[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(rows) {
		rows = rows[:opts.Limit]
	}

	out := make([]CardRow, len(rows))
	for i, r := range rows {
		out[i] = CardRow{
			Name:       r.name,
			Email:      r.email,
			Image:      r.image,
			StarsCount: r.stars,
			MaxStars:   r.maxStars,
		}
	}
	return out, nil
}

func equalKey(a, b seedRow, field OrderField) bool {
	switch field {
	case OrderByStars:
		return a.stars == b.stars
	case OrderByGlobalRank:
		return a.globalRank == b.globalRank
	default:
		return a.createdAt.Equal(b.createdAt)
	}
}

func (f *fakeStore) CountEligible(_ context.Context, activeOnly bool) (int, error) {
	if f.failCount {
		return 0, errStoreDown
	}
	return len(f.eligible(activeOnly)), nil
}

func (f *fakeStore) CountWithMoreStars(_ context.Context, stars int, activeOnly bool) (int, error) {
	f.countMoreCalls++
	if f.failCountMore {
		return 0, errStoreDown
	}

	count := 0
	for _, r := range f.eligible(activeOnly) {
		if r.stars > stars {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) GetRatingUser(_ context.Context, id uuid.UUID) (*RatingUser, error) {
	if f.failGet {
		return nil, errStoreDown
	}

	for _, r := range f.rows {
		if r.id == id {
			return &RatingUser{
				ID:         r.id,
				Name:       r.name,
				Image:      r.image,
				StarsCount: r.stars,
				IsActive:   r.active,
				CreatedAt:  r.createdAt,
				UpdatedAt:  r.updatedAt,
			}, nil
		}
	}
	return nil, ErrUserNotFound
}

// fakeSessions implements SessionTracker
type fakeSessions struct {
	expiries map[uuid.UUID]time.Time
	fail     bool
}

func (f *fakeSessions) LatestSessionExpiry(_ context.Context, userID uuid.UUID) (time.Time, error) {
	if f.fail {
		return time.Time{}, errStoreDown
	}
	return f.expiries[userID], nil
}
