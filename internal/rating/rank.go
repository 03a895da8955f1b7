package rating

import (
	"context"
	"fmt"
)

// Calculator derives a user's global rank from the number of eligible users
// with a strictly greater stars count. Equal scores share a rank, which makes
// rank sequences non-contiguous around ties; that is the intended competition
// ranking, not a bug.
type Calculator struct {
	store Store
}

func NewCalculator(store Store) *Calculator {
	return &Calculator{store: store}
}

// Rank returns count(eligible users with more stars) + 1. Errors from the
// store propagate: a failed count must never be served as rank 1.
func (c *Calculator) Rank(ctx context.Context, stars int, activeOnly bool) (int, error) {
	higher, err := c.store.CountWithMoreStars(ctx, stars, activeOnly)
	if err != nil {
		return 0, fmt.Errorf("failed to compute rank: %w", err)
	}

	return higher + 1, nil
}
