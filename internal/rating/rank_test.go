package rating

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankFixtureStore() *fakeStore {
	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	return &fakeStore{rows: []seedRow{
		{id: uuid.New(), name: "A", email: "a@example.com", stars: 500, maxStars: 5000, active: true, createdAt: base},
		{id: uuid.New(), name: "B", email: "b@example.com", stars: 500, maxStars: 5000, active: true, createdAt: base.Add(time.Hour)},
		{id: uuid.New(), name: "C", email: "c@example.com", stars: 100, maxStars: 5000, active: true, createdAt: base.Add(2 * time.Hour)},
		{id: uuid.New(), name: "D", email: "d@example.com", stars: 900, maxStars: 5000, active: false, createdAt: base.Add(3 * time.Hour)},
	}}
}

func TestCalculatorRank(t *testing.T) {
	calc := NewCalculator(rankFixtureStore())
	ctx := context.Background()

	tests := []struct {
		name       string
		stars      int
		activeOnly bool
		want       int
	}{
		{name: "tied top scores share rank 1", stars: 500, activeOnly: true, want: 1},
		{name: "rank skips past a tie", stars: 100, activeOnly: true, want: 3},
		{name: "inactive users count when eligibility is off", stars: 500, activeOnly: false, want: 2},
		{name: "above everyone", stars: 1000, activeOnly: true, want: 1},
		{name: "zero stars", stars: 0, activeOnly: true, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.Rank(ctx, tt.stars, tt.activeOnly)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculatorRankStoreError(t *testing.T) {
	store := rankFixtureStore()
	store.failCountMore = true
	calc := NewCalculator(store)

	got, err := calc.Rank(context.Background(), 500, true)
	require.ErrorIs(t, err, errStoreDown)
	assert.Zero(t, got)
}
