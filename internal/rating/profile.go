package rating

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Morzh777/stars-api/internal/logging"
)

// Star thresholds for achievements and rank progress
const (
	firstStepsStars = 100
	nextRankStars   = 1000
	starHunterStars = 1000
	legendStars     = 10000

	maxDailyActivity = 10
)

// Achievement is one earned or in-progress badge on the rating profile
type Achievement struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Earned      bool       `json:"earned"`
	EarnedAt    *time.Time `json:"earnedAt,omitempty"`
	Progress    *int       `json:"progress,omitempty"`
	Reward      int        `json:"reward"`
}

// ActivityStats are the derived activity counters on the rating profile.
// No activity history is persisted, so Streak and LongestStreak default to
// the current daily activity value.
type ActivityStats struct {
	Daily         int `json:"daily"`
	Weekly        int `json:"weekly"`
	Monthly       int `json:"monthly"`
	Total         int `json:"total"`
	Streak        int `json:"streak"`
	LongestStreak int `json:"longestStreak"`
}

// RatingProfile is the personal rating page payload
type RatingProfile struct {
	ID              uuid.UUID     `json:"id"`
	Name            string        `json:"name"`
	Stars           int           `json:"stars"`
	Rank            int           `json:"rank"`
	IsActive        bool          `json:"isActive"`
	DailyActivity   int           `json:"dailyActivity"`
	WeeklyActivity  int           `json:"weeklyActivity"`
	MonthlyActivity int           `json:"monthlyActivity"`
	TotalActivity   int           `json:"totalActivity"`
	JoinDate        string        `json:"joinDate"`
	Avatar          string        `json:"avatar,omitempty"`
	NextRankStars   int           `json:"nextRankStars"`
	RankProgress    int           `json:"rankProgress"`
	Achievements    []Achievement `json:"achievements"`
	ActivityStats   ActivityStats `json:"activityStats"`
}

// ProfileResult pairs the profile with the population counters it was
// computed against. Rank and TotalUsers use the same eligibility predicate.
type ProfileResult struct {
	Profile    RatingProfile `json:"profile"`
	GlobalRank int           `json:"globalRank"`
	TotalUsers int           `json:"totalUsers"`
}

// ProfileService assembles personal rating profiles.
//
// Unlike the card listing this path fails loud: the rank on a profile is
// bound to an identified user, and serving a default instead of the real
// value would be a correctness violation rather than a degraded experience.
type ProfileService struct {
	store    Store
	calc     *Calculator
	sessions SessionTracker
	logger   *logging.Logger
	now      func() time.Time // injectable clock for tests
}

func NewProfileService(store Store, calc *Calculator, sessions SessionTracker, logger *logging.Logger) *ProfileService {
	return &ProfileService{
		store:    store,
		calc:     calc,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// BuildProfile assembles the rating profile for one user. Returns
// ErrUserNotFound for unknown ids; store failures propagate.
func (s *ProfileService) BuildProfile(ctx context.Context, userID uuid.UUID) (*ProfileResult, error) {
	u, err := s.store.GetRatingUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	rank, err := s.calc.Rank(ctx, u.StarsCount, true)
	if err != nil {
		return nil, err
	}

	totalUsers, err := s.store.CountEligible(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to count users for profile: %w", err)
	}

	isActive := s.wasActiveToday(ctx, u)

	// Activity is derived from stars on every call, not persisted
	daily := 0
	if isActive {
		daily = min(maxDailyActivity, u.StarsCount/100+1)
	}
	weekly := daily * 7
	monthly := daily * 30
	total := u.StarsCount

	profile := RatingProfile{
		ID:              u.ID,
		Name:            u.Name,
		Stars:           u.StarsCount,
		Rank:            rank,
		IsActive:        isActive,
		DailyActivity:   daily,
		WeeklyActivity:  weekly,
		MonthlyActivity: monthly,
		TotalActivity:   total,
		JoinDate:        u.CreatedAt.Format("02.01.2006"),
		Avatar:          u.Image,
		NextRankStars:   max(0, nextRankStars-u.StarsCount),
		RankProgress:    min(100, u.StarsCount*100/nextRankStars),
		Achievements:    buildAchievements(u, daily),
		ActivityStats: ActivityStats{
			Daily:         daily,
			Weekly:        weekly,
			Monthly:       monthly,
			Total:         total,
			Streak:        daily,
			LongestStreak: daily,
		},
	}

	return &ProfileResult{
		Profile:    profile,
		GlobalRank: rank,
		TotalUsers: totalUsers,
	}, nil
}

// wasActiveToday checks whether the user had a session past local midnight
// or updated their profile today. Windows are calendar-boundary based, not
// rolling 24h.
func (s *ProfileService) wasActiveToday(ctx context.Context, u *RatingUser) bool {
	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if s.sessions != nil {
		expiry, err := s.sessions.LatestSessionExpiry(ctx, u.ID)
		if err != nil {
			// Activity flags are presentational; fall through to updated_at
			s.logger.Warn("failed to read latest session", "user_id", u.ID, "error", err.Error())
		} else if expiry.After(startOfDay) {
			return true
		}
	}

	return u.UpdatedAt.After(startOfDay)
}

func buildAchievements(u *RatingUser, daily int) []Achievement {
	stars := u.StarsCount
	masterProgress := min(30, daily*3)
	legendProgress := min(100, stars*100/legendStars)

	return []Achievement{
		{
			ID:          "first-steps",
			Name:        "Первые шаги",
			Description: "Получил первые 100 звезд",
			Icon:        "🌟",
			Earned:      stars >= firstStepsStars,
			EarnedAt:    earnedAt(stars >= firstStepsStars, u.CreatedAt),
			Reward:      50,
		},
		{
			ID:          "active-user",
			Name:        "Активный пользователь",
			Description: "7 дней активности подряд",
			Icon:        "🔥",
			Earned:      daily >= 5,
			Reward:      100,
		},
		{
			ID:          "star-hunter",
			Name:        "Звездный охотник",
			Description: "Собрал 1000 звезд",
			Icon:        "⭐",
			Earned:      stars >= starHunterStars,
			EarnedAt:    earnedAt(stars >= starHunterStars, u.CreatedAt),
			Reward:      200,
		},
		{
			ID:          "master-activity",
			Name:        "Мастер активности",
			Description: "30 дней активности подряд",
			Icon:        "🏆",
			Earned:      false,
			Progress:    &masterProgress,
			Reward:      500,
		},
		{
			ID:          "legend",
			Name:        "Легенда",
			Description: "Собрал 10000 звезд",
			Icon:        "👑",
			Earned:      stars >= legendStars,
			EarnedAt:    earnedAt(stars >= legendStars, u.CreatedAt),
			Progress:    &legendProgress,
			Reward:      1000,
		},
	}
}

func earnedAt(earned bool, at time.Time) *time.Time {
	if !earned {
		return nil
	}
	return &at
}
