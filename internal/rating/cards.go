package rating

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Morzh777/stars-api/internal/logging"
)

const (
	loginCardsCount    = 3
	loginCardsCacheKey = "login_cards"
	loginCardsCacheTTL = 30 * time.Second
)

// UserCard is one leaderboard entry as served to the UI
type UserCard struct {
	Name        string `json:"name"`
	Username    string `json:"username"`
	Avatar      string `json:"avatar"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
	StarsCount  int    `json:"starsCount"`
	MaxStars    int    `json:"maxStars"`
	GlobalRank  int    `json:"globalRank"`
}

// CardPage is the result of one listing request
type CardPage struct {
	Cards      []UserCard
	TotalUsers int
}

// CardService builds ranked card pages for the leaderboard
type CardService struct {
	store  Store
	calc   *Calculator
	cache  *redis.Client // nil disables login-card caching
	logger *logging.Logger
}

func NewCardService(store Store, calc *Calculator, cache *redis.Client, logger *logging.Logger) *CardService {
	return &CardService{
		store:  store,
		calc:   calc,
		cache:  cache,
		logger: logger,
	}
}

// ListCards fetches one ordered window of user cards plus the total eligible
// count and attaches a global rank to every row.
//
// Rank attachment branches on the sort order: when ordering by stars
// descending, page position already equals score position and rank is
// offset+index+1; any other order pays one count query per row through the
// Calculator. Under tied scores the two derivations differ (ordinal vs.
// competition rank); the descending listing keeps the ordinal shortcut.
//
// Store failures degrade to an empty page with a zero total. The leaderboard
// renders an empty state instead of an error page; this is deliberate and
// differs from the fail-loud profile path.
func (s *CardService) ListCards(ctx context.Context, opts ListOptions) CardPage {
	rows, err := s.store.SelectCardPage(ctx, opts)
	if err != nil {
		s.logger.Error("failed to fetch user cards", "error", err.Error())
		return CardPage{Cards: []UserCard{}}
	}

	totalUsers, err := s.store.CountEligible(ctx, opts.ActiveOnly)
	if err != nil {
		s.logger.Error("failed to count users", "error", err.Error())
		return CardPage{Cards: []UserCard{}}
	}

	cards := make([]UserCard, len(rows))
	for i, row := range rows {
		var globalRank int
		if opts.ranksArithmetically() {
			globalRank = opts.Offset + i + 1
		} else {
			globalRank, err = s.calc.Rank(ctx, row.StarsCount, opts.ActiveOnly)
			if err != nil {
				s.logger.Error("failed to rank user card", "error", err.Error())
				return CardPage{Cards: []UserCard{}}
			}
		}

		cards[i] = buildCard(row, globalRank)
	}

	return CardPage{Cards: cards, TotalUsers: totalUsers}
}

// LoginCards returns the newest users as showcase cards for the login page.
// Results are cached in Redis for a short period; on store failure a static
// set of demo cards is served so the page never renders empty.
func (s *CardService) LoginCards(ctx context.Context) []UserCard {
	if cards, ok := s.cachedLoginCards(ctx); ok {
		return cards
	}

	opts := ListOptions{
		Limit:          loginCardsCount,
		OrderBy:        OrderByCreatedAt,
		OrderDirection: OrderDesc,
	}

	rows, err := s.store.SelectCardPage(ctx, opts)
	if err != nil {
		s.logger.Error("failed to fetch login cards, serving mocks", "error", err.Error())
		return mockLoginCards()
	}

	cards := make([]UserCard, len(rows))
	for i, row := range rows {
		rank, err := s.calc.Rank(ctx, row.StarsCount, false)
		if err != nil {
			s.logger.Error("failed to rank login card, serving mocks", "error", err.Error())
			return mockLoginCards()
		}
		cards[i] = buildCard(row, rank)
	}

	s.storeLoginCards(ctx, cards)

	return cards
}

func (s *CardService) cachedLoginCards(ctx context.Context) ([]UserCard, bool) {
	if s.cache == nil {
		return nil, false
	}

	payload, err := s.cache.Get(ctx, loginCardsCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("failed to read login cards cache", "error", err.Error())
		}
		return nil, false
	}

	var cards []UserCard
	if err := json.Unmarshal(payload, &cards); err != nil {
		s.logger.Warn("failed to decode login cards cache", "error", err.Error())
		return nil, false
	}

	return cards, true
}

func (s *CardService) storeLoginCards(ctx context.Context, cards []UserCard) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(cards)
	if err != nil {
		s.logger.Warn("failed to encode login cards cache", "error", err.Error())
		return
	}

	if err := s.cache.Set(ctx, loginCardsCacheKey, payload, loginCardsCacheTTL).Err(); err != nil {
		s.logger.Warn("failed to write login cards cache", "error", err.Error())
	}
}

func buildCard(row CardRow, globalRank int) UserCard {
	return UserCard{
		Name:        resolveCardName(row.Name),
		Username:    resolveCardUsername(row.Email),
		Avatar:      resolveCardAvatar(row.Image, row.Name),
		Description: resolveCardDescription(row.Description),
		Tags:        resolveCardTags(row.Tags),
		StarsCount:  row.StarsCount,
		MaxStars:    resolveMaxStars(row.MaxStars),
		GlobalRank:  globalRank,
	}
}

// mockLoginCards is the static showcase served when the store is unreachable
func mockLoginCards() []UserCard {
	return []UserCard{
		{
			Name:        "Наташа Рачева",
			Username:    "natasha_racheva",
			Avatar:      "https://heroui.com/avatars/avatar-1.png",
			Description: "Главный специалист ПИК реновация. Улучшаю городскую среду! 🏗️",
			Tags:        "#ПИК #Реновация #Инженер ⭐",
			StarsCount:  1500,
			MaxStars:    5000,
			GlobalRank:  12,
		},
		{
			Name:        "Алексей Морозов",
			Username:    "alex_morozov",
			Avatar:      "https://i.pravatar.cc/150?u=a042581f4e29026024d",
			Description: "Senior Frontend Developer в Яндексе. Создаю крутые интерфейсы! 💻",
			Tags:        "#Frontend #React #TypeScript ⚡",
			StarsCount:  2800,
			MaxStars:    5000,
			GlobalRank:  5,
		},
		{
			Name:        "Мария Петрова",
			Username:    "maria_petrova",
			Avatar:      "https://heroui.com/avatars/avatar-3.png",
			Description: "UX/UI Designer в Тинькофф. Делаю продукты удобными и красивыми! 🎨",
			Tags:        "#Design #UX #Figma 🎯",
			StarsCount:  2200,
			MaxStars:    5000,
			GlobalRank:  8,
		},
	}
}
