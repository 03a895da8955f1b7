package rating

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Morzh777/stars-api/internal/auth"
	"github.com/Morzh777/stars-api/internal/httputil"
	"github.com/Morzh777/stars-api/internal/logging"
)

// Handler contains HTTP handlers for the leaderboard and rating endpoints
type Handler struct {
	cards    *CardService
	profiles *ProfileService
}

func NewHandler(cards *CardService, profiles *ProfileService) *Handler {
	return &Handler{
		cards:    cards,
		profiles: profiles,
	}
}

// ListMeta is the pagination metadata of the user listing
type ListMeta struct {
	Limit      *int `json:"limit,omitempty"`
	Offset     int  `json:"offset"`
	Count      int  `json:"count"`
	TotalUsers int  `json:"totalUsers"`
	HasMore    bool `json:"hasMore"`
}

// ListUsersResponse is the user listing envelope
type ListUsersResponse struct {
	Data []UserCard `json:"data"`
	Meta ListMeta   `json:"meta"`
}

// ListUsers handles the paginated leaderboard listing
// @Summary      List user cards
// @Description  Paginated, ordered window of user cards with global ranks attached
// @Tags         rating
// @Produce      json
// @Param        limit query int false "Page size (positive integer; omit for no limit)"
// @Param        offset query int false "Window offset (default 0)"
// @Param        orderBy query string false "createdAt | starsCount | globalRank (default createdAt)"
// @Param        orderDirection query string false "asc | desc (default desc)"
// @Param        activeOnly query bool false "Filter to active users (default true)"
// @Success      200 {object} ListUsersResponse
// @Failure      400 {object} httputil.ErrorResponse "Invalid query parameter"
// @Router       /api/users [get]
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	opts, limitSet, err := parseListOptions(r)
	if err != nil {
		logger.Warn("invalid user listing request", "error", err.Error())
		httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeInvalidQueryParam, http.StatusBadRequest)
		return
	}

	page := h.cards.ListCards(r.Context(), opts)

	// hasMore approximates: a full page suggests another one exists
	hasMore := limitSet && len(page.Cards) == opts.Limit

	meta := ListMeta{
		Offset:     opts.Offset,
		Count:      len(page.Cards),
		TotalUsers: page.TotalUsers,
		HasMore:    hasMore,
	}
	if limitSet {
		meta.Limit = &opts.Limit
	}

	httputil.RespondJSON(w, ListUsersResponse{Data: page.Cards, Meta: meta}, http.StatusOK)
}

// LoginCards handles the login page showcase cards
// @Summary      Login showcase cards
// @Description  Three newest user cards; serves static demo cards when the store is unavailable
// @Tags         rating
// @Produce      json
// @Success      200 {array} UserCard
// @Router       /api/login-cards [get]
func (h *Handler) LoginCards(w http.ResponseWriter, r *http.Request) {
	cards := h.cards.LoginCards(r.Context())
	httputil.RespondJSON(w, cards, http.StatusOK)
}

// Rating handles the personal rating profile
// @Summary      Personal rating profile
// @Description  Rank, activity metrics and achievements for the authenticated user
// @Tags         rating
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} ProfileResult
// @Failure      401 {object} httputil.ErrorResponse "Unauthorized"
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/rating [get]
func (h *Handler) Rating(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		logger.Warn("rating request without authenticated user")
		httputil.RespondErrorWithCode(w, "unauthorized", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	result, err := h.profiles.BuildProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			logger.Warn("rating request for unknown user", "user_id", userID)
			httputil.RespondErrorWithCode(w, "user not found", httputil.CodeUserNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to build rating profile", "user_id", userID, "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to fetch rating", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, result, http.StatusOK)
}

// parseListOptions reads and validates the listing query parameters.
// The second return reports whether a limit was requested at all.
func parseListOptions(r *http.Request) (ListOptions, bool, error) {
	opts := DefaultListOptions()
	limitSet := false
	q := r.URL.Query()

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return opts, false, ErrInvalidLimit
		}
		opts.Limit = limit
		limitSet = true
	}

	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return opts, false, ErrNegativeOffset
		}
		opts.Offset = offset
	}

	if raw := q.Get("orderBy"); raw != "" {
		opts.OrderBy = OrderField(raw)
	}
	if raw := q.Get("orderDirection"); raw != "" {
		opts.OrderDirection = OrderDirection(raw)
	}

	opts.ActiveOnly = q.Get("activeOnly") != "false"

	if err := opts.Validate(); err != nil {
		return opts, false, err
	}

	return opts, limitSet, nil
}
