package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/quizdash/quiz-service/internal/auth"
	"github.com/quizdash/quiz-service/internal/services"
	"github.com/quizdash/quiz-service/internal/utils"
)

const maxLeaderboardLimit = 100

type LeaderboardHandler struct {
	BaseHandler
	leaderboardService services.LeaderboardService
	defaultLimit       int
}

func NewLeaderboardHandler(leaderboardService services.LeaderboardService, defaultLimit int, logger utils.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		BaseHandler:        NewBaseHandler(logger),
		leaderboardService: leaderboardService,
		defaultLimit:       defaultLimit,
	}
}

// GetLeaderboard serves the global ranking, split into podium and rest.
// The viewer's rows are flagged when the request carries an identity.
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	limit := h.defaultLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.RespondWithError(c, http.StatusBadRequest, "invalid limit", err)
			return
		}
		limit = parsed
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	results, err := h.leaderboardService.Top(c.Request.Context(), limit)
	if err != nil {
		h.RespondWithServiceError(c, err)
		return
	}

	viewerID := ""
	if profile, ok := auth.ProfileFromContext(c); ok {
		viewerID = profile.ID
	}

	view := h.leaderboardService.Present(results, viewerID)
	h.RespondWithSuccess(c, http.StatusOK, "Leaderboard retrieved", view)
}
