package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/quizdash/quiz-service/internal/cache"
	"github.com/quizdash/quiz-service/internal/models"
	"github.com/quizdash/quiz-service/internal/repositories"
)

const (
	leaderboardCachePrefix = "leaderboard:top:"
	leaderboardCacheTTL    = 30 * time.Second
	podiumSize             = 3
)

// LeaderboardEntry is a result row with its display rank resolved.
type LeaderboardEntry struct {
	Rank         int       `json:"rank"`
	UserID       string    `json:"user_id"`
	PlayerName   string    `json:"player_name"`
	PlayerAvatar *string   `json:"player_avatar,omitempty"`
	Score        int       `json:"score"`
	SubmittedAt  time.Time `json:"submitted_at"`
	IsViewer     bool      `json:"is_viewer"`
}

// LeaderboardView splits the ranking into the top-3 podium and the rest.
type LeaderboardView struct {
	Podium []LeaderboardEntry `json:"podium"`
	Rest   []LeaderboardEntry `json:"rest"`
}

// LeaderboardService reads the top results and shapes them for rendering.
type LeaderboardService interface {
	Top(ctx context.Context, limit int) ([]*models.QuizResult, error)
	Present(results []*models.QuizResult, viewerID string) *LeaderboardView
}

type leaderboardService struct {
	repo   repositories.Repository
	cache  cache.CacheService
	logger *slog.Logger
}

func NewLeaderboardService(repo repositories.Repository, cacheService cache.CacheService, logger *slog.Logger) LeaderboardService {
	return &leaderboardService{
		repo:   repo,
		cache:  cacheService,
		logger: logger,
	}
}

// Top returns up to limit results, already ordered by the store:
// score DESC, submitted_at ASC. Reads go through the cache; a submission
// invalidates it, so staleness is bounded by the TTL at worst.
func (s *leaderboardService) Top(ctx context.Context, limit int) ([]*models.QuizResult, error) {
	key := fmt.Sprintf("%s%d", leaderboardCachePrefix, limit)

	var cached []*models.QuizResult
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Leaderboard cache read failed", "error", err)
	}

	results, err := s.repo.Result().Top(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to load leaderboard", "limit", limit, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrStoreRead, err)
	}

	if err := s.cache.Set(ctx, key, results, leaderboardCacheTTL); err != nil {
		s.logger.Warn("Leaderboard cache write failed", "error", err)
	}

	return results, nil
}

// Present partitions an already-sorted result list into podium (ranks 1..3)
// and rest (rank = position + 4), marking the viewer's own rows. Pure
// function of its inputs; the ordering is trusted, not re-validated.
func (s *leaderboardService) Present(results []*models.QuizResult, viewerID string) *LeaderboardView {
	view := &LeaderboardView{
		Podium: make([]LeaderboardEntry, 0, podiumSize),
		Rest:   make([]LeaderboardEntry, 0),
	}

	for i, result := range results {
		entry := LeaderboardEntry{
			Rank:         i + 1,
			UserID:       result.UserID,
			PlayerName:   result.PlayerName,
			PlayerAvatar: result.PlayerAvatar,
			Score:        result.Score,
			SubmittedAt:  result.SubmittedAt,
			IsViewer:     viewerID != "" && result.UserID == viewerID,
		}
		if i < podiumSize {
			view.Podium = append(view.Podium, entry)
		} else {
			view.Rest = append(view.Rest, entry)
		}
	}

	return view
}
