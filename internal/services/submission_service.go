package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quizdash/quiz-service/internal/auth"
	"github.com/quizdash/quiz-service/internal/cache"
	"github.com/quizdash/quiz-service/internal/events"
	"github.com/quizdash/quiz-service/internal/models"
	"github.com/quizdash/quiz-service/internal/repositories"
)

// SubmissionService is the score submission gateway: one insert per finished
// session, carrying a snapshot of the player's profile. There is no retry and
// no idempotency key; the at-most-once guarantee lives in the session's
// one-shot finish hook.
type SubmissionService interface {
	Submit(ctx context.Context, profile auth.Profile, quizID uint, sessionID string, score int) error
}

type submissionService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	publisher events.Publisher
	logger    *slog.Logger
}

func NewSubmissionService(repo repositories.Repository, cacheService cache.CacheService, publisher events.Publisher, logger *slog.Logger) SubmissionService {
	return &submissionService{
		repo:      repo,
		cache:     cacheService,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *submissionService) Submit(ctx context.Context, profile auth.Profile, quizID uint, sessionID string, score int) error {
	if !profile.Resolved() {
		return ErrNotAuthenticated
	}

	playerName := profile.DisplayName()
	var playerAvatar *string
	if profile.AvatarURL != "" {
		avatar := profile.AvatarURL
		playerAvatar = &avatar
	}

	result := &models.QuizResult{
		UserID:       profile.ID,
		QuizID:       quizID,
		SessionID:    sessionID,
		Score:        score,
		PlayerName:   playerName,
		PlayerAvatar: playerAvatar,
	}

	if err := s.repo.Result().Create(ctx, result); err != nil {
		s.logger.Error("Failed to save quiz score",
			"session_id", sessionID,
			"quiz_id", quizID,
			"user_id", profile.ID,
			"error", err)
		return fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}

	s.logger.Info("Quiz score saved",
		"session_id", sessionID,
		"quiz_id", quizID,
		"user_id", profile.ID,
		"score", score)

	// Cache invalidation and event publishing are best-effort: the row is
	// already durable, so a subsequent leaderboard read catches up at worst
	// one TTL later.
	if err := s.cache.DeletePattern(ctx, leaderboardCachePrefix+"*"); err != nil {
		s.logger.Warn("Failed to invalidate leaderboard cache", "error", err)
	}

	event := events.NewScoreSubmittedEvent(sessionID, quizID, profile.ID, playerName, score)
	if err := s.publisher.PublishScoreSubmitted(ctx, event); err != nil {
		s.logger.Warn("Failed to publish score event", "session_id", sessionID, "error", err)
	}

	return nil
}
