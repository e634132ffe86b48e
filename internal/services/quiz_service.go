package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quizdash/quiz-service/internal/models"
	"github.com/quizdash/quiz-service/internal/repositories"
	"github.com/quizdash/quiz-service/internal/session"
)

// QuizService serves the quiz catalog.
type QuizService interface {
	List(ctx context.Context) ([]*models.Quiz, error)
	GetWithQuestions(ctx context.Context, id uint) (*models.Quiz, error)
}

type quizService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewQuizService(repo repositories.Repository, logger *slog.Logger) QuizService {
	return &quizService{
		repo:   repo,
		logger: logger,
	}
}

func (s *quizService) List(ctx context.Context) ([]*models.Quiz, error) {
	quizzes, err := s.repo.Quiz().List(ctx)
	if err != nil {
		s.logger.Error("Failed to list quizzes", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrStoreRead, err)
	}
	return quizzes, nil
}

func (s *quizService) GetWithQuestions(ctx context.Context, id uint) (*models.Quiz, error) {
	quiz, err := s.repo.Quiz().GetByIDWithQuestions(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		s.logger.Error("Failed to get quiz", "quiz_id", id, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrStoreRead, err)
	}
	return quiz, nil
}

// playableQuestions converts stored questions into the session view. Options
// are decoded from the JSON column; order follows the stored order_index.
func playableQuestions(quiz *models.Quiz) ([]session.Question, error) {
	questions := make([]session.Question, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		opts, err := q.DecodedOptions()
		if err != nil {
			return nil, fmt.Errorf("question %d has malformed options: %w", q.ID, err)
		}
		sq := session.Question{
			ID:      q.ID,
			Text:    q.Text,
			Options: make([]session.Option, 0, len(opts)),
		}
		for _, opt := range opts {
			sq.Options = append(sq.Options, session.Option{
				Text:      opt.Text,
				IsCorrect: opt.IsCorrect,
			})
		}
		questions = append(questions, sq)
	}
	return questions, nil
}
