package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/quizdash/quiz-service/internal/models"
)

// QuizRepository reads and writes the quiz catalog.
type QuizRepository interface {
	List(ctx context.Context) ([]*models.Quiz, error)
	GetByID(ctx context.Context, id uint) (*models.Quiz, error)
	GetByIDWithQuestions(ctx context.Context, id uint) (*models.Quiz, error)
	CreateWithQuestions(ctx context.Context, quiz *models.Quiz, questions []*models.Question) error
}

// ResultRepository writes score submissions and serves the leaderboard query.
// Rows are write-once; there is no update or delete path.
type ResultRepository interface {
	Create(ctx context.Context, result *models.QuizResult) error
	// Top returns up to limit rows ordered by (score DESC, submitted_at ASC):
	// higher score wins, earlier submission breaks ties.
	Top(ctx context.Context, limit int) ([]*models.QuizResult, error)
}

// Repository aggregates all repositories behind one dependency.
type Repository interface {
	Quiz() QuizRepository
	Result() ResultRepository
}

// IsNotFoundError reports whether err is the store's missing-row error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
