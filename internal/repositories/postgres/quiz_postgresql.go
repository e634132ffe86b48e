package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/quizdash/quiz-service/internal/models"
	"github.com/quizdash/quiz-service/internal/repositories"
)

type QuizPostgreSQL struct {
	db *gorm.DB
}

func NewQuizPostgreSQL(db *gorm.DB) repositories.QuizRepository {
	return &QuizPostgreSQL{db: db}
}

func (q QuizPostgreSQL) List(ctx context.Context) ([]*models.Quiz, error) {
	var quizzes []*models.Quiz
	if err := q.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&quizzes).Error; err != nil {
		return nil, err
	}

	// Catalog pages show question counts without loading the questions.
	for _, quiz := range quizzes {
		var count int64
		if err := q.db.WithContext(ctx).
			Model(&models.Question{}).
			Where("quiz_id = ?", quiz.ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		quiz.QuestionCount = int(count)
	}

	return quizzes, nil
}

func (q QuizPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := q.db.WithContext(ctx).First(&quiz, id).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (q QuizPostgreSQL) GetByIDWithQuestions(ctx context.Context, id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := q.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		First(&quiz, id).Error; err != nil {
		return nil, err
	}
	quiz.QuestionCount = len(quiz.Questions)
	return &quiz, nil
}

func (q QuizPostgreSQL) CreateWithQuestions(ctx context.Context, quiz *models.Quiz, questions []*models.Question) error {
	return q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quiz).Error; err != nil {
			return err
		}
		for _, question := range questions {
			question.QuizID = quiz.ID
			if err := tx.Create(question).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
