package postgres

import (
	"gorm.io/gorm"

	"github.com/quizdash/quiz-service/internal/repositories"
)

type repository struct {
	quiz   repositories.QuizRepository
	result repositories.ResultRepository
}

// NewRepository wires the gorm-backed repositories together.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		quiz:   NewQuizPostgreSQL(db),
		result: NewResultPostgreSQL(db),
	}
}

func (r *repository) Quiz() repositories.QuizRepository {
	return r.quiz
}

func (r *repository) Result() repositories.ResultRepository {
	return r.result
}
