package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizdash/quiz-service/internal/models"
)

func TestValidateOptions(t *testing.T) {
	two := func(correct ...int) []models.QuestionOption {
		opts := []models.QuestionOption{{Text: "a"}, {Text: "b"}}
		for _, i := range correct {
			opts[i].IsCorrect = true
		}
		return opts
	}

	v := New()

	assert.NoError(t, v.ValidateOptions(two(0)))
	assert.Error(t, v.ValidateOptions(two()), "no correct option")
	assert.Error(t, v.ValidateOptions(two(0, 1)), "two correct options")
	assert.Error(t, v.ValidateOptions([]models.QuestionOption{{Text: "a", IsCorrect: true}}), "single option")
	assert.Error(t, v.ValidateOptions([]models.QuestionOption{
		{Text: "a", IsCorrect: true},
		{Text: "   "},
	}), "blank option text")
}

func TestOneCorrectTag(t *testing.T) {
	type form struct {
		Options []models.QuestionOption `json:"options" validate:"one_correct"`
	}

	v := New()

	require.NoError(t, v.Validate(form{Options: []models.QuestionOption{
		{Text: "a", IsCorrect: true},
		{Text: "b"},
	}}))

	err := v.Validate(form{Options: []models.QuestionOption{
		{Text: "a"},
		{Text: "b"},
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "one_correct")
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	type form struct {
		QuizID uint `json:"quiz_id" validate:"required"`
	}

	err := New().Validate(form{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quiz_id")
}
