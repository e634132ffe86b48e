package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Quiz struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Title       string  `json:"title" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description *string `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:QuizID"`

	// Computed fields (not stored)
	QuestionCount int `json:"question_count" gorm:"-"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuestionOption is one answer choice. Its position in the owning question's
// option list is its selection key; there is no stable id beyond that.
type QuestionOption struct {
	Text      string `json:"text" validate:"required,min=1"`
	IsCorrect bool   `json:"is_correct"`
}

type Question struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	QuizID     uint           `json:"quiz_id" gorm:"not null;index"`
	Text       string         `json:"text" gorm:"type:text;not null" validate:"required,min=1"`
	OrderIndex int            `json:"order_index" gorm:"not null;index"`
	Options    datatypes.JSON `json:"options" gorm:"type:jsonb;not null"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Question) TableName() string {
	return "questions"
}

// DecodedOptions unmarshals the JSON options column.
func (q *Question) DecodedOptions() ([]QuestionOption, error) {
	var opts []QuestionOption
	if err := json.Unmarshal(q.Options, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}

// EncodeOptions marshals option values into the JSON column representation.
func EncodeOptions(opts []QuestionOption) (datatypes.JSON, error) {
	raw, err := json.Marshal(opts)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
