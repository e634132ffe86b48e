package models

import (
	"time"
)

// QuizResult is a finished session's score, written once and never updated.
// PlayerName and PlayerAvatar are snapshots of the identity provider's profile
// taken at submission time so the leaderboard never joins against a user table.
type QuizResult struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	UserID    string `json:"user_id" gorm:"not null;size:255;index"`
	QuizID    uint   `json:"quiz_id" gorm:"not null;index"`
	SessionID string `json:"session_id" gorm:"size:36;index"`
	Score     int    `json:"score" gorm:"not null"`

	PlayerName   string  `json:"player_name" gorm:"not null;size:100"`
	PlayerAvatar *string `json:"player_avatar" gorm:"size:500"`

	SubmittedAt time.Time `json:"submitted_at" gorm:"autoCreateTime;index:idx_results_rank,priority:2"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}
