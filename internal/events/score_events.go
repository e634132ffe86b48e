package events

import (
	"time"

	"github.com/google/uuid"
)

const ScoreSubmittedEventType = "quiz.score_submitted"

// ScoreSubmittedEvent is emitted after a result row has been written.
// SessionID identifies the quiz attempt that produced the score; consumers
// that need dedup can key on it, the store itself does not.
type ScoreSubmittedEvent struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	SessionID   string    `json:"session_id"`
	QuizID      uint      `json:"quiz_id"`
	UserID      string    `json:"user_id"`
	PlayerName  string    `json:"player_name"`
	Score       int       `json:"score"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func NewScoreSubmittedEvent(sessionID string, quizID uint, userID, playerName string, score int) *ScoreSubmittedEvent {
	return &ScoreSubmittedEvent{
		ID:          uuid.NewString(),
		Type:        ScoreSubmittedEventType,
		SessionID:   sessionID,
		QuizID:      quizID,
		UserID:      userID,
		PlayerName:  playerName,
		Score:       score,
		SubmittedAt: time.Now().UTC(),
	}
}
