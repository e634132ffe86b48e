package session

import (
	"errors"
	"math"
	"sync"
	"time"
)

// PointsPerQuestion is the fixed score awarded for each correct answer.
const PointsPerQuestion = 10

var (
	ErrNoQuestions   = errors.New("quiz has no questions")
	ErrFinished      = errors.New("session already finished")
	ErrNotFinished   = errors.New("session not finished")
	ErrInvalidOption = errors.New("option index out of range")
)

// Option is one answer choice, identified by its position.
type Option struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"-"`
}

// Question is the immutable view of a quiz question a session plays through.
type Question struct {
	ID      uint
	Text    string
	Options []Option
}

// Outcome tiers, evaluated in priority order.
type Outcome string

const (
	OutcomePerfect   Outcome = "perfect"
	OutcomeGood      Outcome = "good"
	OutcomePass      Outcome = "pass"
	OutcomeNeedsWork Outcome = "needs improvement"
)

// OutcomeFor maps a rounded percentage to its tier.
func OutcomeFor(percentage int) Outcome {
	switch {
	case percentage == 100:
		return OutcomePerfect
	case percentage >= 70:
		return OutcomeGood
	case percentage >= 60:
		return OutcomePass
	default:
		return OutcomeNeedsWork
	}
}

// Config tunes a session. SettleDelay is the pause between answering and
// auto-advancing; OnFinish runs exactly once when the session enters the
// finished state, from the timer goroutine.
type Config struct {
	SettleDelay time.Duration
	OnFinish    func(finalScore int)
}

// Session drives one user through one quiz attempt. It is owned by a single
// user; the only concurrent access is the settle timer racing teardown, so a
// single mutex covers all state.
type Session struct {
	id        string
	quizID    uint
	userID    string
	questions []Question

	mu          sync.Mutex
	current     int
	score       int
	selected    *int
	answered    bool
	finished    bool
	finishFired bool
	closed      bool
	timer       *time.Timer

	settleDelay time.Duration
	onFinish    func(int)
}

// New creates an in-progress session positioned at the first question.
func New(id string, quizID uint, userID string, questions []Question, cfg Config) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return &Session{
		id:          id,
		quizID:      quizID,
		userID:      userID,
		questions:   questions,
		settleDelay: cfg.SettleDelay,
		onFinish:    cfg.OnFinish,
	}, nil
}

func (s *Session) ID() string     { return s.id }
func (s *Session) QuizID() uint   { return s.quizID }
func (s *Session) UserID() string { return s.userID }

// SelectOption records the user's answer for the current question. A second
// call on an already-answered question is a no-op: score and selection are
// left untouched, guarding against double clicks.
func (s *Session) SelectOption(index int) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished || s.closed {
		return s.snapshotLocked(), ErrFinished
	}
	if s.answered {
		return s.snapshotLocked(), nil
	}
	question := s.questions[s.current]
	if index < 0 || index >= len(question.Options) {
		return s.snapshotLocked(), ErrInvalidOption
	}

	idx := index
	s.selected = &idx
	s.answered = true
	if question.Options[index].IsCorrect {
		s.score += PointsPerQuestion
	}

	s.timer = time.AfterFunc(s.settleDelay, s.advance)

	return s.snapshotLocked(), nil
}

// advance runs after the settle delay: next question, or finished. The finish
// hook fires at most once no matter how often the finished state is observed
// or re-entered, and never against a closed session.
func (s *Session) advance() {
	s.mu.Lock()
	if s.closed || s.finished {
		s.mu.Unlock()
		return
	}

	if s.current+1 < len(s.questions) {
		s.current++
		s.selected = nil
		s.answered = false
		s.mu.Unlock()
		return
	}

	s.finished = true
	fire := !s.finishFired
	s.finishFired = true
	finalScore := s.score
	hook := s.onFinish
	s.mu.Unlock()

	if fire && hook != nil {
		hook(finalScore)
	}
}

// Close tears the session down. A pending advance is canceled; a timer that
// already fired finds the closed flag and does nothing.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Snapshot is a point-in-time view of the session for rendering.
type Snapshot struct {
	SessionID      string    `json:"session_id"`
	QuizID         uint      `json:"quiz_id"`
	QuestionIndex  int       `json:"question_index"`
	TotalQuestions int       `json:"total_questions"`
	Question       *Question `json:"-"`
	QuestionText   string    `json:"question_text"`
	Options        []Option  `json:"options"`
	SelectedOption *int      `json:"selected_option,omitempty"`
	Answered       bool      `json:"answered"`
	Score          int       `json:"score"`
	MaxScore       int       `json:"max_score"`
	Finished       bool      `json:"finished"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		SessionID:      s.id,
		QuizID:         s.quizID,
		QuestionIndex:  s.current,
		TotalQuestions: len(s.questions),
		Answered:       s.answered,
		Score:          s.score,
		MaxScore:       len(s.questions) * PointsPerQuestion,
		Finished:       s.finished,
	}
	if s.selected != nil {
		idx := *s.selected
		snap.SelectedOption = &idx
	}
	if !s.finished {
		q := s.questions[s.current]
		snap.Question = &q
		snap.QuestionText = q.Text
		snap.Options = q.Options
	}
	return snap
}

// Result summarizes a finished session.
type Result struct {
	Score        int     `json:"score"`
	MaxScore     int     `json:"max_score"`
	Percentage   int     `json:"percentage"`
	CorrectCount int     `json:"correct_count"`
	WrongCount   int     `json:"wrong_count"`
	Outcome      Outcome `json:"outcome"`
}

// Result is only available once the session has finished.
func (s *Session) Result() (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.finished {
		return Result{}, ErrNotFinished
	}

	total := len(s.questions)
	maxScore := total * PointsPerQuestion
	percentage := int(math.Round(float64(s.score) / float64(maxScore) * 100))
	correct := s.score / PointsPerQuestion

	return Result{
		Score:        s.score,
		MaxScore:     maxScore,
		Percentage:   percentage,
		CorrectCount: correct,
		WrongCount:   total - correct,
		Outcome:      OutcomeFor(percentage),
	}, nil
}

// Finished reports whether the session reached its terminal state.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}
