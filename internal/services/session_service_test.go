package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/quizdash/quiz-service/internal/auth"
	"github.com/quizdash/quiz-service/internal/models"
	"github.com/quizdash/quiz-service/internal/session"
	"github.com/quizdash/quiz-service/internal/validator"
)

type submitCall struct {
	profile   auth.Profile
	quizID    uint
	sessionID string
	score     int
}

// recordingSubmitter captures submission attempts without touching a store.
type recordingSubmitter struct {
	mu    sync.Mutex
	calls []submitCall
	err   error
}

func (r *recordingSubmitter) Submit(_ context.Context, profile auth.Profile, quizID uint, sessionID string, score int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, submitCall{profile: profile, quizID: quizID, sessionID: sessionID, score: score})
	return r.err
}

func (r *recordingSubmitter) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func mustOptions(t *testing.T, opts []models.QuestionOption) models.Question {
	t.Helper()
	encoded, err := models.EncodeOptions(opts)
	require.NoError(t, err)
	return models.Question{Options: encoded}
}

func quizWithFourQuestions(t *testing.T) *models.Quiz {
	t.Helper()
	texts := []string{"q1", "q2", "q3", "q4"}
	// Correct answers: Q1=0, Q2=1, Q3=0, Q4=2
	correct := []int{0, 1, 0, 2}
	questions := make([]models.Question, 0, 4)
	for i, text := range texts {
		opts := []models.QuestionOption{{Text: "a"}, {Text: "b"}, {Text: "c"}}
		opts[correct[i]].IsCorrect = true
		q := mustOptions(t, opts)
		q.ID = uint(i + 1)
		q.Text = text
		q.OrderIndex = i
		questions = append(questions, q)
	}
	return &models.Quiz{ID: 7, Title: "General Knowledge", Questions: questions}
}

func newSessionFixture(t *testing.T, quizRepo *MockQuizRepository, submitter SubmissionService) SessionService {
	t.Helper()
	return NewSessionService(
		&stubRepository{quiz: quizRepo},
		session.NewManager(),
		submitter,
		validator.New(),
		testLogger(),
		session.Config{SettleDelay: 3 * time.Millisecond},
	)
}

func answerThrough(t *testing.T, svc SessionService, sessionID, userID string, choices []int) {
	t.Helper()
	for i, choice := range choices {
		idx := choice
		_, err := svc.Answer(context.Background(), sessionID, userID, &AnswerRequest{OptionIndex: &idx})
		require.NoError(t, err, "answer %d", i+1)

		want := i + 1
		last := i == len(choices)-1
		require.Eventually(t, func() bool {
			snap, err := svc.Get(context.Background(), sessionID, userID)
			if err != nil {
				return false
			}
			if last {
				return snap.Finished
			}
			return snap.QuestionIndex == want && !snap.Answered
		}, time.Second, time.Millisecond)
	}
}

func TestSessionEndToEnd(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	quizRepo.On("GetByIDWithQuestions", mock.Anything, uint(7)).Return(quizWithFourQuestions(t), nil)

	submitter := &recordingSubmitter{}
	svc := newSessionFixture(t, quizRepo, submitter)

	profile := auth.Profile{ID: "user-1", FullName: "Ada"}
	started, err := svc.Start(context.Background(), &StartSessionRequest{QuizID: 7}, profile)
	require.NoError(t, err)
	assert.Equal(t, "General Knowledge", started.QuizTitle)
	assert.Equal(t, 4, started.TotalQuestions)
	assert.Equal(t, 40, started.MaxScore)
	assert.Equal(t, "q1", started.QuestionText)

	// Q1 correct, Q2 wrong, Q3 correct, Q4 correct.
	answerThrough(t, svc, started.SessionID, "user-1", []int{0, 0, 0, 2})

	result, err := svc.Result(context.Background(), started.SessionID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 30, result.Score)
	assert.Equal(t, 40, result.MaxScore)
	assert.Equal(t, 75, result.Percentage)
	assert.Equal(t, session.OutcomeGood, result.Outcome)

	require.Eventually(t, func() bool {
		r, err := svc.Result(context.Background(), started.SessionID, "user-1")
		return err == nil && r.SaveState == session.SaveStateSaved
	}, time.Second, time.Millisecond)

	// Exactly one submission, with the final score and profile snapshot.
	assert.Equal(t, 1, submitter.callCount())
	call := submitter.calls[0]
	assert.Equal(t, uint(7), call.quizID)
	assert.Equal(t, started.SessionID, call.sessionID)
	assert.Equal(t, 30, call.score)
	assert.Equal(t, "user-1", call.profile.ID)
}

func TestStartUnknownQuiz(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	quizRepo.On("GetByIDWithQuestions", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	svc := newSessionFixture(t, quizRepo, &recordingSubmitter{})

	_, err := svc.Start(context.Background(), &StartSessionRequest{QuizID: 99}, auth.Profile{ID: "user-1"})
	assert.ErrorIs(t, err, ErrQuizNotFound)
	assert.True(t, IsNotFound(err))
}

func TestStartEmptyQuiz(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	quizRepo.On("GetByIDWithQuestions", mock.Anything, uint(7)).
		Return(&models.Quiz{ID: 7, Title: "Empty"}, nil)

	submitter := &recordingSubmitter{}
	svc := newSessionFixture(t, quizRepo, submitter)

	_, err := svc.Start(context.Background(), &StartSessionRequest{QuizID: 7}, auth.Profile{ID: "user-1"})
	assert.ErrorIs(t, err, ErrQuizEmpty)
	assert.True(t, IsNotFound(err))
	assert.Zero(t, submitter.callCount())
}

func TestSessionOwnership(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	quizRepo.On("GetByIDWithQuestions", mock.Anything, uint(7)).Return(quizWithFourQuestions(t), nil)

	svc := newSessionFixture(t, quizRepo, &recordingSubmitter{})

	started, err := svc.Start(context.Background(), &StartSessionRequest{QuizID: 7}, auth.Profile{ID: "owner"})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), started.SessionID, "intruder")
	assert.ErrorIs(t, err, ErrSessionNotOwned)

	idx := 0
	_, err = svc.Answer(context.Background(), started.SessionID, "intruder", &AnswerRequest{OptionIndex: &idx})
	assert.ErrorIs(t, err, ErrSessionNotOwned)
}

func TestSessionNotFound(t *testing.T) {
	svc := newSessionFixture(t, new(MockQuizRepository), &recordingSubmitter{})

	_, err := svc.Get(context.Background(), "missing", "user-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestResultBeforeFinished(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	quizRepo.On("GetByIDWithQuestions", mock.Anything, uint(7)).Return(quizWithFourQuestions(t), nil)

	svc := newSessionFixture(t, quizRepo, &recordingSubmitter{})

	started, err := svc.Start(context.Background(), &StartSessionRequest{QuizID: 7}, auth.Profile{ID: "user-1"})
	require.NoError(t, err)

	_, err = svc.Result(context.Background(), started.SessionID, "user-1")
	assert.ErrorIs(t, err, ErrSessionNotFinished)
}

func TestFailedSubmissionStillShowsResult(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	quizRepo.On("GetByIDWithQuestions", mock.Anything, uint(7)).Return(quizWithFourQuestions(t), nil)

	submitter := &recordingSubmitter{err: errors.New("store down")}
	svc := newSessionFixture(t, quizRepo, submitter)

	started, err := svc.Start(context.Background(), &StartSessionRequest{QuizID: 7}, auth.Profile{ID: "user-1"})
	require.NoError(t, err)

	answerThrough(t, svc, started.SessionID, "user-1", []int{0, 0, 0, 2})

	require.Eventually(t, func() bool {
		r, err := svc.Result(context.Background(), started.SessionID, "user-1")
		return err == nil && r.SaveState == session.SaveStateFailed
	}, time.Second, time.Millisecond)

	// The result screen still renders the score; nothing retries the save.
	result, err := svc.Result(context.Background(), started.SessionID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 30, result.Score)
	assert.Equal(t, 40, result.MaxScore)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, submitter.callCount())
}

func TestAbandonStopsAdvance(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	quizRepo.On("GetByIDWithQuestions", mock.Anything, uint(7)).Return(quizWithFourQuestions(t), nil)

	submitter := &recordingSubmitter{}
	svc := newSessionFixture(t, quizRepo, submitter)

	started, err := svc.Start(context.Background(), &StartSessionRequest{QuizID: 7}, auth.Profile{ID: "user-1"})
	require.NoError(t, err)

	require.NoError(t, svc.Abandon(context.Background(), started.SessionID, "user-1"))

	_, err = svc.Get(context.Background(), started.SessionID, "user-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Zero(t, submitter.callCount())
}

func TestAnswerValidation(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	quizRepo.On("GetByIDWithQuestions", mock.Anything, uint(7)).Return(quizWithFourQuestions(t), nil)

	svc := newSessionFixture(t, quizRepo, &recordingSubmitter{})

	started, err := svc.Start(context.Background(), &StartSessionRequest{QuizID: 7}, auth.Profile{ID: "user-1"})
	require.NoError(t, err)

	_, err = svc.Answer(context.Background(), started.SessionID, "user-1", &AnswerRequest{})
	assert.ErrorIs(t, err, ErrValidationFailed)

	outOfRange := 9
	_, err = svc.Answer(context.Background(), started.SessionID, "user-1", &AnswerRequest{OptionIndex: &outOfRange})
	assert.ErrorIs(t, err, ErrInvalidOption)
}
