package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/quizdash/quiz-service/internal/auth"
	"github.com/quizdash/quiz-service/internal/repositories"
	"github.com/quizdash/quiz-service/internal/session"
	"github.com/quizdash/quiz-service/internal/validator"
)

// ===== REQUEST / RESPONSE SHAPES =====

type StartSessionRequest struct {
	QuizID uint `json:"quiz_id" validate:"required"`
}

type AnswerRequest struct {
	OptionIndex *int `json:"option_index" validate:"required,min=0"`
}

type SessionResponse struct {
	QuizTitle string `json:"quiz_title"`
	session.Snapshot
}

type SessionResultResponse struct {
	QuizTitle string `json:"quiz_title"`
	session.Result
	SaveState session.SaveState `json:"save_state"`
}

// SessionService drives quiz sessions: one per user per attempt, held in
// memory, advanced by a single user action per question.
type SessionService interface {
	Start(ctx context.Context, req *StartSessionRequest, profile auth.Profile) (*SessionResponse, error)
	Get(ctx context.Context, sessionID, userID string) (*SessionResponse, error)
	Answer(ctx context.Context, sessionID, userID string, req *AnswerRequest) (*SessionResponse, error)
	Result(ctx context.Context, sessionID, userID string) (*SessionResultResponse, error)
	Abandon(ctx context.Context, sessionID, userID string) error
}

type sessionService struct {
	repo      repositories.Repository
	manager   *session.Manager
	submitter SubmissionService
	validator *validator.Validator
	logger    *slog.Logger
	cfg       session.Config
}

func NewSessionService(
	repo repositories.Repository,
	manager *session.Manager,
	submitter SubmissionService,
	v *validator.Validator,
	logger *slog.Logger,
	cfg session.Config,
) SessionService {
	return &sessionService{
		repo:      repo,
		manager:   manager,
		submitter: submitter,
		validator: v,
		logger:    logger,
		cfg:       cfg,
	}
}

func (s *sessionService) Start(ctx context.Context, req *StartSessionRequest, profile auth.Profile) (*SessionResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	if !profile.Resolved() {
		return nil, ErrNotAuthenticated
	}

	quiz, err := s.repo.Quiz().GetByIDWithQuestions(ctx, req.QuizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		s.logger.Error("Failed to load quiz for session", "quiz_id", req.QuizID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrStoreRead, err)
	}
	if len(quiz.Questions) == 0 {
		return nil, ErrQuizEmpty
	}

	questions, err := playableQuestions(quiz)
	if err != nil {
		s.logger.Error("Quiz has malformed questions", "quiz_id", quiz.ID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	sessionID := s.manager.NewID()
	entry := &session.Entry{QuizTitle: quiz.Title}

	cfg := session.Config{
		SettleDelay: s.cfg.SettleDelay,
		// The finish hook runs once per session, from the settle timer's
		// goroutine, after the originating request has completed. The
		// submission outcome is recorded on the entry; a failure stays
		// failed, there is no silent retry.
		OnFinish: func(finalScore int) {
			entry.SetSaveState(session.SaveStatePending)
			err := s.submitter.Submit(context.Background(), profile, quiz.ID, sessionID, finalScore)
			if err != nil {
				s.logger.Warn("Score submission failed",
					"session_id", sessionID,
					"quiz_id", quiz.ID,
					"error", err)
				entry.SetSaveState(session.SaveStateFailed)
				return
			}
			entry.SetSaveState(session.SaveStateSaved)
		},
	}

	sess, err := session.New(sessionID, quiz.ID, profile.ID, questions, cfg)
	if err != nil {
		if errors.Is(err, session.ErrNoQuestions) {
			return nil, ErrQuizEmpty
		}
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	entry.Session = sess
	s.manager.Put(entry)

	s.logger.Info("Quiz session started",
		"session_id", sessionID,
		"quiz_id", quiz.ID,
		"user_id", profile.ID,
		"questions", len(questions))

	return &SessionResponse{QuizTitle: quiz.Title, Snapshot: sess.Snapshot()}, nil
}

func (s *sessionService) Get(_ context.Context, sessionID, userID string) (*SessionResponse, error) {
	entry, err := s.ownedEntry(sessionID, userID)
	if err != nil {
		return nil, err
	}
	return &SessionResponse{QuizTitle: entry.QuizTitle, Snapshot: entry.Session.Snapshot()}, nil
}

func (s *sessionService) Answer(_ context.Context, sessionID, userID string, req *AnswerRequest) (*SessionResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	entry, err := s.ownedEntry(sessionID, userID)
	if err != nil {
		return nil, err
	}

	snap, err := entry.Session.SelectOption(*req.OptionIndex)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrFinished):
			return nil, ErrSessionFinished
		case errors.Is(err, session.ErrInvalidOption):
			return nil, ErrInvalidOption
		default:
			return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
		}
	}

	return &SessionResponse{QuizTitle: entry.QuizTitle, Snapshot: snap}, nil
}

func (s *sessionService) Result(_ context.Context, sessionID, userID string) (*SessionResultResponse, error) {
	entry, err := s.ownedEntry(sessionID, userID)
	if err != nil {
		return nil, err
	}

	result, err := entry.Session.Result()
	if err != nil {
		return nil, ErrSessionNotFinished
	}

	return &SessionResultResponse{
		QuizTitle: entry.QuizTitle,
		Result:    result,
		SaveState: entry.SaveState(),
	}, nil
}

// Abandon tears a session down; a pending advance never fires afterwards.
func (s *sessionService) Abandon(_ context.Context, sessionID, userID string) error {
	if _, err := s.ownedEntry(sessionID, userID); err != nil {
		return err
	}
	s.manager.Remove(sessionID)
	s.logger.Info("Quiz session abandoned", "session_id", sessionID, "user_id", userID)
	return nil
}

func (s *sessionService) ownedEntry(sessionID, userID string) (*session.Entry, error) {
	entry, ok := s.manager.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	if entry.Session.UserID() != userID {
		return nil, ErrSessionNotOwned
	}
	return entry, nil
}
