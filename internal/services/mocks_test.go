package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/quizdash/quiz-service/internal/cache"
	"github.com/quizdash/quiz-service/internal/models"
	"github.com/quizdash/quiz-service/internal/repositories"
)

// MockQuizRepository is a mock implementation of repositories.QuizRepository.
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) List(ctx context.Context) ([]*models.Quiz, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Quiz), args.Error(1)
}

func (m *MockQuizRepository) GetByID(ctx context.Context, id uint) (*models.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quiz), args.Error(1)
}

func (m *MockQuizRepository) GetByIDWithQuestions(ctx context.Context, id uint) (*models.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quiz), args.Error(1)
}

func (m *MockQuizRepository) CreateWithQuestions(ctx context.Context, quiz *models.Quiz, questions []*models.Question) error {
	args := m.Called(ctx, quiz, questions)
	return args.Error(0)
}

// MockResultRepository is a mock implementation of repositories.ResultRepository.
type MockResultRepository struct {
	mock.Mock
}

func (m *MockResultRepository) Create(ctx context.Context, result *models.QuizResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockResultRepository) Top(ctx context.Context, limit int) ([]*models.QuizResult, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.QuizResult), args.Error(1)
}

type stubRepository struct {
	quiz   repositories.QuizRepository
	result repositories.ResultRepository
}

func (r *stubRepository) Quiz() repositories.QuizRepository     { return r.quiz }
func (r *stubRepository) Result() repositories.ResultRepository { return r.result }

// stubCache is an in-memory cache.CacheService that records invalidations.
type stubCache struct {
	mu                 sync.Mutex
	values             map[string][]byte
	deletePatternCalls []string
}

func newStubCache() *stubCache {
	return &stubCache{values: map[string][]byte{}}
}

func (c *stubCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = nil
	return nil
}

func (c *stubCache) Get(_ context.Context, key string, _ interface{}) error {
	return cache.ErrCacheMiss
}

func (c *stubCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}

func (c *stubCache) DeletePattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletePatternCalls = append(c.deletePatternCalls, pattern)
	return nil
}

func (c *stubCache) patternCalls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.deletePatternCalls))
	copy(out, c.deletePatternCalls)
	return out
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
