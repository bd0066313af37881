package testutil

import (
	"context"

	"github.com/sabitalfahad/Quiz-bot-for-my-students/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockSessionRepository is a mock for repository.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) EnsureSession(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockSessionRepository) GetStats(userID int64) (*domain.Stats, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stats), args.Error(1)
}

func (m *MockSessionRepository) RecordAnswer(userID int64, correct bool) error {
	args := m.Called(userID, correct)
	return args.Error(0)
}

func (m *MockSessionRepository) CleanIdleSessions(days int) (int64, error) {
	args := m.Called(days)
	return args.Get(0).(int64), args.Error(1)
}

// MockQuestionSource is a mock for service.QuestionSource
type MockQuestionSource struct {
	mock.Mock
}

func (m *MockQuestionSource) FetchQuestion(ctx context.Context, categoryID int, difficulty domain.Difficulty) (*domain.Question, error) {
	args := m.Called(ctx, categoryID, difficulty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}
