package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/wordsprint/wordsprint-api/internal/domain"
	"github.com/wordsprint/wordsprint-api/internal/service/learning"
)

// MockLearningService implements learning.Service for testing
type MockLearningService struct {
	mock.Mock
}

// AssignNew implements learning.Service
func (m *MockLearningService) AssignNew(ctx context.Context, learnerID uuid.UUID, count int) ([]learning.WordSummary, error) {
	args := m.Called(ctx, learnerID, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]learning.WordSummary), args.Error(1)
}

// StartQuiz implements learning.Service
func (m *MockLearningService) StartQuiz(
	ctx context.Context,
	learnerID uuid.UUID,
	count int,
	mode domain.QuizMode,
	kind domain.QuizKind,
) (*learning.QuizSession, error) {
	args := m.Called(ctx, learnerID, count, mode, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*learning.QuizSession), args.Error(1)
}

// Score implements learning.Service
func (m *MockLearningService) Score(
	ctx context.Context,
	learnerID uuid.UUID,
	mode domain.QuizMode,
	kind domain.QuizKind,
	answers []learning.Answer,
) (*learning.ScoreResult, error) {
	args := m.Called(ctx, learnerID, mode, kind, answers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*learning.ScoreResult), args.Error(1)
}

// Stats implements learning.Service
func (m *MockLearningService) Stats(ctx context.Context, learnerID uuid.UUID) (*learning.Stats, error) {
	args := m.Called(ctx, learnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*learning.Stats), args.Error(1)
}

// RandomWords implements learning.Service
func (m *MockLearningService) RandomWords(ctx context.Context, count int) ([]learning.WordSummary, error) {
	args := m.Called(ctx, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]learning.WordSummary), args.Error(1)
}

// LearningList implements learning.Service
func (m *MockLearningService) LearningList(ctx context.Context, learnerID uuid.UUID) ([]learning.LearningEntry, error) {
	args := m.Called(ctx, learnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]learning.LearningEntry), args.Error(1)
}

// LearnedList implements learning.Service
func (m *MockLearningService) LearnedList(ctx context.Context, learnerID uuid.UUID) ([]learning.LearnedEntry, error) {
	args := m.Called(ctx, learnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]learning.LearnedEntry), args.Error(1)
}

var _ learning.Service = (*MockLearningService)(nil)
