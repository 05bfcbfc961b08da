// Package mocks provides shared mock implementations for testing.
//
// MockTokenValidator uses function fields with fixed fallbacks;
// MockLearningService is a testify mock:
//
//	svc := &mocks.MockLearningService{}
//	svc.On("Stats", mock.Anything, learnerID).Return(&learning.Stats{TotalLearned: 3}, nil)
package mocks
