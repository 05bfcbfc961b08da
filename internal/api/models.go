package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/wordsprint/wordsprint-api/internal/domain"
	"github.com/wordsprint/wordsprint-api/internal/service/learning"
)

// WordResponse is a catalog word.
type WordResponse struct {
	ID      uuid.UUID `json:"id"`
	English string    `json:"english"`
	Turkish string    `json:"turkish"`
}

// QuizQuestionResponse is one question. It never contains the answer.
type QuizQuestionResponse struct {
	WordID           uuid.UUID `json:"word_id"`
	Mode             string    `json:"mode"`
	Prompt           string    `json:"prompt"`
	ExpectedLanguage string    `json:"expected_language"`
	Choices          []string  `json:"choices,omitempty"`
}

// QuizResponse is the body returned when a quiz starts.
type QuizResponse struct {
	Mode      string                 `json:"mode"`
	Kind      string                 `json:"kind"`
	Questions []QuizQuestionResponse `json:"questions"`
}

// SubmitAnswerRequest is one answer in a quiz submission.
type SubmitAnswerRequest struct {
	WordID string `json:"word_id" validate:"required,uuid"`
	Answer string `json:"answer"  validate:"max=200"`
}

// SubmitQuizRequest is the body of a quiz submission. An empty Mode falls
// back to the default mode for the quiz kind.
type SubmitQuizRequest struct {
	Mode    string                `json:"mode"`
	Answers []SubmitAnswerRequest `json:"answers" validate:"max=200,dive"`
}

// ScoreItemResponse is the verdict on one scored answer.
type ScoreItemResponse struct {
	WordID        uuid.UUID `json:"word_id"`
	IsCorrect     bool      `json:"is_correct"`
	CorrectAnswer string    `json:"correct_answer"`
}

// ScoreResponse is the body returned after a quiz is scored.
type ScoreResponse struct {
	Total       int                 `json:"total"`
	Correct     int                 `json:"correct"`
	Wrong       int                 `json:"wrong"`
	SuccessRate float64             `json:"success_rate"`
	Passed      bool                `json:"passed"`
	Items       []ScoreItemResponse `json:"items"`
}

// StatsResponse is the learner's progress summary.
type StatsResponse struct {
	TotalLearned  int     `json:"total_learned"`
	TotalLearning int     `json:"total_learning"`
	TotalCorrect  int     `json:"total_correct"`
	TotalWrong    int     `json:"total_wrong"`
	SuccessRate   float64 `json:"success_rate"`
	TodayLearned  int     `json:"today_learned"`
}

// LearningWordResponse is a word the learner is still learning.
type LearningWordResponse struct {
	WordID    uuid.UUID `json:"word_id"`
	English   string    `json:"english"`
	Turkish   string    `json:"turkish"`
	CreatedAt time.Time `json:"created_at"`
}

// LearnedWordResponse is a word the learner has learned.
type LearnedWordResponse struct {
	WordID       uuid.UUID  `json:"word_id"`
	English      string     `json:"english"`
	Turkish      string     `json:"turkish"`
	CorrectCount int        `json:"correct_count"`
	WrongCount   int        `json:"wrong_count"`
	CreatedAt    time.Time  `json:"created_at"`
	LastTestedAt *time.Time `json:"last_tested_at"`
}

func wordsToResponse(words []learning.WordSummary) []WordResponse {
	return lo.Map(words, func(w learning.WordSummary, _ int) WordResponse {
		return WordResponse{ID: w.ID, English: w.English, Turkish: w.Turkish}
	})
}

func quizToResponse(session *learning.QuizSession) QuizResponse {
	return QuizResponse{
		Mode: string(session.Mode),
		Kind: string(session.Kind),
		Questions: lo.Map(session.Questions, func(q domain.QuizQuestion, _ int) QuizQuestionResponse {
			return QuizQuestionResponse{
				WordID:           q.WordID,
				Mode:             string(q.Mode),
				Prompt:           q.Prompt,
				ExpectedLanguage: string(q.ExpectedLanguage),
				Choices:          q.Choices,
			}
		}),
	}
}

func scoreToResponse(result *learning.ScoreResult) ScoreResponse {
	return ScoreResponse{
		Total:       result.Total,
		Correct:     result.Correct,
		Wrong:       result.Wrong,
		SuccessRate: result.SuccessRate,
		Passed:      result.Passed,
		Items: lo.Map(result.Items, func(item learning.ScoreItem, _ int) ScoreItemResponse {
			return ScoreItemResponse{
				WordID:        item.WordID,
				IsCorrect:     item.IsCorrect,
				CorrectAnswer: item.CorrectAnswer,
			}
		}),
	}
}

func statsToResponse(stats *learning.Stats) StatsResponse {
	return StatsResponse{
		TotalLearned:  stats.TotalLearned,
		TotalLearning: stats.TotalLearning,
		TotalCorrect:  stats.TotalCorrect,
		TotalWrong:    stats.TotalWrong,
		SuccessRate:   stats.SuccessRate,
		TodayLearned:  stats.TodayLearned,
	}
}
