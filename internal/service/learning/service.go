package learning

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wordsprint/wordsprint-api/internal/domain"
)

// Batch limits and scoring rules.
const (
	// MinBatchSize and MaxBatchSize bound every count parameter.
	MinBatchSize = 1
	MaxBatchSize = 50

	// PassThresholdPercent is the success rate a fresh quiz must reach to
	// promote its words.
	PassThresholdPercent = 70

	// ChoiceDistractorCount is the number of wrong choices offered per
	// multiple-choice question when the catalog has enough words.
	ChoiceDistractorCount = 3
)

// Service is the learning engine. The learner ID is an explicit parameter on
// every operation.
type Service interface {
	// AssignNew assigns up to count catalog words the learner has never been
	// assigned, chosen uniformly at random, in the Learning state.
	//
	// Returns:
	//   - the words actually assigned; empty when the learner already has
	//     every catalog word
	//   - ErrInvalidCount when count is outside [MinBatchSize, MaxBatchSize]
	//
	// The whole batch is written in one transaction.
	AssignNew(ctx context.Context, learnerID uuid.UUID, count int) ([]WordSummary, error)

	// StartQuiz builds a quiz over up to count of the learner's records in
	// the kind's source state. Questions never carry the expected answer.
	StartQuiz(
		ctx context.Context,
		learnerID uuid.UUID,
		count int,
		mode domain.QuizMode,
		kind domain.QuizKind,
	) (*QuizSession, error)

	// Score grades a batch of answers and applies the learning-state rules.
	//
	// Returns:
	//   - ErrAnswersRequired when answers is empty
	//   - ErrNoMatchingWords when no answer matches a record in the kind's
	//     source state
	//
	// Counter updates and state transitions are persisted atomically.
	Score(
		ctx context.Context,
		learnerID uuid.UUID,
		mode domain.QuizMode,
		kind domain.QuizKind,
		answers []Answer,
	) (*ScoreResult, error)

	// Stats aggregates the learner's records.
	Stats(ctx context.Context, learnerID uuid.UUID) (*Stats, error)

	// RandomWords returns up to count catalog words chosen uniformly at random.
	RandomWords(ctx context.Context, count int) ([]WordSummary, error)

	// LearningList returns the learner's words in the Learning state, most
	// recently assigned first.
	LearningList(ctx context.Context, learnerID uuid.UUID) ([]LearningEntry, error)

	// LearnedList returns the learner's words in the Learned state, most
	// recently tested first.
	LearnedList(ctx context.Context, learnerID uuid.UUID) ([]LearnedEntry, error)
}

// WordSummary is a catalog word as shown to a learner.
type WordSummary struct {
	ID      uuid.UUID
	English string
	Turkish string
}

func summarize(w *domain.Word) WordSummary {
	return WordSummary{ID: w.ID, English: w.English, Turkish: w.Turkish}
}

// QuizSession is an ephemeral, ordered set of questions. It is never stored.
type QuizSession struct {
	Mode      domain.QuizMode
	Kind      domain.QuizKind
	Questions []domain.QuizQuestion
}

// Answer is one submitted answer.
type Answer struct {
	WordID uuid.UUID
	Answer string
}

// ScoreItem is the verdict on one matched answer.
type ScoreItem struct {
	WordID        uuid.UUID
	IsCorrect     bool
	CorrectAnswer string
}

// ScoreResult summarizes a scored batch. Total counts only answers that
// matched a record and were scored; Items follow the submission order.
type ScoreResult struct {
	Total       int
	Correct     int
	Wrong       int
	SuccessRate float64
	Passed      bool
	Items       []ScoreItem
	// Promoted and Demoted list the words whose state changed.
	Promoted []uuid.UUID
	Demoted  []uuid.UUID
}

// Stats is a learner's progress summary.
type Stats struct {
	TotalLearned  int
	TotalLearning int
	TotalCorrect  int
	TotalWrong    int
	SuccessRate   float64
	TodayLearned  int
}

// LearningEntry is a word the learner is still learning.
type LearningEntry struct {
	WordID    uuid.UUID
	English   string
	Turkish   string
	CreatedAt time.Time
}

// LearnedEntry is a word the learner has learned, with its answer history.
type LearnedEntry struct {
	WordID       uuid.UUID
	English      string
	Turkish      string
	CorrectCount int
	WrongCount   int
	CreatedAt    time.Time
	LastTestedAt *time.Time
}

// Common error types for the learning Service.
var (
	// ErrInvalidArgument is the parent of every input validation error.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidCount indicates a count outside the allowed batch range.
	ErrInvalidCount = fmt.Errorf("%w: count must be between %d and %d",
		ErrInvalidArgument, MinBatchSize, MaxBatchSize)

	// ErrAnswersRequired indicates an empty answer submission.
	ErrAnswersRequired = fmt.Errorf("%w: answers required", ErrInvalidArgument)

	// ErrInvalidMode indicates an unknown quiz mode.
	ErrInvalidMode = fmt.Errorf("%w: invalid quiz mode", ErrInvalidArgument)

	// ErrInvalidKind indicates an unknown quiz kind.
	ErrInvalidKind = fmt.Errorf("%w: invalid quiz kind", ErrInvalidArgument)

	// ErrInvalidLearner indicates a missing learner ID.
	ErrInvalidLearner = fmt.Errorf("%w: learner id is required", ErrInvalidArgument)

	// ErrNoMatchingWords indicates that none of the submitted answers refer to
	// a word the learner has in the quiz's source state.
	ErrNoMatchingWords = errors.New("no matching words for this user")
)

// ServiceError wraps errors from the learning service with additional context.
// This allows consumers to differentiate between different types of service errors
// using errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "assign_new", "score")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a ServiceError for the given operation.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Operation: operation, Message: message, Err: err}
}

// isEngineError reports whether err is one of the sentinel errors the engine
// returns unwrapped.
func isEngineError(err error) bool {
	return errors.Is(err, ErrInvalidArgument) || errors.Is(err, ErrNoMatchingWords)
}

// wrapError passes engine errors through and wraps everything else.
func wrapError(operation, message string, err error) error {
	if err == nil || isEngineError(err) {
		return err
	}
	return NewServiceError(operation, message, err)
}

func validateCount(count int) error {
	if count < MinBatchSize || count > MaxBatchSize {
		return ErrInvalidCount
	}
	return nil
}

func validateLearner(learnerID uuid.UUID) error {
	if learnerID == uuid.Nil {
		return ErrInvalidLearner
	}
	return nil
}

func validateQuiz(mode domain.QuizMode, kind domain.QuizKind) error {
	if !mode.Valid() {
		return ErrInvalidMode
	}
	if !kind.Valid() {
		return ErrInvalidKind
	}
	return nil
}
