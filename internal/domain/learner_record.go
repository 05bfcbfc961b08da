package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// LearningState is the position of a word in a learner's progression.
type LearningState string

// Possible learning states.
const (
	StateLearning LearningState = "learning"
	StateLearned  LearningState = "learned"
)

// Valid reports whether s is a known learning state.
func (s LearningState) Valid() bool {
	return s == StateLearning || s == StateLearned
}

// LearnerRecord validation errors
var (
	ErrRecordLearnerIDEmpty  = errors.New("learner record learner ID cannot be empty")
	ErrRecordWordIDEmpty     = errors.New("learner record word ID cannot be empty")
	ErrRecordNegativeCounter = errors.New("learner record counters must be non-negative")
)

// LearnerRecord tracks one learner's progress on one catalog word.
// The pair (LearnerID, WordID) is unique.
type LearnerRecord struct {
	LearnerID    uuid.UUID     `json:"learner_id"`
	WordID       uuid.UUID     `json:"word_id"`
	State        LearningState `json:"state"`
	CorrectCount int           `json:"correct_count"`
	WrongCount   int           `json:"wrong_count"`
	CreatedAt    time.Time     `json:"created_at"`
	LastTestedAt *time.Time    `json:"last_tested_at,omitempty"`
}

// NewLearnerRecord creates a record in the Learning state with zeroed counters.
func NewLearnerRecord(learnerID, wordID uuid.UUID, now time.Time) (*LearnerRecord, error) {
	record := &LearnerRecord{
		LearnerID: learnerID,
		WordID:    wordID,
		State:     StateLearning,
		CreatedAt: now.UTC(),
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	return record, nil
}

// Validate checks if the LearnerRecord has valid data.
func (r *LearnerRecord) Validate() error {
	if r.LearnerID == uuid.Nil {
		return ErrRecordLearnerIDEmpty
	}

	if r.WordID == uuid.Nil {
		return ErrRecordWordIDEmpty
	}

	if !r.State.Valid() {
		return ErrInvalidLearningState
	}

	if r.CorrectCount < 0 || r.WrongCount < 0 {
		return ErrRecordNegativeCounter
	}

	return nil
}

// RecordAnswer counts one scored answer and stamps LastTestedAt.
func (r *LearnerRecord) RecordAnswer(correct bool, now time.Time) {
	if correct {
		r.CorrectCount++
	} else {
		r.WrongCount++
	}
	tested := now.UTC()
	r.LastTestedAt = &tested
}

// Promote moves the record to Learned.
func (r *LearnerRecord) Promote() {
	r.State = StateLearned
}

// Demote moves the record back to Learning.
func (r *LearnerRecord) Demote() {
	r.State = StateLearning
}

// TimesScored is the number of answers ever scored against this record.
func (r *LearnerRecord) TimesScored() int {
	return r.CorrectCount + r.WrongCount
}

// LearnerSummary aggregates a learner's records for the profile view.
type LearnerSummary struct {
	TotalLearned  int
	TotalLearning int
	TotalCorrect  int
	TotalWrong    int
	TodayLearned  int
}
