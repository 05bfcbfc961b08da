package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the learning engine.
const (
	// TypeWordsAssigned is emitted after new words are assigned to a learner.
	TypeWordsAssigned = "learning.words_assigned"

	// TypeQuizScored is emitted after a quiz submission is scored and saved.
	TypeQuizScored = "learning.quiz_scored"
)

// Event describes something that happened to a learner's records.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// LearnerID is the learner the event concerns
	LearnerID uuid.UUID `json:"learner_id"`

	// Payload contains the type-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates a new Event with the specified type, learner, and payload.
func NewEvent(eventType string, learnerID uuid.UUID, payload interface{}) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		LearnerID: learnerID,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// WordsAssignedPayload is the payload of TypeWordsAssigned.
type WordsAssignedPayload struct {
	Requested int         `json:"requested"`
	WordIDs   []uuid.UUID `json:"word_ids"`
}

// QuizScoredPayload is the payload of TypeQuizScored.
type QuizScoredPayload struct {
	Kind        string      `json:"kind"`
	Mode        string      `json:"mode"`
	Total       int         `json:"total"`
	Correct     int         `json:"correct"`
	SuccessRate float64     `json:"success_rate"`
	Passed      bool        `json:"passed"`
	Promoted    []uuid.UUID `json:"promoted,omitempty"`
	Demoted     []uuid.UUID `json:"demoted,omitempty"`
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *Event) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *Event) error
}

// EmitterFunc adapts a function to the EventEmitter interface.
type EmitterFunc func(ctx context.Context, event *Event) error

// EmitEvent calls f(ctx, event).
func (f EmitterFunc) EmitEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// NopEmitter discards every event.
var NopEmitter EventEmitter = EmitterFunc(func(context.Context, *Event) error { return nil })
