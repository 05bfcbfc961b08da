// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidQuizMode is returned when a quiz mode is not one of the known modes.
	ErrInvalidQuizMode = errors.New("invalid quiz mode")

	// ErrInvalidQuizKind is returned when a quiz kind is neither fresh nor review.
	ErrInvalidQuizKind = errors.New("invalid quiz kind")

	// ErrInvalidLearningState is returned when a learning state is not valid.
	ErrInvalidLearningState = errors.New("invalid learning state")
)
