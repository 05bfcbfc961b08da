package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// QuizMode describes the prompt language, the answer language, and whether
// the learner types the answer or picks it from choices.
type QuizMode string

// Supported quiz modes.
const (
	QuizModeTurkishToEnglishTyping QuizMode = "tr_en_typing"
	QuizModeEnglishToTurkishTyping QuizMode = "en_tr_typing"
	QuizModeTurkishToEnglishChoice QuizMode = "tr_en_choice"
	QuizModeEnglishToTurkishChoice QuizMode = "en_tr_choice"
)

// QuizModes lists every supported mode.
var QuizModes = []QuizMode{
	QuizModeTurkishToEnglishTyping,
	QuizModeEnglishToTurkishTyping,
	QuizModeTurkishToEnglishChoice,
	QuizModeEnglishToTurkishChoice,
}

// ParseQuizMode converts a wire value into a QuizMode. Matching ignores case
// and surrounding whitespace.
func ParseQuizMode(s string) (QuizMode, error) {
	mode := QuizMode(strings.ToLower(strings.TrimSpace(s)))
	if !mode.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidQuizMode, s)
	}
	return mode, nil
}

// Valid reports whether m is one of the supported modes.
func (m QuizMode) Valid() bool {
	switch m {
	case QuizModeTurkishToEnglishTyping, QuizModeEnglishToTurkishTyping,
		QuizModeTurkishToEnglishChoice, QuizModeEnglishToTurkishChoice:
		return true
	}
	return false
}

// PromptLanguage is the language the question is shown in.
func (m QuizMode) PromptLanguage() Language {
	if m.AnswerLanguage() == LanguageEnglish {
		return LanguageTurkish
	}
	return LanguageEnglish
}

// AnswerLanguage is the language the learner must answer in.
func (m QuizMode) AnswerLanguage() Language {
	switch m {
	case QuizModeTurkishToEnglishTyping, QuizModeTurkishToEnglishChoice:
		return LanguageEnglish
	default:
		return LanguageTurkish
	}
}

// IsChoice reports whether questions in this mode carry answer choices.
func (m QuizMode) IsChoice() bool {
	return m == QuizModeTurkishToEnglishChoice || m == QuizModeEnglishToTurkishChoice
}

// QuizKind selects which records a quiz draws from.
type QuizKind string

// Supported quiz kinds.
const (
	// QuizKindFresh quizzes words still being learned.
	QuizKindFresh QuizKind = "fresh"
	// QuizKindReview re-checks words already learned.
	QuizKindReview QuizKind = "review"
)

// Valid reports whether k is a known quiz kind.
func (k QuizKind) Valid() bool {
	return k == QuizKindFresh || k == QuizKindReview
}

// SourceState is the learning state a quiz of this kind draws records from.
func (k QuizKind) SourceState() LearningState {
	if k == QuizKindReview {
		return StateLearned
	}
	return StateLearning
}

// QuizQuestion is one prompt handed to the learner. It never carries the
// expected answer; Choices is empty for typing modes.
type QuizQuestion struct {
	WordID           uuid.UUID `json:"word_id"`
	Mode             QuizMode  `json:"mode"`
	Prompt           string    `json:"prompt"`
	ExpectedLanguage Language  `json:"expected_language"`
	Choices          []string  `json:"choices,omitempty"`
}

// NormalizeAnswer prepares free text for comparison: surrounding whitespace
// is trimmed and the text is lower-cased without regard to locale.
func NormalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// AnswersMatch reports whether a submitted answer matches the expected text.
func AnswersMatch(submitted, expected string) bool {
	return NormalizeAnswer(submitted) == NormalizeAnswer(expected)
}
