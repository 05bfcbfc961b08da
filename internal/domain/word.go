package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxWordLength is the maximum number of characters in either side of a word pair.
const MaxWordLength = 100

// Word-specific validation errors
var (
	// ErrWordIDEmpty is returned when a word ID is empty or nil.
	ErrWordIDEmpty = errors.New("word ID cannot be empty")

	// ErrWordEnglishEmpty is returned when the English text is blank.
	ErrWordEnglishEmpty = errors.New("english text cannot be empty")

	// ErrWordTurkishEmpty is returned when the Turkish text is blank.
	ErrWordTurkishEmpty = errors.New("turkish text cannot be empty")

	// ErrWordTooLong is returned when either text exceeds MaxWordLength characters.
	ErrWordTooLong = fmt.Errorf("word text cannot exceed %d characters", MaxWordLength)
)

// Language identifies one side of a word pair.
type Language string

// Supported languages.
const (
	LanguageEnglish Language = "EN"
	LanguageTurkish Language = "TR"
)

// Word is an immutable English/Turkish pair from the shared catalog.
type Word struct {
	ID        uuid.UUID `json:"id"`
	English   string    `json:"english"`
	Turkish   string    `json:"turkish"`
	CreatedAt time.Time `json:"created_at"`
}

// NewWord creates a catalog word with a fresh ID. Surrounding whitespace is
// trimmed from both texts before validation.
func NewWord(english, turkish string) (*Word, error) {
	word := &Word{
		ID:        uuid.New(),
		English:   strings.TrimSpace(english),
		Turkish:   strings.TrimSpace(turkish),
		CreatedAt: time.Now().UTC(),
	}

	if err := word.Validate(); err != nil {
		return nil, err
	}

	return word, nil
}

// Validate checks if the Word has valid data.
func (w *Word) Validate() error {
	if w.ID == uuid.Nil {
		return ErrWordIDEmpty
	}

	if strings.TrimSpace(w.English) == "" {
		return ErrWordEnglishEmpty
	}

	if strings.TrimSpace(w.Turkish) == "" {
		return ErrWordTurkishEmpty
	}

	if utf8.RuneCountInString(w.English) > MaxWordLength ||
		utf8.RuneCountInString(w.Turkish) > MaxWordLength {
		return ErrWordTooLong
	}

	return nil
}

// Text returns the side of the pair written in lang.
func (w *Word) Text(lang Language) string {
	if lang == LanguageTurkish {
		return w.Turkish
	}
	return w.English
}
