package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWord(t *testing.T) {
	t.Parallel()

	word, err := NewWord("  apple ", "elma")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, word.ID)
	assert.Equal(t, "apple", word.English)
	assert.Equal(t, "elma", word.Turkish)
	assert.False(t, word.CreatedAt.IsZero())
}

func TestWordValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		word    Word
		wantErr error
	}{
		{
			name:    "valid",
			word:    Word{ID: uuid.New(), English: "book", Turkish: "kitap"},
			wantErr: nil,
		},
		{
			name:    "nil id",
			word:    Word{English: "book", Turkish: "kitap"},
			wantErr: ErrWordIDEmpty,
		},
		{
			name:    "blank english",
			word:    Word{ID: uuid.New(), English: "   ", Turkish: "kitap"},
			wantErr: ErrWordEnglishEmpty,
		},
		{
			name:    "blank turkish",
			word:    Word{ID: uuid.New(), English: "book", Turkish: ""},
			wantErr: ErrWordTurkishEmpty,
		},
		{
			name:    "too long",
			word:    Word{ID: uuid.New(), English: strings.Repeat("a", MaxWordLength+1), Turkish: "x"},
			wantErr: ErrWordTooLong,
		},
		{
			// 100 two-byte runes is still within the limit
			name:    "multibyte at limit",
			word:    Word{ID: uuid.New(), English: "x", Turkish: strings.Repeat("ş", MaxWordLength)},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.word.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWordText(t *testing.T) {
	t.Parallel()

	word := Word{English: "friend", Turkish: "arkadaş"}
	assert.Equal(t, "friend", word.Text(LanguageEnglish))
	assert.Equal(t, "arkadaş", word.Text(LanguageTurkish))
}
