// Package seed loads English/Turkish word pairs into the catalog.
//
// Word lists are TOML documents with one [[words]] table per pair:
//
//	[[words]]
//	english = "apple"
//	turkish = "elma"
//
// A starter list is embedded in the binary and used when no file is given.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/samber/lo"
	"github.com/wordsprint/wordsprint-api/internal/domain"
	"github.com/wordsprint/wordsprint-api/internal/store"
)

//go:embed words.toml
var defaultWords []byte

// ErrEmptyList is returned when a word list contains no pairs.
var ErrEmptyList = errors.New("word list is empty")

// Pair is one english/turkish entry of a word list.
type Pair struct {
	English string `toml:"english"`
	Turkish string `toml:"turkish"`
}

type wordList struct {
	Words []Pair `toml:"words"`
}

// Result reports what Apply did.
type Result struct {
	Parsed   int
	Inserted int
	Skipped  bool
}

// Default returns the embedded starter word list.
func Default() ([]Pair, error) {
	return Parse(string(defaultWords))
}

// LoadFile reads a word list from a TOML file.
func LoadFile(path string) ([]Pair, error) {
	var list wordList
	meta, err := toml.DecodeFile(path, &list)
	if err != nil {
		return nil, fmt.Errorf("failed to decode word list %s: %w", path, err)
	}
	return checkList(list, meta)
}

// Parse reads a word list from TOML text.
func Parse(data string) ([]Pair, error) {
	var list wordList
	meta, err := toml.Decode(data, &list)
	if err != nil {
		return nil, fmt.Errorf("failed to decode word list: %w", err)
	}
	return checkList(list, meta)
}

func checkList(list wordList, meta toml.MetaData) ([]Pair, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := lo.Map(undecoded, func(k toml.Key, _ int) string { return k.String() })
		return nil, fmt.Errorf("%w: unknown keys in word list: %s", domain.ErrValidation, strings.Join(keys, ", "))
	}
	if len(list.Words) == 0 {
		return nil, ErrEmptyList
	}
	return list.Words, nil
}

// Build validates pairs and turns them into catalog words. Pairs repeated
// within the list are kept once.
func Build(pairs []Pair) ([]*domain.Word, error) {
	unique := lo.UniqBy(pairs, func(p Pair) Pair {
		return Pair{English: strings.TrimSpace(p.English), Turkish: strings.TrimSpace(p.Turkish)}
	})

	words := make([]*domain.Word, 0, len(unique))
	for i, p := range unique {
		w, err := domain.NewWord(p.English, p.Turkish)
		if err != nil {
			return nil, fmt.Errorf("word %d (%q/%q): %w", i+1, p.English, p.Turkish, err)
		}
		words = append(words, w)
	}
	return words, nil
}

// Apply inserts pairs into the catalog. When the catalog already holds words
// nothing is written unless force is set; forced runs still skip pairs that
// already exist.
func Apply(ctx context.Context, words store.WordStore, pairs []Pair, force bool, log *slog.Logger) (Result, error) {
	log = log.With(slog.String("component", "seed"))

	batch, err := Build(pairs)
	if err != nil {
		return Result{}, err
	}
	res := Result{Parsed: len(batch)}

	if !force {
		existing, err := words.Count(ctx)
		if err != nil {
			return res, fmt.Errorf("failed to count catalog words: %w", err)
		}
		if existing > 0 {
			log.InfoContext(ctx, "catalog already seeded, skipping",
				slog.Int("existing", existing))
			res.Skipped = true
			return res, nil
		}
	}

	inserted, err := words.CreateMultiple(ctx, batch)
	if err != nil {
		return res, fmt.Errorf("failed to insert catalog words: %w", err)
	}
	res.Inserted = inserted

	log.InfoContext(ctx, "catalog seeded",
		slog.Int("parsed", res.Parsed),
		slog.Int("inserted", res.Inserted))
	return res, nil
}
