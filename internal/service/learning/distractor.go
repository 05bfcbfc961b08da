package learning

import (
	"context"

	"github.com/wordsprint/wordsprint-api/internal/domain"
	"github.com/wordsprint/wordsprint-api/internal/sampling"
)

// DistractorPool supplies wrong-but-plausible choices for multiple-choice
// questions, drawn from the whole catalog.
type DistractorPool struct {
	catalog *WordCatalog
	sampler *sampling.Sampler
}

// NewDistractorPool creates a DistractorPool over the catalog.
func NewDistractorPool(catalog *WordCatalog, sampler *sampling.Sampler) *DistractorPool {
	if catalog == nil {
		panic("catalog cannot be nil")
	}
	if sampler == nil {
		panic("sampler cannot be nil")
	}

	return &DistractorPool{catalog: catalog, sampler: sampler}
}

// Sample returns up to n catalog texts in lang chosen uniformly at random.
// Texts equal to excluding, and repeats of an already chosen text, are
// skipped; both comparisons ignore case. Fewer than n values come back when
// the catalog runs out.
func (p *DistractorPool) Sample(ctx context.Context, lang domain.Language, excluding string, n int) ([]string, error) {
	candidates, err := p.Candidates(ctx, lang)
	if err != nil {
		return nil, err
	}
	return p.Draw(candidates, excluding, n), nil
}

// Candidates loads the distinct catalog texts in lang. Texts that differ only
// in case collapse to the first one seen.
func (p *DistractorPool) Candidates(ctx context.Context, lang domain.Language) ([]string, error) {
	words, err := p.catalog.All(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(words))
	texts := make([]string, 0, len(words))
	for _, w := range words {
		text := w.Text(lang)
		key := domain.NormalizeAnswer(text)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		texts = append(texts, text)
	}

	return texts, nil
}

// Draw picks up to n values from candidates the same way Sample does. It
// lets a quiz load the candidates once and draw for every question.
func (p *DistractorPool) Draw(candidates []string, excluding string, n int) []string {
	out := make([]string, 0, max(n, 0))
	if n <= 0 {
		return out
	}

	excludeKey := domain.NormalizeAnswer(excluding)
	seen := make(map[string]struct{}, n)

	p.sampler.Walk(len(candidates), func(i int) bool {
		text := candidates[i]
		key := domain.NormalizeAnswer(text)
		if key == excludeKey {
			return true
		}
		if _, dup := seen[key]; dup {
			return true
		}
		seen[key] = struct{}{}
		out = append(out, text)
		return len(out) < n
	})

	return out
}
