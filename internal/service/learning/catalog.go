package learning

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/wordsprint/wordsprint-api/internal/domain"
	"github.com/wordsprint/wordsprint-api/internal/sampling"
)

// WordCatalog gives the engine read access to the shared word catalog and
// draws uniform samples from it.
type WordCatalog struct {
	words   WordRepository
	sampler *sampling.Sampler
}

// NewWordCatalog creates a WordCatalog over the given repository.
func NewWordCatalog(words WordRepository, sampler *sampling.Sampler) *WordCatalog {
	if words == nil {
		panic("words cannot be nil")
	}
	if sampler == nil {
		panic("sampler cannot be nil")
	}

	return &WordCatalog{words: words, sampler: sampler}
}

// WithRepository returns a catalog reading through words, typically a
// transaction-bound repository, with the same sampler.
func (c *WordCatalog) WithRepository(words WordRepository) *WordCatalog {
	return NewWordCatalog(words, c.sampler)
}

// GetByID returns a single word.
func (c *WordCatalog) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	return c.words.GetByID(ctx, id)
}

// GetByIDs returns the words with the given IDs keyed by ID. Unknown IDs are
// absent from the map.
func (c *WordCatalog) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Word, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]*domain.Word{}, nil
	}
	return c.words.GetByIDs(ctx, ids)
}

// All returns every catalog word.
func (c *WordCatalog) All(ctx context.Context) ([]*domain.Word, error) {
	return c.words.ListAll(ctx)
}

// RandomSample returns up to n distinct catalog words chosen uniformly at
// random.
func (c *WordCatalog) RandomSample(ctx context.Context, n int) ([]*domain.Word, error) {
	return c.RandomSampleExcluding(ctx, nil, n)
}

// RandomSampleExcluding returns up to n distinct catalog words chosen
// uniformly at random from the words whose IDs are not in exclude.
func (c *WordCatalog) RandomSampleExcluding(ctx context.Context, exclude []uuid.UUID, n int) ([]*domain.Word, error) {
	if n <= 0 {
		return []*domain.Word{}, nil
	}

	all, err := c.words.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	candidates := all
	if len(exclude) > 0 {
		excluded := lo.SliceToMap(exclude, func(id uuid.UUID) (uuid.UUID, struct{}) {
			return id, struct{}{}
		})
		candidates = lo.Filter(all, func(w *domain.Word, _ int) bool {
			_, skip := excluded[w.ID]
			return !skip
		})
	}

	return sampling.Sample(c.sampler, candidates, n), nil
}
