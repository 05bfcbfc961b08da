package learning

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/wordsprint/wordsprint-api/internal/domain"
)

// LearningList implements Service.
func (s *learningServiceImpl) LearningList(ctx context.Context, learnerID uuid.UUID) ([]LearningEntry, error) {
	if err := validateLearner(learnerID); err != nil {
		return nil, err
	}

	records, words, err := s.recordsWithWords(ctx, learnerID, domain.StateLearning)
	if err != nil {
		s.logFailure(ctx, "learning_list", learnerID, err)
		return nil, wrapError("learning_list", "failed to load learning words", err)
	}

	slices.SortStableFunc(records, func(a, b *domain.LearnerRecord) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.WordID.String(), b.WordID.String())
	})

	out := make([]LearningEntry, 0, len(records))
	for _, r := range records {
		w, ok := words[r.WordID]
		if !ok {
			continue
		}
		out = append(out, LearningEntry{
			WordID:    r.WordID,
			English:   w.English,
			Turkish:   w.Turkish,
			CreatedAt: r.CreatedAt,
		})
	}
	return out, nil
}

// LearnedList implements Service.
func (s *learningServiceImpl) LearnedList(ctx context.Context, learnerID uuid.UUID) ([]LearnedEntry, error) {
	if err := validateLearner(learnerID); err != nil {
		return nil, err
	}

	records, words, err := s.recordsWithWords(ctx, learnerID, domain.StateLearned)
	if err != nil {
		s.logFailure(ctx, "learned_list", learnerID, err)
		return nil, wrapError("learned_list", "failed to load learned words", err)
	}

	slices.SortStableFunc(records, func(a, b *domain.LearnerRecord) int {
		if c := lastActivity(b).Compare(lastActivity(a)); c != 0 {
			return c
		}
		return cmp.Compare(a.WordID.String(), b.WordID.String())
	})

	out := make([]LearnedEntry, 0, len(records))
	for _, r := range records {
		w, ok := words[r.WordID]
		if !ok {
			continue
		}
		out = append(out, LearnedEntry{
			WordID:       r.WordID,
			English:      w.English,
			Turkish:      w.Turkish,
			CorrectCount: r.CorrectCount,
			WrongCount:   r.WrongCount,
			CreatedAt:    r.CreatedAt,
			LastTestedAt: r.LastTestedAt,
		})
	}
	return out, nil
}

func (s *learningServiceImpl) recordsWithWords(
	ctx context.Context,
	learnerID uuid.UUID,
	state domain.LearningState,
) ([]*domain.LearnerRecord, map[uuid.UUID]*domain.Word, error) {
	records, err := s.records.GetByLearnerAndState(ctx, learnerID, state)
	if err != nil {
		return nil, nil, err
	}

	words, err := s.catalog.GetByIDs(ctx, lo.Map(records, func(r *domain.LearnerRecord, _ int) uuid.UUID {
		return r.WordID
	}))
	if err != nil {
		return nil, nil, err
	}
	return records, words, nil
}

func lastActivity(r *domain.LearnerRecord) time.Time {
	if r.LastTestedAt != nil {
		return *r.LastTestedAt
	}
	return r.CreatedAt
}
