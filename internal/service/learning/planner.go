package learning

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/wordsprint/wordsprint-api/internal/domain"
	"github.com/wordsprint/wordsprint-api/internal/platform/logger"
	"github.com/wordsprint/wordsprint-api/internal/sampling"
	"github.com/wordsprint/wordsprint-api/internal/store"
)

// AssignmentPlanner hands out catalog words a learner has never been
// assigned.
type AssignmentPlanner struct {
	tx      Transactor
	sampler *sampling.Sampler
	now     func() time.Time
	logger  *slog.Logger
}

// NewAssignmentPlanner creates an AssignmentPlanner.
func NewAssignmentPlanner(
	tx Transactor,
	sampler *sampling.Sampler,
	now func() time.Time,
	log *slog.Logger,
) *AssignmentPlanner {
	if tx == nil {
		panic("transactor cannot be nil")
	}
	if sampler == nil {
		panic("sampler cannot be nil")
	}
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = slog.Default()
	}

	return &AssignmentPlanner{
		tx:      tx,
		sampler: sampler,
		now:     now,
		logger:  log.With(slog.String("component", "assignment_planner")),
	}
}

// AssignNew assigns up to count unassigned catalog words to the learner in one
// transaction and returns the words that were actually assigned. Words a
// concurrent call assigned first are silently left out.
func (p *AssignmentPlanner) AssignNew(ctx context.Context, learnerID uuid.UUID, count int) ([]WordSummary, error) {
	if err := validateCount(count); err != nil {
		return nil, err
	}
	log := logger.FromContextOrDefault(ctx, p.logger)

	var assigned []WordSummary
	err := withRetry(ctx, log, "assign_new", func() error {
		assigned = nil
		return p.tx.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
			words, err := p.assignBatch(ctx, repos, learnerID, count)
			if err != nil {
				return err
			}
			assigned = words
			return nil
		})
	})

	if errors.Is(err, store.ErrDuplicate) {
		// a concurrent assignment won every attempt; its words count as assigned
		log.Warn("assignment kept conflicting with a concurrent call",
			slog.String("learner_id", learnerID.String()))
		return []WordSummary{}, nil
	}
	if err != nil {
		return nil, err
	}

	log.Debug("assigned new words",
		slog.String("learner_id", learnerID.String()),
		slog.Int("requested", count),
		slog.Int("assigned", len(assigned)))

	return assigned, nil
}

func (p *AssignmentPlanner) assignBatch(
	ctx context.Context,
	repos Repositories,
	learnerID uuid.UUID,
	count int,
) ([]WordSummary, error) {
	owned, err := repos.Records.ListWordIDsByLearner(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	catalog := NewWordCatalog(repos.Words, p.sampler)
	picked, err := catalog.RandomSampleExcluding(ctx, owned, count)
	if err != nil {
		return nil, err
	}
	if len(picked) == 0 {
		return []WordSummary{}, nil
	}

	now := p.now()
	records := make([]*domain.LearnerRecord, 0, len(picked))
	for _, w := range picked {
		record, err := domain.NewLearnerRecord(learnerID, w.ID, now)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	inserted, err := repos.Records.Insert(ctx, records)
	if err != nil {
		return nil, err
	}

	created := lo.SliceToMap(inserted, func(r *domain.LearnerRecord) (uuid.UUID, struct{}) {
		return r.WordID, struct{}{}
	})

	// keep the draw order
	out := make([]WordSummary, 0, len(inserted))
	for _, w := range picked {
		if _, ok := created[w.ID]; ok {
			out = append(out, summarize(w))
		}
	}
	return out, nil
}
