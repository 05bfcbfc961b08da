package learning

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/wordsprint/wordsprint-api/internal/domain"
	"github.com/wordsprint/wordsprint-api/internal/events"
	"github.com/wordsprint/wordsprint-api/internal/platform/logger"
	"github.com/wordsprint/wordsprint-api/internal/sampling"
)

// Option configures the service.
type Option func(*learningServiceImpl)

// WithClock replaces time.Now as the source of record timestamps and of the
// current UTC day.
func WithClock(now func() time.Time) Option {
	return func(s *learningServiceImpl) {
		if now != nil {
			s.now = now
		}
	}
}

// WithEventEmitter publishes learning events after every committed
// assignment or scored quiz.
func WithEventEmitter(emitter events.EventEmitter) Option {
	return func(s *learningServiceImpl) {
		if emitter != nil {
			s.emitter = emitter
		}
	}
}

// learningServiceImpl implements the Service interface
type learningServiceImpl struct {
	catalog   *WordCatalog
	records   RecordRepository
	planner   *AssignmentPlanner
	generator *QuizGenerator
	scorer    *AnswerScorer
	stats     *StatsReporter
	emitter   events.EventEmitter
	now       func() time.Time
	logger    *slog.Logger
}

// NewService creates the learning engine. repos serves reads outside a
// transaction; tx runs the operations that write.
func NewService(
	repos Repositories,
	tx Transactor,
	sampler *sampling.Sampler,
	log *slog.Logger,
	opts ...Option,
) Service {
	if repos.Words == nil {
		panic("word repository cannot be nil")
	}
	if repos.Records == nil {
		panic("record repository cannot be nil")
	}
	if tx == nil {
		panic("transactor cannot be nil")
	}
	if sampler == nil {
		panic("sampler cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	s := &learningServiceImpl{
		records: repos.Records,
		emitter: events.NopEmitter,
		now:     time.Now,
		logger:  log.With(slog.String("component", "learning_service")),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.catalog = NewWordCatalog(repos.Words, sampler)
	s.planner = NewAssignmentPlanner(tx, sampler, s.now, log)
	s.generator = NewQuizGenerator(repos.Records, s.catalog, NewDistractorPool(s.catalog, sampler), sampler, log)
	s.scorer = NewAnswerScorer(tx, s.now, log)
	s.stats = NewStatsReporter(repos.Records, s.now)

	return s
}

// AssignNew implements Service.
func (s *learningServiceImpl) AssignNew(ctx context.Context, learnerID uuid.UUID, count int) ([]WordSummary, error) {
	if err := validateLearner(learnerID); err != nil {
		return nil, err
	}

	words, err := s.planner.AssignNew(ctx, learnerID, count)
	if err != nil {
		s.logFailure(ctx, "assign_new", learnerID, err)
		return nil, wrapError("assign_new", "failed to assign words", err)
	}

	if len(words) > 0 {
		s.emit(ctx, events.TypeWordsAssigned, learnerID, events.WordsAssignedPayload{
			Requested: count,
			WordIDs:   lo.Map(words, func(w WordSummary, _ int) uuid.UUID { return w.ID }),
		})
	}

	return words, nil
}

// StartQuiz implements Service.
func (s *learningServiceImpl) StartQuiz(
	ctx context.Context,
	learnerID uuid.UUID,
	count int,
	mode domain.QuizMode,
	kind domain.QuizKind,
) (*QuizSession, error) {
	if err := validateLearner(learnerID); err != nil {
		return nil, err
	}

	session, err := s.generator.Start(ctx, learnerID, count, mode, kind)
	if err != nil {
		s.logFailure(ctx, "start_quiz", learnerID, err)
		return nil, wrapError("start_quiz", "failed to build quiz", err)
	}

	return session, nil
}

// Score implements Service.
func (s *learningServiceImpl) Score(
	ctx context.Context,
	learnerID uuid.UUID,
	mode domain.QuizMode,
	kind domain.QuizKind,
	answers []Answer,
) (*ScoreResult, error) {
	if err := validateLearner(learnerID); err != nil {
		return nil, err
	}

	result, err := s.scorer.Score(ctx, learnerID, mode, kind, answers)
	if err != nil {
		s.logFailure(ctx, "score", learnerID, err)
		return nil, wrapError("score", "failed to score answers", err)
	}

	s.emit(ctx, events.TypeQuizScored, learnerID, events.QuizScoredPayload{
		Kind:        string(kind),
		Mode:        string(mode),
		Total:       result.Total,
		Correct:     result.Correct,
		SuccessRate: result.SuccessRate,
		Passed:      result.Passed,
		Promoted:    result.Promoted,
		Demoted:     result.Demoted,
	})

	return result, nil
}

// Stats implements Service.
func (s *learningServiceImpl) Stats(ctx context.Context, learnerID uuid.UUID) (*Stats, error) {
	if err := validateLearner(learnerID); err != nil {
		return nil, err
	}

	stats, err := s.stats.Stats(ctx, learnerID)
	if err != nil {
		s.logFailure(ctx, "stats", learnerID, err)
		return nil, wrapError("stats", "failed to load stats", err)
	}

	return stats, nil
}

// RandomWords implements Service.
func (s *learningServiceImpl) RandomWords(ctx context.Context, count int) ([]WordSummary, error) {
	if err := validateCount(count); err != nil {
		return nil, err
	}

	words, err := s.catalog.RandomSample(ctx, count)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to sample catalog",
			slog.String("error", err.Error()))
		return nil, wrapError("random_words", "failed to sample catalog", err)
	}

	return lo.Map(words, func(w *domain.Word, _ int) WordSummary { return summarize(w) }), nil
}

// emit publishes an event for a committed change. A failed emit is logged
// and does not fail the operation.
func (s *learningServiceImpl) emit(ctx context.Context, eventType string, learnerID uuid.UUID, payload interface{}) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewEvent(eventType, learnerID, payload)
	if err != nil {
		log.Error("failed to build event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
		return
	}
	event.CreatedAt = s.now().UTC()

	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("failed to emit event",
			slog.String("event_type", eventType),
			slog.String("event_id", event.ID.String()),
			slog.String("error", err.Error()))
	}
}

func (s *learningServiceImpl) logFailure(ctx context.Context, operation string, learnerID uuid.UUID, err error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	attrs := []any{
		slog.String("operation", operation),
		slog.String("learner_id", learnerID.String()),
		slog.String("error", err.Error()),
	}
	if isEngineError(err) {
		log.Debug("request rejected", attrs...)
		return
	}
	log.Error("learning operation failed", attrs...)
}

var _ Service = (*learningServiceImpl)(nil)
