package learning

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/wordsprint/wordsprint-api/internal/domain"
	"github.com/wordsprint/wordsprint-api/internal/platform/logger"
)

// AnswerScorer grades answers and applies the learning-state rules:
//
//   - fresh quiz: a success rate of at least PassThresholdPercent promotes
//     every answered word to Learned
//   - review quiz: every word answered wrong goes back to Learning
type AnswerScorer struct {
	tx     Transactor
	now    func() time.Time
	logger *slog.Logger
}

// NewAnswerScorer creates an AnswerScorer.
func NewAnswerScorer(tx Transactor, now func() time.Time, log *slog.Logger) *AnswerScorer {
	if tx == nil {
		panic("transactor cannot be nil")
	}
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = slog.Default()
	}

	return &AnswerScorer{
		tx:     tx,
		now:    now,
		logger: log.With(slog.String("component", "answer_scorer")),
	}
}

// Score grades answers against the learner's records in the kind's source
// state. Answers for other words are skipped. The matched records are locked
// for the duration of the transaction so concurrent submissions on the same
// words serialize.
func (s *AnswerScorer) Score(
	ctx context.Context,
	learnerID uuid.UUID,
	mode domain.QuizMode,
	kind domain.QuizKind,
	answers []Answer,
) (*ScoreResult, error) {
	if len(answers) == 0 {
		return nil, ErrAnswersRequired
	}
	if err := validateQuiz(mode, kind); err != nil {
		return nil, err
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	wordIDs := lo.Uniq(lo.Map(answers, func(a Answer, _ int) uuid.UUID { return a.WordID }))

	var result *ScoreResult
	err := withRetry(ctx, log, "score", func() error {
		result = nil
		return s.tx.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
			r, err := s.scoreBatch(ctx, repos, learnerID, mode, kind, answers, wordIDs)
			if err != nil {
				return err
			}
			result = r
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	log.Debug("scored quiz",
		slog.String("learner_id", learnerID.String()),
		slog.String("kind", string(kind)),
		slog.Int("total", result.Total),
		slog.Int("correct", result.Correct),
		slog.Bool("passed", result.Passed))

	return result, nil
}

func (s *AnswerScorer) scoreBatch(
	ctx context.Context,
	repos Repositories,
	learnerID uuid.UUID,
	mode domain.QuizMode,
	kind domain.QuizKind,
	answers []Answer,
	wordIDs []uuid.UUID,
) (*ScoreResult, error) {
	locked, err := repos.Records.GetByLearnerAndWordsForUpdate(ctx, learnerID, wordIDs)
	if err != nil {
		return nil, err
	}

	source := kind.SourceState()
	matched := lo.Filter(locked, func(r *domain.LearnerRecord, _ int) bool {
		return r.State == source
	})
	if len(matched) == 0 {
		return nil, ErrNoMatchingWords
	}

	byWord := lo.KeyBy(matched, func(r *domain.LearnerRecord) uuid.UUID { return r.WordID })
	words, err := repos.Words.GetByIDs(ctx, lo.Keys(byWord))
	if err != nil {
		return nil, err
	}

	now := s.now()
	answerLang := mode.AnswerLanguage()
	result := &ScoreResult{Items: make([]ScoreItem, 0, len(answers))}
	touched := make(map[uuid.UUID]bool, len(matched))
	missed := make(map[uuid.UUID]bool)

	for _, a := range answers {
		record, ok := byWord[a.WordID]
		if !ok {
			continue
		}
		word, ok := words[a.WordID]
		if !ok {
			continue
		}

		expected := word.Text(answerLang)
		correct := domain.AnswersMatch(a.Answer, expected)
		record.RecordAnswer(correct, now)
		touched[record.WordID] = true
		if correct {
			result.Correct++
		} else {
			missed[record.WordID] = true
		}

		result.Items = append(result.Items, ScoreItem{
			WordID:        a.WordID,
			IsCorrect:     correct,
			CorrectAnswer: expected,
		})
	}

	result.Total = len(result.Items)
	result.Wrong = result.Total - result.Correct
	result.SuccessRate = successRate(result.Correct, result.Total)

	updated := lo.Filter(matched, func(r *domain.LearnerRecord, _ int) bool {
		return touched[r.WordID]
	})

	switch kind {
	case domain.QuizKindFresh:
		result.Passed = result.Total > 0 && result.SuccessRate >= PassThresholdPercent
		if result.Passed {
			for _, r := range updated {
				r.Promote()
				result.Promoted = append(result.Promoted, r.WordID)
			}
		}
	case domain.QuizKindReview:
		result.Passed = true
		for _, r := range updated {
			if missed[r.WordID] {
				r.Demote()
				result.Demoted = append(result.Demoted, r.WordID)
			}
		}
	}

	if len(updated) > 0 {
		if err := repos.Records.Upsert(ctx, updated); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// successRate is 100*correct/total rounded to two decimals, 0 when total is 0.
func successRate(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(correct)*10000/float64(total)) / 100
}
