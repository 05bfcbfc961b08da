package learning

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/wordsprint/wordsprint-api/internal/domain"
	"github.com/wordsprint/wordsprint-api/internal/platform/logger"
	"github.com/wordsprint/wordsprint-api/internal/sampling"
)

// QuizGenerator builds quizzes from a learner's records.
type QuizGenerator struct {
	records     RecordRepository
	catalog     *WordCatalog
	distractors *DistractorPool
	sampler     *sampling.Sampler
	logger      *slog.Logger
}

// NewQuizGenerator creates a QuizGenerator.
func NewQuizGenerator(
	records RecordRepository,
	catalog *WordCatalog,
	distractors *DistractorPool,
	sampler *sampling.Sampler,
	log *slog.Logger,
) *QuizGenerator {
	if records == nil {
		panic("records cannot be nil")
	}
	if catalog == nil {
		panic("catalog cannot be nil")
	}
	if distractors == nil {
		panic("distractors cannot be nil")
	}
	if sampler == nil {
		panic("sampler cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &QuizGenerator{
		records:     records,
		catalog:     catalog,
		distractors: distractors,
		sampler:     sampler,
		logger:      log.With(slog.String("component", "quiz_generator")),
	}
}

// Start picks up to count of the learner's records in the kind's source state
// uniformly at random and turns each into a question. A learner with no such
// records gets an empty quiz.
func (g *QuizGenerator) Start(
	ctx context.Context,
	learnerID uuid.UUID,
	count int,
	mode domain.QuizMode,
	kind domain.QuizKind,
) (*QuizSession, error) {
	if err := validateCount(count); err != nil {
		return nil, err
	}
	if err := validateQuiz(mode, kind); err != nil {
		return nil, err
	}
	log := logger.FromContextOrDefault(ctx, g.logger)

	session := &QuizSession{Mode: mode, Kind: kind, Questions: []domain.QuizQuestion{}}

	records, err := g.records.GetByLearnerAndState(ctx, learnerID, kind.SourceState())
	if err != nil {
		return nil, err
	}

	picked := sampling.Sample(g.sampler, records, count)
	if len(picked) == 0 {
		return session, nil
	}

	words, err := g.catalog.GetByIDs(ctx, lo.Map(picked, func(r *domain.LearnerRecord, _ int) uuid.UUID {
		return r.WordID
	}))
	if err != nil {
		return nil, err
	}

	var candidates []string
	if mode.IsChoice() {
		candidates, err = g.distractors.Candidates(ctx, mode.AnswerLanguage())
		if err != nil {
			return nil, err
		}
	}

	for _, record := range picked {
		word, ok := words[record.WordID]
		if !ok {
			log.Warn("learner record refers to a word missing from the catalog",
				slog.String("word_id", record.WordID.String()))
			continue
		}
		session.Questions = append(session.Questions, g.question(word, mode, candidates))
	}

	return session, nil
}

func (g *QuizGenerator) question(word *domain.Word, mode domain.QuizMode, candidates []string) domain.QuizQuestion {
	q := domain.QuizQuestion{
		WordID:           word.ID,
		Mode:             mode,
		Prompt:           word.Text(mode.PromptLanguage()),
		ExpectedLanguage: mode.AnswerLanguage(),
	}
	if !mode.IsChoice() {
		return q
	}

	correct := word.Text(mode.AnswerLanguage())
	choices := append([]string{correct}, g.distractors.Draw(candidates, correct, ChoiceDistractorCount)...)
	sampling.Shuffle(g.sampler, choices)
	q.Choices = choices
	return q
}
