package learning_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/wordsprint/wordsprint-api/internal/domain"
	"github.com/wordsprint/wordsprint-api/internal/service/learning"
	"github.com/wordsprint/wordsprint-api/internal/store"
)

type recordKey struct {
	learner uuid.UUID
	word    uuid.UUID
}

type fakeData struct {
	words   []*domain.Word
	records map[recordKey]*domain.LearnerRecord
}

func copyRecord(r *domain.LearnerRecord) *domain.LearnerRecord {
	cp := *r
	if r.LastTestedAt != nil {
		t := *r.LastTestedAt
		cp.LastTestedAt = &t
	}
	return &cp
}

func (d *fakeData) clone() *fakeData {
	c := &fakeData{
		words:   d.words,
		records: make(map[recordKey]*domain.LearnerRecord, len(d.records)),
	}
	for k, r := range d.records {
		c.records[k] = copyRecord(r)
	}
	return c
}

// fakeStore is an in-memory catalog and record store. Transactions work on a
// private copy of the data that replaces the shared state on commit, and they
// are serialized, which models row locking.
type fakeStore struct {
	mu   sync.Mutex
	data *fakeData

	// injected failures
	insertErr     error
	upsertErr     error
	listErr       error
	forUpdateErrs []error

	txAttempts int
	commits    int
}

func newFakeStore(words ...*domain.Word) *fakeStore {
	return &fakeStore{
		data: &fakeData{
			words:   words,
			records: map[recordKey]*domain.LearnerRecord{},
		},
	}
}

func (s *fakeStore) Repositories() learning.Repositories {
	r := &fakeRepo{store: s}
	return learning.Repositories{Words: r, Records: r}
}

func (s *fakeStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos learning.Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.txAttempts++
	work := s.data.clone()
	r := &fakeRepo{store: s, data: work, inTx: true}
	if err := fn(ctx, learning.Repositories{Words: r, Records: r}); err != nil {
		return err
	}
	s.data = work
	s.commits++
	return nil
}

// put stores a record directly, bypassing the engine.
func (s *fakeStore) put(learnerID uuid.UUID, word *domain.Word, state domain.LearningState, correct, wrong int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.records[recordKey{learnerID, word.ID}] = &domain.LearnerRecord{
		LearnerID:    learnerID,
		WordID:       word.ID,
		State:        state,
		CorrectCount: correct,
		WrongCount:   wrong,
		CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *fakeStore) record(t *testing.T, learnerID, wordID uuid.UUID) *domain.LearnerRecord {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.data.records[recordKey{learnerID, wordID}]
	require.True(t, ok, "no record for word %s", wordID)
	return copyRecord(r)
}

func (s *fakeStore) learnerRecords(learnerID uuid.UUID) []*domain.LearnerRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.LearnerRecord
	for k, r := range s.data.records {
		if k.learner == learnerID {
			out = append(out, copyRecord(r))
		}
	}
	return out
}

type fakeRepo struct {
	store *fakeStore
	data  *fakeData
	inTx  bool
}

func (r *fakeRepo) view() (*fakeData, func()) {
	if r.inTx {
		return r.data, func() {}
	}
	r.store.mu.Lock()
	return r.store.data, r.store.mu.Unlock
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Word, error) {
	data, done := r.view()
	defer done()
	for _, w := range data.words {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, store.ErrWordNotFound
}

func (r *fakeRepo) GetByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Word, error) {
	data, done := r.view()
	defer done()
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make(map[uuid.UUID]*domain.Word)
	for _, w := range data.words {
		if want[w.ID] {
			out[w.ID] = w
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAll(context.Context) ([]*domain.Word, error) {
	data, done := r.view()
	defer done()
	if r.store.listErr != nil {
		return nil, r.store.listErr
	}
	return append([]*domain.Word(nil), data.words...), nil
}

func (r *fakeRepo) matching(data *fakeData, keep func(*domain.LearnerRecord) bool) []*domain.LearnerRecord {
	out := []*domain.LearnerRecord{}
	for _, rec := range data.records {
		if keep(rec) {
			out = append(out, copyRecord(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].WordID.String() < out[j].WordID.String()
	})
	return out
}

func (r *fakeRepo) GetByLearnerAndWords(
	_ context.Context,
	learnerID uuid.UUID,
	wordIDs []uuid.UUID,
) ([]*domain.LearnerRecord, error) {
	data, done := r.view()
	defer done()
	want := make(map[uuid.UUID]bool, len(wordIDs))
	for _, id := range wordIDs {
		want[id] = true
	}
	return r.matching(data, func(rec *domain.LearnerRecord) bool {
		return rec.LearnerID == learnerID && want[rec.WordID]
	}), nil
}

func (r *fakeRepo) GetByLearnerAndWordsForUpdate(
	ctx context.Context,
	learnerID uuid.UUID,
	wordIDs []uuid.UUID,
) ([]*domain.LearnerRecord, error) {
	if len(r.store.forUpdateErrs) > 0 {
		err := r.store.forUpdateErrs[0]
		r.store.forUpdateErrs = r.store.forUpdateErrs[1:]
		return nil, err
	}
	return r.GetByLearnerAndWords(ctx, learnerID, wordIDs)
}

func (r *fakeRepo) GetByLearnerAndState(
	_ context.Context,
	learnerID uuid.UUID,
	state domain.LearningState,
) ([]*domain.LearnerRecord, error) {
	data, done := r.view()
	defer done()
	return r.matching(data, func(rec *domain.LearnerRecord) bool {
		return rec.LearnerID == learnerID && rec.State == state
	}), nil
}

func (r *fakeRepo) ListWordIDsByLearner(_ context.Context, learnerID uuid.UUID) ([]uuid.UUID, error) {
	data, done := r.view()
	defer done()
	var ids []uuid.UUID
	for k := range data.records {
		if k.learner == learnerID {
			ids = append(ids, k.word)
		}
	}
	return ids, nil
}

func (r *fakeRepo) Insert(_ context.Context, records []*domain.LearnerRecord) ([]*domain.LearnerRecord, error) {
	data, done := r.view()
	defer done()
	if r.store.insertErr != nil {
		return nil, r.store.insertErr
	}
	inserted := []*domain.LearnerRecord{}
	for _, rec := range records {
		key := recordKey{rec.LearnerID, rec.WordID}
		if _, exists := data.records[key]; exists {
			continue
		}
		data.records[key] = copyRecord(rec)
		inserted = append(inserted, copyRecord(rec))
	}
	return inserted, nil
}

func (r *fakeRepo) Upsert(_ context.Context, records []*domain.LearnerRecord) error {
	data, done := r.view()
	defer done()
	if r.store.upsertErr != nil {
		return r.store.upsertErr
	}
	for _, rec := range records {
		data.records[recordKey{rec.LearnerID, rec.WordID}] = copyRecord(rec)
	}
	return nil
}

func (r *fakeRepo) Summarize(_ context.Context, learnerID uuid.UUID, since time.Time) (*domain.LearnerSummary, error) {
	data, done := r.view()
	defer done()
	summary := &domain.LearnerSummary{}
	for k, rec := range data.records {
		if k.learner != learnerID {
			continue
		}
		summary.TotalCorrect += rec.CorrectCount
		summary.TotalWrong += rec.WrongCount
		switch rec.State {
		case domain.StateLearned:
			summary.TotalLearned++
			if rec.LastTestedAt != nil && !rec.LastTestedAt.Before(since) {
				summary.TodayLearned++
			}
		case domain.StateLearning:
			summary.TotalLearning++
		}
	}
	return summary, nil
}

var (
	_ learning.WordRepository   = (*fakeRepo)(nil)
	_ learning.RecordRepository = (*fakeRepo)(nil)
	_ learning.Transactor       = (*fakeStore)(nil)
)

// makeWords builds n catalog words: word00/kelime00, word01/kelime01, ...
func makeWords(t *testing.T, n int) []*domain.Word {
	t.Helper()
	words := make([]*domain.Word, n)
	for i := range words {
		w, err := domain.NewWord(fmt.Sprintf("word%02d", i), fmt.Sprintf("kelime%02d", i))
		require.NoError(t, err)
		words[i] = w
	}
	return words
}
