package learning

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StatsReporter aggregates a learner's progress.
type StatsReporter struct {
	records RecordRepository
	now     func() time.Time
}

// NewStatsReporter creates a StatsReporter.
func NewStatsReporter(records RecordRepository, now func() time.Time) *StatsReporter {
	if records == nil {
		panic("records cannot be nil")
	}
	if now == nil {
		now = time.Now
	}
	return &StatsReporter{records: records, now: now}
}

// Stats returns the learner's totals. TodayLearned counts Learned records last
// tested since midnight UTC.
func (r *StatsReporter) Stats(ctx context.Context, learnerID uuid.UUID) (*Stats, error) {
	summary, err := r.records.Summarize(ctx, learnerID, startOfUTCDay(r.now()))
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalLearned:  summary.TotalLearned,
		TotalLearning: summary.TotalLearning,
		TotalCorrect:  summary.TotalCorrect,
		TotalWrong:    summary.TotalWrong,
		SuccessRate:   successRate(summary.TotalCorrect, summary.TotalCorrect+summary.TotalWrong),
		TodayLearned:  summary.TodayLearned,
	}, nil
}

func startOfUTCDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
