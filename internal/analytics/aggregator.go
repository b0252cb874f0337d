package analytics

import (
	"context"
	"math"
	"time"

	"github.com/neet-prep/backend/internal/models"
	"github.com/neet-prep/backend/internal/progress"
)

// trendWindow is how many recent quiz records feed the score trend and the
// headline average-accuracy metric.
const trendWindow = 10

// consistencyDays is the length of the daily-challenge consistency series.
const consistencyDays = 7

// Aggregator derives dashboard metrics from the progress store. Every call
// is a full read-reduce over the user's history: no cached aggregate state,
// no mutation of the stores. Histories are short and local, so a rescan per
// request is fine.
type Aggregator struct {
	store *progress.Store
	now   func() time.Time
}

func NewAggregator(store *progress.Store) *Aggregator {
	return &Aggregator{store: store, now: time.Now}
}

// NewAggregatorAt pins the aggregator's clock, for tests.
func NewAggregatorAt(store *progress.Store, now func() time.Time) *Aggregator {
	return &Aggregator{store: store, now: now}
}

// Aggregate produces all derived metrics for one user. Absent histories are
// not an error: HasData false tells the caller to render the empty state.
func (a *Aggregator) Aggregate(ctx context.Context, email string) *models.AnalyticsResponse {
	quizHistory := a.store.QuizHistory(ctx, email)
	dailyHistory := a.store.DailyHistory(ctx, email)

	trend := TrendSeries(quizHistory)

	return &models.AnalyticsResponse{
		HasData:         len(quizHistory) > 0 || len(dailyHistory) > 0,
		Mastery:         SubjectMastery(quizHistory),
		Trend:           trend,
		AverageAccuracy: AverageAccuracy(trend),
		TestsTaken:      len(trend),
		Consistency:     ConsistencySeries(dailyHistory, a.now()),
	}
}

// SubjectMastery accumulates per-subject sums over the full quiz history.
// Negative session scores clamp to zero before summing, mirroring the trend
// normalization: a disastrous test counts as zero mastery, not negative.
func SubjectMastery(history []models.QuizRecord) []models.SubjectMastery {
	type bucket struct {
		scoreSum int
		maxSum   int
		count    int
	}
	buckets := make(map[models.Subject]*bucket, len(models.AllSubjects))
	for _, s := range models.AllSubjects {
		buckets[s] = &bucket{}
	}

	for _, rec := range history {
		b, ok := buckets[rec.Subject]
		if !ok {
			continue
		}
		b.scoreSum += max(0, rec.Score)
		b.maxSum += rec.Total
		b.count++
	}

	mastery := make([]models.SubjectMastery, 0, len(models.AllSubjects))
	for _, s := range models.AllSubjects {
		b := buckets[s]
		percent := 0
		if b.maxSum > 0 {
			percent = int(math.Round(float64(b.scoreSum) / float64(b.maxSum) * 100))
		}
		mastery = append(mastery, models.SubjectMastery{
			Subject:  s,
			Percent:  percent,
			Label:    models.MasteryLabel(percent),
			Attempts: b.count,
		})
	}
	return mastery
}

// TrendSeries normalizes the chronologically last trendWindow quiz records
// to percentages. Scores clamp at zero before the ratio so a negative
// session plots as 0, not below the axis.
func TrendSeries(history []models.QuizRecord) []float64 {
	start := 0
	if len(history) > trendWindow {
		start = len(history) - trendWindow
	}

	trend := make([]float64, 0, len(history)-start)
	for _, rec := range history[start:] {
		pct := 0.0
		if rec.Total > 0 {
			pct = float64(max(0, rec.Score)) / float64(rec.Total) * 100
		}
		trend = append(trend, pct)
	}
	return trend
}

// AverageAccuracy is the rounded mean of the trend series, 0 when empty.
func AverageAccuracy(trend []float64) int {
	if len(trend) == 0 {
		return 0
	}
	var sum float64
	for _, v := range trend {
		sum += v
	}
	return int(math.Round(sum / float64(len(trend))))
}

// ConsistencySeries builds exactly consistencyDays entries ending today,
// oldest first. Days without a daily record score zero.
func ConsistencySeries(history []models.DailyRecord, today time.Time) []models.ConsistencyDay {
	byDate := make(map[string]models.DailyRecord, len(history))
	for _, rec := range history {
		byDate[rec.Date] = rec
	}

	series := make([]models.ConsistencyDay, 0, consistencyDays)
	for i := consistencyDays - 1; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		date := d.Format(models.DateLayout)

		score := 0
		if rec, ok := byDate[date]; ok {
			score = rec.Score
		}
		series = append(series, models.ConsistencyDay{
			Date:    date,
			Weekday: d.Format("Mon"),
			Score:   score,
		})
	}
	return series
}
