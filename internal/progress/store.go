package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/neet-prep/backend/internal/models"
	"github.com/neet-prep/backend/internal/storage"
)

// Key namespaces, one per user identity. The email is the partition
// discriminator, matching the browser-era storage layout.
const (
	quizKeyPrefix  = "neet_progress_"
	dailyKeyPrefix = "neet_daily_progress_"
	marksKeyPrefix = "neet_calendar_marks_"
)

func quizKey(email string) string  { return quizKeyPrefix + email }
func dailyKey(email string) string { return dailyKeyPrefix + email }
func marksKey(email string) string { return marksKeyPrefix + email }

// Store is the per-user history store. Quiz history is append-only; daily
// history is a date-keyed upsert materialized as a sequence with at most one
// entry per date. All reads degrade to empty history on failure so analytics
// can always render; write failures are the caller's to warn about, never to
// crash on.
type Store struct {
	kv       storage.KV
	notifier *Notifier
}

func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv, notifier: NewNotifier()}
}

// Notifier exposes the daily-history change signal for views to subscribe to.
func (s *Store) Notifier() *Notifier {
	return s.notifier
}

// ── Quiz History ─────────────────────────────────────────

// QuizHistory returns the user's full quiz history, oldest first.
// A missing key or corrupt payload reads as empty history.
func (s *Store) QuizHistory(ctx context.Context, email string) []models.QuizRecord {
	var history []models.QuizRecord
	if !s.readJSON(ctx, quizKey(email), &history) {
		return nil
	}
	return history
}

// AppendQuizRecord appends rec to the user's quiz history. No deduplication:
// multiple sessions on the same day all persist.
func (s *Store) AppendQuizRecord(ctx context.Context, email string, rec models.QuizRecord) error {
	history := s.QuizHistory(ctx, email)
	history = append(history, rec)
	return s.writeJSON(ctx, quizKey(email), history)
}

// ── Daily History ────────────────────────────────────────

// DailyHistory returns the user's daily-challenge history.
func (s *Store) DailyHistory(ctx context.Context, email string) []models.DailyRecord {
	var history []models.DailyRecord
	if !s.readJSON(ctx, dailyKey(email), &history) {
		return nil
	}
	return history
}

// DailyRecordFor returns the record for the given YYYY-MM-DD date, or nil.
func (s *Store) DailyRecordFor(ctx context.Context, email, date string) *models.DailyRecord {
	for _, rec := range s.DailyHistory(ctx, email) {
		if rec.Date == date {
			r := rec
			return &r
		}
	}
	return nil
}

// UpsertDailyRecord replaces any existing record for rec.Date with rec (last
// write for a date wins), persists the sequence, then notifies subscribers.
// It is called after every answered daily question, so partial progress is
// immediately visible to readers.
func (s *Store) UpsertDailyRecord(ctx context.Context, email string, rec models.DailyRecord) error {
	history := s.DailyHistory(ctx, email)

	filtered := history[:0]
	for _, r := range history {
		if r.Date != rec.Date {
			filtered = append(filtered, r)
		}
	}
	filtered = append(filtered, rec)

	if err := s.writeJSON(ctx, dailyKey(email), filtered); err != nil {
		return err
	}

	s.notifier.notify()
	return nil
}

// ── Calendar Marks ───────────────────────────────────────

// CalendarMarks are the user's manual day annotations (date → "success" or
// "fail"). They are a separate overlay from the attendance status derived
// from daily records: toggling a mark never rewrites the daily history.
func (s *Store) CalendarMarks(ctx context.Context, email string) map[string]string {
	marks := make(map[string]string)
	if !s.readJSON(ctx, marksKey(email), &marks) {
		return make(map[string]string)
	}
	if marks == nil {
		marks = make(map[string]string)
	}
	return marks
}

func (s *Store) SaveCalendarMarks(ctx context.Context, email string, marks map[string]string) error {
	return s.writeJSON(ctx, marksKey(email), marks)
}

// ── Serialization helpers ────────────────────────────────

// readJSON loads key into out and reports whether out may be used. False
// means the caller must fall back to empty history: read failures and
// corrupt payloads are indistinguishable from no history, by the
// graceful-degradation rule for reads. A failed unmarshal can leave
// partially decoded records behind, so out must be discarded, not kept.
func (s *Store) readJSON(ctx context.Context, key string, out interface{}) bool {
	data, err := s.kv.Get(ctx, key)
	if err != nil {
		log.Printf("[progress] read %s failed: %v", key, err)
		return false
	}
	if data == nil {
		return true
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("[progress] corrupt data at %s, treating as empty: %v", key, err)
		return false
	}
	return true
}

func (s *Store) writeJSON(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("serialize %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
