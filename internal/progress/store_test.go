package progress

import (
	"context"
	"errors"
	"testing"

	"github.com/neet-prep/backend/internal/models"
	"github.com/neet-prep/backend/internal/storage"
)

// brokenKV fails every operation, for the degradation paths.
type brokenKV struct{}

func (b *brokenKV) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("kv offline")
}

func (b *brokenKV) Set(ctx context.Context, key string, value []byte) error {
	return errors.New("kv offline")
}

func TestQuizHistoryAppendOnly(t *testing.T) {
	store := NewStore(storage.NewMemory())
	ctx := context.Background()

	if got := store.QuizHistory(ctx, "a@b.com"); len(got) != 0 {
		t.Fatalf("fresh store should have empty history, got %d records", len(got))
	}

	recs := []models.QuizRecord{
		{Subject: models.SubjectPhysics, Topic: "Optics", Score: 32, Total: 40, Percentage: 80},
		{Subject: models.SubjectPhysics, Topic: "Optics", Score: 12, Total: 40, Percentage: 30},
		{Subject: models.SubjectBiology, Topic: "Genetics", Score: -3, Total: 20, Percentage: -15},
	}
	for _, rec := range recs {
		if err := store.AppendQuizRecord(ctx, "a@b.com", rec); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	history := store.QuizHistory(ctx, "a@b.com")
	if len(history) != 3 {
		t.Fatalf("expected 3 records, got %d", len(history))
	}
	if history[2].Score != -3 {
		t.Errorf("records should keep insertion order, got %+v", history[2])
	}

	// Histories are partitioned by email.
	if got := store.QuizHistory(ctx, "other@b.com"); len(got) != 0 {
		t.Errorf("other user's history should be empty, got %d records", len(got))
	}
}

func TestUpsertDailyRecordReplacesSameDate(t *testing.T) {
	store := NewStore(storage.NewMemory())
	ctx := context.Background()

	writes := []models.DailyRecord{
		{Date: "2026-08-27", Score: 1, Total: 3, AnsweredCount: 1},
		{Date: "2026-08-28", Score: 1, Total: 3, AnsweredCount: 2},
		{Date: "2026-08-28", Score: 2, Total: 3, AnsweredCount: 3},
	}
	for _, rec := range writes {
		if err := store.UpsertDailyRecord(ctx, "a@b.com", rec); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	history := store.DailyHistory(ctx, "a@b.com")
	if len(history) != 2 {
		t.Fatalf("expected one record per date, got %d", len(history))
	}

	rec := store.DailyRecordFor(ctx, "a@b.com", "2026-08-28")
	if rec == nil {
		t.Fatal("record for 2026-08-28 missing")
	}
	if rec.Score != 2 || rec.AnsweredCount != 3 {
		t.Errorf("last write should win, got %+v", rec)
	}
	if !rec.Completed() {
		t.Error("record with all questions answered should be completed")
	}

	if got := store.DailyRecordFor(ctx, "a@b.com", "2026-01-01"); got != nil {
		t.Errorf("expected nil for absent date, got %+v", got)
	}
}

func TestUpsertDailyRecordNotifies(t *testing.T) {
	store := NewStore(storage.NewMemory())
	ctx := context.Background()

	var observed []models.DailyRecord
	unsubscribe := store.Notifier().Subscribe(func() {
		// Synchronous contract: a re-read sees the just-written state.
		observed = store.DailyHistory(ctx, "a@b.com")
	})

	rec := models.DailyRecord{Date: "2026-08-28", Score: 1, Total: 3, AnsweredCount: 1}
	if err := store.UpsertDailyRecord(ctx, "a@b.com", rec); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	if len(observed) != 1 || observed[0].Score != 1 {
		t.Fatalf("subscriber should observe the new record, got %+v", observed)
	}

	unsubscribe()
	observed = nil
	store.UpsertDailyRecord(ctx, "a@b.com", rec)
	if observed != nil {
		t.Error("unsubscribed callback should not fire")
	}
}

func TestCalendarMarksRoundTrip(t *testing.T) {
	store := NewStore(storage.NewMemory())
	ctx := context.Background()

	marks := store.CalendarMarks(ctx, "a@b.com")
	if len(marks) != 0 {
		t.Fatalf("fresh marks should be empty, got %v", marks)
	}

	marks["2026-08-01"] = "success"
	marks["2026-08-02"] = "fail"
	if err := store.SaveCalendarMarks(ctx, "a@b.com", marks); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded := store.CalendarMarks(ctx, "a@b.com")
	if loaded["2026-08-01"] != "success" || loaded["2026-08-02"] != "fail" {
		t.Errorf("marks did not round-trip: %v", loaded)
	}
}

func TestReadsDegradeToEmpty(t *testing.T) {
	ctx := context.Background()

	// Backend failure reads as empty history.
	broken := NewStore(&brokenKV{})
	if got := broken.QuizHistory(ctx, "a@b.com"); len(got) != 0 {
		t.Errorf("read failure should yield empty history, got %d records", len(got))
	}
	if got := broken.CalendarMarks(ctx, "a@b.com"); len(got) != 0 {
		t.Errorf("read failure should yield empty marks, got %v", got)
	}

	// Corrupt payload reads as empty history.
	kv := storage.NewMemory()
	kv.Set(ctx, quizKey("a@b.com"), []byte("{not json"))
	corrupt := NewStore(kv)
	if got := corrupt.QuizHistory(ctx, "a@b.com"); len(got) != 0 {
		t.Errorf("corrupt payload should yield empty history, got %d records", len(got))
	}
}

func TestCorruptTrailingRecordReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()

	// Valid leading record, type error in the second: json.Unmarshal fills
	// the first element before failing. The partial decode must be
	// discarded wholesale, not served as a one-record history.
	kv.Set(ctx, quizKey("a@b.com"),
		[]byte(`[{"date":"2026-08-28T00:00:00Z","subject":"Physics","score":10,"total":40},`+
			`{"date":"2026-08-28T00:00:00Z","subject":"Biology","score":"oops","total":40}]`))
	kv.Set(ctx, dailyKey("a@b.com"),
		[]byte(`[{"date":"2026-08-27","score":1,"total":3,"answered_count":1},`+
			`{"date":"2026-08-28","score":true}]`))

	store := NewStore(kv)
	if got := store.QuizHistory(ctx, "a@b.com"); len(got) != 0 {
		t.Errorf("partially decodable quiz history should read as empty, got %d records", len(got))
	}
	if got := store.DailyHistory(ctx, "a@b.com"); len(got) != 0 {
		t.Errorf("partially decodable daily history should read as empty, got %d records", len(got))
	}
}

func TestWriteFailureSurfacesError(t *testing.T) {
	store := NewStore(&brokenKV{})
	ctx := context.Background()

	if err := store.AppendQuizRecord(ctx, "a@b.com", models.QuizRecord{}); err == nil {
		t.Error("append against broken backend should return an error")
	}
	if err := store.UpsertDailyRecord(ctx, "a@b.com", models.DailyRecord{Date: "2026-08-28"}); err == nil {
		t.Error("upsert against broken backend should return an error")
	}
}

func TestUpsertDoesNotNotifyOnWriteFailure(t *testing.T) {
	store := NewStore(&brokenKV{})

	fired := false
	store.Notifier().Subscribe(func() { fired = true })

	store.UpsertDailyRecord(context.Background(), "a@b.com", models.DailyRecord{Date: "2026-08-28"})
	if fired {
		t.Error("notifier should only fire after a successful write")
	}
}
