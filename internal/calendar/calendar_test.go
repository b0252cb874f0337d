package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neet-prep/backend/internal/models"
	"github.com/neet-prep/backend/internal/progress"
	"github.com/neet-prep/backend/internal/storage"
)

const testEmail = "student@example.com"

func newTestService(t *testing.T) (*Service, *progress.Store) {
	t.Helper()
	store := progress.NewStore(storage.NewMemory())
	now := func() time.Time {
		return time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	}
	return NewServiceAt(store, now), store
}

func dayByDate(t *testing.T, month *models.CalendarMonth, date string) models.CalendarDay {
	t.Helper()
	for _, d := range month.Days {
		if d.Date == date {
			return d
		}
	}
	t.Fatalf("day %s not in month view", date)
	return models.CalendarDay{}
}

func TestMonthShape(t *testing.T) {
	svc, _ := newTestService(t)

	month := svc.Month(context.Background(), testEmail, 2026, 8)

	assert.Equal(t, 2026, month.Year)
	assert.Equal(t, 8, month.Month)
	require.Len(t, month.Days, 31)
	assert.Equal(t, "2026-08-01", month.Days[0].Date)
	assert.Equal(t, int(time.Saturday), month.FirstWeekday)
	assert.Equal(t, ExamDate, month.ExamDay)

	today := dayByDate(t, month, "2026-08-28")
	assert.True(t, today.IsToday)

	feb := svc.Month(context.Background(), testEmail, 2026, 2)
	assert.Len(t, feb.Days, 28)
}

func TestAttemptedDaysDefaultToSuccess(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertDailyRecord(ctx, testEmail, models.DailyRecord{
		Date: "2026-08-10", Score: 2, Total: 3, AnsweredCount: 3,
	}))

	month := svc.Month(ctx, testEmail, 2026, 8)
	day := dayByDate(t, month, "2026-08-10")
	assert.Equal(t, models.DayStatusSuccess, day.Status)
	assert.True(t, day.Attempted)
	assert.Equal(t, 1, month.Streak)

	blank := dayByDate(t, month, "2026-08-11")
	assert.Equal(t, models.DayStatusNone, blank.Status)
	assert.False(t, blank.Attempted)
}

func TestToggleDayCycles(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp, err := svc.ToggleDay(ctx, testEmail, "2026-08-05")
	require.NoError(t, err)
	assert.Equal(t, models.DayStatusSuccess, resp.Status)
	assert.Equal(t, 1, resp.Streak)

	resp, err = svc.ToggleDay(ctx, testEmail, "2026-08-05")
	require.NoError(t, err)
	assert.Equal(t, models.DayStatusFail, resp.Status)
	assert.Equal(t, 0, resp.Streak)

	resp, err = svc.ToggleDay(ctx, testEmail, "2026-08-05")
	require.NoError(t, err)
	assert.Equal(t, models.DayStatusNone, resp.Status)
}

func TestToggleOnAttemptedDayRevertsToSuccess(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertDailyRecord(ctx, testEmail, models.DailyRecord{
		Date: "2026-08-10", Score: 3, Total: 3, AnsweredCount: 3,
	}))

	// Mark overlays the attendance status without touching the record.
	_, err := svc.ToggleDay(ctx, testEmail, "2026-08-10")
	require.NoError(t, err)
	resp, err := svc.ToggleDay(ctx, testEmail, "2026-08-10")
	require.NoError(t, err)
	assert.Equal(t, models.DayStatusFail, resp.Status)

	// Clearing the mark falls back to the record-derived success, and the
	// record itself survived all three writes.
	resp, err = svc.ToggleDay(ctx, testEmail, "2026-08-10")
	require.NoError(t, err)
	assert.Equal(t, models.DayStatusSuccess, resp.Status)
	require.NotNil(t, store.DailyRecordFor(ctx, testEmail, "2026-08-10"))
}

func TestToggleDayRejectsBadDate(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ToggleDay(context.Background(), testEmail, "28-08-2026")
	assert.Error(t, err)
}

func TestMarksPersistAcrossServices(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.ToggleDay(ctx, testEmail, "2026-08-05")
	require.NoError(t, err)

	// A fresh service over the same store sees the persisted mark.
	again := NewService(store)
	assert.Equal(t, 1, again.Streak(ctx, testEmail))
}

func TestExamDayMarker(t *testing.T) {
	svc, _ := newTestService(t)

	month := svc.Month(context.Background(), testEmail, 2025, 5)
	day := dayByDate(t, month, "2025-05-04")
	assert.True(t, day.IsExamDay)
}

func TestStreakCountsSuccessAcrossMonths(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	for _, date := range []string{"2026-07-30", "2026-08-01", "2026-08-15"} {
		require.NoError(t, store.UpsertDailyRecord(ctx, testEmail, models.DailyRecord{
			Date: date, Score: 1, Total: 3, AnsweredCount: 1,
		}))
	}
	// One failure mark on top of an attempt.
	_, err := svc.ToggleDay(ctx, testEmail, "2026-08-15")
	require.NoError(t, err)
	_, err = svc.ToggleDay(ctx, testEmail, "2026-08-15")
	require.NoError(t, err)

	assert.Equal(t, 2, svc.Streak(ctx, testEmail))
}
