package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/neet-prep/backend/internal/models"
	"github.com/neet-prep/backend/internal/progress"
)

// ExamDate is the fixed NEET exam day highlighted in every month view.
const ExamDate = "2025-05-04"

// Service builds the attendance calendar. Day statuses come from two
// sources merged per request: daily-challenge records (presence means the
// day defaults to success) and user-set marks stored separately, which
// override the default. Records are never rewritten by a mark and marks
// survive even when no record exists for the day.
type Service struct {
	store *progress.Store
	now   func() time.Time
}

func NewService(store *progress.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// NewServiceAt pins the service's clock, for tests.
func NewServiceAt(store *progress.Store, now func() time.Time) *Service {
	return &Service{store: store, now: now}
}

// statuses merges attempts and marks into the effective per-day status map.
func (s *Service) statuses(ctx context.Context, email string) (map[string]string, map[string]bool) {
	attempted := make(map[string]bool)
	statuses := make(map[string]string)

	for _, rec := range s.store.DailyHistory(ctx, email) {
		attempted[rec.Date] = true
		statuses[rec.Date] = models.DayStatusSuccess
	}
	for date, mark := range s.store.CalendarMarks(ctx, email) {
		statuses[date] = mark
	}
	return statuses, attempted
}

// Month assembles the view model for one calendar month. Month is 1-12;
// out-of-range values are normalized by time.Date.
func (s *Service) Month(ctx context.Context, email string, year, month int) *models.CalendarMonth {
	statuses, attempted := s.statuses(ctx, email)
	today := s.now().Format(models.DateLayout)

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	days := make([]models.CalendarDay, 0, daysInMonth)
	for d := 1; d <= daysInMonth; d++ {
		date := fmt.Sprintf("%04d-%02d-%02d", first.Year(), int(first.Month()), d)
		days = append(days, models.CalendarDay{
			Date:      date,
			Day:       d,
			Status:    statuses[date],
			Attempted: attempted[date],
			IsToday:   date == today,
			IsExamDay: date == ExamDate,
		})
	}

	return &models.CalendarMonth{
		Year:         first.Year(),
		Month:        int(first.Month()),
		FirstWeekday: int(first.Weekday()),
		Days:         days,
		Streak:       countSuccesses(statuses),
		ExamDay:      ExamDate,
	}
}

// ToggleDay cycles a day's mark through none -> success -> fail -> none and
// persists the mark set. The underlying daily record, if any, is untouched:
// clearing a mark on an attempted day reverts it to success, not blank.
func (s *Service) ToggleDay(ctx context.Context, email, date string) (*models.ToggleDayResponse, error) {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	marks := s.store.CalendarMarks(ctx, email)
	switch marks[date] {
	case models.DayStatusSuccess:
		marks[date] = models.DayStatusFail
	case models.DayStatusFail:
		delete(marks, date)
	default:
		marks[date] = models.DayStatusSuccess
	}

	if err := s.store.SaveCalendarMarks(ctx, email, marks); err != nil {
		return nil, err
	}

	statuses, _ := s.statuses(ctx, email)
	return &models.ToggleDayResponse{
		Date:   date,
		Status: statuses[date],
		Streak: countSuccesses(statuses),
	}, nil
}

// Streak counts success days across the user's whole history, independent
// of the month being viewed.
func (s *Service) Streak(ctx context.Context, email string) int {
	statuses, _ := s.statuses(ctx, email)
	return countSuccesses(statuses)
}

func countSuccesses(statuses map[string]string) int {
	n := 0
	for _, st := range statuses {
		if st == models.DayStatusSuccess {
			n++
		}
	}
	return n
}
