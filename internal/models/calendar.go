package models

// Day statuses in the attendance calendar. A day with a daily-challenge
// record defaults to success; a stored mark overrides the default.
const (
	DayStatusNone    = ""
	DayStatusSuccess = "success"
	DayStatusFail    = "fail"
)

// CalendarDay is one cell of the month view.
type CalendarDay struct {
	Date      string `json:"date"`
	Day       int    `json:"day"`
	Status    string `json:"status"`
	Attempted bool   `json:"attempted"`
	IsToday   bool   `json:"is_today"`
	IsExamDay bool   `json:"is_exam_day"`
}

// CalendarMonth is the view model for one calendar month plus the
// cross-month streak counter. FirstWeekday (0 = Sunday) tells the renderer
// how many leading blanks pad the first week row.
type CalendarMonth struct {
	Year         int           `json:"year"`
	Month        int           `json:"month"`
	FirstWeekday int           `json:"first_weekday"`
	Days         []CalendarDay `json:"days"`
	Streak       int           `json:"streak"`
	ExamDay      string        `json:"exam_day"`
}

// ToggleDayRequest cycles one day's mark: none -> success -> fail -> none.
type ToggleDayRequest struct {
	Date string `json:"date"`
}

// ToggleDayResponse reports the day's status after the cycle.
type ToggleDayResponse struct {
	Date   string `json:"date"`
	Status string `json:"status"`
	Streak int    `json:"streak"`
}
