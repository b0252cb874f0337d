package models

import "time"

// ── Scoring Types ────────────────────────────────────────

// QuizResult is the outcome of one completed quiz session.
// Score follows the NEET marking scheme: +4 per correct, -1 per wrong,
// unanswered questions count toward neither, so the score can be negative.
type QuizResult struct {
	TotalQuestions int `json:"total_questions"`
	CorrectAnswers int `json:"correct_answers"`
	WrongAnswers   int `json:"wrong_answers"`
	Score          int `json:"score"`
}

// MaxScore is the best achievable score for the session (+4 per question).
func (r QuizResult) MaxScore() int {
	return r.TotalQuestions * 4
}

// ── History Types ────────────────────────────────────────

// QuizRecord is one persisted quiz-session result. The history is an
// append-only sequence per user; multiple sessions per day all persist.
type QuizRecord struct {
	Date       time.Time `json:"date"`
	Subject    Subject   `json:"subject"`
	Topic      string    `json:"topic"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	Percentage float64   `json:"percentage"`
}

// DailyRecord is the persisted state of one calendar day's daily challenge.
// At most one record exists per date; a rewrite for the same date replaces
// the previous one. A record is written after every answered question, so
// AnsweredCount distinguishes a partial attempt from a completed one.
type DailyRecord struct {
	Date          string `json:"date"` // YYYY-MM-DD
	Score         int    `json:"score"`
	Total         int    `json:"total"`
	AnsweredCount int    `json:"answered_count"`
}

// Completed reports whether every question of the day was answered.
// Record presence alone only means the challenge was attempted.
func (r DailyRecord) Completed() bool {
	return r.Total > 0 && r.AnsweredCount >= r.Total
}

// DateLayout is the calendar-date format used by daily records.
const DateLayout = "2006-01-02"

type FinishQuizResponse struct {
	Result   QuizResult `json:"result"`
	MaxScore int        `json:"max_score"`
	Record   QuizRecord `json:"record"`
}

type DailyStatusResponse struct {
	Attempted bool         `json:"attempted"`
	Completed bool         `json:"completed"`
	Record    *DailyRecord `json:"record,omitempty"`
}
