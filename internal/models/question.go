package models

import "strings"

type Subject string

const (
	SubjectPhysics   Subject = "Physics"
	SubjectChemistry Subject = "Chemistry"
	SubjectBiology   Subject = "Biology"
)

// AllSubjects is the fixed NEET subject set, in paper order.
var AllSubjects = []Subject{SubjectPhysics, SubjectChemistry, SubjectBiology}

// MatchSubject resolves a free-form subject tag from the provider
// (e.g. "PHYSICS", "Biology (Botany)") to one of the fixed subjects.
// Matching is a case-insensitive substring check.
func MatchSubject(tag string) (Subject, bool) {
	lower := strings.ToLower(tag)
	for _, s := range AllSubjects {
		if strings.Contains(lower, strings.ToLower(string(s))) {
			return s, true
		}
	}
	return "", false
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var ValidDifficulties = map[Difficulty]bool{
	DifficultyEasy:   true,
	DifficultyMedium: true,
	DifficultyHard:   true,
}

// SubjectTopics lists the NCERT topic groups offered per subject.
var SubjectTopics = map[Subject][]string{
	SubjectPhysics:   {"Mechanics", "Electrodynamics", "Optics", "Modern Physics", "Thermodynamics"},
	SubjectChemistry: {"Physical Chemistry", "Organic Chemistry", "Inorganic Chemistry", "Electrochemistry"},
	SubjectBiology:   {"Botany", "Zoology", "Genetics", "Human Physiology", "Plant Physiology"},
}

// ValidTopic reports whether topic is offered for the given subject.
func ValidTopic(subject Subject, topic string) bool {
	for _, t := range SubjectTopics[subject] {
		if t == topic {
			return true
		}
	}
	return false
}

// ── Core Structs ───────────────────────────────────────

// Question is one multiple-choice question as received from the provider.
// Immutable once fetched; owned by the session that fetched it.
type Question struct {
	ID                 int64    `json:"id"`
	QuestionText       string   `json:"question_text"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correct_option_index"`
	Explanation        string   `json:"explanation"`
	Topic              string   `json:"topic"`
}

// DailyQuestion is the daily-challenge variant, tagged with its subject.
type DailyQuestion struct {
	Question
	Subject Subject `json:"subject"`
}

// ── Serving Types (strip answers until answered) ───────

type ServedQuestion struct {
	ID           int64    `json:"id"`
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
	Topic        string   `json:"topic"`
}

type ServedDailyQuestion struct {
	ServedQuestion
	Subject Subject `json:"subject"`
}

func (q Question) ToServed() ServedQuestion {
	return ServedQuestion{
		ID:           q.ID,
		QuestionText: q.QuestionText,
		Options:      q.Options,
		Topic:        q.Topic,
	}
}

func (q DailyQuestion) ToServed() ServedDailyQuestion {
	return ServedDailyQuestion{
		ServedQuestion: q.Question.ToServed(),
		Subject:        q.Subject,
	}
}

// ── Request Types ─────────────────────────────────────

type StartQuizRequest struct {
	Subject    Subject    `json:"subject"`
	Topic      string     `json:"topic"`
	Difficulty Difficulty `json:"difficulty"`
	Count      int        `json:"count"`
}

type SubmitAnswerRequest struct {
	QuestionIndex int `json:"question_index"`
	OptionIndex   int `json:"option_index"`
}

// ── Response Types ────────────────────────────────────

type StartQuizResponse struct {
	SessionID  string           `json:"session_id"`
	Subject    Subject          `json:"subject"`
	Topic      string           `json:"topic"`
	Difficulty Difficulty       `json:"difficulty"`
	Questions  []ServedQuestion `json:"questions"`
}

type StartDailyResponse struct {
	SessionID string                `json:"session_id"`
	Date      string                `json:"date"`
	Questions []ServedDailyQuestion `json:"questions"`
	Resumed   bool                  `json:"resumed"`
}

type SubmitAnswerResponse struct {
	Recorded           bool   `json:"recorded"`
	SelectedIndex      int    `json:"selected_index"`
	Correct            bool   `json:"correct"`
	CorrectOptionIndex int    `json:"correct_option_index"`
	Explanation        string `json:"explanation"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
