package scoring

import "github.com/neet-prep/backend/internal/models"

// NEET marking scheme.
const (
	MarksPerCorrect = 4
	PenaltyPerWrong = 1
)

// AnswerSet collects a session's answers keyed by question index.
// The first answer recorded for a question is final; later selections for
// the same question are ignored. This mirrors the exam rule that a revealed
// answer cannot be changed.
type AnswerSet struct {
	answers map[int]int
}

func NewAnswerSet() *AnswerSet {
	return &AnswerSet{answers: make(map[int]int)}
}

// Record stores the answer for questionIndex unless one already exists.
// It returns true when the answer was recorded, false for a no-op repeat.
func (a *AnswerSet) Record(questionIndex, optionIndex int) bool {
	if _, ok := a.answers[questionIndex]; ok {
		return false
	}
	a.answers[questionIndex] = optionIndex
	return true
}

// Get returns the recorded answer for questionIndex, if any.
func (a *AnswerSet) Get(questionIndex int) (int, bool) {
	v, ok := a.answers[questionIndex]
	return v, ok
}

func (a *AnswerSet) Answered(questionIndex int) bool {
	_, ok := a.answers[questionIndex]
	return ok
}

// Len is the number of answered questions.
func (a *AnswerSet) Len() int {
	return len(a.answers)
}

// Score computes the session result from the full question set and the
// answer set at the moment the session ends. Pure and total: every input,
// including an empty or fully-unanswered set, yields a defined result.
func Score(questions []models.Question, answers *AnswerSet) models.QuizResult {
	var correct, wrong int
	for i, q := range questions {
		selected, ok := answers.Get(i)
		if !ok {
			continue
		}
		if selected == q.CorrectOptionIndex {
			correct++
		} else {
			wrong++
		}
	}
	return models.QuizResult{
		TotalQuestions: len(questions),
		CorrectAnswers: correct,
		WrongAnswers:   wrong,
		Score:          correct*MarksPerCorrect - wrong*PenaltyPerWrong,
	}
}
