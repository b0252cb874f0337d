package scoring

import (
	"testing"

	"github.com/neet-prep/backend/internal/models"
)

// questionsWithAnswers builds n questions whose correct option is always 0.
func questionsWithAnswers(n int) []models.Question {
	questions := make([]models.Question, n)
	for i := range questions {
		questions[i] = models.Question{
			ID:                 int64(i + 1),
			QuestionText:       "q",
			Options:            []string{"a", "b", "c", "d"},
			CorrectOptionIndex: 0,
		}
	}
	return questions
}

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		correct   int
		wrong     int
		wantScore int
	}{
		{"all correct", 10, 10, 0, 40},
		{"all wrong", 10, 0, 10, -10},
		{"mixed", 10, 6, 4, 20},
		{"unanswered are neutral", 10, 2, 3, 5},
		{"nothing answered", 10, 0, 0, 0},
		{"empty quiz", 0, 0, 0, 0},
		{"penalties cancel marks", 5, 1, 4, 0},
		{"more wrong than correct marks", 8, 1, 7, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions := questionsWithAnswers(tt.total)
			answers := NewAnswerSet()
			for i := 0; i < tt.correct; i++ {
				answers.Record(i, 0)
			}
			for i := tt.correct; i < tt.correct+tt.wrong; i++ {
				answers.Record(i, 1)
			}

			result := Score(questions, answers)
			if result.Score != tt.wantScore {
				t.Errorf("Score = %d, want %d", result.Score, tt.wantScore)
			}
			if result.CorrectAnswers != tt.correct {
				t.Errorf("CorrectAnswers = %d, want %d", result.CorrectAnswers, tt.correct)
			}
			if result.WrongAnswers != tt.wrong {
				t.Errorf("WrongAnswers = %d, want %d", result.WrongAnswers, tt.wrong)
			}
			if result.TotalQuestions != tt.total {
				t.Errorf("TotalQuestions = %d, want %d", result.TotalQuestions, tt.total)
			}
		})
	}
}

func TestScoreIgnoresAnswersBeyondQuestionSet(t *testing.T) {
	questions := questionsWithAnswers(2)
	answers := NewAnswerSet()
	answers.Record(0, 0)
	answers.Record(7, 0) // no question 7

	result := Score(questions, answers)
	if result.CorrectAnswers != 1 || result.WrongAnswers != 0 {
		t.Errorf("got %d correct / %d wrong, want 1 / 0", result.CorrectAnswers, result.WrongAnswers)
	}
}

func TestAnswerSetFirstAnswerWins(t *testing.T) {
	answers := NewAnswerSet()

	if !answers.Record(3, 1) {
		t.Fatal("first Record should succeed")
	}
	if answers.Record(3, 2) {
		t.Error("second Record for the same question should be a no-op")
	}

	got, ok := answers.Get(3)
	if !ok || got != 1 {
		t.Errorf("Get(3) = %d, %v; want 1, true", got, ok)
	}
	if answers.Len() != 1 {
		t.Errorf("Len = %d, want 1", answers.Len())
	}
}

func TestMaxScore(t *testing.T) {
	result := Score(questionsWithAnswers(15), NewAnswerSet())
	if got := result.MaxScore(); got != 60 {
		t.Errorf("MaxScore = %d, want 60", got)
	}
}
