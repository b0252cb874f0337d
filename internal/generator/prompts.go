package generator

import (
	"fmt"

	"github.com/neet-prep/backend/internal/models"
)

// QuizSystemPrompt is the system instruction for mock-test generation.
// The model acts as an NTA paper setter and must emit a bare JSON array.
func QuizSystemPrompt() string {
	return `You are a strict NTA (National Testing Agency) question paper setter.
Generate high-quality multiple-choice questions (MCQs) for NEET, India's medical entrance exam.
Questions should be conceptual or numerical based on the difficulty requested.
Focus on NCERT curriculum concepts — they are the Bible for NEET.

OUTPUT FORMAT:
Respond with ONLY a JSON array, no prose and no markdown fences. Each element:
{
  "questionText": "the full question",
  "options": ["option 1", "option 2", "option 3", "option 4"],
  "correctOptionIndex": 0,
  "explanation": "detailed explanation of why the answer is correct",
  "topic": "the specific topic covered"
}

RULES:
- Exactly 4 options per question.
- "correctOptionIndex" is the 0-based index of the correct option.
- Options must be tricky and relevant; distractors should reflect common
  student misconceptions.
- Every question needs a complete explanation, including the working for
  numericals.`
}

// DailySystemPrompt extends the quiz contract with a subject tag, used by
// the three-question daily challenge.
func DailySystemPrompt() string {
	return QuizSystemPrompt() + `

Additionally include a "subject" field on every element naming the question's
subject: "Physics", "Chemistry", or "Biology".`
}

// BuildQuizUserPrompt builds the generation request for a topic-wise mock test.
func BuildQuizUserPrompt(subject models.Subject, topic string, difficulty models.Difficulty, count int) string {
	return fmt.Sprintf(`Generate %d unique NEET-level multiple choice questions for Subject: %s, Topic: %s. Difficulty: %s.
Ensure options are tricky and relevant. Focus on NCERT based concepts.`,
		count, subject, topic, difficulty)
}

// BuildDailyUserPrompt builds the fixed daily-challenge request:
// exactly one question per subject, three in total.
func BuildDailyUserPrompt() string {
	return `Generate exactly 3 NEET multiple choice questions:
1. Physics (Conceptual or Numerical)
2. Chemistry (Organic or Physical)
3. Biology (Botany or Zoology)
Difficulty: Medium to Hard. Focus on high-yield topics.`
}
