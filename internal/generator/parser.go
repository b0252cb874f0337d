package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/neet-prep/backend/internal/models"
)

// Wire types matching the JSON contract in the prompts. The provider boundary
// owns all validation of provider output: downstream components never see
// partial or malformed question data.

type generatedQuestion struct {
	Subject            string   `json:"subject,omitempty"`
	QuestionText       string   `json:"questionText"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correctOptionIndex"`
	Explanation        string   `json:"explanation"`
	Topic              string   `json:"topic"`
}

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// ParseQuizResponse parses and validates a mock-test response body into
// count questions. IDs are assigned positionally by the caller-supplied base.
func ParseQuizResponse(responseBody string, count int, idBase int64) ([]models.Question, error) {
	raw, err := parseArray(responseBody)
	if err != nil {
		return nil, err
	}

	if len(raw) != count {
		return nil, &ValidationError{Errors: []string{
			fmt.Sprintf("expected %d questions, got %d", count, len(raw)),
		}}
	}

	questions := make([]models.Question, 0, len(raw))
	var errs []string
	for i, gq := range raw {
		if msgs := validateQuestion(i+1, gq); len(msgs) > 0 {
			errs = append(errs, msgs...)
			continue
		}
		questions = append(questions, models.Question{
			ID:                 idBase + int64(i),
			QuestionText:       gq.QuestionText,
			Options:            gq.Options,
			CorrectOptionIndex: gq.CorrectOptionIndex,
			Explanation:        gq.Explanation,
			Topic:              gq.Topic,
		})
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return questions, nil
}

// ParseDailyResponse parses and validates a daily-challenge response body.
// It requires exactly one question per subject; the provider does not
// guarantee subject order, so entries are matched by tag, not position.
func ParseDailyResponse(responseBody string, idBase int64) ([]models.DailyQuestion, error) {
	raw, err := parseArray(responseBody)
	if err != nil {
		return nil, err
	}

	if len(raw) != len(models.AllSubjects) {
		return nil, &ValidationError{Errors: []string{
			fmt.Sprintf("expected %d daily questions, got %d", len(models.AllSubjects), len(raw)),
		}}
	}

	seen := make(map[models.Subject]bool)
	questions := make([]models.DailyQuestion, 0, len(raw))
	var errs []string
	for i, gq := range raw {
		qNum := i + 1
		if msgs := validateQuestion(qNum, gq); len(msgs) > 0 {
			errs = append(errs, msgs...)
			continue
		}
		subject, ok := models.MatchSubject(gq.Subject)
		if !ok {
			errs = append(errs, fmt.Sprintf("question %d: unrecognized subject %q", qNum, gq.Subject))
			continue
		}
		if seen[subject] {
			errs = append(errs, fmt.Sprintf("question %d: duplicate subject %q", qNum, subject))
			continue
		}
		seen[subject] = true
		questions = append(questions, models.DailyQuestion{
			Question: models.Question{
				ID:                 idBase + int64(i),
				QuestionText:       gq.QuestionText,
				Options:            gq.Options,
				CorrectOptionIndex: gq.CorrectOptionIndex,
				Explanation:        gq.Explanation,
				Topic:              gq.Topic,
			},
			Subject: subject,
		})
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return questions, nil
}

func parseArray(responseBody string) ([]generatedQuestion, error) {
	cleaned := stripCodeFences(responseBody)

	var raw []generatedQuestion
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	if len(raw) == 0 {
		return nil, &ValidationError{Errors: []string{"no questions in response"}}
	}
	return raw, nil
}

func validateQuestion(qNum int, gq generatedQuestion) []string {
	var errs []string
	if strings.TrimSpace(gq.QuestionText) == "" {
		errs = append(errs, fmt.Sprintf("question %d: empty question text", qNum))
	}
	if len(gq.Options) < 2 {
		errs = append(errs, fmt.Sprintf("question %d: expected at least 2 options, got %d", qNum, len(gq.Options)))
	} else if gq.CorrectOptionIndex < 0 || gq.CorrectOptionIndex >= len(gq.Options) {
		errs = append(errs, fmt.Sprintf("question %d: correctOptionIndex %d out of range [0, %d)",
			qNum, gq.CorrectOptionIndex, len(gq.Options)))
	}
	for j, opt := range gq.Options {
		if strings.TrimSpace(opt) == "" {
			errs = append(errs, fmt.Sprintf("question %d: option %d is empty", qNum, j+1))
		}
	}
	if strings.TrimSpace(gq.Explanation) == "" {
		errs = append(errs, fmt.Sprintf("question %d: empty explanation", qNum))
	}
	return errs
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}
