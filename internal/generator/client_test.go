package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/neet-prep/backend/internal/models"
)

// failingClient simulates a provider outage.
type failingClient struct{}

func (f *failingClient) Generate(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (*LLMResponse, error) {
	return nil, errors.New("provider unavailable")
}

// garbageClient returns non-JSON content.
type garbageClient struct{}

func (g *garbageClient) Generate(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (*LLMResponse, error) {
	return &LLMResponse{Content: "I am unable to help with that."}, nil
}

func TestGenerateQuiz_MockClient(t *testing.T) {
	gen := NewGeneratorWithClient(NewMockClient(), "mock")

	questions, err := gen.GenerateQuiz(context.Background(), models.SubjectChemistry, "Organic Chemistry", models.DifficultyMedium, 8)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(questions) != 8 {
		t.Fatalf("expected 8 questions, got %d", len(questions))
	}

	for i, q := range questions {
		if len(q.Options) != 4 {
			t.Errorf("question %d: expected 4 options, got %d", i+1, len(q.Options))
		}
		if q.CorrectOptionIndex < 0 || q.CorrectOptionIndex >= len(q.Options) {
			t.Errorf("question %d: correct index out of range", i+1)
		}
		if q.Explanation == "" {
			t.Errorf("question %d: empty explanation", i+1)
		}
	}
}

func TestGenerateDaily_MockClient(t *testing.T) {
	gen := NewGeneratorWithClient(NewMockClient(), "mock")

	questions, err := gen.GenerateDaily(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(questions))
	}

	seen := map[models.Subject]bool{}
	for _, q := range questions {
		seen[q.Subject] = true
	}
	if len(seen) != 3 {
		t.Errorf("expected one question per subject, got subjects %v", seen)
	}
}

func TestGenerateQuiz_ProviderFailure(t *testing.T) {
	gen := NewGeneratorWithClient(&failingClient{}, "test")

	_, err := gen.GenerateQuiz(context.Background(), models.SubjectPhysics, "Optics", models.DifficultyEasy, 5)
	if err == nil {
		t.Fatal("expected error from failing provider")
	}
	if !strings.Contains(err.Error(), "provider unavailable") {
		t.Errorf("provider error should be wrapped, got: %v", err)
	}
}

func TestGenerateQuiz_MalformedResponse(t *testing.T) {
	gen := NewGeneratorWithClient(&garbageClient{}, "test")

	_, err := gen.GenerateQuiz(context.Background(), models.SubjectPhysics, "Optics", models.DifficultyEasy, 5)
	if err == nil {
		t.Fatal("expected error for malformed response")
	}
	if !strings.Contains(err.Error(), "parse quiz response") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGenerateDaily_ProviderFailure(t *testing.T) {
	gen := NewGeneratorWithClient(&failingClient{}, "test")

	_, err := gen.GenerateDaily(context.Background())
	if err == nil {
		t.Fatal("expected error from failing provider")
	}
}
