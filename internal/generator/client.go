package generator

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
	"github.com/neet-prep/backend/internal/models"
)

// LLMClient is the interface every provider implementation satisfies.
type LLMClient interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string, temperature float64) (*LLMResponse, error)
}

// LLMResponse holds the raw response content and token usage.
type LLMResponse struct {
	Content      string
	PromptTokens int
	OutputTokens int
}

// Generator wraps an LLMClient and adds the NEET question-provider methods.
// It is the only component that suspends: generation is a network round-trip,
// everything downstream is synchronous.
type Generator struct {
	llm   LLMClient
	model string
	now   func() time.Time
}

func NewGenerator() *Generator {
	var llm LLMClient
	model := "mock"

	if os.Getenv("USE_CLI_GENERATOR") == "true" {
		cliPath := os.Getenv("CLAUDE_CLI_PATH")
		if cliPath == "" {
			cliPath = "claude"
		}
		llm = NewCLIClient(cliPath)
		model = "claude-cli"
		log.Println("Generator using Claude CLI (local plan)")
	} else if os.Getenv("MOCK_GENERATOR") == "true" {
		llm = NewMockClient()
		log.Println("Generator using mock data")
	} else {
		model = os.Getenv("ANTHROPIC_MODEL")
		if model == "" {
			model = "claude-sonnet-4-5-20250929"
		}
		llm = NewAPIClient(model)
		log.Println("Generator using Anthropic API:", model)
	}

	return &Generator{llm: llm, model: model, now: time.Now}
}

// NewGeneratorWithClient is used by tests to inject a fake LLM client.
func NewGeneratorWithClient(llm LLMClient, model string) *Generator {
	return &Generator{llm: llm, model: model, now: time.Now}
}

func (g *Generator) ModelName() string {
	return g.model
}

// GenerateQuiz fetches count topic-wise mock-test questions. Any failure
// (network, malformed response, out-of-range answer index) surfaces as a
// single wrapped error; retry, if any, is the user repeating the request.
func (g *Generator) GenerateQuiz(ctx context.Context, subject models.Subject, topic string, difficulty models.Difficulty, count int) ([]models.Question, error) {
	resp, err := g.llm.Generate(ctx, QuizSystemPrompt(), BuildQuizUserPrompt(subject, topic, difficulty, count), 0.4)
	if err != nil {
		return nil, fmt.Errorf("generate quiz: %w", err)
	}

	questions, err := ParseQuizResponse(resp.Content, count, g.now().UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("parse quiz response: %w", err)
	}
	return questions, nil
}

// GenerateDaily fetches the daily challenge: exactly one question per
// subject, three in total. Order is not guaranteed to be subject-sorted.
func (g *Generator) GenerateDaily(ctx context.Context) ([]models.DailyQuestion, error) {
	resp, err := g.llm.Generate(ctx, DailySystemPrompt(), BuildDailyUserPrompt(), 0.5)
	if err != nil {
		return nil, fmt.Errorf("generate daily: %w", err)
	}

	questions, err := ParseDailyResponse(resp.Content, g.now().UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("parse daily response: %w", err)
	}
	return questions, nil
}

// ── APIClient — Anthropic SDK (Production) ─────────────────

type APIClient struct {
	client *anthropic.Client
	model  string
}

func NewAPIClient(model string) *APIClient {
	client := anthropic.NewClient(
		option.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
	)
	return &APIClient{client: &client, model: model}
}

func (c *APIClient) Generate(ctx context.Context, systemPrompt string, userPrompt string, temperature float64) (*LLMResponse, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   4096,
		Temperature: param.NewOpt(temperature),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	message, err := c.callWithRetry(ctx, params)
	if err != nil {
		return nil, err
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return &LLMResponse{
		Content:      responseText,
		PromptTokens: int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
	}, nil
}

func (c *APIClient) callWithRetry(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			sleepDuration := time.Duration(1<<uint(attempt)) * time.Second
			log.Printf("Retrying Anthropic API call in %v (attempt %d)", sleepDuration, attempt+1)
			time.Sleep(sleepDuration)
		}

		message, err := c.client.Messages.New(ctx, params)
		if err == nil {
			return message, nil
		}
		lastErr = err
		log.Printf("Anthropic API attempt %d failed: %v", attempt+1, err)
	}
	return nil, fmt.Errorf("anthropic API failed after retries: %w", lastErr)
}

// ── MockClient — Local Development ─────────────────────────

type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Generate(ctx context.Context, systemPrompt string, userPrompt string, temperature float64) (*LLMResponse, error) {
	var mockJSON string
	if systemPrompt == DailySystemPrompt() {
		mockJSON = buildMockDailyJSON()
	} else {
		// The quiz user prompt always opens with the requested count.
		count := 5
		fmt.Sscanf(userPrompt, "Generate %d", &count)
		mockJSON = buildMockQuizJSON(count)
	}
	return &LLMResponse{
		Content:      mockJSON,
		PromptTokens: 800,
		OutputTokens: 1600,
	}, nil
}

var mockTopics = []string{
	"Mechanics", "Organic Chemistry", "Genetics",
	"Thermodynamics", "Electrochemistry", "Human Physiology",
}

func buildMockQuizJSON(count int) string {
	questions := "["
	for i := 0; i < count; i++ {
		topic := mockTopics[i%len(mockTopics)]
		correct := i % 4

		if i > 0 {
			questions += ","
		}

		options := "["
		for j := 0; j < 4; j++ {
			if j > 0 {
				options += ","
			}
			options += fmt.Sprintf(`"[Mock] Statement %d about %s"`, j+1, topic)
		}
		options += "]"

		questions += fmt.Sprintf(`{"questionText":"[Mock] Which of the following statements about %s is correct according to the NCERT syllabus?","options":%s,"correctOptionIndex":%d,"explanation":"[Mock] Option %d is correct because it follows directly from the NCERT treatment of %s.","topic":"%s"}`,
			topic, options, correct, correct+1, topic, topic)
	}
	questions += "]"
	return questions
}

func buildMockDailyJSON() string {
	subjects := []string{"Physics", "Chemistry", "Biology"}
	topics := []string{"Optics", "Physical Chemistry", "Botany"}

	questions := "["
	for i, subject := range subjects {
		if i > 0 {
			questions += ","
		}
		questions += fmt.Sprintf(`{"subject":"%s","questionText":"[Mock] A high-yield %s question on %s.","options":["[Mock] Option A","[Mock] Option B","[Mock] Option C","[Mock] Option D"],"correctOptionIndex":%d,"explanation":"[Mock] The answer follows from the standard %s derivation.","topic":"%s"}`,
			subject, subject, topics[i], i%4, topics[i], topics[i])
	}
	questions += "]"
	return questions
}
