package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/abhisek/quizlab/internal/llm"
	"github.com/abhisek/quizlab/internal/quiz"
)

// ErrEmptyGeneration is returned when the LLM produced no usable questions.
var ErrEmptyGeneration = errors.New("no questions generated")

// Config bounds the LLM requests.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard generation limits.
func DefaultConfig() Config {
	return Config{MaxTokens: 4096, Temperature: 0.3}
}

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	rng      *rand.Rand
}

// New creates an LLMGenerator. rng drives the single/multi closed question
// split; nil uses an unseeded source.
func New(provider llm.Provider, cfg Config, rng *rand.Rand) *LLMGenerator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &LLMGenerator{provider: provider, config: cfg, rng: rng}
}

// generatedQuestion is the raw LLM response item before assembly.
type generatedQuestion struct {
	Question string `json:"question"`
	Answers  []struct {
		Content   string `json:"content"`
		IsCorrect bool   `json:"isCorrect"`
	} `json:"answers"`
}

type generationOutput struct {
	Questions []generatedQuestion `json:"questions"`
}

// Generate produces the configured mix of open and closed questions. Each
// kind goes out as its own request; a batch that fails entirely fails the
// run, but an empty batch only fails when nothing at all was produced.
func (g *LLMGenerator) Generate(ctx context.Context, sourceText string, settings Settings) ([]quiz.Task, error) {
	ctx = llm.WithPurpose(ctx, "question-generation")
	settings = settings.Normalize()

	var raw []generatedQuestion

	if settings.OpenCount > 0 {
		batch, err := g.generateBatch(ctx, sourceText, settings.OpenCount, KindOpen, settings)
		if err != nil {
			return nil, err
		}
		raw = append(raw, batch...)
	}

	for _, part := range g.closedSplit(settings) {
		batch, err := g.generateBatch(ctx, sourceText, part.amount, part.kind, settings)
		if err != nil {
			return nil, err
		}
		raw = append(raw, batch...)
	}

	tasks := assembleTasks(raw)
	if len(tasks) == 0 {
		return nil, ErrEmptyGeneration
	}
	return tasks, nil
}

type closedPart struct {
	amount int
	kind   Kind
}

// closedSplit decides how the closed questions divide between single- and
// multi-answer kinds.
func (g *LLMGenerator) closedSplit(s Settings) []closedPart {
	if s.ClosedCount <= 0 {
		return nil
	}
	if s.ForceMultipleCorrect {
		return []closedPart{{s.ClosedCount, KindClosedMulti}}
	}
	if !s.AllowMultipleCorrect {
		return []closedPart{{s.ClosedCount, KindClosed}}
	}

	single := g.rng.IntN(s.ClosedCount + 1)
	var parts []closedPart
	if single > 0 {
		parts = append(parts, closedPart{single, KindClosed})
	}
	if multi := s.ClosedCount - single; multi > 0 {
		parts = append(parts, closedPart{multi, KindClosedMulti})
	}
	return parts
}

func (g *LLMGenerator) generateBatch(ctx context.Context, sourceText string, amount int, kind Kind, s Settings) ([]generatedQuestion, error) {
	req := llm.Request{
		System: systemPrompt(amount, kind, s),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userPrompt(sourceText)},
		},
		Schema:      QuestionsSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generating %s questions: %w", kind, err)
	}

	var out generationOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parsing %s questions: %w", kind, err)
	}
	return out.Questions, nil
}

// assembleTasks converts raw questions to tasks with fresh ids, dropping
// anything that fails validation. A question without answers is open.
func assembleTasks(raw []generatedQuestion) []quiz.Task {
	tasks := make([]quiz.Task, 0, len(raw))
	for _, q := range raw {
		if validateQuestion(q) != nil {
			continue
		}
		t := quiz.Task{
			ID: uuid.NewString(),
			Question: quiz.Question{
				Text:   q.Question,
				IsOpen: len(q.Answers) == 0,
			},
		}
		for _, a := range q.Answers {
			t.Answers = append(t.Answers, quiz.Answer{
				Text:      a.Content,
				IsCorrect: a.IsCorrect,
			})
		}
		tasks = append(tasks, t)
	}
	return tasks
}
