package grader

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/quizlab/internal/llm"
	"github.com/abhisek/quizlab/internal/quiz"
)

// Assistant produces tutoring text around a question: hints that do not
// give the answer away, explanations of the correct answer, and reference
// answers for open questions.
type Assistant struct {
	provider llm.Provider
	config   Config
}

// NewAssistant creates an Assistant.
func NewAssistant(provider llm.Provider, cfg Config) *Assistant {
	return &Assistant{provider: provider, config: cfg}
}

var textSchema = &llm.Schema{
	Name:        "tutor-text",
	Description: "A short piece of tutoring text",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{"type": "string"},
		},
		"required":             []any{"text"},
		"additionalProperties": false,
	},
}

const hintConceptualGuidance = `- Focus on the CONCEPT being asked about, not the text location
- Ask guiding questions about purpose, function, or mechanism`

const hintTextBasedGuidance = `- You may reference specific parts of the text
- Guide the student to the relevant section`

// GenerateHint returns a short hint for the question without revealing the
// answer. conceptual selects concept-oriented over text-location guidance.
func (a *Assistant) GenerateHint(ctx context.Context, sourceText, question string, conceptual bool) (string, error) {
	ctx = llm.WithPurpose(ctx, "hint-generation")

	guidance := hintTextBasedGuidance
	if conceptual {
		guidance = hintConceptualGuidance
	}
	system := fmt.Sprintf(`You are a helpful tutor providing hints to guide students toward the correct answer.

Your hint should:
- NOT give away the complete answer
%s
- Be brief (1-2 sentences)
- Ask a guiding question or highlight what to focus on`, guidance)

	user := fmt.Sprintf("Based on the following text:\n%s\n\nThe student is trying to answer this question:\n%s\n\nProvide a helpful hint without revealing the answer.", sourceText, question)
	return a.generateText(ctx, system, user)
}

// GenerateExplanation explains why the correct answers are correct, quoting
// the source text.
func (a *Assistant) GenerateExplanation(ctx context.Context, sourceText string, t quiz.Task) (string, error) {
	ctx = llm.WithPurpose(ctx, "explanation-generation")

	system := `You are an educational assistant explaining why an answer is correct.

Your explanation should:
- First explain WHY the answer is correct conceptually (the reasoning)
- Then support it with a DIRECT QUOTE from the source text
- Be concise but complete (2-4 sentences)`

	var correct []string
	for _, ans := range t.Answers {
		if ans.IsCorrect {
			correct = append(correct, ans.Text)
		}
	}
	answers := "Correct answers:\n"
	if len(correct) == 1 {
		answers = "Correct answer: " + correct[0]
	} else {
		for i, c := range correct {
			answers += fmt.Sprintf("%d. %s\n", i+1, c)
		}
		answers = strings.TrimRight(answers, "\n")
	}

	user := fmt.Sprintf("Based on the following text:\n%s\n\nQuestion: %s\n\n%s\n\nExplain why this answer is correct, quoting the source text.",
		sourceText, t.Question.Text, answers)
	return a.generateText(ctx, system, user)
}

// GenerateOpenAnswer produces a concise reference answer to an open
// question, shown after a lost round.
func (a *Assistant) GenerateOpenAnswer(ctx context.Context, sourceText, question string) (string, error) {
	ctx = llm.WithPurpose(ctx, "answer-generation")

	system := `You are an assistant that generates correct answers to open questions based on provided text.
You read the text, understand the question, and provide the most accurate and concise answer possible.
Your answer should be a direct response to the question using information from the text.
Keep the answer concise but complete.`

	user := fmt.Sprintf("Based on the following text:\n%s\n\nProvide the correct answer to this question:\n%s", sourceText, question)
	return a.generateText(ctx, system, user)
}

func (a *Assistant) generateText(ctx context.Context, system, user string) (string, error) {
	req := llm.Request{
		System: system,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: user},
		},
		Schema:      textSchema,
		MaxTokens:   a.config.MaxTokens,
		Temperature: a.config.Temperature,
	}

	resp, err := a.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("generating tutoring text: %w", err)
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", fmt.Errorf("parsing tutoring text: %w", err)
	}
	return strings.TrimSpace(out.Text), nil
}
