package questiongen

import "github.com/abhisek/quizlab/internal/llm"

// QuestionsSchema defines the JSON schema for generation responses. The
// top-level object wraps the array because structured-output modes require
// an object root.
var QuestionsSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "A batch of quiz questions generated from source text",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question shown to the learner",
						},
						"answers": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"content": map[string]any{
										"type":        "string",
										"description": "The answer option text",
									},
									"isCorrect": map[string]any{
										"type": "boolean",
									},
								},
								"required":             []any{"content", "isCorrect"},
								"additionalProperties": false,
							},
							"description": "Answer options. Empty for open questions.",
						},
					},
					"required":             []any{"question", "answers"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
