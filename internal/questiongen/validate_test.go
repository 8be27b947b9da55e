package questiongen

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizlab/internal/llm"
)

func rawBatch(items ...map[string]any) llm.MockResponse {
	data, _ := json.Marshal(map[string]any{"questions": items})
	return llm.MockResponse{Content: data}
}

func TestValidateQuestion(t *testing.T) {
	cases := []struct {
		name string
		q    generatedQuestion
		want error
	}{
		{"open", mustQuestion(t, map[string]any{"question": "Why?"}), nil},
		{"closed", mustQuestion(t, map[string]any{
			"question": "Which?",
			"answers": []map[string]any{
				{"content": "a", "isCorrect": true},
				{"content": "b", "isCorrect": false},
			},
		}), nil},
		{"empty text", mustQuestion(t, map[string]any{"question": ""}), errEmptyQuestion},
		{"single answer", mustQuestion(t, map[string]any{
			"question": "Which?",
			"answers":  []map[string]any{{"content": "a", "isCorrect": true}},
		}), errTooFewAnswers},
		{"no correct answer", mustQuestion(t, map[string]any{
			"question": "Which?",
			"answers": []map[string]any{
				{"content": "a", "isCorrect": false},
				{"content": "b", "isCorrect": false},
			},
		}), errNoCorrectAnswer},
		{"blank answer", mustQuestion(t, map[string]any{
			"question": "Which?",
			"answers": []map[string]any{
				{"content": "", "isCorrect": true},
				{"content": "b", "isCorrect": false},
			},
		}), errEmptyAnswer},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, validateQuestion(tc.q), tc.want)
		})
	}
}

func mustQuestion(t *testing.T, item map[string]any) generatedQuestion {
	t.Helper()
	data, err := json.Marshal(item)
	require.NoError(t, err)
	var q generatedQuestion
	require.NoError(t, json.Unmarshal(data, &q))
	return q
}

func TestGenerate_DropsQuestionsWithoutCorrectAnswer(t *testing.T) {
	mock := llm.NewMockProvider(rawBatch(
		map[string]any{
			"question": "Which season follows summer?",
			"answers": []map[string]any{
				{"content": "Autumn", "isCorrect": true},
				{"content": "Spring", "isCorrect": false},
			},
		},
		map[string]any{
			"question": "Which month starts autumn?",
			"answers": []map[string]any{
				{"content": "July", "isCorrect": false},
				{"content": "May", "isCorrect": false},
			},
		},
	))
	g := New(mock, DefaultConfig(), testRNG())

	tasks, err := g.Generate(context.Background(), "text", Settings{ClosedCount: 2})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Which season follows summer?", tasks[0].Question.Text)
}

func TestGenerate_AllInvalidFails(t *testing.T) {
	mock := llm.NewMockProvider(rawBatch(
		map[string]any{
			"question": "Which?",
			"answers": []map[string]any{
				{"content": "a", "isCorrect": false},
				{"content": "b", "isCorrect": false},
			},
		},
	))
	g := New(mock, DefaultConfig(), testRNG())

	_, err := g.Generate(context.Background(), "text", Settings{ClosedCount: 1})
	assert.ErrorIs(t, err, ErrEmptyGeneration)
}
