package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizlab/internal/quiz"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	var fk string
	require.NoError(t, s.DB().QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, "1", fk)
}

func TestKV_SaveLoadClear(t *testing.T) {
	s := openTestStore(t)

	got, err := s.Load("missing")
	require.NoError(t, err)
	assert.Nil(t, got, "absent key should load as nil")

	require.NoError(t, s.Save("k", []byte(`{"a":1}`)))
	got, err = s.Load("k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), got)

	// Upsert replaces.
	require.NoError(t, s.Save("k", []byte(`{"a":2}`)))
	got, err = s.Load("k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":2}`), got)

	require.NoError(t, s.Clear("k"))
	got, err = s.Load("k")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Clearing again is fine.
	require.NoError(t, s.Clear("k"))
}

func sampleQuiz(id string) *SavedQuiz {
	return &SavedQuiz{
		ID:         id,
		Title:      "Cell biology",
		SourceText: "The mitochondrion is the powerhouse of the cell.",
		Tasks: []quiz.Task{
			{
				ID:       id + "-t1",
				Question: quiz.Question{Text: "What is the powerhouse of the cell?"},
				Answers: []quiz.Answer{
					{Text: "Mitochondrion", IsCorrect: true},
					{Text: "Nucleus"},
				},
			},
		},
	}
}

func TestLibrary_SaveGetList(t *testing.T) {
	s := openTestStore(t)
	repo := s.LibraryRepo()
	ctx := context.Background()

	require.NoError(t, repo.SaveQuiz(ctx, sampleQuiz("q1")))
	require.NoError(t, repo.SaveQuiz(ctx, sampleQuiz("q2")))

	got, err := repo.GetQuiz(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, "Cell biology", got.Title)
	require.Len(t, got.Tasks, 1)
	assert.Equal(t, "q1-t1", got.Tasks[0].ID)
	assert.True(t, got.Tasks[0].Answers[0].IsCorrect)

	list, err := repo.ListQuizzes(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestLibrary_GetMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.LibraryRepo().GetQuiz(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrQuizNotFound)
}

func TestLibrary_Rename(t *testing.T) {
	s := openTestStore(t)
	repo := s.LibraryRepo()
	ctx := context.Background()

	require.NoError(t, repo.SaveQuiz(ctx, sampleQuiz("q1")))
	require.NoError(t, repo.RenameQuiz(ctx, "q1", "Organelles"))

	got, err := repo.GetQuiz(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, "Organelles", got.Title)

	assert.ErrorIs(t, repo.RenameQuiz(ctx, "nope", "x"), ErrQuizNotFound)
}

func TestLibrary_Delete(t *testing.T) {
	s := openTestStore(t)
	repo := s.LibraryRepo()
	ctx := context.Background()

	require.NoError(t, repo.SaveQuiz(ctx, sampleQuiz("q1")))
	require.NoError(t, repo.DeleteQuiz(ctx, "q1"))

	_, err := repo.GetQuiz(ctx, "q1")
	assert.ErrorIs(t, err, ErrQuizNotFound)
	assert.ErrorIs(t, repo.DeleteQuiz(ctx, "q1"), ErrQuizNotFound)
}

func TestLibrary_SaveOverwrites(t *testing.T) {
	s := openTestStore(t)
	repo := s.LibraryRepo()
	ctx := context.Background()

	q := sampleQuiz("q1")
	require.NoError(t, repo.SaveQuiz(ctx, q))
	q.Title = "Updated"
	require.NoError(t, repo.SaveQuiz(ctx, q))

	list, err := repo.ListQuizzes(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Updated", list[0].Title)
}

func TestUsage_AppendAndSummaries(t *testing.T) {
	s := openTestStore(t)
	repo := s.UsageRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestRecord{
		Provider: "anthropic", Model: "m", Purpose: "question-generation",
		InputTokens: 100, OutputTokens: 50, LatencyMs: 900, Success: true,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestRecord{
		Provider: "anthropic", Model: "m", Purpose: "answer-grading",
		InputTokens: 40, OutputTokens: 5, LatencyMs: 300, Success: false,
		ErrorMessage: "rate limited",
	}))

	sum, err := repo.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, UsageSummary{Requests: 2, Failures: 1, InputTokens: 140, OutputTokens: 55}, sum)

	byPurpose, err := repo.SummaryByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, 1, byPurpose["answer-grading"].Failures)
	assert.Equal(t, 100, byPurpose["question-generation"].InputTokens)

	byModel, err := repo.SummaryByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 1)
	assert.Equal(t, UsageSummary{Requests: 2, Failures: 1, InputTokens: 140, OutputTokens: 55}, byModel["m"])
}

func TestUsage_EmptySummary(t *testing.T) {
	s := openTestStore(t)
	sum, err := s.UsageRepo().Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, UsageSummary{}, sum)
}
