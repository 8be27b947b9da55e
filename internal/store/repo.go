package store

import (
	"context"
	"time"

	"github.com/abhisek/quizlab/internal/quiz"
)

// SavedQuiz is a generated question set kept in the library for replay.
type SavedQuiz struct {
	ID         string
	Title      string
	SourceText string
	Tasks      []quiz.Task
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// LibraryRepo stores and retrieves saved quizzes.
type LibraryRepo interface {
	SaveQuiz(ctx context.Context, q *SavedQuiz) error
	GetQuiz(ctx context.Context, id string) (*SavedQuiz, error)
	ListQuizzes(ctx context.Context) ([]*SavedQuiz, error)
	RenameQuiz(ctx context.Context, id, title string) error
	DeleteQuiz(ctx context.Context, id string) error
}

// LLMRequestRecord describes one LLM call for the usage log.
type LLMRequestRecord struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// UsageSummary aggregates the LLM request log.
type UsageSummary struct {
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
}

// UsageRepo records LLM calls and reports aggregate usage.
type UsageRepo interface {
	AppendLLMRequest(ctx context.Context, rec LLMRequestRecord) error
	Summary(ctx context.Context) (UsageSummary, error)
	SummaryByPurpose(ctx context.Context) (map[string]UsageSummary, error)
	SummaryByModel(ctx context.Context) (map[string]UsageSummary, error)
}
