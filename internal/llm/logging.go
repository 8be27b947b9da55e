package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/quizlab/internal/store"
)

// LoggingProvider is a decorator that records every LLM call in the usage
// log.
type LoggingProvider struct {
	inner    Provider
	provider string
	usage    store.UsageRepo
}

// WithLogging wraps a Provider with usage logging. provider is the backend
// name ("anthropic", "openai", ...), recorded alongside the model id.
func WithLogging(p Provider, provider string, usage store.UsageRepo) Provider {
	return &LoggingProvider{inner: p, provider: provider, usage: usage}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	rec := store.LLMRequestRecord{
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		rec.InputTokens = resp.Usage.InputTokens
		rec.OutputTokens = resp.Usage.OutputTokens
		rec.Model = resp.Model
	}
	if err != nil {
		rec.ErrorMessage = err.Error()
	}

	// Record the call but never fail the request over a logging error.
	if logErr := l.usage.AppendLLMRequest(ctx, rec); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record LLM usage: %v\n", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
