package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizlab/internal/app"
	"github.com/abhisek/quizlab/internal/config"
	"github.com/abhisek/quizlab/internal/gamification"
	"github.com/abhisek/quizlab/internal/grader"
	"github.com/abhisek/quizlab/internal/llm"
	"github.com/abhisek/quizlab/internal/questiongen"
	"github.com/abhisek/quizlab/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	settings := config.Load(st)

	user, err := gamification.LoadStats(st, time.Now())
	if err != nil {
		return fmt.Errorf("load stats: %w", err)
	}

	opts := app.Options{
		Store:    st,
		Settings: settings,
		Tracker:  gamification.NewTracker(user, nil),
	}

	provider, err := resolveProvider(ctx, st.UsageRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Quiz generation and open-question grading will be unavailable.")
	} else {
		opts.Generator = questiongen.New(provider, questiongen.DefaultConfig(), nil)
		opts.Grader = grader.New(provider, grader.DefaultConfig())
		opts.Assistant = grader.NewAssistant(provider, grader.DefaultConfig())
	}

	return app.Run(opts)
}

// openStore resolves the DB path and opens the SQLite store.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// resolveProvider builds an LLM provider from QUIZLAB_* env vars when set,
// falling back to discovery of the standard API key variables.
func resolveProvider(ctx context.Context, usage store.UsageRepo) (llm.Provider, error) {
	cfg := llm.ConfigFromEnv()
	if cfg.Validate() != nil {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			return nil, fmt.Errorf("no API key found; set OPENAI_API_KEY, ANTHROPIC_API_KEY or GEMINI_API_KEY")
		}
		cfg = discovered
	}
	return llm.NewProvider(ctx, cfg, usage)
}
