package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizlab/internal/config"
	"github.com/abhisek/quizlab/internal/questiongen"
	"github.com/abhisek/quizlab/internal/store"
)

var generateCmd = &cobra.Command{
	Use:   "generate <file>",
	Short: "Generate a quiz from a text file and save it to the library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		gen := config.Load(st).Generation()

		if n, _ := cmd.Flags().GetInt("closed"); n >= 0 {
			gen.ClosedCount = n
		}
		if n, _ := cmd.Flags().GetInt("open"); n >= 0 {
			gen.OpenCount = n
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read source file: %w", err)
		}
		sourceText := strings.TrimSpace(string(data))
		if sourceText == "" {
			return fmt.Errorf("%s is empty", args[0])
		}

		provider, err := resolveProvider(cmd.Context(), st.UsageRepo())
		if err != nil {
			return err
		}
		generator := questiongen.New(provider, questiongen.DefaultConfig(), nil)

		fmt.Printf("Generating %d closed and %d open questions from %s...\n",
			gen.ClosedCount, gen.OpenCount, args[0])

		tasks, err := generator.Generate(cmd.Context(), sourceText, gen)
		if err != nil {
			return fmt.Errorf("generate questions: %w", err)
		}

		now := time.Now()
		saved := &store.SavedQuiz{
			ID:         uuid.NewString(),
			Title:      strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0])),
			SourceText: sourceText,
			Tasks:      tasks,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := st.LibraryRepo().SaveQuiz(cmd.Context(), saved); err != nil {
			return fmt.Errorf("save quiz: %w", err)
		}

		fmt.Printf("Saved %q with %d questions (id %s).\n", saved.Title, len(tasks), saved.ID)
		return nil
	},
}

func init() {
	generateCmd.Flags().Int("closed", -1, "Number of multiple-choice questions (default from settings)")
	generateCmd.Flags().Int("open", -1, "Number of open questions (default from settings)")
}
