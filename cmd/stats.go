package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizlab/internal/gamification"
	"github.com/abhisek/quizlab/internal/llm"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics and LLM usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		user, err := gamification.LoadStats(st, time.Now())
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}

		fmt.Println("Progress")
		fmt.Printf("  Total points:       %d\n", user.TotalPoints)
		fmt.Printf("  Current streak:     %d\n", user.CurrentStreak)
		fmt.Printf("  Best streak:        %d\n", user.BestStreak)
		fmt.Printf("  Quizzes completed:  %d\n", user.TotalQuizzesCompleted)
		fmt.Printf("  Questions answered: %d (%d correct, %d incorrect)\n",
			user.TotalQuestionsAnswered, user.TotalCorrectAnswers, user.TotalIncorrectAnswers)
		if user.AllTimeBestTime != nil {
			fmt.Printf("  Best answer time:   %s\n", user.AllTimeBestTime.Round(10*time.Millisecond))
		}
		fmt.Printf("  Achievements:       %d of %d\n",
			len(user.UnlockedAchievements), len(gamification.Achievements))

		summary, err := st.UsageRepo().Summary(cmd.Context())
		if err != nil {
			return fmt.Errorf("usage summary: %w", err)
		}

		fmt.Println("\nLLM usage")
		fmt.Printf("  Requests: %d (%d failed)\n", summary.Requests, summary.Failures)
		fmt.Printf("  Tokens:   %d in, %d out\n", summary.InputTokens, summary.OutputTokens)

		byPurpose, err := st.UsageRepo().SummaryByPurpose(cmd.Context())
		if err != nil {
			return fmt.Errorf("usage by purpose: %w", err)
		}
		purposes := make([]string, 0, len(byPurpose))
		for p := range byPurpose {
			purposes = append(purposes, p)
		}
		sort.Strings(purposes)
		for _, p := range purposes {
			s := byPurpose[p]
			fmt.Printf("  %-12s %d requests, %d in / %d out tokens\n",
				p, s.Requests, s.InputTokens, s.OutputTokens)
		}

		byModel, err := st.UsageRepo().SummaryByModel(cmd.Context())
		if err != nil {
			return fmt.Errorf("usage by model: %w", err)
		}
		if len(byModel) > 0 {
			models := make([]string, 0, len(byModel))
			for m := range byModel {
				models = append(models, m)
			}
			sort.Strings(models)

			fmt.Println("\nEstimated cost")
			var total float64
			unknown := false
			for _, m := range models {
				s := byModel[m]
				cost := llm.LookupCost(m)
				if cost == nil {
					unknown = true
					fmt.Printf("  %-28s %d in / %d out tokens, cost unknown\n",
						m, s.InputTokens, s.OutputTokens)
					continue
				}
				c := cost.Cost(s.InputTokens, s.OutputTokens)
				total += c
				fmt.Printf("  %-28s %d in / %d out tokens, %s\n",
					m, s.InputTokens, s.OutputTokens, formatCost(c))
			}
			label := "Total"
			if unknown {
				label = "Total (partial)"
			}
			fmt.Printf("  %-28s %s\n", label, formatCost(total))
		}
		return nil
	},
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
