package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizlab/internal/config"
	"github.com/abhisek/quizlab/internal/engine"
	"github.com/abhisek/quizlab/internal/gamification"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset saved progress and stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		keys := []string{engine.ProgressKey, gamification.StatsKey}
		if all, _ := cmd.Flags().GetBool("all"); all {
			keys = append(keys, config.SettingsKey)
		}

		for _, key := range keys {
			if err := st.Clear(key); err != nil {
				return fmt.Errorf("clear %s: %w", key, err)
			}
		}

		fmt.Println("Progress and stats cleared.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Also reset settings to defaults")
}
