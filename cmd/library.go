package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "List and manage saved quizzes",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		quizzes, err := st.LibraryRepo().ListQuizzes(cmd.Context())
		if err != nil {
			return fmt.Errorf("list quizzes: %w", err)
		}
		if len(quizzes) == 0 {
			fmt.Println("No saved quizzes. Run `quizlab generate <file>` to create one.")
			return nil
		}

		for _, q := range quizzes {
			fmt.Printf("%s  %-30s  %d questions  %s\n",
				q.ID, q.Title, len(q.Tasks), q.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var libraryRenameCmd = &cobra.Command{
	Use:   "rename <id> <title>",
	Short: "Rename a saved quiz",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.LibraryRepo().RenameQuiz(cmd.Context(), args[0], args[1]); err != nil {
			return fmt.Errorf("rename quiz: %w", err)
		}
		fmt.Println("Renamed.")
		return nil
	},
}

var libraryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved quiz",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.LibraryRepo().DeleteQuiz(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("delete quiz: %w", err)
		}
		fmt.Println("Deleted.")
		return nil
	},
}

func init() {
	libraryCmd.AddCommand(libraryRenameCmd)
	libraryCmd.AddCommand(libraryDeleteCmd)
}
