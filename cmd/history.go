package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/sorubot/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List, show or delete saved quizzes",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved quizzes, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		summaries, err := s.QuizRepo().Summaries(cmd.Context())
		if err != nil {
			return fmt.Errorf("read history: %w", err)
		}
		if len(summaries) == 0 {
			fmt.Println("No saved quizzes.")
			return nil
		}

		fmt.Printf("%-36s  %-16s  %-6s  %4s  %s\n", "ID", "Created", "Level", "Qs", "Title")
		fmt.Println(strings.Repeat("─", 100))
		for _, sum := range summaries {
			fmt.Printf("%-36s  %-16s  %-6s  %4d  %s\n",
				sum.ID,
				sum.CreatedAt.Local().Format("2006-01-02 15:04"),
				sum.Difficulty.Label(),
				sum.NumQuestions,
				sum.Title,
			)
		}
		fmt.Printf("\n%d of %d slots used.\n", len(summaries), store.HistoryLimit)
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a saved quiz",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		answers, _ := cmd.Flags().GetBool("answers")

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		q, _, err := s.QuizRepo().Load(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("load quiz: %w", err)
		}
		printQuiz(cmd.OutOrStdout(), q, answers)
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved quiz",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		remaining, err := s.QuizRepo().Delete(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("delete quiz: %w", err)
		}
		fmt.Printf("Deleted. %d quizzes remain.\n", len(remaining))
		return nil
	},
}

func init() {
	historyShowCmd.Flags().Bool("answers", false, "Mark the correct options")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
}
