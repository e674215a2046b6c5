package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abhisek/sorubot/internal/quiz"
	"github.com/abhisek/sorubot/internal/workflow"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate <file>",
	Short: "Generate a quiz from a document without the TUI",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		diff, _ := cmd.Flags().GetString("difficulty")
		count, _ := cmd.Flags().GetInt("count")
		asJSON, _ := cmd.Flags().GetBool("json")
		answers, _ := cmd.Flags().GetBool("answers")

		difficulty, err := quiz.ParseDifficulty(diff)
		if err != nil {
			return err
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		machine, _ := newMachine(ctx, st)

		state := machine.Run(ctx, workflow.FileSelected{Path: args[0]})
		if state.Err != "" {
			return errors.New(state.Err)
		}

		settings := quiz.Settings{Difficulty: difficulty, NumQuestions: count}
		if count == 0 {
			settings.NumQuestions = state.Settings.NumQuestions
		}
		fmt.Fprintf(os.Stderr, "Generating %d %s questions from %s (suggested %d-%d)...\n",
			settings.NumQuestions, difficulty.Label(), state.FileName, state.Suggestion.Min, state.Suggestion.Max)

		state = machine.Run(ctx, workflow.SubmitSettings{Settings: settings})
		if state.Quiz == nil {
			return errors.New(state.Err)
		}
		if state.Err != "" {
			fmt.Fprintln(os.Stderr, "Warning:", state.Err)
		}

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(state.Quiz)
		}
		printQuiz(cmd.OutOrStdout(), state.Quiz, answers)
		return nil
	},
}

// printQuiz writes q as plain text, optionally marking the correct options.
func printQuiz(w io.Writer, q *quiz.Quiz, answers bool) {
	fmt.Fprintln(w, q.Title)
	fmt.Fprintf(w, "%s · %d questions · id %s\n", q.Difficulty.Label(), len(q.Questions), q.ID)
	fmt.Fprintln(w, strings.Repeat("─", 60))
	for i, question := range q.Questions {
		fmt.Fprintf(w, "\n%d. %s\n", i+1, question.Text)
		for j, opt := range question.Options {
			mark := " "
			if answers && j == question.CorrectIndex {
				mark = "*"
			}
			fmt.Fprintf(w, "  %s %c) %s\n", mark, 'A'+j, opt)
		}
		if answers && question.Explanation != "" {
			fmt.Fprintf(w, "  Explanation: %s\n", question.Explanation)
		}
	}
}

func init() {
	generateCmd.Flags().StringP("difficulty", "d", string(quiz.DifficultyMedium), "Difficulty: easy, medium or hard")
	generateCmd.Flags().IntP("count", "n", 0, "Number of questions (default: clamped to the suggested range)")
	generateCmd.Flags().Bool("json", false, "Print the quiz as JSON")
	generateCmd.Flags().Bool("answers", false, "Mark the correct options")
}
