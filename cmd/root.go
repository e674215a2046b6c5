package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/abhisek/sorubot/internal/config"
	"github.com/abhisek/sorubot/internal/logging"
	"github.com/abhisek/sorubot/internal/store"
	"github.com/spf13/cobra"
)

var (
	cfg       *config.Config
	logger    *slog.Logger
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "sorubot",
	Short: "Turn study documents into multiple-choice quizzes",
	Long:  "Sorubot reads a PDF, DOCX or TXT document and uses an LLM to build a multiple-choice quiz from it.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		dbPath, _ := cmd.Flags().GetString("db")

		c, err := config.Load(envFile, dbPath)
		if err != nil {
			return err
		}
		l, closer, err := logging.New(c.Log)
		if err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		cfg, logger, logCloser = c, l, closer
		slog.SetDefault(logger)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			return logCloser.Close()
		}
		return nil
	},
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SORUBOT_DB env var)")
	rootCmd.PersistentFlags().String("env-file", "", "Path to a .env file (default: ./.env when present)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// openStore opens the database resolved by the root command.
func openStore() (*store.Store, error) {
	s, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
