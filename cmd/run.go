package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/abhisek/sorubot/internal/app"
	"github.com/abhisek/sorubot/internal/llm"
	"github.com/abhisek/sorubot/internal/quizgen"
	"github.com/abhisek/sorubot/internal/store"
	"github.com/abhisek/sorubot/internal/workflow"
	"github.com/spf13/cobra"
)

// newProvider builds the configured LLM provider. Without credentials it
// returns a provider whose calls fail with llm.ErrNotConfigured.
func newProvider(ctx context.Context, events store.EventRepo) llm.Provider {
	if cfg.LLMErr != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", cfg.LLMErr)
		fmt.Fprintln(os.Stderr, "Quiz generation will be unavailable.")
		return llm.UnconfiguredProvider{Reason: cfg.LLMErr}
	}
	p, err := llm.NewProvider(ctx, cfg.LLM, events, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider unavailable:", err)
		return llm.UnconfiguredProvider{Reason: err}
	}
	return p
}

func newMachine(ctx context.Context, st *store.Store) (*workflow.Machine, llm.Provider) {
	provider := newProvider(ctx, st.EventRepo())
	gen := quizgen.New(provider, quizgen.DefaultConfig())
	return workflow.NewMachine(gen, st.QuizRepo(), workflow.WithLogger(logger)), provider
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	machine, provider := newMachine(ctx, st)
	return app.Run(ctx, app.Options{
		Machine: machine,
		Model:   provider.ModelID(),
		Logger:  logger,
	})
}
