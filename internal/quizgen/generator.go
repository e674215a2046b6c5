package quizgen

import (
	"context"

	"github.com/google/uuid"

	"github.com/abhisek/sorubot/internal/llm"
	"github.com/abhisek/sorubot/internal/quiz"
)

// Purpose labels recorded with each LLM request event.
const (
	PurposeGenerate = "quiz-gen"
	PurposeExplain  = "explanation"
)

// Generator produces quiz questions and explanations with an LLM.
// Each call makes exactly one request; failures are not retried.
type Generator struct {
	provider llm.Provider
	config   Config
	newID    func() string
}

// New creates a Generator with the given provider and config.
func New(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, config: cfg, newID: uuid.NewString}
}

// Generate asks for settings.NumQuestions questions about sourceText.
// The reply is accepted only if every question is well formed; questions
// get fresh ids and keep the order the model returned.
func (g *Generator) Generate(ctx context.Context, sourceText string, settings quiz.Settings) ([]quiz.Question, error) {
	ctx = llm.WithPurpose(ctx, PurposeGenerate)

	prompt := buildQuizPrompt(sourceText, settings, g.config.MaxSourceChars)
	req := llm.Prompt(prompt, g.config.GenerationTemperature, g.config.GenerationMaxTokens)

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, classify("generate", err)
	}

	raw, err := parseQuestions(resp.Content, settings.NumQuestions)
	if err != nil {
		return nil, err
	}

	questions := make([]quiz.Question, len(raw))
	for i, r := range raw {
		questions[i] = quiz.Question{
			ID:           g.newID(),
			Text:         r.Question,
			Options:      r.Options,
			CorrectIndex: int(r.CorrectAnswerIndex),
		}
	}
	return questions, nil
}

// Explain returns a free-text justification of q's correct option,
// grounded in sourceText. The reply is returned verbatim.
func (g *Generator) Explain(ctx context.Context, q quiz.Question, sourceText string) (string, error) {
	ctx = llm.WithPurpose(ctx, PurposeExplain)

	prompt := buildExplanationPrompt(q, sourceText, g.config.MaxSourceChars)
	req := llm.Prompt(prompt, g.config.ExplanationTemperature, g.config.ExplanationMaxTokens)

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return "", classify("explain", err)
	}
	return resp.Content, nil
}
