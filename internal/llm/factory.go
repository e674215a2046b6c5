package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/sorubot/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with rate limiting and logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *slog.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → rate limit → logging → timeout → base
	timed := WithTimeout(base, cfg.Timeout)
	logged := WithLogging(timed, cfg.Provider, eventRepo, logger)
	return WithRateLimit(logged, cfg.RateLimit), nil
}

// NewProviderFromEnv resolves configuration from the environment and builds
// a provider. When no credential is available it returns an
// UnconfiguredProvider together with the configuration error, so callers
// can keep running and report the problem.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo, logger *slog.Logger) (Provider, error) {
	cfg, err := ResolveConfig()
	if err != nil {
		return UnconfiguredProvider{Reason: err}, err
	}
	p, err := NewProvider(ctx, cfg, eventRepo, logger)
	if err != nil {
		return UnconfiguredProvider{Reason: err}, err
	}
	return p, nil
}
