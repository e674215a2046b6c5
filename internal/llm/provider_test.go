package llm

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/abhisek/sorubot/internal/store"
)

func TestMockProvider_ReturnsCanedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: `{"a":1}`, Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: `{"b":2}`},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp1.Content != `{"a":1}` {
		t.Fatalf("expected {\"a\":1}, got %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}
	if resp1.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp1.StopReason)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp2.Content != `{"b":2}` {
		t.Fatalf("expected {\"b\":2}, got %s", resp2.Content)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error from empty queue")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: `{}`},
	)

	req := Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	}
	_, _ = mock.Generate(context.Background(), req)

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.Calls[0].System != "sys" {
		t.Fatalf("expected system 'sys', got %q", mock.Calls[0].System)
	}
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{Err: errors.New("quota")}},
	)

	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T", err)
	}
}

func TestMockProvider_ModelID(t *testing.T) {
	mock := NewMockProvider()
	if mock.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", mock.ModelID())
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != PurposeUntagged {
		t.Fatalf("expected %q, got %q", PurposeUntagged, p)
	}
	if p := PurposeFrom(WithPurpose(ctx, "")); p != PurposeUntagged {
		t.Fatalf("an empty label must not be stored, got %q", p)
	}

	ctx = WithPurpose(ctx, "quiz-gen")
	if p := PurposeFrom(ctx); p != "quiz-gen" {
		t.Fatalf("expected 'quiz-gen', got %q", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "anthropic without key",
			cfg:     Config{Provider: "anthropic"},
			wantErr: true,
		},
		{
			name:    "anthropic with key",
			cfg:     Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "openai without key",
			cfg:     Config{Provider: "openai"},
			wantErr: true,
		},
		{
			name:    "openai with key",
			cfg:     Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "gemini without key",
			cfg:     Config{Provider: "gemini"},
			wantErr: true,
		},
		{
			name:    "openrouter with key",
			cfg:     Config{Provider: "openrouter", OpenRouter: OpenRouterConfig{APIKey: "sk-or"}},
			wantErr: false,
		},
		{
			name:    "mock needs no key",
			cfg:     Config{Provider: "mock"},
			wantErr: false,
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "unknown"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SORUBOT_LLM_PROVIDER", "SORUBOT_GEMINI_API_KEY", "SORUBOT_OPENAI_API_KEY",
		"SORUBOT_ANTHROPIC_API_KEY", "SORUBOT_OPENROUTER_API_KEY",
		"GEMINI_API_KEY", "API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestResolveConfig(t *testing.T) {
	t.Run("nothing set", func(t *testing.T) {
		clearKeyEnv(t)
		if _, err := ResolveConfig(); err == nil {
			t.Fatal("expected error without any key")
		}
	})

	t.Run("explicit provider", func(t *testing.T) {
		clearKeyEnv(t)
		t.Setenv("SORUBOT_LLM_PROVIDER", "openai")
		t.Setenv("SORUBOT_OPENAI_API_KEY", "sk-test")
		t.Setenv("SORUBOT_LLM_TIMEOUT", "15s")
		cfg, err := ResolveConfig()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-test" {
			t.Fatalf("unexpected config: %+v", cfg)
		}
		if cfg.Timeout != 15*time.Second {
			t.Fatalf("expected 15s timeout, got %s", cfg.Timeout)
		}
	})

	t.Run("discovered plain API_KEY", func(t *testing.T) {
		clearKeyEnv(t)
		t.Setenv("API_KEY", "g-key")
		cfg, err := ResolveConfig()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Provider != "gemini" || cfg.Gemini.APIKey != "g-key" {
			t.Fatalf("unexpected config: %+v", cfg)
		}
	})
}

func TestNewProviderFromEnv_Unconfigured(t *testing.T) {
	clearKeyEnv(t)
	p, err := NewProviderFromEnv(context.Background(), nil, nil)
	if err == nil {
		t.Fatal("expected configuration error")
	}
	if _, genErr := p.Generate(context.Background(), Request{}); !errors.Is(genErr, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", genErr)
	}
}

func TestClassifyStatus(t *testing.T) {
	base := errors.New("boom")
	var rl *ErrRateLimit
	if !errors.As(classifyStatus(429, base), &rl) {
		t.Error("429 should map to ErrRateLimit")
	}
	var auth *ErrAuth
	if !errors.As(classifyStatus(403, base), &auth) {
		t.Error("403 should map to ErrAuth")
	}
	if !errors.As(classifyStatus(400, errors.New("API key not valid. Please pass a valid API key.")), &auth) {
		t.Error("400 with invalid key text should map to ErrAuth")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(classifyStatus(400, base), &unavail) {
		t.Error("plain 400 should map to ErrProviderUnavailable")
	}
	if !errors.Is(classifyStatus(503, base), base) {
		t.Error("classified errors should unwrap to the cause")
	}
}

type fakeEventRepo struct {
	store.EventRepo
	events []store.LLMRequestEventData
}

func (f *fakeEventRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	f.events = append(f.events, data)
	return nil
}

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	repo := &fakeEventRepo{}
	mock := NewMockProvider(
		MockResponse{Content: "ok", Usage: Usage{InputTokens: 3, OutputTokens: 4}},
		MockResponse{Err: &ErrRateLimit{Err: errors.New("quota")}},
	)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := WithLogging(mock, "mock", repo, logger)

	ctx := WithPurpose(context.Background(), "explanation")
	if _, err := p.Generate(ctx, Prompt("why?", 0.3, 100)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Generate(ctx, Prompt("why again?", 0.3, 100)); err == nil {
		t.Fatal("expected error")
	}

	if len(repo.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(repo.events))
	}
	ok, failed := repo.events[0], repo.events[1]
	if !ok.Success || ok.Purpose != "explanation" || ok.InputTokens != 3 || ok.ResponseBody != "ok" {
		t.Errorf("unexpected success event: %+v", ok)
	}
	if failed.Success || failed.ErrorMessage == "" {
		t.Errorf("unexpected failure event: %+v", failed)
	}
}

func TestWithRateLimit(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: "a"}, MockResponse{Content: "b"})
	if WithRateLimit(mock, RateLimitConfig{}) != Provider(mock) {
		t.Fatal("zero rate should return the provider unchanged")
	}

	// One token per minute with burst 1: the second call cannot be served
	// before the context deadline.
	p := WithRateLimit(mock, RateLimitConfig{RequestsPerMinute: 1, Burst: 1})
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("first call: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := p.Generate(ctx, Request{})
	if err == nil {
		t.Fatal("expected the throttled call to fail at the deadline")
	}
	var rl *ErrRateLimit
	if errors.As(err, &rl) {
		t.Fatalf("a local deadline is not a provider quota error: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("throttled call must not reach the provider, got %d calls", mock.CallCount())
	}

	cancelled, cancelNow := context.WithCancel(context.Background())
	cancelNow()
	if _, err := p.Generate(cancelled, Request{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWithTimeout(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: "late"})
	mock.Gate = make(chan struct{})
	p := WithTimeout(mock, 10*time.Millisecond)

	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
