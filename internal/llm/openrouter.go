package llm

import (
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

	openRouterReferer = "https://github.com/abhisek/sorubot"
	openRouterTitle   = "sorubot"
)

// OpenRouterProvider reaches OpenRouter through its OpenAI-compatible API.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
// Model takes a vendor-prefixed id ("google/gemini-2.5-flash") or one of the
// Gemini and OpenAI aliases, which are prefixed with their vendor.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = defaultOpenRouterBaseURL
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	config.HTTPClient = &http.Client{Transport: attributionTransport{base: http.DefaultTransport}}

	return &OpenRouterProvider{OpenAIProvider: &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  routerModel(cfg.Model),
	}}, nil
}

func routerModel(name string) string {
	if strings.Contains(name, "/") {
		return name
	}
	if id, ok := geminiModels[name]; ok {
		return "google/" + id
	}
	if id, ok := openaiModels[name]; ok {
		return "openai/" + id
	}
	return name
}

// attributionTransport sets the headers OpenRouter uses to attribute
// requests to an app.
type attributionTransport struct {
	base http.RoundTripper
}

func (t attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("HTTP-Referer", openRouterReferer)
	req.Header.Set("X-Title", openRouterTitle)
	return t.base.RoundTrip(req)
}
