package llm

import "context"

// Provider is the core abstraction for LLM interaction.
// Consumers send a prompt and receive the model's text reply.
type Provider interface {
	// Generate sends a prompt to the LLM and returns its reply.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Optional; quiz prompts carry all
	// instructions in a single user message.
	System string

	// Messages is the conversation history. Single-turn requests contain
	// one user message.
	Messages []Message

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Prompt builds a single-turn request from one user message.
func Prompt(text string, temperature float64, maxTokens int) Request {
	return Request{
		Messages:    []Message{{Role: RoleUser, Content: text}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response holds the LLM's output.
type Response struct {
	// Content is the raw text reply.
	Content string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// StopMaxTokens is the normalized StopReason of a truncated reply.
const StopMaxTokens = "max_tokens"

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
