package quizgen

import (
	"errors"
	"fmt"

	"github.com/abhisek/sorubot/internal/llm"
)

// Kind classifies a generation or explanation failure.
type Kind int

const (
	KindUpstream Kind = iota
	KindMissingCredential
	KindRateLimited
	KindInvalidCredential
	KindMalformedResponse
)

func (k Kind) String() string {
	switch k {
	case KindMissingCredential:
		return "missing-credential"
	case KindRateLimited:
		return "rate-limited"
	case KindInvalidCredential:
		return "invalid-credential"
	case KindMalformedResponse:
		return "malformed-response"
	default:
		return "upstream"
	}
}

// Error is the failure surfaced to callers. Its message is meant for the
// user; the cause stays reachable through Unwrap.
type Error struct {
	Kind Kind
	Op   string // "generate" or "explain"
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindMissingCredential:
		return "LLM API key is not set. Set GEMINI_API_KEY (or another provider key) and restart."
	case KindRateLimited:
		return "API usage limit exceeded. Please try again later."
	case KindInvalidCredential:
		return "Invalid API key. Please check your configuration."
	case KindMalformedResponse:
		return fmt.Sprintf("The AI response was not in the expected format (%v). Please try again.", e.Err)
	}
	if e.Op == "explain" {
		return fmt.Sprintf("error while fetching explanation: %v", e.Err)
	}
	return fmt.Sprintf("error while generating questions: %v", e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, k Kind) bool {
	var qe *Error
	return errors.As(err, &qe) && qe.Kind == k
}

func classify(op string, err error) *Error {
	var (
		rl   *llm.ErrRateLimit
		auth *llm.ErrAuth
		inv  *llm.ErrInvalidResponse
		mt   *llm.ErrMaxTokensExceeded
	)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		return &Error{Kind: KindMissingCredential, Op: op, Err: err}
	case errors.As(err, &rl):
		return &Error{Kind: KindRateLimited, Op: op, Err: err}
	case errors.As(err, &auth):
		return &Error{Kind: KindInvalidCredential, Op: op, Err: err}
	case errors.As(err, &inv), errors.As(err, &mt):
		return &Error{Kind: KindMalformedResponse, Op: op, Err: err}
	default:
		return &Error{Kind: KindUpstream, Op: op, Err: err}
	}
}

func malformed(format string, args ...any) *Error {
	return &Error{Kind: KindMalformedResponse, Op: "generate", Err: fmt.Errorf(format, args...)}
}
