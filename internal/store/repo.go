package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/sorubot/internal/quiz"
)

// ErrQuizNotFound is returned when a quiz's detail or source text is
// missing from storage.
var ErrQuizNotFound = errors.New("quiz not found")

// QuizRepo is the typed persistence boundary for quiz history.
type QuizRepo interface {
	// Summaries returns the history list, newest first.
	Summaries(ctx context.Context) ([]quiz.Summary, error)

	// Save stores the quiz and its source text and puts its summary at the
	// front of the history list, replacing an entry with the same id and
	// evicting entries beyond the history limit. It returns the new list.
	Save(ctx context.Context, q *quiz.Quiz, sourceText string) ([]quiz.Summary, error)

	// Load returns a stored quiz and its source text, or ErrQuizNotFound.
	Load(ctx context.Context, id string) (*quiz.Quiz, string, error)

	// Delete removes the quiz from the history list and storage and
	// returns the new list.
	Delete(ctx context.Context, id string) ([]quiz.Summary, error)
}

// QueryOpts configures event queries.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // exact purpose match when set
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo records and queries LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// LLMUsageByPurpose aggregates token usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
