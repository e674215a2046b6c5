package quizgen

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/abhisek/sorubot/internal/llm"
)

// questionOutput is one element of the raw reply before validation.
type questionOutput struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex float64  `json:"correctAnswerIndex"`
}

// stripCodeFences removes a surrounding ``` fence with an optional
// language tag.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")

	// Drop a language tag such as "json" on the opening line.
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		tag := strings.TrimSpace(s[:i])
		if isWord(tag) {
			s = s[i+1:]
		}
	} else if tag := strings.ToLower(strings.TrimSpace(s)); strings.HasPrefix(tag, "json") {
		s = strings.TrimSpace(s)[len("json"):]
	}
	return strings.TrimSpace(s)
}

func isWord(s string) bool {
	for _, r := range s {
		if !(r == '_' || r == '-' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}

// parseQuestions validates the whole batch and rejects it if any element
// is malformed or the count differs from want.
func parseQuestions(raw string, want int) ([]questionOutput, error) {
	cleaned := stripCodeFences(raw)

	if err := llm.ValidateJSON(QuestionsSchema, cleaned); err != nil {
		return nil, classify("generate", err)
	}

	var out []questionOutput
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return nil, malformed("decode questions: %v", err)
	}
	if len(out) != want {
		return nil, malformed("expected %d questions, got %d", want, len(out))
	}
	for i, q := range out {
		if strings.TrimSpace(q.Question) == "" {
			return nil, malformed("question %d has no text", i+1)
		}
		// Models sometimes write 2.0 for 2.
		if idx := q.CorrectAnswerIndex; idx != math.Trunc(idx) || idx < 0 || idx >= float64(len(q.Options)) {
			return nil, malformed("question %d has answer index %v", i+1, idx)
		}
	}
	return out, nil
}
