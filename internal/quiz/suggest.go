package quiz

import "strings"

// Words per question at the sparse and dense ends of the suggestion.
const (
	wordsPerQuestionSparse = 150
	wordsPerQuestionDense  = 75
)

// Range is an inclusive suggested question-count range.
type Range struct {
	Min int
	Max int
}

// Clamp moves n into the range.
func (r Range) Clamp(n int) int {
	if n < r.Min {
		return r.Min
	}
	if n > r.Max {
		return r.Max
	}
	return n
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// SuggestRange derives a question-count range from the length of the
// source text, bounded to [MinQuestions, MaxQuestions].
func SuggestRange(text string) Range {
	words := WordCount(text)
	lo := clampCount(words / wordsPerQuestionSparse)
	hi := clampCount(words / wordsPerQuestionDense)
	if hi <= lo {
		hi = min(lo+1, MaxQuestions)
	}
	return Range{Min: lo, Max: hi}
}

func clampCount(n int) int {
	return max(MinQuestions, min(n, MaxQuestions))
}

// PreviewChars is the length of the source preview on the customize screen.
const PreviewChars = 500

// Preview returns the first PreviewChars characters of text, with an
// ellipsis when it was cut.
func Preview(text string) string {
	r := []rune(text)
	if len(r) <= PreviewChars {
		return text
	}
	return string(r[:PreviewChars]) + "…"
}
