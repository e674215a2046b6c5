// Package workflow drives the quiz application through its screens. State
// is a value transformed only by Reduce; Machine serializes dispatch and
// runs the side effects that actions request.
package workflow

import (
	"github.com/abhisek/sorubot/internal/quiz"
)

// Screen identifies the active workflow stage.
type Screen int

const (
	ScreenUpload Screen = iota
	ScreenCustomize
	ScreenGenerating
	ScreenQuiz
	ScreenLoadingPrevQuiz
)

func (s Screen) String() string {
	switch s {
	case ScreenUpload:
		return "upload"
	case ScreenCustomize:
		return "customize"
	case ScreenGenerating:
		return "generating"
	case ScreenQuiz:
		return "quiz"
	case ScreenLoadingPrevQuiz:
		return "loadingPrevQuiz"
	default:
		return "unknown"
	}
}

// Explanation is the explanation-modal sub-state.
type Explanation struct {
	Open       bool
	QuestionID string
	Loading    bool

	// Seq increases with every open; a response carries the Seq of the
	// open that requested it.
	Seq int
}

// State is the whole application state. Treat it as immutable: Reduce
// returns a new State and never writes through the slices or the quiz of
// the one it was given.
type State struct {
	Screen Screen

	// SourceText is the extracted document text; empty means none.
	SourceText string
	FileName   string

	Settings   quiz.Settings
	Suggestion quiz.Range

	// Quiz is set only on ScreenQuiz.
	Quiz        *quiz.Quiz
	ShowResults bool

	Busy bool
	Err  string

	Explain Explanation

	// Request sequence numbers. A response is applied only when it carries
	// the current value.
	ExtractSeq int
	GenSeq     int
	LoadSeq    int

	Summaries []quiz.Summary
}

// Initial returns the session's starting state.
func Initial() State {
	return State{
		Screen:     ScreenUpload,
		Settings:   quiz.DefaultSettings(),
		Suggestion: quiz.Range{Min: quiz.MinQuestions, Max: quiz.MaxQuestions},
	}
}

// HasText reports whether a document has been extracted.
func (s State) HasText() bool {
	return s.SourceText != ""
}

// ExplainedQuestion returns the question the explanation modal targets.
func (s State) ExplainedQuestion() (quiz.Question, bool) {
	if !s.Explain.Open || s.Quiz == nil {
		return quiz.Question{}, false
	}
	i, ok := s.Quiz.IndexOf(s.Explain.QuestionID)
	if !ok {
		return quiz.Question{}, false
	}
	return s.Quiz.Questions[i], true
}
