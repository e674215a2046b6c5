package workflow

import (
	"github.com/abhisek/sorubot/internal/quiz"
)

// Action is a request to change State. The set of actions is closed: only
// types in this package implement it.
type Action interface {
	action()
}

// Upload and extraction.
type (
	// FileSelected starts extraction of the file at Path.
	FileSelected struct{ Path string }

	// TextExtracted delivers extracted text for the extraction with Seq.
	TextExtracted struct {
		Seq      int
		FileName string
		Text     string
	}

	ExtractionFailed struct {
		Seq int
		Err string
	}
)

// Generation.
type (
	// SubmitSettings starts generation with the given settings.
	SubmitSettings struct{ Settings quiz.Settings }

	GenerationSucceeded struct {
		Seq  int
		Quiz *quiz.Quiz
	}

	GenerationFailed struct {
		Seq int
		Err string
	}
)

// Navigation.
type (
	NewFile     struct{}
	NewSettings struct{}
)

// History.
type (
	// LoadHistory asks for the stored summaries.
	LoadHistory struct{}

	SummariesLoaded struct{ Summaries []quiz.Summary }

	LoadQuizRequested struct{ ID string }

	QuizLoaded struct {
		Seq  int
		Quiz *quiz.Quiz
		Text string
	}

	QuizLoadFailed struct {
		Seq int
		Err string
	}

	DeleteQuiz struct{ ID string }

	// StorageFailed reports a failed history write.
	StorageFailed struct{ Err string }
)

// Taking the quiz.
type (
	AnswerSelected struct {
		QuestionID string
		Option     int
	}

	ShowResults struct{}

	OpenExplanation struct{ QuestionID string }

	ExplanationLoaded struct {
		QuestionID string
		Seq        int
		Text       string
	}

	ExplanationFailed struct {
		QuestionID string
		Seq        int
		Err        string
	}

	CloseExplanation struct{}
)

// DismissError clears the error banner.
type DismissError struct{}

func (FileSelected) action()        {}
func (TextExtracted) action()       {}
func (ExtractionFailed) action()    {}
func (SubmitSettings) action()      {}
func (GenerationSucceeded) action() {}
func (GenerationFailed) action()    {}
func (NewFile) action()             {}
func (NewSettings) action()         {}
func (LoadHistory) action()         {}
func (SummariesLoaded) action()     {}
func (LoadQuizRequested) action()   {}
func (QuizLoaded) action()          {}
func (QuizLoadFailed) action()      {}
func (DeleteQuiz) action()          {}
func (StorageFailed) action()       {}
func (AnswerSelected) action()      {}
func (ShowResults) action()         {}
func (OpenExplanation) action()     {}
func (ExplanationLoaded) action()   {}
func (ExplanationFailed) action()   {}
func (CloseExplanation) action()    {}
func (DismissError) action()        {}
