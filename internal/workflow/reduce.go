package workflow

import (
	"slices"

	"github.com/abhisek/sorubot/internal/quiz"
)

// User-facing messages set by the reducer.
const (
	MsgNoText             = "Please upload a document before generating a quiz."
	ExplanationFailPrefix = "Could not fetch explanation: "
)

// Reduce returns the state that results from applying a to s. It is pure:
// the same inputs always give the same output and s is left untouched.
// Actions that do not apply to s, including stale responses, return s.
func Reduce(s State, a Action) State {
	if Stale(s, a) {
		return s
	}

	switch a := a.(type) {
	case FileSelected:
		s.Busy = true
		s.Err = ""
		s.ExtractSeq++
		return s

	case TextExtracted:
		s.SourceText = a.Text
		s.FileName = a.FileName
		s.Suggestion = quiz.SuggestRange(a.Text)
		s.Settings.NumQuestions = s.Suggestion.Clamp(s.Settings.NumQuestions)
		s.Quiz = nil
		s.Busy = false
		s.Err = ""
		s.Screen = ScreenCustomize
		return s

	case ExtractionFailed:
		s.Busy = false
		s.Err = a.Err
		return s

	case SubmitSettings:
		if !s.HasText() {
			s.Err = MsgNoText
			return s
		}
		if err := a.Settings.Validate(); err != nil {
			s.Err = err.Error()
			return s
		}
		s.Settings = a.Settings
		s.Busy = true
		s.Err = ""
		s.GenSeq++
		s.Screen = ScreenGenerating
		return s

	case GenerationSucceeded:
		s.Quiz = a.Quiz.Clone()
		s.ShowResults = false
		s.Explain = closed(s.Explain)
		s.Busy = false
		s.Err = ""
		s.Screen = ScreenQuiz
		return s

	case GenerationFailed:
		s.Busy = false
		s.Err = a.Err
		s.Screen = ScreenCustomize
		return s

	case NewFile:
		s.SourceText = ""
		s.FileName = ""
		s.Quiz = nil
		s.ShowResults = false
		s.Explain = closed(s.Explain)
		s.Err = ""
		s.Busy = false
		s.ExtractSeq++
		s.Screen = ScreenUpload
		return s

	case NewSettings:
		if s.Screen != ScreenQuiz {
			return s
		}
		s.Quiz = nil
		s.ShowResults = false
		s.Explain = closed(s.Explain)
		s.Screen = ScreenCustomize
		return s

	case LoadHistory:
		return s

	case SummariesLoaded:
		s.Summaries = slices.Clone(a.Summaries)
		return s

	case LoadQuizRequested:
		s.Quiz = nil
		s.ShowResults = false
		s.Explain = closed(s.Explain)
		s.Busy = true
		s.Err = ""
		s.LoadSeq++
		s.Screen = ScreenLoadingPrevQuiz
		return s

	case QuizLoaded:
		q := a.Quiz.Clone()
		for i := range q.Questions {
			q.Questions[i].UserAnswer = nil
			q.Questions[i].Explanation = ""
		}
		s.Quiz = q
		s.SourceText = a.Text
		s.FileName = q.Title
		s.Suggestion = quiz.SuggestRange(a.Text)
		s.Settings.Difficulty = q.Difficulty
		s.Settings.NumQuestions = len(q.Questions)
		s.Busy = false
		s.Err = ""
		s.Screen = ScreenQuiz
		return s

	case QuizLoadFailed:
		s.Busy = false
		s.Err = a.Err
		s.Screen = ScreenUpload
		return s

	case DeleteQuiz:
		s.Summaries = slices.DeleteFunc(slices.Clone(s.Summaries), func(sum quiz.Summary) bool {
			return sum.ID == a.ID
		})
		return s

	case StorageFailed:
		s.Err = a.Err
		return s

	case AnswerSelected:
		if s.Screen != ScreenQuiz || s.ShowResults || a.Option < 0 || a.Option >= quiz.OptionCount {
			return s
		}
		return withQuestion(s, a.QuestionID, func(q *quiz.Question) {
			opt := a.Option
			q.UserAnswer = &opt
		})

	case ShowResults:
		if s.Screen != ScreenQuiz {
			return s
		}
		s.ShowResults = true
		return s

	case OpenExplanation:
		if s.Screen != ScreenQuiz || s.Quiz == nil {
			return s
		}
		i, ok := s.Quiz.IndexOf(a.QuestionID)
		if !ok {
			return s
		}
		s.Explain = Explanation{
			Open:       true,
			QuestionID: a.QuestionID,
			Loading:    s.Quiz.Questions[i].Explanation == "",
			Seq:        s.Explain.Seq + 1,
		}
		return s

	case ExplanationLoaded:
		s.Explain.Loading = false
		return withQuestion(s, a.QuestionID, func(q *quiz.Question) {
			q.Explanation = a.Text
		})

	case ExplanationFailed:
		s.Explain.Loading = false
		return withQuestion(s, a.QuestionID, func(q *quiz.Question) {
			q.Explanation = ExplanationFailPrefix + a.Err
		})

	case CloseExplanation:
		s.Explain = closed(s.Explain)
		return s

	case DismissError:
		s.Err = ""
		return s
	}
	return s
}

// Stale reports whether a is a response to a request that has since been
// superseded or abandoned.
func Stale(s State, a Action) bool {
	switch a := a.(type) {
	case TextExtracted:
		return a.Seq != s.ExtractSeq || s.Screen != ScreenUpload
	case ExtractionFailed:
		return a.Seq != s.ExtractSeq || s.Screen != ScreenUpload
	case GenerationSucceeded:
		return a.Seq != s.GenSeq || s.Screen != ScreenGenerating || a.Quiz == nil
	case GenerationFailed:
		return a.Seq != s.GenSeq || s.Screen != ScreenGenerating
	case QuizLoaded:
		return a.Seq != s.LoadSeq || s.Screen != ScreenLoadingPrevQuiz || a.Quiz == nil
	case QuizLoadFailed:
		return a.Seq != s.LoadSeq || s.Screen != ScreenLoadingPrevQuiz
	case ExplanationLoaded:
		return !explainTarget(s, a.QuestionID, a.Seq)
	case ExplanationFailed:
		return !explainTarget(s, a.QuestionID, a.Seq)
	}
	return false
}

func explainTarget(s State, questionID string, seq int) bool {
	return s.Screen == ScreenQuiz && s.Quiz != nil &&
		s.Explain.Open && s.Explain.QuestionID == questionID && s.Explain.Seq == seq
}

// closed keeps the sequence so the next open still advances it.
func closed(e Explanation) Explanation {
	return Explanation{Seq: e.Seq}
}

// withQuestion copies the quiz and applies fn to the copy of one question.
func withQuestion(s State, questionID string, fn func(*quiz.Question)) State {
	if s.Quiz == nil {
		return s
	}
	i, ok := s.Quiz.IndexOf(questionID)
	if !ok {
		return s
	}
	q := s.Quiz.Clone()
	fn(&q.Questions[i])
	s.Quiz = q
	return s
}
