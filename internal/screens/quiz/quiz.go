// Package quiz is the screen where the user takes a quiz, reviews results
// and reads explanations.
package quiz

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sorubot/internal/screen"
	"github.com/abhisek/sorubot/internal/ui/components"
	"github.com/abhisek/sorubot/internal/ui/layout"
	"github.com/abhisek/sorubot/internal/workflow"
)

// QuizScreen shows one question at a time.
type QuizScreen struct {
	index int
	mc    components.MultiChoice
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen.
func New() *QuizScreen {
	return &QuizScreen{}
}

func (s *QuizScreen) Init(st workflow.State) tea.Cmd {
	s.index = 0
	s.mc = components.MultiChoice{Reveal: st.ShowResults}
	return nil
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) KeyHints(st workflow.State) []layout.KeyHint {
	if st.Explain.Open {
		return []layout.KeyHint{{Key: "Esc", Description: "Close"}}
	}
	hints := []layout.KeyHint{
		{Key: "←→", Description: "Question"},
	}
	if !st.ShowResults {
		hints = append(hints,
			layout.KeyHint{Key: "A-E", Description: "Answer"},
			layout.KeyHint{Key: "r", Description: "Results"},
		)
	}
	if s.canExplain(st) {
		hints = append(hints, layout.KeyHint{Key: "x", Description: "Explain"})
	}
	return append(hints,
		layout.KeyHint{Key: "s", Description: "New settings"},
		layout.KeyHint{Key: "Ctrl+N", Description: "New file"},
	)
}

func (s *QuizScreen) Update(msg tea.Msg, st workflow.State) (screen.Screen, tea.Cmd) {
	if st.Quiz == nil {
		return s, nil
	}
	s.clamp(st)
	s.mc.Reveal = st.ShowResults

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if st.Explain.Open {
		switch kmsg.String() {
		case "esc", "enter", "x", "q":
			return s, screen.Dispatch(workflow.CloseExplanation{})
		}
		return s, nil
	}

	n := len(st.Quiz.Questions)
	switch kmsg.String() {
	case "left", "h", "p":
		if s.index > 0 {
			s.goTo(s.index-1, st)
		}
		return s, nil
	case "right", "l", "n", "tab":
		if s.index < n-1 {
			s.goTo(s.index+1, st)
		}
		return s, nil
	case "r":
		if !st.ShowResults {
			return s, screen.Dispatch(workflow.ShowResults{})
		}
		return s, nil
	case "x":
		if s.canExplain(st) {
			return s, screen.Dispatch(workflow.OpenExplanation{QuestionID: st.Quiz.Questions[s.index].ID})
		}
		return s, nil
	case "s":
		return s, screen.Dispatch(workflow.NewSettings{})
	case "ctrl+n":
		return s, screen.Dispatch(workflow.NewFile{})
	}

	q := st.Quiz.Questions[s.index]
	var pick *components.Pick
	s.mc, pick = s.mc.Update(msg, len(q.Options))
	if pick == nil {
		return s, nil
	}
	return s, screen.Dispatch(workflow.AnswerSelected{QuestionID: q.ID, Option: pick.Option})
}

// canExplain allows explanations once the question is answered or the
// results are shown, so the answer is not given away.
func (s *QuizScreen) canExplain(st workflow.State) bool {
	if st.Quiz == nil || s.index >= len(st.Quiz.Questions) {
		return false
	}
	return st.ShowResults || st.Quiz.Questions[s.index].Answered()
}

func (s *QuizScreen) goTo(i int, st workflow.State) {
	s.index = i
	s.mc.Cursor = 0
	if a := st.Quiz.Questions[i].UserAnswer; a != nil {
		s.mc.Cursor = *a
	}
}

func (s *QuizScreen) clamp(st workflow.State) {
	if n := len(st.Quiz.Questions); s.index >= n {
		s.index = max(n-1, 0)
	}
}
