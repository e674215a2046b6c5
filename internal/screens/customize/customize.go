// Package customize is the settings screen shown after a document is
// extracted.
package customize

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sorubot/internal/quiz"
	"github.com/abhisek/sorubot/internal/screen"
	"github.com/abhisek/sorubot/internal/ui/components"
	"github.com/abhisek/sorubot/internal/ui/layout"
	"github.com/abhisek/sorubot/internal/ui/theme"
	"github.com/abhisek/sorubot/internal/workflow"
)

type field int

const (
	fieldDifficulty field = iota
	fieldQuestions
	fieldGenerate
	numFields
)

// CustomizeScreen edits difficulty and question count.
type CustomizeScreen struct {
	field      field
	difficulty int
	count      components.TextInput
	generate   components.Button
}

var _ screen.Screen = (*CustomizeScreen)(nil)
var _ screen.KeyHintProvider = (*CustomizeScreen)(nil)

// New creates a CustomizeScreen.
func New() *CustomizeScreen {
	s := &CustomizeScreen{
		count: components.NewTextInput("5", true, 2),
	}
	s.generate = components.NewButton("Generate quiz", false, nil)
	return s
}

func (s *CustomizeScreen) Init(st workflow.State) tea.Cmd {
	s.difficulty = 1
	for i, d := range quiz.Difficulties() {
		if d == st.Settings.Difficulty {
			s.difficulty = i
		}
	}
	s.count.SetValue(strconv.Itoa(st.Settings.NumQuestions))
	return s.setField(fieldDifficulty)
}

func (s *CustomizeScreen) Title() string {
	return "Customize"
}

func (s *CustomizeScreen) KeyHints(workflow.State) []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab", Description: "Next field"}}
	switch s.field {
	case fieldDifficulty:
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Difficulty"})
	case fieldQuestions:
		hints = append(hints, layout.KeyHint{Key: "↑↓", Description: "Count"})
	}
	return append(hints,
		layout.KeyHint{Key: "Enter", Description: "Generate"},
		layout.KeyHint{Key: "Ctrl+N", Description: "New file"},
	)
}

func (s *CustomizeScreen) Update(msg tea.Msg, st workflow.State) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		s.count, cmd = s.count.Update(msg)
		return s, cmd
	}

	switch kmsg.String() {
	case "ctrl+n":
		return s, screen.Dispatch(workflow.NewFile{})
	case "tab", "down":
		if s.field != fieldQuestions || kmsg.String() == "tab" {
			return s, s.setField((s.field + 1) % numFields)
		}
	case "shift+tab":
		return s, s.setField((s.field + numFields - 1) % numFields)
	case "enter":
		return s, s.submit()
	}

	switch s.field {
	case fieldDifficulty:
		switch kmsg.String() {
		case "left", "h":
			s.difficulty = max(s.difficulty-1, 0)
		case "right", "l":
			s.difficulty = min(s.difficulty+1, len(quiz.Difficulties())-1)
		}
		return s, nil

	case fieldQuestions:
		switch kmsg.String() {
		case "up", "+":
			s.stepCount(1, st)
			return s, nil
		case "down", "-":
			s.stepCount(-1, st)
			return s, nil
		}
		var cmd tea.Cmd
		s.count, cmd = s.count.Update(msg)
		return s, cmd
	}

	var cmd tea.Cmd
	s.generate, cmd = s.generate.Update(msg)
	return s, cmd
}

func (s *CustomizeScreen) settings() (quiz.Settings, bool) {
	n, err := s.count.NumericValue()
	if err != nil {
		return quiz.Settings{}, false
	}
	return quiz.Settings{Difficulty: quiz.Difficulties()[s.difficulty], NumQuestions: n}, true
}

func (s *CustomizeScreen) submit() tea.Cmd {
	settings, ok := s.settings()
	if !ok {
		s.count.MarkInvalid()
		return nil
	}
	return screen.Dispatch(workflow.SubmitSettings{Settings: settings})
}

func (s *CustomizeScreen) stepCount(delta int, st workflow.State) {
	n, err := s.count.NumericValue()
	if err != nil {
		n = st.Settings.NumQuestions
	}
	n = max(quiz.MinQuestions, min(n+delta, quiz.MaxQuestions))
	s.count.SetValue(strconv.Itoa(n))
}

func (s *CustomizeScreen) setField(f field) tea.Cmd {
	s.field = f
	s.generate = components.NewButton("Generate quiz", f == fieldGenerate, s.submit)
	if f == fieldQuestions {
		return s.count.Focus()
	}
	s.count.Blur()
	return nil
}

func (s *CustomizeScreen) View(st workflow.State, width, height int) string {
	cw := min(width-4, 90)
	var b strings.Builder
	line := func(str string) {
		b.WriteString(layout.Centered(lipgloss.NewStyle().Width(cw).Render(str), width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	line(theme.Label.Render("Document: ") + theme.Body.Render(st.FileName))
	line(theme.Dimmed.Render(fmt.Sprintf("%d words · suggested %d–%d questions",
		quiz.WordCount(st.SourceText), st.Suggestion.Min, st.Suggestion.Max)))
	b.WriteString("\n")

	previewHeight := max(height-16, 3)
	preview := theme.Card.
		Width(cw).
		MaxHeight(previewHeight).
		Foreground(theme.TextDim).
		Render(quiz.Preview(st.SourceText))
	b.WriteString(layout.Centered(preview, width))
	b.WriteString("\n\n")

	var diffs []string
	for i, d := range quiz.Difficulties() {
		label := " " + d.Label() + " "
		switch {
		case i == s.difficulty && s.field == fieldDifficulty:
			diffs = append(diffs, theme.ButtonActive.Render(label))
		case i == s.difficulty:
			diffs = append(diffs, theme.Selected.Render("["+d.Label()+"]"))
		default:
			diffs = append(diffs, theme.Dimmed.Render(label))
		}
	}
	line(marker(s.field == fieldDifficulty) + theme.Label.Render("Difficulty  ") + strings.Join(diffs, " "))
	line(marker(s.field == fieldQuestions) + theme.Label.Render("Questions   ") + s.count.View() +
		theme.Hint.Render(fmt.Sprintf("  (%d–%d)", quiz.MinQuestions, quiz.MaxQuestions)))
	b.WriteString("\n")
	line(s.generate.View())

	return b.String()
}

func marker(active bool) string {
	if active {
		return theme.Selected.Render("▸ ")
	}
	return "  "
}
