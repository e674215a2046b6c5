// Package upload is the first screen: choose a document or reopen a quiz
// from history.
package upload

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sorubot/internal/quiz"
	"github.com/abhisek/sorubot/internal/screen"
	"github.com/abhisek/sorubot/internal/store"
	"github.com/abhisek/sorubot/internal/ui/components"
	"github.com/abhisek/sorubot/internal/ui/layout"
	"github.com/abhisek/sorubot/internal/ui/theme"
	"github.com/abhisek/sorubot/internal/workflow"
)

type focus int

const (
	focusPath focus = iota
	focusHistory
)

// UploadScreen takes a document path and lists stored quizzes.
type UploadScreen struct {
	path    components.TextInput
	history components.Menu
	focus   focus

	// confirmID is the history entry awaiting delete confirmation.
	confirmID string
}

var _ screen.Screen = (*UploadScreen)(nil)
var _ screen.KeyHintProvider = (*UploadScreen)(nil)

// New creates an UploadScreen.
func New() *UploadScreen {
	return &UploadScreen{
		path:    components.NewTextInput("path/to/notes.pdf", false, 1024),
		history: components.NewMenu(nil),
	}
}

func (s *UploadScreen) Init(st workflow.State) tea.Cmd {
	s.confirmID = ""
	s.syncHistory(st)
	return s.setFocus(focusPath)
}

func (s *UploadScreen) Title() string {
	return "Upload"
}

func (s *UploadScreen) KeyHints(st workflow.State) []layout.KeyHint {
	if s.confirmID != "" {
		return []layout.KeyHint{
			{Key: "y", Description: "Delete"},
			{Key: "n", Description: "Keep"},
		}
	}
	hints := []layout.KeyHint{{Key: "Enter", Description: "Open"}}
	if len(st.Summaries) > 0 {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "History"})
	}
	if s.focus == focusHistory {
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: "Navigate"},
			layout.KeyHint{Key: "d", Description: "Delete"},
		)
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (s *UploadScreen) Update(msg tea.Msg, st workflow.State) (screen.Screen, tea.Cmd) {
	s.syncHistory(st)

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		s.path, cmd = s.path.Update(msg)
		return s, cmd
	}
	if st.Busy {
		return s, nil
	}

	if s.confirmID != "" {
		id := s.confirmID
		switch kmsg.String() {
		case "y", "Y":
			s.confirmID = ""
			return s, screen.Dispatch(workflow.DeleteQuiz{ID: id})
		case "n", "N", "esc":
			s.confirmID = ""
		}
		return s, nil
	}

	switch kmsg.String() {
	case "tab", "shift+tab":
		if s.focus == focusPath && len(st.Summaries) > 0 {
			return s, s.setFocus(focusHistory)
		}
		return s, s.setFocus(focusPath)
	}

	if s.focus == focusHistory {
		switch kmsg.String() {
		case "d", "delete":
			if i := s.history.Selected; i < len(st.Summaries) {
				s.confirmID = st.Summaries[i].ID
			}
			return s, nil
		}
		var cmd tea.Cmd
		s.history, cmd = s.history.Update(msg)
		return s, cmd
	}

	if kmsg.String() == "enter" {
		p := strings.TrimSpace(s.path.Value())
		if p == "" {
			s.path.MarkInvalid()
			return s, nil
		}
		return s, screen.Dispatch(workflow.FileSelected{Path: expandHome(p)})
	}

	var cmd tea.Cmd
	s.path, cmd = s.path.Update(msg)
	return s, cmd
}

func (s *UploadScreen) View(st workflow.State, width, height int) string {
	var b strings.Builder
	center := func(str string) {
		b.WriteString(layout.Centered(str, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	center(RenderBanner(width))
	center(theme.Subtitle.Render("Turn your notes into a multiple-choice quiz"))
	b.WriteString("\n")

	inputWidth := min(width-8, 70)
	field := lipgloss.NewStyle().
		Width(inputWidth).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(focusColor(s.focus == focusPath)).
		Render(s.path.View())
	center(theme.Label.Render("Document path"))
	center(field)
	center(theme.Hint.Render("PDF, DOCX or TXT"))

	if st.Busy {
		b.WriteString("\n")
		center(theme.Dimmed.Render("Extracting text..."))
	}

	b.WriteString("\n")
	center(theme.Label.Render(fmt.Sprintf("Recent quizzes (%d/%d)", len(st.Summaries), store.HistoryLimit)))
	if len(st.Summaries) == 0 {
		center(theme.Hint.Render("No quizzes yet."))
		return b.String()
	}

	if s.confirmID != "" {
		title := s.confirmID
		for _, sum := range st.Summaries {
			if sum.ID == s.confirmID {
				title = sum.Title
			}
		}
		center(theme.Incorrect.Render(fmt.Sprintf("Delete %q? [y/n]", title)))
	}

	list := s.history
	list.Active = s.focus == focusHistory
	b.WriteString(lipgloss.NewStyle().Width(width).PaddingLeft(max((width-inputWidth)/2, 0)).Render(list.View()))
	return b.String()
}

func (s *UploadScreen) setFocus(f focus) tea.Cmd {
	s.focus = f
	s.history.Active = f == focusHistory
	if f == focusPath {
		return s.path.Focus()
	}
	s.path.Blur()
	return nil
}

// syncHistory rebuilds the history menu from the stored summaries.
func (s *UploadScreen) syncHistory(st workflow.State) {
	items := make([]components.MenuItem, len(st.Summaries))
	for i, sum := range st.Summaries {
		id := sum.ID
		items[i] = components.MenuItem{
			Label:  sum.Title,
			Detail: summaryDetail(sum),
			Action: func() tea.Cmd {
				return screen.Dispatch(workflow.LoadQuizRequested{ID: id})
			},
		}
	}
	s.history.SetItems(items)
	if len(items) == 0 && s.focus == focusHistory {
		s.setFocus(focusPath)
	}
}

func summaryDetail(sum quiz.Summary) string {
	return fmt.Sprintf("%s · %d questions · %s",
		sum.Difficulty.Label(), sum.NumQuestions, sum.CreatedAt.Local().Format("Jan 02 2006 15:04"))
}

func focusColor(focused bool) color.Color {
	if focused {
		return theme.Primary
	}
	return theme.Border
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
