// Package generating shows progress while the quiz is being generated.
package generating

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sorubot/internal/screen"
	"github.com/abhisek/sorubot/internal/ui/layout"
	"github.com/abhisek/sorubot/internal/ui/theme"
	"github.com/abhisek/sorubot/internal/workflow"
)

const tickInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinnerTickMsg advances the spinner.
type spinnerTickMsg time.Time

// GeneratingScreen is a spinner with the request being served.
type GeneratingScreen struct {
	frame   int
	message string
}

var _ screen.Screen = (*GeneratingScreen)(nil)
var _ screen.KeyHintProvider = (*GeneratingScreen)(nil)

// New creates a GeneratingScreen. message is shown under the spinner; an
// empty message describes the pending generation.
func New(message string) *GeneratingScreen {
	return &GeneratingScreen{message: message}
}

func (s *GeneratingScreen) Init(workflow.State) tea.Cmd {
	s.frame = 0
	return tick()
}

func (s *GeneratingScreen) Title() string {
	return "Generating"
}

func (s *GeneratingScreen) KeyHints(workflow.State) []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Ctrl+N", Description: "Cancel and choose a new file"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *GeneratingScreen) Update(msg tea.Msg, st workflow.State) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTickMsg:
		if !st.Busy {
			return s, nil
		}
		s.frame = (s.frame + 1) % len(spinnerFrames)
		return s, tick()
	case tea.KeyMsg:
		if msg.String() == "ctrl+n" {
			return s, screen.Dispatch(workflow.NewFile{})
		}
	}
	return s, nil
}

func (s *GeneratingScreen) View(st workflow.State, width, height int) string {
	msg := s.message
	if msg == "" {
		msg = fmt.Sprintf("Writing %d %s questions from %s...",
			st.Settings.NumQuestions, st.Settings.Difficulty.Label(), st.FileName)
	}
	body := theme.Selected.Render(spinnerFrames[s.frame]) + "  " + theme.Body.Render(msg)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
