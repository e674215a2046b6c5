package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sorubot/internal/ui/layout"
	"github.com/abhisek/sorubot/internal/workflow"
)

// Screen defines the interface for all application screens. Screens keep
// only presentation state (cursors, focus, inputs); everything else comes
// from the workflow state they are handed.
type Screen interface {
	// Init runs when the screen becomes active.
	Init(st workflow.State) tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg, st workflow.State) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(st workflow.State, width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints(st workflow.State) []layout.KeyHint
}

// DispatchMsg carries an action to the workflow machine.
type DispatchMsg struct {
	Action workflow.Action
}

// Dispatch returns a command that sends a to the workflow machine.
func Dispatch(a workflow.Action) tea.Cmd {
	return func() tea.Msg { return DispatchMsg{Action: a} }
}
