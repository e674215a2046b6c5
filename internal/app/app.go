package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sorubot/internal/router"
	"github.com/abhisek/sorubot/internal/screen"
	"github.com/abhisek/sorubot/internal/screens/customize"
	"github.com/abhisek/sorubot/internal/screens/generating"
	"github.com/abhisek/sorubot/internal/screens/quiz"
	"github.com/abhisek/sorubot/internal/screens/upload"
	"github.com/abhisek/sorubot/internal/store"
	"github.com/abhisek/sorubot/internal/ui/layout"
	"github.com/abhisek/sorubot/internal/workflow"
)

// Options holds the dependencies of the TUI.
type Options struct {
	Machine *workflow.Machine

	// Model is shown in the header, e.g. the LLM model id.
	Model string

	Logger *slog.Logger
}

// AppModel is the root Bubble Tea model. It forwards actions to the
// workflow machine and runs the effects it returns as commands.
type AppModel struct {
	ctx     context.Context
	machine *workflow.Machine
	router  *router.Router
	model   string
	logger  *slog.Logger
	width   int
	height  int
}

func newAppModel(ctx context.Context, opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return AppModel{
		ctx:     ctx,
		machine: opts.Machine,
		model:   opts.Model,
		logger:  logger,
		router: router.New(map[workflow.Screen]screen.Screen{
			workflow.ScreenUpload:          upload.New(),
			workflow.ScreenCustomize:       customize.New(),
			workflow.ScreenGenerating:      generating.New(""),
			workflow.ScreenQuiz:            quiz.New(),
			workflow.ScreenLoadingPrevQuiz: generating.New("Loading quiz..."),
		}),
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.router.Sync(m.machine.State()),
		m.dispatch(workflow.LoadHistory{}),
	)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.DispatchMsg:
		return m, m.dispatch(msg.Action)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.machine.State().Err != "" {
				return m, m.dispatch(workflow.DismissError{})
			}
		}
	}

	cmd := m.router.Update(msg, m.machine.State())
	return m, cmd
}

// dispatch applies a, switches screens if needed and schedules the effect.
func (m AppModel) dispatch(a workflow.Action) tea.Cmd {
	st, eff := m.machine.Dispatch(a)
	cmds := []tea.Cmd{m.router.Sync(st)}
	if eff != nil {
		ctx := m.ctx
		cmds = append(cmds, func() tea.Msg {
			return screen.DispatchMsg{Action: eff(ctx)}
		})
	}
	return tea.Batch(cmds...)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	st := m.machine.State()
	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	status := fmt.Sprintf("%s  history %d/%d", m.model, len(st.Summaries), store.HistoryLimit)
	header := layout.RenderHeader(title, status, m.width)

	var hints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		hints = hp.KeyHints(st)
	} else {
		hints = []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	footer := layout.RenderFooter(hints, m.width)

	banner := ""
	if st.Err != "" {
		banner = layout.RenderErrorBanner(st.Err, m.width)
	}

	contentHeight := max(m.height-layoutHeight(header, banner, footer), 0)
	content := m.router.View(st, m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, banner, content, footer, m.width, m.height))
	return v
}

func layoutHeight(parts ...string) int {
	h := 0
	for _, p := range parts {
		if p != "" {
			h += lipgloss.Height(p)
		}
	}
	return h
}

// Run starts the Bubble Tea program.
func Run(ctx context.Context, opts Options) error {
	m := newAppModel(ctx, opts)
	p := tea.NewProgram(m)
	_, err := p.Run()
	if err != nil {
		m.logger.Error("tui exited with error", "error", err)
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
