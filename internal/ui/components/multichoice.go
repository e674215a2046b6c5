package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sorubot/internal/quiz"
	"github.com/abhisek/sorubot/internal/ui/theme"
)

// OptionLabels are the letters shown before options.
var OptionLabels = [quiz.OptionCount]string{"A", "B", "C", "D", "E"}

// MultiChoice renders one question and tracks the option cursor. The
// chosen answer lives in the question itself; the component only reports
// which option the user picked.
type MultiChoice struct {
	Cursor int

	// Reveal marks the correct and incorrect options.
	Reveal bool
}

// Pick is returned from Update when the user picks an option.
type Pick struct {
	Option int
}

// Update moves the cursor and reports a pick on enter, a digit 1-5 or a
// letter a-e.
func (m MultiChoice) Update(msg tea.Msg, optionCount int) (MultiChoice, *Pick) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || optionCount == 0 {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil
	case "down", "j":
		if m.Cursor < optionCount-1 {
			m.Cursor++
		}
		return m, nil
	case "enter", "space":
		if m.Reveal {
			return m, nil
		}
		return m, &Pick{Option: m.Cursor}
	}

	if m.Reveal || len(key) != 1 {
		return m, nil
	}
	idx := -1
	switch c := key[0]; {
	case c >= '1' && c <= '9':
		idx = int(c - '1')
	case c >= 'a' && c <= 'e':
		idx = int(c - 'a')
	}
	if idx < 0 || idx >= optionCount {
		return m, nil
	}
	m.Cursor = idx
	return m, &Pick{Option: idx}
}

// View renders the question text and its options.
func (m MultiChoice) View(q quiz.Question, width int) string {
	var b strings.Builder
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(width)
	b.WriteString(questionStyle.Render(q.Text))
	b.WriteString("\n\n")

	for i, opt := range q.Options {
		label := fmt.Sprint(i + 1)
		if i < len(OptionLabels) {
			label = OptionLabels[i]
		}
		prefix := "  "
		if i == m.Cursor && !m.Reveal {
			prefix = "▸ "
		}
		marker := " "
		chosen := q.UserAnswer != nil && *q.UserAnswer == i
		if chosen {
			marker = "●"
		}

		line := fmt.Sprintf("%s%s %s)  %s", prefix, marker, label, opt)

		style := theme.Unselected
		switch {
		case m.Reveal && i == q.CorrectIndex:
			style = theme.Correct
		case m.Reveal && chosen:
			style = theme.Incorrect
		case m.Reveal:
			style = theme.Dimmed
		case chosen:
			style = theme.Chosen
		case i == m.Cursor:
			style = theme.Selected
		}
		b.WriteString(style.Width(width).Render(line))
		b.WriteString("\n")
	}

	return b.String()
}
