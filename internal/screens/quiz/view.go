package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	quizpkg "github.com/abhisek/sorubot/internal/quiz"
	"github.com/abhisek/sorubot/internal/ui/components"
	"github.com/abhisek/sorubot/internal/ui/layout"
	"github.com/abhisek/sorubot/internal/ui/theme"
	"github.com/abhisek/sorubot/internal/workflow"
)

func (s *QuizScreen) View(st workflow.State, width, height int) string {
	if st.Quiz == nil || len(st.Quiz.Questions) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No quiz loaded."))
	}
	if st.Explain.Open {
		return renderExplanation(st, width, height)
	}

	index := min(s.index, len(st.Quiz.Questions)-1)
	q := st.Quiz.Questions[index]
	cw := min(width-4, 90)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Centered(theme.Title.Render(st.Quiz.Title), width))
	b.WriteString("\n")
	b.WriteString(layout.Centered(theme.Dimmed.Render(st.Quiz.Difficulty.Label()+" difficulty"), width))
	b.WriteString("\n\n")

	score := quizpkg.ScoreOf(st.Quiz)
	progress := components.NewProgressBar(
		fmt.Sprintf("Question %d/%d", index+1, score.Total),
		float64(score.Answered)/float64(score.Total),
		fmt.Sprintf("%d answered", score.Answered),
		cw,
	)
	b.WriteString(layout.Centered(progress.View(), width))
	b.WriteString("\n\n")

	mc := s.mc
	mc.Reveal = st.ShowResults
	b.WriteString(layout.Centered(lipgloss.NewStyle().Width(cw).Render(mc.View(q, cw)), width))
	b.WriteString("\n")

	if st.ShowResults {
		b.WriteString(layout.Centered(renderScore(score, cw), width))
		b.WriteString("\n")
		if !q.Answered() {
			b.WriteString(layout.Centered(theme.Hint.Render("Not answered"), width))
			b.WriteString("\n")
		}
	}
	b.WriteString(layout.Centered(renderDots(st.Quiz, index, st.ShowResults), width))

	return b.String()
}

// renderScore shows "correct/total (percent)" with a bar.
func renderScore(score quizpkg.Score, width int) string {
	label := theme.Correct.Render("Score")
	bar := components.NewProgressBar("", float64(score.Correct)/float64(max(score.Total, 1)),
		fmt.Sprintf("%s (%d%%)", components.Fraction(score.Correct, score.Total), score.Percent()), width-8)
	return label + "  " + bar.View()
}

// renderDots draws one dot per question: filled when answered, colored by
// correctness once results are shown.
func renderDots(q *quizpkg.Quiz, current int, reveal bool) string {
	dots := make([]string, len(q.Questions))
	for i, qu := range q.Questions {
		dot := "○"
		style := theme.Dimmed
		if qu.Answered() {
			dot = "●"
			style = theme.Chosen
			if reveal && qu.IsCorrect() {
				style = theme.Correct
			} else if reveal {
				style = theme.Incorrect
			}
		}
		if i == current {
			dot = "◉"
			if !qu.Answered() {
				style = theme.Selected
			}
		}
		dots[i] = style.Render(dot)
	}
	return strings.Join(dots, " ")
}

func renderExplanation(st workflow.State, width, height int) string {
	q, ok := st.ExplainedQuestion()
	if !ok {
		return ""
	}
	cw := min(width-8, 86)

	var body string
	if st.Explain.Loading {
		body = theme.Dimmed.Render("Fetching explanation...")
	} else {
		body = theme.Body.Render(q.Explanation)
	}

	correct := ""
	if q.CorrectIndex >= 0 && q.CorrectIndex < len(q.Options) {
		correct = fmt.Sprintf("%s) %s", components.OptionLabels[q.CorrectIndex], q.Options[q.CorrectIndex])
	}

	content := theme.Label.Render("Explanation") + "\n\n" +
		theme.Body.Bold(true).Render(q.Text) + "\n" +
		theme.Correct.Render("Answer: "+correct) + "\n\n" +
		body

	modal := theme.Modal.Width(cw).MaxHeight(height).Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}
