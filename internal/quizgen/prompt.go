package quizgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/sorubot/internal/quiz"
)

var optionLabels = [quiz.OptionCount]string{"A", "B", "C", "D", "E"}

// tierInstruction tailors cognitive demand per difficulty.
func tierInstruction(d quiz.Difficulty) string {
	switch d {
	case quiz.DifficultyEasy:
		return "Easy: ask for direct recall of facts stated in the text or simple application of one idea."
	case quiz.DifficultyHard:
		return "Hard: require analysis and evaluation, or solving a novel problem using principles abstracted " +
			"from the text. Distractors must be plausible near-misses that only careful reasoning rules out."
	default:
		return "Medium: require synthesis or inference across parts of the text, or adapting its methods " +
			"to a new scenario."
	}
}

// truncate cuts text to at most n characters.
func truncate(text string, n int) string {
	if n <= 0 {
		return text
	}
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	return string(r[:n])
}

// buildQuizPrompt constructs the single user message for quiz generation.
func buildQuizPrompt(text string, settings quiz.Settings, maxChars int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Using the document below, write exactly %d multiple-choice questions at %s difficulty.\n\n",
		settings.NumQuestions, settings.Difficulty.Label())

	b.WriteString("Rules:\n")
	fmt.Fprintf(&b, "- Every question has exactly %d options and exactly one correct option.\n", quiz.OptionCount)
	fmt.Fprintf(&b, "- correctAnswerIndex is the 0-based index of the correct option (0 to %d).\n", quiz.OptionCount-1)
	b.WriteString("- Questions must be answerable from the document alone.\n")
	fmt.Fprintf(&b, "- %s\n", tierInstruction(settings.Difficulty))
	b.WriteString("- Write questions in the language of the document.\n")

	b.WriteString("\nRespond ONLY with a JSON array in this format, with no other text:\n")
	b.WriteString(`[
  {
    "question": "Question text",
    "options": ["Option A", "Option B", "Option C", "Option D", "Option E"],
    "correctAnswerIndex": 0
  }
]`)

	b.WriteString("\n\nDocument:\n---\n")
	b.WriteString(truncate(text, maxChars))
	b.WriteString("\n---\n")

	return b.String()
}

// buildExplanationPrompt asks why the correct option is correct, grounded
// in the source text.
func buildExplanationPrompt(q quiz.Question, text string, maxChars int) string {
	var b strings.Builder

	b.WriteString("Explain why the correct answer to the following question is correct, ")
	b.WriteString("using ONLY the information in the document below. Quote or cite the relevant ")
	b.WriteString("passages where possible. If the document does not support the answer, say so.\n\n")

	fmt.Fprintf(&b, "Question: %s\n", q.Text)
	for i, opt := range q.Options {
		label := fmt.Sprint(i + 1)
		if i < len(optionLabels) {
			label = optionLabels[i]
		}
		fmt.Fprintf(&b, "%s) %s\n", label, opt)
	}
	if q.CorrectIndex >= 0 && q.CorrectIndex < len(q.Options) && q.CorrectIndex < len(optionLabels) {
		fmt.Fprintf(&b, "\nCorrect answer: %s) %s\n", optionLabels[q.CorrectIndex], q.Options[q.CorrectIndex])
	}

	b.WriteString("\nDocument:\n---\n")
	b.WriteString(truncate(text, maxChars))
	b.WriteString("\n---\n")

	return b.String()
}
