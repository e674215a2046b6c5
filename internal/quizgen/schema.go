package quizgen

import (
	"github.com/abhisek/sorubot/internal/llm"
	"github.com/abhisek/sorubot/internal/quiz"
)

// QuestionsSchema is the shape every generation reply must have once code
// fences are stripped.
var QuestionsSchema = &llm.Schema{
	Name: "quiz-questions",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{
					"type":      "string",
					"minLength": 1,
				},
				"options": map[string]any{
					"type":     "array",
					"minItems": quiz.OptionCount,
					"maxItems": quiz.OptionCount,
					"items":    map[string]any{"type": "string"},
				},
				"correctAnswerIndex": map[string]any{
					"type":    "integer",
					"minimum": 0,
					"maximum": quiz.OptionCount - 1,
				},
			},
			"required": []any{"question", "options", "correctAnswerIndex"},
		},
	},
}
