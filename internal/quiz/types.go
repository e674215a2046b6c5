package quiz

import (
	"fmt"
	"strings"
	"time"
)

// OptionCount is the number of options every question carries.
const OptionCount = 5

// Difficulty is one of three ordered cognitive-demand tiers.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties returns all tiers in ascending order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// Label returns the display name for the tier.
func (d Difficulty) Label() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	default:
		return string(d)
	}
}

// ParseDifficulty accepts a tier name in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Difficulties() {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", s)
}

// Question is one multiple-choice item. Text, Options and CorrectIndex are
// fixed at generation time; Explanation and UserAnswer are filled in later.
type Question struct {
	ID           string   `json:"id"`
	Text         string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctAnswerIndex"`
	Explanation  string   `json:"explanation,omitempty"`
	UserAnswer   *int     `json:"userAnswer,omitempty"`
}

// Answered reports whether the user picked an option.
func (q Question) Answered() bool {
	return q.UserAnswer != nil
}

// IsCorrect reports whether the user picked the correct option.
func (q Question) IsCorrect() bool {
	return q.UserAnswer != nil && *q.UserAnswer == q.CorrectIndex
}

// Quiz is a generated, ordered set of questions tied to one source document.
type Quiz struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Questions        []Question `json:"questions"`
	Difficulty       Difficulty `json:"difficulty"`
	CreatedAt        time.Time  `json:"createdAt"`
	SourceTextLength int        `json:"sourceTextLength"`
}

// Clone returns a deep copy of q.
func (q *Quiz) Clone() *Quiz {
	if q == nil {
		return nil
	}
	out := *q
	out.Questions = make([]Question, len(q.Questions))
	for i, qu := range q.Questions {
		out.Questions[i] = qu.clone()
	}
	return &out
}

func (q Question) clone() Question {
	out := q
	out.Options = append([]string(nil), q.Options...)
	if q.UserAnswer != nil {
		v := *q.UserAnswer
		out.UserAnswer = &v
	}
	return out
}

// IndexOf returns the position of the question with the given id.
func (q *Quiz) IndexOf(questionID string) (int, bool) {
	for i, qu := range q.Questions {
		if qu.ID == questionID {
			return i, true
		}
	}
	return -1, false
}

// Summary projects the quiz for the history list.
func (q *Quiz) Summary() Summary {
	return Summary{
		ID:           q.ID,
		Title:        q.Title,
		Difficulty:   q.Difficulty,
		NumQuestions: len(q.Questions),
		CreatedAt:    q.CreatedAt,
	}
}

// Summary is the history-list projection of a Quiz.
type Summary struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Difficulty   Difficulty `json:"difficulty"`
	NumQuestions int        `json:"numQuestions"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// Title derives a quiz title from the source file name, falling back to
// a timestamp when the name is empty.
func Title(fileName string, now time.Time) string {
	if name := strings.TrimSpace(fileName); name != "" {
		return name
	}
	return "Quiz - " + now.Format("2006-01-02 15:04")
}
