package quiz

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

const (
	MinQuestions     = 1
	MaxQuestions     = 20
	DefaultQuestions = 5
)

// Settings are the generation parameters chosen on the customize screen.
type Settings struct {
	Difficulty   Difficulty `json:"difficulty" validate:"required,oneof=easy medium hard"`
	NumQuestions int        `json:"numQuestions" validate:"min=1,max=20"`
}

// DefaultSettings returns Medium difficulty with five questions.
func DefaultSettings() Settings {
	return Settings{Difficulty: DifficultyMedium, NumQuestions: DefaultQuestions}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Validate checks the settings against their bounds and returns a
// readable error naming the offending fields.
func (s Settings) Validate() error {
	err := structValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Field() {
		case "NumQuestions":
			msgs = append(msgs, fmt.Sprintf("question count must be between %d and %d", MinQuestions, MaxQuestions))
		case "Difficulty":
			msgs = append(msgs, "difficulty must be easy, medium or hard")
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
