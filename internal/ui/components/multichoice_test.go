package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sorubot/internal/quiz"
)

func keyPress(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestMultiChoicePicks(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want int
	}{
		{"enter picks cursor", []string{"enter"}, 0},
		{"cursor then enter", []string{"down", "down", "enter"}, 2},
		{"digit", []string{"4"}, 3},
		{"letter", []string{"e"}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m MultiChoice
			var pick *Pick
			for _, k := range tt.keys {
				m, pick = m.Update(keyPress(k), quiz.OptionCount)
			}
			if pick == nil {
				t.Fatal("expected a pick")
			}
			if pick.Option != tt.want {
				t.Errorf("expected option %d, got %d", tt.want, pick.Option)
			}
			if m.Cursor != tt.want {
				t.Errorf("expected cursor %d, got %d", tt.want, m.Cursor)
			}
		})
	}
}

func TestMultiChoiceIgnoresOutOfRange(t *testing.T) {
	var m MultiChoice
	for _, k := range []string{"6", "f", "z"} {
		if _, pick := m.Update(keyPress(k), quiz.OptionCount); pick != nil {
			t.Errorf("key %q should not pick, got %d", k, pick.Option)
		}
	}
}

func TestMultiChoiceCursorBounds(t *testing.T) {
	var m MultiChoice
	m, _ = m.Update(keyPress("up"), quiz.OptionCount)
	if m.Cursor != 0 {
		t.Errorf("cursor moved above first option: %d", m.Cursor)
	}
	for range 10 {
		m, _ = m.Update(keyPress("down"), quiz.OptionCount)
	}
	if m.Cursor != quiz.OptionCount-1 {
		t.Errorf("cursor moved past last option: %d", m.Cursor)
	}
}

func TestMultiChoiceRevealLocksPicks(t *testing.T) {
	m := MultiChoice{Reveal: true}
	for _, k := range []string{"enter", "b", "2"} {
		if _, pick := m.Update(keyPress(k), quiz.OptionCount); pick != nil {
			t.Errorf("key %q picked while revealed", k)
		}
	}
}

func TestMultiChoiceView(t *testing.T) {
	answer := 2
	q := quiz.Question{
		Text:         "Which organelle makes ATP?",
		Options:      []string{"Nucleus", "Ribosome", "Mitochondrion", "Golgi", "Vacuole"},
		CorrectIndex: 2,
		UserAnswer:   &answer,
	}
	view := MultiChoice{}.View(q, 60)
	for _, want := range []string{"Which organelle", "A)", "E)", "Mitochondrion", "●"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
