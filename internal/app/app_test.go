package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sorubot/internal/llm"
	"github.com/abhisek/sorubot/internal/quiz"
	"github.com/abhisek/sorubot/internal/quizgen"
	"github.com/abhisek/sorubot/internal/screen"
	"github.com/abhisek/sorubot/internal/store"
	"github.com/abhisek/sorubot/internal/workflow"
)

func questionsJSON(n int) string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf(`{"question":"Q%d?","options":["a","b","c","d","e"],"correctAnswerIndex":1}`, i+1)
	}
	return "[" + strings.Join(items, ",") + "]"
}

func newTestApp(responses ...llm.MockResponse) AppModel {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	machine := workflow.NewMachine(
		quizgen.New(llm.NewMockProvider(responses...), quizgen.DefaultConfig()),
		store.NewQuizRepo(store.NewMemoryKV()),
		workflow.WithLogger(logger),
	)
	return newAppModel(context.Background(), Options{Machine: machine, Model: "mock", Logger: logger})
}

// execute runs c and gives up on commands that wait, such as ticks and
// cursor blinks.
func execute(c tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- c() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(50 * time.Millisecond):
		return nil, false
	}
}

// drain runs cmd and feeds every resulting dispatch back into the model.
func drain(m AppModel, cmd tea.Cmd) AppModel {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg, ok := execute(c)
		if !ok {
			continue
		}
		switch msg := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case screen.DispatchMsg:
			next, cmd := m.Update(msg)
			m = next.(AppModel)
			queue = append(queue, cmd)
		}
	}
	return m
}

func press(m AppModel, k tea.KeyPressMsg) AppModel {
	next, cmd := m.Update(k)
	return drain(next.(AppModel), cmd)
}

func char(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestAppFlow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("Cells are the basic unit of life in all organisms."), 0o644); err != nil {
		t.Fatal(err)
	}

	m := newTestApp(
		llm.MockResponse{Content: questionsJSON(2)},
		llm.MockResponse{Content: "Because the text says so."},
	)
	m = drain(m, m.Init())
	if got := m.router.Current(); got != workflow.ScreenUpload {
		t.Fatalf("expected upload, got %s", got)
	}

	next, cmd := m.Update(screen.DispatchMsg{Action: workflow.FileSelected{Path: path}})
	m = drain(next.(AppModel), cmd)
	if got := m.router.Current(); got != workflow.ScreenCustomize {
		t.Fatalf("expected customize, got %s (err %q)", got, m.machine.State().Err)
	}
	if view := m.router.View(m.machine.State(), 100, 30); !strings.Contains(view, "notes.txt") {
		t.Error("customize view should name the document")
	}

	m = press(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	st := m.machine.State()
	if m.router.Current() != workflow.ScreenQuiz || st.Quiz == nil {
		t.Fatalf("expected quiz, got %s (err %q)", m.router.Current(), st.Err)
	}
	if len(st.Quiz.Questions) != st.Settings.NumQuestions {
		t.Errorf("expected %d questions, got %d", st.Settings.NumQuestions, len(st.Quiz.Questions))
	}
	if len(st.Summaries) != 1 {
		t.Errorf("expected one history entry, got %d", len(st.Summaries))
	}

	// Explanations are locked until the question is answered.
	m = press(m, char('x'))
	if m.machine.State().Explain.Open {
		t.Error("explanation should not open before answering")
	}

	m = press(m, char('b'))
	q := m.machine.State().Quiz.Questions[0]
	if q.UserAnswer == nil || *q.UserAnswer != 1 {
		t.Fatalf("expected answer B recorded, got %v", q.UserAnswer)
	}

	m = press(m, char('x'))
	st = m.machine.State()
	if !st.Explain.Open || st.Quiz.Questions[0].Explanation != "Because the text says so." {
		t.Fatalf("expected loaded explanation, got %+v", st.Explain)
	}

	m = press(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.machine.State().Explain.Open {
		t.Error("esc should close the explanation")
	}

	m = press(m, char('r'))
	if !m.machine.State().ShowResults {
		t.Error("expected results shown")
	}
	m = press(m, char('c'))
	if a := m.machine.State().Quiz.Questions[0].UserAnswer; *a != 1 {
		t.Error("answers must be locked after results")
	}

	m = press(m, char('s'))
	if m.router.Current() != workflow.ScreenCustomize {
		t.Errorf("expected customize after new settings, got %s", m.router.Current())
	}

	m = press(m, tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl})
	if m.router.Current() != workflow.ScreenUpload {
		t.Errorf("expected upload after new file, got %s", m.router.Current())
	}
}

func TestAppDismissError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.doc")
	if err := os.WriteFile(path, []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, 0o644); err != nil {
		t.Fatal(err)
	}

	m := newTestApp()
	m = drain(m, m.Init())
	next, cmd := m.Update(screen.DispatchMsg{Action: workflow.FileSelected{Path: path}})
	m = drain(next.(AppModel), cmd)

	if m.machine.State().Err == "" {
		t.Fatal("expected an extraction error")
	}
	if m.router.Current() != workflow.ScreenUpload {
		t.Errorf("expected to stay on upload, got %s", m.router.Current())
	}

	m = press(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if err := m.machine.State().Err; err != "" {
		t.Errorf("expected error dismissed, got %q", err)
	}
}

func TestAppHistoryDeleteNeedsConfirmation(t *testing.T) {
	m := newTestApp(llm.MockResponse{Content: questionsJSON(1)})
	m = drain(m, m.Init())

	for _, a := range []workflow.Action{
		workflow.TextExtracted{FileName: "a.txt", Text: "words"},
		workflow.SubmitSettings{Settings: quiz.Settings{Difficulty: quiz.DifficultyEasy, NumQuestions: 1}},
	} {
		next, cmd := m.Update(screen.DispatchMsg{Action: a})
		m = drain(next.(AppModel), cmd)
	}
	m = press(m, tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl})
	if len(m.machine.State().Summaries) != 1 {
		t.Fatalf("expected one stored quiz, got %d", len(m.machine.State().Summaries))
	}

	m = press(m, tea.KeyPressMsg{Code: tea.KeyTab})
	m = press(m, char('d'))
	if len(m.machine.State().Summaries) != 1 {
		t.Fatal("delete must wait for confirmation")
	}
	m = press(m, char('y'))
	if n := len(m.machine.State().Summaries); n != 0 {
		t.Errorf("expected history empty after confirm, got %d", n)
	}
}
