package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/abhisek/sorubot/internal/extract"
	"github.com/abhisek/sorubot/internal/quiz"
	"github.com/abhisek/sorubot/internal/store"
)

// Generator is the LLM-backed quiz and explanation client.
type Generator interface {
	Generate(ctx context.Context, sourceText string, settings quiz.Settings) ([]quiz.Question, error)
	Explain(ctx context.Context, q quiz.Question, sourceText string) (string, error)
}

// Effect performs one external call and returns the follow-up action.
type Effect func(ctx context.Context) Action

// Machine is the single dispatch entry point. Dispatch reduces under a
// lock and hands back the effect the action requires; the caller runs it
// and dispatches the returned action.
type Machine struct {
	mu    sync.Mutex
	state State

	gen         Generator
	repo        store.QuizRepo
	extractFile func(path string) (*extract.File, error)
	now         func() time.Time
	newID       func() string
	logger      *slog.Logger
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger used for stale responses and storage errors.
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) { m.logger = l }
}

// WithClock sets the time source used for quiz timestamps and titles.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// WithIDs sets the quiz id generator.
func WithIDs(newID func() string) Option {
	return func(m *Machine) { m.newID = newID }
}

// WithExtractor replaces the file extractor.
func WithExtractor(fn func(path string) (*extract.File, error)) Option {
	return func(m *Machine) { m.extractFile = fn }
}

// NewMachine creates a Machine in the initial state.
func NewMachine(gen Generator, repo store.QuizRepo, opts ...Option) *Machine {
	m := &Machine{
		state:       Initial(),
		gen:         gen,
		repo:        repo,
		extractFile: extract.ReadFile,
		now:         time.Now,
		newID:       uuid.NewString,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Dispatch applies a and returns the new state together with the effect
// it requires, or nil when there is nothing to run.
func (m *Machine) Dispatch(a Action) (State, Effect) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.state
	if Stale(prev, a) {
		m.logger.Info("discarding stale response",
			"action", fmt.Sprintf("%T", a),
			"screen", prev.Screen.String(),
		)
		return prev, nil
	}

	next := Reduce(prev, a)
	m.state = next
	return next, m.effectFor(prev, next, a)
}

// Run dispatches a and then every follow-up action until no effect
// remains. It returns the final state.
func (m *Machine) Run(ctx context.Context, a Action) State {
	for {
		st, eff := m.Dispatch(a)
		if eff == nil {
			return st
		}
		a = eff(ctx)
	}
}

func (m *Machine) effectFor(prev, next State, a Action) Effect {
	switch a := a.(type) {
	case FileSelected:
		return m.extractEffect(next.ExtractSeq, a.Path)

	case SubmitSettings:
		if next.GenSeq == prev.GenSeq {
			return nil
		}
		return m.generateEffect(next.GenSeq, next.SourceText, next.FileName, next.Settings)

	case GenerationSucceeded:
		return m.saveEffect(next.Quiz, next.SourceText)

	case LoadHistory:
		return m.summariesEffect()

	case LoadQuizRequested:
		return m.loadEffect(next.LoadSeq, a.ID)

	case DeleteQuiz:
		return m.deleteEffect(a.ID)

	case OpenExplanation:
		if !next.Explain.Loading || next.Explain.Seq == prev.Explain.Seq {
			return nil
		}
		q, ok := next.ExplainedQuestion()
		if !ok {
			return nil
		}
		return m.explainEffect(next.Explain.Seq, q, next.SourceText)
	}
	return nil
}

func (m *Machine) extractEffect(seq int, path string) Effect {
	return func(ctx context.Context) Action {
		f, err := m.extractFile(path)
		if err != nil {
			m.logger.Warn("text extraction failed", "path", path, "error", err)
			return ExtractionFailed{Seq: seq, Err: err.Error()}
		}
		return TextExtracted{Seq: seq, FileName: f.Name, Text: f.Text}
	}
}

func (m *Machine) generateEffect(seq int, text, fileName string, settings quiz.Settings) Effect {
	return func(ctx context.Context) Action {
		questions, err := m.gen.Generate(ctx, text, settings)
		if err != nil {
			m.logger.Warn("quiz generation failed", "error", err)
			return GenerationFailed{Seq: seq, Err: err.Error()}
		}
		now := m.now()
		return GenerationSucceeded{Seq: seq, Quiz: &quiz.Quiz{
			ID:               m.newID(),
			Title:            quiz.Title(fileName, now),
			Questions:        questions,
			Difficulty:       settings.Difficulty,
			CreatedAt:        now,
			SourceTextLength: utf8.RuneCountInString(text),
		}}
	}
}

func (m *Machine) saveEffect(q *quiz.Quiz, text string) Effect {
	q = q.Clone()
	return func(ctx context.Context) Action {
		summaries, err := m.repo.Save(ctx, q, text)
		if err != nil {
			m.logger.Error("saving quiz failed", "quiz_id", q.ID, "error", err)
			return StorageFailed{Err: "Could not save quiz to history: " + err.Error()}
		}
		return SummariesLoaded{Summaries: summaries}
	}
}

func (m *Machine) summariesEffect() Effect {
	return func(ctx context.Context) Action {
		summaries, err := m.repo.Summaries(ctx)
		if err != nil {
			m.logger.Error("loading quiz history failed", "error", err)
			return SummariesLoaded{}
		}
		return SummariesLoaded{Summaries: summaries}
	}
}

func (m *Machine) loadEffect(seq int, id string) Effect {
	return func(ctx context.Context) Action {
		q, text, err := m.repo.Load(ctx, id)
		if err != nil {
			if !errors.Is(err, store.ErrQuizNotFound) {
				m.logger.Error("loading quiz failed", "quiz_id", id, "error", err)
			}
			return QuizLoadFailed{Seq: seq, Err: "Could not load quiz: " + err.Error()}
		}
		return QuizLoaded{Seq: seq, Quiz: q, Text: text}
	}
}

func (m *Machine) deleteEffect(id string) Effect {
	return func(ctx context.Context) Action {
		summaries, err := m.repo.Delete(ctx, id)
		if err != nil {
			m.logger.Error("deleting quiz failed", "quiz_id", id, "error", err)
			return StorageFailed{Err: "Could not delete quiz: " + err.Error()}
		}
		return SummariesLoaded{Summaries: summaries}
	}
}

func (m *Machine) explainEffect(seq int, q quiz.Question, text string) Effect {
	return func(ctx context.Context) Action {
		explanation, err := m.gen.Explain(ctx, q, text)
		if err != nil {
			m.logger.Warn("explanation failed", "question_id", q.ID, "error", err)
			return ExplanationFailed{QuestionID: q.ID, Seq: seq, Err: err.Error()}
		}
		return ExplanationLoaded{QuestionID: q.ID, Seq: seq, Text: explanation}
	}
}
