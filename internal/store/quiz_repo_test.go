package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sorubot/internal/quiz"
)

func makeQuiz(id string, created time.Time) *quiz.Quiz {
	answer := 2
	return &quiz.Quiz{
		ID:         id,
		Title:      "Quiz " + id,
		Difficulty: quiz.DifficultyHard,
		CreatedAt:  created,
		Questions: []quiz.Question{
			{
				ID:           id + "-q1",
				Text:         "What is the capital?",
				Options:      []string{"A", "B", "C", "D", "E"},
				CorrectIndex: 2,
				Explanation:  "because",
				UserAnswer:   &answer,
			},
		},
		SourceTextLength: 11,
	}
}

func TestQuizRepo_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewQuizRepo(NewMemoryKV())
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	q := makeQuiz("one", created)

	list, err := repo.Save(ctx, q, "source text")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, q.Summary(), list[0])

	loaded, text, err := repo.Load(ctx, "one")
	require.NoError(t, err)
	assert.Equal(t, "source text", text)
	assert.Equal(t, q.Title, loaded.Title)
	assert.Equal(t, q.Difficulty, loaded.Difficulty)
	assert.True(t, created.Equal(loaded.CreatedAt))
	require.Len(t, loaded.Questions, 1)
	assert.Equal(t, q.Questions[0].Options, loaded.Questions[0].Options)
	assert.Equal(t, 2, loaded.Questions[0].CorrectIndex)
	assert.Nil(t, loaded.Questions[0].UserAnswer, "user answers are not persisted")

	// The caller's quiz is untouched.
	require.NotNil(t, q.Questions[0].UserAnswer)
}

func TestQuizRepo_HistoryBounded(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	repo := NewQuizRepo(kv)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 15; i++ {
		list, err := repo.Save(ctx, makeQuiz(fmt.Sprintf("q%02d", i), base.Add(time.Duration(i)*time.Minute)), "t")
		require.NoError(t, err)
		assert.LessOrEqual(t, len(list), HistoryLimit)
	}

	list, err := repo.Summaries(ctx)
	require.NoError(t, err)
	require.Len(t, list, HistoryLimit)
	assert.Equal(t, "q14", list[0].ID, "newest first")
	assert.Equal(t, "q05", list[HistoryLimit-1].ID)

	// Evicted quizzes are gone from storage as well.
	_, _, err = repo.Load(ctx, "q00")
	assert.ErrorIs(t, err, ErrQuizNotFound)
	assert.Equal(t, 1+2*HistoryLimit, kv.Len())
}

func TestQuizRepo_ResaveReplaces(t *testing.T) {
	ctx := context.Background()
	repo := NewQuizRepo(NewMemoryKV())
	now := time.Now()

	_, err := repo.Save(ctx, makeQuiz("a", now), "t")
	require.NoError(t, err)
	_, err = repo.Save(ctx, makeQuiz("b", now), "t")
	require.NoError(t, err)

	renamed := makeQuiz("a", now)
	renamed.Title = "Renamed"
	list, err := repo.Save(ctx, renamed, "t2")
	require.NoError(t, err)

	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "Renamed", list[0].Title)
	assert.Equal(t, "b", list[1].ID)

	_, text, err := repo.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "t2", text)
}

func TestQuizRepo_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewQuizRepo(NewMemoryKV())

	_, err := repo.Save(ctx, makeQuiz("a", time.Now()), "t")
	require.NoError(t, err)
	_, err = repo.Save(ctx, makeQuiz("b", time.Now()), "t")
	require.NoError(t, err)

	list, err := repo.Delete(ctx, "a")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].ID)

	_, _, err = repo.Load(ctx, "a")
	assert.True(t, errors.Is(err, ErrQuizNotFound))
}

func TestQuizRepo_MissingTextIsNotFound(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	repo := NewQuizRepo(kv)

	_, err := repo.Save(ctx, makeQuiz("a", time.Now()), "t")
	require.NoError(t, err)
	require.NoError(t, kv.Remove(ctx, "quiz_detail_a_text"))

	_, _, err = repo.Load(ctx, "a")
	assert.ErrorIs(t, err, ErrQuizNotFound)
}

func TestQuizRepo_EmptyTextIsNotFound(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	repo := NewQuizRepo(kv)

	_, err := repo.Save(ctx, makeQuiz("a", time.Now()), "")
	require.NoError(t, err)

	_, _, err = repo.Load(ctx, "a")
	assert.ErrorIs(t, err, ErrQuizNotFound)
}

func TestQuizRepo_CorruptIndex(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	repo := NewQuizRepo(kv)
	require.NoError(t, kv.Set(ctx, "quizzes_index", "{not json"))

	_, err := repo.Summaries(ctx)
	require.Error(t, err)

	list, err := repo.Save(ctx, makeQuiz("a", time.Now()), "t")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestQuizRepo_SQLiteBacked(t *testing.T) {
	ctx := context.Background()
	repo := openTestStore(t).QuizRepo()

	list, err := repo.Summaries(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = repo.Save(ctx, makeQuiz("db", time.Now()), "persisted")
	require.NoError(t, err)

	_, text, err := repo.Load(ctx, "db")
	require.NoError(t, err)
	assert.Equal(t, "persisted", text)
}
