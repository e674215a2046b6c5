package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/sorubot/internal/quiz"
)

// HistoryLimit is the maximum number of quizzes kept in history.
const HistoryLimit = 10

const (
	indexKey     = "quizzes_index"
	detailPrefix = "quiz_detail_"
)

func detailKey(id string) string { return detailPrefix + id }
func textKey(id string) string   { return detailPrefix + id + "_text" }

type kvQuizRepo struct {
	kv KV
}

// NewQuizRepo returns a QuizRepo laid out over kv as:
//
//	quizzes_index          -> []quiz.Summary, newest first
//	quiz_detail_<id>       -> quiz.Quiz without user answers
//	quiz_detail_<id>_text  -> source text
//
// All values are JSON. Writes are not atomic across keys, so Load treats a
// missing detail or text as ErrQuizNotFound.
func NewQuizRepo(kv KV) QuizRepo {
	return &kvQuizRepo{kv: kv}
}

func (r *kvQuizRepo) Summaries(ctx context.Context) ([]quiz.Summary, error) {
	raw, ok, err := r.kv.Get(ctx, indexKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []quiz.Summary{}, nil
	}
	var list []quiz.Summary
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("decode %s: %w", indexKey, err)
	}
	if list == nil {
		list = []quiz.Summary{}
	}
	return list, nil
}

func (r *kvQuizRepo) Save(ctx context.Context, q *quiz.Quiz, sourceText string) ([]quiz.Summary, error) {
	list, err := r.Summaries(ctx)
	if err != nil {
		// A corrupt index is replaced rather than blocking new saves.
		list = []quiz.Summary{}
	}

	next := make([]quiz.Summary, 0, len(list)+1)
	next = append(next, q.Summary())
	for _, s := range list {
		if s.ID != q.ID {
			next = append(next, s)
		}
	}

	var evicted []quiz.Summary
	if len(next) > HistoryLimit {
		evicted = next[HistoryLimit:]
		next = next[:HistoryLimit]
	}

	if err := r.putJSON(ctx, indexKey, next); err != nil {
		return nil, err
	}

	stored := q.Clone()
	for i := range stored.Questions {
		stored.Questions[i].UserAnswer = nil
	}
	if err := r.putJSON(ctx, detailKey(q.ID), stored); err != nil {
		return nil, err
	}
	if err := r.putJSON(ctx, textKey(q.ID), sourceText); err != nil {
		return nil, err
	}

	for _, s := range evicted {
		if err := r.removeDetail(ctx, s.ID); err != nil {
			return nil, err
		}
	}

	return next, nil
}

func (r *kvQuizRepo) Load(ctx context.Context, id string) (*quiz.Quiz, string, error) {
	rawQuiz, ok, err := r.kv.Get(ctx, detailKey(id))
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", ErrQuizNotFound, id)
	}

	rawText, ok, err := r.kv.Get(ctx, textKey(id))
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", fmt.Errorf("%w: source text for %s", ErrQuizNotFound, id)
	}

	var q quiz.Quiz
	if err := json.Unmarshal([]byte(rawQuiz), &q); err != nil {
		return nil, "", fmt.Errorf("decode quiz %s: %w", id, err)
	}
	var text string
	if err := json.Unmarshal([]byte(rawText), &text); err != nil {
		return nil, "", fmt.Errorf("decode source text %s: %w", id, err)
	}
	if text == "" {
		return nil, "", fmt.Errorf("%w: empty source text for %s", ErrQuizNotFound, id)
	}

	return &q, text, nil
}

func (r *kvQuizRepo) Delete(ctx context.Context, id string) ([]quiz.Summary, error) {
	list, err := r.Summaries(ctx)
	if err != nil {
		return nil, err
	}

	next := make([]quiz.Summary, 0, len(list))
	for _, s := range list {
		if s.ID != id {
			next = append(next, s)
		}
	}

	if err := r.putJSON(ctx, indexKey, next); err != nil {
		return nil, err
	}
	if err := r.removeDetail(ctx, id); err != nil {
		return nil, err
	}
	return next, nil
}

func (r *kvQuizRepo) removeDetail(ctx context.Context, id string) error {
	if err := r.kv.Remove(ctx, detailKey(id)); err != nil {
		return err
	}
	return r.kv.Remove(ctx, textKey(id))
}

func (r *kvQuizRepo) putJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return r.kv.Set(ctx, key, string(b))
}
