package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/abhisek/sorubot/internal/quiz"
)

func sampleQuiz() *quiz.Quiz {
	return &quiz.Quiz{
		ID:         "q1",
		Title:      "Hücre Biyolojisi.pdf",
		Difficulty: quiz.DifficultyHard,
		CreatedAt:  time.Date(2026, 2, 3, 4, 5, 0, 0, time.UTC),
		Questions: []quiz.Question{
			{ID: "a", Text: "Where is ATP made?", Options: []string{"Nucleus", "Mitochondria", "Ribosome", "Golgi", "Vacuole"}, CorrectIndex: 1, Explanation: "The text says so."},
			{ID: "b", Text: "Which is a lipid?", Options: []string{"Glucose", "Keratin", "Cholesterol", "DNA", "ATP"}, CorrectIndex: 2},
		},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"pdf": FormatPDF, ".PDF": FormatPDF, "xlsx": FormatXLSX, "excel": FormatXLSX} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("docx")
	assert.Error(t, err)
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleQuiz(), FormatPDF, Options{AnswerKey: true}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 500)
}

func TestWriteXLSX(t *testing.T) {
	tests := []struct {
		name      string
		answerKey bool
		header    []string
		firstRow  []string
	}{
		{
			name:     "questions only",
			header:   []string{"#", "Question", "Option A", "Option B", "Option C", "Option D", "Option E"},
			firstRow: []string{"1", "Where is ATP made?", "Nucleus", "Mitochondria", "Ribosome", "Golgi", "Vacuole"},
		},
		{
			name:      "with answer key",
			answerKey: true,
			header:    []string{"#", "Question", "Option A", "Option B", "Option C", "Option D", "Option E", "Correct Answer", "Explanation"},
			firstRow:  []string{"1", "Where is ATP made?", "Nucleus", "Mitochondria", "Ribosome", "Golgi", "Vacuole", "B", "The text says so."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, sampleQuiz(), FormatXLSX, Options{AnswerKey: tt.answerKey}))

			f, err := excelize.OpenReader(&buf)
			require.NoError(t, err)
			defer f.Close()

			assert.Equal(t, []string{sheetName}, f.GetSheetList())
			rows, err := f.GetRows(sheetName)
			require.NoError(t, err)
			require.Len(t, rows, 3)
			assert.Equal(t, tt.header, rows[0])
			assert.Equal(t, tt.firstRow, rows[1])
		})
	}
}
