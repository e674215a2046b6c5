package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/abhisek/sorubot/internal/quiz"
)

// WritePDF renders q as an A4 question sheet.
func WritePDF(w io.Writer, q *quiz.Quiz, opts Options) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(q.Title, true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.MultiCell(0, 10, tr(q.Title), "", "L", false)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("%s  |  %d questions  |  %s",
		q.Difficulty.Label(), len(q.Questions), q.CreatedAt.Local().Format("2006-01-02 15:04")))
	pdf.Ln(12)

	for i, question := range q.Questions {
		pdf.SetFont("Arial", "B", 12)
		pdf.MultiCell(0, 7, tr(fmt.Sprintf("%d. %s", i+1, question.Text)), "", "L", false)

		pdf.SetFont("Arial", "", 11)
		for j, opt := range question.Options {
			if opts.AnswerKey && j == question.CorrectIndex {
				pdf.SetFont("Arial", "B", 11)
			}
			pdf.MultiCell(0, 6, tr(fmt.Sprintf("   %s) %s", optionLabel(j), opt)), "", "L", false)
			pdf.SetFont("Arial", "", 11)
		}

		if opts.AnswerKey {
			pdf.SetFont("Arial", "I", 10)
			pdf.MultiCell(0, 6, fmt.Sprintf("Answer: %s", optionLabel(question.CorrectIndex)), "", "L", false)
			if question.Explanation != "" {
				pdf.MultiCell(0, 5, tr(question.Explanation), "", "L", false)
			}
		}
		pdf.Ln(5)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write PDF: %w", err)
	}
	return nil
}
