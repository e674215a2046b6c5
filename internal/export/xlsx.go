package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/sorubot/internal/quiz"
)

const sheetName = "Quiz"

// WriteXLSX writes one row per question. Answer-key columns are added when
// requested.
func WriteXLSX(w io.Writer, q *quiz.Quiz, opts Options) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headers := []any{"#", "Question"}
	for i := range quiz.OptionCount {
		headers = append(headers, "Option "+optionLabel(i))
	}
	if opts.AnswerKey {
		headers = append(headers, "Correct Answer", "Explanation")
	}
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, question := range q.Questions {
		row := []any{i + 1, question.Text}
		for j := range quiz.OptionCount {
			opt := ""
			if j < len(question.Options) {
				opt = question.Options[j]
			}
			row = append(row, opt)
		}
		if opts.AnswerKey {
			row = append(row, optionLabel(question.CorrectIndex), question.Explanation)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}
