// Package export writes a stored quiz as a printable PDF or an XLSX sheet.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/sorubot/internal/quiz"
)

// Format is an export file format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts a format name or a file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "pdf":
		return FormatPDF, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unknown export format %q (want pdf or xlsx)", s)
}

// Options controls what an export contains.
type Options struct {
	// AnswerKey includes the correct option and any explanation.
	AnswerKey bool
}

// Write exports q in the given format.
func Write(w io.Writer, q *quiz.Quiz, format Format, opts Options) error {
	switch format {
	case FormatPDF:
		return WritePDF(w, q, opts)
	case FormatXLSX:
		return WriteXLSX(w, q, opts)
	}
	return fmt.Errorf("unknown export format %q", format)
}

// optionLabel returns "A" to "E" for option indexes.
func optionLabel(i int) string {
	return string(rune('A' + i))
}
