package extract

import (
	"bytes"
	"fmt"

	"code.sajari.com/docconv/v2"
)

// extractDOCX returns the body text of a DOCX file. Paragraphs and
// breaks come back as newlines.
func extractDOCX(data []byte) (string, error) {
	text, _, err := docconv.ConvertDocx(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("open DOCX: %w", err)
	}
	return text, nil
}
