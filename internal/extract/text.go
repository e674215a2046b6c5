package extract

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// extractText decodes plain text, dropping a UTF-8 byte-order mark and
// replacing invalid sequences.
func extractText(data []byte) (string, error) {
	s := strings.TrimPrefix(string(data), "\ufeff")
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "\uFFFD")
		if strings.Count(s, "\uFFFD")*2 > utf8.RuneCountInString(s) {
			return "", errors.New("file is not UTF-8 text")
		}
	}
	return s, nil
}
