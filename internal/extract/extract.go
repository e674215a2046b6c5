// Package extract turns uploaded documents into plain text.
package extract

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Recognized MIME types.
const (
	MIMEText       = "text/plain"
	MIMEPDF        = "application/pdf"
	MIMEDOCX       = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMELegacyWord = "application/msword"
)

// Kind classifies an extraction failure.
type Kind int

const (
	KindUnsupported Kind = iota
	KindLegacyWord
	KindEmpty
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindUnsupported:
		return "unsupported"
	case KindLegacyWord:
		return "legacy-word"
	case KindEmpty:
		return "empty"
	default:
		return "parse"
	}
}

// Error is an extraction failure with a user-facing message.
type Error struct {
	Kind     Kind
	MIMEType string
	Err      error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindUnsupported:
		return fmt.Sprintf("Unsupported file type: %s. Please upload a PDF, DOCX or TXT file.", e.MIMEType)
	case KindLegacyWord:
		return "Legacy .doc files are not supported. Please convert the document to DOCX or PDF."
	case KindEmpty:
		return "No text could be extracted from the file. It may be empty or contain only images."
	default:
		return fmt.Sprintf("Failed to read the file: %v", e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, k Kind) bool {
	var ee *Error
	return errors.As(err, &ee) && ee.Kind == k
}

// Detect returns the MIME type of data without parameters. Only content
// that sniffs as exactly text/plain, or any text named *.txt, counts as
// plain text; HTML, CSV, JSON, Markdown and source files keep their own
// type so Extract rejects them.
func Detect(data []byte, fileName string) string {
	m := mimetype.Detect(data)
	for _, known := range []string{MIMEPDF, MIMEDOCX, MIMELegacyWord} {
		if m.Is(known) {
			return known
		}
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if m.Is("application/x-ole-storage") && ext == ".doc" {
		return MIMELegacyWord
	}

	if isText(m) {
		switch {
		case ext == ".txt" || ext == ".text":
			return MIMEText
		case !m.Is(MIMEText):
			return baseType(m.String())
		case ext == "":
			return MIMEText
		}
		// Plain-looking content under another extension, e.g. notes.md.
		if byExt := typeByExtension(ext); byExt != "" {
			return byExt
		}
		return "text/x-" + strings.TrimPrefix(ext, ".")
	}

	if m.Is("application/octet-stream") {
		if byExt := typeByExtension(ext); byExt != "" {
			return byExt
		}
	}
	return baseType(m.String())
}

// isText reports whether m is text/plain or one of its children.
func isText(m *mimetype.MIME) bool {
	for p := m; p != nil; p = p.Parent() {
		if p.Is(MIMEText) {
			return true
		}
	}
	return false
}

func typeByExtension(ext string) string {
	if ext == "" {
		return ""
	}
	return baseType(mime.TypeByExtension(ext))
}

func baseType(s string) string {
	mt, _, err := mime.ParseMediaType(s)
	if err != nil {
		return ""
	}
	return mt
}

// Extract dispatches on the declared MIME type. Unsupported types fail
// before any parsing is attempted. Whitespace-only output is reported as
// KindEmpty.
func Extract(data []byte, mimeType string) (string, error) {
	mt := mimeType
	if parsed, _, err := mime.ParseMediaType(mimeType); err == nil {
		mt = parsed
	}

	var (
		text string
		err  error
	)
	switch mt {
	case MIMEText:
		text, err = extractText(data)
	case MIMEPDF:
		text, err = extractPDF(data)
	case MIMEDOCX:
		text, err = extractDOCX(data)
	case MIMELegacyWord:
		return "", &Error{Kind: KindLegacyWord, MIMEType: mt}
	default:
		return "", &Error{Kind: KindUnsupported, MIMEType: mimeType}
	}
	if err != nil {
		return "", &Error{Kind: KindParse, MIMEType: mt, Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", &Error{Kind: KindEmpty, MIMEType: mt}
	}
	return text, nil
}

// File is an extracted document.
type File struct {
	Name     string
	MIMEType string
	Text     string
}

// ReadFile reads path, detects its type and extracts its text.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	name := filepath.Base(path)
	mt := Detect(data, name)
	text, err := Extract(data, mt)
	if err != nil {
		return nil, err
	}
	return &File{Name: name, MIMEType: mt, Text: text}, nil
}
