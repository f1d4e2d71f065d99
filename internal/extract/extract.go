// Package extract turns uploaded resume files into plain text suitable
// for model extraction. Binary document formats go through docconv, HTML
// is stripped with goquery, and plain text passes through with the same
// cleanup applied.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
	"github.com/PuerkitoBio/goquery"
)

// SupportedExtensions lists the upload extensions the extractor accepts,
// lowercased with the leading dot.
var SupportedExtensions = []string{".pdf", ".doc", ".docx", ".txt", ".html", ".htm"}

// Supported reports whether the filename carries an extractable extension.
func Supported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// Error represents a failure to extract text from an upload.
type Error struct {
	Filename string
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extract error for %s: %s: %v", e.Filename, e.Message, e.Cause)
	}
	return fmt.Sprintf("extract error for %s: %s", e.Filename, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// File extracts the text of the file at path, dispatching on its
// extension.
func File(path string) (string, error) {
	filename := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".pdf", ".doc", ".docx":
		res, err := docconv.ConvertPath(path)
		if err != nil {
			return "", &Error{Filename: filename, Message: "failed to convert document", Cause: err}
		}
		return CleanText(res.Body), nil
	case ".html", ".htm":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", &Error{Filename: filename, Message: "failed to read file", Cause: err}
		}
		text, err := HTMLText(string(data))
		if err != nil {
			return "", &Error{Filename: filename, Message: "failed to parse HTML", Cause: err}
		}
		return text, nil
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", &Error{Filename: filename, Message: "failed to read file", Cause: err}
		}
		return CleanText(string(data)), nil
	default:
		return "", &Error{Filename: filename, Message: fmt.Sprintf("unsupported file type %q", ext)}
	}
}

// HTMLText strips markup from an HTML document, dropping navigation and
// script noise, and returns the cleaned body text.
func HTMLText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript").Remove()

	return CleanText(doc.Find("body").Text()), nil
}

// CleanText normalizes extracted text: NUL bytes are stripped, lines are
// trimmed, and blank lines are dropped.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\x00", "")
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
