// Package export renders a canonical resume record into the formats the
// app can hand back to the user: plain text, JSON and a printable PDF.
package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/cvfiller/internal/resume"
)

// Text renders the record as labeled plain text. Fields appear in
// canonical order, empty fields are omitted, and entries are separated by
// a blank line.
func Text(rec resume.Record) string {
	var blocks []string
	for _, field := range resume.Fields {
		value := strings.TrimSpace(rec.Get(field))
		if value == "" {
			continue
		}
		blocks = append(blocks, fmt.Sprintf("%s: %s", resume.Labels[field], value))
	}
	return strings.Join(blocks, "\n\n")
}

// JSON renders the record as indented JSON keyed by the canonical field
// names.
func JSON(rec resume.Record) ([]byte, error) {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode resume: %w", err)
	}
	return data, nil
}
