package export

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/jonathan/cvfiller/internal/resume"
)

//go:embed templates/resume.html
var templateFS embed.FS

var resumeTemplate = template.Must(template.ParseFS(templateFS, "templates/resume.html"))

type htmlSection struct {
	Label string
	Body  string
}

type htmlData struct {
	Name     string
	Contact  string
	Sections []htmlSection
}

// HTML renders the record as a standalone printable HTML document. Name,
// email and phone form the header; the remaining non-empty fields become
// labeled sections in canonical order.
func HTML(rec resume.Record) ([]byte, error) {
	data := htmlData{Name: strings.TrimSpace(rec.Name)}

	var contact []string
	for _, part := range []string{rec.Email, rec.Phone} {
		if p := strings.TrimSpace(part); p != "" {
			contact = append(contact, p)
		}
	}
	data.Contact = strings.Join(contact, " · ")

	for _, field := range resume.Fields {
		switch field {
		case resume.FieldName, resume.FieldEmail, resume.FieldPhone:
			continue
		}
		body := strings.TrimSpace(rec.Get(field))
		if body == "" {
			continue
		}
		data.Sections = append(data.Sections, htmlSection{
			Label: resume.Labels[field],
			Body:  body,
		})
	}

	var buf bytes.Buffer
	if err := resumeTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render resume template: %w", err)
	}
	return buf.Bytes(), nil
}
