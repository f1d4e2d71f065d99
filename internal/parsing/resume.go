// Package parsing turns extracted resume text into the structured
// artifacts the rest of the app consumes: the parsed resume payload and
// the advisory analysis. It owns prompt construction, model invocation
// and response validation.
package parsing

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/cvfiller/internal/llm"
	"github.com/jonathan/cvfiller/internal/prompts"
	"github.com/jonathan/cvfiller/internal/schemas"
)

// ParseResume extracts a structured resume payload from plain resume
// text. The returned JSON is schema-validated but otherwise untouched;
// the reconciler downstream is responsible for interpreting it.
func ParseResume(ctx context.Context, client llm.Client, resumeText string) (json.RawMessage, error) {
	resumeText = strings.TrimSpace(resumeText)
	if resumeText == "" {
		return nil, &ParseError{Message: "resume text is empty"}
	}

	prompt := buildResumePrompt(resumeText)

	responseText, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{
			Message: "failed to generate parsed resume",
			Cause:   err,
		}
	}

	// Fences should already be stripped; guard against fakes and
	// misbehaving models anyway.
	responseText = llm.CleanJSONBlock(responseText)

	if !json.Valid([]byte(responseText)) {
		return nil, &ParseError{Message: "model response is not valid JSON"}
	}

	if err := schemas.ValidateParsedResume([]byte(responseText)); err != nil {
		return nil, &ParseError{
			Message: "model response does not match the resume schema",
			Cause:   err,
		}
	}

	return json.RawMessage(responseText), nil
}

func buildResumePrompt(resumeText string) string {
	template := prompts.MustGet("parsing.json", "extract-resume")
	return prompts.Format(template, map[string]string{
		"ResumeText": resumeText,
	})
}
