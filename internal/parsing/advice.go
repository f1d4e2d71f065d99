package parsing

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/cvfiller/internal/llm"
	"github.com/jonathan/cvfiller/internal/prompts"
	"github.com/jonathan/cvfiller/internal/schemas"
	"github.com/jonathan/cvfiller/internal/types"
)

// AnalyzeResume produces the advisory analysis for plain resume text.
// The score is clamped to the 0-100 range before return.
func AnalyzeResume(ctx context.Context, client llm.Client, resumeText string) (*types.Advice, error) {
	resumeText = strings.TrimSpace(resumeText)
	if resumeText == "" {
		return nil, &ParseError{Message: "resume text is empty"}
	}

	template := prompts.MustGet("advice.json", "analyze-resume")
	prompt := prompts.Format(template, map[string]string{
		"ResumeText": resumeText,
	})

	// Advice needs more reasoning than extraction.
	responseText, err := client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, &APICallError{
			Message: "failed to generate resume advice",
			Cause:   err,
		}
	}

	responseText = llm.CleanJSONBlock(responseText)

	if err := schemas.ValidateAdvice([]byte(responseText)); err != nil {
		return nil, &ParseError{
			Message: "model response does not match the advice schema",
			Cause:   err,
		}
	}

	var advice types.Advice
	if err := json.Unmarshal([]byte(responseText), &advice); err != nil {
		return nil, &ParseError{
			Message: "failed to decode advice JSON",
			Cause:   err,
		}
	}
	advice.Clamp()

	return &advice, nil
}
