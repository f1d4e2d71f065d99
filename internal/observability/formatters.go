// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/cvfiller/internal/resume"
	"github.com/jonathan/cvfiller/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRecord outputs a human-readable summary of a reconciled record.
func (p *Printer) PrintRecord(sourceFile string, rec resume.Record) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Source:   %s\n", sourceFile))
	sb.WriteString(fmt.Sprintf("Name:     %s\n", valueOrDash(rec.Name)))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", valueOrDash(rec.Email)))
	sb.WriteString(fmt.Sprintf("Phone:    %s\n", valueOrDash(rec.Phone)))
	sb.WriteString("\n")

	filled := 0
	sections := []string{resume.FieldEducation, resume.FieldExperience, resume.FieldCampusActivity, resume.FieldSkills}
	for _, field := range sections {
		label := resume.Labels[field]
		value := rec.Get(field)
		if value == "" {
			sb.WriteString(fmt.Sprintf("%-20s (empty)\n", label+":"))
			continue
		}
		filled++
		sb.WriteString(fmt.Sprintf("%-20s %d line(s)\n", label+":", strings.Count(value, "\n")+1))
	}
	sb.WriteString(fmt.Sprintf("\nFilled sections: %d of %d", filled, len(sections)))

	p.printBox("RECONCILED RESUME", sb.String())
}

// PrintAdvice outputs a human-readable summary of an advisory analysis.
func (p *Printer) PrintAdvice(advice *types.Advice) {
	if advice == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Score:    %d / 100\n", advice.Score))
	if advice.Summary != "" {
		summary := advice.Summary
		if len(summary) > 50 {
			summary = summary[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("Summary:  %s\n", summary))
	}
	sb.WriteString("\n")

	if len(advice.Strengths) > 0 {
		sb.WriteString("Strengths:\n")
		count := min(len(advice.Strengths), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", advice.Strengths[i]))
		}
		if len(advice.Strengths) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(advice.Strengths)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(advice.Improvements) > 0 {
		sb.WriteString("Improvements:\n")
		count := min(len(advice.Improvements), maxItemsToShow)
		for i := 0; i < count; i++ {
			imp := advice.Improvements[i]
			issue := imp.Issue
			if len(issue) > 40 {
				issue = issue[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • [%s] %s\n", imp.Section, issue))
		}
		if len(advice.Improvements) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(advice.Improvements)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(advice.ActionItems) > 0 {
		sb.WriteString("Action items:\n")
		count := min(len(advice.ActionItems), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", advice.ActionItems[i]))
		}
		if len(advice.ActionItems) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(advice.ActionItems)-3))
		}
	}

	p.printBox("RESUME ADVICE", strings.TrimSuffix(sb.String(), "\n"))
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
