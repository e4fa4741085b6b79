// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/apply-assistant/internal/fetch"
	"github.com/jonathan/apply-assistant/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// previewLines is the number of description lines shown in previews
	previewLines = 6
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
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintAssignments outputs which control each role was assigned to.
func (p *Printer) PrintAssignments(a types.RoleAssignment, fields int) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Controls scanned: %d\n", fields))
	sb.WriteString(fmt.Sprintf("Roles assigned:   %d/%d\n", a.Len(), len(types.RolePriority)))

	if a.Len() > 0 {
		sb.WriteString("\n")
		for _, role := range a.Roles() {
			d, _ := a.Get(role)
			sb.WriteString(fmt.Sprintf("  • %-12s %s\n", role, d.ControlRef))
		}
	}

	p.printBox("FIELD ASSIGNMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFills outputs the value chosen for each filled control.
func (p *Printer) PrintFills(fills []types.Fill) {
	if len(fills) == 0 {
		p.printBox("AUTO-FILL", "No fields filled")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Fields filled: %d\n\n", len(fills)))
	for _, f := range fills {
		sb.WriteString(fmt.Sprintf("  • %-12s %s\n", f.Role, truncate(f.Value, 40)))
	}
	p.printBox("AUTO-FILL", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExtraction outputs the extracted description and the rule that produced it.
func (p *Printer) PrintExtraction(result types.ExtractionResult) {
	if result.Empty() {
		p.printBox("JOB DESCRIPTION", "No description found")
		return
	}

	var sb strings.Builder
	switch {
	case result.Family != "" && result.SourceSelector != "":
		sb.WriteString(fmt.Sprintf("Source:   %s (%s)\n", result.Family, result.SourceSelector))
	case result.Family != "":
		sb.WriteString(fmt.Sprintf("Source:   %s\n", result.Family))
	default:
		sb.WriteString("Source:   largest text block\n")
	}
	sb.WriteString(fmt.Sprintf("Length:   %d chars\n\n", len([]rune(result.Text))))
	sb.WriteString(preview(result.Text))

	p.printBox("JOB DESCRIPTION", sb.String())
}

func preview(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) == 1 {
		// A single cleaned line is wrapped into box-sized chunks.
		lines = wrap(text, boxWidth-4)
	}
	if len(lines) <= previewLines {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines[:previewLines], "\n") + fmt.Sprintf("\n... %d more lines", len(lines)-previewLines)
}

func wrap(text string, width int) []string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && len([]rune(line.String()))+1+len([]rune(word)) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteString(" ")
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

// PrintPosting outputs a loaded job posting.
func (p *Printer) PrintPosting(posting *fetch.Posting) {
	if posting == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("URL:      %s\n", posting.URL))
	sb.WriteString(fmt.Sprintf("Platform: %s\n", posting.Platform))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", posting.JobTitle))
	if posting.Rendered {
		sb.WriteString("Rendered: headless browser\n")
	}

	p.printBox("JOB POSTING", strings.TrimSuffix(sb.String(), "\n"))
	p.PrintExtraction(posting.Description)
}

// PrintSuggestions outputs the suggestions generated for a target field.
func (p *Printer) PrintSuggestions(target types.TargetField, suggestions []types.Suggestion) {
	title := fmt.Sprintf("SUGGESTIONS: %s", target)
	if len(suggestions) == 0 {
		p.printBox(title, "No suggestions available")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generated %d suggestions:\n\n", len(suggestions)))
	for i, s := range suggestions {
		sb.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, s.Category, s.Label))
		first := strings.SplitN(s.Text, "\n", 2)[0]
		sb.WriteString(fmt.Sprintf("   %s\n", first))
		if i < len(suggestions)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProfileSummary outputs a short summary of the stored profile.
func (p *Printer) PrintProfileSummary(profile *types.Profile, completeness, resumeScore int) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	name := profile.PersonalInfo.FullName()
	if name == "" {
		name = "(no name)"
	}
	sb.WriteString(fmt.Sprintf("Name:         %s\n", name))
	sb.WriteString(fmt.Sprintf("Completeness: %d%%\n", completeness))
	sb.WriteString(fmt.Sprintf("Resume score: %d/100\n\n", resumeScore))
	sb.WriteString(fmt.Sprintf("Experience:   %d\n", len(profile.WorkExperience)))
	sb.WriteString(fmt.Sprintf("Education:    %d\n", len(profile.Education)))
	sb.WriteString(fmt.Sprintf("Projects:     %d\n", len(profile.Projects)))
	sb.WriteString(fmt.Sprintf("Skills:       %d\n", len(profile.Skills)))
	sb.WriteString(fmt.Sprintf("Applications: %d", len(profile.ApplicationHistory)))

	if n := len(profile.ApplicationHistory); n > 0 {
		sb.WriteString("\n\nRecent applications:\n")
		count := min(n, maxItemsToShow)
		for i := 0; i < count; i++ {
			rec := profile.ApplicationHistory[i]
			title := rec.JobTitle
			if title == "" {
				title = rec.URL
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", title))
		}
		if n > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", n-maxItemsToShow))
		}
	}

	p.printBox("PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}
