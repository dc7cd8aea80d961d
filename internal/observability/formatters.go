// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-builder/internal/profile"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/types"
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
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes, ending in "..." when cut.
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// writeList appends up to max items as "  • item" lines with an overflow note.
func writeList(sb *strings.Builder, items []string, max int) {
	count := min(len(items), max)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > max {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-max))
	}
}

// PrintProfile outputs a human-readable summary of a validated profile.
func (p *Printer) PrintProfile(rp *types.ResumeProfile) {
	if rp == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:      %s\n", rp.Contact.FullName))
	sb.WriteString(fmt.Sprintf("Target:    %s\n", strings.Join(rp.TargetRoles, ", ")))
	if rp.MOS != nil && rp.MOS.Code != "" {
		sb.WriteString(fmt.Sprintf("MOS:       %s (%s)\n", rp.MOS.Code, rp.MOS.Branch))
	}
	if c := rp.Contact.Clearance; c != "" && c != types.ClearanceNone {
		sb.WriteString(fmt.Sprintf("Clearance: %s\n", c))
	}
	sb.WriteString(fmt.Sprintf("Template:  %s\n", rp.Preferences.Template))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Positions: %d\n", len(rp.WorkHistory)))
	count := min(len(rp.WorkHistory), maxItemsToShow)
	for i := 0; i < count; i++ {
		w := rp.WorkHistory[i]
		sb.WriteString(fmt.Sprintf("  • %s, %s\n", w.Title, w.Organization))
		sb.WriteString(fmt.Sprintf("    %s (%d bullets)\n", w.DateRange(), len(w.DisplayBullets())))
	}
	if len(rp.WorkHistory) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(rp.WorkHistory)-maxItemsToShow))
	}

	sb.WriteString(fmt.Sprintf("Education: %d  Certifications: %d\n", len(rp.Education), len(rp.Certifications)))

	if skills := rp.MergedSkills(); len(skills) > 0 {
		sb.WriteString("\nSkills:\n")
		writeList(&sb, skills, maxItemsToShow)
	}

	p.printBox("RESUME PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMOSResults outputs MOS search results.
func (p *Printer) PrintMOSResults(query string, results []types.MOSEntry) {
	title := fmt.Sprintf("MOS SEARCH: %q", query)
	if len(results) == 0 {
		p.printBox(title, "No matching MOS codes found")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d matches:\n\n", len(results)))
	for i, e := range results {
		sb.WriteString(fmt.Sprintf("%s  %s\n", e.Code, e.Branch))
		if e.Title != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", e.Title))
		}
		if e.SOCCode != "" {
			sb.WriteString(fmt.Sprintf("    SOC %s %s\n", e.SOCCode, e.SOCTitle))
		}
		if len(e.CivilianSkills) > 0 {
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", strings.Join(e.CivilianSkills, ", ")))
		}
		if i < len(results)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidationErrors outputs field errors, or a success line when there are none.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidationErrors(errs profile.ValidationErrors) {
	if len(errs) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ PROFILE IS VALID")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d problems:\n\n", len(errs)))
	for i, e := range errs {
		sb.WriteString(fmt.Sprintf("⚠ %s [%s]\n", e.Field, e.Code))
		sb.WriteString(fmt.Sprintf("  %s\n", e.Message))
		if i < len(errs)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("VALIDATION ERRORS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGeneration outputs the outcome of one or more generations.
func (p *Printer) PrintGeneration(results []resume.BatchResult) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	sb.WriteString(fmt.Sprintf("Generated %d of %d documents\n\n", len(results)-failed, len(results)))

	for i, r := range results {
		if r.Err != nil {
			msg := r.Err.Error()
			var gf *resume.GenerationFailed
			if errors.As(r.Err, &gf) {
				msg = gf.UserMessage()
			}
			sb.WriteString(fmt.Sprintf("✗ %s\n  %s\n", r.ProfileName, msg))
		} else {
			sb.WriteString(fmt.Sprintf("✓ %s\n  %s\n", r.ProfileName, r.Path))
		}
		if i < len(results)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("GENERATION", strings.TrimSuffix(sb.String(), "\n"))
}
