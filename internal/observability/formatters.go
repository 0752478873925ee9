// Package observability provides formatted report output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/cv-builder/internal/enhance"
	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/types"
	"github.com/jonathan/cv-builder/internal/wizard"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted report output
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
	fmt.Fprintf(p.out, "│ %s │\n", fit(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", fit(line))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// fit pads or truncates s to the inner box width, counting runes.
func fit(s string) string {
	const width = boxWidth - 4
	r := []rune(s)
	if len(r) > width {
		return string(r[:width-3]) + "..."
	}
	return s + strings.Repeat(" ", width-len(r))
}

// writeList writes up to maxItemsToShow bullet items under a heading.
func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	for _, item := range items[:min(len(items), maxItemsToShow)] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > maxItemsToShow {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-maxItemsToShow)
	}
}

// PrintSectionSummary outputs the entry count of every section.
func (p *Printer) PrintSectionSummary(cv *types.CVData) {
	if cv == nil {
		return
	}
	var sb strings.Builder
	name := cv.Profile.FullName
	if name == "" {
		name = "(no name)"
	}
	fmt.Fprintf(&sb, "Name:            %s\n", name)
	rows := []struct {
		label string
		n     int
	}{
		{"Education", len(cv.Education)},
		{"Experience", len(cv.Experience)},
		{"Skills", len(cv.Skills)},
		{"Projects", len(cv.Projects)},
		{"Certifications", len(cv.Certifications)},
		{"Languages", len(cv.Languages)},
		{"References", len(cv.References)},
	}
	for _, r := range rows {
		fmt.Fprintf(&sb, "%-16s %d\n", r.label+":", r.n)
	}
	p.printBox("CV SUMMARY", sb.String())
}

// PrintGates outputs whether each wizard step would let the user advance.
// It returns the number of failing steps.
func (p *Printer) PrintGates(cv *types.CVData) int {
	if cv == nil {
		return 0
	}
	var sb strings.Builder
	failing := 0
	for _, step := range wizard.Steps {
		if step == wizard.StepReview {
			continue
		}
		if hint := wizard.GateHint(step, cv); hint != "" {
			failing++
			fmt.Fprintf(&sb, "✗ %s\n    %s\n", wizard.Title(step), hint)
			continue
		}
		fmt.Fprintf(&sb, "✓ %s\n", wizard.Title(step))
	}
	p.printBox("STEP CHECKS", sb.String())
	return failing
}

// PrintSchemaErrors outputs the field errors of a schema validation failure.
func (p *Printer) PrintSchemaErrors(ve *schemas.ValidationError) {
	if ve == nil || len(ve.Errors) == 0 {
		return
	}
	items := make([]string, len(ve.Errors))
	for i, fe := range ve.Errors {
		items[i] = fe.Field + ": " + fe.Message
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Total: %d error(s)\n", len(items))
	writeList(&sb, "Errors", items)
	p.printBox("SCHEMA ERRORS", sb.String())
}

// PrintEnhancement outputs the outcome of an accepted enhancement.
func (p *Printer) PrintEnhancement(res *enhance.Result) {
	if res == nil {
		return
	}
	var sb strings.Builder
	switch {
	case res.CertificationsPreserved == nil:
		sb.WriteString("Certifications:  not reported\n")
	case *res.CertificationsPreserved:
		sb.WriteString("Certifications:  preserved\n")
	default:
		sb.WriteString("Certifications:  NOT preserved\n")
	}
	if res.ReMinted > 0 {
		fmt.Fprintf(&sb, "Re-minted ids:   %d\n", res.ReMinted)
	}
	if res.CV != nil {
		fmt.Fprintf(&sb, "Experience:      %d entries\n", len(res.CV.Experience))
		fmt.Fprintf(&sb, "Skills:          %d entries\n", len(res.CV.Skills))
	}
	if len(res.Warnings) > 0 {
		sb.WriteString("\n")
		writeList(&sb, "Warnings", res.Warnings)
	}
	p.printBox("ENHANCEMENT", sb.String())

	if res.CV != nil {
		if insights, ok := res.CV.AIInsights.Get(); ok {
			p.PrintInsights(&insights)
		}
	}
}

// PrintInsights outputs the AI analysis block.
func (p *Printer) PrintInsights(in *types.AIInsights) {
	if in == nil {
		return
	}
	var sb strings.Builder
	if in.ATSScore > 0 {
		fmt.Fprintf(&sb, "ATS score: %d/100\n\n", in.ATSScore)
	}
	writeList(&sb, "Strengths", in.Strengths)
	writeList(&sb, "Improvements", in.Improvements)
	if len(in.Keywords) > 0 {
		fmt.Fprintf(&sb, "Keywords: %s\n", strings.Join(in.Keywords, ", "))
	}
	if sb.Len() == 0 {
		sb.WriteString("No insights returned.")
	}
	p.printBox("AI INSIGHTS", sb.String())
}

// PrintArtifacts outputs the files written by an export.
func (p *Printer) PrintArtifacts(paths []string) {
	if len(paths) == 0 {
		return
	}
	var sb strings.Builder
	for _, path := range paths {
		fmt.Fprintf(&sb, "• %s\n", path)
	}
	p.printBox("EXPORTED FILES", sb.String())
}
