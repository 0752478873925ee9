package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

var markdownReplacer = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `\<`,
	`>`, `\>`,
	`#`, `\#`,
)

// EscapeMarkdown escapes inline Markdown control characters.
func EscapeMarkdown(text string) string {
	return markdownReplacer.Replace(text)
}

// RenderMarkdown lays the CV out as Markdown. Terminal preview and print are derived from it.
func RenderMarkdown(cv *types.CVData) string {
	doc := NewDocument(cv)
	var b mdBuilder

	b.heading(1, EscapeMarkdown(doc.Title()))
	if doc.Headline != "" {
		b.line("**" + EscapeMarkdown(doc.Headline) + "**")
		b.blank()
	}
	if line := doc.ContactLine(" | "); line != "" {
		b.line(EscapeMarkdown(line))
		b.blank()
	}
	if doc.Summary != "" {
		b.heading(2, "Summary")
		b.paragraph(doc.Summary)
	}

	if len(doc.Companies) > 0 {
		b.heading(2, "Experience")
		for _, c := range doc.Companies {
			title := EscapeMarkdown(c.Company)
			if c.Location != "" {
				title += ", " + EscapeMarkdown(c.Location)
			}
			b.heading(3, title)
			for _, r := range c.Roles {
				role := "**" + EscapeMarkdown(r.Role) + "**"
				if dates := r.Dates(" - "); dates != "" {
					role += " *" + EscapeMarkdown(dates) + "*"
				}
				b.line(role)
				b.blank()
				for _, d := range r.Descriptions {
					b.paragraph(d)
				}
				b.bullets(r.Achievements)
			}
		}
	}

	if len(doc.Education) > 0 {
		b.heading(2, "Education")
		for _, e := range doc.Education {
			b.line("**" + EscapeMarkdown(joinNonEmpty(" - ", e.Course, e.FieldOfStudy)) + "**")
			b.blank()
			meta := joinNonEmpty(", ", e.Institution, yearRange(e.StartYear, e.EndYear))
			if e.Grade != "" {
				meta = joinNonEmpty(", ", meta, "Grade: "+e.Grade)
			}
			b.line(EscapeMarkdown(meta))
			b.blank()
			if e.Description != "" {
				b.paragraph(e.Description)
			}
		}
	}

	if len(doc.Skills) > 0 {
		b.heading(2, "Skills")
		items := make([]string, len(doc.Skills))
		for i, g := range doc.Skills {
			items[i] = "**" + EscapeMarkdown(g.Category) + ":** " + EscapeMarkdown(g.Names())
		}
		b.rawBullets(items)
	}

	if len(doc.Projects) > 0 {
		b.heading(2, "Projects")
		for _, p := range doc.Projects {
			b.heading(3, EscapeMarkdown(p.Name))
			if p.Description != "" {
				b.paragraph(p.Description)
			}
			var meta []string
			if len(p.TechStack) > 0 {
				meta = append(meta, "*Tech:* "+EscapeMarkdown(strings.Join(p.TechStack, ", ")))
			}
			if p.URL != "" {
				meta = append(meta, "<"+p.URL+">")
			}
			if len(meta) > 0 {
				b.line(strings.Join(meta, " | "))
				b.blank()
			}
		}
	}

	if len(doc.Certs) > 0 {
		b.heading(2, "Certifications")
		items := make([]string, len(doc.Certs))
		for i, c := range doc.Certs {
			item := "**" + EscapeMarkdown(c.Name) + "**"
			if rest := joinNonEmpty(", ", c.Issuer, c.IssueDate); rest != "" {
				item += ", " + EscapeMarkdown(rest)
			}
			if c.CredentialID != "" {
				item += " (ID " + EscapeMarkdown(c.CredentialID) + ")"
			}
			items[i] = item
		}
		b.rawBullets(items)
	}

	if len(doc.Languages) > 0 {
		b.heading(2, "Languages")
		items := make([]string, len(doc.Languages))
		for i, l := range doc.Languages {
			items[i] = EscapeMarkdown(joinNonEmpty(": ", l.Name, l.Proficiency))
		}
		b.rawBullets(items)
	}

	if len(doc.Refs) > 0 {
		b.heading(2, "References")
		for _, r := range doc.Refs {
			b.line("**" + EscapeMarkdown(r.Name) + "**")
			b.blank()
			if meta := joinNonEmpty(", ", r.Position, r.Company, r.Relationship); meta != "" {
				b.line(EscapeMarkdown(meta))
				b.blank()
			}
			if contact := joinNonEmpty(" | ", r.Email, r.Phone); contact != "" {
				b.line(EscapeMarkdown(contact))
				b.blank()
			}
		}
	}

	return b.String()
}

// RenderInsightsMarkdown formats AI insights for the review screen. Empty when absent.
func RenderInsightsMarkdown(cv *types.CVData) string {
	insights, ok := cv.AIInsights.Get()
	if !ok {
		return ""
	}
	var b mdBuilder
	b.heading(2, "AI Insights")
	b.line(fmt.Sprintf("**ATS score:** %d/100", insights.ATSScore))
	b.blank()
	if len(insights.Strengths) > 0 {
		b.heading(3, "Strengths")
		b.bullets(insights.Strengths)
	}
	if len(insights.Improvements) > 0 {
		b.heading(3, "Improvements")
		b.bullets(insights.Improvements)
	}
	if len(insights.Keywords) > 0 {
		b.heading(3, "Keywords")
		b.line(EscapeMarkdown(strings.Join(insights.Keywords, ", ")))
		b.blank()
	}
	return b.String()
}

type mdBuilder struct {
	strings.Builder
}

func (b *mdBuilder) heading(level int, text string) {
	b.WriteString(strings.Repeat("#", level) + " " + text + "\n\n")
}

func (b *mdBuilder) line(text string) {
	b.WriteString(text + "\n")
}

func (b *mdBuilder) blank() {
	b.WriteString("\n")
}

// paragraph writes free text as-is so user Markdown survives.
func (b *mdBuilder) paragraph(text string) {
	b.WriteString(strings.TrimSpace(text) + "\n\n")
}

func (b *mdBuilder) bullets(items []string) {
	escaped := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			escaped = append(escaped, EscapeMarkdown(it))
		}
	}
	b.rawBullets(escaped)
}

func (b *mdBuilder) rawBullets(items []string) {
	if len(items) == 0 {
		return
	}
	for _, it := range items {
		b.WriteString("- " + it + "\n")
	}
	b.blank()
}

func joinNonEmpty(sep string, values ...string) string {
	return strings.Join(nonEmpty(values...), sep)
}

func yearRange(start, end string) string {
	switch {
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return start + " - Present"
	default:
		return end
	}
}
