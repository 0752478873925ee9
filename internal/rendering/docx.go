package rendering

import (
	"bytes"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/jonathan/cv-builder/internal/types"
)

// Font sizes are half-points.
const (
	docxNameSize    = "40"
	docxHeadingSize = "28"
	docxTitleSize   = "24"
	docxMetaColor   = "666666"
)

// RenderDOCX builds an Office Open XML document from the same layout as the HTML export.
func RenderDOCX(cv *types.CVData) ([]byte, error) {
	d := NewDocument(cv)
	w := docx.New().WithDefaultTheme()

	p := w.AddParagraph()
	p.AddText(d.Title()).Bold().Size(docxNameSize)
	if d.Headline != "" {
		w.AddParagraph().AddText(d.Headline).Size(docxTitleSize)
	}
	if line := d.ContactLine(" | "); line != "" {
		w.AddParagraph().AddText(line).Color(docxMetaColor)
	}
	if d.Summary != "" {
		docxHeading(w, "Summary")
		docxText(w, d.Summary)
	}

	if len(d.Companies) > 0 {
		docxHeading(w, "Experience")
		for _, c := range d.Companies {
			title := c.Company
			if c.Location != "" {
				title += ", " + c.Location
			}
			w.AddParagraph().AddText(title).Bold().Size(docxTitleSize)
			for _, r := range c.Roles {
				rp := w.AddParagraph()
				rp.AddText(r.Role).Bold()
				if dates := r.Dates(" - "); dates != "" {
					rp.AddText("  " + dates).Color(docxMetaColor)
				}
				for _, desc := range r.Descriptions {
					docxText(w, desc)
				}
				for _, a := range r.Achievements {
					w.AddParagraph().AddText("• " + a)
				}
			}
		}
	}

	if len(d.Education) > 0 {
		docxHeading(w, "Education")
		for _, e := range d.Education {
			w.AddParagraph().AddText(joinNonEmpty(" - ", e.Course, e.FieldOfStudy)).Bold()
			meta := joinNonEmpty(", ", e.Institution, yearRange(e.StartYear, e.EndYear))
			if e.Grade != "" {
				meta = joinNonEmpty(", ", meta, "Grade: "+e.Grade)
			}
			w.AddParagraph().AddText(meta).Color(docxMetaColor)
			if e.Description != "" {
				docxText(w, e.Description)
			}
		}
	}

	if len(d.Skills) > 0 {
		docxHeading(w, "Skills")
		for _, g := range d.Skills {
			w.AddParagraph().AddText(g.Category + ": " + g.Names())
		}
	}

	if len(d.Projects) > 0 {
		docxHeading(w, "Projects")
		for _, pr := range d.Projects {
			w.AddParagraph().AddText(pr.Name).Bold()
			if pr.Description != "" {
				docxText(w, pr.Description)
			}
			if meta := joinNonEmpty(" | ", strings.Join(pr.TechStack, ", "), pr.URL); meta != "" {
				w.AddParagraph().AddText(meta).Color(docxMetaColor)
			}
		}
	}

	if len(d.Certs) > 0 {
		docxHeading(w, "Certifications")
		for _, c := range d.Certs {
			w.AddParagraph().AddText(joinNonEmpty(", ", c.Name, c.Issuer, c.IssueDate))
		}
	}

	if len(d.Languages) > 0 {
		docxHeading(w, "Languages")
		for _, l := range d.Languages {
			w.AddParagraph().AddText(joinNonEmpty(": ", l.Name, l.Proficiency))
		}
	}

	if len(d.Refs) > 0 {
		docxHeading(w, "References")
		for _, r := range d.Refs {
			w.AddParagraph().AddText(r.Name).Bold()
			if meta := joinNonEmpty(", ", r.Position, r.Company, r.Relationship); meta != "" {
				w.AddParagraph().AddText(meta)
			}
			if contact := joinNonEmpty(" | ", r.Email, r.Phone); contact != "" {
				w.AddParagraph().AddText(contact).Color(docxMetaColor)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, &RenderError{Message: "failed to write DOCX", Cause: err}
	}
	return buf.Bytes(), nil
}

func docxHeading(w *docx.Docx, text string) {
	w.AddParagraph().AddText(strings.ToUpper(text)).Bold().Size(docxHeadingSize)
}

// docxText writes free text one paragraph per blank-line separated block.
func docxText(w *docx.Docx, text string) {
	for _, block := range strings.Split(strings.TrimSpace(text), "\n\n") {
		if block = strings.TrimSpace(block); block != "" {
			w.AddParagraph().AddText(strings.Join(strings.Fields(block), " "))
		}
	}
}
