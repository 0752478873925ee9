package rendering

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cv-builder/internal/types"
)

// Format is an export target.
type Format string

const (
	FormatPDF      Format = "pdf"
	FormatDoc      Format = "doc"
	FormatDOCX     Format = "docx"
	FormatPrint    Format = "print"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "md"
	FormatLaTeX    Format = "tex"
	FormatJSON     Format = "json"
)

// Formats lists every supported export format.
var Formats = []Format{FormatPDF, FormatDoc, FormatDOCX, FormatPrint, FormatHTML, FormatMarkdown, FormatLaTeX, FormatJSON}

var formatAliases = map[string]Format{
	"word":     FormatDoc,
	"markdown": FormatMarkdown,
	"latex":    FormatLaTeX,
}

// ParseFormat accepts a format name or common alias, case-insensitively.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if f, ok := formatAliases[s]; ok {
		return f, nil
	}
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Extension is the file extension written for the format.
func (f Format) Extension() string {
	if f == FormatPrint {
		return "html"
	}
	return string(f)
}

// MIMEType is the content type served for the format.
func (f Format) MIMEType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatDoc:
		return "application/msword"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case FormatPrint, FormatHTML:
		return "text/html; charset=utf-8"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatLaTeX:
		return "application/x-tex"
	case FormatJSON:
		return "application/json"
	}
	return "application/octet-stream"
}

// FileName returns "<Full_Name>_CV.<ext>", or "CV.<ext>" when no name is set.
func FileName(cv *types.CVData, f Format) string {
	var name string
	if cv != nil {
		name = fileSafe(cv.Profile.FullName)
	}
	if name == "" {
		return "CV." + f.Extension()
	}
	return name + "_CV." + f.Extension()
}

// fileSafe joins the words of s with underscores, dropping path and shell-hostile runes.
func fileSafe(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(`/\:*?"<>|`, r)
	})
	return strings.Join(words, "_")
}

// Artifact is one rendered export.
type Artifact struct {
	Format   Format
	FileName string
	MIMEType string
	Data     []byte
}

// Exporter renders artifacts. The zero value exports every format with defaults.
type Exporter struct {
	PDF           PDFRenderer
	LaTeXTemplate string
}

// Export renders a single format. Every failure is wrapped in *ExportError.
func (e *Exporter) Export(ctx context.Context, cv *types.CVData, f Format) (*Artifact, error) {
	data, err := e.render(ctx, cv, f)
	if err != nil {
		return nil, &ExportError{Format: f, Cause: err}
	}
	return &Artifact{Format: f, FileName: FileName(cv, f), MIMEType: f.MIMEType(), Data: data}, nil
}

// ExportAll renders formats concurrently. The first failure cancels the rest and is returned.
func (e *Exporter) ExportAll(ctx context.Context, cv *types.CVData, formats []Format) ([]*Artifact, error) {
	out := make([]*Artifact, len(formats))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range formats {
		g.Go(func() error {
			a, err := e.Export(gctx, cv, f)
			if err != nil {
				return err
			}
			out[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Exporter) render(ctx context.Context, cv *types.CVData, f Format) ([]byte, error) {
	switch f {
	case FormatPDF:
		return e.PDF.RenderPDF(ctx, cv)
	case FormatDoc:
		return RenderDoc(cv)
	case FormatDOCX:
		return RenderDOCX(cv)
	case FormatPrint, FormatHTML:
		html, err := RenderHTML(cv, HTMLOptions{Print: f == FormatPrint})
		return []byte(html), err
	case FormatMarkdown:
		return []byte(RenderMarkdown(cv)), nil
	case FormatLaTeX:
		tex, err := RenderLaTeX(cv, e.LaTeXTemplate)
		return []byte(tex), err
	case FormatJSON:
		return RenderJSON(cv)
	}
	return nil, fmt.Errorf("unknown export format %q", f)
}

// RenderJSON writes the document as indented JSON with stable empty sections.
func RenderJSON(cv *types.CVData) ([]byte, error) {
	c := cv.Clone()
	if c == nil {
		c = types.NewCVData()
	}
	c.Normalize()
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, &RenderError{Message: "failed to marshal JSON", Cause: err}
	}
	return append(data, '\n'), nil
}

// WriteArtifact writes a into dir and returns the file path.
func WriteArtifact(dir string, a *Artifact) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &ExportError{Format: a.Format, Cause: fmt.Errorf("failed to create export directory: %w", err)}
	}
	path := filepath.Join(dir, a.FileName)
	if err := os.WriteFile(path, a.Data, 0o644); err != nil {
		return "", &ExportError{Format: a.Format, Cause: fmt.Errorf("failed to write %s: %w", path, err)}
	}
	return path, nil
}
