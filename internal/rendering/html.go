package rendering

import (
	"bytes"
	"embed"
	"html/template"
	"strings"
	"sync"

	"github.com/jonathan/cv-builder/internal/types"
	"github.com/yuin/goldmark"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	htmlOnce sync.Once
	htmlTmpl *template.Template
	htmlErr  error

	// Raw HTML in free text is dropped by goldmark's default (safe) renderer.
	md = goldmark.New()
)

// HTMLOptions controls HTML rendering.
type HTMLOptions struct {
	// Print adds print media rules and opens the print dialog on load.
	Print bool
}

type htmlData struct {
	Doc   *Document
	Print bool
}

// RenderHTML renders a standalone HTML document. Free-text fields are rendered as Markdown.
func RenderHTML(cv *types.CVData, opts HTMLOptions) (string, error) {
	tmpl, err := htmlTemplate()
	if err != nil {
		return "", err
	}
	var buf strings.Builder
	if err := tmpl.ExecuteTemplate(&buf, "cv", htmlData{Doc: NewDocument(cv), Print: opts.Print}); err != nil {
		return "", &TemplateError{Message: "failed to execute HTML template", Cause: err}
	}
	return buf.String(), nil
}

// renderHTMLBody renders only the CV markup, for embedding in another envelope.
func renderHTMLBody(cv *types.CVData) (string, error) {
	tmpl, err := htmlTemplate()
	if err != nil {
		return "", err
	}
	var buf strings.Builder
	if err := tmpl.ExecuteTemplate(&buf, "body", htmlData{Doc: NewDocument(cv)}); err != nil {
		return "", &TemplateError{Message: "failed to execute HTML template", Cause: err}
	}
	return buf.String(), nil
}

func htmlTemplate() (*template.Template, error) {
	htmlOnce.Do(func() {
		htmlTmpl, htmlErr = template.New("cv.html.tmpl").Funcs(template.FuncMap{
			"markdown":     markdownToHTML,
			"join":         strings.Join,
			"joinNonEmpty": joinNonEmpty,
			"years":        yearRange,
		}).ParseFS(templateFS, "templates/cv.html.tmpl")
		if htmlErr != nil {
			htmlErr = &TemplateError{Message: "failed to parse HTML template", Cause: htmlErr}
		}
	})
	return htmlTmpl, htmlErr
}

// markdownToHTML converts a free-text field. On conversion failure the text is escaped as-is.
func markdownToHTML(text string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return template.HTML("<p>" + template.HTMLEscapeString(text) + "</p>")
	}
	return template.HTML(buf.String())
}
