// Package rendering renders a CV document into Markdown, HTML, terminal, PDF, Word, LaTeX and JSON output.
package rendering

import "fmt"

// TemplateError represents an error parsing or executing an output template
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a general rendering failure
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// ExportError wraps any failure while producing an export artifact.
// Callers surface it as a single generic notification.
type ExportError struct {
	Format Format
	Cause  error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export %s failed: %v", e.Format, e.Cause)
	}
	return fmt.Sprintf("export %s failed", e.Format)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}
