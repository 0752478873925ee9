package rendering

import (
	"github.com/charmbracelet/glamour"

	"github.com/jonathan/cv-builder/internal/types"
)

// DefaultWrapWidth is the terminal wrap width used when none is given.
const DefaultWrapWidth = 80

// TerminalOptions controls terminal rendering.
type TerminalOptions struct {
	Width int
	// Style is a glamour standard style name ("dark", "light", "notty", ...). Empty selects
	// one from the terminal background.
	Style string
}

// RenderTerminal renders the Markdown layout for a terminal with glamour.
func RenderTerminal(cv *types.CVData, opts TerminalOptions) (string, error) {
	return renderGlamour(RenderMarkdown(cv), opts)
}

// RenderTerminalMarkdown renders arbitrary Markdown, such as the insights block, the same way.
func RenderTerminalMarkdown(markdown string, opts TerminalOptions) (string, error) {
	return renderGlamour(markdown, opts)
}

func renderGlamour(markdown string, opts TerminalOptions) (string, error) {
	width := opts.Width
	if width <= 0 {
		width = DefaultWrapWidth
	}
	style := glamour.WithAutoStyle()
	if opts.Style != "" {
		style = glamour.WithStandardStyle(opts.Style)
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return "", &RenderError{Message: "failed to create terminal renderer", Cause: err}
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", &RenderError{Message: "failed to render terminal output", Cause: err}
	}
	return out, nil
}
