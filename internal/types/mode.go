package types

import "fmt"

// BuilderMode is how the user chose to fill in the CV.
type BuilderMode string

const (
	// ModeManual walks through the step forms directly.
	ModeManual BuilderMode = "manual"
	// ModeAIInterview leads each step with an interview question.
	ModeAIInterview BuilderMode = "ai-interview"
)

// ParseBuilderMode validates a stored or user-supplied mode string.
func ParseBuilderMode(s string) (BuilderMode, error) {
	switch BuilderMode(s) {
	case ModeManual, ModeAIInterview:
		return BuilderMode(s), nil
	}
	return "", fmt.Errorf("unknown builder mode: %q", s)
}
