package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jonathan/cv-builder/internal/wizard"
)

// Run drives session in the alternate screen until the user quits or ctx is done.
// The caller owns the session and closes it afterwards.
func Run(ctx context.Context, session *wizard.Session, opts Options) error {
	m := New(ctx, session, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("failed to run wizard: %w", err)
	}
	return nil
}
