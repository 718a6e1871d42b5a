package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/controller"
)

// NewProgram builds the full-screen program and forwards busy sequence
// progress from the session into it
func NewProgram(ctx context.Context, session *controller.Session, opts Options) *tea.Program {
	p := tea.NewProgram(NewModel(ctx, session, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	session.OnProgress(func(percent int) {
		p.Send(ProgressMsg{Percent: percent})
	})
	return p
}
