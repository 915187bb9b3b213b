// Package bubbletea provides a Bubble Tea TUI that previews a compiled
// schedule: one heading per day and one collapsible line per session.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/seri"
)

// LoadFunc produces the schedule to preview, typically by reading and
// checking a source file. It is called on start and on every reload.
type LoadFunc func(ctx context.Context) (seri.Schedule, error)

// Run creates and runs the Bubble Tea TUI program. It blocks until the program
// exits. The context is used for graceful shutdown: when cancelled, the
// program quits and any load in progress is cancelled.
func Run(ctx context.Context, m Model) error {
	m.ctx = ctx
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// LoadedMsg delivers the result of a LoadFunc call to the model.
type LoadedMsg struct {
	Schedule seri.Schedule
	Err      error
}
