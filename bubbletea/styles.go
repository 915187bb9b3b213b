package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/seri"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	Accent  lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Prompt  lipgloss.Style
	ErrorBg lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t seri.Theme) Styles {
	return Styles{
		Accent:  lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Muted:   lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Prompt:  lipgloss.NewStyle().Foreground(ansiColor(t.Kind)),
		ErrorBg: lipgloss.NewStyle().BorderLeft(true).BorderStyle(lipgloss.ThickBorder()).BorderForeground(ansiColor(t.Error)).PaddingLeft(1),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
