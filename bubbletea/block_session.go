package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/seri"
	"github.com/fwojciec/seri/terminal"
)

var _ Block = (*SessionBlock)(nil)

// SessionBlock renders a session summary. Sessions with an abstract can be
// expanded to show it.
type SessionBlock struct {
	session   seri.Session
	collapsed bool
	focused   bool
	theme     seri.Theme
	styles    Styles
}

// NewSessionBlock creates a SessionBlock that starts collapsed.
func NewSessionBlock(session seri.Session, theme seri.Theme, styles Styles) *SessionBlock {
	return &SessionBlock{session: session, collapsed: true, theme: theme, styles: styles}
}

// Collapsible reports whether the block has an abstract to show.
func (b *SessionBlock) Collapsible() bool {
	return b.session.Abstract != nil && *b.session.Abstract != ""
}

// Collapsed reports whether the abstract is hidden.
func (b *SessionBlock) Collapsed() bool { return b.collapsed }

func (b *SessionBlock) Update(msg tea.Msg) (Block, tea.Cmd) {
	switch msg := msg.(type) {
	case ToggleMsg:
		b.collapsed = !b.collapsed
	case ExpandMsg:
		b.collapsed = !msg.Expanded
	case FocusMsg:
		b.focused = msg.Focused
	}
	return b, nil
}

func (b *SessionBlock) View(width int) string {
	indicator := " "
	if b.Collapsible() {
		indicator = "▶"
		if !b.collapsed {
			indicator = "▼"
		}
	}
	if b.focused {
		indicator = b.styles.Accent.Render(indicator)
	}
	content := indicator + " " + terminal.Summary(b.session, b.theme)
	if !b.collapsed && b.Collapsible() {
		content += "\n" + terminal.Abstract(*b.session.Abstract, width, b.theme)
	}
	return lipgloss.NewStyle().Width(width).Render(content)
}
