package bubbletea

import tea "github.com/charmbracelet/bubbletea"

// Block is a renderable element of the preview.
// Unlike tea.Model, View takes a width parameter so the root model
// controls layout and blocks are testable in isolation.
type Block interface {
	Update(tea.Msg) (Block, tea.Cmd)
	View(width int) string
}

// ToggleMsg tells a collapsible block to toggle its collapsed state.
// Sent by the root model when the user presses the toggle key on a focused block.
type ToggleMsg struct{}

// ExpandMsg sets the collapsed state of a collapsible block explicitly.
type ExpandMsg struct {
	Expanded bool
}

// FocusMsg tells a block whether it holds the focus.
type FocusMsg struct {
	Focused bool
}

// blockSeparator returns the text placed between two adjacent blocks. Day
// headings after the first get an empty line above them.
func blockSeparator(prev, curr Block) string {
	if prev == nil {
		return ""
	}
	if _, ok := curr.(*DayBlock); ok {
		return "\n\n"
	}
	return "\n"
}
