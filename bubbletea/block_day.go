package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/seri"
	"github.com/fwojciec/seri/terminal"
)

var _ Block = (*DayBlock)(nil)

// DayBlock renders a day heading.
type DayBlock struct {
	day   seri.Day
	index int
	theme seri.Theme
}

// NewDayBlock creates a DayBlock for the day at index (0-based).
func NewDayBlock(day seri.Day, index int, theme seri.Theme) *DayBlock {
	return &DayBlock{day: day, index: index, theme: theme}
}

func (b *DayBlock) Update(msg tea.Msg) (Block, tea.Cmd) {
	return b, nil
}

func (b *DayBlock) View(width int) string {
	return terminal.Heading(b.day, b.index, b.theme)
}
