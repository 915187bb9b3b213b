package bubbletea

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

var _ Block = (*ErrorBlock)(nil)

// ErrorBlock renders a load failure. The text comes from the model's error
// formatter, which may produce a multi-line source diagnostic.
type ErrorBlock struct {
	text   string
	styles Styles
}

// NewErrorBlock creates an ErrorBlock.
func NewErrorBlock(text string, styles Styles) *ErrorBlock {
	return &ErrorBlock{text: text, styles: styles}
}

func (b *ErrorBlock) Update(msg tea.Msg) (Block, tea.Cmd) {
	return b, nil
}

func (b *ErrorBlock) View(width int) string {
	return b.styles.ErrorBg.Width(max(width-2, 1)).Render(b.text)
}

func defaultErrorText(err error) string {
	return fmt.Sprintf("Error: %v", err)
}
