package bubbletea

// BlockSeparator exports blockSeparator for testing.
func BlockSeparator(prev, curr Block) string {
	return blockSeparator(prev, curr)
}

// RenderContent exports renderContent for testing.
func RenderContent(m Model) string {
	return m.renderContent()
}

// AllExpanded returns whether all collapsible blocks are in expanded state.
func AllExpanded(m Model) bool {
	return m.allExpanded
}

// BlockFocus returns the index of the focused block.
func BlockFocus(m Model) int {
	return m.blockFocus
}

// Blocks returns the blocks currently shown.
func Blocks(m Model) []Block {
	return m.blocks
}
