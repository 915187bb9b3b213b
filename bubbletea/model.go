package bubbletea

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/seri"
)

var _ tea.Model = Model{}

// Model is the Bubble Tea model for the schedule preview.
type Model struct {
	// Input is the session filter. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable schedule area. Exported for test access.
	Viewport viewport.Model

	load      LoadFunc
	ctx       context.Context
	cancel    context.CancelFunc // cancels the in-flight reload, if any
	theme     seri.Theme
	styles    Styles
	formatErr func(error) string

	schedule   seri.Schedule
	blocks     []Block
	blockFocus int // index of focused collapsible block (-1 = none)

	allExpanded bool
	filtering   bool
	loading     bool
	err         error
	ready       bool
}

// Option configures a Model.
type Option func(*Model)

// WithErrorFormatter sets the function that turns a load error into the
// text shown in the preview. The default prints the error on one line.
func WithErrorFormatter(f func(error) string) Option {
	return func(m *Model) {
		m.formatErr = f
	}
}

// WithContext sets the context every load is derived from. Run sets it to
// the program context.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		m.ctx = ctx
	}
}

// New creates a preview Model that loads its schedule with load.
func New(load LoadFunc, theme seri.Theme, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = "press / to filter"
	ti.Prompt = "/ "
	ti.CharLimit = 0

	m := Model{
		Input:      ti,
		load:       load,
		ctx:        context.Background(),
		theme:      theme,
		styles:     NewStyles(theme),
		formatErr:  defaultErrorText,
		blockFocus: -1,
		loading:    true,
	}
	m.Input.PromptStyle = m.styles.Prompt
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Loading returns whether a load is in progress.
func (m Model) Loading() bool { return m.loading }

// Err returns the last load error, if any.
func (m Model) Err() error { return m.err }

// Schedule returns the last successfully loaded schedule.
func (m Model) Schedule() seri.Schedule { return m.schedule }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return startLoad(m.load, m.ctx)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.handleWindowSize(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case LoadedMsg:
		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.schedule = msg.Schedule
		}
		m = m.rebuildBlocks()
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoTop()
		return m, nil
	}

	// Viewport always receives remaining messages for mouse scrolling.
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder

	b.WriteString(m.Viewport.View())
	b.WriteString("\n")

	b.WriteString(m.statusLine())
	b.WriteString("\n")

	b.WriteString(m.Input.View())

	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	inputH := 1
	statusHeight := 1
	borderHeight := 2 // newlines between sections
	vpHeight := msg.Height - inputH - statusHeight - borderHeight

	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	// Blocks wrap to the viewport width, so content is re-rendered.
	m.Viewport.SetContent(m.renderContent())

	m.Input.Width = msg.Width
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	if m.filtering {
		return m.handleFilterKey(msg)
	}

	switch msg.Type {
	case tea.KeyEsc:
		return m.quit()

	case tea.KeyTab:
		if m.blockFocus >= 0 {
			block, cmd := m.blocks[m.blockFocus].Update(ToggleMsg{})
			m.blocks[m.blockFocus] = block
			m.Viewport.SetContent(m.renderContent())
			return m, cmd
		}
		return m, nil

	case tea.KeyShiftTab:
		m = m.moveFocus(-1)
		m.Viewport.SetContent(m.renderContent())
		return m, nil

	case tea.KeyCtrlO:
		m = m.setAllExpanded(!m.allExpanded)
		m.Viewport.SetContent(m.renderContent())
		return m, nil

	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			return m.quit()
		case "n":
			m = m.moveFocus(1)
			m.Viewport.SetContent(m.renderContent())
			return m, nil
		case "/":
			m.filtering = true
			return m, m.Input.Focus()
		case "r":
			if m.loading {
				return m, nil
			}
			ctx, cancel := context.WithCancel(m.ctx)
			m.cancel = cancel
			m.loading = true
			return m, startLoad(m.load, ctx)
		}
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.filtering = false
		m.Input.Blur()
		return m, nil
	case tea.KeyEsc:
		m.filtering = false
		m.Input.Blur()
		m.Input.SetValue("")
		m = m.rebuildBlocks()
		m.Viewport.SetContent(m.renderContent())
		return m, nil
	}

	before := m.Input.Value()
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	if m.Input.Value() != before {
		m = m.rebuildBlocks()
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoTop()
	}
	return m, cmd
}

// rebuildBlocks creates blocks from the loaded schedule, keeping only the
// sessions that match the filter. Days without a match are hidden while a
// filter is set.
func (m Model) rebuildBlocks() Model {
	m.blocks = nil
	if m.err != nil {
		m.blocks = append(m.blocks, NewErrorBlock(m.formatErr(m.err), m.styles))
		m.blockFocus = -1
		return m
	}
	query := strings.ToLower(strings.TrimSpace(m.Input.Value()))
	for i, d := range m.schedule.Days {
		var sessions []Block
		for _, s := range d.Sessions {
			if !matches(s, query) {
				continue
			}
			b := NewSessionBlock(s, m.theme, m.styles)
			b.collapsed = !m.allExpanded
			sessions = append(sessions, b)
		}
		if query != "" && len(sessions) == 0 {
			continue
		}
		m.blocks = append(m.blocks, NewDayBlock(d, i, m.theme))
		m.blocks = append(m.blocks, sessions...)
	}
	m.blockFocus = -1
	return m.moveFocus(1)
}

func matches(s seri.Session, query string) bool {
	if query == "" {
		return true
	}
	fields := []string{s.Title, string(s.Kind), s.SpeakerNames()}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

func (m Model) renderContent() string {
	if len(m.blocks) == 0 {
		if m.loading {
			return ""
		}
		return m.styles.Muted.Render("No sessions.")
	}
	var b strings.Builder
	var prev Block
	for _, block := range m.blocks {
		b.WriteString(blockSeparator(prev, block))
		b.WriteString(block.View(m.Viewport.Width))
		prev = block
	}
	return b.String()
}

// moveFocus moves blockFocus by step to the next collapsible block in that
// direction, wrapping around.
func (m Model) moveFocus(step int) Model {
	n := len(m.blocks)
	if n == 0 {
		m.blockFocus = -1
		return m
	}
	start := m.blockFocus
	if start < 0 && step < 0 {
		start = 0
	}
	for i := 1; i <= n; i++ {
		idx := ((start+step*i)%n + n) % n
		if b, ok := m.blocks[idx].(*SessionBlock); ok && b.Collapsible() {
			m = m.setFocus(idx)
			return m
		}
	}
	m = m.setFocus(-1)
	return m
}

func (m Model) setFocus(idx int) Model {
	if m.blockFocus >= 0 && m.blockFocus < len(m.blocks) {
		m.blocks[m.blockFocus], _ = m.blocks[m.blockFocus].Update(FocusMsg{Focused: false})
	}
	m.blockFocus = idx
	if idx >= 0 {
		m.blocks[idx], _ = m.blocks[idx].Update(FocusMsg{Focused: true})
	}
	return m
}

func (m Model) setAllExpanded(expanded bool) Model {
	m.allExpanded = expanded
	for i, b := range m.blocks {
		m.blocks[i], _ = b.Update(ExpandMsg{Expanded: expanded})
	}
	return m
}

func (m Model) statusLine() string {
	switch {
	case m.err != nil:
		return m.styles.Error.Render("Error: document has errors, r to reload")
	case m.loading:
		return m.styles.Muted.Render("Loading...")
	case m.filtering:
		return m.styles.Muted.Render("Enter to apply, Esc to clear")
	}
	return m.styles.Muted.Render(fmt.Sprintf("%d sessions · Tab expand, n/Shift+Tab move, Ctrl+O all, / filter, r reload, q quit", m.sessionCount()))
}

func (m Model) sessionCount() int {
	n := 0
	for _, b := range m.blocks {
		if _, ok := b.(*SessionBlock); ok {
			n++
		}
	}
	return n
}

// quit cancels any in-flight reload and stops the program.
func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	return m, tea.Quit
}

// startLoad runs the load function and delivers its result as a LoadedMsg.
func startLoad(load LoadFunc, ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		s, err := load(ctx)
		return LoadedMsg{Schedule: s, Err: err}
	}
}
