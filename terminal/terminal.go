// Package terminal formats compiler output for an ANSI terminal: source
// diagnostics with a caret under the offending column, and a plain
// listing of a schedule for the check and preview commands.
package terminal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/seri"
	"github.com/fwojciec/seri/goldmark"
	"github.com/rivo/uniseg"
	"golang.org/x/text/language/display"
)

const tabWidth = 4

// Styles maps a Theme to lipgloss styles for terminal output.
type Styles struct {
	Heading lipgloss.Style
	Time    lipgloss.Style
	Speaker lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Kind    lipgloss.Style
	Title   lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t seri.Theme) Styles {
	return Styles{
		Heading: lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		Time:    lipgloss.NewStyle().Foreground(ansiColor(t.Time)),
		Speaker: lipgloss.NewStyle().Foreground(ansiColor(t.Speaker)),
		Error:   lipgloss.NewStyle().Foreground(ansiColor(t.Error)).Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Kind:    lipgloss.NewStyle().Foreground(ansiColor(t.Kind)),
		Title:   lipgloss.NewStyle().Bold(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

// Diagnostic formats err for display. When err carries a source position
// inside src, the offending line is quoted with a caret under the column:
//
//	talk.seri:3:9: error: unexpected character '@'
//	   3 | talk "A" @
//	     |          ^
//
// Errors without a position are reported on a single line.
func Diagnostic(filename string, src string, err error, theme seri.Theme) string {
	st := NewStyles(theme)
	label := st.Error.Render("error:")
	pos, ok := seri.ErrorPosition(err)
	if !ok {
		return fmt.Sprintf("%s: %s %s", filename, label, err.Error())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s:%s: %s %s", filename, pos, label, message(err, pos))

	lines := strings.Split(src, "\n")
	if pos.Line < 1 || pos.Line > len(lines) {
		return b.String()
	}
	line := []rune(strings.TrimRight(lines[pos.Line-1], "\r"))
	col := min(max(pos.Column, 1), len(line)+1)

	num := strconv.Itoa(pos.Line)
	gutter := strings.Repeat(" ", len(num))
	offset := uniseg.StringWidth(expandTabs(string(line[:col-1])))

	b.WriteString("\n")
	b.WriteString(st.Muted.Render(fmt.Sprintf(" %s | ", num)))
	b.WriteString(expandTabs(string(line)))
	b.WriteString("\n")
	b.WriteString(st.Muted.Render(fmt.Sprintf(" %s | ", gutter)))
	b.WriteString(strings.Repeat(" ", offset))
	b.WriteString(st.Error.Render("^"))
	return b.String()
}

// message returns the error text without the leading position, which the
// diagnostic already prints in front.
func message(err error, pos seri.Position) string {
	return strings.TrimPrefix(err.Error(), pos.String()+": ")
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// Heading returns the styled heading for the day at index (0-based).
func Heading(d seri.Day, index int, theme seri.Theme) string {
	st := NewStyles(theme)
	title := d.Title()
	if title == "" {
		title = fmt.Sprintf("Day %d", index+1)
	}
	return st.Heading.Render(title)
}

// Summary returns a single styled line describing sess: its time range,
// kind, title, speakers and language.
func Summary(sess seri.Session, theme seri.Theme) string {
	st := NewStyles(theme)
	parts := []string{
		st.Time.Render(timeRange(sess)),
		st.Kind.Render(fmt.Sprintf("%-9s", sess.Kind)),
		st.Title.Render(sess.Title),
	}
	if len(sess.Speakers) > 0 {
		parts = append(parts, st.Speaker.Render(sess.SpeakerNames()))
	}
	if sess.Lang != nil {
		parts = append(parts, st.Muted.Render("("+display.English.Tags().Name(*sess.Lang)+")"))
	}
	return strings.Join(parts, " ")
}

func timeRange(sess seri.Session) string {
	switch {
	case sess.Scheduled():
		end, _ := sess.End()
		return fmt.Sprintf("%s-%s", sess.Start, end)
	case sess.Start != nil:
		return fmt.Sprintf("%s-?????", sess.Start)
	case sess.Duration != nil:
		return fmt.Sprintf("%-11s", "("+seri.FormatDuration(*sess.Duration)+")")
	}
	return "--:-- --:--"
}

// List renders the whole schedule as styled text. Abstracts are rendered
// from markdown and indented under their session.
func List(s seri.Schedule, width int, theme seri.Theme) string {
	var b strings.Builder
	for i, d := range s.Days {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Heading(d, i, theme))
		b.WriteString("\n")
		if len(d.Sessions) == 0 {
			b.WriteString(NewStyles(theme).Muted.Render("  no sessions"))
			b.WriteString("\n")
		}
		for _, sess := range d.Sessions {
			b.WriteString("  ")
			b.WriteString(Summary(sess, theme))
			b.WriteString("\n")
			if sess.Abstract != nil && *sess.Abstract != "" {
				b.WriteString(Abstract(*sess.Abstract, width, theme))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

// Abstract renders a markdown abstract indented for display under its
// session line.
func Abstract(source string, width int, theme seri.Theme) string {
	const indent = "    "
	body := goldmark.Render(source, max(width-len(indent), 20), theme)
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = indent + l
		}
	}
	return strings.Join(lines, "\n")
}
