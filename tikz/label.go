package tikz

import (
	"github.com/fwojciec/seri"
	"github.com/fwojciec/seri/goldmark"
	"github.com/mattn/go-runewidth"
)

// labelWidth is the maximum display width of a title shown inside a node.
const labelWidth = 30

// ShortText returns the escaped text shown inside a session's node. Talks
// show their speakers: one name, "A and B" for two, "A et al." for more.
// Talks without speakers and every other kind show the title, cut to 30
// columns.
func ShortText(s seri.Session) string {
	if s.Kind == seri.KindTalk {
		switch n := len(s.Speakers); {
		case n == 1:
			return esc(string(s.Speakers[0]))
		case n == 2:
			return esc(string(s.Speakers[0])) + " and " + esc(string(s.Speakers[1]))
		case n > 2:
			return esc(string(s.Speakers[0])) + ` et~al.`
		}
	}
	return esc(runewidth.Truncate(s.Title, labelWidth, "..."))
}

func esc(s string) string { return goldmark.EscapeLaTeX(s) }
