// Package goldmark renders session abstracts, which are written in
// markdown, for each output target: HTML for the web timetable, LaTeX for
// the abstracts section of the TikZ document, and ANSI-styled text for the
// terminal preview.
package goldmark

import (
	"bytes"
	"strings"

	"github.com/fwojciec/seri"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Render parses markdown source and returns ANSI-styled terminal output.
// Paragraphs and list items are word-wrapped to width. Code blocks are
// rendered at full width without reflow.
func Render(source string, width int, theme seri.Theme) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	r := newRenderer(theme)
	return r.render([]byte(source), width)
}

// HTML converts markdown source to an HTML fragment. Raw HTML in the
// source is not passed through.
func HTML(source string) (string, error) {
	if strings.TrimSpace(source) == "" {
		return "", nil
	}
	md := goldmark.New(goldmark.WithExtensions(extension.Strikethrough, extension.Linkify))
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// LaTeX converts markdown source to LaTeX body text. All text is escaped,
// so the output is safe to embed in any paragraph-mode context.
func LaTeX(source string) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}
	src := []byte(source)
	doc := goldmark.DefaultParser().Parse(text.NewReader(src))
	var buf bytes.Buffer
	(&latexRenderer{}).walkBlock(doc, src, &buf)
	return strings.TrimRight(buf.String(), "\n")
}
