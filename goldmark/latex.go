package goldmark

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`#`, `\#`,
	`%`, `\%`,
	`_`, `\_`,
	`^`, `\textasciicircum{}`,
	`~`, `\textasciitilde{}`,
)

// EscapeLaTeX escapes the characters LaTeX treats specially in paragraph
// mode.
func EscapeLaTeX(s string) string {
	return latexEscaper.Replace(s)
}

// latexRenderer writes a markdown AST as LaTeX. Headings become run-in
// paragraph titles because abstracts already sit under a subsection.
type latexRenderer struct{}

func (r *latexRenderer) walkBlock(node ast.Node, source []byte, buf *bytes.Buffer) {
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.renderBlock(c, source, buf)
		if c.NextSibling() != nil {
			buf.WriteString("\n")
		}
	}
}

func (r *latexRenderer) renderBlock(node ast.Node, source []byte, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		buf.WriteString(r.collectInline(n, source))
		buf.WriteString("\n")

	case *ast.Heading:
		buf.WriteString(`\paragraph{` + r.collectInline(n, source) + "}\n")

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		buf.WriteString("\\begin{verbatim}\n")
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(source))
		}
		buf.WriteString("\\end{verbatim}\n")

	case *ast.List:
		env := "itemize"
		if n.IsOrdered() {
			env = "enumerate"
		}
		buf.WriteString(`\begin{` + env + "}\n")
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			var item bytes.Buffer
			r.walkBlock(c, source, &item)
			buf.WriteString(`\item ` + strings.TrimRight(item.String(), "\n") + "\n")
		}
		buf.WriteString(`\end{` + env + "}\n")

	case *ast.Blockquote:
		buf.WriteString("\\begin{quote}\n")
		r.walkBlock(n, source, buf)
		buf.WriteString("\\end{quote}\n")

	case *ast.ThematicBreak:
		buf.WriteString("\\noindent\\rule{\\linewidth}{0.4pt}\n")

	case *ast.HTMLBlock:

	default:
		r.walkBlock(node, source, buf)
	}
}

func (r *latexRenderer) collectInline(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.renderInline(c, source, &buf)
	}
	return buf.String()
}

func (r *latexRenderer) renderInline(node ast.Node, source []byte, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Text:
		buf.WriteString(EscapeLaTeX(string(n.Segment.Value(source))))
		switch {
		case n.HardLineBreak():
			buf.WriteString("\\\\\n")
		case n.SoftLineBreak():
			buf.WriteByte('\n')
		}

	case *ast.String:
		buf.WriteString(EscapeLaTeX(string(n.Value)))

	case *ast.Emphasis:
		cmd := `\emph{`
		if n.Level > 1 {
			cmd = `\textbf{`
		}
		buf.WriteString(cmd + r.collectInline(n, source) + "}")

	case *extast.Strikethrough:
		// Plain LaTeX has no strike-out without extra packages.
		buf.WriteString(r.collectInline(n, source))

	case *ast.CodeSpan:
		buf.WriteString(`\texttt{` + r.collectInline(n, source) + "}")

	case *ast.Link:
		buf.WriteString(`\href{` + escapeURL(string(n.Destination)) + "}{" + r.collectInline(n, source) + "}")

	case *ast.AutoLink:
		buf.WriteString(`\url{` + escapeURL(string(n.URL(source))) + "}")

	case *ast.Image:
		buf.WriteString(r.collectInline(n, source))

	case *ast.RawHTML:

	default:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			r.renderInline(c, source, buf)
		}
	}
}

// escapeURL escapes the characters hyperref does not accept verbatim in
// \href and \url arguments.
func escapeURL(u string) string {
	return strings.NewReplacer(`\`, `\\`, `#`, `\#`, `%`, `\%`, `{`, `\{`, `}`, `\}`).Replace(u)
}
