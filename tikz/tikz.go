// Package tikz renders a schedule as LaTeX: one TikZ timetable per day,
// optionally followed by an abstracts section.
package tikz

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/fwojciec/seri"
	"github.com/fwojciec/seri/goldmark"
	"golang.org/x/text/language/display"
)

//go:embed template.tex
var standalone string

// Interface compliance check.
var _ seri.Renderer = (*Renderer)(nil)

// DefaultTemplate returns the standalone article template.
func DefaultTemplate() *seri.Template {
	return &seri.Template{Text: standalone}
}

const preamble = `\tikzset{
  event/.style 2 args={draw, rectangle, rounded corners=2pt, anchor=north west,
    inner sep=2pt, font=\footnotesize, align=left,
    text width=#2*4cm-0.3cm, minimum height=#1*1.5cm},
  talk/.style 2 args={event={#1}{#2}, fill=blue!15},
  meal/.style 2 args={event={#1}{#2}, fill=orange!25},
  break/.style 2 args={event={#1}{#2}, fill=gray!20},
  fun/.style 2 args={event={#1}{#2}, fill=green!20},
  transport/.style 2 args={event={#1}{#2}, fill=yellow!25},
  unscheduled/.style={draw, dashed, rectangle, anchor=north west, inner sep=2pt,
    font=\footnotesize, text width=3.7cm, minimum height=0.6cm},
}
`

// unscheduledStep is the vertical distance, in hours, between entries of
// the placeholder strip.
const unscheduledStep = 0.5

// Renderer implements seri.Renderer for TikZ output.
type Renderer struct {
	strict    bool
	abstracts bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithStrict makes sessions without a start time or duration a render
// error instead of listing them under the grid.
func WithStrict(strict bool) Option {
	return func(r *Renderer) {
		r.strict = strict
	}
}

// WithAbstracts appends an abstracts section after the timetables.
func WithAbstracts(abstracts bool) Option {
	return func(r *Renderer) {
		r.abstracts = abstracts
	}
}

// NewRenderer creates a Renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render returns the TikZ body for s, wrapped in tmpl when it is non-nil.
// A schedule without days renders to an empty body.
func (r *Renderer) Render(s seri.Schedule, tmpl *seri.Template) (string, error) {
	body, err := r.body(s)
	if err != nil {
		return "", err
	}
	if tmpl == nil {
		return body, nil
	}
	vars := seri.TemplateVars(s)
	for k, v := range vars {
		vars[k] = esc(v)
	}
	return tmpl.Expand(seri.FormatTikZ, body, vars)
}

func (r *Renderer) body(s seri.Schedule) (string, error) {
	if len(s.Days) == 0 {
		return "", nil
	}
	var b strings.Builder
	b.WriteString(preamble)
	for _, day := range s.Days {
		if err := r.writeDay(&b, day); err != nil {
			return "", err
		}
	}
	if r.abstracts {
		writeAbstracts(&b, s)
	}
	return b.String(), nil
}

// hourRange returns the first and last hour lines of the grid: the hour
// of the earliest start and the hour at or after the latest end.
func hourRange(day seri.Day) (first, last int, ok bool) {
	for _, sess := range day.Sessions {
		end, scheduled := sess.End()
		if !scheduled {
			continue
		}
		lo := sess.Start.Hour()
		hi := (int(end) + 59) / 60
		if !ok || lo < first {
			first = lo
		}
		if !ok || hi > last {
			last = hi
		}
		ok = true
	}
	if ok && last == first {
		last = first + 1
	}
	return first, last, ok
}

func (r *Renderer) writeDay(b *strings.Builder, day seri.Day) error {
	first, last, hasGrid := hourRange(day)
	top := float64(first) - 0.5

	b.WriteString("\n\\begin{tikzpicture}[x=4cm, y=-1.5cm]\n")
	if title := day.Title(); title != "" {
		fmt.Fprintf(b, "  \\node[anchor=south] at (1.5,%.1f) {%s};\n", top, esc(title))
	}
	if hasGrid {
		fmt.Fprintf(b, "  \\foreach \\time in {%d,...,%d}\n", first, last)
		b.WriteString("    \\node[anchor=east] at (1,\\time) {\\time:00};\n")
		fmt.Fprintf(b, "  \\foreach \\time in {%d,...,%d}\n", first, last)
		b.WriteString("    \\draw[gray!50] (1,\\time) -- (2,\\time);\n")
		fmt.Fprintf(b, "  \\draw (1,%.1f) -- (1,%d);\n", top, last)
		fmt.Fprintf(b, "  \\draw (2,%.1f) -- (2,%d);\n", top, last)
	}

	y := float64(last) + unscheduledStep
	for _, sess := range day.Sessions {
		if sess.Scheduled() {
			fmt.Fprintf(b, "  \\node[%s={%.2f}{1}] at (1,%s) {%s};\n",
				sess.Kind, sess.Duration.Hours(), coordinate(*sess.Start), ShortText(sess))
			continue
		}
		if r.strict {
			s := sess
			return &seri.RenderError{
				Format:  seri.FormatTikZ,
				Session: &s,
				Detail:  "a timetable node needs a time and a duration",
				Err:     seri.ErrUnscheduled,
			}
		}
		fmt.Fprintf(b, "  \\node[unscheduled] at (1,%.2f) {%s};\n", y, unscheduledLabel(sess))
		y += unscheduledStep
	}
	b.WriteString("\\end{tikzpicture}\n")
	return nil
}

// coordinate returns the y coordinate of t as "H.mm", where mm is the
// minute scaled to hundredths of an hour.
func coordinate(t seri.TimeOfDay) string {
	return fmt.Sprintf("%d.%02d", t.Hour(), t.Minute()*5/3)
}

func unscheduledLabel(s seri.Session) string {
	label := ShortText(s)
	switch {
	case s.Start != nil:
		return label + " (" + s.Start.String() + ")"
	case s.Duration != nil:
		return label + " (" + seri.FormatDuration(*s.Duration) + ")"
	}
	return label
}

// writeAbstracts appends one subsection per talk or fun session, grouped
// under a heading per day.
func writeAbstracts(b *strings.Builder, s seri.Schedule) {
	b.WriteString("\n\\section*{Abstracts}\n")
	for _, day := range s.Days {
		wroteDay := false
		for _, sess := range day.Sessions {
			if sess.Kind != seri.KindTalk && sess.Kind != seri.KindFun {
				continue
			}
			if !wroteDay && day.Title() != "" {
				fmt.Fprintf(b, "\n\\subsection*{%s}\n", esc(day.Title()))
			}
			wroteDay = true
			fmt.Fprintf(b, "\n\\subsubsection*{%s}\n", esc(sess.Title))
			if sub := subtitle(sess); sub != "" {
				fmt.Fprintf(b, "\\textit{%s}\n", sub)
			}
			if sess.Abstract != nil && *sess.Abstract != "" {
				b.WriteString("\n")
				b.WriteString(goldmark.LaTeX(*sess.Abstract))
				b.WriteString("\n")
			}
		}
	}
}

// subtitle joins the time range, speakers and language of a session.
func subtitle(s seri.Session) string {
	var parts []string
	if end, ok := s.End(); ok {
		parts = append(parts, s.Start.String()+"--"+end.String())
	} else if s.Start != nil {
		parts = append(parts, s.Start.String())
	}
	if len(s.Speakers) > 0 {
		parts = append(parts, esc(s.SpeakerNames()))
	}
	if s.Lang != nil {
		parts = append(parts, esc(display.English.Tags().Name(*s.Lang)))
	}
	return strings.Join(parts, " -- ")
}
