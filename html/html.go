// Package html renders a schedule as an HTML fragment: one section per day
// and one article per session.
package html

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"time"

	"github.com/fwojciec/seri"
	"github.com/fwojciec/seri/goldmark"
	"golang.org/x/text/language/display"
)

//go:embed template.html
var standalone string

// Interface compliance check.
var _ seri.Renderer = (*Renderer)(nil)

// DefaultTemplate returns the standalone page template.
func DefaultTemplate() *seri.Template {
	return &seri.Template{Text: standalone}
}

// minutesPerView is the span that maps to a height of 100%.
const minutesPerView = 8 * 60

var bodyTemplate = template.Must(template.New("schedule").Parse(
	`<div class="schedule">
{{- range .}}
<section class="day">
{{- with .Title}}
<h2>{{.}}</h2>
{{- end}}
{{- range .Events}}
<article class="{{.Class}}"{{if .Height}} style="height: {{.Height}}%"{{end}}>
<h3 class="title">{{.Title}}</h3>
{{- if .End}}
<p class="time"><time datetime="{{.Start}}">{{.Start}}</time>–<time datetime="{{.End}}">{{.End}}</time></p>
{{- else if .Start}}
<p class="time"><time datetime="{{.Start}}">{{.Start}}</time></p>
{{- end}}
{{- with .Duration}}
<p class="duration"><time datetime="{{.ISO}}">{{.Text}}</time></p>
{{- end}}
{{- if .Speakers}}
<p class="speakers">{{.Speakers}}</p>
{{- end}}
{{- with .Lang}}
<p class="lang" lang="{{.Tag}}">{{.Name}}</p>
{{- end}}
{{- with .Abstract}}
<div class="abstract">{{.}}</div>
{{- end}}
</article>
{{- end}}
</section>
{{- end}}
</div>
`))

type dayView struct {
	Title  string
	Events []eventView
}

type eventView struct {
	Class    string
	Height   int
	Title    string
	Start    string
	End      string
	Duration *durationView
	Speakers string
	Lang     *langView
	Abstract template.HTML
}

// durationView is only set for sessions without a start time.
type durationView struct {
	ISO  string
	Text string
}

type langView struct {
	Tag  string
	Name string
}

// Renderer implements seri.Renderer for HTML output.
type Renderer struct{}

// NewRenderer creates a Renderer.
func NewRenderer() *Renderer { return &Renderer{} }

// Render returns the HTML fragment for s, wrapped in tmpl when it is
// non-nil. A schedule without days renders to an empty body.
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
		vars[k] = template.HTMLEscapeString(v)
	}
	return tmpl.Expand(seri.FormatHTML, body, vars)
}

func (r *Renderer) body(s seri.Schedule) (string, error) {
	if len(s.Days) == 0 {
		return "", nil
	}
	days := make([]dayView, len(s.Days))
	for i, day := range s.Days {
		days[i].Title = day.Title()
		for _, sess := range day.Sessions {
			ev, err := newEventView(sess)
			if err != nil {
				return "", err
			}
			days[i].Events = append(days[i].Events, ev)
		}
	}
	var buf bytes.Buffer
	if err := bodyTemplate.Execute(&buf, days); err != nil {
		return "", &seri.RenderError{Format: seri.FormatHTML, Detail: err.Error(), Err: seri.ErrInternal}
	}
	return buf.String(), nil
}

func newEventView(s seri.Session) (eventView, error) {
	ev := eventView{
		Class:    "event " + string(s.Kind),
		Title:    s.Title,
		Speakers: s.SpeakerNames(),
	}
	if end, ok := s.End(); ok {
		ev.Start = s.Start.String()
		ev.End = end.String()
		ev.Height = int(s.Duration.Minutes()) * 100 / minutesPerView
	} else {
		ev.Class += " unscheduled"
		switch {
		case s.Start != nil:
			ev.Start = s.Start.String()
		case s.Duration != nil:
			ev.Duration = &durationView{ISO: isoDuration(*s.Duration), Text: seri.FormatDuration(*s.Duration)}
		}
	}
	if s.Lang != nil {
		ev.Lang = &langView{Tag: s.Lang.String(), Name: display.Self.Name(*s.Lang)}
	}
	if s.Abstract != nil {
		out, err := goldmark.HTML(*s.Abstract)
		if err != nil {
			sess := s
			return eventView{}, &seri.RenderError{
				Format:  seri.FormatHTML,
				Session: &sess,
				Detail:  fmt.Sprintf("abstract: %v", err),
				Err:     seri.ErrInvalidValue,
			}
		}
		ev.Abstract = template.HTML(out)
	}
	return ev, nil
}

// isoDuration formats d as an HTML duration string such as PT1H30M.
func isoDuration(d time.Duration) string {
	mins := int(d / time.Minute)
	h, m := mins/60, mins%60
	switch {
	case h == 0:
		return fmt.Sprintf("PT%dM", m)
	case m == 0:
		return fmt.Sprintf("PT%dH", h)
	default:
		return fmt.Sprintf("PT%dH%dM", h, m)
	}
}
