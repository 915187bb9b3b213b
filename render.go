package seri

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Format selects a backend. The set is closed.
type Format int

const (
	FormatTikZ Format = iota // default
	FormatHTML
)

func (f Format) String() string {
	switch f {
	case FormatTikZ:
		return "tikz"
	case FormatHTML:
		return "html"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Extension returns the conventional file extension for the format.
func (f Format) Extension() string {
	if f == FormatHTML {
		return ".html"
	}
	return ".tex"
}

// ParseFormat parses a format name. The empty string selects FormatTikZ.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "tikz":
		return FormatTikZ, nil
	case "html":
		return FormatHTML, nil
	default:
		return 0, fmt.Errorf("unknown format %q: must be \"tikz\" or \"html\"", s)
	}
}

// Renderer turns a validated Schedule into target-format text. A nil
// template yields the generated body alone.
type Renderer interface {
	Render(s Schedule, tmpl *Template) (string, error)
}

// PDFBuilder compiles a complete LaTeX document into a PDF.
type PDFBuilder interface {
	BuildPDF(ctx context.Context, latex string) ([]byte, error)
}

// Template keys.
const (
	KeyCalendar = "CALENDAR"
	KeyFirstDay = "FIRST_DAY"
	KeyLastDay  = "LAST_DAY"
)

// Template is opaque text with "{{ KEY }}" insertion points. CALENDAR is
// required; other keys are optional.
type Template struct {
	Text string
}

// Placeholder returns the literal insertion point for key.
func Placeholder(key string) string {
	return "{{ " + key + " }}"
}

// Expand substitutes the body for the CALENDAR insertion point and each
// entry of vars for its key. A CALENDAR entry in vars is ignored.
func (t Template) Expand(format Format, body string, vars map[string]string) (string, error) {
	if !strings.Contains(t.Text, Placeholder(KeyCalendar)) {
		return "", &RenderError{
			Format: format,
			Detail: fmt.Sprintf("no %s in template", Placeholder(KeyCalendar)),
			Err:    ErrMissingPlaceholder,
		}
	}
	keys := make([]string, 0, len(vars))
	for k := range vars {
		if k != KeyCalendar {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	pairs := []string{Placeholder(KeyCalendar), body}
	for _, k := range keys {
		pairs = append(pairs, Placeholder(k), vars[k])
	}
	// One pass, so substituted text is never scanned for keys again.
	return strings.NewReplacer(pairs...).Replace(t.Text), nil
}

// DayRange returns the titles of the first and last days, used for the
// FIRST_DAY and LAST_DAY template keys.
func (s Schedule) DayRange() (first, last string) {
	if len(s.Days) == 0 {
		return "", ""
	}
	return s.Days[0].Title(), s.Days[len(s.Days)-1].Title()
}

// TemplateVars returns the optional template keys for s.
func TemplateVars(s Schedule) map[string]string {
	first, last := s.DayRange()
	return map[string]string{KeyFirstDay: first, KeyLastDay: last}
}
