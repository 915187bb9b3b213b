package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fwojciec/seri"
	"github.com/fwojciec/seri/fs"
	"github.com/fwojciec/seri/html"
	"github.com/fwojciec/seri/json"
	"github.com/fwojciec/seri/pass"
	"github.com/fwojciec/seri/syntax"
	"github.com/fwojciec/seri/tikz"
	"github.com/urfave/cli/v2"
)

// options are the per-invocation settings after applying flag > env >
// config file > default precedence.
type options struct {
	format     seri.Format
	template   string
	standalone bool
	strict     bool
	sort       bool
	abstracts  bool
	outputDir  string
	pdf        bool
	latexmk    string
}

// setter reports whether a flag was given on the command line or through
// its environment variable. *cli.Context implements it.
type setter interface {
	IsSet(name string) bool
	String(name string) string
	Bool(name string) bool
}

var _ setter = (*cli.Context)(nil)

func resolveOptions(c setter, cfg *Config) (options, error) {
	o := options{
		template:   cfg.Template,
		standalone: cfg.Standalone,
		strict:     cfg.Strict,
		sort:       cfg.Sort,
		abstracts:  cfg.Abstracts,
		outputDir:  cfg.OutputDir,
		latexmk:    cfg.Latexmk,
	}
	format := cfg.Format
	if c.IsSet("format") {
		format = c.String("format")
	}
	f, err := seri.ParseFormat(format)
	if err != nil {
		return options{}, err
	}
	o.format = f

	if c.IsSet("template") {
		o.template = c.String("template")
	}
	if c.IsSet("latexmk") {
		o.latexmk = c.String("latexmk")
	}
	for name, dst := range map[string]*bool{
		"standalone": &o.standalone,
		"strict":     &o.strict,
		"sort":       &o.sort,
		"abstracts":  &o.abstracts,
		"pdf":        &o.pdf,
	} {
		if c.IsSet(name) {
			*dst = c.Bool(name)
		}
	}
	if o.pdf {
		if o.format != seri.FormatTikZ {
			return options{}, fmt.Errorf("--pdf needs tikz output, not %s", o.format)
		}
		// latexmk needs a complete document.
		if o.template == "" {
			o.standalone = true
		}
	}
	return o, nil
}

func (o options) pipeline() seri.Pipeline {
	return pass.Default(pass.Options{Strict: o.strict, Sort: o.sort})
}

// renderer returns the backend for the selected format.
func (o options) renderer() seri.Renderer {
	switch o.format {
	case seri.FormatHTML:
		return html.NewRenderer()
	case seri.FormatTikZ:
		return tikz.NewRenderer(tikz.WithStrict(o.strict), tikz.WithAbstracts(o.abstracts))
	default:
		panic("unhandled format " + o.format.String())
	}
}

// loadTemplate returns the template to wrap output in: the template file
// if one is set, the built-in template in standalone mode, nil otherwise.
func (o options) loadTemplate() (*seri.Template, error) {
	if o.template != "" {
		text, err := fs.ReadSource(o.template, nil)
		if err != nil {
			return nil, err
		}
		return &seri.Template{Text: text}, nil
	}
	if !o.standalone {
		return nil, nil
	}
	switch o.format {
	case seri.FormatHTML:
		return html.DefaultTemplate(), nil
	default:
		return tikz.DefaultTemplate(), nil
	}
}

// parserFor picks the parser by file name: JSON documents hold a
// serialized schedule, everything else is Seri source.
func parserFor(name string) seri.Parser {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return json.NewParser()
	}
	return syntax.NewParser()
}
