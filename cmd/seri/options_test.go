package main

import (
	"testing"

	"github.com/fwojciec/seri"
	"github.com/fwojciec/seri/html"
	"github.com/fwojciec/seri/json"
	"github.com/fwojciec/seri/syntax"
	"github.com/fwojciec/seri/tikz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flags is a setter backed by maps, standing in for *cli.Context.
type flags struct {
	strings map[string]string
	bools   map[string]bool
}

func (f flags) IsSet(name string) bool {
	_, s := f.strings[name]
	_, b := f.bools[name]
	return s || b
}

func (f flags) String(name string) string { return f.strings[name] }
func (f flags) Bool(name string) bool     { return f.bools[name] }

func TestResolveOptions(t *testing.T) {
	t.Parallel()

	t.Run("config values apply when flags are unset", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{Format: "html", Template: "page.html", Strict: true, Abstracts: true, OutputDir: "out"}
		o, err := resolveOptions(flags{}, cfg)
		require.NoError(t, err)
		assert.Equal(t, options{
			format:    seri.FormatHTML,
			template:  "page.html",
			strict:    true,
			abstracts: true,
			outputDir: "out",
		}, o)
	})

	t.Run("flags override config", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{Format: "html", Strict: true}
		o, err := resolveOptions(flags{
			strings: map[string]string{"format": "tikz", "template": "x.tex"},
			bools:   map[string]bool{"strict": false, "sort": true, "standalone": true},
		}, cfg)
		require.NoError(t, err)
		assert.Equal(t, seri.FormatTikZ, o.format)
		assert.Equal(t, "x.tex", o.template)
		assert.False(t, o.strict)
		assert.True(t, o.sort)
		assert.True(t, o.standalone)
	})

	t.Run("pdf implies standalone tikz", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{Format: "tikz", Latexmk: "latexmk-cfg"}
		o, err := resolveOptions(flags{bools: map[string]bool{"pdf": true}}, cfg)
		require.NoError(t, err)
		assert.True(t, o.pdf)
		assert.True(t, o.standalone)
		assert.Equal(t, "latexmk-cfg", o.latexmk)

		o, err = resolveOptions(flags{
			strings: map[string]string{"template": "page.tex", "latexmk": "/opt/latexmk"},
			bools:   map[string]bool{"pdf": true},
		}, cfg)
		require.NoError(t, err)
		assert.False(t, o.standalone)
		assert.Equal(t, "/opt/latexmk", o.latexmk)
	})

	t.Run("pdf rejects html", func(t *testing.T) {
		t.Parallel()
		_, err := resolveOptions(flags{
			strings: map[string]string{"format": "html"},
			bools:   map[string]bool{"pdf": true},
		}, DefaultConfig())
		assert.ErrorContains(t, err, "--pdf needs tikz output, not html")
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()
		_, err := resolveOptions(flags{strings: map[string]string{"format": "pdf"}}, DefaultConfig())
		assert.ErrorContains(t, err, `unknown format "pdf"`)
	})
}

func TestOptions_Renderer(t *testing.T) {
	t.Parallel()

	assert.IsType(t, &html.Renderer{}, options{format: seri.FormatHTML}.renderer())
	assert.IsType(t, &tikz.Renderer{}, options{format: seri.FormatTikZ}.renderer())
	assert.Panics(t, func() { options{format: seri.Format(9)}.renderer() })
}

func TestOptions_LoadTemplate(t *testing.T) {
	t.Parallel()

	tmpl, err := options{}.loadTemplate()
	require.NoError(t, err)
	assert.Nil(t, tmpl)

	tmpl, err = options{format: seri.FormatHTML, standalone: true}.loadTemplate()
	require.NoError(t, err)
	assert.Equal(t, html.DefaultTemplate(), tmpl)

	tmpl, err = options{format: seri.FormatTikZ, standalone: true}.loadTemplate()
	require.NoError(t, err)
	assert.Equal(t, tikz.DefaultTemplate(), tmpl)

	_, err = options{template: "does-not-exist.tex"}.loadTemplate()
	assert.Error(t, err)
}

func TestParserFor(t *testing.T) {
	t.Parallel()

	assert.IsType(t, &json.Parser{}, parserFor("schedule.JSON"))
	assert.IsType(t, &syntax.Parser{}, parserFor("schedule.seri"))
	assert.IsType(t, &syntax.Parser{}, parserFor("-"))
}

func TestOptions_Pipeline(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"completeness", "order-check", "overlap"}, options{}.pipeline().Names())
	assert.Equal(t, []string{"completeness", "sort", "overlap"}, options{sort: true}.pipeline().Names())
}
