package seri_test

import (
	"testing"

	"github.com/fwojciec/seri"
	"github.com/fwojciec/seri/html"
	"github.com/fwojciec/seri/pass"
	"github.com/fwojciec/seri/syntax"
	"github.com/fwojciec/seri/tikz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const program = `day "2024-11-06"
talk "Compilers for fun"
  speakers: "Grace Hopper"
  time: 10:00
  duration: 45m
meal "Lunch"
  time: 12:00
  duration: 1h
fun "Board games"
`

func TestCompile_EndToEnd(t *testing.T) {
	t.Parallel()

	t.Run("html contains titles and speakers", func(t *testing.T) {
		t.Parallel()
		c := seri.NewCompiler(syntax.NewParser(), pass.Default(pass.Options{}), html.NewRenderer())
		out, err := c.Compile(program)
		require.NoError(t, err)
		assert.Contains(t, out, "Compilers for fun")
		assert.Contains(t, out, "Grace Hopper")
		assert.Contains(t, out, `<article class="event fun unscheduled">`)
	})

	t.Run("tikz places unscheduled sessions under the grid", func(t *testing.T) {
		t.Parallel()
		c := seri.NewCompiler(syntax.NewParser(), pass.Default(pass.Options{}), tikz.NewRenderer())
		out, err := c.Compile(program)
		require.NoError(t, err)
		assert.Contains(t, out, `\node[talk={0.75}{1}] at (1,10.00) {Grace Hopper};`)
		assert.Contains(t, out, `\node[unscheduled]`)
	})

	t.Run("strict mode fails in the pass pipeline", func(t *testing.T) {
		t.Parallel()
		c := seri.NewCompiler(syntax.NewParser(), pass.Default(pass.Options{Strict: true}), tikz.NewRenderer())
		_, err := c.Compile(program)
		assert.ErrorIs(t, err, seri.ErrUnscheduled)
		pos, ok := seri.ErrorPosition(err)
		require.True(t, ok)
		assert.Equal(t, seri.Position{Line: 9, Column: 1}, pos)
	})

	t.Run("overlap is reported with both sessions", func(t *testing.T) {
		t.Parallel()
		src := `talk "A" time: 10:00 duration: 60m
talk "B" time: 10:30 duration: 30m`
		c := seri.NewCompiler(syntax.NewParser(), pass.Default(pass.Options{}), html.NewRenderer())
		_, err := c.Compile(src)
		assert.ErrorIs(t, err, seri.ErrOverlap)
		assert.ErrorContains(t, err, `talk "B" and talk "A"`)
	})

	t.Run("compilation is deterministic", func(t *testing.T) {
		t.Parallel()
		c := seri.NewCompiler(syntax.NewParser(), pass.Default(pass.Options{Sort: true}), html.NewRenderer())
		a, err := c.Compile(program, seri.WithTemplate(html.DefaultTemplate()))
		require.NoError(t, err)
		b, err := c.Compile(program, seri.WithTemplate(html.DefaultTemplate()))
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
}
