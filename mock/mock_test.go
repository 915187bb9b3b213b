package mock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/seri"
	"github.com/fwojciec/seri/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse(t *testing.T) {
	t.Parallel()
	t.Run("delegates to ParseFn", func(t *testing.T) {
		t.Parallel()
		want := seri.Schedule{Days: []seri.Day{{Label: "Monday"}}}
		p := mock.Parser{
			ParseFn: func(src string) (seri.Schedule, error) {
				assert.Equal(t, "day \"Monday\"", src)
				return want, nil
			},
		}
		got, err := p.Parse("day \"Monday\"")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("returns error", func(t *testing.T) {
		t.Parallel()
		wantErr := errors.New("parse error")
		p := mock.Parser{
			ParseFn: func(string) (seri.Schedule, error) {
				return seri.Schedule{}, wantErr
			},
		}
		_, err := p.Parse("")
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("panics when ParseFn not set", func(t *testing.T) {
		t.Parallel()
		p := mock.Parser{}
		assert.Panics(t, func() {
			_, _ = p.Parse("")
		})
	})
}

func TestPass_Apply(t *testing.T) {
	t.Parallel()
	t.Run("reports name and delegates to ApplyFn", func(t *testing.T) {
		t.Parallel()
		in := seri.Schedule{Days: []seri.Day{{Label: "in"}}}
		out := seri.Schedule{Days: []seri.Day{{Label: "out"}}}
		p := mock.Pass{
			PassName: "rename",
			ApplyFn: func(s seri.Schedule) (seri.Schedule, error) {
				assert.Equal(t, in, s)
				return out, nil
			},
		}
		assert.Equal(t, "rename", p.Name())
		got, err := p.Apply(in)
		require.NoError(t, err)
		assert.Equal(t, out, got)
	})

	t.Run("panics when ApplyFn not set", func(t *testing.T) {
		t.Parallel()
		p := mock.Pass{}
		assert.Panics(t, func() {
			_, _ = p.Apply(seri.Schedule{})
		})
	})
}

func TestRenderer_Render(t *testing.T) {
	t.Parallel()
	t.Run("delegates to RenderFn", func(t *testing.T) {
		t.Parallel()
		tmpl := &seri.Template{Text: "{{ CALENDAR }}"}
		r := mock.Renderer{
			RenderFn: func(s seri.Schedule, got *seri.Template) (string, error) {
				assert.Same(t, tmpl, got)
				return "rendered", nil
			},
		}
		out, err := r.Render(seri.Schedule{}, tmpl)
		require.NoError(t, err)
		assert.Equal(t, "rendered", out)
	})

	t.Run("returns error", func(t *testing.T) {
		t.Parallel()
		wantErr := errors.New("render error")
		r := mock.Renderer{
			RenderFn: func(seri.Schedule, *seri.Template) (string, error) {
				return "", wantErr
			},
		}
		_, err := r.Render(seri.Schedule{}, nil)
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("panics when RenderFn not set", func(t *testing.T) {
		t.Parallel()
		r := mock.Renderer{}
		assert.Panics(t, func() {
			_, _ = r.Render(seri.Schedule{}, nil)
		})
	})
}

func TestPDFBuilder_BuildPDF(t *testing.T) {
	t.Parallel()
	t.Run("delegates to BuildPDFFn", func(t *testing.T) {
		t.Parallel()
		b := mock.PDFBuilder{
			BuildPDFFn: func(_ context.Context, latex string) ([]byte, error) {
				return []byte("%PDF " + latex), nil
			},
		}
		out, err := b.BuildPDF(context.Background(), "doc")
		require.NoError(t, err)
		assert.Equal(t, "%PDF doc", string(out))
	})

	t.Run("panics when BuildPDFFn not set", func(t *testing.T) {
		t.Parallel()
		b := mock.PDFBuilder{}
		assert.Panics(t, func() {
			_, _ = b.BuildPDF(context.Background(), "")
		})
	})
}
