// Package mock provides test doubles for seri interfaces using function
// fields.
package mock

import (
	"context"

	"github.com/fwojciec/seri"
)

// Interface compliance checks.
var (
	_ seri.Parser   = (*Parser)(nil)
	_ seri.Pass     = (*Pass)(nil)
	_ seri.Renderer   = (*Renderer)(nil)
	_ seri.PDFBuilder = (*PDFBuilder)(nil)
)

// Parser is a test double for seri.Parser.
// Set ParseFn before calling Parse.
type Parser struct {
	ParseFn func(src string) (seri.Schedule, error)
}

// Parse delegates to ParseFn.
func (p *Parser) Parse(src string) (seri.Schedule, error) {
	return p.ParseFn(src)
}

// Pass is a test double for seri.Pass.
// Set ApplyFn before calling Apply. Name returns PassName.
type Pass struct {
	PassName string
	ApplyFn  func(s seri.Schedule) (seri.Schedule, error)
}

// Name returns PassName.
func (p *Pass) Name() string { return p.PassName }

// Apply delegates to ApplyFn.
func (p *Pass) Apply(s seri.Schedule) (seri.Schedule, error) {
	return p.ApplyFn(s)
}

// Renderer is a test double for seri.Renderer.
// Set RenderFn before calling Render.
type Renderer struct {
	RenderFn func(s seri.Schedule, tmpl *seri.Template) (string, error)
}

// Render delegates to RenderFn.
func (r *Renderer) Render(s seri.Schedule, tmpl *seri.Template) (string, error) {
	return r.RenderFn(s, tmpl)
}

// PDFBuilder is a test double for seri.PDFBuilder.
// Set BuildPDFFn before calling BuildPDF.
type PDFBuilder struct {
	BuildPDFFn func(ctx context.Context, latex string) ([]byte, error)
}

// BuildPDF delegates to BuildPDFFn.
func (b *PDFBuilder) BuildPDF(ctx context.Context, latex string) ([]byte, error) {
	return b.BuildPDFFn(ctx, latex)
}
