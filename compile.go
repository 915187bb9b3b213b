package seri

// Parser builds a Schedule from source text.
type Parser interface {
	Parse(src string) (Schedule, error)
}

// Compiler runs source text through a parser, a pass pipeline and a
// renderer. A Compiler holds no state between calls, so one value can
// compile any number of documents.
type Compiler struct {
	parser   Parser
	passes   Pipeline
	renderer Renderer
}

// NewCompiler creates a Compiler from its three stages.
func NewCompiler(parser Parser, passes Pipeline, renderer Renderer) *Compiler {
	return &Compiler{parser: parser, passes: passes, renderer: renderer}
}

// CompileOption configures a single Compile or Check invocation.
type CompileOption func(*compileConfig)

type compileConfig struct {
	onPass   func(name string, s Schedule)
	template *Template
}

// WithPassHandler sets a callback that receives the schedule returned by
// each successful pass. If nil or not set, nothing is reported.
func WithPassHandler(h func(name string, s Schedule)) CompileOption {
	return func(c *compileConfig) {
		c.onPass = h
	}
}

// WithTemplate wraps the rendered body in tmpl.
func WithTemplate(tmpl *Template) CompileOption {
	return func(c *compileConfig) {
		c.template = tmpl
	}
}

// Check parses src and runs the pass pipeline, returning the validated
// schedule.
func (c *Compiler) Check(src string, opts ...CompileOption) (Schedule, error) {
	cfg := newCompileConfig(opts)
	return c.check(src, &cfg)
}

// Compile parses, validates and renders src. Each stage runs only if the
// previous one succeeded; no partial output is ever returned.
func (c *Compiler) Compile(src string, opts ...CompileOption) (string, error) {
	cfg := newCompileConfig(opts)
	s, err := c.check(src, &cfg)
	if err != nil {
		return "", err
	}
	out, err := c.renderer.Render(s, cfg.template)
	if err != nil {
		return "", err
	}
	return out, nil
}

func (c *Compiler) check(src string, cfg *compileConfig) (Schedule, error) {
	s, err := c.parser.Parse(src)
	if err != nil {
		return Schedule{}, err
	}
	return c.passes.Run(s, cfg.onPass)
}

func newCompileConfig(opts []CompileOption) compileConfig {
	var cfg compileConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
