package exec

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/seri"
)

// Interface compliance check.
var _ seri.PDFBuilder = (*Latexmk)(nil)

const (
	DefaultCommand = "latexmk"
	DefaultTimeout = 5 * time.Minute

	jobName = "schedule"
)

// BuildError reports a failed latexmk run. Log holds the sanitized tail of
// its output.
type BuildError struct {
	Command string
	Log     string
	Err     error
}

func (e *BuildError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Command, e.Err)
	if e.Log != "" {
		msg += "\n" + e.Log
	}
	return msg
}

func (e *BuildError) Unwrap() error { return e.Err }

// Latexmk implements seri.PDFBuilder with latexmk and LuaLaTeX. Every build
// runs in a fresh scratch directory that is removed afterwards, together
// with the auxiliary files latexmk leaves behind.
type Latexmk struct {
	command string
	run     CommandFunc
	timeout time.Duration
	tempDir string
}

// Option configures a Latexmk.
type Option func(*Latexmk)

// WithCommand sets the latexmk executable. Empty keeps the default.
func WithCommand(name string) Option {
	return func(l *Latexmk) {
		if name != "" {
			l.command = name
		}
	}
}

// WithRunner replaces the function that starts latexmk.
func WithRunner(run CommandFunc) Option {
	return func(l *Latexmk) {
		l.run = run
	}
}

// WithTimeout bounds a single build.
func WithTimeout(d time.Duration) Option {
	return func(l *Latexmk) {
		l.timeout = d
	}
}

// WithTempDir sets the parent of the scratch directories. Empty uses the
// system default.
func WithTempDir(dir string) Option {
	return func(l *Latexmk) {
		l.tempDir = dir
	}
}

// NewLatexmk creates a Latexmk.
func NewLatexmk(opts ...Option) *Latexmk {
	l := &Latexmk{
		command: DefaultCommand,
		run:     Run,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// BuildPDF compiles latex, a complete document, and returns the PDF bytes.
func (l *Latexmk) BuildPDF(ctx context.Context, latex string) ([]byte, error) {
	dir, err := os.MkdirTemp(l.tempDir, "seri-latexmk-*")
	if err != nil {
		return nil, fmt.Errorf("create build directory: %w", err)
	}
	defer os.RemoveAll(dir)

	src := jobName + ".tex"
	if err := os.WriteFile(filepath.Join(dir, src), []byte(latex), 0o644); err != nil {
		return nil, fmt.Errorf("write LaTeX source: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	out, err := l.run(ctx, dir, l.command, "-pdflua", "-interaction=nonstopmode", "-halt-on-error", src)
	if err != nil {
		return nil, &BuildError{Command: l.command, Log: Tail(out), Err: err}
	}
	pdf, err := os.ReadFile(filepath.Join(dir, jobName+".pdf"))
	if err != nil {
		return nil, &BuildError{Command: l.command, Log: Tail(out), Err: fmt.Errorf("no PDF produced: %w", err)}
	}
	return pdf, nil
}
