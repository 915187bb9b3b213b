package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fwojciec/seri"
	bt "github.com/fwojciec/seri/bubbletea"
	"github.com/fwojciec/seri/fs"
	"github.com/fwojciec/seri/json"
	"github.com/fwojciec/seri/syntax"
	"github.com/fwojciec/seri/terminal"
	"github.com/urfave/cli/v2"
)

func pipelineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "strict", EnvVars: []string{"SERI_STRICT"}, Usage: "require a start time and duration for every session"},
		&cli.BoolFlag{Name: "sort", EnvVars: []string{"SERI_SORT"}, Usage: "sort sessions by start time instead of rejecting out-of-order days"},
	}
}

func (a *app) compileCommand() *cli.Command {
	return &cli.Command{
		Name:      "compile",
		Usage:     "Compile documents to TikZ or HTML.",
		ArgsUsage: "[file|glob ...]",
		Flags: append(pipelineFlags(),
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, EnvVars: []string{"SERI_FORMAT"}, Usage: "output format: tikz or html"},
			&cli.StringFlag{Name: "template", Aliases: []string{"t"}, EnvVars: []string{"SERI_TEMPLATE"}, Usage: "template file with a {{ CALENDAR }} insertion point"},
			&cli.BoolFlag{Name: "standalone", Aliases: []string{"s"}, Usage: "wrap output in the built-in template"},
			&cli.BoolFlag{Name: "abstracts", Usage: "append an abstracts section to TikZ output"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output file, or directory when compiling several documents"},
			&cli.StringFlag{Name: "ir", Usage: "also write the validated schedule as JSON to this file"},
			&cli.BoolFlag{Name: "pdf", Usage: "compile TikZ output to PDF with latexmk"},
			&cli.StringFlag{Name: "latexmk", EnvVars: []string{"SERI_LATEXMK"}, Usage: "latexmk executable for --pdf"},
		),
		Action: a.compile,
	}
}

func (a *app) compile(c *cli.Context) error {
	opts, err := resolveOptions(c, a.cfg)
	if err != nil {
		return err
	}
	inputs, err := inputNames(c.Args().Slice())
	if err != nil {
		return err
	}
	tmpl, err := opts.loadTemplate()
	if err != nil {
		return fmt.Errorf("template: %w", err)
	}

	output := c.String("output")
	batch := len(inputs) > 1
	if batch && c.IsSet("ir") {
		return errors.New("--ir needs a single input")
	}
	if output == "" && batch {
		output = opts.outputDir
	}

	renderer := opts.renderer()
	passes := opts.pipeline()
	ext := opts.format.Extension()
	var pdf seri.PDFBuilder
	if opts.pdf {
		pdf = a.newPDF(opts.latexmk)
		ext = ".pdf"
	}
	failed := 0
	for _, name := range inputs {
		if err := c.Context.Err(); err != nil {
			return err
		}
		src, err := fs.ReadSource(name, a.stdin)
		if err != nil {
			return err
		}

		var validated seri.Schedule
		compiler := seri.NewCompiler(parserFor(name), passes, renderer)
		out, err := compiler.Compile(src,
			seri.WithTemplate(tmpl),
			seri.WithPassHandler(func(pass string, s seri.Schedule) {
				validated = s
				a.logger.Debug("pass complete", "input", name, "pass", pass, "days", len(s.Days), "sessions", s.SessionCount())
			}),
		)
		if err != nil {
			a.report(name, src, err)
			failed++
			continue
		}

		if path := c.String("ir"); path != "" {
			if err := json.Save(path, validated); err != nil {
				return fmt.Errorf("write IR: %w", err)
			}
			a.logger.Info("wrote IR", "path", path)
		}

		data := []byte(out)
		if pdf != nil {
			data, err = pdf.BuildPDF(c.Context, out)
			if err != nil {
				a.report(name, src, err)
				failed++
				continue
			}
			a.logger.Debug("built PDF", "input", name, "bytes", len(data))
		}

		if !batch && output == "" {
			if _, err := a.stdout.Write(data); err != nil {
				return err
			}
			continue
		}
		path := output
		if batch || isDir(output) {
			path = fs.OutputPath(name, output, ext)
		}
		if err := fs.WriteOutput(path, data); err != nil {
			return err
		}
		a.logger.Info("wrote output", "input", name, "path", path, "bytes", len(data))
	}
	return failures(failed, len(inputs))
}

func (a *app) checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Parse and validate documents without rendering.",
		ArgsUsage: "[file|glob ...]",
		Flags: append(pipelineFlags(),
			&cli.BoolFlag{Name: "list", Aliases: []string{"l"}, Usage: "print the validated schedule"},
		),
		Action: a.check,
	}
}

func (a *app) check(c *cli.Context) error {
	opts, err := resolveOptions(c, a.cfg)
	if err != nil {
		return err
	}
	inputs, err := inputNames(c.Args().Slice())
	if err != nil {
		return err
	}
	theme := seri.DefaultTheme()
	failed := 0
	for _, name := range inputs {
		src, err := fs.ReadSource(name, a.stdin)
		if err != nil {
			return err
		}
		s, err := checkSource(name, src, opts)
		if err != nil {
			a.report(name, src, err)
			failed++
			continue
		}
		fmt.Fprintf(a.stdout, "%s: ok (%d days, %d sessions)\n", displayName(name), len(s.Days), s.SessionCount())
		if c.Bool("list") {
			fmt.Fprint(a.stdout, terminal.List(s, 80, theme))
		}
	}
	return failures(failed, len(inputs))
}

func (a *app) tokensCommand() *cli.Command {
	return &cli.Command{
		Name:      "tokens",
		Usage:     "Print the token stream of a document.",
		ArgsUsage: "[file]",
		Action: func(c *cli.Context) error {
			if c.NArg() > 1 {
				return errors.New("tokens takes a single input")
			}
			name := c.Args().First()
			if name == "" {
				name = fs.Stdin
			}
			src, err := fs.ReadSource(name, a.stdin)
			if err != nil {
				return err
			}
			toks, err := syntax.Tokens(src)
			for _, tok := range toks {
				fmt.Fprintln(a.stdout, tok)
			}
			if err != nil {
				a.report(name, src, err)
				return errReported
			}
			return nil
		},
	}
}

func (a *app) previewCommand() *cli.Command {
	return &cli.Command{
		Name:      "preview",
		Usage:     "Browse a document in the terminal. Press r to reload after editing.",
		ArgsUsage: "file",
		Flags:     pipelineFlags(),
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 || c.Args().First() == fs.Stdin {
				return errors.New("preview takes a single input file")
			}
			opts, err := resolveOptions(c, a.cfg)
			if err != nil {
				return err
			}
			name := c.Args().First()
			theme := seri.DefaultTheme()
			load := func(ctx context.Context) (seri.Schedule, error) {
				if err := ctx.Err(); err != nil {
					return seri.Schedule{}, err
				}
				src, err := fs.ReadSource(name, nil)
				if err != nil {
					return seri.Schedule{}, err
				}
				s, err := checkSource(name, src, opts)
				if err != nil {
					return seri.Schedule{}, &diagnosticError{text: terminal.Diagnostic(displayName(name), src, err, theme), err: err}
				}
				a.logger.Debug("preview loaded", "input", name, "sessions", s.SessionCount())
				return s, nil
			}
			m := bt.New(load, theme, bt.WithErrorFormatter(formatDiagnostic), bt.WithContext(c.Context))
			if err := bt.Run(c.Context, m); err != nil {
				return fmt.Errorf("TUI: %w", err)
			}
			return nil
		},
	}
}

// diagnosticError carries an error together with its rendered diagnostic.
type diagnosticError struct {
	text string
	err  error
}

func (e *diagnosticError) Error() string { return e.err.Error() }
func (e *diagnosticError) Unwrap() error { return e.err }

func formatDiagnostic(err error) string {
	var d *diagnosticError
	if errors.As(err, &d) {
		return d.text
	}
	return "Error: " + err.Error()
}

func checkSource(name, src string, opts options) (seri.Schedule, error) {
	s, err := parserFor(name).Parse(src)
	if err != nil {
		return seri.Schedule{}, err
	}
	return opts.pipeline().Run(s, nil)
}

// report writes a diagnostic for a failed document to stderr.
func (a *app) report(name, src string, err error) {
	fmt.Fprintln(a.stderr, terminal.Diagnostic(displayName(name), src, err, seri.DefaultTheme()))
	if errors.Is(err, seri.ErrInternal) {
		a.logger.Error("internal error", "input", name, "error", err)
	}
}

// inputNames expands glob arguments. No arguments reads standard input.
func inputNames(args []string) ([]string, error) {
	if len(args) == 0 {
		return []string{fs.Stdin}, nil
	}
	names, err := fs.Expand(args)
	if err != nil {
		return nil, err
	}
	if len(names) > 1 && slices.Contains(names, fs.Stdin) {
		return nil, errors.New("standard input cannot be combined with other inputs")
	}
	return names, nil
}

func failures(failed, total int) error {
	switch {
	case failed == 0:
		return nil
	case total == 1:
		return errReported
	default:
		return fmt.Errorf("%d of %d documents failed: %w", failed, total, errReported)
	}
}

func displayName(name string) string {
	if name == fs.Stdin {
		return "<stdin>"
	}
	return name
}

func isDir(path string) bool {
	if strings.HasSuffix(path, string(filepath.Separator)) {
		return true
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
