// Command seri compiles schedule descriptions into TikZ or HTML timetables.
//
// Usage:
//
//	seri compile [flags] [file|glob ...]   compile documents ("-" or none reads stdin)
//	seri check   [flags] [file|glob ...]   parse and validate without rendering
//	seri tokens  file                      print the token stream
//	seri preview [flags] file              browse a schedule in the terminal
//
// Settings are read from flags, then SERI_* environment variables (a .env
// file in the working directory is loaded first), then .seri.yaml.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/fwojciec/seri"
	"github.com/fwojciec/seri/exec"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

// errReported is returned when diagnostics were already written to stderr.
var errReported = errors.New("compilation failed")

func main() {
	if err := run(os.Args, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "seri: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return newApp(stdin, stdout, stderr).RunContext(ctx, args)
}

// app holds the process streams and the settings resolved before any
// command runs.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	cfg    *Config
	logger *slog.Logger

	// newPDF returns the PDF builder for compile --pdf.
	newPDF func(command string) seri.PDFBuilder
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	a := &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		newPDF: func(command string) seri.PDFBuilder {
			return exec.NewLatexmk(exec.WithCommand(command))
		},
	}
	return a.cli()
}

func (a *app) cli() *cli.App {
	return &cli.App{
		Name:      "seri",
		Usage:     "Compile schedule descriptions into TikZ or HTML timetables.",
		Reader:    a.stdin,
		Writer:    a.stdout,
		ErrWriter: a.stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: defaultConfigPath, EnvVars: []string{"SERI_CONFIG"}, Usage: "YAML config file"},
			&cli.StringFlag{Name: "log-level", EnvVars: []string{"SERI_LOG_LEVEL"}, Usage: "debug, info, warn or error"},
		},
		Before: a.before,
		Commands: []*cli.Command{
			a.compileCommand(),
			a.checkCommand(),
			a.tokensCommand(),
			a.previewCommand(),
		},
	}
}

func (a *app) before(c *cli.Context) error {
	path := c.String("config")
	if c.IsSet("config") {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.LogLevel
	if c.IsSet("log-level") {
		level = c.String("log-level")
	}
	a.logger = setupLogger(a.stderr, level)
	a.logger.Debug("config loaded", "path", path, "format", cfg.Format)
	return nil
}

func setupLogger(w io.Writer, level string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
}
