// Package exec compiles TikZ documents to PDF by running latexmk.
package exec

import (
	"context"
	"errors"
	osexec "os/exec"
	"syscall"
)

// CommandFunc runs name with args in dir and returns its merged standard
// output and standard error.
type CommandFunc func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

// rollingBufSize bounds the output kept from one command.
const rollingBufSize = 2 * DefaultMaxBytes

// Run is the default CommandFunc. Cancelling ctx kills the whole process
// group, so children started by the command die with it.
func Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := osexec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}

	out := NewCollector(rollingBufSize)
	cmd.Stdout = out
	cmd.Stderr = out

	err := cmd.Run()
	if err != nil && ctx.Err() != nil {
		var exitErr *osexec.ExitError
		if !errors.As(err, &exitErr) || exitErr.ExitCode() < 0 {
			err = ctx.Err()
		}
	}
	return out.Bytes(), err
}
