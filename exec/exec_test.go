package exec_test

import (
	"context"
	"errors"
	osexec "os/exec"
	"path/filepath"
	"testing"
	"time"

	seriexec "github.com/fwojciec/seri/exec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("merges output and runs in dir", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		out, err := seriexec.Run(context.Background(), dir, "sh", "-c", "pwd; echo oops >&2")
		require.NoError(t, err)
		assert.Contains(t, string(out), filepath.Base(dir))
		assert.Contains(t, string(out), "oops")
	})

	t.Run("exit status is returned with output", func(t *testing.T) {
		t.Parallel()
		out, err := seriexec.Run(context.Background(), t.TempDir(), "sh", "-c", "echo failing; exit 3")
		var exitErr *osexec.ExitError
		require.True(t, errors.As(err, &exitErr))
		assert.Equal(t, 3, exitErr.ExitCode())
		assert.Equal(t, "failing\n", string(out))
	})

	t.Run("cancellation kills the command", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		start := time.Now()
		_, err := seriexec.Run(ctx, t.TempDir(), "sh", "-c", "sleep 10 & wait")
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Less(t, time.Since(start), 5*time.Second)
	})

	t.Run("missing command", func(t *testing.T) {
		t.Parallel()
		_, err := seriexec.Run(context.Background(), t.TempDir(), "seri-no-such-command")
		assert.ErrorIs(t, err, osexec.ErrNotFound)
	})
}
