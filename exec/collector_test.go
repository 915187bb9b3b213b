package exec_test

import (
	"strings"
	"sync"
	"testing"

	seriexec "github.com/fwojciec/seri/exec"
	"github.com/stretchr/testify/assert"
)

func TestCollector(t *testing.T) {
	t.Parallel()

	t.Run("collects small output", func(t *testing.T) {
		t.Parallel()
		c := seriexec.NewCollector(1024)
		n, err := c.Write([]byte("hello\n"))
		assert.Equal(t, 6, n)
		assert.NoError(t, err)
		_, _ = c.Write([]byte("world\n"))

		assert.Equal(t, "hello\nworld\n", string(c.Bytes()))
		assert.Equal(t, int64(12), c.TotalBytes())
		assert.Equal(t, 2, c.TotalNewlines())
	})

	t.Run("keeps the last bytes", func(t *testing.T) {
		t.Parallel()
		c := seriexec.NewCollector(200)
		_, _ = c.Write([]byte(strings.Repeat("a", 150)))
		_, _ = c.Write([]byte(strings.Repeat("b", 150)))

		buf := string(c.Bytes())
		assert.Len(t, buf, 200)
		assert.True(t, strings.HasSuffix(buf, strings.Repeat("b", 150)))
		assert.Equal(t, int64(300), c.TotalBytes())
	})

	t.Run("concurrent writes", func(t *testing.T) {
		t.Parallel()
		c := seriexec.NewCollector(1 << 16)
		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 100 {
					_, _ = c.Write([]byte("x\n"))
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, int64(1600), c.TotalBytes())
		assert.Equal(t, 800, c.TotalNewlines())
	})
}
