package exec

import (
	"bytes"
	"sync"
)

// Collector is an io.Writer that keeps the last maxBuf bytes written along
// with total byte and line counts. It is safe for concurrent use.
type Collector struct {
	mu            sync.Mutex
	buf           []byte
	total         int64
	totalNewlines int
	maxBuf        int
}

// NewCollector creates a Collector that keeps at most maxBuf bytes.
func NewCollector(maxBuf int) *Collector {
	return &Collector{maxBuf: maxBuf}
}

// Write implements io.Writer. It never fails.
func (c *Collector) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.total += int64(len(p))
	c.totalNewlines += bytes.Count(p, []byte{'\n'})
	c.buf = append(c.buf, p...)

	// Copy on trim to release the old backing array.
	if len(c.buf) > c.maxBuf {
		trimmed := make([]byte, c.maxBuf)
		copy(trimmed, c.buf[len(c.buf)-c.maxBuf:])
		c.buf = trimmed
	}
	return len(p), nil
}

// Bytes returns a copy of the kept output.
func (c *Collector) Bytes() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]byte(nil), c.buf...)
}

// TotalBytes returns the number of bytes written, including trimmed ones.
func (c *Collector) TotalBytes() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// TotalNewlines returns the number of newlines written, including trimmed
// ones.
func (c *Collector) TotalNewlines() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalNewlines
}
