package exec

import "strings"

const (
	DefaultMaxLines = 40
	DefaultMaxBytes = 8 * 1024
)

// TruncateTail keeps the last maxLines lines of s, dropping further lines
// from the front until the result fits in maxBytes. A single line longer
// than maxBytes keeps its tail. The boolean reports whether anything was
// dropped.
func TruncateTail(s string, maxLines, maxBytes int) (string, bool) {
	s = strings.TrimRight(s, "\n")
	lines := strings.Split(s, "\n")
	if len(lines) <= maxLines && len(s) <= maxBytes {
		return s, false
	}
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	size := len(lines) - 1
	for _, line := range lines {
		size += len(line)
	}
	for len(lines) > 1 && size > maxBytes {
		size -= len(lines[0]) + 1
		lines = lines[1:]
	}
	out := strings.Join(lines, "\n")
	if len(out) > maxBytes {
		out = out[len(out)-maxBytes:]
	}
	return out, true
}

// Tail returns the sanitized end of command output, prefixed with a marker
// when lines were dropped.
func Tail(out []byte) string {
	s, truncated := TruncateTail(Sanitize(string(out)), DefaultMaxLines, DefaultMaxBytes)
	if truncated {
		return "...\n" + s
	}
	return s
}
