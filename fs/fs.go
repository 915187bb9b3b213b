// Package fs locates, reads and writes the files the compiler works on:
// source documents matched by glob patterns and rendered output files.
package fs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrNoMatches is returned when an input pattern matches no files.
var ErrNoMatches = errors.New("no matching files")

// Stdin is the input name that reads the document from standard input.
const Stdin = "-"

// ReadSource reads a source document. The name "-" reads r instead of a
// file. The content must be valid UTF-8.
func ReadSource(name string, r io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if name == Stdin {
		data, err = io.ReadAll(r)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("read %s: not valid UTF-8", name)
	}
	return string(data), nil
}

// WriteOutput writes data to path, creating parent directories. The file
// is written to a temporary name first and renamed into place, so readers
// never see a partial file.
func WriteOutput(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// OutputPath returns the file an input document compiles to: the input's
// base name with ext, placed in dir. An empty dir keeps the input's
// directory.
func OutputPath(input, dir, ext string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base)) + ext
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, base)
}
