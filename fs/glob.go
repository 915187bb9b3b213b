package fs

import (
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// Expand resolves input arguments to file names. Arguments without glob
// metacharacters are kept as given, even if the file does not exist, so
// the read reports the error. Patterns support ** for recursive matching
// and must match at least one file. The result keeps argument order,
// sorts the matches of each pattern and drops duplicates.
func Expand(args []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, arg := range args {
		if arg == Stdin || !hasMeta(arg) {
			add(arg)
			continue
		}
		matches, err := Glob(arg)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			add(m)
		}
	}
	return out, nil
}

// Glob returns the regular files matching pattern, sorted.
func Glob(pattern string) ([]string, error) {
	slashed := filepath.ToSlash(pattern)
	if !doublestar.ValidatePattern(slashed) {
		return nil, fmt.Errorf("invalid glob pattern: %s", pattern)
	}
	base, rest := doublestar.SplitPattern(slashed)

	info, err := os.Stat(filepath.FromSlash(base))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", pattern, ErrNoMatches)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", pattern, ErrNoMatches)
	}

	var matches []string
	err = doublestar.GlobWalk(os.DirFS(filepath.FromSlash(base)), rest, func(path string, d iofs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		matches = append(matches, filepath.Join(filepath.FromSlash(base), filepath.FromSlash(path)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error matching pattern %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%s: %w", pattern, ErrNoMatches)
	}
	slices.Sort(matches)
	return matches, nil
}

func hasMeta(s string) bool {
	for _, c := range s {
		switch c {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
