// Package source locates CNV files and reads their headers.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ccollicutt/cnvreader/pkg/cnv"
)

// Extension is the file extension of CNV recordings.
const Extension = ".cnv"

// Expand expands a list of file paths, directories and glob patterns into a
// deduplicated, sorted list of paths. Directories contribute the CNV files
// they contain (not recursive). Patterns that match nothing are returned as-is so
// the caller reports a file-not-found error for them.
func Expand(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			result = append(result, path)
		}
	}

	for _, pattern := range patterns {
		if info, err := os.Stat(pattern); err == nil && info.IsDir() {
			entries, err := os.ReadDir(pattern)
			if err != nil {
				return nil, fmt.Errorf("listing directory %q: %w", pattern, err)
			}
			for _, entry := range entries {
				if !entry.IsDir() && IsCNV(entry.Name()) {
					add(filepath.Join(pattern, entry.Name()))
				}
			}
			continue
		}

		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}

		if len(matches) == 0 {
			add(pattern)
			continue
		}

		for _, match := range matches {
			add(match)
		}
	}

	sort.Strings(result)

	return result, nil
}

// IsCNV reports whether path has the CNV extension, ignoring case.
func IsCNV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), Extension)
}

// ReadHeader opens path, parses its header block and closes the file.
func ReadHeader(path string, opts ...cnv.Option) (*cnv.HeaderReader, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, &cnv.StreamError{Err: err}
	}
	defer f.Close()

	h, err := cnv.NewHeaderReader(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	return h, nil
}
