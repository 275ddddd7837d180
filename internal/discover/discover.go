// Package discover locates audio files under a root path and supports
// reproducible random sampling of the result.
package discover

import (
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// supportedExts are the audio formats the pipeline will pick up during a
// directory walk. Matching is case-insensitive.
var supportedExts = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".flac": true,
	".ogg":  true,
	".m4a":  true,
}

// Supported reports whether the path carries a supported audio extension.
func Supported(path string) bool {
	return supportedExts[strings.ToLower(filepath.Ext(path))]
}

// Find returns the audio files reachable from root, sorted by path so
// sampling and report ordering are reproducible. A root that is itself a
// file is returned as-is without re-validating its extension. An empty
// result is a terminal condition for the run, surfaced as an error.
func Find(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading input path %s: %w", root, err)
	}

	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && Supported(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no audio files found under %s", root)
	}

	sort.Strings(files)
	return files, nil
}

// Sample draws a uniform random subset of size n, keeping the original
// path ordering of the survivors. The same seed over the same sorted
// input always selects the same subset. n >= len(files) returns files
// unchanged.
func Sample(files []string, n int, seed int64) []string {
	if n <= 0 || n >= len(files) {
		return files
	}

	rng := rand.New(rand.NewSource(seed))
	picked := rng.Perm(len(files))[:n]
	sort.Ints(picked)

	subset := make([]string, n)
	for i, idx := range picked {
		subset[i] = files[idx]
	}
	return subset
}
