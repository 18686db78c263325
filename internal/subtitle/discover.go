package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// lookup order when only a base name is known
var transcriptExtensions = []string{".txt", ".vtt", ".srt", ".json"}

// ListTranscripts returns transcript files in dir, one per base name.
// When several dialects share a base name the first in sorted order wins.
func ListTranscripts(dir string) ([]string, error) {
	var files []string
	for _, ext := range transcriptExtensions {
		matches, err := filepath.Glob(filepath.Join(dir, "*"+ext))
		if err != nil {
			return nil, fmt.Errorf("failed to list %s files: %w", ext, err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)

	seen := make(map[string]bool, len(files))
	unique := make([]string, 0, len(files))
	for _, f := range files {
		base := strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))
		if seen[base] {
			continue
		}
		seen[base] = true
		unique = append(unique, f)
	}

	return unique, nil
}

// FindTranscript locates the file for base name in dir, preferring
// .txt, then .vtt, .srt and .json.
func FindTranscript(dir, base string) (string, error) {
	for _, ext := range transcriptExtensions {
		path := filepath.Join(dir, base+ext)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("no transcript named %q in %s: %w", base, dir, os.ErrNotExist)
}
