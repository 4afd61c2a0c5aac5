// Package scanner walks a project root and yields candidate files for
// indexing, honoring ignore precedence and content-hash change detection.
package scanner

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ctxagent/ctx/internal/ctxerr"
	"github.com/ctxagent/ctx/internal/lang"
)

// alwaysExclude is the highest-precedence ignore list, per spec.md §4.2.
var alwaysExclude = map[string]bool{
	".git":         true,
	"node_modules": true,
	"dist":         true,
	"target":       true,
	".ctx-agent":   true,
}

// Candidate is one accepted file discovered during a walk, with its
// content already hashed and language classified.
type Candidate struct {
	Path      string // relative to project root, slash-separated
	Language  string
	Hash      string
	LineCount int
	Bytes     []byte
}

// Walk enumerates every accepted file under root, reading its bytes and
// computing a content hash. Besides the always-exclude list and hidden
// entries, it skips paths matching the gitignore-style globs that
// loadIgnorePatterns collects from every .gitignore in the tree.
func Walk(root string) ([]Candidate, error) {
	patterns, err := loadIgnorePatterns(root)
	if err != nil {
		return nil, err
	}

	var out []Candidate
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if alwaysExclude[d.Name()] {
				return filepath.SkipDir
			}
			if isHidden(d.Name()) {
				return filepath.SkipDir
			}
			if matchesAny(patterns, rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if isHidden(d.Name()) {
			return nil
		}
		if matchesAny(patterns, rel) {
			return nil
		}

		language, ok := lang.ClassifyPath(rel)
		if !ok {
			return nil
		}

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			// Per-file Io is recovered by skipping the file.
			return nil
		}

		sum := sha256.Sum256(content)
		out = append(out, Candidate{
			Path:      rel,
			Language:  language,
			Hash:      hex.EncodeToString(sum[:]),
			LineCount: countLines(content),
			Bytes:     content,
		})
		return nil
	})
	if err != nil {
		return nil, ctxerr.WrapPath(ctxerr.KindIO, "walk project tree", root, err)
	}
	return out, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

func matchesAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(p, strings.TrimSuffix(rel, "/")); ok {
			return true
		}
	}
	return false
}

// loadIgnorePatterns gathers every .gitignore found anywhere in the tree,
// rooting each pattern at the directory that contains it.
func loadIgnorePatterns(root string) ([]string, error) {
	var patterns []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if alwaysExclude[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != ".gitignore" {
			return nil
		}
		dir, _ := filepath.Rel(root, filepath.Dir(path))
		dir = filepath.ToSlash(dir)

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil
		}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			patterns = append(patterns, rootPattern(dir, line))
		}
		return nil
	})
	if err != nil {
		return nil, ctxerr.WrapPath(ctxerr.KindIO, "load ignore patterns", root, err)
	}
	return patterns, nil
}

func rootPattern(dir, pattern string) string {
	pattern = strings.TrimPrefix(pattern, "/")
	if !strings.Contains(pattern, "/") {
		pattern = "**/" + pattern
	}
	if dir == "." || dir == "" {
		return pattern
	}
	return dir + "/" + pattern
}

func countLines(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	n := 0
	for _, b := range content {
		if b == '\n' {
			n++
		}
	}
	if content[len(content)-1] != '\n' {
		n++
	}
	return n
}

// HashFile computes the content hash of a single file on disk, used by
// the watcher to recheck one path without a full tree walk.
func HashFile(path string) (string, int, []byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, nil, ctxerr.WrapPath(ctxerr.KindIO, "open file", path, err)
	}
	defer f.Close()

	h := sha256.New()
	content, err := io.ReadAll(io.TeeReader(f, h))
	if err != nil {
		return "", 0, nil, ctxerr.WrapPath(ctxerr.KindIO, "read file", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), countLines(content), content, nil
}
